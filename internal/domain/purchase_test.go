package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseIntentMissingFields(t *testing.T) {
	assert.Empty(t, PurchaseIntent{Name: "Ana Ruiz", Email: "ana@example.com"}.MissingFields())
	assert.Equal(t, []string{"name"}, PurchaseIntent{Name: "  ", Email: "ana@example.com"}.MissingFields())
	assert.Equal(t, []string{"name", "email"}, PurchaseIntent{}.MissingFields())
}

func TestPurchaseIntentNormalize(t *testing.T) {
	got := PurchaseIntent{Name: " Ana Ruiz ", Email: "ana@example.com\n"}.Normalize()
	assert.Equal(t, PurchaseIntent{Name: "Ana Ruiz", Email: "ana@example.com"}, got)
}

func TestPaymentSessionBuyerName(t *testing.T) {
	s := &PaymentSession{Metadata: map[string]string{MetadataName: "Ana Ruiz"}}
	assert.Equal(t, "Ana Ruiz", s.BuyerName("Asistente"))

	assert.Equal(t, "Asistente", (&PaymentSession{}).BuyerName("Asistente"))
	assert.Equal(t, "Asistente", (*PaymentSession)(nil).BuyerName("Asistente"))
}
