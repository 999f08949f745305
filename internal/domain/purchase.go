package domain

import "strings"

// PurchaseIntent is the buyer identity supplied to start a checkout.
type PurchaseIntent struct {
	Name  string
	Email string
}

// Normalize trims surrounding whitespace from both fields.
func (p PurchaseIntent) Normalize() PurchaseIntent {
	return PurchaseIntent{
		Name:  strings.TrimSpace(p.Name),
		Email: strings.TrimSpace(p.Email),
	}
}

// MissingFields lists the empty required fields by their wire names.
func (p PurchaseIntent) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(p.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(p.Email) == "" {
		missing = append(missing, "email")
	}
	return missing
}

// PaymentSession is the subset of a processor checkout session this service reads.
type PaymentSession struct {
	ID            string
	URL           string
	CustomerEmail string
	Metadata      map[string]string
}

// MetadataName is the session metadata key holding the buyer name.
const MetadataName = "name"

// BuyerName returns the buyer name stored in metadata, or fallback.
func (s *PaymentSession) BuyerName(fallback string) string {
	if s == nil {
		return fallback
	}
	if name := strings.TrimSpace(s.Metadata[MetadataName]); name != "" {
		return name
	}
	return fallback
}
