package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("DOMAIN", "")
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("EMAIL_FROM", "")
	t.Setenv("EMAIL_PASS", "")
	t.Setenv("APP_ENV", "")
	os.Unsetenv("APP_ENV")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.App.Domain)
	assert.Equal(t, "0.0.0.0:4000", cfg.App.Addr())
	assert.Equal(t, int64(35000), cfg.Event.UnitAmount)
	assert.Equal(t, "mxn", cfg.Event.Currency)
	assert.Equal(t, "BOL-", cfg.Ticket.IDPrefix)
	assert.Equal(t, "Asistente", cfg.Ticket.FallbackName)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.Empty(t, cfg.Stripe.SecretKey)
	assert.True(t, cfg.Logger.Development)
}

func TestAppEnvControlsLoggerMode(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Logger.Development)
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("DOMAIN", "")
	os.Unsetenv("DOMAIN")
	t.Setenv("STRIPE_SECRET_KEY", "")
	os.Unsetenv("STRIPE_SECRET_KEY")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOMAIN=https://boletos.example.com/\nSTRIPE_SECRET_KEY=sk_test_123\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv("DOMAIN")
		os.Unsetenv("STRIPE_SECRET_KEY")
	})

	assert.Equal(t, "https://boletos.example.com", cfg.App.Domain)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	t.Setenv("SMTP_PORT", "not-a-port")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SMTP_PORT")
}

func TestValidateRequiresSecrets(t *testing.T) {
	cfg := &Config{Event: EventConfig{UnitAmount: 35000}}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
	assert.Contains(t, err.Error(), "EMAIL_FROM")
	assert.Contains(t, err.Error(), "EMAIL_PASS")

	cfg.Stripe.SecretKey = "sk_test"
	cfg.Mail.From = "boletos@example.com"
	cfg.Mail.Password = "secret"
	assert.NoError(t, cfg.Validate())
}

func TestRequestTimeout(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{}.RequestTimeout())
	assert.Equal(t, 5*time.Second, AppConfig{RequestTimeoutSeconds: 5}.RequestTimeout())
}
