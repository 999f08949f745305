package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Stripe   StripeConfig
	Mail     MailConfig
	Event    EventConfig
	Ticket   TicketConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Host                  string
	Port                  string
	Domain                string
	PublicDir             string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values for the issuance audit log.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level       string
	Development bool
}

// StripeConfig holds payment processor credentials.
type StripeConfig struct {
	SecretKey string
}

// MailConfig holds SMTP account credentials.
type MailConfig struct {
	Host     string
	Port     int
	From     string
	Password string
}

// EventConfig describes the single event being sold.
type EventConfig struct {
	Name        string
	ProductName string
	DateTime    string
	Venue       string
	UnitAmount  int64
	Currency    string
}

// TicketConfig controls ticket issuance details.
type TicketConfig struct {
	TempDir      string
	IDPrefix     string
	FallbackName string
}

// Load reads configuration from environment variables, applying defaults where possible.
// The given env files are loaded first; a missing file is not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	unitAmount, err := strconv.ParseInt(getEnv("EVENT_UNIT_AMOUNT", "35000"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid EVENT_UNIT_AMOUNT: %w", err)
	}

	port := getEnv("PORT", "3000")

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "boletos"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  port,
			Domain:                strings.TrimRight(getEnv("DOMAIN", "http://localhost:"+port), "/"),
			PublicDir:             getEnv("PUBLIC_DIR", "public"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 5)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnv("APP_ENV", "development") == "development",
		},
		Stripe: StripeConfig{
			SecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		},
		Mail: MailConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     smtpPort,
			From:     os.Getenv("EMAIL_FROM"),
			Password: os.Getenv("EMAIL_PASS"),
		},
		Event: EventConfig{
			Name:        getEnv("EVENT_NAME", "Concierto de Cuencos de Cuarzo"),
			ProductName: getEnv("EVENT_PRODUCT_NAME", "Boleto - Concierto de Cuencos de Cuarzo"),
			DateTime:    getEnv("EVENT_DATETIME", "6 de Junio de 2025 – 19:00 h"),
			Venue:       getEnv("EVENT_VENUE", "Salón Haciendas del Refugio"),
			UnitAmount:  unitAmount,
			Currency:    strings.ToLower(getEnv("EVENT_CURRENCY", "mxn")),
		},
		Ticket: TicketConfig{
			TempDir:      getEnv("TICKET_TMP_DIR", os.TempDir()),
			IDPrefix:     getEnv("TICKET_ID_PREFIX", "BOL-"),
			FallbackName: getEnv("TICKET_FALLBACK_NAME", "Asistente"),
		},
	}

	return cfg, nil
}

// Validate reports missing secrets. Secrets never have defaults.
func (c *Config) Validate() error {
	var errs []error
	if c.Stripe.SecretKey == "" {
		errs = append(errs, errors.New("STRIPE_SECRET_KEY is required"))
	}
	if c.Mail.From == "" {
		errs = append(errs, errors.New("EMAIL_FROM is required"))
	}
	if c.Mail.Password == "" {
		errs = append(errs, errors.New("EMAIL_PASS is required"))
	}
	if c.Event.UnitAmount <= 0 {
		errs = append(errs, errors.New("EVENT_UNIT_AMOUNT must be positive"))
	}
	return errors.Join(errs...)
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
