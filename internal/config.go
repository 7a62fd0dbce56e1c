package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     uint16

	// DatabaseUrl is only required when the state store provider is
	// "postgres".
	DatabaseUrl string

	// Backend is the commerce API this storefront fronts.
	Backend BackendConfig

	// AllowedOrigins for CORS, comma-separated in ALLOWED_ORIGINS.
	AllowedOrigins []string

	StateStore StateStoreConfig
	Checkout   CheckoutConfig
	Stripe     StripeConfig
}

// BackendConfig points at the commerce backend API.
type BackendConfig struct {
	BaseURL string
}

// StateStoreConfig selects where client state (cart, wishlist, session)
// is persisted.
type StateStoreConfig struct {
	// Provider is "memory", "local", or "postgres".
	Provider string

	// LocalPath is the directory for the "local" provider.
	LocalPath string

	// SessionID namespaces the persisted cart and wishlist so multiple
	// storefront instances can share one Postgres store.
	SessionID string
}

// CheckoutConfig carries the pricing knobs for the checkout calculator.
type CheckoutConfig struct {
	// TaxRate is the sales tax applied to the discounted subtotal.
	TaxRate float64

	// ShippingCostCents is the flat shipping rate.
	ShippingCostCents int64

	// FreeShippingThresholdCents waives shipping at or above this
	// discounted subtotal. Zero disables free shipping.
	FreeShippingThresholdCents int64

	// Currency is the ISO 4217 code charged at payment time.
	Currency string

	// PaymentProvider is "stripe", "rest", or "mock".
	PaymentProvider string
}

type StripeConfig struct {
	SecretKey string
}

func NewConfig() (*Config, error) {
	// Try to load .env from current directory, then walk up to find it (max 2 levels)
	err := godotenv.Load()
	if err != nil {
		dir, _ := os.Getwd()
		found := false
		for i := 0; i < 2; i++ {
			dir = filepath.Join(dir, "..")
			if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
				found = true
				break
			}
		}
		if !found {
			slog.Default().Warn("Warning: .env file not found, using environment variables and defaults")
		}
	}

	cfg := &Config{
		Env:         getEnv("ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        getEnvInt("PORT", 3000),
		DatabaseUrl: getEnv("DATABASE_URL", ""),
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8080/api"),
		},
		AllowedOrigins: splitEnv("ALLOWED_ORIGINS", "*"),
		StateStore: StateStoreConfig{
			Provider:  getEnv("STATE_STORE_PROVIDER", "local"),
			LocalPath: getEnv("STATE_STORE_PATH", "./data/state"),
			SessionID: getEnv("STATE_SESSION_ID", "default"),
		},
		Checkout: CheckoutConfig{
			TaxRate:                    getEnvFloat("TAX_RATE", 0.16),
			ShippingCostCents:          getEnvInt64("SHIPPING_COST_CENTS", 999),
			FreeShippingThresholdCents: getEnvInt64("FREE_SHIPPING_THRESHOLD_CENTS", 10000),
			Currency:                   getEnv("CURRENCY", "usd"),
			PaymentProvider:            getEnv("PAYMENT_PROVIDER", "rest"),
		},
		Stripe: StripeConfig{
			SecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		},
	}

	// Validate env
	validEnv := cfg.Env == "dev" || cfg.Env == "prod"
	if !validEnv {
		slog.Default().Warn("Invalid environment. Using default: prod", slog.String("env", cfg.Env))
		cfg.Env = "prod"
	}

	// Validate log level
	validLevel := cfg.LogLevel == "info" || cfg.LogLevel == "debug" || cfg.LogLevel == "warn" || cfg.LogLevel == "error"
	if !validLevel {
		slog.Default().Warn("Invalid log level. Using default: info", slog.String("value", cfg.LogLevel))
		cfg.LogLevel = "info"
	}

	if cfg.StateStore.Provider == "postgres" && cfg.DatabaseUrl == "" {
		return nil, fmt.Errorf("DATABASE_URL required when STATE_STORE_PROVIDER is postgres")
	}

	if cfg.Checkout.PaymentProvider == "stripe" && cfg.Stripe.SecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY required when PAYMENT_PROVIDER is stripe")
	}

	if cfg.Checkout.TaxRate < 0 || cfg.Checkout.TaxRate > 1 {
		return nil, fmt.Errorf("TAX_RATE must be between 0 and 1, got %g", cfg.Checkout.TaxRate)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue uint16) uint16 {
	if value := os.Getenv(key); value != "" {
		var intValue uint16
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		var intValue int64
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		var floatValue float64
		if _, err := fmt.Sscanf(value, "%f", &floatValue); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func splitEnv(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
