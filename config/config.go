// Package config loads the storefront service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Catalog  CatalogConfig
	Pricing  PricingConfig
	Listing  ListingConfig
	Checkout CheckoutConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// CacheConfig sizes the in-memory quote cache.
type CacheConfig struct {
	Size   int
	TTL    time.Duration
	Shards int
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled      bool
	APIKeys      map[string]bool
	APIKeyHashes []string
	JWTSecretKey string
	AdminRole    string
}

// DatabaseConfig holds MongoDB configuration. Mongo only stores request and audit logs.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// CatalogConfig points at the remote catalog and order API.
type CatalogConfig struct {
	BaseURL string
	Timeout time.Duration

	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// PricingConfig tunes the discount calculator.
type PricingConfig struct {
	CurrencySymbol    string
	HighlightDuration time.Duration
	// ClearStaleOnInvalid blanks the previous price when the original price becomes invalid.
	ClearStaleOnInvalid bool
	// EditorCapacity and EditorTTL bound the live price editor store.
	EditorCapacity int
	EditorTTL      time.Duration
}

// ListingConfig tunes the product grid partitioning.
type ListingConfig struct {
	PageSize int
	// RevealBatch is how many hidden items one "load more" reveals. Zero reveals all.
	RevealBatch   int
	RevealDelay   time.Duration
	RevealStagger time.Duration
	SessionTTL    time.Duration
	MaxSessions   int
}

// CheckoutConfig holds order defaults.
type CheckoutConfig struct {
	BumpOfferPrice decimal.Decimal
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Cache: CacheConfig{
			Size:   getEnvInt("CACHE_SIZE", 1000),
			TTL:    getEnvDuration("CACHE_TTL", 5*time.Minute),
			Shards: getEnvInt("CACHE_SHARDS", 1),
		},
		Auth: AuthConfig{
			Enabled:      getEnvBool("AUTH_ENABLED", false),
			APIKeys:      parseAPIKeys(os.Getenv("API_KEYS")),
			APIKeyHashes: parseList(os.Getenv("API_KEY_HASHES")),
			JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
			AdminRole:    getEnv("JWT_ADMIN_ROLE", "admin"),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "storefront"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Catalog: CatalogConfig{
			BaseURL:                        strings.TrimRight(getEnv("CATALOG_API_URL", "http://localhost:8000/api"), "/"),
			Timeout:                        getEnvDuration("CATALOG_API_TIMEOUT", 5*time.Second),
			CircuitBreakerFailureThreshold: getEnvInt("CATALOG_CB_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CATALOG_CB_SUCCESS_THRESHOLD", 1),
			CircuitBreakerTimeout:          getEnvDuration("CATALOG_CB_TIMEOUT", 15*time.Second),
		},
		Pricing: PricingConfig{
			CurrencySymbol:      getEnv("PRICING_CURRENCY_SYMBOL", "₹"),
			HighlightDuration:   getEnvDuration("PRICING_HIGHLIGHT_DURATION", 500*time.Millisecond),
			ClearStaleOnInvalid: getEnvBool("PRICING_CLEAR_STALE", false),
			EditorCapacity:      getEnvPositiveInt("PRICING_EDITOR_MAX", 1000),
			EditorTTL:           getEnvDuration("PRICING_EDITOR_TTL", 15*time.Minute),
		},
		Listing: ListingConfig{
			PageSize:      getEnvPositiveInt("LISTING_PAGE_SIZE", 9),
			RevealBatch:   getEnvInt("LISTING_REVEAL_BATCH", 0),
			RevealDelay:   getEnvDuration("LISTING_REVEAL_DELAY", 300*time.Millisecond),
			RevealStagger: getEnvDuration("LISTING_REVEAL_STAGGER", 50*time.Millisecond),
			SessionTTL:    getEnvDuration("LISTING_SESSION_TTL", 30*time.Minute),
			MaxSessions:   getEnvPositiveInt("LISTING_MAX_SESSIONS", 10000),
		},
		Checkout: CheckoutConfig{
			BumpOfferPrice: getEnvDecimal("CHECKOUT_BUMP_OFFER_PRICE", decimal.NewFromInt(99)),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvPositiveInt(key string, defaultValue int) int {
	if i := getEnvInt(key, defaultValue); i > 0 {
		return i
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			return d
		}
	}
	return defaultValue
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func parseAPIKeys(s string) map[string]bool {
	keys := parseList(s)
	if keys == nil {
		return nil
	}
	result := make(map[string]bool, len(keys))
	for _, k := range keys {
		result[k] = true
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// local storefront dev servers
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:8000",
	}
	return append(defaults, parseList(s)...)
}
