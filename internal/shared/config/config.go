package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all configuration for the discovery service
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	CORS     CORSConfig

	RateLimit RateLimitConfig
	Discovery DiscoveryConfig

	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string

	MaxIdleConns       int
	MaxOpenConns       int
	ConnMaxLifetime    time.Duration
	SlowQueryThreshold time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
	CacheTTL time.Duration
}

// KafkaConfig holds the sales stream configuration
type KafkaConfig struct {
	Enabled           bool
	Brokers           []string
	PurchaseTopic     string
	AvailabilityTopic string
	GroupID           string
	Workers           int
	MaxRetries        int
	RetryBackoff      time.Duration
	OffsetOldest      bool
}

// JWTConfig holds JWT configuration. Tokens are issued by the identity
// provider, this service only verifies them.
type JWTConfig struct {
	Secret string
}

// CORSConfig holds allowed origins for browser clients
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool          `json:"enabled"`
	WindowDuration    time.Duration `json:"window_duration"`
	DefaultRequests   int           `json:"default_requests"`
	DiscoveryRequests int           `json:"discovery_requests"`
	AdminRequests     int           `json:"admin_requests"`
	HealthRequests    int           `json:"health_requests"`
	WhitelistedIPs    []string      `json:"whitelisted_ips"`
}

// DiscoveryConfig holds listing and price tier settings
type DiscoveryConfig struct {
	DefaultFromPrice       decimal.Decimal
	Currency               string
	DefaultPageSize        int
	MaxPageSize            int
	ListingCacheTTL        time.Duration
	TierRecomputeInterval  time.Duration
	TierRecomputeOnStartup bool
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "clubly_db"),
			User:     getEnv("DB_USER", "clubly_user"),
			Password: getEnv("DB_PASSWORD", "clubly_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),

			MaxIdleConns:       getIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:       getIntEnv("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime:    getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			SlowQueryThreshold: getDurationEnv("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			CacheTTL: getDurationEnv("REDIS_CACHE_TTL", 1*time.Hour),
		},

		Kafka: KafkaConfig{
			Enabled:           getBoolEnv("KAFKA_ENABLED", true),
			Brokers:           getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			PurchaseTopic:     getEnv("KAFKA_PURCHASE_TOPIC", "ticket-purchases"),
			AvailabilityTopic: getEnv("KAFKA_AVAILABILITY_TOPIC", "event-availability"),
			GroupID:           getEnv("KAFKA_GROUP_ID", "clubly-sales-workers"),
			Workers:           getIntEnv("KAFKA_WORKERS", 2),
			MaxRetries:        getIntEnv("KAFKA_MAX_RETRIES", 3),
			RetryBackoff:      getDurationEnv("KAFKA_RETRY_BACKOFF", time.Second),
			OffsetOldest:      getBoolEnv("KAFKA_OFFSET_OLDEST", false),
		},

		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
		},

		CORS: CORSConfig{
			AllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},

		RateLimit: RateLimitConfig{
			Enabled:           getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:    getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:   getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			DiscoveryRequests: getIntEnv("RATE_LIMIT_DISCOVERY_REQUESTS", 120),
			AdminRequests:     getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 30),
			HealthRequests:    getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:    getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		Discovery: DiscoveryConfig{
			DefaultFromPrice:       getDecimalEnv("DEFAULT_FROM_PRICE", decimal.NewFromInt(10)),
			Currency:               getEnv("PRICE_CURRENCY_SYMBOL", "€"),
			DefaultPageSize:        getIntEnv("DISCOVERY_PAGE_SIZE", 20),
			MaxPageSize:            getIntEnv("DISCOVERY_MAX_PAGE_SIZE", 100),
			ListingCacheTTL:        getDurationEnv("DISCOVERY_LISTING_CACHE_TTL", 2*time.Minute),
			TierRecomputeInterval:  getDurationEnv("TIER_RECOMPUTE_INTERVAL", 6*time.Hour),
			TierRecomputeOnStartup: getBoolEnv("TIER_RECOMPUTE_ON_STARTUP", false),
		},

		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getDecimalEnv gets a decimal environment variable, used for money values
func getDecimalEnv(key string, fallback decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			return d
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
