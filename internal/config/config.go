package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Mode        string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	Cloud CloudConfig

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	// RawCacheSize bounds the per-range raw table cache; DatasetCacheSize
	// bounds the prepared dataset cache. Both fall back to 32 entries.
	RawCacheSize     int
	DatasetCacheSize int

	SeedDemoData bool

	RateLimit RateLimitConfig
}

type CloudConfig struct {
	OrganizationID   string
	OrganizationName string
	Metrics          CloudMetricsConfig
}

type CloudMetricsConfig struct {
	Enabled   bool
	Exporter  string
	Endpoint  string
	AuthToken string
}

// RateLimitConfig configures the Redis-backed export limiter. Disabled by
// default so local setups run without Redis.
type RateLimitConfig struct {
	Enabled         bool
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	ExportPerMinute int64
	ExportBurstSize int64
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	mode := normalizeMode(getenv("APP_MODE", ModeOSS))
	environment := getenv("ENVIRONMENT", "development")

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "orderlens"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Mode:        mode,
		Environment: environment,
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),
		Cloud: CloudConfig{
			OrganizationID:   strings.TrimSpace(getenv("CLOUD_ORGANIZATION_ID", "")),
			OrganizationName: getenv("CLOUD_ORGANIZATION_NAME", ""),
			Metrics: CloudMetricsConfig{
				Enabled:   getenvBool("CLOUD_METRICS_ENABLED", true),
				Exporter:  strings.ToLower(getenv("CLOUD_METRICS_EXPORTER", "")),
				Endpoint:  strings.TrimSpace(getenv("CLOUD_METRICS_ENDPOINT", "")),
				AuthToken: strings.TrimSpace(getenv("CLOUD_METRICS_AUTH_TOKEN", "")),
			},
		},
		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "orderlens"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 1800),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 300),

		RawCacheSize:     getenvInt("RAW_CACHE_SIZE", 32),
		DatasetCacheSize: getenvInt("DATASET_CACHE_SIZE", 32),

		SeedDemoData: getenvBool("SEED_DEMO_DATA", false),

		RateLimit: RateLimitConfig{
			Enabled:         getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:       getenv("RATE_LIMIT_REDIS_ADDR", "localhost:6379"),
			RedisPassword:   getenv("RATE_LIMIT_REDIS_PASSWORD", ""),
			RedisDB:         getenvInt("RATE_LIMIT_REDIS_DB", 0),
			ExportPerMinute: getenvInt64("RATE_LIMIT_EXPORT_PER_MINUTE", 6),
			ExportBurstSize: getenvInt64("RATE_LIMIT_EXPORT_BURST", 3),
		},
	}

	return cfg
}

const (
	ModeOSS        = "oss"
	ModeCloud      = "cloud"
	ModeStandalone = "standalone"
)

func (c Config) IsCloud() bool {
	return c.Mode == ModeCloud
}

func normalizeMode(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case ModeCloud:
		return ModeCloud
	case ModeStandalone, ModeOSS:
		return ModeOSS
	default:
		return ModeOSS
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
