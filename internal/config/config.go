package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tair/storefront/pkg/database"
)

// Catalog backends
const (
	CatalogMemory   = "memory"
	CatalogPostgres = "postgres"
)

// Slot backends
const (
	SlotMemory = "memory"
	SlotRedis  = "redis"
	SlotBolt   = "bolt"
)

type Config struct {
	ServiceName    string
	Environment    string
	LogLevel       string
	LogFile        string
	HTTPPort       string
	JaegerEndpoint string

	CatalogBackend string
	CatalogSeed    string
	Database       database.Config

	SlotBackend   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SlotTTL       time.Duration
	BoltPath      string

	KafkaBrokers     []string
	KafkaEventsTopic string
	KafkaStockTopic  string
	KafkaGroupID     string

	FreeShippingThreshold int64
	ShippingFee           int64

	SessionIdleTimeout time.Duration
	AllowedOrigins     []string
}

// IsDevelopment reports whether console logging and the dev defaults apply
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration from the environment
func Load() (Config, error) {
	var errs []string
	intVar := func(key string, def int64) int64 {
		raw := getEnv(key, strconv.FormatInt(def, 10))
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be a non-negative integer, got %q", key, raw))
			return def
		}
		return v
	}
	durationVar := func(key string, def time.Duration) time.Duration {
		raw := getEnv(key, def.String())
		v, err := time.ParseDuration(raw)
		if err != nil || v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be a duration, got %q", key, raw))
			return def
		}
		return v
	}

	cfg := Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "storefront"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		JaegerEndpoint: getEnv("JAEGER_ENDPOINT", ""),

		CatalogBackend: strings.ToLower(getEnv("CATALOG_BACKEND", CatalogMemory)),
		CatalogSeed:    getEnv("CATALOG_SEED_FILE", ""),
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "storefront"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		SlotBackend:   strings.ToLower(getEnv("SLOT_BACKEND", SlotMemory)),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       int(intVar("REDIS_DB", 0)),
		SlotTTL:       durationVar("SLOT_TTL", 30*24*time.Hour),
		BoltPath:      getEnv("BOLT_PATH", "storefront.db"),

		KafkaBrokers:     splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaEventsTopic: getEnv("KAFKA_EVENTS_TOPIC", "storefront-events"),
		KafkaStockTopic:  getEnv("KAFKA_STOCK_TOPIC", "stock-updates"),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "storefront"),

		FreeShippingThreshold: intVar("FREE_SHIPPING_THRESHOLD", 5000),
		ShippingFee:           intVar("SHIPPING_FEE", 500),

		SessionIdleTimeout: durationVar("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		AllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch cfg.CatalogBackend {
	case CatalogMemory, CatalogPostgres:
	default:
		errs = append(errs, fmt.Sprintf("unknown CATALOG_BACKEND %q", cfg.CatalogBackend))
	}
	switch cfg.SlotBackend {
	case SlotMemory, SlotRedis, SlotBolt:
	default:
		errs = append(errs, fmt.Sprintf("unknown SLOT_BACKEND %q", cfg.SlotBackend))
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

// KafkaEnabled reports whether any broker is configured
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
