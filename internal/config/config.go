package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Transport modes
const (
	TransportPolling = "polling"
	TransportWebhook = "webhook"
)

// Store backends
const (
	StoreBackendSheets = "sheets"
	StoreBackendMongo  = "mongo"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Telegram configuration
	BotToken      string `json:"-"`
	TransportMode string `json:"transport_mode"`
	WebhookPath   string `json:"webhook_path"`
	PublicURL     string `json:"public_url"`

	// Directory store configuration
	StoreBackend            string `json:"store_backend"`
	StoreRateLimitPerMinute int    `json:"store_rate_limit_per_minute"`

	// Google Sheets configuration
	SheetsID            string `json:"sheets_id"`
	SheetsTabName       string `json:"sheets_tab_name"`
	ServiceAccountEmail string `json:"service_account_email"`
	ServiceAccountKey   string `json:"-"`

	// MongoDB configuration
	MongoURI                 string `json:"mongo_uri"`
	MongoDatabase            string `json:"mongo_database"`
	MongoDirectoryCollection string `json:"mongo_directory_collection"`

	// Redis configuration
	RedisEnabled   bool          `json:"redis_enabled"`
	RedisURI       string        `json:"redis_uri"`
	RedisPassword  string        `json:"redis_password"`
	RedisDB        int           `json:"redis_db"`
	RedisPoolSize  int           `json:"redis_pool_size"`
	UpdateDedupTTL time.Duration `json:"update_dedup_ttl"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`

	// Admin API
	AdminAPIKey string `json:"-"`
}

var (
	AppConfig *Config
)

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		return fmt.Errorf("BOT_TOKEN environment variable is required")
	}

	port, err := strconv.Atoi(getEnvOrDefault("PORT", "3000"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	transportMode := strings.ToLower(getEnvOrDefault("TRANSPORT_MODE", TransportPolling))
	if transportMode != TransportPolling && transportMode != TransportWebhook {
		return fmt.Errorf("invalid TRANSPORT_MODE %q: must be %q or %q", transportMode, TransportPolling, TransportWebhook)
	}

	webhookPath := getEnvOrDefault("WEBHOOK_PATH", "/telegram-webhook")
	if !strings.HasPrefix(webhookPath, "/") {
		webhookPath = "/" + webhookPath
	}

	storeBackend := strings.ToLower(getEnvOrDefault("STORE_BACKEND", StoreBackendSheets))
	if storeBackend != StoreBackendSheets && storeBackend != StoreBackendMongo {
		return fmt.Errorf("invalid STORE_BACKEND %q: must be %q or %q", storeBackend, StoreBackendSheets, StoreBackendMongo)
	}

	storeRateLimit, err := strconv.Atoi(getEnvOrDefault("STORE_RATE_LIMIT_PER_MINUTE", "60"))
	if err != nil || storeRateLimit <= 0 {
		return fmt.Errorf("invalid STORE_RATE_LIMIT_PER_MINUTE: must be a positive integer")
	}

	sheetsID := getFirstEnv("GOOGLE_SHEETS_ID")
	serviceAccountEmail := getFirstEnv("GS_ACCOUNT_EMAIL", "GOOGLE_SERVICE_ACCOUNT_EMAIL")
	serviceAccountKey := normalizePrivateKey(getFirstEnv("GS_PRIVATE_KEY", "GOOGLE_PRIVATE_KEY"))
	if storeBackend == StoreBackendSheets {
		if sheetsID == "" {
			return fmt.Errorf("GOOGLE_SHEETS_ID environment variable is required when STORE_BACKEND is sheets")
		}
		if serviceAccountEmail == "" || serviceAccountKey == "" {
			return fmt.Errorf("GS_ACCOUNT_EMAIL and GS_PRIVATE_KEY environment variables are required when STORE_BACKEND is sheets")
		}
	}

	redisEnabled, err := strconv.ParseBool(getEnvOrDefault("REDIS_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_ENABLED: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	updateDedupTTL, err := time.ParseDuration(getEnvOrDefault("UPDATE_DEDUP_TTL", "10m"))
	if err != nil {
		return fmt.Errorf("invalid UPDATE_DEDUP_TTL: %w", err)
	}

	tracingEnabled, err := strconv.ParseBool(getEnvOrDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return fmt.Errorf("invalid TRACING_ENABLED: %w", err)
	}

	AppConfig = &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", "development"),

		// Telegram configuration
		BotToken:      botToken,
		TransportMode: transportMode,
		WebhookPath:   webhookPath,
		PublicURL:     strings.TrimRight(getFirstEnv("RENDER_EXTERNAL_URL", "BASE_URL"), "/"),

		// Directory store configuration
		StoreBackend:            storeBackend,
		StoreRateLimitPerMinute: storeRateLimit,

		// Google Sheets configuration
		SheetsID:            sheetsID,
		SheetsTabName:       getEnvOrDefault("SHEETS_TAB_NAME", "Massagistas"),
		ServiceAccountEmail: serviceAccountEmail,
		ServiceAccountKey:   serviceAccountKey,

		// MongoDB configuration
		MongoURI:                 getEnvOrDefault("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:            getEnvOrDefault("MONGODB_DATABASE", "massagistas"),
		MongoDirectoryCollection: getEnvOrDefault("MONGODB_DIRECTORY_COLLECTION", "massagistas"),

		// Redis configuration
		RedisEnabled:   redisEnabled,
		RedisURI:       getEnvOrDefault("REDIS_URI", "localhost:6379"),
		RedisPassword:  getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:        redisDB,
		RedisPoolSize:  getEnvAsIntOrDefault("REDIS_POOL_SIZE", 10),
		UpdateDedupTTL: updateDedupTTL,

		// Tracing configuration
		TracingEnabled:  tracingEnabled,
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),

		// Admin API
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
	}

	return nil
}

// WebhookURL returns the public URL Telegram should post updates to,
// or an empty string when no public base URL is configured.
func (c *Config) WebhookURL() string {
	if c.PublicURL == "" {
		return ""
	}
	return c.PublicURL + c.WebhookPath
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns environment variable as int or default if not set or invalid
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getFirstEnv returns the first non-empty value among the given keys
func getFirstEnv(keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return ""
}

// normalizePrivateKey expands escaped newlines, as keys pasted into a single
// environment variable usually carry them as the two characters `\n`.
func normalizePrivateKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}
