package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string // "json" or "text"
	Environment string // "dev", "staging", "prod"
	ServiceName string
	Version     string
	LogDir      string // also write session logs here when set

	// Database
	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBURL             string // overrides the DB_* parts when set
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	AutoMigrate       bool

	// Core behaviour
	StoreDriver   string // "postgres" or "memory"
	FlowIsolation string // "transaction" or "sequential"
	TxMaxAttempts int

	// Permissions
	SuperAdminAccountID string
	APIKey              string // API key for authentication

	// Reference data
	CatalogCacheSize  int
	CatalogCacheTTL   time.Duration
	OfferPageSize     int
	ItemsConfigPath   string
	RecipesConfigPath string
	SeedCatalog       bool

	// StartingBalance is credited to every newly registered account
	StartingBalance int64

	// Recovery journal
	EventLogRetention       time.Duration
	EventLogCleanupInterval time.Duration
	WorkerCount             int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", "dev"),
		LogDir:      getEnv("LOG_DIR", ""),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "huanyu"),
		DBURL:             getEnv("DB_URL", ""),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		AutoMigrate:       getEnvAsBool("DB_AUTO_MIGRATE", true),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		FlowIsolation: strings.ToLower(getEnv("FLOW_ISOLATION", FlowIsolationTransaction)),
		TxMaxAttempts: getEnvAsInt("TX_MAX_ATTEMPTS", DefaultTxMaxAttempts),

		SuperAdminAccountID: getEnv("SUPER_ADMIN_ACCOUNT_ID", ""),
		APIKey:              getEnv("API_KEY", ""),

		CatalogCacheSize:  getEnvAsInt("CATALOG_CACHE_SIZE", DefaultCatalogCacheSize),
		CatalogCacheTTL:   getEnvAsDuration("CATALOG_CACHE_TTL", DefaultCatalogCacheTTL),
		OfferPageSize:     getEnvAsInt("OFFER_PAGE_SIZE", DefaultOfferPageSize),
		ItemsConfigPath:   getEnv("ITEMS_CONFIG_PATH", ConfigPathItems),
		RecipesConfigPath: getEnv("RECIPES_CONFIG_PATH", ConfigPathRecipes),
		SeedCatalog:       getEnvAsBool("SEED_CATALOG", true),

		StartingBalance: int64(getEnvAsInt("STARTING_BALANCE", DefaultStartingBalance)),

		EventLogRetention:       getEnvAsDuration("EVENT_LOG_RETENTION", DefaultEventLogRetention),
		EventLogCleanupInterval: getEnvAsDuration("EVENT_LOG_CLEANUP_INTERVAL", DefaultEventLogCleanupInterval),
		WorkerCount:             getEnvAsInt("WORKER_COUNT", DefaultWorkerCount),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	// Validate API key is set
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}

	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: expected %s or %s", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory)
	}

	switch c.FlowIsolation {
	case FlowIsolationTransaction, FlowIsolationSequential:
	default:
		return fmt.Errorf("invalid FLOW_ISOLATION %q: expected %s or %s", c.FlowIsolation, FlowIsolationTransaction, FlowIsolationSequential)
	}

	if c.SuperAdminAccountID != "" {
		if _, err := uuid.Parse(c.SuperAdminAccountID); err != nil {
			return fmt.Errorf("invalid SUPER_ADMIN_ACCOUNT_ID: %w", err)
		}
	}

	if c.TxMaxAttempts < 1 {
		c.TxMaxAttempts = 1
	}
	if c.OfferPageSize < 1 {
		c.OfferPageSize = DefaultOfferPageSize
	}
	if c.CatalogCacheSize < 1 {
		c.CatalogCacheSize = DefaultCatalogCacheSize
	}
	if c.EventLogCleanupInterval <= 0 {
		c.EventLogCleanupInterval = DefaultEventLogCleanupInterval
	}
	if c.WorkerCount < 1 {
		c.WorkerCount = DefaultWorkerCount
	}
	if c.StartingBalance < 0 {
		return fmt.Errorf("invalid STARTING_BALANCE %d: must not be negative", c.StartingBalance)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable, falling back on parse errors
func getEnvAsInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvAsBool accepts the strconv.ParseBool spellings, falling back on parse errors
func getEnvAsBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvAsDuration retrieves a duration environment variable ("30s", "5m"),
// falling back on parse errors
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return defaultValue
	}
	return d
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	if c.DBURL != "" {
		return c.DBURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsDevelopment reports whether the service runs in a dev environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "dev" || c.Environment == "development"
}
