package config

import "time"

const (
	// Configuration file paths
	ConfigPathItems   = "configs/items.json"
	ConfigPathRecipes = "configs/recipes.json"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Flow isolation modes
const (
	// FlowIsolationTransaction runs each coordinator flow inside one serializable transaction
	FlowIsolationTransaction = "transaction"
	// FlowIsolationSequential applies each step as its own statement
	FlowIsolationSequential = "sequential"
)

// Defaults
const (
	DefaultServiceName       = "huanyu"
	DefaultDBMaxConns        = 10
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultTxMaxAttempts     = 8
	DefaultCatalogCacheSize  = 512
	DefaultCatalogCacheTTL   = 10 * time.Minute
	DefaultOfferPageSize     = 50
	DefaultStartingBalance   = 0

	DefaultEventLogRetention       = 30 * 24 * time.Hour
	DefaultEventLogCleanupInterval = time.Hour
	DefaultWorkerCount             = 2
)
