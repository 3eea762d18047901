package main

import (
	"context"
	"fmt"
	"net/url"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/osse101/Huanyu_Go/internal/config"
	"github.com/osse101/Huanyu_Go/internal/database"
)

const (
	flagDBURL = "db-url"

	redactedPassword = "REDACTED"
)

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// dbURL resolves the connection string from the flag, DB_URL or the DB_* parts
func dbURL(cmd *cobra.Command) string {
	if f := cmd.Flag(flagDBURL); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	cfg := &config.Config{
		DBURL:      os.Getenv("DB_URL"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "huanyu"),
	}
	return cfg.GetDBConnString()
}

// redactPassword hides the password of a postgres URL for display
func redactPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return connStr
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), redactedPassword)
	}
	return u.String()
}

func openPool(ctx context.Context, cmd *cobra.Command) (*pgxpool.Pool, error) {
	connStr := dbURL(cmd)
	PrintInfo("Connecting to database: %s", redactPassword(connStr))
	pool, err := database.NewPool(ctx, database.PoolConfig{
		ConnString: connStr,
		MaxConns:   database.DefaultMinConnections,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}
