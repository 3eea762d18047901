package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/Huanyu_Go/internal/database/schema"
	"github.com/osse101/Huanyu_Go/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

func testPoolConfig(maxConns int) PoolConfig {
	return PoolConfig{
		ConnString:  testDBConnString,
		MaxConns:    maxConns,
		MaxIdleTime: time.Minute,
		MaxLifetime: 5 * time.Minute,
	}
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool(context.Background(), PoolConfig{ConnString: "::not a dsn::"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestNewPool_ClampsToMinimum(t *testing.T) {
	requireDB(t)

	pool, err := NewPool(context.Background(), testPoolConfig(1))
	require.NoError(t, err)
	defer pool.Close()

	assert.Equal(t, int32(DefaultMinConnections), pool.Config().MaxConns)
}

func TestMigrations_ApplyCleanly(t *testing.T) {
	requireDB(t)
	ctx := context.Background()

	pool, err := NewPool(ctx, testPoolConfig(4))
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, schema.Up(ctx, pool))
	require.NoError(t, schema.Up(ctx, pool), "re-running migrations is a no-op")

	version, err := schema.Version(ctx, pool)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, version, int64(1))

	var tables int
	err = pool.QueryRow(ctx, `
		SELECT count(*) FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name IN ('accounts', 'items', 'inventory_entries', 'listings', 'recipes', 'admins')
	`).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 6, tables)
}

func TestPool_ConcurrentAccessReleasesConnections(t *testing.T) {
	requireDB(t)

	pool, err := NewPool(context.Background(), testPoolConfig(10))
	require.NoError(t, err)
	defer pool.Close()

	checker := leaktest.NewGoroutineChecker(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			var result int
			if err := pool.QueryRow(context.Background(), "SELECT $1::int", id).Scan(&result); err != nil {
				t.Errorf("worker %d query failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(0), pool.Stat().AcquiredConns(), "all connections should be released")
	checker.Check(2)
}
