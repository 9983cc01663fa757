// Package dbtest starts a throwaway PostgreSQL for integration tests.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"github.com/Tomlord1122/todo-docs/internal/database"
	"github.com/Tomlord1122/todo-docs/internal/logging"
)

var (
	once      sync.Once
	sharedDSN string
	initErr   error
)

// SetupDB starts a shared PostgreSQL container (once per test binary), applies
// migrations, truncates the todos table and returns a GORM handle. Tests are
// skipped under -short or when no container runtime is available.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("dbtest: skipping container-backed test in -short mode")
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	once.Do(func() {
		sharedDSN, initErr = startContainerAndMigrate()
	})
	if initErr != nil {
		t.Skipf("dbtest: postgres container unavailable: %v", initErr)
	}

	sqlDB, err := sql.Open("pgx", sharedDSN)
	if err != nil {
		t.Fatalf("dbtest: open: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := database.Open(sqlDB, logging.Discard(), time.Second)
	if err != nil {
		t.Fatalf("dbtest: gorm open: %v", err)
	}

	if err := db.Exec("TRUNCATE TABLE todos RESTART IDENTITY").Error; err != nil {
		t.Fatalf("dbtest: truncate: %v", err)
	}
	return db
}

func startContainerAndMigrate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := postgres.Run(ctx, "postgres:17-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		return "", fmt.Errorf("start container: %w", err)
	}
	// The container lives until the test process exits; ryuk reaps it.
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return "", fmt.Errorf("connection string: %w", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return "", fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return "", fmt.Errorf("db ping: %w", err)
	}
	if err := database.Migrate(ctx, db, logging.Discard()); err != nil {
		return "", err
	}
	return dsn, nil
}
