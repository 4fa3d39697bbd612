//go:build integration

package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	pgdb "github.com/alanyang/dogs/internal/adapter/postgres"
)

// SetupTestDB connects to the test database used as a LISTEN/NOTIFY broker.
// It skips the test if TEST_DATABASE_URL is not set.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	pool, err := pgdb.Connect(context.Background(), url)
	if err != nil {
		t.Fatalf("connect to test DB: %v", err)
	}

	t.Cleanup(func() { pool.Close() })
	return pool
}
