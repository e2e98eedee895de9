package testutil

import (
	"database/sql"
	"testing"

	"github.com/Lazycharm/Careerpilot-sub001/internal/db"
	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database with the full schema
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// In-memory SQLite vanishes per connection, so keep exactly one
	conn.SetMaxOpenConns(1)

	if err := db.RunMigrations(conn); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}
