package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- ETF configuration table
		CREATE TABLE IF NOT EXISTS etf (
			symbol VARCHAR(20) NOT NULL PRIMARY KEY,
			display_name VARCHAR(100) NOT NULL,
			target_percent TEXT NOT NULL,
			fractionable BOOLEAN NOT NULL DEFAULT TRUE,
			resolved_symbol VARCHAR(20),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		-- Append-only transaction ledger
		CREATE TABLE IF NOT EXISTS txn (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(20) NOT NULL,
			date DATETIME NOT NULL,
			shares TEXT NOT NULL,
			price TEXT NOT NULL,
			amount TEXT NOT NULL,
			commission TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(symbol) REFERENCES etf(symbol)
		);
		CREATE INDEX IF NOT EXISTS idx_txn_symbol ON txn(symbol);
		CREATE INDEX IF NOT EXISTS idx_txn_date ON txn(date);

		-- Price quote audit trail
		CREATE TABLE IF NOT EXISTS price_quote (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(20) NOT NULL,
			price TEXT NOT NULL,
			fetched_at DATETIME NOT NULL,
			FOREIGN KEY(symbol) REFERENCES etf(symbol) ON DELETE CASCADE
		);
		CREATE INDEX IF NOT EXISTS idx_price_quote_symbol ON price_quote(symbol);
		CREATE INDEX IF NOT EXISTS idx_price_quote_fetched_at ON price_quote(fetched_at);
	`

	_, err := db.Exec(schema)
	return err
}
