package database

import (
	"fmt"
	"testing"

	"transaksi-api/internal/config"
	"transaksi-api/internal/models"

	"gorm.io/driver/sqlite"
)

// SetupTestDB returns a DB backed by a private in-memory SQLite database with the
// transaksi table created. The pool is pinned to one connection so every
// WithConnection call sees the same in-memory database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(sqlite.Open(":memory:"), &config.DatabaseConfig{
		Driver:         config.DriverSQLite,
		MaxConnections: 1,
		MaxIdleConns:   1,
		LogLevel:       "silent",
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.DB.AutoMigrate(&models.Transaction{}); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// CreateTestTransaction inserts txn directly, bypassing the repository.
func CreateTestTransaction(t *testing.T, db *DB, txn *models.Transaction) *models.Transaction {
	t.Helper()

	if err := db.DB.Create(txn).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}

	return txn
}

func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	if err := db.DB.Exec(fmt.Sprintf("DELETE FROM %s", models.TransactionTable)).Error; err != nil {
		t.Logf("failed to cleanup table %s: %v", models.TransactionTable, err)
	}
}
