package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/nexskill/internal/config"
	"gorm.io/gorm"
)

// OpenTest returns a migrated in-memory SQLite database private to t.
func OpenTest(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := Connect(config.DatabaseConfig{
		Driver: "sqlite",
		URL:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		// A single connection keeps the in-memory database alive and
		// avoids shared-cache table locks.
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = Close(db) })
	return db
}
