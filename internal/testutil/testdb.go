// Package testutil provides isolated in-memory stores for package tests.
package testutil

import (
	"fmt"
	"io"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hechonl_backend/database"
	"hechonl_backend/internal/config"
	"hechonl_backend/internal/events"
	"hechonl_backend/internal/logger"
	"hechonl_backend/internal/repositories"
)

// NewTestDB opens a private in-memory SQLite database with every table migrated.
// It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	logger.InitWithWriter("test", io.Discard)

	db, err := database.Open(config.DatabaseConfig{
		Driver:   "sqlite",
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}

// NewTestStore returns a store over a fresh database together with its bus.
func NewTestStore(t *testing.T) (*repositories.Store, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	t.Cleanup(bus.Close)
	return repositories.NewStore(NewTestDB(t), bus), bus
}
