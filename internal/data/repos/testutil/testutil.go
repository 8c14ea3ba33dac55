// Package testutil provides database helpers for repository tests. Tests that
// need Postgres are skipped unless TEST_POSTGRES_DSN is set.
package testutil

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Paolahz1/bootcamp-capability/internal/domain"
)

// DB opens a gorm connection against TEST_POSTGRES_DSN and migrates the
// schema. The calling test is skipped when the variable is unset.
func DB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Capability{},
		&domain.CapabilityTechnology{},
		&domain.SagaRun{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Reset truncates the tables touched by repository tests.
func Reset(t *testing.T, db *gorm.DB) {
	t.Helper()
	for _, table := range []string{"capability_technologies", "saga_runs", "capabilities"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset %s: %v", table, err)
		}
	}
}
