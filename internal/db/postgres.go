package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/envutil"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	host := envutil.Str("POSTGRES_HOST", "localhost")
	port := envutil.Str("POSTGRES_PORT", "5432")
	user := envutil.Str("POSTGRES_USER", "postgres")
	password := envutil.Str("POSTGRES_PASSWORD", "")
	name := envutil.Str("POSTGRES_NAME", "capability")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	serviceLog.Info("Connecting to Postgres...")
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &PostgresService{db: gdb, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating postgres tables...")
	if err := s.db.AutoMigrate(
		&domain.Capability{},
		&domain.CapabilityTechnology{},
		&domain.SagaRun{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	// Relation rows must not outlive their capability.
	if err := s.db.Exec(`
		ALTER TABLE "capability_technologies"
		DROP CONSTRAINT IF EXISTS "fk_capability_technologies_capability_id"
	`).Error; err != nil {
		return fmt.Errorf("drop fk_capability_technologies_capability_id: %w", err)
	}
	if err := s.db.Exec(`
		ALTER TABLE "capability_technologies"
		ADD CONSTRAINT "fk_capability_technologies_capability_id"
		FOREIGN KEY ("capability_id")
		REFERENCES "capabilities"("id")
		ON DELETE CASCADE
	`).Error; err != nil {
		return fmt.Errorf("add fk_capability_technologies_capability_id: %w", err)
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
