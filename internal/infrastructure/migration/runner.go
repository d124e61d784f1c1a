// Package migration runs versioned schema migrations with golang-migrate,
// with a GORM AutoMigrate fallback for development.
package migration

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/models"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// Runner applies SQL migration scripts from a directory.
type Runner struct {
	scriptsPath string
	logger      logger.Interface
}

func NewRunner(scriptsPath string, log logger.Interface) *Runner {
	return &Runner{
		scriptsPath: scriptsPath,
		logger:      log,
	}
}

// Up applies all pending migrations.
func (r *Runner) Up(db *gorm.DB) error {
	m, cleanup, err := r.instance(db)
	if err != nil {
		return err
	}
	defer cleanup()

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d", version)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	final, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read final migration version: %w", err)
	}

	r.logger.Infow("migrations applied", "from_version", version, "to_version", final)
	return nil
}

// Down rolls back the given number of migrations.
func (r *Runner) Down(db *gorm.DB, steps int) error {
	m, cleanup, err := r.instance(db)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	r.logger.Infow("migrations rolled back", "steps", steps)
	return nil
}

// Status returns the current version and dirty flag.
func (r *Runner) Status(db *gorm.DB) (uint, bool, error) {
	m, cleanup, err := r.instance(db)
	if err != nil {
		return 0, false, err
	}
	defer cleanup()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read migration version: %w", err)
	}
	return version, dirty, nil
}

func (r *Runner) instance(db *gorm.DB) (*migrate.Migrate, func(), error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	m, err := r.createMigrateInstance(sqlDB)
	if err != nil {
		return nil, nil, err
	}

	return m, func() { m.Close() }, nil
}

func (r *Runner) createMigrateInstance(sqlDB *sql.DB) (*migrate.Migrate, error) {
	driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create MySQL driver: %w", err)
	}

	sourceURL := fmt.Sprintf("file://%s", r.scriptsPath)
	m, err := migrate.NewWithDatabaseInstance(sourceURL, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// AutoMigrate syncs the schema from the persistence models. Development
// only; versioned scripts are the source of truth elsewhere.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserModel{},
		&models.SubscriptionModel{},
		&models.SubscriptionPauseModel{},
		&models.PerkUsageModel{},
		&models.PropertyModel{},
		&models.RewardCreditModel{},
		&models.BookingModel{},
		&models.RetentionAttemptModel{},
		&models.BillingAdjustmentModel{},
		&models.CreditTransactionModel{},
	)
}
