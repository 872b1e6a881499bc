package db

import (
	"errors"
	"fmt"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/diewo77/go-quotations/internal/models"
)

// Migrate brings the schema up to date with GORM's AutoMigrate. This is the
// default path; postgres deployments that version their schema run SQL
// migrations instead (MigrateSQL).
func Migrate(conn *gorm.DB) error {
	toMigrate := []interface{}{
		&models.Account{},
		&models.User{},
		&models.Client{},
		&models.Product{},
		&models.Quotation{},
		&models.QuotationItem{},
		&models.CompanyProfile{},
		&models.TermsConditions{},
	}
	for _, m := range toMigrate {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	// sanity check: core tables must exist after migration
	for _, table := range []string{"accounts", "quotations", "quotation_items"} {
		if !conn.Migrator().HasTable(table) {
			return errors.New("missing table after migration: " + table)
		}
	}
	return nil
}

// MigrateSQL executes the versioned migrations in ./migrations against a
// postgres DSN using golang-migrate's file source.
func MigrateSQL(dsn string) error {
	m, err := migrate.New("file://migrations", NormalizeDSN(dsn))
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
