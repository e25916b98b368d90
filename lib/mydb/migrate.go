package mydb

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var migrationFiles embed.FS

const migrationsTable = "shop_schema_migrations"

// migrate never closes the migrate instance: that would close the shared pool.
func (d *DB) migrate() error {
	source, err := iofs.New(migrationFiles, "migrations/"+d.driver)
	if err != nil {
		return fmt.Errorf("could not read migrations: %w", err)
	}

	var driver database.Driver
	switch d.driver {
	case DriverSqlite:
		driver, err = sqlite.WithInstance(d.db, &sqlite.Config{
			MigrationsTable: migrationsTable,
		})
	case DriverPostgres:
		driver, err = postgres.WithInstance(d.db, &postgres.Config{
			MigrationsTable: migrationsTable,
		})
	}
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, d.driver, driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}
