// Package migrations provides database migration support for pixelpet.
//
// It contains a custom SQLite migration driver compatible with
// ncruces/go-sqlite3 (CGO-free). The standard golang-migrate/v4/database/sqlite3
// driver cannot be used because it imports github.com/mattn/go-sqlite3, which
// causes a driver registration collision (both drivers register as "sqlite3").
//
// The custom driver is based on golang-migrate's sqlite3 driver but removes
// the mattn dependency, allowing use with any sql.DB connection opened via
// the ncruces driver.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed *.sql
var embeddedMigrationsFS embed.FS

// MigrationsFS returns the embedded filesystem containing migration SQL files.
func MigrationsFS() fs.FS {
	return embeddedMigrationsFS
}

// RunMigrations applies all pending migrations to the provided database.
// migrate.ErrNoChange is not an error: it means the schema is current.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(embeddedMigrationsFS, ".")
	if err != nil {
		return err
	}

	driver, err := WithInstance(db, &Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}

	return nil
}
