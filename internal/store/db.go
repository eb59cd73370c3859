// Package store provides SQLite persistence for pixelpet run history.
// It handles connection lifecycle, migrations and the run repository.
package store

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spincat/pixelpet/internal/log"
	"github.com/spincat/pixelpet/internal/store/migrations"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB manages the SQLite database connection for pixelpet.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens a database connection, configures pragmas, and runs migrations.
// Creates the parent directory if it doesn't exist. If an existing database
// file is present, creates a backup at {path}.bak before running migrations.
func NewDB(path string) (*DB, error) {
	log.Debug(log.CatDB, "opening database", "path", path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.ErrorErr(log.CatDB, "failed to create database directory", err, "path", dir)
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	// Pre-migration backup: copy existing DB to {path}.bak
	if _, err := os.Stat(path); err == nil {
		backupPath := path + ".bak"
		if err := copyFile(path, backupPath); err != nil {
			log.ErrorErr(log.CatDB, "failed to create pre-migration backup", err, "path", path, "backup", backupPath)
			return nil, fmt.Errorf("creating pre-migration backup: %w", err)
		}
		log.Debug(log.CatDB, "created pre-migration backup", "backup", backupPath)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		log.ErrorErr(log.CatDB, "failed to open database", err, "path", path)
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "failed to ping database", err, "path", path)
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// WAL mode for better concurrent access
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := migrations.RunMigrations(conn); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "failed to run migrations", err)
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	log.Info(log.CatDB, "database initialized", "path", path)

	return &DB{
		conn: conn,
		path: path,
	}, nil
}

// Close releases database resources.
func (db *DB) Close() error {
	if db.conn != nil {
		log.Debug(log.CatDB, "closing database", "path", db.path)
		return db.conn.Close()
	}
	return nil
}

// Runs returns a RunRepository backed by this connection.
func (db *DB) Runs() *RunRepository {
	return newRunRepository(db.conn)
}

// Connection returns the underlying *sql.DB for testing purposes.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// copyFile copies a file from src to dst, overwriting dst if it exists.
// A close error on the destination is reported so a truncated backup on a
// full disk is not mistaken for success.
func copyFile(src, dst string) (retErr error) {
	sourceFile, err := os.Open(src) //nolint:gosec // G304: src is the database path, controlled by application
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := sourceFile.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("closing source file: %w", closeErr)
		}
	}()

	sourceInfo, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, sourceInfo.Mode()) //nolint:gosec // G304: dst is backup path derived from database path
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := destFile.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("closing backup file: %w", closeErr)
		}
	}()

	_, err = io.Copy(destFile, sourceFile)
	return err
}
