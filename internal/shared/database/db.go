// Package database opens the SQLite store and applies the embedded migrations.
package database

import (
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"github.com/reshetovitsme/tg-keyword-monitor/migrations"
	"github.com/samber/oops"

	_ "modernc.org/sqlite" //revive:disable:blank-imports
)

const dsnPragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

// Open connects to the SQLite file at path, creating parent directories,
// and brings the schema up to date.
func Open(path string) (*sqlx.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, oops.With("path", path, "context", "failed to create database directory").Wrap(err)
		}
	}

	db, err := sqlx.Connect("sqlite", "file:"+path+dsnPragmas)
	if err != nil {
		return nil, oops.With("path", path, "context", "failed to connect to database").Wrap(err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := ApplyMigrations(db.DB); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Error closing database after migration failure", "error", closeErr)
		}
		return nil, err
	}

	slog.Info("Database connected and migrations applied", "path", path)
	return db, nil
}

// Close closes the connection pool.
func Close(db *sqlx.DB) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		slog.Error("Error closing database connection", "error", err)
	}
}

// ApplyMigrations runs all pending up migrations from migrations.FS.
func ApplyMigrations(db *sql.DB) error {
	if db == nil {
		return oops.New("database connection is nil, cannot apply migrations")
	}

	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return oops.With("context", "failed to create embed source driver").Wrap(err)
	}

	dbDriver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return oops.With("context", "failed to create sqlite migration driver").Wrap(err)
	}

	migrator, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return oops.With("context", "failed to create migrate instance").Wrap(err)
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("No database migrations to apply")
			return nil
		}
		return oops.With("context", "failed to apply migrations").Wrap(err)
	}

	slog.Info("Database migrations applied")
	return nil
}
