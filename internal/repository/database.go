package repository

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"baselines/internal/config"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations
var migrations embed.FS

func driverName(dbType string) (string, error) {
	switch dbType {
	case config.DatabaseSQLite:
		return "sqlite", nil
	case config.DatabasePostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("unknown database type %q", dbType)
	}
}

// ensureDir creates the directory holding an SQLite database file
func ensureDir(dbType, dsn string) error {
	if dbType != config.DatabaseSQLite {
		return nil
	}
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	return nil
}

// NewDB connects to the configured database
func NewDB(dbType, dsn string, logger *zap.Logger) (*sqlx.DB, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}

	if err := ensureDir(dbType, dsn); err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite allows a single writer
	if dbType == config.DatabaseSQLite {
		db.SetMaxOpenConns(1)
	}

	logger.Info("Database connected", zap.String("type", dbType))
	return db, nil
}

// MigrateDB applies the embedded migrations for dbType on a dedicated connection
func MigrateDB(dbType, dsn string, logger *zap.Logger) error {
	driver, err := driverName(dbType)
	if err != nil {
		return err
	}

	if err := ensureDir(dbType, dsn); err != nil {
		return err
	}

	src, err := iofs.New(migrations, "migrations/"+dbType)
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	var instance database.Driver
	switch dbType {
	case config.DatabasePostgres:
		instance, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		instance, err = sqlite.WithInstance(db, &sqlite.Config{})
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("couldn't get database instance for running migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "baselines", instance)
	if err != nil {
		instance.Close()
		return fmt.Errorf("couldn't create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("couldn't run database migration: %w", err)
	}

	version, _, _ := m.Version()
	logger.Info("Database migration was run successfully", zap.Uint("version", version))
	return nil
}

// Open connects to the database described by cfg after bringing its schema up to date
func Open(cfg *config.Config, logger *zap.Logger) (*sqlx.DB, error) {
	dsn := cfg.DSN()
	if err := MigrateDB(cfg.Database.Type, dsn, logger); err != nil {
		return nil, err
	}
	return NewDB(cfg.Database.Type, dsn, logger)
}
