package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/kirkbot2/speedaudit/internal/config"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// New creates a new database connection and ensures the schema exists.
func New(cfg config.DatabaseConfig) (*sql.DB, error) {
	var db *sql.DB
	var err error

	if cfg.Driver == "sqlite" {
		db, err = sql.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}

		// Enable WAL mode for better concurrency
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}

		// SQLite only supports one writer at a time
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(time.Hour)

	} else if cfg.Driver == "postgres" {
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
		)

		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// migrate creates the audits table. The schema sticks to types both
// drivers accept so one statement serves sqlite and postgres.
func migrate(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS audits (
			id INTEGER PRIMARY KEY,
			target TEXT NOT NULL,
			observed_at TIMESTAMP NOT NULL,
			load_time_ms BIGINT NOT NULL,
			ttfb_ms BIGINT NOT NULL,
			body_size_bytes BIGINT NOT NULL,
			status_code INTEGER NOT NULL,
			score INTEGER NOT NULL,
			recommendations TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_audits_target ON audits (target, observed_at);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
