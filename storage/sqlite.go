package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	msqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DefaultKey is the key the fund is stored under.
const DefaultKey = "community_fund_data"

// SQLite stores the blob as a row of a key/value table.
type SQLite struct {
	db  *sql.DB
	key string
}

// NewSQLite opens (or creates) the database at dbPath and migrates it.
func NewSQLite(dbPath, key string) (*SQLite, error) {
	if key == "" {
		key = DefaultKey
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLite{db: db, key: key}, nil
}

// RunMigrations applies the embedded migrations to the database at dbPath.
func RunMigrations(dbPath string) error {
	// a separate connection, closed by the migrate instance.
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := msqlite.WithInstance(migrateDB, &msqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLite) ReadBlob(ctx context.Context) (string, bool, error) {
	var blob string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, s.key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %q: %w", s.key, err)
	}
	return blob, true, nil
}

func (s *SQLite) WriteBlob(ctx context.Context, blob string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.key, blob)
	if err != nil {
		return fmt.Errorf("write %q: %w", s.key, err)
	}
	slog.DebugContext(ctx, "fund saved to SQLite", "key", s.key, "bytes", len(blob))
	return nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = ?`, s.key); err != nil {
		return fmt.Errorf("clear %q: %w", s.key, err)
	}
	return nil
}
