package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/goliatone/go-publishing/pkg/model"
	"github.com/goliatone/go-publishing/pkg/settings"
	"github.com/goliatone/go-publishing/pkg/store/migrations"
)

type Options struct {
	Path          string
	EnableWAL     bool
	BusyTimeoutMS int
	MaxOpenConns  int
}

func DefaultOptions(path string) Options {
	return Options{
		Path:          path,
		EnableWAL:     true,
		BusyTimeoutMS: 5000,
		MaxOpenConns:  5,
	}
}

// SQLite stores option blobs and the category taxonomy in one database.
type SQLite struct {
	db *sql.DB
}

var (
	_ Store             = (*SQLite)(nil)
	_ settings.Taxonomy = (*SQLite)(nil)
)

// OpenSQLite opens (creating if needed) the database at opts.Path and applies
// pending migrations.
func OpenSQLite(ctx context.Context, opts Options) (*SQLite, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, fmt.Errorf("store: database path is required")
	}
	if opts.BusyTimeoutMS <= 0 {
		opts.BusyTimeoutMS = 5000
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 5
	}

	cleanPath := filepath.Clean(opts.Path)
	dsnParts := []string{
		fmt.Sprintf("_pragma=busy_timeout(%d)", opts.BusyTimeoutMS),
	}
	if opts.EnableWAL {
		dsnParts = append(dsnParts, "_pragma=journal_mode(WAL)")
	}
	dsn := fmt.Sprintf("file:%s?%s", cleanPath, strings.Join(dsnParts, "&"))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %s: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetConnMaxIdleTime(30 * time.Second)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping sqlite %s: %w", cleanPath, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLite) Load(ctx context.Context, key string) (model.Values, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("store: option key is required")
	}
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM options WHERE option_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Values{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: load option %q: %w", key, err)
	}
	return Decode([]byte(payload))
}

func (s *SQLite) Save(ctx context.Context, key string, values model.Values) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("store: option key is required")
	}
	payload, err := Encode(values)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO options(option_key, value) VALUES(?, ?)
ON CONFLICT(option_key) DO UPDATE SET
    value = excluded.value,
    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')`, key, string(payload))
	if err != nil {
		return fmt.Errorf("store: save option %q: %w", key, err)
	}
	return nil
}

// UpsertCategories inserts or renames categories, keeping the given order.
func (s *SQLite) UpsertCategories(ctx context.Context, categories ...settings.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin category upsert: %w", err)
	}
	for position, category := range categories {
		id := strings.TrimSpace(category.ID)
		if id == "" {
			_ = tx.Rollback()
			return fmt.Errorf("store: category id is required")
		}
		_, err := tx.ExecContext(ctx, `
INSERT INTO categories(id, name, position) VALUES(?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, position = excluded.position`,
			id, category.Name, position)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store: upsert category %q: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit category upsert: %w", err)
	}
	return nil
}

func (s *SQLite) ListCategories(ctx context.Context) ([]settings.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list categories: %w", err)
	}
	defer rows.Close()

	var out []settings.Category
	for rows.Next() {
		var category settings.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("store: scan category: %w", err)
		}
		out = append(out, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate categories: %w", err)
	}
	return out, nil
}

func (s *SQLite) CategoryExists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM categories WHERE id = ?`, strings.TrimSpace(id)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: lookup category %q: %w", id, err)
	}
	return true, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
`); err != nil {
		return fmt.Errorf("store: ensure schema_migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	all := migrations.All()
	sort.Slice(all, func(i, j int) bool { return all[i].Version < all[j].Version })

	for _, m := range all {
		if applied[m.Version] {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("store: begin migration %d: %w", m.Version, err)
		}
		if _, err := tx.ExecContext(ctx, m.UpSQL); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store: apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.Version, m.Name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("store: record migration %d (%s): %w", m.Version, m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("store: commit migration %d (%s): %w", m.Version, m.Name, err)
		}
	}
	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("store: query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("store: scan applied migration: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate applied migrations: %w", err)
	}
	return applied, nil
}
