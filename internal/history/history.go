// Package history keeps a local append-only journal of submissions
// made from this console. The journal is informational; a write
// failure never blocks the submission it describes.
package history

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Kinds of journal entries.
const (
	KindQuote = "quote"
	KindDPR   = "dpr"
	KindAsset = "asset"
)

// Entry is one recorded submission.
type Entry struct {
	ID        string
	Kind      string
	Summary   string
	CreatedAt time.Time
}

// Journal is a sqlite-backed submission log.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database under dir and
// applies pending migrations.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("history dir: %w", err)
	}
	path := filepath.Join(dir, "history.db")
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("history migrations: %w", err)
	}
	return &Journal{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record appends one entry and returns it.
func (j *Journal) Record(kind, summary string) (Entry, error) {
	e := Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Summary:   summary,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	_, err := j.db.Exec(
		`INSERT INTO journal (id, kind, summary, created_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.Kind, e.Summary, e.CreatedAt,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record %s: %w", kind, err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(
		`SELECT id, kind, summary, created_at FROM journal ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Summary, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
