package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/portalsur/portalsur/internal/property"
)

// SQLiteMedium keeps each record as a row in a properties table,
// addressed by id equality. Unlike the blob media there is no
// whole-collection rewrite; the contract is the same.
type SQLiteMedium struct {
	db *sql.DB
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS properties (
		seq  INTEGER PRIMARY KEY AUTOINCREMENT,
		id   TEXT    NOT NULL UNIQUE,
		doc  TEXT    NOT NULL
	)`,
}

// OpenSQLite opens (or creates) the catalog database at path, enables
// WAL mode and runs migrations.
func OpenSQLite(path string) (*SQLiteMedium, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("setting WAL mode: %w (also failed to close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			closeErr := db.Close()
			if closeErr != nil {
				return nil, fmt.Errorf("migration %d: %w (also failed to close: %v)", i, err, closeErr)
			}
			return nil, fmt.Errorf("migration %d: %w", i, err)
		}
	}

	return &SQLiteMedium{db: db}, nil
}

// Close closes the underlying database.
func (m *SQLiteMedium) Close() error {
	return m.db.Close()
}

// GetAll returns records most recent first.
func (m *SQLiteMedium) GetAll(ctx context.Context) ([]property.Property, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT doc FROM properties ORDER BY seq DESC")
	if err != nil {
		return nil, fmt.Errorf("querying properties: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	records := []property.Property{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		var p property.Property
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, fmt.Errorf("parsing stored property: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}

	return records, nil
}

// Insert stores a new record.
func (m *SQLiteMedium) Insert(ctx context.Context, p property.Property) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling property: %w", err)
	}
	if _, err := m.db.ExecContext(ctx,
		"INSERT INTO properties (id, doc) VALUES (?, ?)", p.ID, string(doc)); err != nil {
		return fmt.Errorf("inserting property: %w", err)
	}
	return nil
}

// Replace overwrites the row with the same id.
func (m *SQLiteMedium) Replace(ctx context.Context, p property.Property) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling property: %w", err)
	}

	result, err := m.db.ExecContext(ctx,
		"UPDATE properties SET doc = ? WHERE id = ?", string(doc), p.ID)
	if err != nil {
		return fmt.Errorf("updating property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveByID deletes the row with the given id.
func (m *SQLiteMedium) RemoveByID(ctx context.Context, id string) error {
	result, err := m.db.ExecContext(ctx, "DELETE FROM properties WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
