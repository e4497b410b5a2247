package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/portalsur/portalsur/internal/property"
)

// FileMedium persists the catalog as a single JSON array on disk.
// Every operation reads the whole file and mutations write it back in
// full. A missing file is an empty catalog; a malformed file is an
// error, not an empty catalog.
type FileMedium struct {
	path string
}

// NewFileMedium creates a file medium at the given path. The directory
// is created on first write.
func NewFileMedium(path string) *FileMedium {
	return &FileMedium{path: path}
}

// DefaultCatalogPath returns the default catalog location:
// ~/.config/portalsur/catalog.json
func DefaultCatalogPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "portalsur", "catalog.json"), nil
}

func (m *FileMedium) read() ([]property.Property, error) {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return []property.Property{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", m.path, err)
	}

	var records []property.Property
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", m.path, err)
	}
	return records, nil
}

func (m *FileMedium) write(records []property.Property) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("creating catalog directory: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", m.path, err)
	}
	return nil
}

// GetAll returns the stored records, most recent first.
func (m *FileMedium) GetAll(ctx context.Context) ([]property.Property, error) {
	return m.read()
}

// Insert prepends the record so native order stays most-recent-first.
func (m *FileMedium) Insert(ctx context.Context, p property.Property) error {
	records, err := m.read()
	if err != nil {
		return err
	}
	records = append([]property.Property{p}, records...)
	return m.write(records)
}

// Replace swaps the stored record with the same id, keeping its position.
func (m *FileMedium) Replace(ctx context.Context, p property.Property) error {
	records, err := m.read()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == p.ID {
			records[i] = p
			return m.write(records)
		}
	}
	return ErrNotFound
}

// RemoveByID drops the record with the given id.
func (m *FileMedium) RemoveByID(ctx context.Context, id string) error {
	records, err := m.read()
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			records = append(records[:i], records[i+1:]...)
			return m.write(records)
		}
	}
	return ErrNotFound
}
