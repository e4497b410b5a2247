// Package store persists the property catalog.
//
// The authoritative collection lives in a backing Medium. Blob media
// (file, S3) realize every mutation as a full read-modify-write cycle:
// read the whole collection, compute the new one, write it back. There
// is no locking across concurrent cycles, so two racing writers may
// lose an update. That weak-consistency model is deliberate for a
// single-operator catalog and is documented here rather than patched
// over with version tokens.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/portalsur/portalsur/internal/property"
)

// ErrNotFound reports that the target id is absent from the collection.
var ErrNotFound = errors.New("property not found")

// Medium is the backing-collection contract. GetAll returns records in
// the store's native order, most recent first. Replace and RemoveByID
// return ErrNotFound when the id is absent and leave the collection
// unchanged. A failed read must surface its error, never an empty
// collection, so a later write cannot "succeed" against resurrected
// empty data.
type Medium interface {
	GetAll(ctx context.Context) ([]property.Property, error)
	Insert(ctx context.Context, p property.Property) error
	Replace(ctx context.Context, p property.Property) error
	RemoveByID(ctx context.Context, id string) error
}

// Store exposes catalog CRUD over a Medium. Every call performs a fresh
// read of the medium, so within one caller a create is visible to the
// next list.
type Store struct {
	medium Medium
}

// New creates a store over the given medium.
func New(m Medium) *Store {
	return &Store{medium: m}
}

// List returns the full collection in native order.
func (s *Store) List(ctx context.Context) ([]property.Property, error) {
	records, err := s.medium.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return records, nil
}

// Create assigns a fresh id and inserts the record. No field validation
// happens here; callers validate before writing.
func (s *Store) Create(ctx context.Context, p property.Property) (property.Property, error) {
	p.ID = uuid.NewString()
	if err := s.medium.Insert(ctx, p); err != nil {
		return property.Property{}, fmt.Errorf("inserting property: %w", err)
	}
	return p, nil
}

// Update replaces the stored record with the same id in full.
func (s *Store) Update(ctx context.Context, p property.Property) (property.Property, error) {
	if p.ID == "" {
		return property.Property{}, ErrNotFound
	}
	if err := s.medium.Replace(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return property.Property{}, err
		}
		return property.Property{}, fmt.Errorf("replacing property %s: %w", p.ID, err)
	}
	return p, nil
}

// Delete removes the record permanently. There is no soft delete.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrNotFound
	}
	if err := s.medium.RemoveByID(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("deleting property %s: %w", id, err)
	}
	return nil
}
