// Package memory implements an in-memory customer repository.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"customerapi/pkg/customer"
)

// Repository provides an in-memory implementation of customer.Repository.
// A single mutex guards the record sequence: every operation, reads
// included, holds it for its full scan, so no caller observes an
// intermediate state. Records keep their insertion order.
type Repository struct {
	mu        sync.Mutex
	customers []customer.Customer
}

var _ customer.Repository = (*Repository)(nil)

// New creates an empty in-memory repository.
func New() *Repository {
	return &Repository{}
}

// FromFile creates a repository seeded from a JSON snapshot file holding an
// array of customer records, in file order. A missing file yields an empty
// repository; a file that exists but cannot be read or parsed is an error.
// The file is never written back.
func FromFile(path string) (*Repository, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var customers []customer.Customer
	if err := json.Unmarshal(data, &customers); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}

	return &Repository{customers: customers}, nil
}

// Create appends c to the sequence. It returns ErrExists, leaving the store
// untouched, when a record with the same guid is already present.
func (r *Repository) Create(ctx context.Context, c customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.customers {
		if r.customers[i].GUID == c.GUID {
			return customer.ErrExists
		}
	}

	r.customers = append(r.customers, c)

	return nil
}

// Get retrieves a customer by guid.
func (r *Repository) Get(ctx context.Context, guid string) (customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.customers {
		if r.customers[i].GUID == guid {
			return r.customers[i], nil
		}
	}

	return customer.Customer{}, customer.ErrNotFound
}

// List returns a copy of every record in insertion order. The copy is
// detached from the store, so later mutations never show through.
func (r *Repository) List(ctx context.Context) ([]customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]customer.Customer, len(r.customers))
	copy(out, r.customers)

	return out, nil
}

// Update replaces the stored record whose guid matches c.GUID, keeping its
// position in the sequence. It returns ErrNotFound when no record matches.
func (r *Repository) Update(ctx context.Context, c customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.customers {
		if r.customers[i].GUID == c.GUID {
			r.customers[i] = c
			return nil
		}
	}

	return customer.ErrNotFound
}

// Delete removes every record matching guid; Create rejects duplicates, so
// that is at most one. It returns ErrNotFound when nothing matched.
func (r *Repository) Delete(ctx context.Context, guid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.customers[:0]
	for _, c := range r.customers {
		if c.GUID != guid {
			kept = append(kept, c)
		}
	}

	if len(kept) == len(r.customers) {
		return customer.ErrNotFound
	}

	r.customers = kept

	return nil
}
