package inmemorystore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resourcestore"
)

// Store is an in-memory implementation of resourcestore.Store.
type Store struct {
	resources sync.Map // Key: construct ID, Value: resourcestore.Resource
}

// New creates a new, empty in-memory resource store.
func New() resourcestore.Store {
	return &Store{}
}

// Put registers res under id. Identical re-registration is a no-op.
func (s *Store) Put(ctx context.Context, id string, res resourcestore.Resource) error {
	if id == "" {
		return fmt.Errorf("construct ID cannot be empty")
	}
	if res == nil {
		return fmt.Errorf("resource %q is nil", id)
	}
	existing, loaded := s.resources.LoadOrStore(id, res)
	if !loaded {
		return nil
	}
	if resourcestore.Equal(existing.(resourcestore.Resource), res) {
		return nil
	}
	return fmt.Errorf("construct %q: %w", id, resourcestore.ErrConflict)
}

// Get retrieves the resource registered under id.
func (s *Store) Get(ctx context.Context, id string) (resourcestore.Resource, bool, error) {
	res, ok := s.resources.Load(id)
	if !ok {
		return nil, false, nil
	}
	return res.(resourcestore.Resource), true, nil
}

// List returns all registered resources ordered by construct ID.
func (s *Store) List(ctx context.Context) ([]resourcestore.Entry, error) {
	var entries []resourcestore.Entry
	s.resources.Range(func(key, value any) bool {
		entries = append(entries, resourcestore.Entry{
			ID:       key.(string),
			Resource: value.(resourcestore.Resource),
		})
		return true
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}
