package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dukatech/duka/internal/api"
)

// Snapshot is the latest catalog data available to the UI.
type Snapshot struct {
	Products            []api.Product
	Categories          []api.Category
	Brands              []api.Brand
	HasData             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the catalog snapshot between the
// background poller and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(products []api.Product, categories []api.Category, brands []api.Brand, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	s.snapshot.Products = cloneSlice(products)
	s.snapshot.Categories = cloneSlice(categories)
	s.snapshot.Brands = cloneSlice(brands)
	s.snapshot.HasData = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Products = cloneSlice(s.snapshot.Products)
	snap.Categories = cloneSlice(s.snapshot.Categories)
	snap.Brands = cloneSlice(s.snapshot.Brands)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Product looks a product up by id in the cached catalog.
func (s *Store) Product(id string) (api.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.snapshot.Products {
		if p.ID == id {
			return p, true
		}
	}
	return api.Product{}, false
}

// Resolve hydrates products by id from the cache, in the order given. It
// satisfies the compare store's resolver contract; unknown ids are skipped.
func (s *Store) Resolve(_ context.Context, ids []string) ([]api.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.snapshot.HasData {
		return nil, fmt.Errorf("catalog not loaded")
	}
	var resolved []api.Product
	for _, id := range ids {
		for _, p := range s.snapshot.Products {
			if p.ID == id {
				resolved = append(resolved, p)
				break
			}
		}
	}
	return resolved, nil
}

func cloneSlice[T any](items []T) []T {
	if len(items) == 0 {
		return nil
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return dup
}
