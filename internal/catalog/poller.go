package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukatech/duka/internal/api"
)

const (
	defaultPollInterval = 60 * time.Second
	maxBackoff          = 10 * time.Minute
)

// API is the slice of the REST client the poller needs.
type API interface {
	FetchProducts(ctx context.Context) ([]api.Product, error)
	FetchCategories(ctx context.Context) ([]api.Category, error)
	FetchBrands(ctx context.Context) ([]api.Brand, error)
}

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off while the API is unreachable. It returns
// immediately.
func StartPoller(ctx context.Context, store *Store, client API, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			Refresh(ctx, store, client)
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			select {
			case <-ctx.Done():
				return
			case <-time.After(wait):
			}
		}
	}()
}

// Refresh fetches the catalog once and records the result in the store.
func Refresh(ctx context.Context, store *Store, client API) {
	products, err := client.FetchProducts(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		slog.Warn("catalog poll failed", "error", err)
		return
	}
	categories, err := client.FetchCategories(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		slog.Warn("category poll failed", "error", err)
		return
	}
	brands, err := client.FetchBrands(ctx)
	if err != nil {
		store.Update(nil, nil, nil, err)
		slog.Warn("brand poll failed", "error", err)
		return
	}
	store.Update(products, categories, brands, nil)
}

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
