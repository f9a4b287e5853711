package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dukatech/duka/internal/api"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	products := []api.Product{{ID: "1", Name: "Pixel 9"}, {ID: "2", Name: "Galaxy S25"}}
	before := time.Now()
	s.Update(products, []api.Category{{ID: "c1"}}, []api.Brand{{ID: "b1"}}, nil)

	snap := s.Snapshot()
	if !snap.HasData || len(snap.Products) != 2 {
		t.Fatalf("snapshot = %#v, want 2 products with HasData", snap)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Products[0].ID = "mutated"
	snap2 := s.Snapshot()
	if snap2.Products[0].ID != "1" {
		t.Fatalf("Snapshot should clone products; got id %q want 1", snap2.Products[0].ID)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]api.Product{{ID: "1"}}, nil, nil, nil)
	s.Update(nil, nil, nil, errors.New("boom"))

	snap := s.Snapshot()
	if !snap.HasData || len(snap.Products) != 1 {
		t.Fatalf("snapshot = %#v, want previous data kept on error", snap)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestStore_OfflineAfterTwoFailures(t *testing.T) {
	var s Store

	s.Update(nil, nil, nil, errors.New("fail 1"))
	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true after one failure, want false")
	}
	s.Update(nil, nil, nil, errors.New("fail 2"))
	if !s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = false after two failures, want true")
	}

	s.Update(nil, nil, nil, nil)
	if s.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true after success, want false")
	}
}

func TestStore_ResolvePreservesOrderAndSkipsUnknown(t *testing.T) {
	var s Store
	s.Update([]api.Product{{ID: "1", Name: "A"}, {ID: "2", Name: "B"}, {ID: "3", Name: "C"}}, nil, nil, nil)

	resolved, err := s.Resolve(context.Background(), []string{"3", "404", "1"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(resolved) != 2 || resolved[0].Name != "C" || resolved[1].Name != "A" {
		t.Fatalf("Resolve = %#v, want [C A] in request order", resolved)
	}
}

func TestStore_ResolveFailsBeforeFirstLoad(t *testing.T) {
	var s Store
	if _, err := s.Resolve(context.Background(), []string{"1"}); err == nil {
		t.Fatal("Resolve returned nil error before first load, want error")
	}
}
