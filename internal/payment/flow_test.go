package payment

import (
	"context"
	"testing"

	"github.com/dukatech/duka/internal/api"
)

type fakeStatusAPI struct {
	status *api.PaymentStatus
	err    error
}

func (f *fakeStatusAPI) FetchPaymentStatus(context.Context, string) (*api.PaymentStatus, error) {
	return f.status, f.err
}

// pendingFlow puts a flow into pending without running its tickers, so the
// pure transitions can be driven directly.
func pendingFlow(t *testing.T, clearCart func(context.Context)) *Flow {
	t.Helper()
	flow := NewFlow(&fakeStatusAPI{}, clearCart, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // the background loop exits immediately
	flow.Start(ctx, "ORD-1")

	snap := flow.Snapshot()
	if snap.State != StatePending || snap.CountdownSeconds != CountdownSeconds {
		t.Fatalf("snapshot after Start = %+v, want pending with full countdown", snap)
	}
	return flow
}

func TestFlow_SuccessClearsCart(t *testing.T) {
	cleared := 0
	flow := pendingFlow(t, func(context.Context) { cleared++ })

	done := flow.applyStatus(context.Background(), &api.PaymentStatus{
		PaymentStatus: "SUCCESS", // status strings are normalized to lowercase
		TransactionID: "MPESA-123",
	})
	if !done {
		t.Fatal("applyStatus = false, want terminal")
	}
	snap := flow.Snapshot()
	if snap.State != StateSuccess || snap.TransactionID != "MPESA-123" {
		t.Fatalf("snapshot = %+v, want success with transaction id", snap)
	}
	if cleared != 1 {
		t.Fatalf("cart cleared %d times, want 1", cleared)
	}
}

func TestFlow_FailureCarriesReason(t *testing.T) {
	flow := pendingFlow(t, nil)

	done := flow.applyStatus(context.Background(), &api.PaymentStatus{
		PaymentStatus: "failed",
		FailureReason: "Request cancelled by user",
	})
	if !done {
		t.Fatal("applyStatus = false, want terminal")
	}
	snap := flow.Snapshot()
	if snap.State != StateFailed || snap.FailureReason != "Request cancelled by user" {
		t.Fatalf("snapshot = %+v, want failed with reason", snap)
	}
}

func TestFlow_PendingAndUnknownKeepPolling(t *testing.T) {
	flow := pendingFlow(t, nil)

	for _, status := range []string{"pending", "PROCESSING", ""} {
		done := flow.applyStatus(context.Background(), &api.PaymentStatus{PaymentStatus: status})
		if done {
			t.Fatalf("applyStatus(%q) = true, want continue polling", status)
		}
	}
	if snap := flow.Snapshot(); snap.State != StatePending {
		t.Fatalf("state = %v, want still pending", snap.State)
	}
}

func TestFlow_CountdownReachingZeroTimesOut(t *testing.T) {
	flow := pendingFlow(t, nil)

	var done bool
	for range CountdownSeconds {
		done = flow.tickCountdown()
	}
	if !done {
		t.Fatal("tickCountdown never reported terminal")
	}
	snap := flow.Snapshot()
	if snap.State != StateTimeout {
		t.Fatalf("state = %v, want timeout", snap.State)
	}
	if snap.CountdownSeconds != 0 {
		t.Fatalf("countdown = %d, want 0", snap.CountdownSeconds)
	}
}

func TestFlow_LatePollCannotOverrideTimeout(t *testing.T) {
	cleared := 0
	flow := pendingFlow(t, func(context.Context) { cleared++ })

	for range CountdownSeconds {
		flow.tickCountdown()
	}

	// A poll already in flight when the countdown fired completes afterwards.
	flow.applyStatus(context.Background(), &api.PaymentStatus{PaymentStatus: "success"})

	if snap := flow.Snapshot(); snap.State != StateTimeout {
		t.Fatalf("state = %v, want timeout preserved", snap.State)
	}
	if cleared != 0 {
		t.Fatal("cart cleared by gated late poll")
	}
}

func TestFlow_ResetReturnsToIdle(t *testing.T) {
	flow := pendingFlow(t, nil)
	flow.applyStatus(context.Background(), &api.PaymentStatus{PaymentStatus: "failed", FailureReason: "x"})

	flow.Reset()
	snap := flow.Snapshot()
	if snap.State != StateIdle || snap.FailureReason != "" || snap.OrderReference != "" {
		t.Fatalf("snapshot after Reset = %+v, want zeroed idle", snap)
	}

	// A fresh attempt can start again from idle.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	flow.Start(ctx, "ORD-2")
	if snap := flow.Snapshot(); snap.State != StatePending || snap.OrderReference != "ORD-2" {
		t.Fatalf("snapshot after restart = %+v, want pending ORD-2", snap)
	}
}

func TestFlow_StartWhilePendingIsNoOp(t *testing.T) {
	flow := pendingFlow(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	flow.Start(ctx, "ORD-OTHER")
	if snap := flow.Snapshot(); snap.OrderReference != "ORD-1" {
		t.Fatalf("order reference = %q, want ORD-1 kept", snap.OrderReference)
	}
}

func TestFlow_SnapshotNotifiesOnTransitions(t *testing.T) {
	var states []State
	flow := NewFlow(&fakeStatusAPI{}, nil, func(snap Snapshot) {
		states = append(states, snap.State)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	flow.Start(ctx, "ORD-1")
	flow.applyStatus(context.Background(), &api.PaymentStatus{PaymentStatus: "success"})

	if len(states) < 2 || states[0] != StatePending || states[len(states)-1] != StateSuccess {
		t.Fatalf("observed states = %v, want pending then success", states)
	}
}
