package payment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dukatech/duka/internal/api"
)

// State is the payment attempt lifecycle: idle -> pending -> one of the
// terminal states. A fresh attempt after failed or timeout goes back through
// idle via Reset.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateSuccess State = "success"
	StateFailed  State = "failed"
	StateTimeout State = "timeout"
)

const (
	// CountdownSeconds is how long the customer has to approve the STK push.
	CountdownSeconds = 120
	pollInterval     = 5 * time.Second
)

// StatusAPI is the slice of the REST client the flow needs.
type StatusAPI interface {
	FetchPaymentStatus(ctx context.Context, orderReference string) (*api.PaymentStatus, error)
}

// Snapshot is an immutable view of the attempt for rendering.
type Snapshot struct {
	State            State
	OrderReference   string
	TransactionID    string
	FailureReason    string
	CountdownSeconds int
}

// Terminal reports whether the attempt has finished.
func (s Snapshot) Terminal() bool {
	return s.State == StateSuccess || s.State == StateFailed || s.State == StateTimeout
}

// Flow polls the payment status for an order reference at a fixed interval
// while counting down a hard deadline. Ephemeral: one Flow per checkout
// modal, discarded on close.
type Flow struct {
	mu     sync.Mutex
	snap   Snapshot
	cancel context.CancelFunc

	api       StatusAPI
	clearCart func(context.Context)
	onUpdate  func(Snapshot)
}

// NewFlow builds an idle flow. clearCart runs once on success; onUpdate is
// invoked after every state or countdown change (both may be nil).
func NewFlow(client StatusAPI, clearCart func(context.Context), onUpdate func(Snapshot)) *Flow {
	return &Flow{
		snap:      Snapshot{State: StateIdle},
		api:       client,
		clearCart: clearCart,
		onUpdate:  onUpdate,
	}
}

// Snapshot returns the current view of the attempt.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

// Start transitions to pending and launches the countdown and the status
// poll for the given order reference. Starting a pending or successful
// attempt is a no-op.
func (f *Flow) Start(ctx context.Context, orderReference string) {
	f.mu.Lock()
	if f.snap.State == StatePending || f.snap.State == StateSuccess {
		f.mu.Unlock()
		return
	}
	f.stopLocked()
	f.snap = Snapshot{
		State:            StatePending,
		OrderReference:   orderReference,
		CountdownSeconds: CountdownSeconds,
	}
	runCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	f.notify()
	go f.run(runCtx, orderReference)
}

// Reset returns a finished or idle attempt to idle so the customer can retry.
// A pending attempt is torn down first.
func (f *Flow) Reset() {
	f.mu.Lock()
	f.stopLocked()
	f.snap = Snapshot{State: StateIdle}
	f.mu.Unlock()
	f.notify()
}

// Close tears down the polling loop without changing state. Used on modal
// close and navigation; an in-flight status request may still complete but
// can no longer drive a transition.
func (f *Flow) Close() {
	f.mu.Lock()
	f.stopLocked()
	f.mu.Unlock()
}

func (f *Flow) run(ctx context.Context, orderReference string) {
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
	countdown := time.NewTicker(time.Second)
	defer countdown.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-countdown.C:
			if f.tickCountdown() {
				return
			}
		case <-poll.C:
			status, err := f.api.FetchPaymentStatus(ctx, orderReference)
			if err != nil {
				continue // transient; the countdown bounds retries
			}
			if f.applyStatus(ctx, status) {
				return
			}
		}
	}
}

// applyStatus feeds one poll result into the state machine. It returns true
// when the attempt reached a terminal state. Transitions are gated on
// pending, so a late poll result after timeout cannot re-enter the machine.
func (f *Flow) applyStatus(ctx context.Context, status *api.PaymentStatus) bool {
	f.mu.Lock()
	if f.snap.State != StatePending {
		f.mu.Unlock()
		return true
	}
	switch strings.ToLower(status.PaymentStatus) {
	case "success":
		f.snap.State = StateSuccess
		f.snap.TransactionID = status.TransactionID
		f.stopLocked()
		f.mu.Unlock()
		if f.clearCart != nil {
			f.clearCart(ctx)
		}
		f.notify()
		return true
	case "failed":
		f.snap.State = StateFailed
		f.snap.FailureReason = status.FailureReason
		f.stopLocked()
		f.mu.Unlock()
		f.notify()
		return true
	default:
		// pending or unknown: keep polling
		f.mu.Unlock()
		return false
	}
}

// tickCountdown burns one second off the deadline and returns true when the
// attempt timed out. The timeout transition fires independently of any poll
// in flight; both paths stop the tickers defensively.
func (f *Flow) tickCountdown() bool {
	f.mu.Lock()
	if f.snap.State != StatePending {
		f.mu.Unlock()
		return true
	}
	if f.snap.CountdownSeconds > 0 {
		f.snap.CountdownSeconds--
	}
	if f.snap.CountdownSeconds > 0 {
		f.mu.Unlock()
		f.notify()
		return false
	}
	f.snap.State = StateTimeout
	f.stopLocked()
	f.mu.Unlock()
	f.notify()
	return true
}

func (f *Flow) stopLocked() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

func (f *Flow) notify() {
	if f.onUpdate == nil {
		return
	}
	f.onUpdate(f.Snapshot())
}
