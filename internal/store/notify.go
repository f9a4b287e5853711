package store

// Notifier surfaces user-facing notices from store mutations. The UI supplies
// an implementation; tests and headless callers can use NopNotifier.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

// Success implements Notifier.
func (NopNotifier) Success(string) {}

// Error implements Notifier.
func (NopNotifier) Error(string) {}
