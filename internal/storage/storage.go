// Package storage persists client-side store state between runs.
// State lives in per-store TOML documents under ~/.local/share/duka.
package storage

// Adapter loads and saves named state documents. Implementations must treat a
// missing document as a non-error so stores can start from their zero state.
type Adapter interface {
	// Load decodes the named document into dest. ok is false when no document
	// exists; dest is left untouched in that case.
	Load(name string, dest any) (ok bool, err error)
	// Save encodes value and durably replaces the named document.
	Save(name string, value any) error
	// Delete removes the named document. Deleting a missing document is a no-op.
	Delete(name string) error
}
