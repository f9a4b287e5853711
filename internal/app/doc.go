// Package app provides the orchestration layer for the duka application.
//
// # Overview
//
// This package wires together configuration, the REST client, the client-side
// stores, the catalog poller, and the UI to create the complete duka TUI
// experience. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load duka configuration from ~/.config/duka/config.toml
//  2. Open the structured log file and install the default slog logger
//  3. Create the TOML-backed storage adapter for persistent client state
//  4. Build the auth session and the API client, and attach them to each
//     other (the client reads the bearer token, the session calls auth
//     endpoints)
//  5. Build the cart, comparison, and wishlist stores and register their
//     sync and reset hooks on the session
//  6. Launch the background catalog poller
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Session lifecycle
//
// Login runs each store's sync hook exactly once, replaying guest state to
// the server and replacing local copies with the merged result. Logout, and
// a 401 from any endpoint, run the reset hooks, dropping all client-side
// state. The one-shot guard inside each store keeps repeated logins from
// replaying the same guest cart twice.
//
// # Polling Behavior
//
// The catalog poller runs continuously in the background at a configurable
// interval (default: 60 seconds). Failures are logged and retried with
// exponential backoff; the UI keeps rendering the last good snapshot and
// shows an offline indicator after consecutive failures.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - Storage directory cannot be created
//   - API base URL cannot be parsed
//
// Recoverable errors (logged or surfaced as notices, the app continues):
//   - Catalog fetch failures
//   - Store mutations rejected by the server (rolled back locally)
//   - Payment status polls timing out
package app
