// Package config handles loading and parsing the duka configuration file.
//
// # Overview
//
// This package reads duka's TOML configuration to discover the storefront
// API endpoint, the storage directory for persistent client state, and
// logging options.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/duka/config.toml (default)
//  3. If the config file doesn't exist, fall back to hardcoded defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. Apply environment overrides (DUKA_API_URL)
//
// # Default Values
//
//   - Config file: ~/.config/duka/config.toml
//   - API endpoint: http://127.0.0.1:8000/api
//   - Storage directory: ~/.local/share/duka
//   - Log file: <storage_dir>/duka.log
//   - Log level: info
//
// # TOML Format
//
// Example duka config.toml:
//
//	api_url = "https://api.dukatech.co.ke/api"
//	storage_dir = "~/.local/share/duka"
//	poll = 60
//	log_level = "info"
//
// All fields are optional. Tilde expansion is performed automatically.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
//
// Missing config files are NOT an error - defaults are used instead.
// This allows duka to work out-of-the-box against a local backend.
package config
