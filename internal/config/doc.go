// Package config loads Bookshelf's startup settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/bookshelf/config.toml (default)
//  3. If the config file doesn't exist, fall back to built-in defaults
//  4. If the file exists but fields are missing, empty or non-positive, use defaults
//
// ApplyEnv then layers .env, .env.local and the process environment on top,
// in that order. Command-line flags are applied last by the caller.
//
// # Default Values
//
//   - Config file: ~/.config/bookshelf/config.toml
//   - Collection URL: http://127.0.0.1:8080/books (the shelfd dev server)
//   - Page size: 10
//   - Request timeout: 10s
//   - Auto-refresh: disabled
//   - Data directory: ~/.local/share/bookshelf
//   - Activity log: <data_dir>/bookshelf.log
//
// # TOML Format
//
//	api_url = "https://crudcrud.com/api/<token>/books"
//	page_size = 10
//	timeout_seconds = 10
//	refresh_seconds = 0
//	data_dir = "~/.local/share/bookshelf"
//
// # Environment
//
//	BOOKSHELF_API_URL=http://127.0.0.1:8080/books
//	BOOKSHELF_PAGE_SIZE=20
//
// A page size that is not a positive integer is an error; a bad value in a
// file is silently replaced by the default.
package config
