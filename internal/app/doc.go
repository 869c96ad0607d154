// Package app is the composition root for the Bookshelf terminal client.
//
// # Overview
//
// Run wires configuration, logging, the collection client, the list state
// store, the presenter and the UI, then blocks until the user quits or the
// context is cancelled.
//
// # Startup
//
//  1. Load ~/.config/bookshelf/config.toml (missing file uses defaults)
//  2. Apply .env, .env.local and the process environment
//  3. Apply command line overrides (API URL, refresh interval)
//  4. Redirect the standard logger to <data_dir>/bookshelf.log
//  5. Create the collection client, state store and presenter
//  6. Restore the saved search and filters from prefs.toml
//  7. Start the optional auto-refresh poller
//  8. Run the TUI, which performs the initial load
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> resolveConfig()      file, env, flags
//	       ├─────> redirectLog()        activity log
//	       ├─────> presenter.New()      client + state.Store + notifier
//	       ├─────> StartPoller()        quiet reloads (optional)
//	       └─────> ui.Run()             blocks
//
// Notifications travel from the presenter to the UI over a buffered
// channel. A full channel drops the notification and logs it instead of
// stalling the presenter call.
//
// # Auto-refresh
//
// The poller is off unless refresh_seconds or -refresh is set. It calls
// Presenter.Reload, which replaces the list without toggling the loading
// flag or notifying. Consecutive failures double the wait, capped at 30
// seconds or the configured interval, whichever is larger.
//
// # Error Handling
//
// Configuration, log file and client errors are fatal and returned from Run.
// Failures of individual operations are reported through notifications and
// the activity log; the UI keeps running.
package app
