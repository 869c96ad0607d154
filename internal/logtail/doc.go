// Package logtail reads and parses the Bookshelf activity log.
//
// # Overview
//
// While the TUI owns the terminal, the standard logger writes to
// <data_dir>/bookshelf.log. This package tails that file for the activity
// view without loading it whole.
//
// # Reading Log Files
//
// Read keeps a ring buffer of maxLines entries and makes a single pass over
// the file, so memory stays at O(maxLines) regardless of file size:
//
//	lines, err := logtail.Read(cfg.LogPath(), 200)
//	if err != nil {
//		log.Printf("failed to read activity log: %v", err)
//	}
//
// A non-positive maxLines returns every line. A missing file is not an error.
//
// # Parsing
//
// ParseLine splits a standard logger line into its timestamp, message and
// trailing "(request <id>)" marker, and flags failures:
//
//	2026/10/18 09:15:03 Failed to create book: collection create: status 503 (request 1b4e28ba-...)
//
// Lines that do not match are returned as plain text. Styling is left to the
// UI.
package logtail
