// Package state provides the client-side list state for Bookshelf.
//
// # Overview
//
// State holds the loaded books (Items), the active search and filters
// (Query), the page cursor (Page) and the derived filtered view (View).
// View is never written directly: every structural transition ends by
// recomputing it from Items and Query.
//
// # Transitions
//
// Transitions are values of the closed Command set, applied by the pure
// function Reduce:
//
//	SetItems{Items}       replace Items, keep the page
//	Insert{Book}          append to Items
//	Replace{Book}         swap in place by ID; missing ID is a no-op
//	Remove{ID}            drop by ID; missing ID is a no-op
//	SetQuery{...}         merge non-nil fields, page back to 1
//	SetPage{N}            move the cursor, no clamping, View untouched
//	SetLoading, SetError  flags only
//
// Reduce never mutates its input, which keeps it trivially testable:
//
//	st := state.New(10)
//	st = state.Reduce(st, state.SetItems{Items: books})
//	st = state.Reduce(st, state.SearchFor("du"))
//
// # Filtering
//
// Filter narrows Items in a fixed order: a case-folded substring match on
// title or author, then exact genre, then exact status. Each pass is skipped
// when its query field is empty.
//
// # Concurrency Model
//
// Store wraps one State behind a sync.RWMutex. Dispatch applies a batch of
// commands under the write lock; Snapshot copies the state under the read
// lock. Returned states never share slices with the store.
package state
