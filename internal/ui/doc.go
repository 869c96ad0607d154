// Package ui provides the terminal interface for browsing and editing the
// book collection.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. All list state lives in the presenter;
// the Model keeps a snapshot of it for rendering and re-reads the snapshot
// on every tick and after every presenter call. Presenter calls block on
// the network, so they run inside tea.Cmds and report back with opDoneMsg.
//
// Notifications from the presenter arrive on a channel and are shown in
// the footer for NoticeTTL.
//
// # Package Structure
//
//   - app.go: Model, Update loop, messages and commands, Run
//   - view.go: header, book table, footer
//   - filters.go: search, genre and status filters, preference saving
//   - form.go: add/edit modal with inline validation errors
//   - confirm.go: delete confirmation
//   - activity.go: tail of the application log
//   - help.go: key binding overlay
//   - theme.go, style_helpers.go: colors and background-safe rendering
//
// # Modes
//
//   - List: navigate rows, page with [ and ], act on the selected book
//   - Search: live title/author filter; enter keeps, esc restores
//   - Form: add or edit; validation errors are shown under each field
//   - Confirm: y deletes, anything in n/esc/q cancels
//   - Activity: scrollable log view
//
// Theme and filters are saved to the preferences file whenever they change
// and restored at startup.
package ui
