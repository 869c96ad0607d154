// Package presenter orchestrates the collection client, the book entity and
// the list state store into the operations a UI calls.
//
// # Operations
//
// Load, Create, Edit, Remove and Refresh each follow the same shape: set the
// loading flag, do at most one remote call, then either apply one store
// command and emit a success notification, or record LastError and emit a
// failure notification with Items left exactly as they were. Create and Edit
// validate first; invalid input never reaches the collection and its first
// message (in field order) becomes the notification.
//
// SetSearch, SetGenreFilter and SetStatusFilter return to page 1. SetPage
// clamps to the available pages.
//
// # Notifications
//
// Outcomes are delivered to the Notifier given to New. The TUI forwards them
// into its message loop; tests collect them into a slice.
//
//	p := presenter.New(client, state.NewStore(10), presenter.NotifierFunc(func(n presenter.Notification) {
//		fmt.Println(n.Kind, n.Message)
//	}))
//	if err := p.Load(ctx); err != nil {
//		// already notified; err is a *collection.RemoteError
//	}
//
// Mutating methods also return the error (*ValidationError or
// *collection.RemoteError) so callers can branch with errors.As.
//
// Remote failures are written to the standard logger with their request id.
package presenter
