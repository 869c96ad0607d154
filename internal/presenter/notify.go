package presenter

// Kind distinguishes success from failure notifications.
type Kind int

const (
	Success Kind = iota
	Failure
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "unknown"
	}
}

// Notification is a user-facing outcome message.
type Notification struct {
	Kind    Kind
	Message string
}

// Notifier receives notifications. Implementations must not block.
type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

const (
	msgLoadFailed    = "Failed to load books"
	msgRefreshFailed = "Failed to load book"
	msgCreated       = "Book added successfully"
	msgCreateFailed  = "Failed to create book"
	msgUpdated       = "Book updated successfully"
	msgUpdateFailed  = "Failed to update book"
	msgDeleted       = "Book deleted successfully"
	msgDeleteFailed  = "Failed to delete book"
)
