package collection

import (
	"errors"
	"fmt"
	"net/http"
)

// Op names a collection operation for error reporting.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// ErrNotFound matches a RemoteError whose response status was 404.
var ErrNotFound = errors.New("record not found")

// RemoteError reports a transport fault or a non-success response. Status is
// zero when no response was received.
type RemoteError struct {
	Op        Op
	Status    int
	RequestID string
	Err       error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("collection %s: %v", e.Op, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("collection %s: status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("collection %s failed", e.Op)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrNotFound and the response was a 404.
func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}
