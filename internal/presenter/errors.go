package presenter

import "github.com/five82/bookshelf/internal/book"

// ValidationError reports form input that failed local validation. Field and
// Message name the first failure in field order; All holds every failure.
type ValidationError struct {
	Field   book.Field
	Message string
	All     map[book.Field]string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func validationError(v book.Validation) *ValidationError {
	field, msg, ok := v.First()
	if !ok {
		return nil
	}
	return &ValidationError{Field: field, Message: msg, All: v.Errors}
}
