// Package book defines the canonical Book entity: normalization from raw
// collection records and form input, validation, and serialization back to a
// collection payload.
package book

import (
	"strconv"
	"strings"
	"time"

	"github.com/five82/bookshelf/internal/collection"
)

// Status is the circulation state of a book.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusIssued    Status = "Issued"
)

// Statuses lists the known statuses in display order.
func Statuses() []Status {
	return []Status{StatusAvailable, StatusIssued}
}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, bool) {
	trimmed := strings.TrimSpace(s)
	for _, st := range Statuses() {
		if strings.EqualFold(trimmed, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Book is the canonical in-memory shape. ID is the only identifier carried
// past normalization.
type Book struct {
	ID            string
	Title         string
	Author        string
	Genre         string
	PublishedYear int
	Status        Status
}

// now is replaced in tests.
var now = time.Now

// CurrentYear returns the year used for defaults and the validation ceiling.
func CurrentYear() int {
	return now().Year()
}

// Normalize builds a Book from a raw record, filling the year with the
// current year and the status with Available when absent. The server id is
// preferred over the convenience id.
func Normalize(raw collection.RawRecord) Book {
	b := Book{
		ID:            raw.Identifier(),
		Title:         strings.TrimSpace(raw.Title),
		Author:        strings.TrimSpace(raw.Author),
		Genre:         strings.TrimSpace(raw.Genre),
		PublishedYear: int(raw.PublishedYear),
		Status:        StatusAvailable,
	}
	if b.PublishedYear == 0 {
		b.PublishedYear = CurrentYear()
	}
	if st, ok := ParseStatus(raw.Status); ok {
		b.Status = st
	}
	return b
}

// NormalizeAll normalizes every record, preserving order.
func NormalizeAll(raws []collection.RawRecord) []Book {
	if len(raws) == 0 {
		return nil
	}
	out := make([]Book, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw)
	}
	return out
}

// Serialize converts b into the payload sent to the collection. The
// identifier is never part of the payload.
func Serialize(b Book) collection.Payload {
	status := b.Status
	if status == "" {
		status = StatusAvailable
	}
	return collection.Payload{
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		PublishedYear: b.PublishedYear,
		Status:        string(status),
	}
}

// Form carries user-entered text for a book. Year is kept as text so the
// caller does not need to parse it.
type Form struct {
	Title         string
	Author        string
	Genre         string
	PublishedYear string
	Status        string
}

// FormFrom pre-fills a Form from an existing book.
func FormFrom(b Book) Form {
	return Form{
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		PublishedYear: strconv.Itoa(b.PublishedYear),
		Status:        string(b.Status),
	}
}

// FromForm builds an unvalidated Book from form input. A blank year defaults
// to the current year; unparsable text becomes zero and fails validation.
func FromForm(f Form) Book {
	b := Book{
		Title:  strings.TrimSpace(f.Title),
		Author: strings.TrimSpace(f.Author),
		Genre:  strings.TrimSpace(f.Genre),
		Status: StatusAvailable,
	}
	year := strings.TrimSpace(f.PublishedYear)
	switch n, err := strconv.Atoi(year); {
	case year == "":
		b.PublishedYear = CurrentYear()
	case err == nil:
		b.PublishedYear = n
	}
	if st, ok := ParseStatus(f.Status); ok {
		b.Status = st
	}
	return b
}
