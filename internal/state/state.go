package state

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/five82/bookshelf/internal/book"
)

// DefaultPageSize is used when a store is created without a page size.
const DefaultPageSize = 10

// Query holds the active search and filters. Empty fields match everything.
type Query struct {
	Search string
	Genre  string
	Status book.Status
}

// Page is the 1-based pagination cursor.
type Page struct {
	Current int
	Size    int
}

// State is the authoritative list state. View is derived from Items and
// Query and is only ever written by recompute.
type State struct {
	Items     []book.Book
	Query     Query
	Page      Page
	View      []book.Book
	Loading   bool
	LastError string
}

// New returns an empty state with the given page size.
func New(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return recompute(State{Page: Page{Current: 1, Size: pageSize}})
}

// Filter applies the three narrowing passes in fixed order: title/author
// substring (case-insensitive), exact genre, exact status. Empty query
// fields skip their pass.
func Filter(items []book.Book, q Query) []book.Book {
	out := make([]book.Book, 0, len(items))
	out = append(out, items...)

	if q.Search != "" {
		fold := cases.Fold()
		term := fold.String(q.Search)
		out = narrow(out, func(b book.Book) bool {
			return strings.Contains(fold.String(b.Title), term) ||
				strings.Contains(fold.String(b.Author), term)
		})
	}
	if q.Genre != "" {
		out = narrow(out, func(b book.Book) bool { return b.Genre == q.Genre })
	}
	if q.Status != "" {
		out = narrow(out, func(b book.Book) bool { return b.Status == q.Status })
	}
	return out
}

func narrow(items []book.Book, keep func(book.Book) bool) []book.Book {
	out := items[:0]
	for _, b := range items {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}

// TotalPages is ceil(len(View)/Size), never less than 1.
func (s State) TotalPages() int {
	size := s.Page.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (len(s.View) + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// PageSlice returns View[(p-1)*size : p*size], clipped to the view. A page
// outside the view yields an empty slice.
func (s State) PageSlice() []book.Book {
	size := s.Page.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	if s.Page.Current < 1 {
		return []book.Book{}
	}
	start := (s.Page.Current - 1) * size
	if start >= len(s.View) {
		return []book.Book{}
	}
	end := min(start+size, len(s.View))
	out := make([]book.Book, end-start)
	copy(out, s.View[start:end])
	return out
}

// Genres returns the distinct genres across Items in first-seen order.
func (s State) Genres() []string {
	seen := make(map[string]struct{}, len(s.Items))
	var out []string
	for _, b := range s.Items {
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		out = append(out, b.Genre)
	}
	return out
}

// Find returns the item with the given id.
func (s State) Find(id string) (book.Book, bool) {
	for _, b := range s.Items {
		if b.ID == id {
			return b, true
		}
	}
	return book.Book{}, false
}

func (s State) clone() State {
	dup := s
	dup.Items = cloneBooks(s.Items)
	dup.View = cloneBooks(s.View)
	return dup
}

func cloneBooks(items []book.Book) []book.Book {
	if items == nil {
		return nil
	}
	dup := make([]book.Book, len(items))
	copy(dup, items)
	return dup
}
