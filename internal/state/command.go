package state

import "github.com/five82/bookshelf/internal/book"

// Command is one state transition. The set of commands is closed; Reduce
// switches over the concrete types below.
type Command interface {
	command()
}

// SetItems replaces Items. The page cursor is left alone.
type SetItems struct{ Items []book.Book }

// Insert appends a book to the end of Items.
type Insert struct{ Book book.Book }

// Replace swaps the item sharing Book.ID in place. A missing id is a no-op.
type Replace struct{ Book book.Book }

// Remove drops the item with ID. A missing id is a no-op.
type Remove struct{ ID string }

// SetQuery merges the non-nil fields into Query and resets the page to 1.
type SetQuery struct {
	Search *string
	Genre  *string
	Status *book.Status
}

// SetPage moves the page cursor without bounds checks.
type SetPage struct{ N int }

// SetLoading sets the loading flag.
type SetLoading struct{ Loading bool }

// SetError records the last error message; empty clears it.
type SetError struct{ Message string }

func (SetItems) command()   {}
func (Insert) command()     {}
func (Replace) command()    {}
func (Remove) command()     {}
func (SetQuery) command()   {}
func (SetPage) command()    {}
func (SetLoading) command() {}
func (SetError) command()   {}

// Reduce returns the state that results from applying cmd to s. It never
// mutates s; every structural change ends with a recompute of View.
func Reduce(s State, cmd Command) State {
	next := s
	switch c := cmd.(type) {
	case SetItems:
		next.Items = cloneBooks(c.Items)
	case Insert:
		next.Items = append(cloneBooks(s.Items), c.Book)
	case Replace:
		idx := indexOf(s.Items, c.Book.ID)
		if idx < 0 {
			return s
		}
		next.Items = cloneBooks(s.Items)
		next.Items[idx] = c.Book
	case Remove:
		if indexOf(s.Items, c.ID) < 0 {
			return s
		}
		items := make([]book.Book, 0, len(s.Items)-1)
		for _, b := range s.Items {
			if b.ID != c.ID {
				items = append(items, b)
			}
		}
		next.Items = items
	case SetQuery:
		if c.Search != nil {
			next.Query.Search = *c.Search
		}
		if c.Genre != nil {
			next.Query.Genre = *c.Genre
		}
		if c.Status != nil {
			next.Query.Status = *c.Status
		}
		next.Page.Current = 1
	case SetPage:
		next.Page.Current = c.N
		return next
	case SetLoading:
		next.Loading = c.Loading
		return next
	case SetError:
		next.LastError = c.Message
		return next
	default:
		return s
	}
	return recompute(next)
}

func recompute(s State) State {
	s.View = Filter(s.Items, s.Query)
	return s
}

func indexOf(items []book.Book, id string) int {
	for i, b := range items {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// SearchFor builds a SetQuery that changes only the search term.
func SearchFor(term string) SetQuery { return SetQuery{Search: &term} }

// GenreIs builds a SetQuery that changes only the genre filter.
func GenreIs(genre string) SetQuery { return SetQuery{Genre: &genre} }

// StatusIs builds a SetQuery that changes only the status filter.
func StatusIs(status book.Status) SetQuery { return SetQuery{Status: &status} }
