package presenter

import (
	"context"
	"errors"
	"log"

	"github.com/five82/bookshelf/internal/book"
	"github.com/five82/bookshelf/internal/collection"
	"github.com/five82/bookshelf/internal/state"
)

// Presenter exposes the list operations a UI needs. It is safe for
// concurrent use; all state lives in the Store.
type Presenter struct {
	client   collection.Collection
	store    *state.Store
	notifier Notifier
}

// New wires a presenter. A nil store gets a fresh one with the default page
// size; a nil notifier discards notifications.
func New(client collection.Collection, store *state.Store, notifier Notifier) *Presenter {
	if store == nil {
		store = state.NewStore(state.DefaultPageSize)
	}
	return &Presenter{client: client, store: store, notifier: notifier}
}

// Load replaces the list with the collection's current contents.
func (p *Presenter) Load(ctx context.Context) error {
	p.store.Dispatch(state.SetLoading{Loading: true})

	raws, err := p.client.List(ctx)
	if err != nil {
		p.fail(err, msgLoadFailed)
		return err
	}
	p.store.Dispatch(
		state.SetItems{Items: book.NormalizeAll(raws)},
		state.SetError{},
		state.SetLoading{Loading: false},
	)
	return nil
}

// Reload refreshes the list without touching the loading flag or notifying.
// Failures are logged and returned; the current items are kept.
func (p *Presenter) Reload(ctx context.Context) error {
	raws, err := p.client.List(ctx)
	if err != nil {
		logRemote("reload", err)
		return err
	}
	p.store.Dispatch(state.SetItems{Items: book.NormalizeAll(raws)})
	return nil
}

// Create validates form and, when valid, posts it and appends the server's
// copy to the list.
func (p *Presenter) Create(ctx context.Context, form book.Form) error {
	p.store.Dispatch(state.SetLoading{Loading: true})

	b := book.FromForm(form)
	if verr := validationError(book.Validate(b)); verr != nil {
		p.fail(verr, verr.Message)
		return verr
	}

	raw, err := p.client.Create(ctx, book.Serialize(b))
	if err != nil {
		p.fail(err, msgCreateFailed)
		return err
	}
	p.succeed(msgCreated, state.Insert{Book: book.Normalize(raw)})
	return nil
}

// Edit validates form and, when valid, replaces the book with the given id.
// The id is stamped onto the outgoing book and the confirmed record, since
// the collection may answer without it.
func (p *Presenter) Edit(ctx context.Context, id string, form book.Form) error {
	p.store.Dispatch(state.SetLoading{Loading: true})

	b := book.FromForm(form)
	b.ID = id
	if verr := validationError(book.Validate(b)); verr != nil {
		p.fail(verr, verr.Message)
		return verr
	}

	raw, err := p.client.Update(ctx, id, book.Serialize(b))
	if err != nil {
		p.fail(err, msgUpdateFailed)
		return err
	}
	p.succeed(msgUpdated, state.Replace{Book: confirmed(b, raw)})
	return nil
}

// Remove deletes the book with the given id. Removing an id that is no
// longer in the list succeeds once the collection confirms.
func (p *Presenter) Remove(ctx context.Context, id string) error {
	p.store.Dispatch(state.SetLoading{Loading: true})

	if err := p.client.Delete(ctx, id); err != nil {
		p.fail(err, msgDeleteFailed)
		return err
	}
	p.succeed(msgDeleted, state.Remove{ID: id})
	return nil
}

// Refresh re-fetches one book and replaces it in the list. A book the
// collection no longer has is dropped locally.
func (p *Presenter) Refresh(ctx context.Context, id string) error {
	p.store.Dispatch(state.SetLoading{Loading: true})

	raw, err := p.client.Get(ctx, id)
	if errors.Is(err, collection.ErrNotFound) {
		logRemote("refresh", err)
		p.store.Dispatch(state.Remove{ID: id}, state.SetLoading{Loading: false})
		return err
	}
	if err != nil {
		p.fail(err, msgRefreshFailed)
		return err
	}
	fresh := book.Normalize(raw)
	fresh.ID = id
	p.store.Dispatch(state.Replace{Book: fresh}, state.SetError{}, state.SetLoading{Loading: false})
	return nil
}

// SetSearch changes the search term and returns to the first page.
func (p *Presenter) SetSearch(term string) {
	p.store.Dispatch(state.SearchFor(term))
}

// SetGenreFilter changes the genre filter; empty clears it.
func (p *Presenter) SetGenreFilter(genre string) {
	p.store.Dispatch(state.GenreIs(genre))
}

// SetStatusFilter changes the status filter; empty clears it.
func (p *Presenter) SetStatusFilter(status book.Status) {
	p.store.Dispatch(state.StatusIs(status))
}

// SetPage moves to page n, clamped to [1, TotalPages()].
func (p *Presenter) SetPage(n int) {
	total := p.store.Snapshot().TotalPages()
	p.store.Dispatch(state.SetPage{N: max(1, min(n, total))})
}

// Snapshot returns a consistent copy of the whole list state.
func (p *Presenter) Snapshot() state.State { return p.store.Snapshot() }

// VisibleBooks returns the current page of the filtered view.
func (p *Presenter) VisibleBooks() []book.Book { return p.store.Snapshot().PageSlice() }

// TotalPages returns the page count of the filtered view, at least 1.
func (p *Presenter) TotalPages() int { return p.store.Snapshot().TotalPages() }

// UniqueGenres returns the distinct genres of all loaded books.
func (p *Presenter) UniqueGenres() []string { return p.store.Snapshot().Genres() }

// TotalBooks returns the size of the filtered view.
func (p *Presenter) TotalBooks() int { return len(p.store.Snapshot().View) }

func (p *Presenter) CurrentPage() int   { return p.store.Snapshot().Page.Current }
func (p *Presenter) Query() state.Query { return p.store.Snapshot().Query }
func (p *Presenter) Loading() bool      { return p.store.Snapshot().Loading }
func (p *Presenter) LastError() string  { return p.store.Snapshot().LastError }

// Book looks up a loaded book by id.
func (p *Presenter) Book(id string) (book.Book, bool) { return p.store.Snapshot().Find(id) }

func (p *Presenter) succeed(message string, cmd state.Command) {
	p.store.Dispatch(cmd, state.SetError{}, state.SetLoading{Loading: false})
	p.emit(Success, message)
}

// fail leaves Items untouched.
func (p *Presenter) fail(err error, message string) {
	p.store.Dispatch(state.SetError{Message: err.Error()}, state.SetLoading{Loading: false})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		logRemote(message, err)
	}
	p.emit(Failure, message)
}

func (p *Presenter) emit(kind Kind, message string) {
	if p.notifier == nil {
		return
	}
	p.notifier.Notify(Notification{Kind: kind, Message: message})
}

func logRemote(what string, err error) {
	var remote *collection.RemoteError
	if errors.As(err, &remote) && remote.RequestID != "" {
		log.Printf("%s: %v (request %s)", what, err, remote.RequestID)
		return
	}
	log.Printf("%s: %v", what, err)
}

// confirmed picks the record to store after an update. Collections that
// answer with an empty body leave only the stamped id, in which case the
// validated outgoing book is kept.
func confirmed(sent book.Book, raw collection.RawRecord) book.Book {
	out := sent
	if raw.Title != "" || raw.Author != "" || raw.Genre != "" {
		out = book.Normalize(raw)
	}
	out.ID = sent.ID
	return out
}
