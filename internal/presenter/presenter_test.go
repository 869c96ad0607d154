package presenter

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"os"
	"reflect"
	"strconv"
	"sync"
	"testing"

	"github.com/five82/bookshelf/internal/book"
	"github.com/five82/bookshelf/internal/collection"
	"github.com/five82/bookshelf/internal/memcollection"
	"github.com/five82/bookshelf/internal/state"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type fakeCollection struct {
	mu    sync.Mutex
	calls []string

	list   func() ([]collection.RawRecord, error)
	get    func(id string) (collection.RawRecord, error)
	create func(collection.Payload) (collection.RawRecord, error)
	update func(id string, p collection.Payload) (collection.RawRecord, error)
	remove func(id string) error
}

var _ collection.Collection = (*fakeCollection)(nil)

func (f *fakeCollection) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCollection) List(context.Context) ([]collection.RawRecord, error) {
	f.record("list")
	if f.list == nil {
		return nil, nil
	}
	return f.list()
}

func (f *fakeCollection) Get(_ context.Context, id string) (collection.RawRecord, error) {
	f.record("get " + id)
	return f.get(id)
}

func (f *fakeCollection) Create(_ context.Context, p collection.Payload) (collection.RawRecord, error) {
	f.record("create")
	return f.create(p)
}

func (f *fakeCollection) Update(_ context.Context, id string, p collection.Payload) (collection.RawRecord, error) {
	f.record("update " + id)
	return f.update(id, p)
}

func (f *fakeCollection) Delete(_ context.Context, id string) error {
	f.record("delete " + id)
	return f.remove(id)
}

type recorder struct {
	mu   sync.Mutex
	seen []Notification
}

func (r *recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

func (r *recorder) last(t *testing.T) Notification {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.seen) == 0 {
		t.Fatalf("no notification emitted")
	}
	return r.seen[len(r.seen)-1]
}

func seeded() []collection.RawRecord {
	return []collection.RawRecord{
		{MongoID: "1", Title: "Dune", Author: "Herbert", Genre: "Sci-Fi", PublishedYear: 1965, Status: "Available"},
		{MongoID: "2", Title: "Emma", Author: "Austen", Genre: "Romance", PublishedYear: 1815, Status: "Issued"},
		{MongoID: "42", Title: "Neuromancer", Author: "Gibson", Genre: "Sci-Fi", PublishedYear: 1984},
	}
}

func loaded(t *testing.T, fake *fakeCollection) (*Presenter, *recorder) {
	t.Helper()
	if fake.list == nil {
		fake.list = func() ([]collection.RawRecord, error) { return seeded(), nil }
	}
	rec := &recorder{}
	p := New(fake, state.NewStore(10), rec)
	if err := p.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return p, rec
}

func titles(books []book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func validForm() book.Form {
	return book.Form{Title: "Persuasion", Author: "Austen", Genre: "Romance", PublishedYear: "1817", Status: "Available"}
}

func TestLoad_NormalizesAndNotifiesNothingOnSuccess(t *testing.T) {
	p, rec := loaded(t, &fakeCollection{})

	if got := titles(p.VisibleBooks()); !reflect.DeepEqual(got, []string{"Dune", "Emma", "Neuromancer"}) {
		t.Fatalf("VisibleBooks = %v", got)
	}
	if b, _ := p.Book("42"); b.Status != book.StatusAvailable {
		t.Fatalf("missing status should normalize to Available, got %q", b.Status)
	}
	if len(rec.seen) != 0 {
		t.Fatalf("notifications = %v, want none on successful load", rec.seen)
	}
	if p.Loading() {
		t.Fatalf("Loading = true after Load")
	}
}

func TestLoad_FailureKeepsItems(t *testing.T) {
	fake := &fakeCollection{}
	p, rec := loaded(t, fake)

	boom := &collection.RemoteError{Op: collection.OpList, Status: 500}
	fake.list = func() ([]collection.RawRecord, error) { return nil, boom }

	err := p.Load(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Load err = %v, want %v", err, boom)
	}
	if n := rec.last(t); n.Kind != Failure || n.Message != "Failed to load books" {
		t.Fatalf("notification = %+v", n)
	}
	if p.TotalBooks() != 3 {
		t.Fatalf("TotalBooks = %d, want items untouched", p.TotalBooks())
	}
	if p.LastError() == "" || p.Loading() {
		t.Fatalf("LastError = %q Loading = %v", p.LastError(), p.Loading())
	}
}

func TestCreate_InvalidNeverCallsClient(t *testing.T) {
	fake := &fakeCollection{}
	p, rec := loaded(t, fake)
	before := p.Snapshot().Items

	form := validForm()
	form.Title = ""
	form.Genre = " "
	err := p.Create(context.Background(), form)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create err = %v, want *ValidationError", err)
	}
	if verr.Field != book.FieldTitle || verr.Message != "Title is required" {
		t.Fatalf("first failure = %s %q", verr.Field, verr.Message)
	}
	if _, ok := verr.All[book.FieldGenre]; !ok {
		t.Fatalf("All = %v, want genre failure too", verr.All)
	}
	for _, call := range fake.calls {
		if call == "create" {
			t.Fatalf("client was called: %v", fake.calls)
		}
	}
	if n := rec.last(t); n.Kind != Failure || n.Message != "Title is required" {
		t.Fatalf("notification = %+v", n)
	}
	if !reflect.DeepEqual(p.Snapshot().Items, before) {
		t.Fatalf("Items changed after validation failure")
	}
	if p.LastError() != "Title is required" || p.Loading() {
		t.Fatalf("LastError = %q Loading = %v", p.LastError(), p.Loading())
	}
}

func TestCreate_AppendsServerCopy(t *testing.T) {
	var sent collection.Payload
	fake := &fakeCollection{
		create: func(pl collection.Payload) (collection.RawRecord, error) {
			sent = pl
			return collection.RawRecord{MongoID: "new", Title: pl.Title, Author: pl.Author, Genre: pl.Genre, PublishedYear: collection.Year(pl.PublishedYear), Status: pl.Status}, nil
		},
	}
	p, rec := loaded(t, fake)

	if err := p.Create(context.Background(), validForm()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sent.Title != "Persuasion" || sent.PublishedYear != 1817 || sent.Status != "Available" {
		t.Fatalf("payload = %+v", sent)
	}
	items := p.Snapshot().Items
	if last := items[len(items)-1]; last.ID != "new" || last.Title != "Persuasion" {
		t.Fatalf("appended = %+v", last)
	}
	if n := rec.last(t); n.Kind != Success || n.Message != "Book added successfully" {
		t.Fatalf("notification = %+v", n)
	}
}

func TestCreate_RemoteFailureKeepsItems(t *testing.T) {
	fake := &fakeCollection{
		create: func(collection.Payload) (collection.RawRecord, error) {
			return collection.RawRecord{}, &collection.RemoteError{Op: collection.OpCreate, Status: 503}
		},
	}
	p, rec := loaded(t, fake)
	before := p.Snapshot().Items

	err := p.Create(context.Background(), validForm())
	var remote *collection.RemoteError
	if !errors.As(err, &remote) || remote.Op != collection.OpCreate {
		t.Fatalf("Create err = %v, want create RemoteError", err)
	}
	if !reflect.DeepEqual(p.Snapshot().Items, before) {
		t.Fatalf("Items changed after remote failure")
	}
	if n := rec.last(t); n.Kind != Failure || n.Message != "Failed to create book" {
		t.Fatalf("notification = %+v", n)
	}
}

func TestEdit_StampsIDWhenResponseOmitsIt(t *testing.T) {
	var gotID string
	fake := &fakeCollection{
		update: func(id string, pl collection.Payload) (collection.RawRecord, error) {
			gotID = id
			return collection.RawRecord{Title: pl.Title, Author: pl.Author, Genre: pl.Genre, PublishedYear: collection.Year(pl.PublishedYear), Status: pl.Status}, nil
		},
	}
	p, rec := loaded(t, fake)

	form := book.Form{Title: "Count Zero", Author: "Gibson", Genre: "Sci-Fi", PublishedYear: "1986", Status: "issued"}
	if err := p.Edit(context.Background(), "42", form); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if gotID != "42" {
		t.Fatalf("update id = %q, want 42", gotID)
	}
	b, ok := p.Book("42")
	if !ok || b.Title != "Count Zero" || b.Status != book.StatusIssued {
		t.Fatalf("Book(42) = %+v,%v", b, ok)
	}
	if p.TotalBooks() != 3 {
		t.Fatalf("TotalBooks = %d, want replace in place", p.TotalBooks())
	}
	if n := rec.last(t); n.Kind != Success || n.Message != "Book updated successfully" {
		t.Fatalf("notification = %+v", n)
	}
}

func TestEdit_EmptyResponseKeepsSentBook(t *testing.T) {
	fake := &fakeCollection{
		update: func(id string, _ collection.Payload) (collection.RawRecord, error) {
			return collection.RawRecord{MongoID: id, ID: id}, nil
		},
	}
	p, _ := loaded(t, fake)

	if err := p.Edit(context.Background(), "2", book.Form{Title: "Emma", Author: "Austen", Genre: "Classic", PublishedYear: "1815"}); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	b, _ := p.Book("2")
	if b.Genre != "Classic" || b.Title != "Emma" || b.ID != "2" {
		t.Fatalf("Book(2) = %+v", b)
	}
}

func TestEdit_InvalidYear(t *testing.T) {
	fake := &fakeCollection{}
	p, _ := loaded(t, fake)

	for _, year := range []string{"999", "abc", strconv.Itoa(book.CurrentYear() + 1)} {
		form := validForm()
		form.PublishedYear = year
		err := p.Edit(context.Background(), "1", form)
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != book.FieldPublishedYear {
			t.Fatalf("year %q: err = %v, want publishedYear validation", year, err)
		}
	}
	if len(fake.calls) != 1 {
		t.Fatalf("calls = %v, want only the initial list", fake.calls)
	}
}

func TestEdit_MissingLocalIDIsSilentNoop(t *testing.T) {
	fake := &fakeCollection{
		update: func(id string, pl collection.Payload) (collection.RawRecord, error) {
			return collection.RawRecord{}, nil
		},
	}
	p, rec := loaded(t, fake)
	before := p.Snapshot().Items

	if err := p.Edit(context.Background(), "ghost", validForm()); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !reflect.DeepEqual(p.Snapshot().Items, before) {
		t.Fatalf("Items changed when editing an id not in the list")
	}
	if n := rec.last(t); n.Kind != Success {
		t.Fatalf("notification = %+v, want success", n)
	}
}

func TestRemove(t *testing.T) {
	fake := &fakeCollection{remove: func(string) error { return nil }}
	p, rec := loaded(t, fake)

	if err := p.Remove(context.Background(), "1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, ok := p.Book("1"); ok {
		t.Fatalf("Book(1) still present")
	}
	if n := rec.last(t); n.Message != "Book deleted successfully" {
		t.Fatalf("notification = %+v", n)
	}

	if err := p.Remove(context.Background(), "1"); err != nil {
		t.Fatalf("second Remove: %v", err)
	}
	if p.TotalBooks() != 2 {
		t.Fatalf("TotalBooks = %d, want 2", p.TotalBooks())
	}
}

func TestRemove_FailureKeepsItems(t *testing.T) {
	fake := &fakeCollection{remove: func(string) error {
		return &collection.RemoteError{Op: collection.OpDelete, Err: errors.New("connection refused")}
	}}
	p, rec := loaded(t, fake)

	if err := p.Remove(context.Background(), "1"); err == nil {
		t.Fatalf("Remove succeeded, want error")
	}
	if _, ok := p.Book("1"); !ok {
		t.Fatalf("Book(1) removed despite failure")
	}
	if n := rec.last(t); n.Kind != Failure || n.Message != "Failed to delete book" {
		t.Fatalf("notification = %+v", n)
	}
}

func TestLoadingIsSetDuringRemoteCall(t *testing.T) {
	var p *Presenter
	var during bool
	fake := &fakeCollection{remove: func(string) error {
		during = p.Loading()
		return nil
	}}
	p, _ = loaded(t, fake)

	if err := p.Remove(context.Background(), "2"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !during {
		t.Fatalf("Loading was false while the remote call ran")
	}
	if p.Loading() {
		t.Fatalf("Loading still true after Remove")
	}
}

func TestRefresh(t *testing.T) {
	fake := &fakeCollection{get: func(id string) (collection.RawRecord, error) {
		if id == "2" {
			return collection.RawRecord{Title: "Emma", Author: "Austen", Genre: "Romance", PublishedYear: 1815, Status: "Available"}, nil
		}
		return collection.RawRecord{}, &collection.RemoteError{Op: collection.OpGet, Status: 404}
	}}
	p, _ := loaded(t, fake)

	if err := p.Refresh(context.Background(), "2"); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if b, _ := p.Book("2"); b.Status != book.StatusAvailable || b.ID != "2" {
		t.Fatalf("Book(2) = %+v", b)
	}

	err := p.Refresh(context.Background(), "1")
	if !errors.Is(err, collection.ErrNotFound) {
		t.Fatalf("Refresh(1) err = %v, want ErrNotFound", err)
	}
	if _, ok := p.Book("1"); ok {
		t.Fatalf("Book(1) kept after remote 404")
	}
}

func TestFiltersAndPaging(t *testing.T) {
	raws := make([]collection.RawRecord, 25)
	for i := range raws {
		genre := "Sci-Fi"
		if i%5 == 0 {
			genre = "History"
		}
		raws[i] = collection.RawRecord{MongoID: strconv.Itoa(i), Title: "Book " + strconv.Itoa(i), Author: "A", Genre: genre, PublishedYear: 2000}
	}
	p, _ := loaded(t, &fakeCollection{list: func() ([]collection.RawRecord, error) { return raws, nil }})

	if p.TotalPages() != 3 {
		t.Fatalf("TotalPages = %d, want 3", p.TotalPages())
	}
	p.SetPage(3)
	if got := p.VisibleBooks(); len(got) != 5 || got[0].ID != "20" || got[4].ID != "24" {
		t.Fatalf("page 3 = %v", titles(got))
	}

	p.SetPage(99)
	if p.CurrentPage() != 3 {
		t.Fatalf("SetPage(99) -> %d, want clamp to 3", p.CurrentPage())
	}
	p.SetPage(-2)
	if p.CurrentPage() != 1 {
		t.Fatalf("SetPage(-2) -> %d, want clamp to 1", p.CurrentPage())
	}

	p.SetPage(2)
	p.SetGenreFilter("History")
	if p.CurrentPage() != 1 || p.TotalBooks() != 5 {
		t.Fatalf("after genre filter page=%d total=%d", p.CurrentPage(), p.TotalBooks())
	}
	p.SetStatusFilter(book.StatusIssued)
	if p.TotalBooks() != 0 || p.TotalPages() != 1 || len(p.VisibleBooks()) != 0 {
		t.Fatalf("empty view: total=%d pages=%d", p.TotalBooks(), p.TotalPages())
	}
	p.SetStatusFilter("")
	p.SetGenreFilter("")
	p.SetSearch("book 1")
	if got := p.TotalBooks(); got != 11 {
		t.Fatalf("search 'book 1' matched %d, want 11 (1, 10-19)", got)
	}
	if q := p.Query(); q.Search != "book 1" || q.Genre != "" || q.Status != "" {
		t.Fatalf("Query = %+v", q)
	}
	if got := p.UniqueGenres(); !reflect.DeepEqual(got, []string{"History", "Sci-Fi"}) {
		t.Fatalf("UniqueGenres = %v", got)
	}
}

func TestNilNotifierDiscards(t *testing.T) {
	fake := &fakeCollection{list: func() ([]collection.RawRecord, error) {
		return nil, &collection.RemoteError{Op: collection.OpList, Status: 500}
	}}
	p := New(fake, nil, nil)
	if err := p.Load(context.Background()); err == nil {
		t.Fatalf("Load succeeded, want error")
	}
	if p.LastError() == "" {
		t.Fatalf("LastError not recorded")
	}
}

func TestPresenterAgainstMemCollection(t *testing.T) {
	srv := httptest.NewServer(memcollection.NewHandler(memcollection.NewStore(nil), "/books"))
	t.Cleanup(srv.Close)

	client, err := collection.NewClient(srv.URL+"/books", 0)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	rec := &recorder{}
	p := New(client, state.NewStore(10), rec)
	ctx := context.Background()

	if err := p.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := p.Create(ctx, validForm()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	books := p.VisibleBooks()
	if len(books) != 1 || books[0].ID == "" {
		t.Fatalf("after create = %+v", books)
	}
	id := books[0].ID

	// The dev collection answers PUT with an empty body.
	edit := validForm()
	edit.Status = "Issued"
	if err := p.Edit(ctx, id, edit); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if b, ok := p.Book(id); !ok || b.Status != book.StatusIssued || b.Title != "Persuasion" {
		t.Fatalf("Book(%s) = %+v,%v", id, b, ok)
	}

	if err := p.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if b, _ := p.Book(id); b.Status != book.StatusIssued {
		t.Fatalf("server copy status = %q", b.Status)
	}

	if err := p.Remove(ctx, id); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := p.Remove(ctx, id); err == nil {
		t.Fatalf("second remote delete succeeded, want 404")
	}
	if p.TotalBooks() != 0 {
		t.Fatalf("TotalBooks = %d, want 0", p.TotalBooks())
	}
	if n := rec.last(t); n.Message != "Failed to delete book" {
		t.Fatalf("notification = %+v", n)
	}
}
