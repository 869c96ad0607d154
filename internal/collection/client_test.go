package collection

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("url = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("example.com:1234/api/abc/books/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" {
		t.Fatalf("scheme = %q, want http", u.Scheme)
	}
	if u.Path != "/api/abc/books" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL returned nil error for missing host")
	}
}

func TestClient_CRUDRoundTrip(t *testing.T) {
	t.Parallel()

	var (
		gotMethods   []string
		gotPaths     []string
		gotBodies    []Payload
		gotUserAgent string
		gotRequestID string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, r.Method)
		gotPaths = append(gotPaths, r.URL.Path)
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get(RequestIDHeader)
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			var p Payload
			if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
				t.Errorf("decode body: %v", err)
			}
			gotBodies = append(gotBodies, p)
		}
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/books":
			_, _ = io.WriteString(w, `[{"_id":"a1","title":"Dune","author":"Herbert","genre":"Sci-Fi","publishedYear":1965,"status":"Available"}]`)
		case r.Method == http.MethodGet && r.URL.Path == "/api/books/a1":
			_, _ = io.WriteString(w, `{"_id":"a1","title":"Dune","publishedYear":"1965"}`)
		case r.Method == http.MethodPost && r.URL.Path == "/api/books":
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"_id":"b2","title":"Emma","author":"Austen","genre":"Romance","publishedYear":1815,"status":"Issued"}`)
		case r.Method == http.MethodPut && r.URL.Path == "/api/books/b2":
			// crudcrud answers PUT with an empty body.
			w.WriteHeader(http.StatusOK)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/books/b2":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api/books/", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	list, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(list) != 1 || list[0].Identifier() != "a1" || list[0].PublishedYear != 1965 {
		t.Fatalf("List = %#v, want one record a1/1965", list)
	}

	rec, err := c.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if rec.PublishedYear != 1965 {
		t.Fatalf("Get year = %d, want 1965 decoded from string", rec.PublishedYear)
	}

	payload := Payload{Title: "Emma", Author: "Austen", Genre: "Romance", PublishedYear: 1815, Status: "Issued"}
	created, err := c.Create(ctx, payload)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Identifier() != "b2" {
		t.Fatalf("Create id = %q, want b2", created.Identifier())
	}

	updated, err := c.Update(ctx, "b2", payload)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Identifier() != "b2" || updated.ID != "b2" {
		t.Fatalf("Update = %#v, want identifier stamped to b2", updated)
	}

	if err := c.Delete(ctx, "b2"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	wantMethods := []string{"GET", "GET", "POST", "PUT", "DELETE"}
	if strings.Join(gotMethods, ",") != strings.Join(wantMethods, ",") {
		t.Fatalf("methods = %v, want %v", gotMethods, wantMethods)
	}
	if gotPaths[3] != "/api/books/b2" {
		t.Fatalf("PUT path = %q, want /api/books/b2", gotPaths[3])
	}
	if len(gotBodies) != 2 || gotBodies[0] != payload || gotBodies[1] != payload {
		t.Fatalf("bodies = %#v, want payload twice", gotBodies)
	}
	if !strings.HasPrefix(gotUserAgent, "bookshelf/") {
		t.Fatalf("User-Agent = %q, want bookshelf/*", gotUserAgent)
	}
	if len(gotRequestID) != 36 {
		t.Fatalf("%s = %q, want a uuid", RequestIDHeader, gotRequestID)
	}
}

func TestClient_UpdateStampsIDOverResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"title":"Dune","author":"Herbert"}`)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	rec, err := c.Update(context.Background(), "42", Payload{Title: "Dune"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Identifier() != "42" || rec.Title != "Dune" {
		t.Fatalf("Update = %#v, want id 42 and decoded title", rec)
	}
}

func TestClient_FailuresAreRemoteErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/books":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case r.Method == http.MethodPost:
			http.Error(w, "nope", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/books", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.List(context.Background())
	var remote *RemoteError
	if !errors.As(err, &remote) || remote.Op != OpList {
		t.Fatalf("List error = %v, want RemoteError{list}", err)
	}
	if !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("List error = %q, want decode response", err.Error())
	}

	_, err = c.Create(context.Background(), Payload{Title: "x"})
	if !errors.As(err, &remote) || remote.Op != OpCreate || remote.Status != http.StatusInternalServerError {
		t.Fatalf("Create error = %v, want RemoteError{create, 500}", err)
	}
	if remote.RequestID == "" {
		t.Fatalf("RemoteError.RequestID is empty")
	}

	_, err = c.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get error = %v, want ErrNotFound", err)
	}

	err = c.Delete(context.Background(), "missing")
	if !errors.As(err, &remote) || remote.Op != OpDelete {
		t.Fatalf("Delete error = %v, want RemoteError{delete}", err)
	}
	if errors.Is(err, errMissingID) {
		t.Fatalf("Delete error should be a status error, got %v", err)
	}
}

func TestClient_TransportFault(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	c, err := NewClient(base, 500*time.Millisecond)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.List(context.Background())
	var remote *RemoteError
	if !errors.As(err, &remote) {
		t.Fatalf("List error = %v, want RemoteError", err)
	}
	if remote.Status != 0 || !strings.Contains(err.Error(), "execute request") {
		t.Fatalf("List error = %v, want transport fault without status", err)
	}
}

func TestClient_RequiresID(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", 0)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.Get(context.Background(), " "); !errors.Is(err, errMissingID) {
		t.Fatalf("Get error = %v, want errMissingID", err)
	}
	if _, err := c.Update(context.Background(), "", Payload{}); !errors.Is(err, errMissingID) {
		t.Fatalf("Update error = %v, want errMissingID", err)
	}
	if err := c.Delete(context.Background(), ""); !errors.Is(err, errMissingID) {
		t.Fatalf("Delete error = %v, want errMissingID", err)
	}
}
