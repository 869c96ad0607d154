package memcollection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/bookshelf/internal/collection"
)

const maxBodyBytes = 1 << 20

// DefaultPath is the collection route used when none is configured.
const DefaultPath = "/books"

// Handler serves a Store over the collection wire protocol.
type Handler struct {
	store *Store
	mux   *http.ServeMux
}

// NewHandler routes the collection at path (DefaultPath when empty).
func NewHandler(store *Store, path string) *Handler {
	path = normalizePath(path)
	h := &Handler{store: store, mux: http.NewServeMux()}
	h.mux.HandleFunc("GET "+path, h.list)
	h.mux.HandleFunc("POST "+path, h.create)
	h.mux.HandleFunc("GET "+path+"/{id}", h.get)
	h.mux.HandleFunc("PUT "+path+"/{id}", h.update)
	h.mux.HandleFunc("DELETE "+path+"/{id}", h.remove)
	h.mux.HandleFunc("GET /health", healthHandler)
	return h
}

// ServeHTTP echoes (or assigns) a request id and logs each request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := strings.TrimSpace(r.Header.Get(collection.RequestIDHeader))
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set(collection.RequestIDHeader, requestID)

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	start := time.Now()
	h.mux.ServeHTTP(rec, r)
	log.Printf("%s %s %d %s (request %s)", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond), requestID)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if contextDone(w, r.Context()) {
		return
	}
	writeJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	if contextDone(w, r.Context()) {
		return
	}
	rec, ok := h.store.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if contextDone(w, r.Context()) {
		return
	}
	writeJSON(w, http.StatusCreated, h.store.Create(payload))
}

// update answers 200 with an empty body, matching hosted document stores
// that do not echo the replaced document.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	payload, err := readPayload(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if contextDone(w, r.Context()) {
		return
	}
	if _, ok := h.store.Update(r.PathValue("id"), payload); !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if contextDone(w, r.Context()) {
		return
	}
	if !h.store.Delete(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	w.WriteHeader(http.StatusOK)
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprint(w, `{"status":"ok"}`)
}

// readPayload decodes a document body. Identifier fields in the body are
// ignored; the route owns the id.
func readPayload(r *http.Request) (collection.RawRecord, error) {
	var rec collection.RawRecord
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return collection.RawRecord{}, errors.New("request body required")
		}
		return collection.RawRecord{}, fmt.Errorf("decode body: %w", err)
	}
	rec.MongoID = ""
	rec.ID = ""
	return rec, nil
}

// contextDone writes 408 and reports true when the request is already
// cancelled.
func contextDone(w http.ResponseWriter, ctx context.Context) bool {
	if ctx.Err() == nil {
		return false
	}
	writeError(w, http.StatusRequestTimeout, "request cancelled")
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = strings.TrimRight(path, "/")
	if path == "" {
		return DefaultPath
	}
	return path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
