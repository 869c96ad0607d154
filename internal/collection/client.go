package collection

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Collection defines the CRUD surface of the remote books collection.
// This interface is implemented by *Client and can be used for testing.
type Collection interface {
	List(ctx context.Context) ([]RawRecord, error)
	Get(ctx context.Context, id string) (RawRecord, error)
	Create(ctx context.Context, payload Payload) (RawRecord, error)
	Update(ctx context.Context, id string, payload Payload) (RawRecord, error)
	Delete(ctx context.Context, id string) error
}

// Ensure Client implements Collection at compile time.
var _ Collection = (*Client)(nil)

// Client talks to a REST collection endpoint.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://127.0.0.1:8080/books"
	defaultUserAgent = "bookshelf/0.1"
	defaultTimeout   = 10 * time.Second

	// RequestIDHeader carries the per-request correlation id.
	RequestIDHeader = "X-Request-Id"
)

// NewClient builds a Client for the collection rooted at baseURL. A zero
// timeout uses the default.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized collection URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List retrieves every record in the collection.
func (c *Client) List(ctx context.Context) ([]RawRecord, error) {
	var payload []RawRecord
	if err := c.do(ctx, OpList, http.MethodGet, "", nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Get retrieves one record. A 404 matches ErrNotFound.
func (c *Client) Get(ctx context.Context, id string) (RawRecord, error) {
	if strings.TrimSpace(id) == "" {
		return RawRecord{}, &RemoteError{Op: OpGet, Err: errMissingID}
	}
	var payload RawRecord
	if err := c.do(ctx, OpGet, http.MethodGet, id, nil, &payload); err != nil {
		return RawRecord{}, err
	}
	return payload, nil
}

// Create posts a new record and returns the server's copy.
func (c *Client) Create(ctx context.Context, payload Payload) (RawRecord, error) {
	var created RawRecord
	if err := c.do(ctx, OpCreate, http.MethodPost, "", payload, &created); err != nil {
		return RawRecord{}, err
	}
	return created, nil
}

// Update replaces the record with the given id. The returned record always
// carries id, even when the server answers without one (or with no body).
func (c *Client) Update(ctx context.Context, id string, payload Payload) (RawRecord, error) {
	if strings.TrimSpace(id) == "" {
		return RawRecord{}, &RemoteError{Op: OpUpdate, Err: errMissingID}
	}
	var updated RawRecord
	if err := c.do(ctx, OpUpdate, http.MethodPut, id, payload, &updated); err != nil {
		return RawRecord{}, err
	}
	updated.MongoID = id
	updated.ID = id
	return updated, nil
}

// Delete removes the record with the given id. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &RemoteError{Op: OpDelete, Err: errMissingID}
	}
	return c.do(ctx, OpDelete, http.MethodDelete, id, nil, nil)
}

func (c *Client) do(ctx context.Context, op Op, method, id string, body, dest any) error {
	if c == nil {
		return &RemoteError{Op: op, Err: fmt.Errorf("client is nil")}
	}
	reqURL := c.baseURL
	if id != "" {
		reqURL = c.baseURL.JoinPath(url.PathEscape(id))
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return &RemoteError{Op: op, RequestID: requestID, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RemoteError{Op: op, RequestID: requestID, Err: fmt.Errorf("execute request: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &RemoteError{Op: op, Status: resp.StatusCode, RequestID: requestID}
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Op: op, RequestID: requestID, Err: fmt.Errorf("read response: %w", err)}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		if op == OpUpdate {
			return nil
		}
		return &RemoteError{Op: op, RequestID: requestID, Err: errEmptyBody}
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return &RemoteError{Op: op, RequestID: requestID, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", raw)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

var (
	errMissingID = errors.New("id required")
	errEmptyBody = errors.New("empty response body")
)
