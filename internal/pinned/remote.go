package pinned

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

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/cexll/sidebar/internal/nav"
)

const (
	defaultLoadRetries    = 2
	defaultLoadRetryDelay = 200 * time.Millisecond
)

// RemoteBackend talks to the per-user preference API
type RemoteBackend struct {
	baseURL    string
	token      string
	client     *http.Client
	retries    int
	retryDelay time.Duration
}

// statusError is a non-2xx answer from the preference API
type statusError struct {
	method, path string
	code         int
	body         string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.method, e.path, e.code, e.body)
}

// RemoteOption configures a RemoteBackend
type RemoteOption func(*RemoteBackend)

// WithToken sends token as a bearer credential on every request
func WithToken(token string) RemoteOption {
	return func(b *RemoteBackend) { b.token = token }
}

// WithHTTPClient replaces the default client (10s timeout)
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(b *RemoteBackend) { b.client = c }
}

// WithLoadRetries sets how often a failed Load is retried and the pause between
// attempts. Only transport errors and 5xx answers are retried; writes never are.
func WithLoadRetries(retries int, delay time.Duration) RemoteOption {
	return func(b *RemoteBackend) {
		b.retries = retries
		b.retryDelay = delay
	}
}

// NewRemoteBackend targets the API rooted at baseURL, e.g. "http://localhost:8000"
func NewRemoteBackend(baseURL string, opts ...RemoteOption) *RemoteBackend {
	b := &RemoteBackend{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		client:     &http.Client{Timeout: 10 * time.Second},
		retries:    defaultLoadRetries,
		retryDelay: defaultLoadRetryDelay,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load fetches the current set. A response without pinnedItems reads as empty.
func (b *RemoteBackend) Load(ctx context.Context) ([]nav.PinnedItem, error) {
	retry := retrypolicy.Builder[[]nav.PinnedItem]().
		HandleIf(func(_ []nav.PinnedItem, err error) bool { return retryable(err) }).
		WithMaxRetries(b.retries).
		WithDelay(b.retryDelay)

	items, err := failsafe.NewExecutor[[]nav.PinnedItem](retry.Build()).WithContext(ctx).
		Get(func() ([]nav.PinnedItem, error) {
			return b.do(ctx, http.MethodGet, PathPinned, nil)
		})
	if errors.Is(err, ErrMissingItems) {
		return []nav.PinnedItem{}, nil
	}
	return items, err
}

func (b *RemoteBackend) Pin(ctx context.Context, item nav.PinnedItem, _ []nav.PinnedItem) ([]nav.PinnedItem, error) {
	return b.do(ctx, http.MethodPost, PathPin, ItemRequest{Slug: item.Slug, Type: item.Type})
}

func (b *RemoteBackend) Unpin(ctx context.Context, slug string, typ nav.EntityType, _ []nav.PinnedItem) ([]nav.PinnedItem, error) {
	return b.do(ctx, http.MethodPost, PathUnpin, ItemRequest{Slug: slug, Type: typ})
}

func (b *RemoteBackend) Reorder(ctx context.Context, items []nav.PinnedItem) ([]nav.PinnedItem, error) {
	return b.do(ctx, http.MethodPost, PathReorder, ReorderRequest{Items: items})
}

func (b *RemoteBackend) do(ctx context.Context, method, path string, body any) ([]nav.PinnedItem, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &statusError{method: method, path: path, code: resp.StatusCode, body: strings.TrimSpace(string(msg))}
	}

	var decoded struct {
		PinnedItems *[]nav.PinnedItem `json:"pinnedItems"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	if decoded.PinnedItems == nil {
		return nil, ErrMissingItems
	}
	return *decoded.PinnedItems, nil
}

// retryable reports whether err is worth another attempt: server-side failures
// and transport errors, but not client errors or undecodable answers.
func retryable(err error) bool {
	if err == nil || errors.Is(err, ErrMissingItems) || errors.Is(err, context.Canceled) {
		return false
	}
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= http.StatusInternalServerError
	}
	var ue *url.Error
	return errors.As(err, &ue)
}
