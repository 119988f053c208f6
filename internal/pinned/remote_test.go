package pinned

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/cexll/sidebar/internal/nav"
)

// prefServer is a minimal in-test preference API.
type prefServer struct {
	mu        sync.Mutex
	items     []nav.PinnedItem
	failUnpin bool
	omitItems bool
	auth      string
}

func (p *prefServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		if p.omitItems {
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_ = json.NewEncoder(w).Encode(Response{PinnedItems: p.items})
	}
	mux.HandleFunc(PathPinned, func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.auth = r.Header.Get("Authorization")
		reply(w)
	})
	mux.HandleFunc(PathPin, func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		var req ItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode pin: %v", err)
		}
		p.items, _ = nav.AppendPinned(p.items, req.Slug, req.Type)
		reply(w)
	})
	mux.HandleFunc(PathUnpin, func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.failUnpin {
			http.Error(w, `{"error":"unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		var req ItemRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		p.items, _ = nav.RemovePinned(p.items, req.Slug, req.Type)
		p.items = nav.RenumberPinned(p.items)
		reply(w)
	})
	mux.HandleFunc(PathReorder, func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		defer p.mu.Unlock()
		var req ReorderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		p.items = nav.RenumberPinned(nav.DedupePinned(req.Items))
		reply(w)
	})
	return mux
}

func TestRemote_AdoptsServerSet(t *testing.T) {
	srv := &prefServer{}
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()

	s := New(NewRemoteBackend(ts.URL, WithToken("tok")), WithLogger(zaptest.NewLogger(t)))
	ctx := context.Background()
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	srv.mu.Lock()
	auth := srv.auth
	srv.mu.Unlock()
	if auth != "Bearer tok" {
		t.Fatalf("Authorization = %q", auth)
	}

	for _, slug := range []string{"a", "b", "c"} {
		if err := s.Pin(ctx, slug, nav.TypeCollection); err != nil {
			t.Fatalf("Pin(%s) failed: %v", slug, err)
		}
	}
	if err := s.Unpin(ctx, "a", nav.TypeCollection); err != nil {
		t.Fatalf("Unpin failed: %v", err)
	}

	// the server renumbers on unpin; the store must adopt that, not its own guess
	want := []nav.PinnedItem{
		{Slug: "b", Type: nav.TypeCollection, Order: 0},
		{Slug: "c", Type: nav.TypeCollection, Order: 1},
	}
	if got := s.Items(); !nav.EqualPinned(got, want) {
		t.Fatalf("items = %+v, want %+v", got, want)
	}

	if err := s.Reorder(ctx, []nav.PinnedItem{want[1], want[0]}); err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}
	if got := s.Items(); got[0].Slug != "c" || got[0].Order != 0 || got[1].Slug != "b" || got[1].Order != 1 {
		t.Fatalf("after reorder items = %+v", got)
	}
}

func TestRemote_FailedUnpinEqualsFreshLoad(t *testing.T) {
	srv := &prefServer{items: []nav.PinnedItem{
		{Slug: "posts", Type: nav.TypeCollection, Order: 0},
		{Slug: "header", Type: nav.TypeGlobal, Order: 1},
	}}
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()

	backend := NewRemoteBackend(ts.URL)
	s := New(backend, WithLogger(zaptest.NewLogger(t)))
	ctx := context.Background()
	_ = s.Load(ctx)

	srv.mu.Lock()
	srv.failUnpin = true
	srv.mu.Unlock()
	if err := s.Unpin(ctx, "posts", nav.TypeCollection); !errors.Is(err, ErrWriteThrough) {
		t.Fatalf("Unpin error = %v, want ErrWriteThrough", err)
	}

	fresh, err := backend.Load(ctx)
	if err != nil {
		t.Fatalf("fresh load failed: %v", err)
	}
	if got := s.Items(); !nav.EqualPinned(got, fresh) {
		t.Fatalf("items = %+v, want fresh load %+v", got, fresh)
	}
	if !s.IsPinned("posts", nav.TypeCollection) {
		t.Fatalf("optimistic unpin survived the failed write")
	}
}

func TestRemote_MissingItems(t *testing.T) {
	srv := &prefServer{omitItems: true}
	ts := httptest.NewServer(srv.handler(t))
	defer ts.Close()

	b := NewRemoteBackend(ts.URL + "/")
	items, err := b.Load(context.Background())
	if err != nil || len(items) != 0 {
		t.Fatalf("Load = %+v, %v; want empty, nil", items, err)
	}

	_, err = b.Pin(context.Background(), nav.PinnedItem{Slug: "x", Type: nav.TypeGlobal}, nil)
	if !errors.Is(err, ErrMissingItems) {
		t.Fatalf("Pin error = %v, want ErrMissingItems", err)
	}
}

func TestRemote_UnreachableServer(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	s := New(NewRemoteBackend(url))
	if err := s.Load(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
	if s.State() != StateReady || len(s.Items()) != 0 {
		t.Fatalf("state = %s items = %+v", s.State(), s.Items())
	}
}

func TestRemote_LoadRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(Response{PinnedItems: []nav.PinnedItem{{Slug: "posts", Type: nav.TypeCollection}}})
	}))
	defer ts.Close()

	b := NewRemoteBackend(ts.URL, WithLoadRetries(2, time.Millisecond))
	items, err := b.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "posts" {
		t.Fatalf("items = %+v", items)
	}
	if n := calls.Load(); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
}

func TestRemote_LoadDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	b := NewRemoteBackend(ts.URL, WithLoadRetries(3, time.Millisecond))
	if _, err := b.Load(context.Background()); err == nil {
		t.Fatal("expected error for 401")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestRemote_WritesAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	b := NewRemoteBackend(ts.URL, WithLoadRetries(3, time.Millisecond))
	if _, err := b.Pin(context.Background(), nav.PinnedItem{Slug: "x", Type: nav.TypeGlobal}, nil); err == nil {
		t.Fatal("expected error for 503")
	}
	if n := calls.Load(); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}
