package pinned

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cexll/sidebar/internal/logging"
	"github.com/cexll/sidebar/internal/nav"
)

// State of the store's in-memory copy
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// Action names a confirmed change reported to the change callback
type Action string

const (
	ActionPin   Action = "pin"
	ActionUnpin Action = "unpin"
)

// ChangeFunc is called after a pin or unpin has been confirmed by the backend
type ChangeFunc func(item nav.PinnedItem, action Action)

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for load and write-through failures
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = logging.OrNop(l) }
}

// WithOnChange registers a callback for confirmed pin and unpin operations
func WithOnChange(fn ChangeFunc) Option {
	return func(s *Store) { s.onChange = fn }
}

// Store owns the session's in-memory pinned set and keeps it reconciled with a Backend.
//
// Every mutation applies its result to memory first, then writes through. A failed
// write is logged and followed by a full Load; the optimistic value is never merged
// with the reload. Mutations run one at a time in call order, while reads
// (Items, IsPinned) see the optimistic value as soon as it is applied.
type Store struct {
	backend  Backend
	log      *zap.Logger
	onChange ChangeFunc

	opMu sync.Mutex // serializes Load and mutations

	mu    sync.RWMutex
	state State
	items []nav.PinnedItem
}

// New creates a store in the loading state. Call Load before use.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		log:     zap.NewNop(),
		state:   StateLoading,
		items:   []nav.PinnedItem{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory set with the backend's. On failure the set is
// empty; the store is ready either way and the error is only informational.
func (s *Store) Load(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) error {
	items, err := s.backend.Load(ctx)
	if err != nil {
		s.log.Warn("failed to load pinned items", zap.Error(err))
		s.set(StateReady, nil)
		return fmt.Errorf("load pinned items: %w", err)
	}
	s.set(StateReady, items)
	return nil
}

// State reports whether the first load has completed
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Items returns a copy of the current pinned set
func (s *Store) Items() []nav.PinnedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nav.ClonePinned(s.items)
}

// IsPinned reports membership in the current in-memory set
func (s *Store) IsPinned(slug string, typ nav.EntityType) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nav.ContainsPinned(s.items, slug, typ)
}

// Pin appends (slug, typ) at the end of the set. Pinning an item twice is a no-op.
func (s *Store) Pin(ctx context.Context, slug string, typ nav.EntityType) error {
	if err := validate(slug, typ); err != nil {
		return err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	next, added := nav.AppendPinned(s.Items(), slug, typ)
	if !added {
		return nil
	}
	item := next[len(next)-1]
	s.set(StateReady, next)

	confirmed, err := s.backend.Pin(ctx, item, next)
	if err != nil {
		return s.rollback(ctx, "pin", slug, typ, err)
	}
	s.set(StateReady, confirmed)
	s.notify(item, ActionPin)
	return nil
}

// Unpin removes (slug, typ) from the set, renumbers the rest 0..n-1 and writes the removal through
func (s *Store) Unpin(ctx context.Context, slug string, typ nav.EntityType) error {
	if err := validate(slug, typ); err != nil {
		return err
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	next, removed := nav.RemovePinned(s.Items(), slug, typ)
	next = nav.RenumberPinned(next)
	s.set(StateReady, next)

	confirmed, err := s.backend.Unpin(ctx, slug, typ, next)
	if err != nil {
		return s.rollback(ctx, "unpin", slug, typ, err)
	}
	s.set(StateReady, confirmed)
	if removed != nil {
		s.notify(*removed, ActionUnpin)
	}
	return nil
}

// Reorder replaces the whole set. Repeated identities keep their first occurrence.
func (s *Store) Reorder(ctx context.Context, items []nav.PinnedItem) error {
	for _, item := range items {
		if err := validate(item.Slug, item.Type); err != nil {
			return err
		}
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	next := nav.RenumberPinned(nav.DedupePinned(items))
	s.set(StateReady, next)

	confirmed, err := s.backend.Reorder(ctx, next)
	if err != nil {
		return s.rollback(ctx, "reorder", "", "", err)
	}
	s.set(StateReady, confirmed)
	return nil
}

// TogglePin unpins a pinned item and pins an unpinned one
func (s *Store) TogglePin(ctx context.Context, slug string, typ nav.EntityType) error {
	if s.IsPinned(slug, typ) {
		return s.Unpin(ctx, slug, typ)
	}
	return s.Pin(ctx, slug, typ)
}

func (s *Store) rollback(ctx context.Context, op, slug string, typ nav.EntityType, cause error) error {
	s.log.Error("pinned write-through failed, reloading",
		zap.String("op", op),
		zap.String("slug", slug),
		zap.String("type", string(typ)),
		zap.Error(cause),
	)
	_ = s.load(ctx)
	return fmt.Errorf("%w: %s: %v", ErrWriteThrough, op, cause)
}

func (s *Store) set(state State, items []nav.PinnedItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.items = nav.ClonePinned(items)
}

func (s *Store) notify(item nav.PinnedItem, action Action) {
	if s.onChange != nil {
		s.onChange(item, action)
	}
}

func validate(slug string, typ nav.EntityType) error {
	if slug == "" {
		return nav.ErrEmptySlug
	}
	if !typ.Valid() {
		return fmt.Errorf("%w: %q", nav.ErrInvalidType, typ)
	}
	return nil
}
