package preferences

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/cexll/sidebar/internal/concurrency"
	"github.com/cexll/sidebar/internal/nav"
)

const (
	// KeyPinned holds the user's pinned item list.
	KeyPinned = "nav-pinned"
	// KeyNav holds the opaque group open/closed state.
	KeyNav = "nav"
)

// GroupPreference is the remembered state of one sidebar group.
type GroupPreference struct {
	Open *bool `json:"open,omitempty"`
}

// NavPreferences is the collapsed/expanded state blob stored under KeyNav.
type NavPreferences struct {
	Groups map[string]GroupPreference `json:"groups,omitempty"`
}

// IsOpen reports the stored flag for label, or fallback when nothing is stored.
func (p NavPreferences) IsOpen(label string, fallback bool) bool {
	if g, ok := p.Groups[label]; ok && g.Open != nil {
		return *g.Open
	}
	return fallback
}

// Service implements the pinned-item and nav-state operations on top of a Store.
type Service struct {
	store  Store
	logger *zap.Logger

	// locks serializes read-modify-write cycles per user; the Store itself only guards single records.
	locks *concurrency.KeyedMutex
}

// NewService wraps store.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, locks: concurrency.NewKeyedMutex()}
}

// Pinned returns the user's pinned items in stored order.
func (s *Service) Pinned(ctx context.Context, userID string) ([]nav.PinnedItem, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	return s.readPinned(ctx, userID)
}

// Pin appends the item with order = current length. Pinning twice is a no-op.
func (s *Service) Pin(ctx context.Context, userID, slug string, typ nav.EntityType) ([]nav.PinnedItem, error) {
	if err := validate(userID, slug, typ); err != nil {
		return nil, err
	}
	if err := s.locks.Lock(ctx, userID); err != nil {
		return nil, err
	}
	defer s.locks.Unlock(userID)

	items, err := s.readPinned(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, added := nav.AppendPinned(items, slug, typ)
	if !added {
		return items, nil
	}
	if err := s.writePinned(ctx, userID, next); err != nil {
		return nil, err
	}
	s.logger.Debug("pinned item", zap.String("user", userID), zap.String("slug", slug), zap.String("type", string(typ)))
	return next, nil
}

// Unpin removes the item and renumbers the rest 0..n-1.
func (s *Service) Unpin(ctx context.Context, userID, slug string, typ nav.EntityType) ([]nav.PinnedItem, error) {
	if err := validate(userID, slug, typ); err != nil {
		return nil, err
	}
	if err := s.locks.Lock(ctx, userID); err != nil {
		return nil, err
	}
	defer s.locks.Unlock(userID)

	items, err := s.readPinned(ctx, userID)
	if err != nil {
		return nil, err
	}
	next, removed := nav.RemovePinned(items, slug, typ)
	if removed == nil {
		return items, nil
	}
	next = nav.RenumberPinned(next)
	if err := s.writePinned(ctx, userID, next); err != nil {
		return nil, err
	}
	s.logger.Debug("unpinned item", zap.String("user", userID), zap.String("slug", slug), zap.String("type", string(typ)))
	return next, nil
}

// Reorder replaces the whole list. Duplicates keep their first position and
// order is reassigned by position.
func (s *Service) Reorder(ctx context.Context, userID string, items []nav.PinnedItem) ([]nav.PinnedItem, error) {
	if userID == "" {
		return nil, ErrNoUser
	}
	for _, it := range items {
		if err := validate(userID, it.Slug, it.Type); err != nil {
			return nil, err
		}
	}
	if err := s.locks.Lock(ctx, userID); err != nil {
		return nil, err
	}
	defer s.locks.Unlock(userID)

	next := nav.RenumberPinned(nav.DedupePinned(items))
	if err := s.writePinned(ctx, userID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// NavState returns the stored group state; a missing or unreadable blob reads as empty.
func (s *Service) NavState(ctx context.Context, userID string) (NavPreferences, error) {
	if userID == "" {
		return NavPreferences{}, ErrNoUser
	}
	rec, ok, err := s.store.Get(ctx, userID, KeyNav)
	if err != nil {
		return NavPreferences{}, err
	}
	var prefs NavPreferences
	if !ok {
		return prefs, nil
	}
	if err := json.Unmarshal(rec.Value, &prefs); err != nil {
		s.logger.Warn("discarding unreadable nav preferences", zap.String("user", userID), zap.Error(err))
		return NavPreferences{}, nil
	}
	return prefs, nil
}

// SetGroupOpen records whether the group labelled label is expanded.
func (s *Service) SetGroupOpen(ctx context.Context, userID, label string, open bool) (NavPreferences, error) {
	if userID == "" {
		return NavPreferences{}, ErrNoUser
	}
	if label == "" {
		return NavPreferences{}, ErrEmptyLabel
	}
	if err := s.locks.Lock(ctx, userID); err != nil {
		return NavPreferences{}, err
	}
	defer s.locks.Unlock(userID)

	prefs, err := s.NavState(ctx, userID)
	if err != nil {
		return NavPreferences{}, err
	}
	if prefs.Groups == nil {
		prefs.Groups = make(map[string]GroupPreference)
	}
	prefs.Groups[label] = GroupPreference{Open: nav.BoolPtr(open)}

	raw, err := json.Marshal(prefs)
	if err != nil {
		return NavPreferences{}, err
	}
	if err := s.store.Set(ctx, userID, KeyNav, raw); err != nil {
		return NavPreferences{}, fmt.Errorf("save nav preferences: %w", err)
	}
	return prefs, nil
}

func (s *Service) readPinned(ctx context.Context, userID string) ([]nav.PinnedItem, error) {
	rec, ok, err := s.store.Get(ctx, userID, KeyPinned)
	if err != nil {
		return nil, fmt.Errorf("load pinned items: %w", err)
	}
	if !ok {
		return []nav.PinnedItem{}, nil
	}
	var items []nav.PinnedItem
	if err := json.Unmarshal(rec.Value, &items); err != nil {
		s.logger.Warn("discarding unreadable pinned items", zap.String("user", userID), zap.Error(err))
		return []nav.PinnedItem{}, nil
	}
	out := make([]nav.PinnedItem, 0, len(items))
	for _, it := range items {
		if it.Slug != "" && it.Type.Valid() {
			out = append(out, it)
		}
	}
	return nav.DedupePinned(out), nil
}

func (s *Service) writePinned(ctx context.Context, userID string, items []nav.PinnedItem) error {
	raw, err := json.Marshal(nav.ClonePinned(items))
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, userID, KeyPinned, raw); err != nil {
		return fmt.Errorf("save pinned items: %w", err)
	}
	return nil
}

func validate(userID, slug string, typ nav.EntityType) error {
	if userID == "" {
		return ErrNoUser
	}
	if slug == "" {
		return nav.ErrEmptySlug
	}
	if !typ.Valid() {
		return fmt.Errorf("%w: %q", nav.ErrInvalidType, typ)
	}
	return nil
}
