package pinned

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cexll/sidebar/internal/nav"
)

// DefaultSlotKey names the slot that holds the serialized pinned set
const DefaultSlotKey = "nav-pinned"

// Slot is string-keyed local storage, one browser profile's worth
type Slot interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// LocalBackend keeps the whole pinned set in a single slot and rewrites it on every change
type LocalBackend struct {
	slot Slot
	key  string
}

// NewLocalBackend stores pinned items under key, DefaultSlotKey when empty
func NewLocalBackend(slot Slot, key string) *LocalBackend {
	if key == "" {
		key = DefaultSlotKey
	}
	return &LocalBackend{slot: slot, key: key}
}

// Load returns the stored set. An absent or unparseable slot reads as empty.
func (b *LocalBackend) Load(_ context.Context) ([]nav.PinnedItem, error) {
	raw, ok, err := b.slot.Get(b.key)
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", b.key, err)
	}
	if !ok {
		return []nav.PinnedItem{}, nil
	}
	return DecodeItems(raw), nil
}

func (b *LocalBackend) Pin(_ context.Context, _ nav.PinnedItem, next []nav.PinnedItem) ([]nav.PinnedItem, error) {
	return b.write(next)
}

// Unpin writes next with orders reassigned by position, as the preference server does
func (b *LocalBackend) Unpin(_ context.Context, _ string, _ nav.EntityType, next []nav.PinnedItem) ([]nav.PinnedItem, error) {
	return b.write(nav.RenumberPinned(next))
}

func (b *LocalBackend) Reorder(_ context.Context, items []nav.PinnedItem) ([]nav.PinnedItem, error) {
	return b.write(nav.RenumberPinned(nav.DedupePinned(items)))
}

func (b *LocalBackend) write(items []nav.PinnedItem) ([]nav.PinnedItem, error) {
	items = nav.ClonePinned(items)
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	if err := b.slot.Set(b.key, string(raw)); err != nil {
		return nil, fmt.Errorf("write slot %s: %w", b.key, err)
	}
	return items, nil
}

// DecodeItems parses a serialized pinned set. Malformed input and entries with
// an unknown type or empty slug are dropped rather than reported.
func DecodeItems(raw string) []nav.PinnedItem {
	var items []nav.PinnedItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []nav.PinnedItem{}
	}
	out := make([]nav.PinnedItem, 0, len(items))
	for _, item := range items {
		if item.Slug == "" || !item.Type.Valid() {
			continue
		}
		out = append(out, item)
	}
	return nav.DedupePinned(out)
}

// MemorySlot is an in-process Slot
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string]string)}
}

func (m *MemorySlot) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemorySlot) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// FileSlot stores each key as <Dir>/<key>.json
type FileSlot struct {
	Dir string
}

func (f FileSlot) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(f.Dir, key+".json"), nil
}

func (f FileSlot) Get(key string) (string, bool, error) {
	p, err := f.path(key)
	if err != nil {
		return "", false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(b), true, nil
}

// Set writes through a temp file and rename so readers never see a partial value
func (f FileSlot) Set(key, value string) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.Dir, "."+key+"-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), p)
}
