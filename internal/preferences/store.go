package preferences

import (
	"context"
	"sync"
	"time"
)

// Record is one stored preference value
type Record struct {
	UserID    string
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

// Store persists opaque per-user preference values keyed by (user, key)
type Store interface {
	Get(ctx context.Context, userID, key string) (Record, bool, error)
	Set(ctx context.Context, userID, key string, value []byte) error
	Delete(ctx context.Context, userID, key string) error
}

type recordKey struct {
	userID string
	key    string
}

// MemoryStore keeps preferences in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	records map[recordKey]Record
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[recordKey]Record),
	}
}

func (s *MemoryStore) Get(_ context.Context, userID, key string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordKey{userID, key}]
	if !ok {
		return Record{}, false, nil
	}
	rec.Value = append([]byte(nil), rec.Value...)
	return rec, true, nil
}

func (s *MemoryStore) Set(_ context.Context, userID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordKey{userID, key}] = Record{
		UserID:    userID,
		Key:       key,
		Value:     append([]byte(nil), value...),
		UpdatedAt: time.Now(),
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, recordKey{userID, key})
	return nil
}
