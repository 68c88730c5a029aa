package cache

import (
	"sync"
	"time"
)

type memoryItem struct {
	value   []byte
	expires time.Time
}

// MemoryStore is an in-process Store. It encodes values exactly as
// MemcacheStore does, so a value that round trips here round trips through
// memcached too. Expiry is evaluated against the store's clock.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryStore returns an empty MemoryStore. A nil now uses time.Now.
func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		items: make(map[string]memoryItem),
		now:   now,
	}
}

// Set puts the given interface into the cache
func (s *MemoryStore) Set(key string, data interface{}, timeToLive int32) error {
	value, err := encode(data)
	if err != nil {
		return err
	}

	item := memoryItem{value: value}
	if timeToLive > 0 {
		item.expires = s.now().Add(time.Duration(timeToLive) * time.Second)
	}

	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()

	return nil
}

// Get gets the data for the given key, if the data is in the cache and has not
// expired
func (s *MemoryStore) Get(key string, dst interface{}) error {
	s.mu.Lock()
	item, ok := s.items[key]
	if ok && !item.expires.IsZero() && !s.now().Before(item.expires) {
		delete(s.items, key)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return ErrCacheMiss
	}

	return decode(item.value, dst)
}

// Delete removes the key from the cache
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()

	return nil
}

// Len returns the number of items held, expired or not
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
