package cache

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"
)

// ErrCacheMiss is returned by Get when the key is not in the cache
var ErrCacheMiss = errors.New("cache: miss")

// Store is the cache the session manager and anything else that needs shared
// state across requests depends on. Values are gob encoded, so dst passed to
// Get must be a pointer to the same type that was Set.
type Store interface {
	// Set puts data into the cache under key. timeToLive is in seconds, zero
	// means no expiry.
	Set(key string, data interface{}, timeToLive int32) error

	// Get decodes the value held for key into dst, or returns ErrCacheMiss
	Get(key string, dst interface{}) error

	// Delete removes key. Deleting a key that does not exist is not an error.
	Delete(key string) error
}

// MemcacheStore is a Store backed by memcached
type MemcacheStore struct {
	mc *memcache.Client
}

// NewMemcacheStore creates the memcache client. It is the responsibility of
// whatever has the values for this function (usually main.go shortly after
// reading the config file) to call this.
func NewMemcacheStore(host string, port int64) *MemcacheStore {
	return &MemcacheStore{
		mc: memcache.New(fmt.Sprintf("%s:%d", host, port)),
	}
}

// Set puts the given interface into the cache
func (s *MemcacheStore) Set(key string, data interface{}, timeToLive int32) error {
	value, err := encode(data)
	if err != nil {
		return err
	}

	err = s.mc.Set(
		&memcache.Item{
			Key:        key,
			Value:      value,
			Expiration: timeToLive, // time in seconds
		},
	)
	if err != nil {
		return fmt.Errorf("mc.Set(%s): %v", key, err)
	}

	return nil
}

// Get gets the data for the given key, if the data is in the cache
func (s *MemcacheStore) Get(key string, dst interface{}) error {
	item, err := s.mc.Get(key)
	if err != nil {
		// A key memcached would refuse cannot have been set
		if err == memcache.ErrCacheMiss || err == memcache.ErrMalformedKey {
			return ErrCacheMiss
		}
		return fmt.Errorf("mc.Get(%s): %v", key, err)
	}

	return decode(item.Value, dst)
}

// Delete removes items matching the given key from the cache, if it is in
// the cache
func (s *MemcacheStore) Delete(key string) error {
	err := s.mc.Delete(key)
	if err != nil && err != memcache.ErrCacheMiss {
		return fmt.Errorf("mc.Delete(%s): %v", key, err)
	}

	return nil
}

func encode(data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("enc.Encode(data): %v", err)
	}
	return buf.Bytes(), nil
}

func decode(value []byte, dst interface{}) error {
	dec := gob.NewDecoder(bytes.NewReader(value))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("dec.Decode(dst): %v", err)
	}
	return nil
}
