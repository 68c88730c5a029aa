package cache

import (
	"testing"
	"time"
)

type payload struct {
	Name  string
	Email string
}

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore(nil)

	if err := s.Set("k", payload{Name: "bob", Email: "bob@example.com"}, 0); err != nil {
		t.Fatalf("Set() returned %v", err)
	}

	var got payload
	if err := s.Get("k", &got); err != nil {
		t.Fatalf("Get() returned %v", err)
	}
	if got.Name != "bob" || got.Email != "bob@example.com" {
		t.Errorf("Get() = %+v should be bob/bob@example.com", got)
	}
}

func TestMemoryStoreMiss(t *testing.T) {
	s := NewMemoryStore(nil)

	var got payload
	if err := s.Get("missing", &got); err != ErrCacheMiss {
		t.Errorf("Get(missing) = %v should be %v", err, ErrCacheMiss)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore(nil)
	s.Set("k", payload{Name: "bob"}, 0)

	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete() returned %v", err)
	}
	var got payload
	if err := s.Get("k", &got); err != ErrCacheMiss {
		t.Errorf("Get() after Delete() = %v should be %v", err, ErrCacheMiss)
	}

	if err := s.Delete("never-set"); err != nil {
		t.Errorf("Delete() of a missing key returned %v", err)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	now := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(func() time.Time { return now })

	s.Set("short", payload{Name: "short"}, 60)
	s.Set("forever", payload{Name: "forever"}, 0)

	now = now.Add(59 * time.Second)
	var got payload
	if err := s.Get("short", &got); err != nil {
		t.Errorf("Get(short) before expiry returned %v", err)
	}

	now = now.Add(time.Second)
	if err := s.Get("short", &got); err != ErrCacheMiss {
		t.Errorf("Get(short) at expiry = %v should be %v", err, ErrCacheMiss)
	}

	now = now.Add(365 * 24 * time.Hour)
	if err := s.Get("forever", &got); err != nil {
		t.Errorf("Get(forever) with zero TTL returned %v", err)
	}
}

func TestMemoryStoreOverwrite(t *testing.T) {
	s := NewMemoryStore(nil)
	s.Set("k", payload{Name: "first"}, 0)
	s.Set("k", payload{Name: "second"}, 0)

	if s.Len() != 1 {
		t.Errorf("Len() = %d should be 1", s.Len())
	}
	var got payload
	s.Get("k", &got)
	if got.Name != "second" {
		t.Errorf("Get() = %q should be %q", got.Name, "second")
	}
}
