package mem

import (
	"bytes"
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"tripplanner/pkg/utils"
)

// Store is a key-value cache with per-entry expiry. Get returns
// utils.ErrCacheMiss for absent or expired keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// SetNX stores value only when key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
	// DelIfValue deletes key only while it still holds value, atomically.
	DelIfValue(ctx context.Context, key string, value []byte) (bool, error)
}

// LocalStore keeps entries in process memory.
type LocalStore struct {
	mu sync.Mutex
	c  *gocache.Cache
}

func NewLocalStore(cleanupInterval time.Duration) *LocalStore {
	return &LocalStore{c: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := s.c.Get(key)
	if !ok {
		return nil, utils.ErrCacheMiss
	}
	return v.([]byte), nil
}

func (s *LocalStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Set(key, value, ttl)
	return nil
}

func (s *LocalStore) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.c.Add(key, value, ttl); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *LocalStore) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.c.Delete(key)
	return nil
}

func (s *LocalStore) DelIfValue(_ context.Context, key string, value []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.c.Get(key)
	if !ok || !bytes.Equal(cur.([]byte), value) {
		return false, nil
	}
	s.c.Delete(key)
	return true, nil
}
