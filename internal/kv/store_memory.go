package kv

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MemStore keeps blobs in a map. Used in tests and when no Redis address is
// configured; contents do not survive a restart.
type MemStore struct {
	mu  sync.RWMutex
	m   map[string][]byte
	log *zap.Logger
}

func NewMemStore(log *zap.Logger) *MemStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &MemStore{m: make(map[string][]byte), log: log}
}

func (s *MemStore) Read(ctx context.Context, key string, dest any) bool {
	s.mu.RLock()
	data, ok := s.m[key]
	s.mu.RUnlock()

	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.log.Warn("kv entry corrupt, treating as absent", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *MemStore) Write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.m[key] = data
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.m, key)
	s.mu.Unlock()
	return nil
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }
