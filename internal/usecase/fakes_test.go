package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/roteirods-byte/autotrader/internal/domain/models"
)

// memStore is an in-memory StateStore for tests. failSet makes every Set
// report an error while leaving reads intact.
type memStore struct {
	mu      sync.Mutex
	m       map[string][]byte
	failSet bool
}

func newMemStore() *memStore {
	return &memStore{m: map[string][]byte{}}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("store unavailable")
	}
	s.m[key] = append([]byte(nil), value...)
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// fakeFeed serves a fixed snapshot.
type fakeFeed struct {
	snap *models.SignalSnapshot
}

func (f *fakeFeed) Snapshot() *models.SignalSnapshot {
	if f.snap == nil {
		return models.EmptySnapshot()
	}
	return f.snap
}

func (f *fakeFeed) Status() models.FeedStatus {
	return models.FeedStatus{LastUpdate: "10:00:00"}
}
