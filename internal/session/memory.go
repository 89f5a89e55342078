package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore keeps sessions in process memory. Suitable for dev and tests;
// state does not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	raw, ok := s.data[sessionID]
	s.mu.RUnlock()
	if !ok {
		return New(), nil
	}
	sess := New()
	if err := json.Unmarshal(raw, sess); err != nil {
		return New(), nil
	}
	sess.ensureCart()
	return sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[sessionID] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.data, sessionID)
	s.mu.Unlock()
	return nil
}
