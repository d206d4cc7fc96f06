package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dentassist/backend/internal/models"
)

// MemoryStore keeps sessions in-process, for dev and tests. Contexts are
// copied through JSON so callers never alias the stored value.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string][]byte{}}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*models.ConversationContext, error) {
	s.mu.RLock()
	payload, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var cctx models.ConversationContext
	if err := json.Unmarshal(payload, &cctx); err != nil {
		return nil, err
	}
	return &cctx, nil
}

func (s *MemoryStore) Save(_ context.Context, cctx *models.ConversationContext) error {
	payload, err := json.Marshal(cctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[cctx.SessionID] = payload
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
