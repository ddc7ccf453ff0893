package memory

import (
	"sync"

	"storefront-service/internal/cart"
	"storefront-service/internal/repository"
)

type sessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*cart.Session
}

func NewSessionRepository() repository.SessionRepository {
	return &sessionRepo{sessions: make(map[string]*cart.Session)}
}

func (r *sessionRepo) Save(s *cart.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	return nil
}

func (r *sessionRepo) FindByID(id string) (*cart.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (r *sessionRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}
