package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"shelter-catalog/internal/domain/sessions"
)

type sessionRepo struct {
	mu   sync.RWMutex
	byID map[string]sessions.Session
}

func NewSessionRepo() sessions.Repository {
	return &sessionRepo{
		byID: make(map[string]sessions.Session),
	}
}

func (r *sessionRepo) Create(ctx context.Context, s sessions.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	if _, exists := r.byID[s.ID]; exists {
		return errors.New("session already exists")
	}
	r.byID[s.ID] = s
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (sessions.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return sessions.Session{}, sessions.ErrNotFound
	}
	return s, nil
}

func (r *sessionRepo) MarkAnnouncementShown(ctx context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byID[id]
	if !ok {
		return false, sessions.ErrNotFound
	}
	if s.AnnouncementShownAt != nil {
		return false, nil
	}
	s.AnnouncementShownAt = &at
	s.UpdatedAt = at
	r.byID[id] = s
	return true, nil
}

func (r *sessionRepo) DeleteCreatedBefore(ctx context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.byID {
		if s.CreatedAt.Before(before) {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}
