package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"
)

var _ output.SessionStore = (*InMemoryStore)(nil)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)

// InMemoryStore keeps sessions for the lifetime of the process.
// Callers always receive copies.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[entity.SessionKey]*entity.Session
	now      func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[entity.SessionKey]*entity.Session),
		now:      time.Now,
	}
}

func (s *InMemoryStore) Create(appName, userID, sessionID string) (*entity.Session, error) {
	key := entity.SessionKey{AppName: appName, UserID: userID, SessionID: sessionID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[key]; ok {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrSessionExists, appName, userID, sessionID)
	}

	sess := &entity.Session{
		AppName:   appName,
		UserID:    userID,
		ID:        sessionID,
		UpdatedAt: s.now(),
	}
	s.sessions[key] = sess
	return clone(sess), nil
}

func (s *InMemoryStore) Get(appName, userID, sessionID string) (*entity.Session, error) {
	key := entity.SessionKey{AppName: appName, UserID: userID, SessionID: sessionID}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s/%s", ErrSessionNotFound, appName, userID, sessionID)
	}
	return clone(sess), nil
}

func (s *InMemoryStore) AppendEvent(key entity.SessionKey, event entity.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[key]
	if !ok {
		return fmt.Errorf("%w: %s/%s/%s", ErrSessionNotFound, key.AppName, key.UserID, key.SessionID)
	}
	sess.Events = append(sess.Events, event)
	sess.UpdatedAt = s.now()
	return nil
}

// List returns the user's sessions ordered by id.
func (s *InMemoryStore) List(appName, userID string) []*entity.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*entity.Session
	for key, sess := range s.sessions {
		if key.AppName == appName && key.UserID == userID {
			result = append(result, clone(sess))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

func (s *InMemoryStore) Delete(appName, userID, sessionID string) error {
	key := entity.SessionKey{AppName: appName, UserID: userID, SessionID: sessionID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[key]; !ok {
		return fmt.Errorf("%w: %s/%s/%s", ErrSessionNotFound, appName, userID, sessionID)
	}
	delete(s.sessions, key)
	return nil
}

func clone(sess *entity.Session) *entity.Session {
	cp := *sess
	cp.Events = append([]entity.Event(nil), sess.Events...)
	return &cp
}
