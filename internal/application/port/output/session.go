package output

import "gemini-agent/internal/domain/entity"

type SessionStore interface {
	Create(appName, userID, sessionID string) (*entity.Session, error)
	Get(appName, userID, sessionID string) (*entity.Session, error)
	AppendEvent(key entity.SessionKey, event entity.Event) error
	List(appName, userID string) []*entity.Session
	Delete(appName, userID, sessionID string) error
}
