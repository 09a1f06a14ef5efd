package entity

import "time"

type Session struct {
	AppName   string    `json:"app_name"`
	UserID    string    `json:"user_id"`
	ID        string    `json:"id"`
	Events    []Event   `json:"events"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SessionKey struct {
	AppName   string
	UserID    string
	SessionID string
}

func (s *Session) Key() SessionKey {
	return SessionKey{AppName: s.AppName, UserID: s.UserID, SessionID: s.ID}
}
