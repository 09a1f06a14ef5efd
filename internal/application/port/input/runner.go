package input

import (
	"context"

	"gemini-agent/internal/domain/entity"
)

const (
	DebugUserID    = "debug_user_id"
	DebugSessionID = "debug_session_id"
)

type DebugOptions struct {
	UserID    string
	SessionID string
	Quiet     bool
	Verbose   bool
}

type DebugOption func(*DebugOptions)

func WithUserID(id string) DebugOption {
	return func(o *DebugOptions) { o.UserID = id }
}

func WithSessionID(id string) DebugOption {
	return func(o *DebugOptions) { o.SessionID = id }
}

func WithQuiet() DebugOption {
	return func(o *DebugOptions) { o.Quiet = true }
}

func WithVerbose() DebugOption {
	return func(o *DebugOptions) { o.Verbose = true }
}

type Runner interface {
	AppName() string
	Run(ctx context.Context, userID, sessionID, message string) ([]entity.Event, error)
	RunDebug(ctx context.Context, query string, opts ...DebugOption) ([]entity.Event, error)
}
