package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gemini-agent/internal/application/port/input"
	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"
	"gemini-agent/internal/usecase/session"

	"github.com/google/uuid"
)

var _ input.Runner = (*InMemoryRunner)(nil)

// Agent is the part of an agent the runner drives.
type Agent interface {
	Name() string
	Run(ctx context.Context, invocationID string, history []entity.Event, emit func(entity.Event) error) error
}

// InMemoryRunner runs one agent against sessions kept in memory.
type InMemoryRunner struct {
	appName  string
	agent    Agent
	sessions output.SessionStore
	printer  output.EventPrinter
	logger   output.LoggerPort
	now      func() time.Time
}

type Option func(*InMemoryRunner)

func WithAppName(name string) Option {
	return func(r *InMemoryRunner) { r.appName = name }
}

func WithSessionStore(store output.SessionStore) Option {
	return func(r *InMemoryRunner) { r.sessions = store }
}

func WithPrinter(p output.EventPrinter) Option {
	return func(r *InMemoryRunner) { r.printer = p }
}

func New(agent Agent, logger output.LoggerPort, opts ...Option) (*InMemoryRunner, error) {
	if agent == nil {
		return nil, fmt.Errorf("agent is required")
	}

	r := &InMemoryRunner{
		appName:  agent.Name(),
		agent:    agent,
		sessions: session.NewInMemoryStore(),
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.appName == "" {
		return nil, fmt.Errorf("app name is required")
	}
	return r, nil
}

func (r *InMemoryRunner) AppName() string {
	return r.appName
}

func (r *InMemoryRunner) Sessions() output.SessionStore {
	return r.sessions
}

// Run appends message to an existing session, runs the agent and returns
// the events it produced. Produced events are stored even when the agent
// fails part way.
func (r *InMemoryRunner) Run(ctx context.Context, userID, sessionID, message string) ([]entity.Event, error) {
	sess, err := r.sessions.Get(r.appName, userID, sessionID)
	if err != nil {
		return nil, err
	}

	invocationID := "e-" + uuid.NewString()
	log := r.logger.WithFields(map[string]any{
		"invocation": invocationID,
		"user":       userID,
		"session":    sessionID,
	})

	userEv := entity.Event{
		ID:           uuid.NewString(),
		InvocationID: invocationID,
		Author:       entity.AuthorUser,
		Content:      &entity.Content{Role: entity.RoleUser, Parts: []entity.Part{{Text: message}}},
		Timestamp:    r.now(),
	}
	if err := r.sessions.AppendEvent(sess.Key(), userEv); err != nil {
		return nil, err
	}

	history := append(sess.Events, userEv)

	var produced []entity.Event
	start := time.Now()
	log.Info("Invocation started", "agent", r.agent.Name())

	err = r.agent.Run(ctx, invocationID, history, func(ev entity.Event) error {
		if err := r.sessions.AppendEvent(sess.Key(), ev); err != nil {
			return err
		}
		produced = append(produced, ev)
		return nil
	})
	if err != nil {
		log.Error("Invocation failed", "error", err, "events", len(produced), "duration_ms", time.Since(start).Milliseconds())
		return produced, fmt.Errorf("run agent %s: %w", r.agent.Name(), err)
	}

	log.Info("Invocation completed", "events", len(produced), "duration_ms", time.Since(start).Milliseconds())
	return produced, nil
}

// RunDebug is a convenience entry point for manual testing: it uses fixed
// debug user and session ids, creates the session on first use and prints
// the exchange unless quiet.
func (r *InMemoryRunner) RunDebug(ctx context.Context, query string, opts ...input.DebugOption) ([]entity.Event, error) {
	o := input.DebugOptions{
		UserID:    input.DebugUserID,
		SessionID: input.DebugSessionID,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if _, err := r.sessions.Get(r.appName, o.UserID, o.SessionID); err != nil {
		if !errors.Is(err, session.ErrSessionNotFound) {
			return nil, err
		}
		if _, err := r.sessions.Create(r.appName, o.UserID, o.SessionID); err != nil && !errors.Is(err, session.ErrSessionExists) {
			return nil, err
		}
		r.logger.Debug("Debug session created", "user", o.UserID, "session", o.SessionID)
	}

	printer := r.printer
	if o.Quiet {
		printer = nil
	}
	if printer != nil {
		printer.PrintUser(query)
	}

	events, err := r.Run(ctx, o.UserID, o.SessionID, query)
	if printer != nil {
		for _, ev := range events {
			printer.PrintEvent(ev, o.Verbose)
		}
	}
	return events, err
}
