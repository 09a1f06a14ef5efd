package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"gemini-agent/internal/application/port/input"
	"gemini-agent/internal/application/port/output"
	"gemini-agent/internal/domain/entity"
	"gemini-agent/internal/usecase/runner"
	"gemini-agent/internal/usecase/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

const maxBodyBytes = 1 << 20

// Runner is what the endpoint needs from a runner.
type Runner interface {
	AppName() string
	Run(ctx context.Context, userID, sessionID, message string) ([]entity.Event, error)
	Sessions() output.SessionStore
}

type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AccessLog       io.Writer
}

func DefaultConfig() Config {
	return Config{
		Addr:            ":8000",
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    5 * time.Minute,
		ShutdownTimeout: 10 * time.Second,
		AccessLog:       os.Stdout,
	}
}

type Server struct {
	cfg    Config
	runner Runner
	logger output.LoggerPort
	router chi.Router
}

func NewServer(cfg Config, r Runner, logger output.LoggerPort) (*Server, error) {
	if r == nil {
		return nil, fmt.Errorf("runner is required")
	}
	if cfg.AccessLog == nil {
		cfg.AccessLog = os.Stdout
	}

	s := &Server{
		cfg:    cfg,
		runner: r,
		logger: logger.WithField("component", "web"),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	accessLog := httplog.NewLogger(s.runner.AppName(), httplog.Options{JSON: true}).Output(s.cfg.AccessLog)

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(accessLog))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/run", s.handleRun)
	r.Get("/apps/{app}/users/{user}/sessions/{session}", s.handleGetSession)
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until ctx is done, then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting web endpoint", "addr", s.cfg.Addr, "app", s.runner.AppName())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start web endpoint: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down web endpoint")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown web endpoint: %w", err)
	}
	return nil
}

type runRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type runResponse struct {
	Events []entity.Event `json:"events"`
	Text   string         `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}
	if req.UserID == "" {
		req.UserID = input.DebugUserID
	}
	if req.SessionID == "" {
		req.SessionID = input.DebugSessionID
	}

	store := s.runner.Sessions()
	if _, err := store.Get(s.runner.AppName(), req.UserID, req.SessionID); errors.Is(err, session.ErrSessionNotFound) {
		if _, err := store.Create(s.runner.AppName(), req.UserID, req.SessionID); err != nil && !errors.Is(err, session.ErrSessionExists) {
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
	}

	events, err := s.runner.Run(r.Context(), req.UserID, req.SessionID, req.Message)
	if err != nil {
		s.logger.Error("Run failed", "user", req.UserID, "session", req.SessionID, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	if events == nil {
		events = []entity.Event{}
	}
	writeJSON(w, http.StatusOK, runResponse{Events: events, Text: runner.ExtractText(events)})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.runner.Sessions().Get(chi.URLParam(r, "app"), chi.URLParam(r, "user"), chi.URLParam(r, "session"))
	if errors.Is(err, session.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
