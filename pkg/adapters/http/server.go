package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Chinh13571113/careermate-web-sub001/internal/logging"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/engine"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

//go:embed openapi.yaml
var openapiSpec []byte

// Engine defines the interface for the session engine core.
type Engine interface {
	Start(ctx context.Context, ownerID, jobDescription string) (*domain.Session, *domain.Turn, error)
	SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, answer string) (*domain.Session, *domain.Turn, error)
	Finalize(ctx context.Context, sessionID string) (*domain.Session, error)
	Resume(ctx context.Context, sessionID string) (*domain.Session, *engine.Plan, error)
	List(ctx context.Context, filter ports.ListFilter) ([]*domain.Session, error)
}

// Server exposes the engine's five operations over JSON/HTTP.
type Server struct {
	engine Engine
	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(eng Engine, opts ...Option) http.Handler {
	server := &Server{
		engine: eng,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})

	r.Get("/health", server.GetHealth)
	r.Post("/sessions", server.StartSession)
	r.Get("/sessions", server.ListSessions)
	r.Get("/sessions/{sessionID}", server.ResumeSession)
	r.Post("/sessions/{sessionID}/answers", server.SubmitAnswer)
	r.Post("/sessions/{sessionID}/finalize", server.FinalizeSession)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>CareerMate Interview API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

type startRequest struct {
	OwnerID        string `json:"owner_id"`
	JobDescription string `json:"job_description"`
}

type sessionResponse struct {
	Session *domain.Session `json:"session"`
	Pending *domain.Turn    `json:"pending,omitempty"`
}

type resumeResponse struct {
	Session *domain.Session `json:"session"`
	Plan    *engine.Plan    `json:"plan"`
}

type answerRequest struct {
	QuestionNumber int    `json:"question_number"`
	Answer         string `json:"answer"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// StartSession handles POST /sessions.
func (s *Server) StartSession(w http.ResponseWriter, r *http.Request) {
	var body startRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("StartSession: invalid request body", "err", err)
		return
	}

	session, pending, err := s.engine.Start(r.Context(), body.OwnerID, body.JobDescription)
	if err != nil {
		s.writeError(w, "StartSession", err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sessionResponse{Session: session, Pending: pending})
}

// SubmitAnswer handles POST /sessions/{sessionID}/answers.
func (s *Server) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var body answerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("SubmitAnswer: invalid request body", "err", err)
		return
	}

	session, next, err := s.engine.SubmitAnswer(r.Context(), sessionID, body.QuestionNumber, body.Answer)
	if err != nil {
		s.writeError(w, "SubmitAnswer", err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{Session: session, Pending: next})
}

// FinalizeSession handles POST /sessions/{sessionID}/finalize.
func (s *Server) FinalizeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := s.engine.Finalize(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, "FinalizeSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessionResponse{Session: session})
}

// ResumeSession handles GET /sessions/{sessionID}.
func (s *Server) ResumeSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, plan, err := s.engine.Resume(r.Context(), sessionID)
	if err != nil {
		s.writeError(w, "ResumeSession", err)
		return
	}
	s.writeJSON(w, http.StatusOK, resumeResponse{Session: session, Plan: plan})
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	filter := ports.ListFilter{
		OwnerID: r.URL.Query().Get("owner_id"),
		Status:  domain.Status(r.URL.Query().Get("status")),
	}

	sessions, err := s.engine.List(r.Context(), filter)
	if err != nil {
		s.writeError(w, "ListSessions", err)
		return
	}
	s.writeJSON(w, http.StatusOK, sessions)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Every
// kind is returned verbatim in the body; nothing is suppressed.
func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	kind := "internal"

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrInvalidArgument):
		status, kind = http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, domain.ErrStaleSubmission):
		status, kind = http.StatusConflict, "stale_submission"
	case errors.Is(err, domain.ErrSubmissionInProgress):
		status, kind = http.StatusConflict, "submission_in_progress"
	case errors.Is(err, domain.ErrConflict):
		status, kind = http.StatusConflict, "revision_conflict"
	case errors.Is(err, domain.ErrGenerationFailed):
		status, kind = http.StatusBadGateway, "generation_failed"
	case errors.Is(err, domain.ErrScoringFailed):
		status, kind = http.StatusBadGateway, "scoring_failed"
	case errors.Is(err, domain.ErrReportFailed):
		status, kind = http.StatusBadGateway, "report_failed"
	case errors.Is(err, domain.ErrIncompleteSession):
		status, kind = http.StatusUnprocessableEntity, "incomplete_session"
	case errors.Is(err, domain.ErrInconsistentSession):
		status, kind = http.StatusInternalServerError, "inconsistent_session"
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error(op+" failed", "err", err)
	} else {
		s.logger.Warn(op+" rejected", "err", err, "kind", kind)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}
