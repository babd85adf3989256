package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/http"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/engine"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

// stubEngine lets each test pin the behavior of one operation.
type stubEngine struct {
	startFn    func(ctx context.Context, ownerID, jobDescription string) (*domain.Session, *domain.Turn, error)
	submitFn   func(ctx context.Context, sessionID string, questionNumber int, answer string) (*domain.Session, *domain.Turn, error)
	finalizeFn func(ctx context.Context, sessionID string) (*domain.Session, error)
	resumeFn   func(ctx context.Context, sessionID string) (*domain.Session, *engine.Plan, error)
	listFn     func(ctx context.Context, filter ports.ListFilter) ([]*domain.Session, error)
}

func (s *stubEngine) Start(ctx context.Context, ownerID, jobDescription string) (*domain.Session, *domain.Turn, error) {
	return s.startFn(ctx, ownerID, jobDescription)
}

func (s *stubEngine) SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, answer string) (*domain.Session, *domain.Turn, error) {
	return s.submitFn(ctx, sessionID, questionNumber, answer)
}

func (s *stubEngine) Finalize(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.finalizeFn(ctx, sessionID)
}

func (s *stubEngine) Resume(ctx context.Context, sessionID string) (*domain.Session, *engine.Plan, error) {
	return s.resumeFn(ctx, sessionID)
}

func (s *stubEngine) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Session, error) {
	return s.listFn(ctx, filter)
}

func sampleSession() *domain.Session {
	return domain.NewSession("sess-1", "alice", "jd", []domain.Question{
		{Number: 1, Text: "Q1"},
		{Number: 2, Text: "Q2"},
	})
}

func TestStartSession(t *testing.T) {
	session := sampleSession()
	eng := &stubEngine{
		startFn: func(ctx context.Context, ownerID, jobDescription string) (*domain.Session, *domain.Turn, error) {
			assert.Equal(t, "alice", ownerID)
			assert.Equal(t, "Senior Go Engineer", jobDescription)
			return session, session.Pending(), nil
		},
	}
	handler := httpadapter.NewHandler(eng)

	body := bytes.NewBufferString(`{"owner_id":"alice","job_description":"Senior Go Engineer"}`)
	req := httptest.NewRequest("POST", "/sessions", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Session *domain.Session `json:"session"`
		Pending *domain.Turn    `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.Session.ID)
	require.NotNil(t, resp.Pending)
	assert.Equal(t, 1, resp.Pending.QuestionNumber)
}

func TestStartSession_MalformedBody(t *testing.T) {
	handler := httpadapter.NewHandler(&stubEngine{})

	req := httptest.NewRequest("POST", "/sessions", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitAnswer(t *testing.T) {
	session := sampleSession()
	eng := &stubEngine{
		submitFn: func(ctx context.Context, sessionID string, questionNumber int, answer string) (*domain.Session, *domain.Turn, error) {
			assert.Equal(t, "sess-1", sessionID)
			assert.Equal(t, 1, questionNumber)
			assert.Equal(t, "my answer", answer)
			return session, nil, nil
		},
	}
	handler := httpadapter.NewHandler(eng)

	body := bytes.NewBufferString(`{"question_number":1,"answer":"my answer"}`)
	req := httptest.NewRequest("POST", "/sessions/sess-1/answers", body)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResumeSession(t *testing.T) {
	session := sampleSession()
	eng := &stubEngine{
		resumeFn: func(ctx context.Context, sessionID string) (*domain.Session, *engine.Plan, error) {
			return session, &engine.Plan{
				Type:       engine.PlanShowPending,
				Pending:    session.Pending(),
				Transcript: domain.BuildTranscript(session),
			}, nil
		},
	}
	handler := httpadapter.NewHandler(eng)

	req := httptest.NewRequest("GET", "/sessions/sess-1", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Plan *engine.Plan `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, engine.PlanShowPending, resp.Plan.Type)
	assert.NotEmpty(t, resp.Plan.Transcript)
}

func TestFinalizeSession(t *testing.T) {
	eng := &stubEngine{
		finalizeFn: func(ctx context.Context, sessionID string) (*domain.Session, error) {
			s := sampleSession()
			s.Status = domain.StatusCompleted
			return s, nil
		},
	}
	handler := httpadapter.NewHandler(eng)

	req := httptest.NewRequest("POST", "/sessions/sess-1/finalize", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListSessions_PassesFilter(t *testing.T) {
	eng := &stubEngine{
		listFn: func(ctx context.Context, filter ports.ListFilter) ([]*domain.Session, error) {
			assert.Equal(t, "alice", filter.OwnerID)
			assert.Equal(t, domain.StatusOngoing, filter.Status)
			return []*domain.Session{sampleSession()}, nil
		},
	}
	handler := httpadapter.NewHandler(eng)

	req := httptest.NewRequest("GET", "/sessions?owner_id=alice&status=ongoing", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var sessions []*domain.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	assert.Len(t, sessions, 1)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantKind   string
	}{
		{domain.ErrSessionNotFound, http.StatusNotFound, "not_found"},
		{domain.ErrInvalidArgument, http.StatusBadRequest, "invalid_argument"},
		{domain.ErrStaleSubmission, http.StatusConflict, "stale_submission"},
		{domain.ErrSubmissionInProgress, http.StatusConflict, "submission_in_progress"},
		{domain.ErrConflict, http.StatusConflict, "revision_conflict"},
		{domain.ErrGenerationFailed, http.StatusBadGateway, "generation_failed"},
		{domain.ErrScoringFailed, http.StatusBadGateway, "scoring_failed"},
		{domain.ErrReportFailed, http.StatusBadGateway, "report_failed"},
		{domain.ErrIncompleteSession, http.StatusUnprocessableEntity, "incomplete_session"},
		{domain.ErrInconsistentSession, http.StatusInternalServerError, "inconsistent_session"},
	}

	for _, tt := range tests {
		t.Run(tt.wantKind, func(t *testing.T) {
			eng := &stubEngine{
				submitFn: func(ctx context.Context, sessionID string, questionNumber int, answer string) (*domain.Session, *domain.Turn, error) {
					return nil, nil, fmt.Errorf("wrapped: %w", tt.err)
				},
			}
			handler := httpadapter.NewHandler(eng)

			body := bytes.NewBufferString(`{"question_number":1,"answer":"x"}`)
			req := httptest.NewRequest("POST", "/sessions/sess-1/answers", body)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp struct {
				Kind string `json:"kind"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantKind, resp.Kind)
		})
	}
}

func TestHealth(t *testing.T) {
	handler := httpadapter.NewHandler(&stubEngine{})

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	handler := httpadapter.NewHandler(&stubEngine{})

	req := httptest.NewRequest("OPTIONS", "/sessions", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenAPIDocumentIsValid(t *testing.T) {
	handler := httpadapter.NewHandler(&stubEngine{})

	req := httptest.NewRequest("GET", "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rec.Body.Bytes())
	require.NoError(t, err)
	require.NoError(t, doc.Validate(loader.Context))

	// Every route the router serves is documented.
	for _, path := range []string{"/sessions", "/sessions/{sessionID}", "/sessions/{sessionID}/answers", "/sessions/{sessionID}/finalize"} {
		assert.NotNil(t, doc.Paths.Find(path), "path %s missing from the document", path)
	}
}
