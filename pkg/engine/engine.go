package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/Chinh13571113/careermate-web-sub001/internal/logging"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/lock"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/ports"
)

// Engine orchestrates the interview session lifecycle. It is the only
// component that mutates sessions; pure decisions are delegated to the
// domain policies and I/O to the injected ports.
type Engine struct {
	store       ports.SessionStore
	interviewer ports.Interviewer
	reporter    ports.Reporter
	locks       *lock.Registry
	logger      *slog.Logger
	hooks       domain.LifecycleHooks
	questionCap int
	now         func() time.Time
	newID       func() string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithQuestionCap overrides the per-session question limit
// (default domain.DefaultQuestionCap).
func WithQuestionCap(cap int) Option {
	return func(e *Engine) {
		if cap > 0 {
			e.questionCap = cap
		}
	}
}

// WithLockRegistry injects a custom lock registry, e.g. one backed by a
// distributed locker when multiple replicas share a store.
func WithLockRegistry(r *lock.Registry) Option {
	return func(e *Engine) {
		e.locks = r
	}
}

// WithClock overrides the time source. Tests use this to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(gen func() string) Option {
	return func(e *Engine) {
		e.newID = gen
	}
}

// New creates a session engine on top of the given store and services.
func New(store ports.SessionStore, interviewer ports.Interviewer, reporter ports.Reporter, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		interviewer: interviewer,
		reporter:    reporter,
		logger:      logging.NewNop(),
		questionCap: domain.DefaultQuestionCap,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.locks == nil {
		e.locks = lock.NewRegistry(lock.WithLogger(e.logger))
	}
	return e
}

// Start generates the opening question batch for a job description and
// persists a new ongoing session. Nothing is persisted on failure.
// It returns the session and its first (pending) turn.
func (e *Engine) Start(ctx context.Context, ownerID, jobDescription string) (*domain.Session, *domain.Turn, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, nil, fmt.Errorf("%w: job description is required", domain.ErrInvalidArgument)
	}

	questions, err := e.interviewer.GenerateQuestions(ctx, jobDescription)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrGenerationFailed, err)
	}
	if len(questions) == 0 {
		return nil, nil, fmt.Errorf("%w: interviewer returned no questions", domain.ErrGenerationFailed)
	}
	if len(questions) > e.questionCap {
		questions = questions[:e.questionCap]
	}

	session := domain.NewSession(e.newID(), ownerID, jobDescription, questions)
	session.CreatedAt = e.now()

	if err := e.store.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to persist new session: %w", err)
	}

	e.logger.Info("session started",
		"session_id", session.ID,
		"questions", len(questions),
	)
	if e.hooks.OnSessionStart != nil {
		e.hooks.OnSessionStart(ctx, &domain.SessionEvent{
			EventBase: domain.EventBase{Timestamp: e.now(), SessionID: session.ID},
			TurnCount: len(session.Turns) + len(session.QuestionBank),
		})
	}

	out := session.Clone()
	return out, out.Pending(), nil
}

// SubmitAnswer scores the pending turn and advances the session: either
// a new pending turn is appended, or the session is finalized when a
// termination signal fires. The next pending turn is nil when the
// session completed. Only one mutating call per session may be in
// flight; a concurrent second call fails with ErrSubmissionInProgress.
func (e *Engine) SubmitAnswer(ctx context.Context, sessionID string, questionNumber int, answer string) (*domain.Session, *domain.Turn, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, nil, fmt.Errorf("%w: answer is required", domain.ErrInvalidArgument)
	}

	var (
		result *domain.Session
		next   *domain.Turn
	)
	err := e.locks.TryWithLock(ctx, sessionID, func(ctx context.Context) error {
		session, err := e.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := session.Validate(); err != nil {
			return err
		}
		if session.Completed() {
			return fmt.Errorf("%w: session %s is already completed", domain.ErrStaleSubmission, sessionID)
		}

		pending := session.Pending()
		if pending == nil || pending.QuestionNumber != questionNumber {
			return fmt.Errorf("%w: question %d is not pending", domain.ErrStaleSubmission, questionNumber)
		}

		// Once dispatched, scoring runs to completion before the lock
		// is released; there is no mid-scoring cancellation.
		eval, err := e.interviewer.ScoreAnswer(ctx, sessionID, questionNumber, answer)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrScoringFailed, err)
		}

		score := clampScore(eval.Score)
		answerText := answer
		feedback := eval.Feedback
		pending.CandidateAnswer = &answerText
		pending.Score = &score
		pending.Feedback = &feedback

		outcome := domain.Terminate(eval.IsLastQuestion, session.AnsweredCount(), e.questionCap)
		if outcome == domain.OutcomeContinue {
			q, ok := e.nextQuestion(session, eval)
			if !ok {
				// The interviewer did not flag the last question but has
				// nothing left to ask. Finishing beats stranding the
				// session on a question that will never arrive.
				e.logger.Warn("no next question available, finalizing early", "session_id", sessionID)
				outcome = domain.OutcomeFinalize
			} else {
				session.Turns = append(session.Turns, domain.Turn{
					QuestionNumber: len(session.Turns) + 1,
					QuestionText:   q.Text,
				})
			}
		}

		if err := e.store.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to persist scored turn: %w", err)
		}
		e.logger.Info("answer scored",
			"session_id", sessionID,
			"question", questionNumber,
			"score", score,
		)
		if e.hooks.OnAnswerScored != nil {
			e.hooks.OnAnswerScored(ctx, &domain.AnswerEvent{
				EventBase:      domain.EventBase{Timestamp: e.now(), SessionID: sessionID},
				QuestionNumber: questionNumber,
				Score:          score,
			})
		}

		if outcome == domain.OutcomeFinalize {
			finalized, err := e.finalizeLocked(ctx, session)
			if err != nil {
				return err
			}
			result = finalized
			return nil
		}

		result = session.Clone()
		next = result.Pending()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return result, next, nil
}

// nextQuestion picks the question for the next turn: the evaluation's
// inline next question wins, then the pre-generated bank.
func (e *Engine) nextQuestion(session *domain.Session, eval *domain.Evaluation) (domain.Question, bool) {
	if eval.NextQuestion != nil && strings.TrimSpace(eval.NextQuestion.Text) != "" {
		// The banked question for this slot is superseded.
		session.NextBanked()
		return *eval.NextQuestion, true
	}
	return session.NextBanked()
}

// Finalize transitions a fully scored session to completed, attaching
// the report and the average score. It is idempotent: finalizing an
// already-completed session returns it unchanged.
func (e *Engine) Finalize(ctx context.Context, sessionID string) (*domain.Session, error) {
	var result *domain.Session
	err := e.locks.TryWithLock(ctx, sessionID, func(ctx context.Context) error {
		session, err := e.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if session.Completed() {
			result = session.Clone()
			return nil
		}
		result, err = e.finalizeLocked(ctx, session)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// finalizeLocked performs the completed transition. The caller holds the
// session lock and the session reflects the persisted state. On report
// failure the session stays ongoing with every turn scored, so Finalize
// can simply be retried.
func (e *Engine) finalizeLocked(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	mean, ok := session.MeanScore()
	if !ok {
		return nil, fmt.Errorf("%w: session %s", domain.ErrIncompleteSession, session.ID)
	}

	report, err := e.reporter.GenerateReport(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReportFailed, err)
	}

	completedAt := e.now()
	session.Status = domain.StatusCompleted
	session.CompletedAt = &completedAt
	session.AverageScore = &mean
	session.FinalReport = &report
	session.QuestionBank = nil

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist completed session: %w", err)
	}

	e.logger.Info("session finalized",
		"session_id", session.ID,
		"average_score", mean,
		"turns", len(session.Turns),
	)
	if e.hooks.OnSessionFinalized != nil {
		e.hooks.OnSessionFinalized(ctx, &domain.FinalizeEvent{
			EventBase:    domain.EventBase{Timestamp: completedAt, SessionID: session.ID},
			AverageScore: mean,
			TurnCount:    len(session.Turns),
		})
	}
	return session.Clone(), nil
}

// List returns stored sessions matching the filter.
func (e *Engine) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Session, error) {
	return e.store.List(ctx, filter)
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
