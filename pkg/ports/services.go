package ports

import (
	"context"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
)

// Interviewer produces interview questions and scores answers.
// Implementations wrap an LLM or any other question source; the engine
// only depends on this contract.
type Interviewer interface {
	// GenerateQuestions returns the ordered opening batch for a job
	// description. An empty batch is treated as a failure by the engine.
	GenerateQuestions(ctx context.Context, jobDescription string) ([]domain.Question, error)

	// ScoreAnswer evaluates one answer in the context of its session.
	// The evaluation may carry the next question and/or the
	// last-question flag.
	ScoreAnswer(ctx context.Context, sessionID string, questionNumber int, answer string) (*domain.Evaluation, error)
}

// Reporter produces the closing summary for a fully scored session.
type Reporter interface {
	GenerateReport(ctx context.Context, session *domain.Session) (string, error)
}
