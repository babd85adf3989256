package engine

import (
	"context"
	"fmt"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
)

// PlanType names the next action after resuming a stored session.
type PlanType string

const (
	// PlanShowPending means the caller should redisplay history and ask
	// the stored pending question. No fetch is needed; the question text
	// is already persisted.
	PlanShowPending PlanType = "show_pending"
	// PlanFinalizeNow means every turn was already scored but the
	// session was never finalized (e.g. a crash between the last score
	// and the completed transition). Resume performs the finalize before
	// returning.
	PlanFinalizeNow PlanType = "finalize_now"
	// PlanShowSummary means the session is completed; the caller shows
	// the stored report and average score.
	PlanShowSummary PlanType = "show_summary"
)

// Plan is the resumption verdict: what to do next, plus the replayed
// transcript for redisplaying the conversation.
type Plan struct {
	Type       PlanType                 `json:"type"`
	Pending    *domain.Turn             `json:"pending,omitempty"`
	Transcript []domain.TranscriptEvent `json:"transcript"`
}

// Resume reconstructs the correct next step for a session that may have
// been left mid-flight. It never re-derives a committed turn: resuming
// any number of times converges to the same session. The only mutation
// it can perform is the FinalizeNow transition, which is itself
// idempotent.
func (e *Engine) Resume(ctx context.Context, sessionID string) (*domain.Session, *Plan, error) {
	session, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	// Corrupted turn ordering is surfaced, never repaired by guessing
	// which turn is authoritative.
	if err := session.Validate(); err != nil {
		return nil, nil, err
	}

	if session.Completed() {
		return session, &Plan{
			Type:       PlanShowSummary,
			Transcript: domain.BuildTranscript(session),
		}, nil
	}

	if pending := session.Pending(); pending != nil {
		return session, &Plan{
			Type:       PlanShowPending,
			Pending:    pending,
			Transcript: domain.BuildTranscript(session),
		}, nil
	}

	// All turns answered, status still ongoing: finish the job so the
	// session is never left in limbo.
	finalized, err := e.Finalize(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("resume finalization: %w", err)
	}
	return finalized, &Plan{
		Type:       PlanFinalizeNow,
		Transcript: domain.BuildTranscript(finalized),
	}, nil
}
