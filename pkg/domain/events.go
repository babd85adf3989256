package domain

import (
	"context"
	"time"
)

// EventBase contains common fields for all lifecycle events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
}

// SessionEvent marks the creation or completion of a session.
type SessionEvent struct {
	EventBase
	TurnCount int `json:"turn_count"`
}

// AnswerEvent marks one scored answer.
type AnswerEvent struct {
	EventBase
	QuestionNumber int     `json:"question_number"`
	Score          float64 `json:"score"`
}

// FinalizeEvent marks the one-time transition to completed.
type FinalizeEvent struct {
	EventBase
	AverageScore float64 `json:"average_score"`
	TurnCount    int     `json:"turn_count"`
}

// LifecycleHooks defines callbacks for engine observability. All fields
// are optional; nil hooks are skipped.
type LifecycleHooks struct {
	OnSessionStart     func(context.Context, *SessionEvent)
	OnAnswerScored     func(context.Context, *AnswerEvent)
	OnSessionFinalized func(context.Context, *FinalizeEvent)
}
