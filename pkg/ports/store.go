package ports

import (
	"context"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
)

// ListFilter narrows a List call. Zero value means "everything".
type ListFilter struct {
	// OwnerID restricts results to one candidate's sessions when set.
	OwnerID string
	// Status restricts results to one lifecycle phase when set.
	Status domain.Status
}

// SessionStore defines the interface for persisting interview sessions.
// This allows for durable execution, enabling "Stop & Resume" rehearsals.
type SessionStore interface {
	// Save persists the session. The stored revision must match the
	// session's current Revision; on mismatch Save fails with
	// domain.ErrConflict and writes nothing. On success the persisted
	// copy carries Revision+1.
	Save(ctx context.Context, session *domain.Session) error

	// Load retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// List returns sessions matching the filter, ordered by creation time.
	List(ctx context.Context, filter ListFilter) ([]*domain.Session, error)

	// Delete removes the session. Operator tooling only; the engine
	// exposes no public delete path.
	Delete(ctx context.Context, sessionID string) error
}
