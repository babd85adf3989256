package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrConflict is returned by stores when a Save carries a stale revision
// (optimistic-concurrency failure). Callers should reload and retry.
var ErrConflict = errors.New("session revision conflict")

// Upstream collaborator failures. No partial state is committed when
// these occur, so the same call can always be retried verbatim.
var (
	ErrGenerationFailed = errors.New("question generation failed")
	ErrScoringFailed    = errors.New("answer scoring failed")
	ErrReportFailed     = errors.New("report generation failed")
)

// ErrInvalidArgument is returned for malformed caller input (empty job
// description, empty answer) before any collaborator is contacted.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrStaleSubmission is returned when an answer targets a turn that is
// no longer the pending one (double submit, or a resumed session that
// has moved on). The caller must fetch fresh state before retrying.
var ErrStaleSubmission = errors.New("stale submission")

// ErrSubmissionInProgress is returned when a second mutating call
// arrives for a session that already has one in flight. Callers retry
// after the first completes; they are never queued.
var ErrSubmissionInProgress = errors.New("submission already in progress")

// Invariant violations. These indicate corrupted state and are never
// silently repaired.
var (
	ErrIncompleteSession   = errors.New("session has unscored turns")
	ErrInconsistentSession = errors.New("inconsistent session state")
)
