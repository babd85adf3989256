package domain

import (
	"fmt"
	"time"
)

// Status defines the lifecycle phase of an interview session.
type Status string

const (
	// StatusOngoing means the session still accepts answers.
	StatusOngoing Status = "ongoing"
	// StatusCompleted is the sink state. Completed sessions are read-only.
	StatusCompleted Status = "completed"
)

// DefaultQuestionCap is the number of questions a session holds unless
// the engine is configured otherwise.
const DefaultQuestionCap = 10

// Question is a single generated interview question, before it is
// attached to a session as a Turn.
type Question struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Evaluation is the Interviewer's verdict on one submitted answer.
type Evaluation struct {
	Score          float64   `json:"score"` // 0..10
	Feedback       string    `json:"feedback"`
	IsLastQuestion bool      `json:"is_last_question"`
	NextQuestion   *Question `json:"next_question,omitempty"`
}

// Turn is one question slot in a session. Answer, score and feedback are
// attached in place as the candidate progresses; a turn is never removed
// or reordered once appended.
type Turn struct {
	QuestionNumber  int      `json:"question_number"`
	QuestionText    string   `json:"question_text"`
	CandidateAnswer *string  `json:"candidate_answer,omitempty"`
	Score           *float64 `json:"score,omitempty"`
	Feedback        *string  `json:"feedback,omitempty"`
}

// Answered reports whether the candidate has answered this turn.
func (t *Turn) Answered() bool {
	return t.CandidateAnswer != nil
}

// Scored reports whether the turn carries an evaluation.
func (t *Turn) Scored() bool {
	return t.Score != nil
}

// Session is the full record of one interview rehearsal: the job
// description it was generated for, the ordered turns, and the
// lifecycle status.
type Session struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"owner_id,omitempty"`
	JobDescription string     `json:"job_description"`
	Status         Status     `json:"status"`
	Turns          []Turn     `json:"turns"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	AverageScore   *float64   `json:"average_score,omitempty"`
	FinalReport    *string    `json:"final_report,omitempty"`

	// QuestionBank holds pre-generated questions that have not been
	// shown yet. A question leaves the bank when it becomes a Turn, so
	// the turn list always holds exactly one pending question at most.
	QuestionBank []Question `json:"question_bank,omitempty"`

	// Revision is bumped on every persisted write. Stores use it for
	// optimistic concurrency: Save with a stale revision fails with
	// ErrConflict.
	Revision int64 `json:"revision"`
}

// NewSession creates an ongoing session seeded with the generated
// question batch. The first question becomes the pending turn; the rest
// wait in the bank until the candidate reaches them. Questions are
// renumbered sequentially so turn numbering never depends on upstream
// numbering bugs.
func NewSession(id, ownerID, jobDescription string, questions []Question) *Session {
	s := &Session{
		ID:             id,
		OwnerID:        ownerID,
		JobDescription: jobDescription,
		Status:         StatusOngoing,
		CreatedAt:      time.Now().UTC(),
	}
	if len(questions) > 0 {
		s.Turns = []Turn{{
			QuestionNumber: 1,
			QuestionText:   questions[0].Text,
		}}
		for i, q := range questions[1:] {
			s.QuestionBank = append(s.QuestionBank, Question{
				Number: i + 2,
				Text:   q.Text,
			})
		}
	}
	return s
}

// Completed reports whether the session reached its sink state.
func (s *Session) Completed() bool {
	return s.Status == StatusCompleted
}

// Pending returns the unique unanswered turn, or nil if every turn has
// an answer. It does not verify invariants; see Validate.
func (s *Session) Pending() *Turn {
	if len(s.Turns) == 0 {
		return nil
	}
	last := &s.Turns[len(s.Turns)-1]
	if !last.Answered() {
		return last
	}
	return nil
}

// AnsweredCount returns how many turns carry an answer.
func (s *Session) AnsweredCount() int {
	n := 0
	for i := range s.Turns {
		if s.Turns[i].Answered() {
			n++
		}
	}
	return n
}

// MeanScore computes the arithmetic mean of all turn scores.
// It returns false if any turn is unscored.
func (s *Session) MeanScore() (float64, bool) {
	if len(s.Turns) == 0 {
		return 0, false
	}
	sum := 0.0
	for i := range s.Turns {
		if !s.Turns[i].Scored() {
			return 0, false
		}
		sum += *s.Turns[i].Score
	}
	return sum / float64(len(s.Turns)), true
}

// Clone returns a deep copy. Stores and the engine hand out clones so
// callers can never mutate persisted state through a shared pointer.
func (s *Session) Clone() *Session {
	cp := *s
	cp.Turns = make([]Turn, len(s.Turns))
	for i, t := range s.Turns {
		ct := t
		if t.CandidateAnswer != nil {
			v := *t.CandidateAnswer
			ct.CandidateAnswer = &v
		}
		if t.Score != nil {
			v := *t.Score
			ct.Score = &v
		}
		if t.Feedback != nil {
			v := *t.Feedback
			ct.Feedback = &v
		}
		cp.Turns[i] = ct
	}
	if s.CompletedAt != nil {
		v := *s.CompletedAt
		cp.CompletedAt = &v
	}
	if s.AverageScore != nil {
		v := *s.AverageScore
		cp.AverageScore = &v
	}
	if s.FinalReport != nil {
		v := *s.FinalReport
		cp.FinalReport = &v
	}
	if s.QuestionBank != nil {
		cp.QuestionBank = make([]Question, len(s.QuestionBank))
		copy(cp.QuestionBank, s.QuestionBank)
	}
	return &cp
}

// NextBanked pops the next pre-generated question off the bank.
// It returns false when the bank is empty.
func (s *Session) NextBanked() (Question, bool) {
	if len(s.QuestionBank) == 0 {
		return Question{}, false
	}
	q := s.QuestionBank[0]
	s.QuestionBank = s.QuestionBank[1:]
	return q, true
}

// Validate checks the session invariants:
//
//  1. Turns are sorted by question number with no gaps from 1.
//  2. At most one turn is unanswered, and if one exists it is the last.
//  3. A completed session has every turn scored, plus completion
//     metadata (completed_at, average_score, final_report).
//  4. An ongoing session carries no completion metadata.
//
// Violations are reported wrapped in ErrInconsistentSession so callers
// can branch on the taxonomy without parsing messages.
func (s *Session) Validate() error {
	unanswered := -1
	for i := range s.Turns {
		if s.Turns[i].QuestionNumber != i+1 {
			return fmt.Errorf("%w: turn at index %d has question number %d", ErrInconsistentSession, i, s.Turns[i].QuestionNumber)
		}
		if s.Turns[i].Scored() && !s.Turns[i].Answered() {
			return fmt.Errorf("%w: turn %d is scored without an answer", ErrInconsistentSession, i+1)
		}
		if !s.Turns[i].Answered() {
			if unanswered != -1 {
				return fmt.Errorf("%w: turns %d and %d are both unanswered", ErrInconsistentSession, unanswered+1, i+1)
			}
			unanswered = i
		}
	}
	if unanswered != -1 && unanswered != len(s.Turns)-1 {
		return fmt.Errorf("%w: unanswered turn %d is not the last turn", ErrInconsistentSession, unanswered+1)
	}

	switch s.Status {
	case StatusCompleted:
		for i := range s.Turns {
			if !s.Turns[i].Scored() {
				return fmt.Errorf("%w: completed session has unscored turn %d", ErrInconsistentSession, i+1)
			}
		}
		if s.CompletedAt == nil || s.AverageScore == nil || s.FinalReport == nil {
			return fmt.Errorf("%w: completed session is missing completion metadata", ErrInconsistentSession)
		}
	case StatusOngoing:
		if s.CompletedAt != nil || s.AverageScore != nil || s.FinalReport != nil {
			return fmt.Errorf("%w: ongoing session carries completion metadata", ErrInconsistentSession)
		}
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInconsistentSession, s.Status)
	}
	return nil
}
