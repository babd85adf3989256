package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
)

func questionBatch(texts ...string) []domain.Question {
	qs := make([]domain.Question, len(texts))
	for i, t := range texts {
		qs[i] = domain.Question{Number: i + 1, Text: t}
	}
	return qs
}

func TestNewSession_BanksAllButFirstQuestion(t *testing.T) {
	s := domain.NewSession("s1", "owner", "Senior Go Engineer", questionBatch("Q1", "Q2", "Q3"))

	assert.Equal(t, domain.StatusOngoing, s.Status)
	require.Len(t, s.Turns, 1)
	assert.Equal(t, 1, s.Turns[0].QuestionNumber)
	assert.Equal(t, "Q1", s.Turns[0].QuestionText)

	require.Len(t, s.QuestionBank, 2)
	assert.Equal(t, 2, s.QuestionBank[0].Number)
	assert.Equal(t, "Q2", s.QuestionBank[0].Text)
	assert.Equal(t, 3, s.QuestionBank[1].Number)
}

func TestNewSession_RenumbersUpstreamNumbering(t *testing.T) {
	// Upstream numbering is untrusted; sessions always count from 1.
	s := domain.NewSession("s1", "", "jd", []domain.Question{
		{Number: 7, Text: "A"},
		{Number: 3, Text: "B"},
	})

	assert.Equal(t, 1, s.Turns[0].QuestionNumber)
	assert.Equal(t, 2, s.QuestionBank[0].Number)
}

func TestPending(t *testing.T) {
	s := domain.NewSession("s1", "", "jd", questionBatch("Q1", "Q2"))

	pending := s.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, 1, pending.QuestionNumber)

	answer := "my answer"
	s.Turns[0].CandidateAnswer = &answer
	assert.Nil(t, s.Pending())
}

func TestNextBanked(t *testing.T) {
	s := domain.NewSession("s1", "", "jd", questionBatch("Q1", "Q2", "Q3"))

	q, ok := s.NextBanked()
	require.True(t, ok)
	assert.Equal(t, "Q2", q.Text)

	q, ok = s.NextBanked()
	require.True(t, ok)
	assert.Equal(t, "Q3", q.Text)

	_, ok = s.NextBanked()
	assert.False(t, ok)
}

func TestMeanScore(t *testing.T) {
	s := domain.NewSession("s1", "", "jd", questionBatch("Q1"))

	_, ok := s.MeanScore()
	assert.False(t, ok, "unscored turn should block the mean")

	answer := "a"
	s.Turns[0].CandidateAnswer = &answer
	score := 6.0
	s.Turns[0].Score = &score
	s.Turns = append(s.Turns, domain.Turn{QuestionNumber: 2, QuestionText: "Q2", CandidateAnswer: &answer})
	score2 := 8.0
	s.Turns[1].Score = &score2

	mean, ok := s.MeanScore()
	require.True(t, ok)
	assert.InDelta(t, 7.0, mean, 1e-9)
}

func TestMeanScore_EmptySession(t *testing.T) {
	s := &domain.Session{}
	_, ok := s.MeanScore()
	assert.False(t, ok)
}

func TestClone_IsDeep(t *testing.T) {
	s := domain.NewSession("s1", "owner", "jd", questionBatch("Q1", "Q2"))
	answer := "original"
	score := 5.0
	s.Turns[0].CandidateAnswer = &answer
	s.Turns[0].Score = &score

	cp := s.Clone()
	*cp.Turns[0].CandidateAnswer = "mutated"
	*cp.Turns[0].Score = 9.9
	cp.QuestionBank[0].Text = "mutated"

	assert.Equal(t, "original", *s.Turns[0].CandidateAnswer)
	assert.Equal(t, 5.0, *s.Turns[0].Score)
	assert.Equal(t, "Q2", s.QuestionBank[0].Text)
}

func answeredTurn(n int, score float64) domain.Turn {
	answer := "answer"
	feedback := "feedback"
	return domain.Turn{
		QuestionNumber:  n,
		QuestionText:    "question",
		CandidateAnswer: &answer,
		Score:           &score,
		Feedback:        &feedback,
	}
}

func TestValidate(t *testing.T) {
	now := time.Now().UTC()
	mean := 7.0
	report := "report"

	tests := []struct {
		name    string
		session *domain.Session
		wantErr bool
	}{
		{
			name: "valid ongoing with pending turn",
			session: &domain.Session{
				Status: domain.StatusOngoing,
				Turns:  []domain.Turn{answeredTurn(1, 7), {QuestionNumber: 2, QuestionText: "q"}},
			},
		},
		{
			name: "valid completed",
			session: &domain.Session{
				Status:       domain.StatusCompleted,
				Turns:        []domain.Turn{answeredTurn(1, 7)},
				CompletedAt:  &now,
				AverageScore: &mean,
				FinalReport:  &report,
			},
		},
		{
			name: "gap in numbering",
			session: &domain.Session{
				Status: domain.StatusOngoing,
				Turns:  []domain.Turn{answeredTurn(1, 7), answeredTurn(3, 7)},
			},
			wantErr: true,
		},
		{
			name: "two unanswered turns",
			session: &domain.Session{
				Status: domain.StatusOngoing,
				Turns:  []domain.Turn{{QuestionNumber: 1}, {QuestionNumber: 2}},
			},
			wantErr: true,
		},
		{
			name: "unanswered turn not last",
			session: &domain.Session{
				Status: domain.StatusOngoing,
				Turns:  []domain.Turn{{QuestionNumber: 1}, answeredTurn(2, 7)},
			},
			wantErr: true,
		},
		{
			name: "completed with unscored turn",
			session: &domain.Session{
				Status:       domain.StatusCompleted,
				Turns:        []domain.Turn{answeredTurn(1, 7), {QuestionNumber: 2, CandidateAnswer: strPtr("a")}},
				CompletedAt:  &now,
				AverageScore: &mean,
				FinalReport:  &report,
			},
			wantErr: true,
		},
		{
			name: "completed missing metadata",
			session: &domain.Session{
				Status: domain.StatusCompleted,
				Turns:  []domain.Turn{answeredTurn(1, 7)},
			},
			wantErr: true,
		},
		{
			name: "ongoing with completion metadata",
			session: &domain.Session{
				Status:      domain.StatusOngoing,
				Turns:       []domain.Turn{answeredTurn(1, 7)},
				FinalReport: &report,
			},
			wantErr: true,
		},
		{
			name:    "unknown status",
			session: &domain.Session{Status: "paused"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInconsistentSession)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
