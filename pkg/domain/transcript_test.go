package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
)

func TestBuildTranscript_OngoingWithPending(t *testing.T) {
	s := &domain.Session{
		Status: domain.StatusOngoing,
		Turns: []domain.Turn{
			answeredTurn(1, 7.5),
			{QuestionNumber: 2, QuestionText: "Tell me about a hard bug."},
		},
	}

	events := domain.BuildTranscript(s)
	require.Len(t, events, 4)

	assert.Equal(t, domain.EventQuestionShown, events[0].Type)
	assert.Equal(t, 1, events[0].QuestionNumber)
	assert.Equal(t, domain.EventAnswerRecorded, events[1].Type)
	assert.Equal(t, "answer", events[1].Text)
	assert.Equal(t, domain.EventScoreRecorded, events[2].Type)
	assert.Equal(t, 7.5, events[2].Score)
	assert.Equal(t, "feedback", events[2].Text)

	// Pending question appears shown but never answered.
	assert.Equal(t, domain.EventQuestionShown, events[3].Type)
	assert.Equal(t, 2, events[3].QuestionNumber)
}

func TestBuildTranscript_CompletedAppendsReport(t *testing.T) {
	now := time.Now().UTC()
	mean := 8.0
	report := "## Strengths\n\nClear communication."
	s := &domain.Session{
		Status:       domain.StatusCompleted,
		Turns:        []domain.Turn{answeredTurn(1, 8)},
		CompletedAt:  &now,
		AverageScore: &mean,
		FinalReport:  &report,
	}

	events := domain.BuildTranscript(s)
	require.Len(t, events, 4)

	last := events[len(events)-1]
	assert.Equal(t, domain.EventReportReady, last.Type)
	assert.Equal(t, report, last.Text)
	assert.Equal(t, 8.0, last.Score)
}

func TestBuildTranscript_DoesNotMutate(t *testing.T) {
	s := domain.NewSession("s1", "", "jd", questionBatch("Q1", "Q2"))
	before := s.Clone()

	domain.BuildTranscript(s)

	assert.Equal(t, before, s)
}
