package observability_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
	"github.com/Chinh13571113/careermate-web-sub001/pkg/observability"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func histogramCount(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == name {
			require.Len(t, mf.GetMetric(), 1)
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

func TestHooksFeedCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	hooks := observability.NewMetrics(reg).Hooks()
	ctx := context.Background()

	hooks.OnSessionStart(ctx, &domain.SessionEvent{TurnCount: 5})
	hooks.OnAnswerScored(ctx, &domain.AnswerEvent{QuestionNumber: 1, Score: 7})
	hooks.OnAnswerScored(ctx, &domain.AnswerEvent{QuestionNumber: 2, Score: 9})
	hooks.OnSessionFinalized(ctx, &domain.FinalizeEvent{AverageScore: 8, TurnCount: 2})

	assert.Equal(t, 1.0, counterValue(t, reg, "careermate_sessions_started_total"))
	assert.Equal(t, 2.0, counterValue(t, reg, "careermate_answers_scored_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "careermate_sessions_finalized_total"))
	assert.Equal(t, uint64(2), histogramCount(t, reg, "careermate_answer_score"))
	assert.Equal(t, uint64(1), histogramCount(t, reg, "careermate_session_average_score"))
}

func TestAllHooksAreSet(t *testing.T) {
	hooks := observability.NewMetrics(prometheus.NewRegistry()).Hooks()

	require.NotNil(t, hooks.OnSessionStart)
	require.NotNil(t, hooks.OnAnswerScored)
	require.NotNil(t, hooks.OnSessionFinalized)
}
