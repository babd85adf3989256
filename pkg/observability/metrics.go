package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
)

// Metrics holds the engine's Prometheus collectors.
type Metrics struct {
	sessionsStarted   prometheus.Counter
	answersScored     prometheus.Counter
	answerScores      prometheus.Histogram
	sessionsFinalized prometheus.Counter
	finalAverages     prometheus.Histogram
}

// NewMetrics creates and registers the collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careermate_sessions_started_total",
			Help: "Total number of interview sessions started",
		}),
		answersScored: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careermate_answers_scored_total",
			Help: "Total number of answers scored",
		}),
		answerScores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "careermate_answer_score",
			Help:    "Distribution of per-answer scores (0-10)",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
		sessionsFinalized: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "careermate_sessions_finalized_total",
			Help: "Total number of sessions finalized",
		}),
		finalAverages: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "careermate_session_average_score",
			Help:    "Distribution of final session average scores (0-10)",
			Buckets: prometheus.LinearBuckets(0, 1, 11),
		}),
	}
	reg.MustRegister(m.sessionsStarted, m.answersScored, m.answerScores, m.sessionsFinalized, m.finalAverages)
	return m
}

// Hooks returns lifecycle hooks feeding these collectors. Pass them to
// the engine via WithLifecycleHooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(ctx context.Context, e *domain.SessionEvent) {
			m.sessionsStarted.Inc()
		},
		OnAnswerScored: func(ctx context.Context, e *domain.AnswerEvent) {
			m.answersScored.Inc()
			m.answerScores.Observe(e.Score)
		},
		OnSessionFinalized: func(ctx context.Context, e *domain.FinalizeEvent) {
			m.sessionsFinalized.Inc()
			m.finalAverages.Observe(e.AverageScore)
		},
	}
}
