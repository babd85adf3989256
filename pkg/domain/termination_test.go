package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Chinh13571113/careermate-web-sub001/pkg/domain"
)

func TestTerminate(t *testing.T) {
	tests := []struct {
		name     string
		saysLast bool
		answered int
		cap      int
		want     domain.Outcome
	}{
		{"mid-session", false, 3, 10, domain.OutcomeContinue},
		{"interviewer flags last question", true, 3, 10, domain.OutcomeFinalize},
		{"cap reached", false, 10, 10, domain.OutcomeFinalize},
		{"cap exceeded", false, 11, 10, domain.OutcomeFinalize},
		{"both signals", true, 10, 10, domain.OutcomeFinalize},
		{"one short of cap", false, 9, 10, domain.OutcomeContinue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.Terminate(tt.saysLast, tt.answered, tt.cap))
		})
	}
}
