package domain

// TranscriptEventType categorizes entries in a replayed transcript.
type TranscriptEventType string

const (
	EventQuestionShown  TranscriptEventType = "question_shown"
	EventAnswerRecorded TranscriptEventType = "answer_recorded"
	EventScoreRecorded  TranscriptEventType = "score_recorded"
	EventReportReady    TranscriptEventType = "report_ready"
)

// TranscriptEvent is one display step of a session's history.
type TranscriptEvent struct {
	Type           TranscriptEventType `json:"type"`
	QuestionNumber int                 `json:"question_number,omitempty"`
	Text           string              `json:"text,omitempty"`
	Score          float64             `json:"score,omitempty"`
}

// BuildTranscript replays a session's turns into the ordered display
// sequence a caller uses to redraw the conversation. It is a pure
// transform: no I/O, no mutation of the session.
func BuildTranscript(s *Session) []TranscriptEvent {
	events := make([]TranscriptEvent, 0, len(s.Turns)*3+1)
	for i := range s.Turns {
		t := &s.Turns[i]
		events = append(events, TranscriptEvent{
			Type:           EventQuestionShown,
			QuestionNumber: t.QuestionNumber,
			Text:           t.QuestionText,
		})
		if t.Answered() {
			events = append(events, TranscriptEvent{
				Type:           EventAnswerRecorded,
				QuestionNumber: t.QuestionNumber,
				Text:           *t.CandidateAnswer,
			})
		}
		if t.Scored() {
			ev := TranscriptEvent{
				Type:           EventScoreRecorded,
				QuestionNumber: t.QuestionNumber,
				Score:          *t.Score,
			}
			if t.Feedback != nil {
				ev.Text = *t.Feedback
			}
			events = append(events, ev)
		}
	}
	if s.Completed() && s.FinalReport != nil {
		ev := TranscriptEvent{
			Type: EventReportReady,
			Text: *s.FinalReport,
		}
		if s.AverageScore != nil {
			ev.Score = *s.AverageScore
		}
		events = append(events, ev)
	}
	return events
}
