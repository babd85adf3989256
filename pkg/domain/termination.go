package domain

// Outcome is the decision taken after a turn is scored.
type Outcome int

const (
	// OutcomeContinue means the session should show the next question.
	OutcomeContinue Outcome = iota
	// OutcomeFinalize means the session must transition to completed.
	OutcomeFinalize
)

// Terminate decides whether a session is finished, from the
// interviewer's own last-question flag and the locally counted answers
// against the question cap. The two signals come from different layers
// and may disagree; either one alone is enough to finalize. Failing
// toward finishing is deliberate: a stuck session is worse than a
// premature finalize.
func Terminate(serviceSaysLast bool, answered, cap int) Outcome {
	if serviceSaysLast || answered >= cap {
		return OutcomeFinalize
	}
	return OutcomeContinue
}
