/*
Package engine implements the interview session orchestrator.

It exposes the five public operations of the rehearsal lifecycle (Start,
SubmitAnswer, Finalize, Resume, List) on top of pluggable ports for
storage, question generation/scoring, and reporting. Per-session mutual
exclusion guarantees at most one mutating call in flight; a concurrent
second call fails fast instead of queueing.
*/
package engine
