/*
Package careermate is an interview rehearsal engine: a candidate
practices a fixed-length sequence of question/answer turns, each answer
scored automatically, with the ability to pause and resume a session
from any point.

The engine manages the session lifecycle, turn ordering, and
finalization, while adapters manage the I/O: question generation and
scoring (an OpenAI-compatible service), persistence (memory, file, or
Redis), and the outer surfaces (HTTP API, MCP tools, interactive CLI).
This Hexagonal Architecture allows the core to be embedded in any
interface.

# Key Guarantees

  - Exactly one pending question at a time; turns are appended in order and never reordered.
  - Every operation is atomic: a failed call leaves the session exactly as it was.
  - Resumption is idempotent: resuming any number of times converges to the same session.
  - Finalization happens exactly once, even under conflicting end-of-interview signals.

# Usage

	package main

	import (
		"context"
		"log"

		careermate "github.com/Chinh13571113/careermate-web-sub001"
		"github.com/Chinh13571113/careermate-web-sub001/pkg/adapters/openai"
	)

	func main() {
		client := openai.NewClient("sk-...")
		eng := careermate.New(client, client)

		ctx := context.Background()
		session, pending, err := eng.Start(ctx, "candidate-1", "Backend Engineer, Go, Postgres")
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Q%d: %s", pending.QuestionNumber, pending.QuestionText)

		// Main Loop: show question -> collect answer -> SubmitAnswer
		session, next, err := eng.SubmitAnswer(ctx, session.ID, pending.QuestionNumber, "I used connection pooling...")
		if err != nil {
			log.Fatal(err)
		}
		if next == nil {
			log.Printf("Done. Average score: %.1f", *session.AverageScore)
		}
	}
*/
package careermate
