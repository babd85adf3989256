/*
Package domain contains the core domain models and business logic for the
interview session engine.

It defines the fundamental entities of a rehearsal (Session, Turn), the
pure decision policies (termination, transcript replay), and the error
taxonomy every other layer maps onto. This package is kept pure and free
of external dependencies like I/O or persistence, following Hexagonal
Architecture principles.

# Key Entities

  - Session: The full record of one interview rehearsal (job description, ordered Turns, lifecycle status).
  - Turn: One question slot, with its optional answer, score, and feedback.
  - Evaluation: The interviewer's verdict on one submitted answer.
  - TranscriptEvent: A display step produced by replaying a session's history.
*/
package domain
