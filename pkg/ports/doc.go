/*
Package ports defines the driven ports (interfaces) for the interview
session engine.

These interfaces decouple the core logic from external implementations,
allowing the engine to work with various storage backends, question
sources, and lock providers.

# Key Interfaces

  - SessionStore: Responsible for persisting and loading Sessions, with optimistic revision checks.
  - Interviewer: Generates the question batch and scores submitted answers.
  - Reporter: Produces the closing summary for a finished session.
  - SessionLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
