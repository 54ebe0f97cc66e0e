/*
Package domain contains the core domain models of the QSO phase engine.

It defines the vocabulary of the conversation state machine: phases, transitions,
match rules and the per-message step result. The package is kept pure and free of
I/O, following the same Hexagonal layout as the rest of the module.

# Key Entities

  - Phase: a named stage of the conversation protocol.
  - Transition: a declared, directed edge between two phases.
  - Rule: a (phase, pattern, transition) record consulted for every message.
  - StepResult: what happened to the engine when a single message was processed.
*/
package domain
