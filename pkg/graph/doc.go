/*
Package graph holds the Phase Graph: the fixed vocabulary of phases and the legal
transitions between them.

A Graph is built once and never mutated. It answers whether a phase is the source of a
transition and applies transitions, rejecting any attempt to fire a transition from
the wrong phase.
*/
package graph
