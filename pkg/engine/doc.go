// Package engine evaluates statute preconditions against a fact context
// and produces a three-way decision.
//
// Evaluation is a pure, synchronous function of its inputs: for a fixed
// statute and fact context it always returns an identical Decision. There
// are no suspension points and no shared mutable state, so any number of
// evaluations may run in parallel.
//
// Missing facts fail closed. A condition that references an attribute
// absent from the fact context yields the error decision variant naming
// the missing attribute; it is never treated as false, because an absent
// fact is evidentiary uncertainty, not a negative fact.
//
// # Decision Outcomes
//
// Deterministic(true): all preconditions hold and the effect is
// self-executing
//
// Deterministic(false): at least one precondition resolved to false
//
// RequiresDiscretion: all preconditions hold but a human must decide
//
// Error: a referenced fact is missing; the statute cannot be resolved
package engine
