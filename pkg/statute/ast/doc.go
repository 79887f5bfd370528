// Package ast provides the statute model: condition trees, effects, and
// the statute container evaluated by the engine.
//
// Condition trees are closed tagged unions. Every consumer switches on
// ConditionKind and must handle all six kinds; adding a kind breaks every
// switch at compile review time, which is intentional.
//
// Statutes are immutable after construction. The only way to obtain a
// Statute is through StatuteBuilder.Build, which validates the value; no
// half-constructed statute is ever usable.
//
// # Core Types
//
// ConditionNode: condition expression (compare, attribute equality,
// relationship, and, or, not)
//
// Operator: comparison operator for Compare conditions
//
// Effect: the legal effect applied when a statute is satisfied
//
// Statute: identified, versioned rule with ordered preconditions
//
// StatuteBuilder: fluent construction of an immutable Statute
package ast
