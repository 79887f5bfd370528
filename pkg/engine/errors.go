package engine

import "fmt"

// MissingFactError reports a condition referencing an attribute absent
// from the fact context. It propagates out of condition evaluation and is
// converted to the error decision variant at the statute level.
type MissingFactError struct {
	Attribute string
}

// Error implements the error interface.
func (e *MissingFactError) Error() string {
	return fmt.Sprintf("missing fact: attribute %q is not present in the fact context", e.Attribute)
}

// MalformedStatuteError reports a statute with zero preconditions and no
// discretion text. Such a statute is ambiguous: it cannot be distinguished
// from "always true" without guessing authorial intent, so it is surfaced
// as a configuration error instead of a decision.
type MalformedStatuteError struct {
	StatuteID string
}

// Error implements the error interface.
func (e *MalformedStatuteError) Error() string {
	return fmt.Sprintf("malformed statute %q: zero preconditions and no discretion logic", e.StatuteID)
}

// TypeMismatchError reports a comparison between incompatible value types,
// e.g. ordering a boolean. Ordered operators require integer facts.
type TypeMismatchError struct {
	Attribute string
	Operator  string
	Detail    string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch on attribute %q (operator %s): %s", e.Attribute, e.Operator, e.Detail)
}
