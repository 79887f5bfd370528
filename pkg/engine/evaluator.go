package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"tribunal-hq/minos/pkg/facts"
	"tribunal-hq/minos/pkg/statute/ast"
)

// Evaluator resolves statute preconditions against fact contexts. It holds
// no mutable state; a single Evaluator may be shared across goroutines.
type Evaluator struct {
	logger *slog.Logger
}

// NewEvaluator creates an evaluator. A nil logger falls back to
// slog.Default.
func NewEvaluator(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		logger: logger.With("component", "engine.evaluator"),
	}
}

// Evaluate resolves a statute's preconditions against a fact context.
//
// Preconditions are visited in declared order. The first missing fact
// fails closed with the error decision variant; the first false
// precondition resolves the statute to Deterministic(false). When all
// preconditions hold, the statute's discretion logic decides between
// RequiresDiscretion and Deterministic(true).
//
// The returned error is reserved for configuration problems (malformed
// statute, type mismatch in a comparison); evidentiary gaps are part of
// the Decision, not Go errors.
func (e *Evaluator) Evaluate(statute *ast.Statute, fc *facts.Context) (Decision, error) {
	if len(statute.Preconditions) == 0 && !statute.HasDiscretion() {
		return Decision{}, &MalformedStatuteError{StatuteID: statute.ID}
	}

	for i, pre := range statute.Preconditions {
		holds, err := e.evalCondition(pre, fc)
		if err != nil {
			var missing *MissingFactError
			if errors.As(err, &missing) {
				e.logger.Debug("evaluation failed closed on missing fact",
					"statute_id", statute.ID,
					"precondition", i,
					"attribute", missing.Attribute,
				)
				return EvaluationError(missing.Attribute), nil
			}
			return Decision{}, fmt.Errorf("statute %q: precondition %d: %w", statute.ID, i, err)
		}
		if !holds {
			e.logger.Debug("precondition not satisfied",
				"statute_id", statute.ID,
				"precondition", i,
			)
			return Deterministic(false), nil
		}
	}

	if statute.HasDiscretion() {
		return RequiresDiscretion(statute.DiscretionLogic), nil
	}
	return Deterministic(true), nil
}

// evalCondition recursively resolves one condition node. Logical nodes
// short-circuit: And stops on the first false or error, Or stops on the
// first true or error. Errors always propagate unchanged, including
// through Not.
func (e *Evaluator) evalCondition(c *ast.ConditionNode, fc *facts.Context) (bool, error) {
	switch c.Kind {
	case ast.ConditionCompare:
		actual, ok := fc.Attribute(c.Attribute)
		if !ok {
			return false, &MissingFactError{Attribute: c.Attribute}
		}
		return compareValues(c.Attribute, c.Operator, actual, c.Value)

	case ast.ConditionAttributeEq:
		actual, ok := fc.Attribute(c.Attribute)
		if !ok {
			return false, &MissingFactError{Attribute: c.Attribute}
		}
		return actual.Equal(c.Value), nil

	case ast.ConditionRelationship:
		return fc.HasRelationship(c.RelationshipType, c.TargetEntityID), nil

	case ast.ConditionAnd:
		left, err := e.evalCondition(c.Left, fc)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return e.evalCondition(c.Right, fc)

	case ast.ConditionOr:
		left, err := e.evalCondition(c.Left, fc)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return e.evalCondition(c.Right, fc)

	case ast.ConditionNot:
		holds, err := e.evalCondition(c.Left, fc)
		if err != nil {
			return false, err
		}
		return !holds, nil

	default:
		return false, fmt.Errorf("unknown condition kind %q", c.Kind)
	}
}

// compareValues applies a comparison operator to an actual fact value and
// an expected statute value.
//
// Equality and inequality work for any matching kinds. Ordered operators
// compare integers numerically and strings lexicographically; booleans
// have no order.
func compareValues(attribute string, op ast.Operator, actual, expected facts.Value) (bool, error) {
	switch op {
	case ast.OperatorEqual:
		return actual.Equal(expected), nil
	case ast.OperatorNotEqual:
		return !actual.Equal(expected), nil
	}

	// Ordered comparison from here on.
	if actual.Kind() != expected.Kind() {
		return false, &TypeMismatchError{
			Attribute: attribute,
			Operator:  string(op),
			Detail:    fmt.Sprintf("fact is %s, statute expects %s", actual.Kind(), expected.Kind()),
		}
	}

	var cmp int
	switch actual.Kind() {
	case facts.KindInt:
		a, _ := actual.IntValue()
		b, _ := expected.IntValue()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case facts.KindString:
		a, _ := actual.StringValue()
		b, _ := expected.StringValue()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case facts.KindBool:
		return false, &TypeMismatchError{
			Attribute: attribute,
			Operator:  string(op),
			Detail:    "boolean facts have no ordering",
		}
	}

	switch op {
	case ast.OperatorLessThan:
		return cmp < 0, nil
	case ast.OperatorGreaterThan:
		return cmp > 0, nil
	case ast.OperatorLessEqual:
		return cmp <= 0, nil
	case ast.OperatorGreaterEqual:
		return cmp >= 0, nil
	default:
		return false, fmt.Errorf("unknown operator %q", op)
	}
}
