package engine

import "fmt"

// DecisionKind identifies the variant of a Decision.
type DecisionKind string

const (
	// DecisionDeterministic means the statute resolved to a definite
	// boolean outcome.
	DecisionDeterministic DecisionKind = "deterministic"

	// DecisionRequiresDiscretion means all preconditions hold but the
	// effect is not self-executing; a human must decide.
	DecisionRequiresDiscretion DecisionKind = "requires_discretion"

	// DecisionError means evaluation could not resolve the statute
	// because a referenced fact is missing.
	DecisionError DecisionKind = "evaluation_error"
)

// Decision is the three-way result of evaluating one statute against one
// fact context. Consumers switch on Kind and must handle all three
// variants.
type Decision struct {
	Kind DecisionKind `json:"kind"`

	// Satisfied is meaningful only for DecisionDeterministic.
	Satisfied bool `json:"satisfied"`

	// DiscretionIssue is meaningful only for DecisionRequiresDiscretion;
	// it carries the statute's discretion text.
	DiscretionIssue string `json:"discretion_issue,omitempty"`

	// MissingAttribute is meaningful only for DecisionError; it names the
	// first attribute found absent from the fact context.
	MissingAttribute string `json:"missing_attribute,omitempty"`
}

// Deterministic creates a definite boolean decision.
func Deterministic(satisfied bool) Decision {
	return Decision{Kind: DecisionDeterministic, Satisfied: satisfied}
}

// RequiresDiscretion creates a decision deferring to human judgment.
func RequiresDiscretion(issue string) Decision {
	return Decision{Kind: DecisionRequiresDiscretion, DiscretionIssue: issue}
}

// EvaluationError creates a decision recording an unresolvable statute.
func EvaluationError(missingAttribute string) Decision {
	return Decision{Kind: DecisionError, MissingAttribute: missingAttribute}
}

// String returns a compact textual form used in logs and audit payloads.
// The encoding is stable: it depends only on the decision fields.
func (d Decision) String() string {
	switch d.Kind {
	case DecisionDeterministic:
		return fmt.Sprintf("deterministic:%t", d.Satisfied)
	case DecisionRequiresDiscretion:
		return "requires_discretion:" + d.DiscretionIssue
	case DecisionError:
		return "evaluation_error:missing=" + d.MissingAttribute
	default:
		return "unknown:" + string(d.Kind)
	}
}
