package ast

import "fmt"

// EffectKind categorizes the legal effect a statute applies when its
// preconditions are satisfied.
type EffectKind string

const (
	EffectGrant       EffectKind = "grant"       // Confers a right or benefit
	EffectObligation  EffectKind = "obligation"  // Imposes a duty
	EffectProhibition EffectKind = "prohibition" // Forbids conduct
	EffectPenalty     EffectKind = "penalty"     // Attaches liability or sanction
)

// Effect describes what a satisfied statute does.
type Effect struct {
	Kind        EffectKind
	Description string
}

// Statute is an identified, versioned legal rule. Preconditions are
// implicitly conjoined: all must hold, in declared order, for the effect
// to apply. A statute is immutable after Build; new versions replace old
// ones in the registry rather than mutating in place.
type Statute struct {
	// ID uniquely identifies the statute (e.g. "minpo-709").
	ID string

	// Title is the human-readable name of the rule.
	Title string

	// Jurisdiction names the legal system the statute belongs to.
	Jurisdiction string

	// Version is the statute revision, starting at 1.
	Version int

	// Preconditions are evaluated in declared order and implicitly
	// conjoined. Each precondition may itself encode OR/NOT logic.
	Preconditions []*ConditionNode

	// Effect is applied when all preconditions hold.
	Effect Effect

	// DiscretionLogic, when non-empty, marks the effect as not
	// self-executing: a human must decide even when all preconditions
	// hold. The text describes the issue left to discretion.
	DiscretionLogic string
}

// HasDiscretion reports whether the statute defers to human discretion.
func (s *Statute) HasDiscretion() bool {
	return s.DiscretionLogic != ""
}

// StatuteBuilder constructs a Statute through chained calls. Only Build
// produces a usable value; the builder itself is never passed to the
// engine or registry.
type StatuteBuilder struct {
	statute Statute
}

// NewStatuteBuilder creates a builder for the given statute id and title.
// Version defaults to 1.
func NewStatuteBuilder(id, title string) *StatuteBuilder {
	return &StatuteBuilder{
		statute: Statute{
			ID:      id,
			Title:   title,
			Version: 1,
		},
	}
}

// Jurisdiction sets the statute's jurisdiction.
func (b *StatuteBuilder) Jurisdiction(j string) *StatuteBuilder {
	b.statute.Jurisdiction = j
	return b
}

// Version sets the statute revision.
func (b *StatuteBuilder) Version(v int) *StatuteBuilder {
	b.statute.Version = v
	return b
}

// Precondition appends a precondition. Declared order is preserved and is
// significant for which error or discretion issue is surfaced first.
func (b *StatuteBuilder) Precondition(c *ConditionNode) *StatuteBuilder {
	b.statute.Preconditions = append(b.statute.Preconditions, c)
	return b
}

// Effect sets the statute's effect.
func (b *StatuteBuilder) Effect(kind EffectKind, description string) *StatuteBuilder {
	b.statute.Effect = Effect{Kind: kind, Description: description}
	return b
}

// DiscretionLogic marks the statute as requiring human discretion and
// records the issue text surfaced to the decision maker.
func (b *StatuteBuilder) DiscretionLogic(issue string) *StatuteBuilder {
	b.statute.DiscretionLogic = issue
	return b
}

// Build validates the statute and returns the immutable value. The
// returned statute owns a copy of the precondition slice so the builder
// cannot alias it afterwards.
func (b *StatuteBuilder) Build() (*Statute, error) {
	if b.statute.ID == "" {
		return nil, fmt.Errorf("statute id cannot be empty")
	}
	if b.statute.Version < 1 {
		return nil, fmt.Errorf("statute %q: version must be >= 1, got %d", b.statute.ID, b.statute.Version)
	}
	for i, pre := range b.statute.Preconditions {
		if pre == nil {
			return nil, fmt.Errorf("statute %q: precondition %d is nil", b.statute.ID, i)
		}
		if err := validateCondition(pre); err != nil {
			return nil, fmt.Errorf("statute %q: precondition %d: %w", b.statute.ID, i, err)
		}
	}

	s := b.statute
	s.Preconditions = make([]*ConditionNode, len(b.statute.Preconditions))
	copy(s.Preconditions, b.statute.Preconditions)
	return &s, nil
}

// validateCondition checks the structural invariants of a condition tree.
func validateCondition(c *ConditionNode) error {
	switch c.Kind {
	case ConditionCompare:
		if c.Attribute == "" {
			return fmt.Errorf("compare condition requires an attribute")
		}
		switch c.Operator {
		case OperatorEqual, OperatorNotEqual, OperatorLessThan,
			OperatorGreaterThan, OperatorLessEqual, OperatorGreaterEqual:
		default:
			return fmt.Errorf("unknown operator %q", c.Operator)
		}
		return nil

	case ConditionAttributeEq:
		if c.Attribute == "" {
			return fmt.Errorf("attribute equality condition requires an attribute")
		}
		return nil

	case ConditionRelationship:
		if c.RelationshipType == "" {
			return fmt.Errorf("relationship condition requires a relationship type")
		}
		return nil

	case ConditionAnd, ConditionOr:
		if c.Left == nil || c.Right == nil {
			return fmt.Errorf("%s condition requires two children", c.Kind)
		}
		if err := validateCondition(c.Left); err != nil {
			return err
		}
		return validateCondition(c.Right)

	case ConditionNot:
		if c.Left == nil {
			return fmt.Errorf("not condition requires a child")
		}
		return validateCondition(c.Left)

	default:
		return fmt.Errorf("unknown condition kind %q", c.Kind)
	}
}
