package source

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"tribunal-hq/minos/pkg/facts"
	"tribunal-hq/minos/pkg/statute/ast"
)

// statuteDocument is the top-level YAML schema for statute files.
type statuteDocument struct {
	Statutes []statuteSpec `yaml:"statutes"`
}

type statuteSpec struct {
	ID            string          `yaml:"id"`
	Title         string          `yaml:"title"`
	Jurisdiction  string          `yaml:"jurisdiction"`
	Version       int             `yaml:"version"`
	Effect        effectSpec      `yaml:"effect"`
	Discretion    string          `yaml:"discretion"`
	Preconditions []conditionSpec `yaml:"preconditions"`
}

type effectSpec struct {
	Kind        string `yaml:"kind"`
	Description string `yaml:"description"`
}

// conditionSpec is the YAML shape of a condition node. Exactly one form
// must be set: a leaf comparison (attribute/operator/value), a
// relationship check, or a composite (all/any/not).
type conditionSpec struct {
	Attribute    string            `yaml:"attribute"`
	Operator     string            `yaml:"operator"`
	Value        yaml.Node         `yaml:"value"`
	Relationship *relationshipSpec `yaml:"relationship"`
	All          []conditionSpec   `yaml:"all"`
	Any          []conditionSpec   `yaml:"any"`
	Not          *conditionSpec    `yaml:"not"`
}

type relationshipSpec struct {
	Type   string `yaml:"type"`
	Target string `yaml:"target"`
}

// ParseStatutes parses a YAML statute document into statute ASTs.
// Each statute is validated through the statute builder.
func ParseStatutes(data []byte) ([]*ast.Statute, error) {
	var doc statuteDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse statute YAML: %w", err)
	}

	statutes := make([]*ast.Statute, 0, len(doc.Statutes))
	for i, spec := range doc.Statutes {
		statute, err := buildStatute(spec)
		if err != nil {
			return nil, fmt.Errorf("statute %d (%q): %w", i, spec.ID, err)
		}
		statutes = append(statutes, statute)
	}

	return statutes, nil
}

func buildStatute(spec statuteSpec) (*ast.Statute, error) {
	effectKind, err := parseEffectKind(spec.Effect.Kind)
	if err != nil {
		return nil, err
	}

	b := ast.NewStatuteBuilder(spec.ID, spec.Title).
		Jurisdiction(spec.Jurisdiction).
		Version(spec.Version).
		Effect(effectKind, spec.Effect.Description)

	if spec.Discretion != "" {
		b = b.DiscretionLogic(spec.Discretion)
	}

	for i, cs := range spec.Preconditions {
		cond, err := buildCondition(cs)
		if err != nil {
			return nil, fmt.Errorf("precondition %d: %w", i, err)
		}
		b = b.Precondition(cond)
	}

	return b.Build()
}

func buildCondition(spec conditionSpec) (*ast.ConditionNode, error) {
	switch {
	case len(spec.All) > 0:
		return foldConditions(spec.All, ast.And)
	case len(spec.Any) > 0:
		return foldConditions(spec.Any, ast.Or)
	case spec.Not != nil:
		child, err := buildCondition(*spec.Not)
		if err != nil {
			return nil, err
		}
		return ast.Not(child), nil
	case spec.Relationship != nil:
		if spec.Relationship.Type == "" {
			return nil, fmt.Errorf("relationship condition requires a type")
		}
		return ast.Relationship(spec.Relationship.Type, spec.Relationship.Target), nil
	case spec.Attribute != "":
		return buildComparison(spec)
	default:
		return nil, fmt.Errorf("condition must set one of: attribute, relationship, all, any, not")
	}
}

// foldConditions combines a condition list into a left-leaning binary tree.
func foldConditions(specs []conditionSpec, combine func(left, right *ast.ConditionNode) *ast.ConditionNode) (*ast.ConditionNode, error) {
	node, err := buildCondition(specs[0])
	if err != nil {
		return nil, err
	}
	for _, cs := range specs[1:] {
		right, err := buildCondition(cs)
		if err != nil {
			return nil, err
		}
		node = combine(node, right)
	}
	return node, nil
}

func buildComparison(spec conditionSpec) (*ast.ConditionNode, error) {
	if spec.Value.IsZero() {
		return nil, fmt.Errorf("comparison on %q requires a value", spec.Attribute)
	}

	value, err := decodeValue(&spec.Value)
	if err != nil {
		return nil, fmt.Errorf("comparison on %q: %w", spec.Attribute, err)
	}

	// An omitted operator means equality.
	if spec.Operator == "" {
		return ast.AttributeEquals(spec.Attribute, value), nil
	}

	op, err := parseOperator(spec.Operator)
	if err != nil {
		return nil, fmt.Errorf("comparison on %q: %w", spec.Attribute, err)
	}
	return ast.Compare(spec.Attribute, op, value), nil
}

func decodeValue(node *yaml.Node) (facts.Value, error) {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return facts.Value{}, fmt.Errorf("failed to decode value: %w", err)
	}

	switch v := raw.(type) {
	case int:
		return facts.Int(int64(v)), nil
	case int64:
		return facts.Int(v), nil
	case bool:
		return facts.Bool(v), nil
	case string:
		return facts.String(v), nil
	default:
		return facts.Value{}, fmt.Errorf("unsupported value type %T (want int, bool, or string)", raw)
	}
}

func parseOperator(s string) (ast.Operator, error) {
	switch ast.Operator(s) {
	case ast.OperatorEqual, ast.OperatorNotEqual,
		ast.OperatorLessThan, ast.OperatorGreaterThan,
		ast.OperatorLessEqual, ast.OperatorGreaterEqual:
		return ast.Operator(s), nil
	default:
		return "", fmt.Errorf("unknown operator %q", s)
	}
}

func parseEffectKind(s string) (ast.EffectKind, error) {
	switch ast.EffectKind(s) {
	case ast.EffectGrant, ast.EffectObligation, ast.EffectProhibition, ast.EffectPenalty:
		return ast.EffectKind(s), nil
	default:
		return "", fmt.Errorf("unknown effect kind %q", s)
	}
}
