package ast

import "tribunal-hq/minos/pkg/facts"

// ConditionKind identifies the variant of a ConditionNode.
type ConditionKind string

const (
	ConditionCompare      ConditionKind = "compare"      // attribute op value
	ConditionAttributeEq  ConditionKind = "attribute_eq" // attribute equals value
	ConditionRelationship ConditionKind = "relationship" // subject has relationship
	ConditionAnd          ConditionKind = "and"          // both children hold
	ConditionOr           ConditionKind = "or"           // either child holds
	ConditionNot          ConditionKind = "not"          // child does not hold
)

// Operator is a comparison operator for Compare conditions.
type Operator string

const (
	OperatorEqual        Operator = "=="
	OperatorNotEqual     Operator = "!="
	OperatorLessThan     Operator = "<"
	OperatorGreaterThan  Operator = ">"
	OperatorLessEqual    Operator = "<="
	OperatorGreaterEqual Operator = ">="
)

// ConditionNode is a node in a recursive boolean condition tree. Nodes own
// their children, so trees are finite and acyclic by construction.
//
// Which fields are meaningful depends on Kind:
//
//   - ConditionCompare: Attribute, Operator, Value
//   - ConditionAttributeEq: Attribute, Value
//   - ConditionRelationship: RelationshipType, TargetEntityID (optional)
//   - ConditionAnd, ConditionOr: Left, Right
//   - ConditionNot: Left
type ConditionNode struct {
	Kind ConditionKind

	// Attribute is the fact attribute referenced by Compare and
	// AttributeEq conditions.
	Attribute string

	// Operator is the comparison operator for Compare conditions.
	Operator Operator

	// Value is the expected value for Compare and AttributeEq conditions.
	Value facts.Value

	// RelationshipType is the relationship checked by Relationship
	// conditions.
	RelationshipType string

	// TargetEntityID optionally restricts a Relationship condition to a
	// specific target entity. Empty means any target.
	TargetEntityID string

	// Left and Right are the children of And/Or nodes. Not uses only Left.
	Left  *ConditionNode
	Right *ConditionNode
}

// Compare creates a comparison condition: attribute op value.
func Compare(attribute string, op Operator, value facts.Value) *ConditionNode {
	return &ConditionNode{
		Kind:      ConditionCompare,
		Attribute: attribute,
		Operator:  op,
		Value:     value,
	}
}

// AttributeEquals creates an attribute equality condition. It is the
// equality check for custom key/value facts, distinct from Compare with
// OperatorEqual in that it never orders values, only compares identity.
func AttributeEquals(attribute string, value facts.Value) *ConditionNode {
	return &ConditionNode{
		Kind:      ConditionAttributeEq,
		Attribute: attribute,
		Value:     value,
	}
}

// Relationship creates a relationship condition. An empty target matches
// a relationship of the given type to any entity.
func Relationship(relType, targetEntityID string) *ConditionNode {
	return &ConditionNode{
		Kind:             ConditionRelationship,
		RelationshipType: relType,
		TargetEntityID:   targetEntityID,
	}
}

// And creates a conjunction of two conditions.
func And(left, right *ConditionNode) *ConditionNode {
	return &ConditionNode{Kind: ConditionAnd, Left: left, Right: right}
}

// Or creates a disjunction of two conditions.
func Or(left, right *ConditionNode) *ConditionNode {
	return &ConditionNode{Kind: ConditionOr, Left: left, Right: right}
}

// Not creates a negation of a condition.
func Not(child *ConditionNode) *ConditionNode {
	return &ConditionNode{Kind: ConditionNot, Left: child}
}

// IsLeaf reports whether the node is a leaf condition (no children).
func (c *ConditionNode) IsLeaf() bool {
	return c.Kind == ConditionCompare || c.Kind == ConditionAttributeEq || c.Kind == ConditionRelationship
}
