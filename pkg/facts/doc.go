// Package facts provides the fact context consumed by statute evaluation.
//
// A Context is a read-only view of a single subject's attributes (typed
// key/value pairs) and relationships to other entities. Contexts are built
// once via ContextBuilder and are immutable for the duration of an
// evaluation, which keeps evaluation a pure function of its inputs.
//
// # Core Types
//
// Value: tagged union over the three attribute value types (integer,
// string, boolean)
//
// Context: immutable attribute and relationship view for one subject
//
// ContextBuilder: fluent construction of a Context
//
// # Basic Usage
//
//	ctx := facts.NewContextBuilder("person-42").
//	    WithInt("age", 34).
//	    WithBool("intent", true).
//	    WithString("residence", "jp").
//	    WithRelationship("Employment", "company-7").
//	    Build()
//
//	age, ok := ctx.Attribute("age")
package facts
