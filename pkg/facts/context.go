package facts

import "sort"

// Context is an immutable view of one subject's attributes and
// relationships. It is owned by the caller and borrowed by the evaluation
// engine; nothing in this package mutates a Context after Build.
type Context struct {
	subjectID     string
	attributes    map[string]Value
	relationships map[string][]string
}

// SubjectID returns the identifier of the subject the facts describe.
func (c *Context) SubjectID() string {
	return c.subjectID
}

// Attribute looks up a typed attribute by name. The boolean reports
// whether the attribute is present; an absent attribute is evidentiary
// uncertainty, never a negative fact.
func (c *Context) Attribute(name string) (Value, bool) {
	v, ok := c.attributes[name]
	return v, ok
}

// HasRelationship reports whether the subject has a relationship of the
// given type. An empty target matches any target entity; a non-empty
// target must match exactly.
func (c *Context) HasRelationship(relType, target string) bool {
	targets, ok := c.relationships[relType]
	if !ok {
		return false
	}
	if target == "" {
		return len(targets) > 0
	}
	for _, t := range targets {
		if t == target {
			return true
		}
	}
	return false
}

// AttributeCount returns the number of attributes recorded.
func (c *Context) AttributeCount() int {
	return len(c.attributes)
}

// AttributeNames returns the recorded attribute names in sorted order.
// The attribute map itself is never exposed.
func (c *Context) AttributeNames() []string {
	names := make([]string, 0, len(c.attributes))
	for name := range c.attributes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ContextBuilder constructs a Context. The builder is the only mutable
// stage; Build returns an immutable value and the builder should not be
// reused afterwards.
type ContextBuilder struct {
	subjectID     string
	attributes    map[string]Value
	relationships map[string][]string
}

// NewContextBuilder creates a builder for the given subject.
func NewContextBuilder(subjectID string) *ContextBuilder {
	return &ContextBuilder{
		subjectID:     subjectID,
		attributes:    make(map[string]Value),
		relationships: make(map[string][]string),
	}
}

// WithInt records an integer attribute.
func (b *ContextBuilder) WithInt(name string, v int64) *ContextBuilder {
	b.attributes[name] = Int(v)
	return b
}

// WithString records a string attribute.
func (b *ContextBuilder) WithString(name, v string) *ContextBuilder {
	b.attributes[name] = String(v)
	return b
}

// WithBool records a boolean attribute.
func (b *ContextBuilder) WithBool(name string, v bool) *ContextBuilder {
	b.attributes[name] = Bool(v)
	return b
}

// WithValue records an attribute with an already-typed value.
func (b *ContextBuilder) WithValue(name string, v Value) *ContextBuilder {
	b.attributes[name] = v
	return b
}

// WithRelationship records a typed relationship to a target entity.
func (b *ContextBuilder) WithRelationship(relType, target string) *ContextBuilder {
	b.relationships[relType] = append(b.relationships[relType], target)
	return b
}

// Build returns the immutable Context. The builder's maps are copied so
// later builder mutation cannot leak into the built value.
func (b *ContextBuilder) Build() *Context {
	attrs := make(map[string]Value, len(b.attributes))
	for k, v := range b.attributes {
		attrs[k] = v
	}
	rels := make(map[string][]string, len(b.relationships))
	for k, v := range b.relationships {
		targets := make([]string, len(v))
		copy(targets, v)
		rels[k] = targets
	}
	return &Context{
		subjectID:     b.subjectID,
		attributes:    attrs,
		relationships: rels,
	}
}
