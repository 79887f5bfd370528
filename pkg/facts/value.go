package facts

import (
	"fmt"
	"strconv"
)

// ValueKind identifies the type carried by a Value.
type ValueKind string

const (
	KindInt    ValueKind = "int"
	KindString ValueKind = "string"
	KindBool   ValueKind = "bool"
)

// Value is a typed attribute value. It is a closed tagged union over the
// three attribute types; consumers switch on Kind() and every switch must
// cover all three kinds.
type Value struct {
	kind ValueKind
	i    int64
	s    string
	b    bool
}

// Int creates an integer Value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// String creates a string Value.
func String(v string) Value {
	return Value{kind: KindString, s: v}
}

// Bool creates a boolean Value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Kind returns the value's type tag.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IntValue returns the integer payload. The boolean reports whether the
// value actually carries an integer.
func (v Value) IntValue() (int64, bool) {
	return v.i, v.kind == KindInt
}

// StringValue returns the string payload.
func (v Value) StringValue() (string, bool) {
	return v.s, v.kind == KindString
}

// BoolValue returns the boolean payload.
func (v Value) BoolValue() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Equal reports whether two values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == other.i
	case KindString:
		return v.s == other.s
	case KindBool:
		return v.b == other.b
	default:
		return false
	}
}

// String returns a canonical textual form of the value. The encoding is
// stable across platforms and is safe to embed in hashed payloads:
// "int:<decimal>", "string:<raw>", "bool:true|false".
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return "int:" + strconv.FormatInt(v.i, 10)
	case KindString:
		return "string:" + v.s
	case KindBool:
		return "bool:" + strconv.FormatBool(v.b)
	default:
		return fmt.Sprintf("unknown:%v", v.kind)
	}
}
