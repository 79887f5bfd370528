package facts

import "testing"

// TestContext_AttributeLookup tests attribute presence and typed access.
func TestContext_AttributeLookup(t *testing.T) {
	ctx := NewContextBuilder("person-1").
		WithInt("age", 34).
		WithString("residence", "jp").
		WithBool("intent", true).
		Build()

	age, ok := ctx.Attribute("age")
	if !ok {
		t.Fatal("expected age to be present")
	}
	if n, ok := age.IntValue(); !ok || n != 34 {
		t.Errorf("expected age int 34, got %v (ok=%v)", n, ok)
	}

	if _, ok := ctx.Attribute("income"); ok {
		t.Error("expected income to be absent")
	}

	if ctx.SubjectID() != "person-1" {
		t.Errorf("expected subject 'person-1', got %q", ctx.SubjectID())
	}
}

// TestContext_Relationships tests relationship lookups with and without
// a specific target entity.
func TestContext_Relationships(t *testing.T) {
	ctx := NewContextBuilder("person-2").
		WithRelationship("Employment", "company-7").
		WithRelationship("Employment", "company-9").
		Build()

	if !ctx.HasRelationship("Employment", "") {
		t.Error("expected Employment relationship with any target")
	}
	if !ctx.HasRelationship("Employment", "company-9") {
		t.Error("expected Employment relationship to company-9")
	}
	if ctx.HasRelationship("Employment", "company-1") {
		t.Error("did not expect Employment relationship to company-1")
	}
	if ctx.HasRelationship("Guardianship", "") {
		t.Error("did not expect Guardianship relationship")
	}
}

// TestContextBuilder_Immutability tests that mutating the builder after
// Build does not leak into the built context.
func TestContextBuilder_Immutability(t *testing.T) {
	b := NewContextBuilder("person-3").WithInt("age", 20)
	ctx := b.Build()

	b.WithInt("age", 99).WithRelationship("Employment", "x")

	age, _ := ctx.Attribute("age")
	if n, _ := age.IntValue(); n != 20 {
		t.Errorf("expected built context to keep age 20, got %d", n)
	}
	if ctx.HasRelationship("Employment", "") {
		t.Error("expected built context to have no relationships")
	}
}

// TestValue_Equal tests typed equality across kinds.
func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"equal ints", Int(5), Int(5), true},
		{"unequal ints", Int(5), Int(6), false},
		{"equal strings", String("jp"), String("jp"), true},
		{"equal bools", Bool(true), Bool(true), true},
		{"kind mismatch", Int(1), Bool(true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestValue_CanonicalString tests the stable textual form used in hashed
// payloads.
func TestValue_CanonicalString(t *testing.T) {
	if got := Int(-3).String(); got != "int:-3" {
		t.Errorf("expected 'int:-3', got %q", got)
	}
	if got := String("a b").String(); got != "string:a b" {
		t.Errorf("expected 'string:a b', got %q", got)
	}
	if got := Bool(false).String(); got != "bool:false" {
		t.Errorf("expected 'bool:false', got %q", got)
	}
}
