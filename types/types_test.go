package types

import "testing"

func TestSizeOfAndAlignOf(t *testing.T) {
	tests := []struct {
		p    Prim
		want int
	}{
		{Void, 0},
		{I32, 4},
		{I64, 8},
		{F32, 4},
		{F64, 8},
		{Ptr, 8},
	}

	for _, tc := range tests {
		if got := SizeOf(tc.p); got != tc.want {
			t.Errorf("SizeOf(%v) = %d, want %d", tc.p, got, tc.want)
		}
		if got := AlignOf(tc.p); got != tc.want {
			t.Errorf("AlignOf(%v) = %d, want %d", tc.p, got, tc.want)
		}
	}
}

func TestLookupPrim(t *testing.T) {
	tests := []struct {
		name string
		want Prim
		ok   bool
	}{
		{"i64", I64, true},
		{"ptr", Ptr, true},
		{"void", Void, true},
		{"MyRecord", Void, false},
	}

	for _, tc := range tests {
		p, ok := LookupPrim(tc.name)
		if ok != tc.ok || (ok && p != tc.want) {
			t.Errorf("LookupPrim(%q) = %v, %v; want %v, %v", tc.name, p, ok, tc.want, tc.ok)
		}
	}
}

func TestSigEqual(t *testing.T) {
	a := Sig{Params: []Prim{I64, F64}, Result: I32}
	b := Sig{Params: []Prim{I64, F64}, Result: I32}
	c := Sig{Params: []Prim{I64}, Result: I32}
	d := Sig{Params: []Prim{I64, F64}, Result: Void}

	if !a.Equal(b) {
		t.Error("expected equal signatures to compare equal")
	}
	if a.Equal(c) {
		t.Error("expected signatures with different arity to differ")
	}
	if a.Equal(d) {
		t.Error("expected signatures with different results to differ")
	}
}

func TestEnvScopingAndAnnotations(t *testing.T) {
	env := NewEnv()
	env.BindArray("arr", I64)

	if typ, ok := env.Lookup("arr"); !ok || typ != Ptr {
		t.Fatalf("Lookup(arr) = %v, %v; want Ptr, true", typ, ok)
	}
	if elem, ok := env.LookupElemType("arr"); !ok || elem != I64 {
		t.Fatalf("LookupElemType(arr) = %v, %v; want I64, true", elem, ok)
	}

	env.Push()
	env.Bind("x", I32)
	if !env.DefinedInScope("x") {
		t.Error("expected x to be defined in the innermost scope")
	}
	if _, ok := env.Lookup("arr"); !ok {
		t.Error("expected outer-scope binding to remain visible from inner scope")
	}
	env.Pop()

	if _, ok := env.Lookup("x"); ok {
		t.Error("expected x to no longer be visible after Pop")
	}

	// Reassigning arr with Bind (a plain scalar assignment) must drop its
	// array-element annotation.
	env.Bind("arr", I64)
	if _, ok := env.LookupElemType("arr"); ok {
		t.Error("expected array-element annotation to be cleared on Bind")
	}
}

func TestEnvFuncSigAnnotation(t *testing.T) {
	env := NewEnv()
	sig := Sig{Params: []Prim{I64}, Result: I64}
	env.BindFunc("f", sig)

	got, ok := env.LookupFuncSig("f")
	if !ok || !got.Equal(sig) {
		t.Fatalf("LookupFuncSig(f) = %v, %v; want %v, true", got, ok, sig)
	}

	env.ClearAnnotations("f")
	if _, ok := env.LookupFuncSig("f"); ok {
		t.Error("expected func-sig annotation to be cleared by ClearAnnotations")
	}
}
