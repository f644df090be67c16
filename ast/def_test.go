package ast

import (
	"testing"

	"fusion/types"
)

func TestRecordDefSameShape(t *testing.T) {
	a := &RecordDef{Name: "Point", Fields: []FieldDef{{"x", types.I64}, {"y", types.I64}}}
	b := &RecordDef{Name: "Vec", Fields: []FieldDef{{"x", types.I64}, {"y", types.I64}}}
	c := &RecordDef{Name: "Point3", Fields: []FieldDef{{"x", types.I64}, {"y", types.I64}, {"z", types.I64}}}
	d := &RecordDef{Name: "Swap", Fields: []FieldDef{{"y", types.I64}, {"x", types.I64}}}

	if !a.SameShape(b) {
		t.Error("expected identically-shaped records with different names to match")
	}
	if a.SameShape(c) {
		t.Error("expected records with different field counts not to match")
	}
	if a.SameShape(d) {
		t.Error("expected field order to matter for SameShape")
	}
}

func TestFuncDefSameSignature(t *testing.T) {
	f := &FuncDef{
		Name:   "add",
		Params: []Param{{Name: "a", Type: types.I64}, {Name: "b", Type: types.I64}},
		Ret:    RetType{Type: types.I64},
	}
	g := &FuncDef{
		Name:   "sum",
		Params: []Param{{Name: "x", Type: types.I64}, {Name: "y", Type: types.I64}},
		Ret:    RetType{Type: types.I64},
	}
	h := &FuncDef{
		Name:   "concat",
		Params: []Param{{Name: "a", Type: types.I64}, {Name: "b", Type: types.F64}},
		Ret:    RetType{Type: types.I64},
	}

	if !f.SameSignature(g) {
		t.Error("expected same param/return types to count as the same signature regardless of names")
	}
	if f.SameSignature(h) {
		t.Error("expected differing parameter types to break signature equality")
	}
}

func TestExternFuncSigMatchesStub(t *testing.T) {
	ext := &ExternFunc{
		Name:   "sqrt",
		Params: []Param{{Name: "x", Type: types.F64}},
		Ret:    RetType{Type: types.F64},
	}
	stub := &ExternFuncStub{
		Name:   "sqrt",
		Params: []Param{{Name: "x", Type: types.F64}},
		Ret:    RetType{Type: types.F64},
	}

	if !ext.Sig().Equal(stub.Sig()) {
		t.Error("expected an extern func's signature to equal a matching import stub's")
	}
}
