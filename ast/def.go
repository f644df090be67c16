package ast

import "fusion/types"

// FieldDef is one field of a record definition.
type FieldDef struct {
	Name string
	Type types.Prim
}

// RecordDef is a named C-compatible record type (§3). Layout is computed
// separately by the layout package and cached by name.
type RecordDef struct {
	base
	Name   string
	Fields []FieldDef
	Export bool
}

// SameShape reports whether r and other declare the same fields in the same
// order with the same types — the "identical field list" check used by the
// import resolver's duplicate-record policy (§4.3).
func (r *RecordDef) SameShape(other *RecordDef) bool {
	if len(r.Fields) != len(other.Fields) {
		return false
	}

	for i, f := range r.Fields {
		if f.Name != other.Fields[i].Name || f.Type != other.Fields[i].Type {
			return false
		}
	}

	return true
}

// OpaqueType is a named Ptr-shaped placeholder (§3).
type OpaqueType struct {
	base
	Name string
}

// ExternLibrary is a declared shared library (§3): its dynamic-loader path
// and the internal name used to reference it from extern function decls.
type ExternLibrary struct {
	base
	Path string
	Name string // auto-generated when the source omits `as name`
}

// funcSigOf captures the shape of a function's signature independent of its
// body, used for signature comparisons during import merging (§4.3).
func funcSigOf(params []Param, ret RetType) types.Sig {
	sig := types.Sig{Result: ret.Type}
	for _, p := range params {
		sig.Params = append(sig.Params, p.Type)
	}
	return sig
}

// ExternFunc is a declared-but-not-defined function bound to a library
// (§3).
type ExternFunc struct {
	base
	Name    string
	Params  []Param
	Ret     RetType
	LibName string // back-reference to the owning ExternLibrary's Name
}

// Sig returns f's parameter/result signature.
func (f *ExternFunc) Sig() types.Sig { return funcSigOf(f.Params, f.Ret) }

// SameSignature reports whether f and other have identical parameter and
// return types (library membership is not compared here).
func (f *ExternFunc) SameSignature(other *ExternFunc) bool {
	return f.Sig().Equal(other.Sig())
}

// FuncDef is a user function definition (§3).
type FuncDef struct {
	base
	Name   string
	Params []Param
	Ret    RetType
	Body   []Stmt
	Export bool
}

// Sig returns f's parameter/result signature.
func (f *FuncDef) Sig() types.Sig { return funcSigOf(f.Params, f.Ret) }

// SameSignature reports whether f and other have identical parameter and
// return types.
func (f *FuncDef) SameSignature(other *FuncDef) bool {
	return f.Sig().Equal(other.Sig())
}

// ImportRequest is a per-library manifest of struct names and function
// declarations an importing file expects the target file to export (§3).
type ImportRequest struct {
	base
	LibBaseName string
	Structs     []string
	Funcs       []*ExternFuncStub
}

// ExternFuncStub is the shape an import request uses to describe a wanted
// function: enough to match against an exported FuncDef's signature without
// needing a library back-reference.
type ExternFuncStub struct {
	Name   string
	Params []Param
	Ret    RetType
}

// Sig returns the stub's expected signature.
func (s *ExternFuncStub) Sig() types.Sig { return funcSigOf(s.Params, s.Ret) }
