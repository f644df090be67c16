package sema

import (
	"fusion/ast"
	"fusion/types"
)

// elemTypeOf reports the array-element-type annotation an already-checked
// expression carries, if any: the direct result of alloc_array/range, or a
// variable that itself carries the annotation (§4.5).
func elemTypeOf(a *Analyzer, e ast.Expr) (types.Prim, bool) {
	switch v := e.(type) {
	case *ast.Alloc:
		if v.Kind == ast.AllocArray {
			return v.ElemType, true
		}
	case *ast.Call:
		if v.Callee == "range" {
			if v.HasTypeArg {
				return v.TypeArg, true
			}
			return types.I64, true
		}
	case *ast.VarRef:
		return a.env.LookupElemType(v.Name)
	}
	return types.Void, false
}

// funcSigOf reports the function-pointer signature annotation an already-
// checked expression carries, if any: a direct reference to a named
// function, a get_func_ptr call, a variable that already carries a
// signature, or a record field previously stored with one of the above
// (§4.5's state machine, sources (i)-(iv)).
func funcSigOf(a *Analyzer, e ast.Expr) (types.Sig, bool) {
	switch v := e.(type) {
	case *ast.VarRef:
		if sig, ok := a.env.LookupFuncSig(v.Name); ok {
			return sig, true
		}
		return a.lookupCalleeSig(v.Name)
	case *ast.Call:
		if v.Callee == "get_func_ptr" {
			return a.lookupCalleeSig(v.FuncName)
		}
	case *ast.FieldLoad:
		sig, ok := a.fieldFuncSigs[fieldSigKey(v.StructName, v.FieldName)]
		return sig, ok
	}
	return types.Sig{}, false
}

// propagatePtrAnnotations refreshes name's array-element and function-
// pointer annotations from an already-checked initializer or assignment
// RHS, clearing whichever one no longer applies (§4.5: "lost on
// reassignment from any other source").
func (a *Analyzer) propagatePtrAnnotations(name string, rhs ast.Expr) {
	a.env.ClearAnnotations(name)

	if sig, ok := funcSigOf(a, rhs); ok {
		a.env.SetFuncSig(name, sig)
		return
	}
	if elem, ok := elemTypeOf(a, rhs); ok {
		a.env.SetElemType(name, elem)
	}
}
