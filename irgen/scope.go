package irgen

import (
	"fusion/ast"
	ftypes "fusion/types"

	"github.com/llir/llvm/ir/value"
)

// localSlot is one stack-allocated local: its address, its semantic type,
// and the array-element / function-pointer-signature annotations carried
// alongside it (mirroring sema's Env, but keyed to IR addresses instead of
// bare types since the emitter needs the alloca to load/store through).
type localSlot struct {
	Addr value.Value
	Typ  ftypes.Prim

	ElemType ftypes.Prim
	HasElem  bool

	FuncSig ftypes.Sig
	HasSig  bool
}

func (e *Emitter) pushScope() {
	e.scopes = append(e.scopes, make(map[string]*localSlot))
}

func (e *Emitter) popScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *Emitter) defineLocal(name string, slot *localSlot) {
	e.scopes[len(e.scopes)-1][name] = slot
}

func (e *Emitter) lookupLocal(name string) (*localSlot, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if s, ok := e.scopes[i][name]; ok {
			return s, true
		}
	}
	return nil, false
}

// elemTypeOf mirrors sema.elemTypeOf at emission time: the array-element
// annotation an expression's static shape or a bound local slot carries.
func (e *Emitter) elemTypeOf(x ast.Expr) (ftypes.Prim, bool) {
	switch v := x.(type) {
	case *ast.Alloc:
		if v.Kind == ast.AllocArray {
			return v.ElemType, true
		}
	case *ast.Call:
		if v.Callee == "range" {
			if v.HasTypeArg {
				return v.TypeArg, true
			}
			return ftypes.I64, true
		}
	case *ast.VarRef:
		if slot, ok := e.lookupLocal(v.Name); ok && slot.HasElem {
			return slot.ElemType, true
		}
	}
	return ftypes.Void, false
}

// funcSigOf mirrors sema.funcSigOf at emission time.
func (e *Emitter) funcSigOf(x ast.Expr) (ftypes.Sig, bool) {
	switch v := x.(type) {
	case *ast.VarRef:
		if slot, ok := e.lookupLocal(v.Name); ok && slot.HasSig {
			return slot.FuncSig, true
		}
		return e.lookupCalleeSig(v.Name)
	case *ast.Call:
		if v.Callee == "get_func_ptr" {
			return e.lookupCalleeSig(v.FuncName)
		}
	}
	return ftypes.Sig{}, false
}

func (e *Emitter) lookupCalleeSig(name string) (ftypes.Sig, bool) {
	if fd, ok := e.prog.FindFunc(name); ok {
		return fd.Sig(), true
	}
	if ef, ok := e.prog.FindExtern(name); ok {
		return ef.Sig(), true
	}
	return ftypes.Sig{}, false
}

// annotateSlot refreshes slot's array-element/function-pointer annotation
// from an already-lowered initializer or assignment RHS, clearing whichever
// no longer applies (§4.5, §4.6: annotations are lost on reassignment from
// any other source).
func (e *Emitter) annotateSlot(slot *localSlot, rhs ast.Expr) {
	slot.HasElem, slot.HasSig = false, false

	if sig, ok := e.funcSigOf(rhs); ok {
		slot.FuncSig, slot.HasSig = sig, true
		return
	}
	if elem, ok := e.elemTypeOf(rhs); ok {
		slot.ElemType, slot.HasElem = elem, true
	}
}
