package sema

import (
	"fusion/ast"
	"fusion/types"
)

// checkExpr type-checks e, sets its result type via Expr.SetType, and
// returns that type for the caller's convenience (§4.5).
func (a *Analyzer) checkExpr(e ast.Expr) types.Prim {
	t := a.checkExprKind(e)
	e.SetType(t)
	return t
}

func (a *Analyzer) checkExprKind(e ast.Expr) types.Prim {
	switch v := e.(type) {
	case *ast.IntLit:
		return types.I64
	case *ast.FloatLit:
		return types.F64
	case *ast.StringLit:
		return types.Ptr
	case *ast.VarRef:
		return a.checkVarRef(v)
	case *ast.BinOp:
		return a.checkBinOp(v)
	case *ast.Call:
		return a.checkCall(v)
	case *ast.Alloc:
		return a.checkAlloc(v)
	case *ast.AddrOf:
		return a.checkAddrOf(v)
	case *ast.Load:
		return a.checkLoad(v)
	case *ast.Store:
		return a.checkStore(v)
	case *ast.FieldLoad:
		return a.checkFieldLoad(v)
	case *ast.FieldStore:
		return a.checkFieldStore(v)
	case *ast.Index:
		return a.checkIndex(v)
	case *ast.Cast:
		return a.checkCast(v)
	default:
		a.errorf(e, "internal: unhandled expression kind")
		return types.Void
	}
}

// checkVarRef resolves a variable in the local scope stack, falling back to
// a direct reference to a declared function (a Ptr value) if no local
// binding exists (§4.5's function-pointer state machine, source (i)).
func (a *Analyzer) checkVarRef(ref *ast.VarRef) types.Prim {
	if t, ok := a.env.Lookup(ref.Name); ok {
		return t
	}
	if _, ok := a.lookupCalleeSig(ref.Name); ok {
		return types.Ptr
	}
	a.errorf(ref, "undefined symbol: '%s'", ref.Name)
	return types.Void
}

// checkBinOp implements arithmetic and comparison rules (§4.5).
func (a *Analyzer) checkBinOp(v *ast.BinOp) types.Prim {
	lt := a.checkExpr(v.Lhs)
	rt := a.checkExpr(v.Rhs)

	if v.Op.IsComparison() {
		if lt == types.Ptr && rt == types.Ptr {
			if v.Op != ast.Eq && v.Op != ast.Ne {
				a.errorf(v, "pointer comparison only supports '==' and '!='")
			}
			return types.I64
		}
		if !lt.IsNumeric() || !rt.IsNumeric() {
			a.errorf(v, "comparison requires numeric or pointer operands")
		}
		return types.I64
	}

	if lt == types.F64 || rt == types.F64 {
		return types.F64
	}
	return types.I64
}

// checkAlloc implements `alloc(T)` / `alloc_array(T, n)` / `alloc_bytes(n)`
// (§4.5).
func (a *Analyzer) checkAlloc(v *ast.Alloc) types.Prim {
	switch v.Kind {
	case ast.AllocScalar:
		a.checkAllocType(v)
		return types.Ptr

	case ast.AllocArray:
		a.checkAllocType(v)
		if t := a.checkExpr(v.CountExpr); t != types.I64 {
			a.errorf(v.CountExpr, "alloc_array count must be i64")
		}
		return types.Ptr

	case ast.AllocBytes:
		if t := a.checkExpr(v.SizeExpr); t != types.I64 {
			a.errorf(v.SizeExpr, "alloc_bytes size must be i64")
		}
		return types.Ptr

	default:
		return types.Ptr
	}
}

func (a *Analyzer) checkAllocType(v *ast.Alloc) {
	if v.IsRecord {
		if _, ok := a.prog.FindRecord(v.TypeName); !ok {
			a.errorf(v, "unknown record type '%s'", v.TypeName)
		}
		return
	}
	if v.ElemType == types.Void {
		a.errorf(v, "cannot allocate a value of type void")
	}
}

// checkAddrOf implements `addr_of(x)`: x must be a variable reference
// (§4.5).
func (a *Analyzer) checkAddrOf(v *ast.AddrOf) types.Prim {
	if _, ok := a.env.Lookup(v.Name); !ok {
		a.errorf(v, "undefined symbol: '%s'", v.Name)
	}
	return types.Ptr
}

// checkLoad implements load/load_i32/load_f64/load_ptr (§4.5).
func (a *Analyzer) checkLoad(v *ast.Load) types.Prim {
	if t := a.checkExpr(v.Ptr); t != types.Ptr {
		a.errorf(v.Ptr, "load requires a pointer operand")
	}

	switch v.Kind {
	case ast.LoadI32:
		// load_i32 zero-extends to I64 to keep the source-level integer type
		// uniform (§4.6); the loaded value is i64 by the time it reaches IR.
		return types.I64
	case ast.LoadF64:
		return types.F64
	case ast.LoadPtr:
		return types.Ptr
	default:
		return types.I64
	}
}

// checkStore implements `store(p, v)`: a typed store through a pointer,
// typed by v's own result type (§3, §4.5).
func (a *Analyzer) checkStore(v *ast.Store) types.Prim {
	if t := a.checkExpr(v.Ptr); t != types.Ptr {
		a.errorf(v.Ptr, "store requires a pointer operand")
	}
	a.checkExpr(v.Value)
	return types.Void
}

// checkFieldLoad implements `load_field(p, Struct, field)` (§4.5).
func (a *Analyzer) checkFieldLoad(v *ast.FieldLoad) types.Prim {
	if t := a.checkExpr(v.Base); t != types.Ptr {
		a.errorf(v.Base, "load_field requires a pointer operand")
	}

	rec, ok := a.layouts[v.StructName]
	if !ok {
		if _, exists := a.prog.FindRecord(v.StructName); !exists {
			a.errorf(v, "unknown record type '%s'", v.StructName)
			return types.Void
		}
	}

	ft, ok := rec.FieldType(v.FieldName)
	if !ok {
		a.errorf(v, "record '%s' has no field '%s'", v.StructName, v.FieldName)
		return types.Void
	}
	return ft
}

// checkFieldStore implements `store_field(p, Struct, field, v)` (§4.5).
func (a *Analyzer) checkFieldStore(v *ast.FieldStore) types.Prim {
	if t := a.checkExpr(v.Base); t != types.Ptr {
		a.errorf(v.Base, "store_field requires a pointer operand")
	}

	rec, ok := a.layouts[v.StructName]
	if !ok {
		if _, exists := a.prog.FindRecord(v.StructName); !exists {
			a.errorf(v, "unknown record type '%s'", v.StructName)
		}
	}

	valType := a.checkExpr(v.Value)

	if ft, ok := rec.FieldType(v.FieldName); ok {
		if !ptrI64Compatible(ft, valType) {
			a.errorf(v, "cannot store a value of the wrong type into field '%s'", v.FieldName)
		}
	} else {
		a.errorf(v, "record '%s' has no field '%s'", v.StructName, v.FieldName)
	}

	if sig, ok := funcSigOf(a, v.Value); ok {
		a.fieldFuncSigs[fieldSigKey(v.StructName, v.FieldName)] = sig
	}

	return types.Void
}

// checkIndex implements `a[i]` (§4.5): the element type comes from the
// base's array-element annotation, defaulting to I64 when unknown.
func (a *Analyzer) checkIndex(v *ast.Index) types.Prim {
	if t := a.checkExpr(v.Base); t != types.Ptr {
		a.errorf(v.Base, "index base must be a pointer")
	}
	if t := a.checkExpr(v.Index); t != types.I64 {
		a.errorf(v.Index, "index must be i64")
	}

	if elem, ok := elemTypeOf(a, v.Base); ok {
		return elem
	}
	return types.I64
}

// checkCast implements `expr as TYPE` (§4.5).
func (a *Analyzer) checkCast(v *ast.Cast) types.Prim {
	src := a.checkExpr(v.Src)
	if !castCompatible(src, v.Target) {
		a.errorf(v, "invalid cast")
	}
	return v.Target
}
