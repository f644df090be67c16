package irgen

import (
	"fusion/ast"
	ftypes "fusion/types"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr lowers one expression to its value convention (§4.6). Void-typed
// expressions (store/store_field/print/...) return nil; callers that use
// the expression only for side effects ignore the result.
func (e *Emitter) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.IntLit:
		return constant.NewInt(types.I64, v.Value)
	case *ast.FloatLit:
		return constant.NewFloat(types.Double, v.Value)
	case *ast.StringLit:
		return e.genStackCString(v.Value)
	case *ast.VarRef:
		return e.genVarRef(v)
	case *ast.BinOp:
		return e.genBinOp(v)
	case *ast.Call:
		return e.genCall(v)
	case *ast.Alloc:
		return e.genAlloc(v)
	case *ast.AddrOf:
		return e.genAddrOf(v)
	case *ast.Load:
		return e.genLoad(v)
	case *ast.Store:
		return e.genStore(v)
	case *ast.FieldLoad:
		return e.genFieldLoad(v)
	case *ast.FieldStore:
		return e.genFieldStore(v)
	case *ast.Index:
		return e.genIndex(v)
	case *ast.Cast:
		return e.genCastExpr(v)
	default:
		internalError("unhandled expression kind")
		return nil
	}
}

func (e *Emitter) genVarRef(v *ast.VarRef) value.Value {
	if slot, ok := e.lookupLocal(v.Name); ok {
		return e.block.NewLoad(convType(slot.Typ), slot.Addr)
	}
	if fn, ok := e.userFuncs[v.Name]; ok {
		return e.block.NewBitCast(fn, types.I8Ptr)
	}
	internalError("undefined symbol '%s'", v.Name)
	return nil
}

func ipred(op ast.BinOpKind) enum.IPred {
	switch op {
	case ast.Eq:
		return enum.IPredEQ
	case ast.Ne:
		return enum.IPredNE
	case ast.Lt:
		return enum.IPredSLT
	case ast.Le:
		return enum.IPredSLE
	case ast.Gt:
		return enum.IPredSGT
	default:
		return enum.IPredSGE
	}
}

func fpred(op ast.BinOpKind) enum.FPred {
	switch op {
	case ast.Eq:
		return enum.FPredOEQ
	case ast.Ne:
		return enum.FPredONE
	case ast.Lt:
		return enum.FPredOLT
	case ast.Le:
		return enum.FPredOLE
	case ast.Gt:
		return enum.FPredOGT
	default:
		return enum.FPredOGE
	}
}

// genBinOp implements arithmetic and comparison lowering (§4.6): pointer
// comparisons go through pointer-to-integer conversion; float wins over
// int whenever either operand is F64; comparisons always yield an i64 of
// 0 or 1.
func (e *Emitter) genBinOp(v *ast.BinOp) value.Value {
	lhsVal := e.genExpr(v.Lhs)
	rhsVal := e.genExpr(v.Rhs)
	lt, rt := v.Lhs.Type(), v.Rhs.Type()

	if v.Op.IsComparison() {
		if lt == ftypes.Ptr && rt == ftypes.Ptr {
			li := e.block.NewPtrToInt(lhsVal, types.I64)
			ri := e.block.NewPtrToInt(rhsVal, types.I64)
			cmp := e.block.NewICmp(ipred(v.Op), li, ri)
			return e.block.NewZExt(cmp, types.I64)
		}

		if lt == ftypes.F64 || rt == ftypes.F64 {
			lf := e.coerce(lhsVal, lt, ftypes.F64)
			rf := e.coerce(rhsVal, rt, ftypes.F64)
			cmp := e.block.NewFCmp(fpred(v.Op), lf, rf)
			return e.block.NewZExt(cmp, types.I64)
		}

		li := e.coerce(lhsVal, lt, ftypes.I64)
		ri := e.coerce(rhsVal, rt, ftypes.I64)
		cmp := e.block.NewICmp(ipred(v.Op), li, ri)
		return e.block.NewZExt(cmp, types.I64)
	}

	if lt == ftypes.F64 || rt == ftypes.F64 {
		lf := e.coerce(lhsVal, lt, ftypes.F64)
		rf := e.coerce(rhsVal, rt, ftypes.F64)
		switch v.Op {
		case ast.Add:
			return e.block.NewFAdd(lf, rf)
		case ast.Sub:
			return e.block.NewFSub(lf, rf)
		case ast.Mul:
			return e.block.NewFMul(lf, rf)
		default:
			return e.block.NewFDiv(lf, rf)
		}
	}

	li := e.coerce(lhsVal, lt, ftypes.I64)
	ri := e.coerce(rhsVal, rt, ftypes.I64)
	switch v.Op {
	case ast.Add:
		return e.block.NewAdd(li, ri)
	case ast.Sub:
		return e.block.NewSub(li, ri)
	case ast.Mul:
		return e.block.NewMul(li, ri)
	default:
		return e.block.NewSDiv(li, ri)
	}
}

func (e *Emitter) genAddrOf(v *ast.AddrOf) value.Value {
	slot, ok := e.lookupLocal(v.Name)
	if !ok {
		internalError("undefined symbol '%s'", v.Name)
		return nil
	}
	return e.block.NewBitCast(slot.Addr, types.I8Ptr)
}

// genLoad implements load/load_i32/load_f64/load_ptr: cast the pointer to
// the target element type and load. load_i32 zero-extends to i64 to keep
// the source-level "integer" type uniform (§4.6).
func (e *Emitter) genLoad(v *ast.Load) value.Value {
	ptr := e.genExpr(v.Ptr)

	switch v.Kind {
	case ast.LoadI32:
		typed := e.block.NewBitCast(ptr, types.NewPointer(types.I32))
		val := e.block.NewLoad(types.I32, typed)
		return e.block.NewZExt(val, types.I64)
	case ast.LoadF64:
		typed := e.block.NewBitCast(ptr, types.NewPointer(types.Double))
		return e.block.NewLoad(types.Double, typed)
	case ast.LoadPtr:
		typed := e.block.NewBitCast(ptr, types.NewPointer(types.I8Ptr))
		return e.block.NewLoad(types.I8Ptr, typed)
	default:
		typed := e.block.NewBitCast(ptr, types.NewPointer(types.I64))
		return e.block.NewLoad(types.I64, typed)
	}
}

// genStore implements store(p, v): typed by v's own result type (§4.6).
func (e *Emitter) genStore(v *ast.Store) value.Value {
	ptr := e.genExpr(v.Ptr)
	val := e.genExpr(v.Value)
	typed := e.block.NewBitCast(ptr, types.NewPointer(convType(v.Value.Type())))
	e.block.NewStore(val, typed)
	return nil
}

// genFieldLoad implements load_field(p, Struct, field) via a byte offset
// from the layout table (§4.4, §4.6).
func (e *Emitter) genFieldLoad(v *ast.FieldLoad) value.Value {
	base := e.genExpr(v.Base)
	rec := e.layouts[v.StructName]
	offset, _ := rec.FieldOffset(v.FieldName)
	ft, _ := rec.FieldType(v.FieldName)

	addr := e.block.NewGetElementPtr(types.I8, base, constant.NewInt(types.I64, int64(offset)))
	typed := e.block.NewBitCast(addr, types.NewPointer(convType(ft)))
	return e.block.NewLoad(convType(ft), typed)
}

// genFieldStore implements store_field(p, Struct, field, v), converting
// between Ptr and I64 when the value's type doesn't match the field's
// declared type (§4.5, §4.6).
func (e *Emitter) genFieldStore(v *ast.FieldStore) value.Value {
	base := e.genExpr(v.Base)
	rec := e.layouts[v.StructName]
	offset, _ := rec.FieldOffset(v.FieldName)
	ft, _ := rec.FieldType(v.FieldName)

	val := e.genExpr(v.Value)
	val = e.coerce(val, v.Value.Type(), ft)

	addr := e.block.NewGetElementPtr(types.I8, base, constant.NewInt(types.I64, int64(offset)))
	typed := e.block.NewBitCast(addr, types.NewPointer(convType(ft)))
	e.block.NewStore(val, typed)
	return nil
}

// genIndex implements a[i]: bounds-checked load from base+8+i*sizeof(elem)
// (§4.6).
func (e *Emitter) genIndex(v *ast.Index) value.Value {
	base := e.genExpr(v.Base)
	idx := e.genExpr(v.Index)

	elem, ok := e.elemTypeOf(v.Base)
	if !ok {
		elem = ftypes.I64
	}

	e.emitBoundsCheck(base, idx)

	addr := e.computeElemAddr(base, idx, ftypes.SizeOf(elem))
	typed := e.block.NewBitCast(addr, types.NewPointer(convType(elem)))
	return e.block.NewLoad(convType(elem), typed)
}

// genCastExpr implements `expr as TYPE`: numeric<->numeric or Ptr<->Ptr
// only, per §4.5's castCompatible tier (never Ptr<->I64 — that conversion
// is reserved for assignment/store/call coercion).
func (e *Emitter) genCastExpr(v *ast.Cast) value.Value {
	val := e.genExpr(v.Src)
	src, dst := v.Src.Type(), v.Target
	if src == dst {
		return val
	}

	switch {
	case src == ftypes.Ptr && dst == ftypes.Ptr:
		return val
	case src.IsFloat() && dst.IsFloat():
		if src == ftypes.F32 {
			return e.block.NewFPExt(val, types.Double)
		}
		return e.block.NewFPTrunc(val, types.Float)
	case src.IsFloat() && !dst.IsFloat():
		return e.block.NewFPToSI(val, convType(dst))
	case !src.IsFloat() && dst.IsFloat():
		return e.block.NewSIToFP(val, convType(dst))
	case src == ftypes.I64 && dst == ftypes.I32:
		return e.block.NewTrunc(val, types.I32)
	case src == ftypes.I32 && dst == ftypes.I64:
		return e.block.NewSExt(val, types.I64)
	default:
		return val
	}
}
