package irgen

import (
	"fusion/abi"
	"fusion/ast"
	ftypes "fusion/types"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genCall dispatches a call expression to its built-in lowering or, for any
// other callee name, a direct user/extern function call (§4.6).
func (e *Emitter) genCall(v *ast.Call) value.Value {
	switch v.Callee {
	case "range":
		return e.genRangeCall(v)
	case "from_str":
		return e.genFromStrCall(v)
	case "get_func_ptr":
		return e.genGetFuncPtr(v)
	case "call":
		return e.genIndirectCall(v)
	case "print":
		return e.genPrintCall(v)
	case "read_line":
		return e.block.NewCall(e.runtimeFuncs[abi.FnReadLine])
	case "to_str":
		return e.genToStrCall(v)
	case "open":
		path := e.genExpr(v.Args[0])
		mode := e.genExpr(v.Args[1])
		return e.block.NewCall(e.runtimeFuncs[abi.FnOpen], path, mode)
	case "close":
		return e.block.NewCall(e.runtimeFuncs[abi.FnClose], e.genExpr(v.Args[0]))
	case "read_line_file":
		return e.block.NewCall(e.runtimeFuncs[abi.FnReadLineFile], e.genExpr(v.Args[0]))
	case "write_file":
		return e.genWriteFileCall(v)
	case "eof_file":
		return e.block.NewCall(e.runtimeFuncs[abi.FnEofFile], e.genExpr(v.Args[0]))
	case "line_count_file":
		return e.block.NewCall(e.runtimeFuncs[abi.FnLineCountFile], e.genExpr(v.Args[0]))
	default:
		return e.genNamedCall(v)
	}
}

// genAlloc implements alloc(T)/alloc_array(T, n)/alloc_bytes(n) (§4.6):
// scalar primitives and byte buffers are stack-allocated; records and
// arrays are heap-allocated because they can escape the declaring
// function.
func (e *Emitter) genAlloc(v *ast.Alloc) value.Value {
	entryBlock := e.enclosingFunc.Blocks[0]

	switch v.Kind {
	case ast.AllocScalar:
		if v.IsRecord {
			rec := e.layouts[v.TypeName]
			size := constant.NewInt(types.I64, int64(rec.Size))
			return e.block.NewCall(e.mallocFunc, size)
		}
		slot := entryBlock.NewAlloca(convType(v.ElemType))
		return e.block.NewBitCast(slot, types.I8Ptr)

	case ast.AllocArray:
		elemSize := ftypes.SizeOf(v.ElemType)
		count := e.genExpr(v.CountExpr)
		total := e.block.NewAdd(
			e.block.NewMul(count, constant.NewInt(types.I64, int64(elemSize))),
			constant.NewInt(types.I64, 8),
		)
		ptr := e.block.NewCall(e.mallocFunc, total)
		lenPtr := e.block.NewBitCast(ptr, types.NewPointer(types.I64))
		e.block.NewStore(count, lenPtr)
		return ptr

	case ast.AllocBytes:
		size := e.genExpr(v.SizeExpr)
		slot := e.block.NewAlloca(types.I8)
		slot.NElems = size
		return e.block.NewBitCast(slot, types.I8Ptr)

	default:
		return constant.NewNull(types.I8Ptr)
	}
}

// genRangeCall implements range(n [, ty]) / range(start, end [, ty]):
// allocates a length-prefixed array and fills it with a small emitted loop
// (§4.6).
func (e *Emitter) genRangeCall(v *ast.Call) value.Value {
	elem := ftypes.I64
	if v.HasTypeArg {
		elem = v.TypeArg
	}
	elemSize := ftypes.SizeOf(elem)
	elemLLType := convType(elem)

	var startVal, endVal value.Value
	if len(v.Args) == 2 {
		startVal = e.genExpr(v.Args[0])
		endVal = e.genExpr(v.Args[1])
	} else {
		startVal = constant.NewInt(types.I64, 0)
		endVal = e.genExpr(v.Args[0])
	}

	count := e.block.NewSub(endVal, startVal)
	total := e.block.NewAdd(
		e.block.NewMul(count, constant.NewInt(types.I64, int64(elemSize))),
		constant.NewInt(types.I64, 8),
	)
	arr := e.block.NewCall(e.mallocFunc, total)
	lenPtr := e.block.NewBitCast(arr, types.NewPointer(types.I64))
	e.block.NewStore(count, lenPtr)

	entryBlock := e.enclosingFunc.Blocks[0]
	idxSlot := entryBlock.NewAlloca(types.I64)
	e.block.NewStore(constant.NewInt(types.I64, 0), idxSlot)

	condBlock := e.enclosingFunc.NewBlock(e.blockName("range.cond"))
	bodyBlock := e.enclosingFunc.NewBlock(e.blockName("range.body"))
	doneBlock := e.enclosingFunc.NewBlock(e.blockName("range.done"))

	e.block.NewBr(condBlock)

	e.block = condBlock
	idx := e.block.NewLoad(types.I64, idxSlot)
	cmp := e.block.NewICmp(enum.IPredSLT, idx, count)
	e.block.NewCondBr(cmp, bodyBlock, doneBlock)

	e.block = bodyBlock
	rawVal := e.block.NewAdd(startVal, idx)
	elemVal := e.coerce(rawVal, ftypes.I64, elem)
	addr := e.computeElemAddr(arr, idx, elemSize)
	typed := e.block.NewBitCast(addr, types.NewPointer(elemLLType))
	e.block.NewStore(elemVal, typed)
	next := e.block.NewAdd(idx, constant.NewInt(types.I64, 1))
	e.block.NewStore(next, idxSlot)
	e.block.NewBr(condBlock)

	e.block = doneBlock
	return arr
}

func (e *Emitter) genFromStrCall(v *ast.Call) value.Value {
	s := e.genExpr(v.Args[0])
	if v.TypeArg == ftypes.F64 {
		return e.block.NewCall(e.runtimeFuncs[abi.FnFromStrF64], s)
	}
	return e.block.NewCall(e.runtimeFuncs[abi.FnFromStrI64], s)
}

func (e *Emitter) genToStrCall(v *ast.Call) value.Value {
	arg := e.genExpr(v.Args[0])
	if v.Args[0].Type() == ftypes.F64 {
		return e.block.NewCall(e.runtimeFuncs[abi.FnToStrF64], arg)
	}
	i := e.coerce(arg, v.Args[0].Type(), ftypes.I64)
	return e.block.NewCall(e.runtimeFuncs[abi.FnToStrI64], i)
}

// genGetFuncPtr implements get_func_ptr(name): a user function yields its
// bitcast address directly; an extern function is resolved dynamically
// through the runtime's symbol resolver (§4.6).
func (e *Emitter) genGetFuncPtr(v *ast.Call) value.Value {
	if fn, ok := e.userFuncs[v.FuncName]; ok {
		return e.block.NewBitCast(fn, types.I8Ptr)
	}
	return e.resolveExternSymbol(v.FuncName)
}

func (e *Emitter) resolveExternSymbol(name string) value.Value {
	ef, ok := e.prog.FindExtern(name)
	if !ok {
		internalError("unknown extern function '%s'", name)
		return nil
	}

	handle := e.block.NewLoad(types.I8Ptr, e.libGlobals[ef.LibName])
	symName := e.genStackCString(name)
	sym := e.block.NewCall(e.runtimeFuncs[abi.FnDlsym], handle, symName)
	e.emitNullCheckRuntime(sym, abi.FnDlerrorLast)
	return sym
}

// genPrintCall dispatches print(x, [stream]) on x's static type (§4.6).
func (e *Emitter) genPrintCall(v *ast.Call) value.Value {
	arg := e.genExpr(v.Args[0])

	var stream value.Value = constant.NewInt(types.I64, 0)
	if len(v.Args) == 2 {
		stream = e.genExpr(v.Args[1])
	}

	switch v.Args[0].Type() {
	case ftypes.F64, ftypes.F32:
		f := e.coerce(arg, v.Args[0].Type(), ftypes.F64)
		e.block.NewCall(e.runtimeFuncs[abi.FnPrintF64], f, stream)
	case ftypes.Ptr:
		e.block.NewCall(e.runtimeFuncs[abi.FnPrintCString], arg, stream)
	default:
		i := e.coerce(arg, v.Args[0].Type(), ftypes.I64)
		e.block.NewCall(e.runtimeFuncs[abi.FnPrintI64], i, stream)
	}
	return nil
}

func (e *Emitter) genWriteFileCall(v *ast.Call) value.Value {
	h := e.genExpr(v.Args[0])
	val := e.genExpr(v.Args[1])
	fn := e.runtimeFuncs[abi.WriteFileFuncFor(v.Args[1].Type())]
	return e.block.NewCall(fn, h, val)
}

// genIndirectCall implements call(target, args...): recovers the target's
// signature (from the analyzer's writeback or the function-pointer state
// machine), null-checks it, and emits an indirect call through a bitcast
// function pointer of that signature (§4.6).
func (e *Emitter) genIndirectCall(v *ast.Call) value.Value {
	target := e.genExpr(v.Args[0])
	actuals := v.Args[1:]

	var sig ftypes.Sig
	if v.HasInferredSig {
		sig = v.InferredSig
	} else if s, ok := e.funcSigOf(v.Args[0]); ok {
		sig = s
	}

	e.emitNullCheck(target, "call on null function pointer")

	paramTypes := make([]types.Type, len(sig.Params))
	for i, p := range sig.Params {
		paramTypes[i] = convType(p)
	}
	fnType := types.NewFunc(convType(sig.Result), paramTypes...)
	typedTarget := e.block.NewBitCast(target, types.NewPointer(fnType))

	args := make([]value.Value, len(actuals))
	for i, a := range actuals {
		val := e.genExpr(a)
		if i < len(sig.Params) {
			val = e.coerce(val, a.Type(), sig.Params[i])
		}
		args[i] = val
	}

	return e.block.NewCall(typedTarget, args...)
}

// genNamedCall dispatches a plain name(args...) call to a direct user
// function call or the extern FFI path (§4.6).
func (e *Emitter) genNamedCall(v *ast.Call) value.Value {
	if fd, ok := e.prog.FindFunc(v.Callee); ok {
		fn := e.userFuncs[v.Callee]
		args := make([]value.Value, len(v.Args))
		for i, a := range v.Args {
			val := e.genExpr(a)
			if i < len(fd.Params) {
				val = e.coerce(val, a.Type(), fd.Params[i].Type)
			}
			args[i] = val
		}
		return e.block.NewCall(fn, args...)
	}

	if ef, ok := e.prog.FindExtern(v.Callee); ok {
		return e.genExternCall(ef, v.Args)
	}

	internalError("unknown function '%s'", v.Callee)
	return nil
}

// genExternCall implements the full external-call FFI path (§4.6, §6):
// resolve the symbol, build an FFI signature from the declared parameter
// and result type kinds, serialize arguments into an 8-byte-per-slot
// buffer, call the runtime's FFI trampoline, and decode the result.
func (e *Emitter) genExternCall(ef *ast.ExternFunc, argExprs []ast.Expr) value.Value {
	entryBlock := e.enclosingFunc.Blocks[0]

	handle := e.block.NewLoad(types.I8Ptr, e.libGlobals[ef.LibName])
	symName := e.genStackCString(ef.Name)
	fnPtr := e.block.NewCall(e.runtimeFuncs[abi.FnDlsym], handle, symName)
	e.emitNullCheckRuntime(fnPtr, abi.FnDlerrorLast)

	paramKinds := make([]constant.Constant, len(ef.Params))
	for i, p := range ef.Params {
		paramKinds[i] = constant.NewInt(types.I32, int64(abi.FFIKindOf(p.Type)))
	}
	kindsArrType := types.NewArray(uint64(len(paramKinds)), types.I32)
	kindsArr := constant.NewArray(kindsArrType, paramKinds...)
	kindsSlot := entryBlock.NewAlloca(kindsArrType)
	e.block.NewStore(kindsArr, kindsSlot)
	kindsPtr := e.block.NewBitCast(kindsSlot, types.I8Ptr)

	nArgs := constant.NewInt(types.I32, int64(len(ef.Params)))
	resultKind := constant.NewInt(types.I32, int64(abi.FFIKindOf(ef.Ret.Type)))
	sig := e.block.NewCall(e.runtimeFuncs[abi.FnFFISigCreate], resultKind, nArgs, kindsPtr)
	e.emitNullCheckRuntime(sig, abi.FnFFIErrorLast)

	argsBufType := types.NewArray(uint64(len(ef.Params))*abi.FFISlotSize, types.I8)
	argsSlot := entryBlock.NewAlloca(argsBufType)
	argsBase := e.block.NewBitCast(argsSlot, types.I8Ptr)

	for i, p := range ef.Params {
		argVal := e.genExpr(argExprs[i])
		slotAddr := e.block.NewGetElementPtr(types.I8, argsBase, constant.NewInt(types.I64, int64(i*abi.FFISlotSize)))

		switch p.Type {
		case ftypes.F32:
			typed := e.block.NewBitCast(slotAddr, types.NewPointer(types.Float))
			e.block.NewStore(e.coerce(argVal, argExprs[i].Type(), ftypes.F32), typed)
		case ftypes.F64:
			typed := e.block.NewBitCast(slotAddr, types.NewPointer(types.Double))
			e.block.NewStore(e.coerce(argVal, argExprs[i].Type(), ftypes.F64), typed)
		case ftypes.Ptr:
			typed := e.block.NewBitCast(slotAddr, types.NewPointer(types.I8Ptr))
			e.block.NewStore(e.coerce(argVal, argExprs[i].Type(), ftypes.Ptr), typed)
		default:
			typed := e.block.NewBitCast(slotAddr, types.NewPointer(types.I64))
			e.block.NewStore(e.coerce(argVal, argExprs[i].Type(), ftypes.I64), typed)
		}
	}

	retSlot := entryBlock.NewAlloca(types.I64)
	retBuf := e.block.NewBitCast(retSlot, types.I8Ptr)

	rc := e.block.NewCall(e.runtimeFuncs[abi.FnFFICall], sig, fnPtr, argsBase, retBuf)

	okBlock := e.enclosingFunc.NewBlock(e.blockName("ffi.callok"))
	failBlock := e.enclosingFunc.NewBlock(e.blockName("ffi.callfail"))
	nonzero := e.block.NewICmp(enum.IPredNE, rc, constant.NewInt(types.I32, 0))
	e.block.NewCondBr(nonzero, failBlock, okBlock)
	e.block = failBlock
	e.emitPanicFromRuntime(abi.FnFFIErrorLast)
	e.block = okBlock

	switch ef.Ret.Type {
	case ftypes.Void:
		return nil
	case ftypes.F32:
		typed := e.block.NewBitCast(retBuf, types.NewPointer(types.Float))
		return e.block.NewLoad(types.Float, typed)
	case ftypes.F64:
		typed := e.block.NewBitCast(retBuf, types.NewPointer(types.Double))
		return e.block.NewLoad(types.Double, typed)
	case ftypes.Ptr:
		typed := e.block.NewBitCast(retBuf, types.NewPointer(types.I8Ptr))
		return e.block.NewLoad(types.I8Ptr, typed)
	default:
		typed := e.block.NewBitCast(retBuf, types.NewPointer(types.I64))
		i64 := e.block.NewLoad(types.I64, typed)
		if ef.Ret.Type == ftypes.I32 {
			return e.block.NewTrunc(i64, types.I32)
		}
		return i64
	}
}
