package irgen

import (
	"fusion/abi"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genStackCString allocates s (plus a trailing NUL) on the enclosing
// function's entry block and returns it as i8*. Every string, whether a
// source literal or a runtime diagnostic message, goes through this path
// rather than a module-level constant, avoiding reliance on the backend's
// global-constant emission (§4.6).
func (e *Emitter) genStackCString(s string) value.Value {
	data := append([]byte(s), 0)
	arrType := types.NewArray(uint64(len(data)), types.I8)

	elems := make([]constant.Constant, len(data))
	for i, b := range data {
		elems[i] = constant.NewInt(types.I8, int64(b))
	}
	arrConst := constant.NewArray(arrType, elems...)

	slot := e.enclosingFunc.Blocks[0].NewAlloca(arrType)
	e.block.NewStore(arrConst, slot)
	return e.block.NewBitCast(slot, types.I8Ptr)
}

// computeElemAddr computes base + 8 + idx*elemSize as an i8* (§4.6's array
// layout: an 8-byte length prefix followed by contiguous elements).
func (e *Emitter) computeElemAddr(base, idx value.Value, elemSize int) value.Value {
	scaled := e.block.NewMul(idx, constant.NewInt(types.I64, int64(elemSize)))
	offset := e.block.NewAdd(scaled, constant.NewInt(types.I64, 8))
	return e.block.NewGetElementPtr(types.I8, base, offset)
}

// emitBoundsCheck panics with "index out of bounds" unless 0 <= idx <
// length, where length is read from base's offset-0 length prefix (§4.6).
func (e *Emitter) emitBoundsCheck(base, idx value.Value) {
	lenPtr := e.block.NewBitCast(base, types.NewPointer(types.I64))
	length := e.block.NewLoad(types.I64, lenPtr)

	geZero := e.block.NewICmp(enum.IPredSGE, idx, constant.NewInt(types.I64, 0))
	ltLen := e.block.NewICmp(enum.IPredSLT, idx, length)
	ok := e.block.NewAnd(geZero, ltLen)

	okBlock := e.enclosingFunc.NewBlock(e.blockName("bounds.ok"))
	failBlock := e.enclosingFunc.NewBlock(e.blockName("bounds.fail"))
	e.block.NewCondBr(ok, okBlock, failBlock)

	e.block = failBlock
	e.emitPanicLiteral("index out of bounds")

	e.block = okBlock
}

// emitPanicLiteral calls the runtime's panic-and-abort with a fixed message
// and terminates the current block as unreachable.
func (e *Emitter) emitPanicLiteral(msg string) {
	ptr := e.genStackCString(msg)
	e.block.NewCall(e.runtimeFuncs[abi.FnPanic], ptr)
	e.block.NewUnreachable()
}

// emitPanicFromRuntime calls the named zero-argument runtime "last error"
// getter and forwards its result to the runtime's panic-and-abort.
func (e *Emitter) emitPanicFromRuntime(getter string) {
	msg := e.block.NewCall(e.runtimeFuncs[getter])
	e.block.NewCall(e.runtimeFuncs[abi.FnPanic], msg)
	e.block.NewUnreachable()
}

// emitNullCheck branches to a panic block with msg when ptr is the null
// pointer, otherwise continues in a fresh "ok" block which becomes current.
func (e *Emitter) emitNullCheck(ptr value.Value, msg string) {
	isNull := e.block.NewICmp(enum.IPredEQ, e.block.NewPtrToInt(ptr, types.I64), constant.NewInt(types.I64, 0))

	okBlock := e.enclosingFunc.NewBlock(e.blockName("nullchk.ok"))
	failBlock := e.enclosingFunc.NewBlock(e.blockName("nullchk.fail"))
	e.block.NewCondBr(isNull, failBlock, okBlock)

	e.block = failBlock
	e.emitPanicLiteral(msg)

	e.block = okBlock
}

// emitNullCheckRuntime is emitNullCheck but panics with a runtime-sourced
// message instead of a fixed literal.
func (e *Emitter) emitNullCheckRuntime(ptr value.Value, getter string) {
	isNull := e.block.NewICmp(enum.IPredEQ, e.block.NewPtrToInt(ptr, types.I64), constant.NewInt(types.I64, 0))

	okBlock := e.enclosingFunc.NewBlock(e.blockName("nullchk.ok"))
	failBlock := e.enclosingFunc.NewBlock(e.blockName("nullchk.fail"))
	e.block.NewCondBr(isNull, failBlock, okBlock)

	e.block = failBlock
	e.emitPanicFromRuntime(getter)

	e.block = okBlock
}
