// Package irgen lowers a semantically checked program into an LLVM IR
// module (§4.6), grounded on the teacher's generate.Generator but replacing
// Chai's structural type system with Fusion's six-primitive-tag/record/
// array/FFI model. It uses github.com/llir/llvm to build the module in
// memory; nothing here executes it.
package irgen

import (
	"fmt"

	"fusion/abi"
	"fusion/ast"
	"fusion/layout"
	"fusion/report"
	ftypes "fusion/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
)

// Emitter converts a resolved, type-checked Program into an *ir.Module.
type Emitter struct {
	prog    *ast.Program
	layouts layout.Map

	mod *ir.Module

	runtimeFuncs map[string]*ir.Func
	mallocFunc   *ir.Func

	userFuncs  map[string]*ir.Func
	libGlobals map[string]*ir.Global

	enclosingFunc *ir.Func
	block         *ir.Block
	scopes        []map[string]*localSlot
	retType       ftypes.Prim

	blockCounter int
}

// NewEmitter creates an Emitter for prog, using layouts for record field
// offsets (§4.4).
func NewEmitter(prog *ast.Program, layouts layout.Map) *Emitter {
	return &Emitter{
		prog:    prog,
		layouts: layouts,
	}
}

// Emit runs the full generation algorithm and returns the completed module.
// It assumes prog has already passed semantic analysis; any inconsistency
// found here is an internal invariant violation, reported via
// report.Raise("codegen", ...).
func (e *Emitter) Emit() *ir.Module {
	e.mod = ir.NewModule()
	e.runtimeFuncs = make(map[string]*ir.Func)
	e.userFuncs = make(map[string]*ir.Func)
	e.libGlobals = make(map[string]*ir.Global)

	e.declareRuntime()
	e.declareLibraries()
	e.declareUserFuncs()

	entry := e.mod.NewFunc(abi.EntryFunc, types.Void)
	entry.Linkage = enum.LinkageExternal
	entry.FuncAttrs = append(entry.FuncAttrs, enum.FuncAttrNoUnwind)

	e.enclosingFunc = entry
	e.block = entry.NewBlock("entry")
	e.retType = ftypes.Void
	e.pushScope()

	e.genLibraryLoading()

	for _, item := range e.prog.TopLevel {
		e.genTopLevelItem(item)
	}

	e.popScope()
	if e.block.Term == nil {
		e.block.NewRet(nil)
	}

	for _, fd := range e.prog.Funcs {
		e.genFuncBody(fd)
	}

	return e.mod
}

// declareRuntime emits an external declaration for every entry in §6's
// runtime ABI table, plus the host allocator used for heap allocations.
func (e *Emitter) declareRuntime() {
	for _, sig := range abi.RuntimeFunctions() {
		var params []*ir.Param
		for _, pt := range sig.ParamTypes {
			params = append(params, ir.NewParam("", llvmType(pt)))
		}

		fn := e.mod.NewFunc(sig.Name, llvmType(sig.ReturnType), params...)
		fn.Linkage = enum.LinkageExternal
		if sig.NoReturn {
			fn.FuncAttrs = append(fn.FuncAttrs, enum.FuncAttrNoReturn)
		}
		e.runtimeFuncs[sig.Name] = fn
	}

	e.mallocFunc = e.mod.NewFunc("malloc", types.I8Ptr, ir.NewParam("", types.I64))
	e.mallocFunc.Linkage = enum.LinkageExternal
}

// declareLibraries materializes one process-wide handle cell per declared
// external library, initialized to null (§4.6's "per-library state").
func (e *Emitter) declareLibraries() {
	for _, lib := range e.prog.Libraries {
		glob := e.mod.NewGlobalDef(lib.Name+"$handle", constant.NewNull(types.I8Ptr))
		e.libGlobals[lib.Name] = glob
	}
}

// declareUserFuncs forward-declares every user function's signature so
// calls can reference functions regardless of textual order.
func (e *Emitter) declareUserFuncs() {
	for _, fd := range e.prog.Funcs {
		params := make([]*ir.Param, len(fd.Params))
		for i, p := range fd.Params {
			params[i] = ir.NewParam(p.Name, convType(p.Type))
		}

		fn := e.mod.NewFunc(fd.Name, convType(fd.Ret.Type), params...)
		if fd.Export {
			fn.Linkage = enum.LinkageExternal
		} else {
			fn.Linkage = enum.LinkageInternal
		}
		fn.FuncAttrs = append(fn.FuncAttrs, enum.FuncAttrNoUnwind)

		e.userFuncs[fd.Name] = fn
	}
}

// genLibraryLoading emits the entry function's library-loading prologue:
// open every declared library, storing its handle, panicking with the
// runtime's last dynamic-loader error on failure (§4.6).
func (e *Emitter) genLibraryLoading() {
	for _, lib := range e.prog.Libraries {
		pathPtr := e.genStackCString(lib.Path)
		handle := e.block.NewCall(e.runtimeFuncs[abi.FnDlopen], pathPtr)
		e.block.NewStore(handle, e.libGlobals[lib.Name])

		okBlock := e.enclosingFunc.NewBlock(e.blockName("lib.ok"))
		failBlock := e.enclosingFunc.NewBlock(e.blockName("lib.fail"))
		isNull := e.block.NewICmp(enum.IPredEQ, e.block.NewPtrToInt(handle, types.I64), constant.NewInt(types.I64, 0))
		e.block.NewCondBr(isNull, failBlock, okBlock)

		e.block = failBlock
		e.emitPanicFromRuntime(abi.FnDlerrorLast)

		e.block = okBlock
	}
}

// convType maps a primitive tag to its LLVM type. Every Ptr value is
// represented uniformly as i8* (§4.6: "independent of the backend's
// encoding of types beyond the six primitives and one pointer type");
// record and array layouts are realized by hand with byte offsets instead
// of LLVM struct types.
func convType(p ftypes.Prim) types.Type {
	switch p {
	case ftypes.I32:
		return types.I32
	case ftypes.I64:
		return types.I64
	case ftypes.F32:
		return types.Float
	case ftypes.F64:
		return types.Double
	case ftypes.Ptr:
		return types.I8Ptr
	default:
		return types.Void
	}
}

// llvmType maps one of abi's LLVM type spellings to the concrete llir type.
func llvmType(s string) types.Type {
	switch s {
	case abi.LLVMI32:
		return types.I32
	case abi.LLVMI64:
		return types.I64
	case abi.LLVMF32:
		return types.Float
	case abi.LLVMF64:
		return types.Double
	case abi.LLVMPtr:
		return types.I8Ptr
	default:
		return types.Void
	}
}

// blockName returns a fresh, module-unique basic block label.
func (e *Emitter) blockName(prefix string) string {
	e.blockCounter++
	return fmt.Sprintf("%s.%d", prefix, e.blockCounter)
}

func internalError(format string, args ...any) {
	report.Raise("codegen", "", nil, "internal: "+format, args...)
}
