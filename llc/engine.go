package llc

/*
#cgo LDFLAGS: -ldl
#include <stdlib.h>
#include <dlfcn.h>
#include "llvm-c/Core.h"
#include "llvm-c/ExecutionEngine.h"
#include "llvm-c/Target.h"

typedef void (*fusion_entry_fn)(void);

static void fusion_call_entry(void *fn) {
	((fusion_entry_fn)fn)();
}
*/
import "C"
import (
	"errors"
	"fmt"
	"unsafe"
)

// ExecutionEngine is an LLVM MCJIT engine bound to one module.
type ExecutionEngine struct {
	c C.LLVMExecutionEngineRef
}

// NewExecutionEngine builds an MCJIT execution engine over mod. mod must not
// be used again directly afterward — the engine takes ownership of it, per
// the underlying LLVMCreateMCJITCompilerForModule contract.
func NewExecutionEngine(mod *Module) (*ExecutionEngine, error) {
	C.LLVMLinkInMCJIT()

	var opts C.struct_LLVMMCJITCompilerOptions
	C.LLVMInitializeMCJITCompilerOptions(byref(&opts), C.size_t(unsafe.Sizeof(opts)))
	opts.OptLevel = 0

	var ee C.LLVMExecutionEngineRef
	var cerr *C.char
	if C.LLVMCreateMCJITCompilerForModule(byref(&ee), mod.c, byref(&opts), C.size_t(unsafe.Sizeof(opts)), byref(&cerr)) != 0 {
		msg := C.GoString(cerr)
		C.LLVMDisposeMessage(cerr)
		return nil, fmt.Errorf("failed to create JIT engine: %s", msg)
	}

	return &ExecutionEngine{c: ee}, nil
}

// Dispose releases the engine and every module bound to it.
func (ee *ExecutionEngine) Dispose() {
	C.LLVMDisposeExecutionEngine(ee.c)
}

// BindSymbol resolves name against the running process's own dynamic symbol
// table and maps it into the engine as the definition of the module-level
// declaration named name, so calls the JIT'd code makes to it land on the
// Go process's own cgo-exported runtime function (§4.7's "process-rooted
// symbol resolver", §6). It fails if either the process has no such symbol
// or the module has no matching declaration to bind it to.
func (ee *ExecutionEngine) BindSymbol(mod *Module, name string) error {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	addr := C.dlsym(nil, cname)
	if addr == nil {
		return fmt.Errorf("runtime symbol %q is not linked into this process", name)
	}

	global := C.LLVMGetNamedFunction(mod.c, cname)
	if global == nil {
		return fmt.Errorf("module has no declaration for runtime symbol %q", name)
	}

	C.LLVMAddGlobalMapping(ee.c, global, addr)
	return nil
}

// EntryAddress returns the native address of name, the module's compiled
// entry function, or an error if the module has no such function.
func (ee *ExecutionEngine) EntryAddress(mod *Module, name string) (uintptr, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	fn := C.LLVMGetNamedFunction(mod.c, cname)
	if fn == nil {
		return 0, errors.New("module has no entry function named " + name)
	}

	addr := C.LLVMGetFunctionAddress(ee.c, cname)
	if addr == 0 {
		return 0, errors.New("failed to JIT-compile entry function " + name)
	}

	return uintptr(addr), nil
}

// CallVoidFunc invokes a compiled void(void) function at addr. This is the
// only call shape the driver ever needs: fusion_main takes no arguments and
// returns nothing (§4.7).
func CallVoidFunc(addr uintptr) {
	C.fusion_call_entry(unsafe.Pointer(addr))
}
