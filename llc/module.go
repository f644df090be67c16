package llc

/*
#include <stdlib.h>
#include "llvm-c/Core.h"
#include "llvm-c/Analysis.h"
#include "llvm-c/IRReader.h"
*/
import "C"

import (
	"errors"
)

// Module is an LLVM module parsed from IR text. The emitter never talks to
// llc directly: it builds the module with github.com/llir/llvm, renders it
// to text, and the driver hands that text here to get something an
// execution engine can run.
type Module struct {
	c    C.LLVMModuleRef
	mctx C.LLVMContextRef
}

// NewModuleFromIR parses irString into a module owned by ctx.
func (ctx *Context) NewModuleFromIR(irString string) (*Module, error) {
	cir := C.CString(irString)

	memBuff := C.LLVMCreateMemoryBufferWithMemoryRange(
		cir,
		(C.size_t)(len(irString)),
		nil,
		0,
	)
	defer C.LLVMDisposeMemoryBuffer(memBuff)

	var modPtr C.LLVMModuleRef
	var msg *C.char
	if C.LLVMParseIRInContext(ctx.c, memBuff, byref(&modPtr), byref(&msg)) == 0 {
		return &Module{c: modPtr, mctx: ctx.c}, nil
	}

	defer C.LLVMDisposeMessage(msg)
	return nil, errors.New(C.GoString(msg))
}

func (m Module) dispose() {
	C.LLVMDisposeModule(m.c)
}

// Dump prints the module's IR to standard error, for driver diagnostics.
func (m Module) Dump() {
	C.LLVMDumpModule(m.c)
}

// Verify checks that the module is well-formed before it is handed to the
// execution engine (§4.7's "verify the module's structure").
func (m Module) Verify() error {
	var cmsg *C.char

	if C.LLVMVerifyModule(m.c, C.LLVMReturnStatusAction, byref(&cmsg)) == 1 {
		msg := C.GoString(cmsg)
		C.LLVMDisposeMessage(cmsg)

		return errors.New(msg)
	}

	return nil
}
