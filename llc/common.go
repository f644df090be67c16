// Package llc wraps the pieces of LLVM's C API the JIT driver needs: a
// context, a module parsed from IR text, target initialization, and (in
// engine.go) an MCJIT execution engine. It is not a general LLVM binding —
// only what the driver calls is exposed.
package llc

/*
#include "llvm-c/Core.h"
#include "llvm-c/Initialization.h"
*/
import "C"
import "unsafe"

// OwnedObject is an LLVM object that must be explicitly disposed.
type OwnedObject interface {
	dispose()
}

// Context is an LLVM context: the arena every module, type, and value
// created through it belongs to.
type Context struct {
	c C.LLVMContextRef

	ownedObjects []OwnedObject
}

// NewContext creates a fresh LLVM context.
func NewContext() *Context {
	return &Context{c: C.LLVMContextCreate()}
}

func (c *Context) takeOwnership(obj OwnedObject) {
	c.ownedObjects = append(c.ownedObjects, obj)
}

// Dispose frees the context and every object it took ownership of.
func (c *Context) Dispose() {
	for _, obj := range c.ownedObjects {
		obj.dispose()
	}

	C.LLVMContextDispose(c.c)
}

// byref passes a Go value by reference to C.
func byref[T any](v *T) *T {
	return (*T)(unsafe.Pointer(v))
}

func init() {
	pr := C.LLVMGetGlobalPassRegistry()
	C.LLVMInitializeCore(pr)
	C.LLVMInitializeAnalysis(pr)
	C.LLVMInitializeCodeGen(pr)
	C.LLVMInitializeTarget(pr)

	initializeAllTargets()
}
