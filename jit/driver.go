// Package jit implements the ahead-of-JIT execution path (§4.7): it takes
// the in-memory module irgen built, hands it to LLVM's MCJIT compiler, binds
// every runtime entry point the compiled code can call, and runs it.
//
// This is grounded on the teacher's llc bindings (adapted in the llc
// package here to add the execution-engine and target pieces the teacher's
// own ahead-of-time object-file pipeline never needed) rather than on any
// pure-Go interpreter — running compiled native code is the whole point of
// an ahead-of-JIT compiler.
package jit

import (
	"fmt"

	"fusion/abi"
	"fusion/llc"

	"github.com/llir/llvm/ir"
)

// Run verifies mod, JIT-compiles it, binds the runtime, and calls its entry
// function. It returns once the entry function returns; a runtime panic
// inside the compiled code terminates the process directly (§6), so Run
// never observes it as a Go error.
func Run(mod *ir.Module) error {
	ctx := llc.NewContext()
	defer ctx.Dispose()

	lmod, err := ctx.NewModuleFromIR(mod.String())
	if err != nil {
		return fmt.Errorf("failed to parse generated IR: %w", err)
	}

	if err := lmod.Verify(); err != nil {
		return fmt.Errorf("generated module failed verification: %w", err)
	}

	ee, err := llc.NewExecutionEngine(lmod)
	if err != nil {
		return err
	}
	defer ee.Dispose()

	for _, sig := range abi.RuntimeFunctions() {
		if err := ee.BindSymbol(lmod, sig.Name); err != nil {
			return fmt.Errorf("unresolved runtime entry: %w", err)
		}
	}
	if err := ee.BindSymbol(lmod, "malloc"); err != nil {
		return fmt.Errorf("unresolved runtime entry: %w", err)
	}

	entry, err := ee.EntryAddress(lmod, abi.EntryFunc)
	if err != nil {
		return err
	}

	llc.CallVoidFunc(entry)
	return nil
}
