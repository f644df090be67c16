package irgen

import (
	"strings"
	"testing"

	"fusion/abi"
	"fusion/layout"
	"fusion/report"
	"fusion/sema"
	"fusion/syntax"

	"github.com/llir/llvm/ir"
)

// emit parses, checks and emits src, failing the test if parsing or
// checking fails.
func emit(t *testing.T, src string) string {
	t.Helper()
	return emitModule(t, src).String()
}

// emitModule is like emit but returns the raw *ir.Module for tests that need
// to inspect its structure rather than its printed text.
func emitModule(t *testing.T, src string) *ir.Module {
	t.Helper()

	report.InitReporter(report.LogLevelSilent)

	prog, err := syntax.NewParser("test.fus", src).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	layouts := layout.Build(prog.Records)
	if !sema.NewAnalyzer("test.fus", prog, layouts).Analyze() {
		t.Fatal("semantic analysis failed")
	}

	return NewEmitter(prog, layouts).Emit()
}

func TestEmitDeclaresEntryPoint(t *testing.T) {
	ir := emit(t, `let x = 1;`)

	if !strings.Contains(ir, "define") || !strings.Contains(ir, abi.EntryFunc) {
		t.Errorf("expected module to define %q, got:\n%s", abi.EntryFunc, ir)
	}
}

func TestEmitDeclaresRuntimeFunctions(t *testing.T) {
	ir := emit(t, `let x = 1;`)

	for _, name := range []string{abi.FnPrintI64, abi.FnPanic, abi.FnDlopen} {
		if !strings.Contains(ir, name) {
			t.Errorf("expected module to declare runtime function %q, got:\n%s", name, ir)
		}
	}
}

func TestEmitUserFuncLinkage(t *testing.T) {
	ir := emit(t, `
		export fn pub(a: i64) -> i64 {
			return a;
		}

		fn priv(a: i64) -> i64 {
			return a;
		}
	`)

	if !strings.Contains(ir, "define i64 @pub(") && !strings.Contains(ir, "@pub") {
		t.Errorf("expected exported function 'pub' to be defined, got:\n%s", ir)
	}
	if !strings.Contains(ir, "internal") || !strings.Contains(ir, "@priv") {
		t.Errorf("expected unexported function 'priv' to carry internal linkage, got:\n%s", ir)
	}
}

func TestEmitLibraryHandleGlobal(t *testing.T) {
	ir := emit(t, `
		extern lib "libm.so" {
			fn sqrt(x: f64) -> f64;
		};

		fn use_sqrt() -> f64 {
			return sqrt(4.0);
		}
	`)

	if !strings.Contains(ir, "$handle") {
		t.Errorf("expected a library handle global in emitted IR, got:\n%s", ir)
	}
	if !strings.Contains(ir, abi.FnDlerrorLast) {
		t.Errorf("expected the library-load failure path to reference %q, got:\n%s", abi.FnDlerrorLast, ir)
	}
}

// assertAllBlocksTerminated fails t if any basic block in mod lacks a
// terminator instruction, which would make the module fail LLVM's verifier.
func assertAllBlocksTerminated(t *testing.T, mod *ir.Module) {
	t.Helper()

	for fi, fn := range mod.Funcs {
		for bi, block := range fn.Blocks {
			if block.Term == nil {
				t.Errorf("function #%d has an unterminated block (index %d)", fi, bi)
			}
		}
	}
}

func TestEmitFuncEndingInIfIsTerminated(t *testing.T) {
	mod := emitModule(t, `
		fn sign(x: i64) -> i64 {
			if (x > 0) {
				return 1;
			} elif (x < 0) {
				return 99;
			} else {
				return 0;
			}
		}

		print(sign(5));
	`)

	assertAllBlocksTerminated(t, mod)
}

func TestEmitEntryEndingInIfIsTerminated(t *testing.T) {
	mod := emitModule(t, `
		let x = 1;
		if (x == 1) {
			print(1);
		}
	`)

	assertAllBlocksTerminated(t, mod)
}
