package sema

import (
	"testing"

	"fusion/layout"
	"fusion/report"
	"fusion/syntax"
)

// analyze parses src and runs the analyzer over it, returning whether
// analysis succeeded.
func analyze(t *testing.T, src string) bool {
	t.Helper()

	report.InitReporter(report.LogLevelSilent)

	prog, err := syntax.NewParser("test.fus", src).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	layouts := layout.Build(prog.Records)
	return NewAnalyzer("test.fus", prog, layouts).Analyze()
}

func TestAnalyzeValidProgram(t *testing.T) {
	ok := analyze(t, `
		fn add(a: i64, b: i64) -> i64 {
			return a + b;
		}

		let x = add(1, 2);
	`)
	if !ok {
		t.Fatal("expected valid program to pass analysis")
	}
}

func TestAnalyzeUndefinedSymbol(t *testing.T) {
	ok := analyze(t, `let x = y + 1;`)
	if ok {
		t.Fatal("expected undefined-symbol reference to fail analysis")
	}
}

func TestAnalyzeReturnTypeMismatchRejected(t *testing.T) {
	ok := analyze(t, `
		fn f() -> i64 {
			return 1.5;
		}
	`)
	if ok {
		t.Fatal("expected a float return from an i64 function to fail analysis")
	}
}

func TestAnalyzeArityMismatchRejected(t *testing.T) {
	ok := analyze(t, `
		fn add(a: i64, b: i64) -> i64 {
			return a + b;
		}

		let x = add(1);
	`)
	if ok {
		t.Fatal("expected a call with the wrong argument count to fail analysis")
	}
}

func TestAnalyzeRecordFieldAccess(t *testing.T) {
	ok := analyze(t, `
		struct Point {
			x: i64;
			y: i64;
		};

		fn make() -> ptr {
			let p = alloc(Point);
			store_field(p, Point, x, 1);
			store_field(p, Point, y, 2);
			return p;
		}
	`)
	if !ok {
		t.Fatal("expected record field store to pass analysis")
	}
}

func TestAnalyzeShadowingInSameScopeRejected(t *testing.T) {
	ok := analyze(t, `
		fn f() -> void {
			let x = 1;
			let x = 2;
			return;
		}
	`)
	if ok {
		t.Fatal("expected redeclaring x in the same scope to fail analysis")
	}
}

func TestAnalyzeIndirectCallThroughRecordField(t *testing.T) {
	ok := analyze(t, `
		struct Op {
			func: ptr;
			x: f64;
			y: f64;
		};

		fn add(x: f64, y: f64) -> f64 {
			return x + y;
		}

		let op = alloc(Op);
		store_field(op, Op, func, get_func_ptr(add));
		store_field(op, Op, x, 3.0);
		store_field(op, Op, y, 4.0);
		print(call(load_field(op, Op, func),
			load_field(op, Op, x),
			load_field(op, Op, y)));
	`)
	if !ok {
		t.Fatal("expected an indirect call through a function pointer stored in a record field to pass analysis")
	}
}

func TestLookupCalleeSig(t *testing.T) {
	prog, err := syntax.NewParser("test.fus", `
		fn f(a: i64) -> i64 {
			return a;
		}
	`).Parse()
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	a := NewAnalyzer("test.fus", prog, layout.Build(prog.Records))
	sig, ok := a.lookupCalleeSig("f")
	if !ok {
		t.Fatal("expected lookupCalleeSig to find 'f'")
	}
	if len(sig.Params) != 1 {
		t.Errorf("got %d params, want 1", len(sig.Params))
	}

	if _, ok := a.lookupCalleeSig("nonexistent"); ok {
		t.Error("expected lookupCalleeSig to fail for an unknown name")
	}
}
