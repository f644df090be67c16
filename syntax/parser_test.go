package syntax

import (
	"testing"

	"fusion/ast"
	"fusion/types"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := NewParser("test.fus", src).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return prog
}

func TestParseFuncDef(t *testing.T) {
	prog := mustParse(t, `
		fn add(a: i64, b: i64) -> i64 {
			return a + b;
		}
	`)

	if len(prog.Funcs) != 1 {
		t.Fatalf("got %d funcs, want 1", len(prog.Funcs))
	}

	fd := prog.Funcs[0]
	if fd.Name != "add" {
		t.Errorf("Name = %q, want %q", fd.Name, "add")
	}
	if len(fd.Params) != 2 || fd.Params[0].Type != types.I64 || fd.Params[1].Type != types.I64 {
		t.Errorf("Params = %+v, want two i64 params", fd.Params)
	}
	if fd.Ret.Type != types.I64 {
		t.Errorf("Ret.Type = %v, want I64", fd.Ret.Type)
	}
	if len(fd.Body) != 1 {
		t.Fatalf("got %d body stmts, want 1", len(fd.Body))
	}

	ret, ok := fd.Body[0].(*ast.Return)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.Return", fd.Body[0])
	}
	bin, ok := ret.Value.(*ast.BinOp)
	if !ok || bin.Op != ast.Add {
		t.Fatalf("return value is %+v, want an Add BinOp", ret.Value)
	}
}

func TestParseStructDef(t *testing.T) {
	prog := mustParse(t, `
		struct Point {
			x: i64;
			y: i64;
		};
	`)

	if len(prog.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(prog.Records))
	}
	if prog.Records[0].Name != "Point" {
		t.Errorf("Name = %q, want %q", prog.Records[0].Name, "Point")
	}
	if len(prog.Records[0].Fields) != 2 {
		t.Errorf("got %d fields, want 2", len(prog.Records[0].Fields))
	}
}

func TestParseTopLevelLetAndIf(t *testing.T) {
	prog := mustParse(t, `
		let x = 1;
		if (x == 1) {
			let y = 2;
		} else {
			let y = 3;
		}
	`)

	if len(prog.TopLevel) != 2 {
		t.Fatalf("got %d top-level items, want 2", len(prog.TopLevel))
	}
	if prog.TopLevel[0].Kind != ast.TopLevelLet {
		t.Errorf("item 0 kind = %v, want TopLevelLet", prog.TopLevel[0].Kind)
	}
	if prog.TopLevel[1].Kind != ast.TopLevelStmt {
		t.Errorf("item 1 kind = %v, want TopLevelStmt", prog.TopLevel[1].Kind)
	}

	ifStmt, ok := prog.TopLevel[1].Stmt.(*ast.If)
	if !ok {
		t.Fatalf("item 1 stmt is %T, want *ast.If", prog.TopLevel[1].Stmt)
	}
	if len(ifStmt.Else) != 1 {
		t.Errorf("got %d else stmts, want 1", len(ifStmt.Else))
	}
}

func TestParseExternLib(t *testing.T) {
	prog := mustParse(t, `
		extern lib "libm.so" {
			fn sqrt(x: f64) -> f64;
		};
	`)

	if len(prog.Libraries) != 1 {
		t.Fatalf("got %d libraries, want 1", len(prog.Libraries))
	}
	if len(prog.Externs) != 1 || prog.Externs[0].Name != "sqrt" {
		t.Fatalf("Externs = %+v, want a single 'sqrt' extern", prog.Externs)
	}
}

func TestParseErrorOnMalformedInput(t *testing.T) {
	_, err := NewParser("test.fus", `fn ( -> i64 { }`).Parse()
	if err == nil {
		t.Fatal("expected a parse error for malformed input, got nil")
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, `let x = 1 + 2 * 3;`)

	let := prog.TopLevel[0].Let
	bin, ok := let.Init.(*ast.BinOp)
	if !ok || bin.Op != ast.Add {
		t.Fatalf("top-level BinOp is %+v, want Add at the root", let.Init)
	}

	rhs, ok := bin.Rhs.(*ast.BinOp)
	if !ok || rhs.Op != ast.Mul {
		t.Fatalf("rhs is %+v, want a Mul BinOp (multiplication binds tighter)", bin.Rhs)
	}
}

func TestParseCastBindsLooserThanBinaryOps(t *testing.T) {
	prog := mustParse(t, `let x = a + b as i64;`)

	let := prog.TopLevel[0].Let
	cast, ok := let.Init.(*ast.Cast)
	if !ok || cast.Target != types.I64 {
		t.Fatalf("top-level expr is %+v, want a Cast to i64 wrapping the whole addition", let.Init)
	}

	if _, ok := cast.Src.(*ast.BinOp); !ok {
		t.Fatalf("cast source is %+v, want the Add BinOp 'a + b'", cast.Src)
	}
}
