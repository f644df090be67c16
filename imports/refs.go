package imports

import "fusion/ast"

// builtinNames is every callee name the parser or semantic analyzer treats
// specially rather than as a reference to a declared function (§4.2's
// built-in call forms plus the runtime built-ins of §4.5).
var builtinNames = map[string]bool{
	"alloc": true, "alloc_array": true, "alloc_bytes": true,
	"addr_of": true, "load": true, "load_i32": true, "load_f64": true,
	"load_ptr": true, "store": true, "load_field": true, "store_field": true,
	"range": true, "from_str": true, "get_func_ptr": true, "call": true,
	"print": true, "read_line": true, "to_str": true,
	"open": true, "close": true, "read_line_file": true,
	"write_file": true, "eof_file": true, "line_count_file": true,
}

// collectFuncRefs walks body and returns every name that could denote a
// direct call or a get_func_ptr reference to a user or external function
// (§4.3 step 8). Names may repeat and may not actually resolve to a
// function; the caller filters against the library's own function table.
func collectFuncRefs(body []ast.Stmt) []string {
	var out []string
	for _, s := range body {
		collectStmtRefs(s, &out)
	}
	return out
}

func collectStmtRefs(s ast.Stmt, out *[]string) {
	switch v := s.(type) {
	case *ast.Return:
		collectExprRefs(v.Value, out)
	case *ast.Let:
		collectExprRefs(v.Init, out)
	case *ast.ExprStmt:
		collectExprRefs(v.X, out)
	case *ast.If:
		collectExprRefs(v.Cond, out)
		for _, st := range v.Then {
			collectStmtRefs(st, out)
		}
		for _, elif := range v.Elifs {
			collectExprRefs(elif.Cond, out)
			for _, st := range elif.Body {
				collectStmtRefs(st, out)
			}
		}
		for _, st := range v.Else {
			collectStmtRefs(st, out)
		}
	case *ast.For:
		collectExprRefs(v.Iterable, out)
		for _, st := range v.Body {
			collectStmtRefs(st, out)
		}
	case *ast.Assign:
		if v.Target.Index != nil {
			collectExprRefs(v.Target.Index, out)
		}
		collectExprRefs(v.Value, out)
	}
}

func collectExprRefs(e ast.Expr, out *[]string) {
	if e == nil {
		return
	}

	switch v := e.(type) {
	case *ast.BinOp:
		collectExprRefs(v.Lhs, out)
		collectExprRefs(v.Rhs, out)
	case *ast.Call:
		if v.FuncName != "" {
			*out = append(*out, v.FuncName)
		}
		if !builtinNames[v.Callee] {
			*out = append(*out, v.Callee)
		}
		for _, a := range v.Args {
			collectExprRefs(a, out)
		}
	case *ast.Alloc:
		collectExprRefs(v.CountExpr, out)
		collectExprRefs(v.SizeExpr, out)
	case *ast.Load:
		collectExprRefs(v.Ptr, out)
	case *ast.Store:
		collectExprRefs(v.Ptr, out)
		collectExprRefs(v.Value, out)
	case *ast.FieldLoad:
		collectExprRefs(v.Base, out)
	case *ast.FieldStore:
		collectExprRefs(v.Base, out)
		collectExprRefs(v.Value, out)
	case *ast.Index:
		collectExprRefs(v.Base, out)
		collectExprRefs(v.Index, out)
	case *ast.Cast:
		collectExprRefs(v.Src, out)
	}
}
