package sema

import (
	"fusion/ast"
	"fusion/types"
)

// checkStmt type-checks one statement (§4.5).
func (a *Analyzer) checkStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.Return:
		a.checkReturnStmt(v)
	case *ast.Let:
		a.checkLetStmt(v)
	case *ast.ExprStmt:
		a.checkExpr(v.X)
	case *ast.If:
		a.checkIfStmt(v)
	case *ast.For:
		a.checkForStmt(v)
	case *ast.Assign:
		a.checkAssignStmt(v)
	default:
		a.errorf(s, "internal: unhandled statement kind")
	}
}

func (a *Analyzer) checkReturnStmt(s *ast.Return) {
	if !a.hasExpectedReturn {
		a.errorf(s, "return outside of a function")
		return
	}

	t := types.Void
	if s.Value != nil {
		t = a.checkExpr(s.Value)
	}

	if t != a.expectedReturn {
		a.errorf(s, "return type does not match the function's declared return type")
	}
}

func (a *Analyzer) checkLetStmt(s *ast.Let) {
	if a.env.DefinedInScope(s.Name) {
		a.errorf(s, "'%s' is already defined in this scope", s.Name)
	}

	t := a.checkExpr(s.Init)
	a.env.Bind(s.Name, t)
	a.propagatePtrAnnotations(s.Name, s.Init)
}

func (a *Analyzer) checkIfStmt(s *ast.If) {
	a.checkExpr(s.Cond)

	a.env.Push()
	for _, st := range s.Then {
		a.checkStmt(st)
	}
	a.env.Pop()

	for _, elif := range s.Elifs {
		a.checkExpr(elif.Cond)
		a.env.Push()
		for _, st := range elif.Body {
			a.checkStmt(st)
		}
		a.env.Pop()
	}

	if s.HasElse {
		a.env.Push()
		for _, st := range s.Else {
			a.checkStmt(st)
		}
		a.env.Pop()
	}
}

func (a *Analyzer) checkForStmt(s *ast.For) {
	it := a.checkExpr(s.Iterable)
	if it != types.Ptr {
		a.errorf(s.Iterable, "for loop iterable must be array-valued")
	}

	elem, ok := elemTypeOf(a, s.Iterable)
	if !ok {
		elem = types.I64
	}

	a.env.Push()
	if _, exists := a.env.Lookup(s.VarName); exists {
		a.errorf(s, "loop variable '%s' shadows an outer binding", s.VarName)
	}
	a.env.Bind(s.VarName, elem)

	for _, st := range s.Body {
		a.checkStmt(st)
	}
	a.env.Pop()
}

func (a *Analyzer) checkAssignStmt(s *ast.Assign) {
	rt := a.checkExpr(s.Value)

	if s.Target.Index != nil {
		idx := s.Target.Index
		if bt := a.checkExpr(idx.Base); bt != types.Ptr {
			a.errorf(idx.Base, "index base must be a pointer")
		}
		if it := a.checkExpr(idx.Index); it != types.I64 {
			a.errorf(idx.Index, "index must be i64")
		}

		elem, ok := elemTypeOf(a, idx.Base)
		if !ok {
			elem = types.I64
		}
		if !ptrI64Compatible(elem, rt) {
			a.errorf(s, "cannot assign a value of the wrong type to this index")
		}
		return
	}

	name := s.Target.VarName
	declared, ok := a.env.Lookup(name)
	if !ok {
		a.errorf(s, "undefined symbol: '%s'", name)
		return
	}

	if !ptrI64Compatible(declared, rt) {
		a.errorf(s, "cannot assign a value of the wrong type to '%s'", name)
	}

	a.propagatePtrAnnotations(name, s.Value)
}
