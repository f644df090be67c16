// Package sema implements the Fusion semantic analyzer (§4.5): it walks a
// fully import-resolved program tree, type-checks every expression and
// statement, and annotates function-pointer calls of unknown signature in
// place.
package sema

import (
	"fusion/ast"
	"fusion/layout"
	"fusion/report"
	"fusion/types"
)

// Analyzer owns the global tables and scope state described in §4.5: a map
// from external-function name to declaration, a map from user-function
// name to definition, the record layout map, the three parallel scope
// stacks (held together in a types.Env), and the currently expected return
// type.
type Analyzer struct {
	filePath string
	prog     *ast.Program
	layouts  layout.Map

	externs map[string]*ast.ExternFunc
	funcs   map[string]*ast.FuncDef

	env *types.Env

	// fieldFuncSigs remembers the signature of a function pointer stored
	// into a record field via store_field, keyed by "Struct.field", so a
	// later load_field of the same slot can recover it for an indirect call
	// (§4.5's function-pointer state machine, extended to record fields).
	fieldFuncSigs map[string]types.Sig

	expectedReturn    types.Prim
	hasExpectedReturn bool
}

// NewAnalyzer builds an analyzer for a fully resolved program.
func NewAnalyzer(filePath string, prog *ast.Program, layouts layout.Map) *Analyzer {
	a := &Analyzer{
		filePath:      filePath,
		prog:          prog,
		layouts:       layouts,
		externs:       make(map[string]*ast.ExternFunc),
		funcs:         make(map[string]*ast.FuncDef),
		env:           types.NewEnv(),
		fieldFuncSigs: make(map[string]types.Sig),
	}

	for _, ef := range prog.Externs {
		a.externs[ef.Name] = ef
	}
	for _, fd := range prog.Funcs {
		a.funcs[fd.Name] = fd
	}

	return a
}

// Analyze runs the full pass. It reports the first error encountered
// (§4.5's "first error wins") and returns whether analysis succeeded.
func (a *Analyzer) Analyze() (ok bool) {
	ok = true
	defer func() {
		if x := recover(); x != nil {
			if ce, ok2 := x.(*report.CompileError); ok2 {
				report.ReportCompileError(ce)
				ok = false
				return
			}
			panic(x)
		}
	}()

	for _, fd := range a.prog.Funcs {
		a.checkFuncDef(fd)
	}

	a.checkTopLevel()

	return ok
}

// checkFuncDef type-checks one user function body in a fresh scope seeded
// with its parameters.
func (a *Analyzer) checkFuncDef(fd *ast.FuncDef) {
	a.env.Push()
	defer a.env.Pop()

	for _, p := range fd.Params {
		a.env.Bind(p.Name, p.Type)
	}

	prevExpected, prevHas := a.expectedReturn, a.hasExpectedReturn
	a.expectedReturn, a.hasExpectedReturn = fd.Ret.Type, true
	defer func() { a.expectedReturn, a.hasExpectedReturn = prevExpected, prevHas }()

	for _, s := range fd.Body {
		a.checkStmt(s)
	}
}

// checkTopLevel type-checks the program-scope statements and expressions
// (§3) in program order, sharing one top-level scope for the whole file.
func (a *Analyzer) checkTopLevel() {
	a.env.Push()
	defer a.env.Pop()

	for _, item := range a.prog.TopLevel {
		switch item.Kind {
		case ast.TopLevelLet:
			a.checkStmt(item.Let)
		case ast.TopLevelStmt:
			a.checkStmt(item.Stmt)
		case ast.TopLevelExpr:
			a.checkExpr(item.Expr)
		}
	}
}

// -----------------------------------------------------------------------------
// diagnostics and lookup helpers

func (a *Analyzer) errorf(n ast.Node, format string, args ...any) {
	report.Raise("semantic", a.filePath, n.Position(), format, args...)
}

// fieldSigKey builds the fieldFuncSigs lookup key for one record field.
func fieldSigKey(structName, fieldName string) string {
	return structName + "." + fieldName
}

// lookupCalleeSig resolves a plain call target to its signature among user
// and external functions.
func (a *Analyzer) lookupCalleeSig(name string) (types.Sig, bool) {
	if fd, ok := a.funcs[name]; ok {
		return fd.Sig(), true
	}
	if ef, ok := a.externs[name]; ok {
		return ef.Sig(), true
	}
	return types.Sig{}, false
}
