package ast

// TopLevelItemKind enumerates the three top-level item shapes (§3).
type TopLevelItemKind int

const (
	TopLevelLet TopLevelItemKind = iota
	TopLevelStmt
	TopLevelExpr
)

// TopLevelItem is a let binding, a statement, or an expression at program
// scope, executed in declaration order by the implicit entry point (§3).
type TopLevelItem struct {
	Kind TopLevelItemKind
	Let  *Let
	Stmt Stmt
	Expr Expr
}

// Program is the fully parsed (and, after import resolution, fully merged)
// source program (§3).
type Program struct {
	Opaques   []*OpaqueType
	Records   []*RecordDef
	Libraries []*ExternLibrary
	Externs   []*ExternFunc
	Funcs     []*FuncDef
	TopLevel  []TopLevelItem

	// Imports lists the raw import requests found in the main file, in
	// source order; consumed by the import resolver and left populated
	// afterward only for diagnostics.
	Imports []*ImportRequest
}

// FindRecord looks up a record definition by name.
func (p *Program) FindRecord(name string) (*RecordDef, bool) {
	for _, r := range p.Records {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// FindOpaque looks up an opaque type by name.
func (p *Program) FindOpaque(name string) (*OpaqueType, bool) {
	for _, o := range p.Opaques {
		if o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// FindLibrary looks up a library by its internal name.
func (p *Program) FindLibrary(name string) (*ExternLibrary, bool) {
	for _, l := range p.Libraries {
		if l.Name == name {
			return l, true
		}
	}
	return nil, false
}

// FindLibraryByPath looks up a library by its dynamic-loader path.
func (p *Program) FindLibraryByPath(path string) (*ExternLibrary, bool) {
	for _, l := range p.Libraries {
		if l.Path == path {
			return l, true
		}
	}
	return nil, false
}

// FindExtern looks up an external function declaration by name.
func (p *Program) FindExtern(name string) (*ExternFunc, bool) {
	for _, f := range p.Externs {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FindFunc looks up a user function definition by name.
func (p *Program) FindFunc(name string) (*FuncDef, bool) {
	for _, f := range p.Funcs {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// IsKnownType reports whether name refers to a known record or opaque type,
// i.e. a valid Ptr-shaped named type.
func (p *Program) IsKnownType(name string) bool {
	if _, ok := p.FindRecord(name); ok {
		return true
	}
	_, ok := p.FindOpaque(name)
	return ok
}

// IsKnownCallee reports whether name resolves to a known extern or user
// function.
func (p *Program) IsKnownCallee(name string) bool {
	if _, ok := p.FindExtern(name); ok {
		return true
	}
	_, ok := p.FindFunc(name)
	return ok
}
