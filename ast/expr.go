package ast

import (
	"fusion/types"
)

// Expr is implemented by every expression node. Type/SetType hold the
// result type computed by the semantic analyzer (§3's "every Expression has
// a defined result type" invariant); they are meaningless before analysis.
type Expr interface {
	Node
	Type() types.Prim
	SetType(types.Prim)
}

// exprBase is embedded by every expression node.
type exprBase struct {
	base
	typ types.Prim
}

func (e *exprBase) Type() types.Prim     { return e.typ }
func (e *exprBase) SetType(t types.Prim) { e.typ = t }

// IntLit is an integer literal; always types to I64.
type IntLit struct {
	exprBase
	Value int64
}

// FloatLit is a float literal; always types to F64.
type FloatLit struct {
	exprBase
	Value float64
}

// StringLit is a string literal; always types to Ptr.
type StringLit struct {
	exprBase
	Value string
}

// BinOpKind enumerates the binary operator families.
type BinOpKind int

const (
	Add BinOpKind = iota
	Sub
	Mul
	Div
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

// IsComparison reports whether k is one of Eq/Ne/Lt/Le/Gt/Ge.
func (k BinOpKind) IsComparison() bool {
	return k >= Eq
}

// BinOp is a binary arithmetic or comparison expression.
type BinOp struct {
	exprBase
	Op       BinOpKind
	Lhs, Rhs Expr
}

// VarRef is a reference to a variable in scope.
type VarRef struct {
	exprBase
	Name string
}

// Call is a function call: a plain call to a named callee, or one of the
// range/from_str/get_func_ptr/call built-ins whose arguments still fit a
// flat Args list plus a side field (§4.2). load_field/store_field get their
// own node types since their shape doesn't fit this one.
type Call struct {
	exprBase
	Callee string
	Args   []Expr

	// TypeArg is the optional monomorphic type argument, e.g. the element
	// type of range(n, i32) or from_str's target type.
	TypeArg    types.Prim
	HasTypeArg bool

	// InferredSig is filled in by the semantic analyzer for indirect calls
	// through a function pointer of unknown signature (§4.5's writeback).
	InferredSig    types.Sig
	HasInferredSig bool

	// FuncName is get_func_ptr's argument: the bare function name, kept out
	// of Args since it never denotes a value in its own right.
	FuncName string
}

// AllocKind enumerates the three allocation built-ins.
type AllocKind int

const (
	AllocScalar AllocKind = iota
	AllocArray
	AllocBytes
)

// Alloc is alloc(T) / alloc_array(T, n) / alloc_bytes(n).
type Alloc struct {
	exprBase
	Kind      AllocKind
	TypeName  string // for AllocScalar/AllocArray: the primitive or record name
	ElemType  types.Prim
	IsRecord  bool
	CountExpr Expr // AllocArray
	SizeExpr  Expr // AllocBytes
}

// AddrOf is addr_of(ident).
type AddrOf struct {
	exprBase
	Name string
}

// LoadKind enumerates the typed load/store variants.
type LoadKind int

const (
	LoadGeneric LoadKind = iota // load(p): result type equals the pointee's declared type is unknown at parse time; treated as I64
	LoadI64
	LoadI32
	LoadF64
	LoadPtr
)

// Load is one of load/load_i32/load_f64/load_ptr.
type Load struct {
	exprBase
	Kind LoadKind
	Ptr  Expr
}

// FieldLoad is load_field(p, Struct, field).
type FieldLoad struct {
	exprBase
	Base       Expr
	StructName string
	FieldName  string
}

// Store is store(p, v): a typed store through a pointer, typed by v's
// result type (§3's "typed store" expression variant). Its result type is
// Void.
type Store struct {
	exprBase
	Ptr   Expr
	Value Expr
}

// FieldStore is store_field(p, Struct, field, v). Its result type is Void.
type FieldStore struct {
	exprBase
	Base       Expr
	StructName string
	FieldName  string
	Value      Expr
}

// Index is a[i].
type Index struct {
	exprBase
	Base  Expr
	Index Expr
}

// Cast is `expr as type`.
type Cast struct {
	exprBase
	Src    Expr
	Target types.Prim
}
