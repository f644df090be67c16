// Package ast defines the untyped program tree produced by the parser
// (§4.2) and annotated in place by the import resolver and semantic
// analyzer (§3, §4.3, §4.5).
package ast

import (
	"fusion/report"
	"fusion/types"
)

// Node is implemented by every AST node so diagnostics can point at it.
type Node interface {
	Position() *report.TextPosition
}

// base holds the span shared by every node.
type base struct {
	Pos *report.TextPosition
}

func (b base) Position() *report.TextPosition { return b.Pos }

// Param is a function parameter: a name, its primitive ABI type, and
// (optional) the named record/opaque type that the Ptr slot actually holds.
type Param struct {
	Name      string
	Type      types.Prim
	NamedType string // non-empty if Type == Ptr and the source wrote a name
	Pos       *report.TextPosition
}

// RetType is a function's declared return type, mirroring Param's
// primitive/named-type split.
type RetType struct {
	Type      types.Prim
	NamedType string
}
