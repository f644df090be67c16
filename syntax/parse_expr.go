package syntax

import (
	"fusion/ast"
	"fusion/report"
	"fusion/token"
)

// parseExpr parses a full expression: comparison is the lowest-precedence
// binary level, with an optional trailing `as TYPE` cast binding even looser
// still, over the whole expression (§4.2).
func (p *Parser) parseExpr() ast.Expr {
	x := p.parseComparison()

	for p.at(token.KwAs) {
		pos := p.pos_()
		p.advance()
		target, _ := p.parseType()
		n := &ast.Cast{Src: x, Target: target}
		n.Pos = pos
		x = n
	}

	return x
}

var cmpOps = map[token.Kind]ast.BinOpKind{
	token.EqEq:      ast.Eq,
	token.NotEq:     ast.Ne,
	token.Less:      ast.Lt,
	token.LessEq:    ast.Le,
	token.Greater:   ast.Gt,
	token.GreaterEq: ast.Ge,
}

func (p *Parser) parseComparison() ast.Expr {
	lhs := p.parseAdditive()

	for {
		op, ok := cmpOps[p.cur().Kind]
		if !ok {
			return lhs
		}
		pos := p.pos_()
		p.advance()
		rhs := p.parseAdditive()
		n := &ast.BinOp{Op: op, Lhs: lhs, Rhs: rhs}
		n.Pos = pos
		lhs = n
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	lhs := p.parseMultiplicative()

	for p.at(token.Plus) || p.at(token.Minus) {
		op := ast.Add
		if p.at(token.Minus) {
			op = ast.Sub
		}
		pos := p.pos_()
		p.advance()
		rhs := p.parseMultiplicative()
		n := &ast.BinOp{Op: op, Lhs: lhs, Rhs: rhs}
		n.Pos = pos
		lhs = n
	}

	return lhs
}

func (p *Parser) parseMultiplicative() ast.Expr {
	lhs := p.parsePostfix()

	for p.at(token.Star) || p.at(token.Slash) {
		op := ast.Mul
		if p.at(token.Slash) {
			op = ast.Div
		}
		pos := p.pos_()
		p.advance()
		rhs := p.parsePostfix()
		n := &ast.BinOp{Op: op, Lhs: lhs, Rhs: rhs}
		n.Pos = pos
		lhs = n
	}

	return lhs
}

// parsePostfix parses a primary expression followed by zero or more `[expr]`
// subscripts.
func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()

	for p.at(token.LBracket) {
		pos := p.pos_()
		p.advance()
		idx := p.parseExpr()
		p.expect(token.RBracket, "']'")
		n := &ast.Index{Base: x, Index: idx}
		n.Pos = pos
		x = n
	}

	return x
}

func (p *Parser) parsePrimary() ast.Expr {
	pos := p.pos_()

	switch {
	case p.at(token.IntLit):
		v := p.advance().IntValue
		n := &ast.IntLit{Value: v}
		n.Pos = pos
		return n

	case p.at(token.FloatLit):
		v := p.advance().FloatValue
		n := &ast.FloatLit{Value: v}
		n.Pos = pos
		return n

	case p.at(token.StringLit):
		v := p.advance().StringValue
		n := &ast.StringLit{Value: v}
		n.Pos = pos
		return n

	case p.at(token.LParen):
		p.advance()
		x := p.parseExpr()
		p.expect(token.RParen, "')'")
		return x

	case p.at(token.Ident):
		name := p.advance().Ident
		if p.at(token.LParen) {
			return p.parseCallLike(pos, name)
		}
		n := &ast.VarRef{Name: name}
		n.Pos = pos
		return n

	default:
		p.errorf("expected expression, found %s", p.cur().String())
		n := &ast.VarRef{Name: "<error>"}
		n.Pos = pos
		return n
	}
}

// builtinTypeArg reports whether k is a bare type keyword, used by range to
// disambiguate a trailing TYPE arg from an ordinary expression argument.
// It only recognizes the primitive
// keywords, never an identifier, since a named type is never a valid
// argument in these positions.
func builtinTypeArg(k token.Kind) bool {
	switch k {
	case token.KwI32, token.KwU32, token.KwI64, token.KwU64, token.KwF32, token.KwF64, token.KwVoid, token.KwPtr:
		return true
	default:
		return false
	}
}

// parseCallLike parses the parenthesized argument list of a call whose
// callee is name, already consumed. name may be a built-in recognized by
// shape (§4.2) or an ordinary function name, in which case a flat
// comma-separated expression list is parsed.
func (p *Parser) parseCallLike(pos *report.TextPosition, name string) ast.Expr {
	p.expect(token.LParen, "'('")

	switch name {
	case "alloc":
		typ, tname := p.parseType()
		p.expect(token.RParen, "')'")
		n := &ast.Alloc{Kind: ast.AllocScalar, TypeName: tname, ElemType: typ, IsRecord: tname != ""}
		n.Pos = pos
		return n

	case "alloc_array":
		typ, tname := p.parseType()
		p.expect(token.Comma, "','")
		count := p.parseExpr()
		p.expect(token.RParen, "')'")
		n := &ast.Alloc{Kind: ast.AllocArray, TypeName: tname, ElemType: typ, IsRecord: tname != "", CountExpr: count}
		n.Pos = pos
		return n

	case "alloc_bytes":
		size := p.parseExpr()
		p.expect(token.RParen, "')'")
		n := &ast.Alloc{Kind: ast.AllocBytes, SizeExpr: size}
		n.Pos = pos
		return n

	case "addr_of":
		target := p.expect(token.Ident, "identifier").Ident
		p.expect(token.RParen, "')'")
		n := &ast.AddrOf{Name: target}
		n.Pos = pos
		return n

	case "load", "load_i32", "load_f64", "load_ptr":
		ptr := p.parseExpr()
		p.expect(token.RParen, "')'")
		kind := ast.LoadGeneric
		switch name {
		case "load_i32":
			kind = ast.LoadI32
		case "load_f64":
			kind = ast.LoadF64
		case "load_ptr":
			kind = ast.LoadPtr
		}
		n := &ast.Load{Kind: kind, Ptr: ptr}
		n.Pos = pos
		return n

	case "store":
		ptr := p.parseExpr()
		p.expect(token.Comma, "','")
		val := p.parseExpr()
		p.expect(token.RParen, "')'")
		n := &ast.Store{Ptr: ptr, Value: val}
		n.Pos = pos
		return n

	case "load_field":
		base := p.parseExpr()
		p.expect(token.Comma, "','")
		structName := p.expect(token.Ident, "struct name").Ident
		p.expect(token.Comma, "','")
		fieldName := p.expect(token.Ident, "field name").Ident
		p.expect(token.RParen, "')'")
		n := &ast.FieldLoad{Base: base, StructName: structName, FieldName: fieldName}
		n.Pos = pos
		return n

	case "store_field":
		base := p.parseExpr()
		p.expect(token.Comma, "','")
		structName := p.expect(token.Ident, "struct name").Ident
		p.expect(token.Comma, "','")
		fieldName := p.expect(token.Ident, "field name").Ident
		p.expect(token.Comma, "','")
		val := p.parseExpr()
		p.expect(token.RParen, "')'")
		n := &ast.FieldStore{Base: base, StructName: structName, FieldName: fieldName, Value: val}
		n.Pos = pos
		return n

	case "range":
		return p.parseRangeCall(pos)

	case "from_str":
		s := p.parseExpr()
		p.expect(token.Comma, "','")
		typ, _ := p.parseType()
		p.expect(token.RParen, "')'")
		n := &ast.Call{Callee: name, Args: []ast.Expr{s}, TypeArg: typ, HasTypeArg: true}
		n.Pos = pos
		return n

	case "get_func_ptr":
		target := p.expect(token.Ident, "identifier").Ident
		p.expect(token.RParen, "')'")
		n := &ast.Call{Callee: name, FuncName: target}
		n.Pos = pos
		return n

	case "call":
		target := p.parseExpr()
		args := []ast.Expr{target}
		for p.at(token.Comma) {
			p.advance()
			args = append(args, p.parseExpr())
		}
		p.expect(token.RParen, "')'")
		n := &ast.Call{Callee: name, Args: args}
		n.Pos = pos
		return n

	default:
		var args []ast.Expr
		if !p.at(token.RParen) {
			for {
				args = append(args, p.parseExpr())
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
		}
		p.expect(token.RParen, "')'")
		n := &ast.Call{Callee: name, Args: args}
		n.Pos = pos
		return n
	}
}

// parseRangeCall parses range(n [, type]) or range(start, end [, type])
// (§4.2). The optional trailing type argument is only ever one of the
// primitive type keywords, which can never start an ordinary expression, so
// looking at the two tokens after the comma disambiguates it from a second
// bound.
func (p *Parser) parseRangeCall(pos *report.TextPosition) ast.Expr {
	first := p.parseExpr()

	n := &ast.Call{Callee: "range", Args: []ast.Expr{first}}
	n.Pos = pos

	if !p.at(token.Comma) {
		p.expect(token.RParen, "')'")
		return n
	}

	// look ahead past the comma: a type keyword immediately followed by ')'
	// is the trailing element-type argument for the one-bound form.
	if builtinTypeArg(p.peekAt(1).Kind) && p.peekAt(2).Kind == token.RParen {
		p.advance()
		typ, _ := p.parseType()
		p.expect(token.RParen, "')'")
		n.TypeArg = typ
		n.HasTypeArg = true
		return n
	}

	p.advance()
	end := p.parseExpr()
	n.Args = append(n.Args, end)

	if p.at(token.Comma) {
		p.advance()
		typ, _ := p.parseType()
		n.TypeArg = typ
		n.HasTypeArg = true
	}

	p.expect(token.RParen, "')'")
	return n
}
