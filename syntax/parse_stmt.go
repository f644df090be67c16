package syntax

import (
	"fusion/ast"
	"fusion/token"
)

// parseStmt parses one statement (§4.2). Assignment and bare-expression
// statements are only distinguished after the leading expression has
// already been parsed, since both start with the same token set.
func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.KwReturn:
		return p.parseReturn()
	case token.KwLet:
		return p.parseLet()
	case token.KwIf:
		return p.parseIf()
	case token.KwFor:
		return p.parseFor()
	default:
		return p.parseAssignOrExprStmt()
	}
}

func (p *Parser) parseReturn() ast.Stmt {
	pos := p.pos_()
	p.advance()

	var value ast.Expr
	if !p.at(token.Semicolon) {
		value = p.parseExpr()
	}

	p.expect(token.Semicolon, "';'")
	n := &ast.Return{Value: value}
	n.Pos = pos
	return n
}

func (p *Parser) parseLet() ast.Stmt {
	pos := p.pos_()
	p.advance()

	name := p.expect(token.Ident, "variable name").Ident
	p.expect(token.Equals, "'='")
	init := p.parseExpr()
	p.expect(token.Semicolon, "';'")

	n := &ast.Let{Name: name, Init: init}
	n.Pos = pos
	return n
}

func (p *Parser) parseIf() ast.Stmt {
	pos := p.pos_()
	p.advance()

	p.expect(token.LParen, "'('")
	cond := p.parseExpr()
	p.expect(token.RParen, "')'")
	then := p.parseBlock()

	n := &ast.If{Cond: cond, Then: then}
	n.Pos = pos

	for p.at(token.KwElif) {
		p.advance()
		p.expect(token.LParen, "'('")
		elifCond := p.parseExpr()
		p.expect(token.RParen, "')'")
		elifBody := p.parseBlock()
		n.Elifs = append(n.Elifs, ast.ElifClause{Cond: elifCond, Body: elifBody})
	}

	if p.at(token.KwElse) {
		p.advance()
		n.Else = p.parseBlock()
		n.HasElse = true
	}

	return n
}

func (p *Parser) parseFor() ast.Stmt {
	pos := p.pos_()
	p.advance()

	varName := p.expect(token.Ident, "loop variable").Ident
	p.expect(token.KwIn, "'in'")
	iterable := p.parseExpr()
	body := p.parseBlock()

	n := &ast.For{VarName: varName, Iterable: iterable, Body: body}
	n.Pos = pos
	return n
}

// parseAssignOrExprStmt parses a leading expression, then decides between
// `target = value;` and a bare expression statement based on whether '=' or
// ';' follows.
func (p *Parser) parseAssignOrExprStmt() ast.Stmt {
	pos := p.pos_()
	x := p.parseExpr()

	if p.at(token.Equals) {
		p.advance()
		target := assignTargetOf(p, x)
		value := p.parseExpr()
		p.expect(token.Semicolon, "';'")

		n := &ast.Assign{Target: target, Value: value}
		n.Pos = pos
		return n
	}

	p.expect(token.Semicolon, "';'")
	n := &ast.ExprStmt{X: x}
	n.Pos = pos
	return n
}

// assignTargetOf converts an already-parsed expression into an assignment
// target, restricted to a bare variable or an index expression (§4.2).
func assignTargetOf(p *Parser, x ast.Expr) ast.AssignTarget {
	switch v := x.(type) {
	case *ast.VarRef:
		return ast.AssignTarget{VarName: v.Name}
	case *ast.Index:
		return ast.AssignTarget{Index: v}
	default:
		p.errorf("invalid assignment target")
		return ast.AssignTarget{}
	}
}
