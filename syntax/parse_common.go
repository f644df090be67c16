package syntax

import (
	"fusion/ast"
	"fusion/token"
	"fusion/types"
)

// parseType parses a TYPE: a primitive keyword or an identifier naming a
// record/opaque type (§4.2). u32/u64 lower to the same ABI slot as i32/i64
// respectively; Fusion's primitive tag set has no distinct unsigned member
// (§3), so the keyword only documents intent at the call site.
func (p *Parser) parseType() (types.Prim, string) {
	switch p.cur().Kind {
	case token.KwVoid:
		p.advance()
		return types.Void, ""
	case token.KwI32:
		p.advance()
		return types.I32, ""
	case token.KwU32:
		p.advance()
		return types.I32, ""
	case token.KwI64:
		p.advance()
		return types.I64, ""
	case token.KwU64:
		p.advance()
		return types.I64, ""
	case token.KwF32:
		p.advance()
		return types.F32, ""
	case token.KwF64:
		p.advance()
		return types.F64, ""
	case token.KwPtr:
		p.advance()
		return types.Ptr, ""
	case token.Ident:
		name := p.advance().Ident
		return types.Ptr, name
	default:
		p.errorf("expected type, found %s", p.cur().String())
		return types.Void, ""
	}
}

// parseParams parses a comma-separated `IDENT : TYPE` list inside already
// consumed parentheses.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param

	if p.at(token.RParen) {
		return params
	}

	for {
		pos := p.pos_()
		name := p.expect(token.Ident, "parameter name").Ident
		p.expect(token.Colon, "':'")
		typ, named := p.parseType()

		params = append(params, ast.Param{Name: name, Type: typ, NamedType: named, Pos: pos})

		if p.at(token.Comma) {
			p.advance()
			continue
		}

		break
	}

	return params
}

// parseRet parses the `-> TYPE` return type clause.
func (p *Parser) parseRet() ast.RetType {
	p.expect(token.Arrow, "'->'")
	typ, named := p.parseType()
	return ast.RetType{Type: typ, NamedType: named}
}

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(token.LBrace, "'{'")

	var stmts []ast.Stmt
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmts = append(stmts, p.parseStmt())
	}

	p.expect(token.RBrace, "'}'")
	return stmts
}
