package syntax

import (
	"fusion/ast"
	"fusion/token"
)

// parseProgram runs the top-level grammar (§4.2): stanzas 1-6 (imports,
// opaques, structs, functions, extern libs, extern fns) are recognized by
// their leading keyword in any order and any number of times; anything
// else is a stanza-7 top-level item, consumed until end of input.
func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}

	for !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.KwImport:
			prog.Imports = append(prog.Imports, p.parseImport())

		case token.KwOpaque:
			prog.Opaques = append(prog.Opaques, p.parseOpaque())

		case token.KwStruct:
			pos := p.pos_()
			prog.Records = append(prog.Records, p.parseStruct(false, pos))

		case token.KwFn:
			prog.Funcs = append(prog.Funcs, p.parseFuncDef(false))

		case token.KwExport:
			pos := p.pos_()
			p.advance()
			switch p.cur().Kind {
			case token.KwStruct:
				prog.Records = append(prog.Records, p.parseStruct(true, pos))
			case token.KwFn:
				prog.Funcs = append(prog.Funcs, p.parseFuncDef(true))
			default:
				p.errorf("expected 'struct' or 'fn' after 'export', found %s", p.cur().String())
				p.advance()
			}

		case token.KwExtern:
			pos := p.pos_()
			p.advance()
			switch p.cur().Kind {
			case token.KwLib:
				lib, funcs := p.parseExternLib(pos)
				prog.Libraries = append(prog.Libraries, lib)
				prog.Externs = append(prog.Externs, funcs...)
			case token.KwFn:
				prog.Externs = append(prog.Externs, p.parseExternFnStanza())
			default:
				p.errorf("expected 'lib' or 'fn' after 'extern', found %s", p.cur().String())
				p.advance()
			}

		default:
			prog.TopLevel = append(prog.TopLevel, p.parseTopLevelItem())
		}
	}

	return prog
}

// parseTopLevelItem parses stanza 7: a let binding, an if/for statement, or
// a bare expression statement (with an optional assignment), executed at
// program scope in source order (§3).
func (p *Parser) parseTopLevelItem() ast.TopLevelItem {
	switch p.cur().Kind {
	case token.KwLet:
		return ast.TopLevelItem{Kind: ast.TopLevelLet, Let: p.parseLet().(*ast.Let)}
	case token.KwIf:
		return ast.TopLevelItem{Kind: ast.TopLevelStmt, Stmt: p.parseIf()}
	case token.KwFor:
		return ast.TopLevelItem{Kind: ast.TopLevelStmt, Stmt: p.parseFor()}
	default:
		stmt := p.parseAssignOrExprStmt()
		if asn, ok := stmt.(*ast.Assign); ok {
			return ast.TopLevelItem{Kind: ast.TopLevelStmt, Stmt: asn}
		}
		return ast.TopLevelItem{Kind: ast.TopLevelExpr, Expr: stmt.(*ast.ExprStmt).X}
	}
}
