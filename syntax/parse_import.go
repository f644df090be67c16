package syntax

import (
	"fusion/ast"
	"fusion/token"
)

// parseImport parses stanza 1: `import lib "NAME" { (struct IDENT;|fn
// DECL;)* };` (§4.2). NAME is a file basename, resolved against the
// importing file's directory by the import resolver, not here.
func (p *Parser) parseImport() *ast.ImportRequest {
	pos := p.pos_()
	p.advance() // 'import'
	p.expect(token.KwLib, "'lib'")
	base := p.expect(token.StringLit, "import name").StringValue
	p.expect(token.LBrace, "'{'")

	req := &ast.ImportRequest{LibBaseName: base}
	req.Pos = pos

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.KwStruct:
			p.advance()
			name := p.expect(token.Ident, "struct name").Ident
			p.expect(token.Semicolon, "';'")
			req.Structs = append(req.Structs, name)

		case token.KwFn:
			p.advance()
			name := p.expect(token.Ident, "function name").Ident
			p.expect(token.LParen, "'('")
			params := p.parseParams()
			p.expect(token.RParen, "')'")
			ret := p.parseRet()
			p.expect(token.Semicolon, "';'")
			req.Funcs = append(req.Funcs, &ast.ExternFuncStub{Name: name, Params: params, Ret: ret})

		default:
			p.errorf("expected 'struct' or 'fn', found %s", p.cur().String())
			p.advance()
		}
	}

	p.expect(token.RBrace, "'}'")
	p.expect(token.Semicolon, "';'")

	return req
}
