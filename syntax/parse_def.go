package syntax

import (
	"fusion/ast"
	"fusion/report"
	"fusion/token"
)

// parseOpaque parses `opaque IDENT;` (§4.2, stanza 2).
func (p *Parser) parseOpaque() *ast.OpaqueType {
	pos := p.pos_()
	p.advance()
	name := p.expect(token.Ident, "type name").Ident
	p.expect(token.Semicolon, "';'")

	n := &ast.OpaqueType{Name: name}
	n.Pos = pos
	return n
}

// parseStruct parses `[export] struct NAME { (IDENT : TYPE;)* };` (§4.2,
// stanza 3). exported records whether the caller already consumed `export`.
func (p *Parser) parseStruct(exported bool, pos *report.TextPosition) *ast.RecordDef {
	p.expect(token.KwStruct, "'struct'")
	name := p.expect(token.Ident, "struct name").Ident
	p.expect(token.LBrace, "'{'")

	var fields []ast.FieldDef
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		fname := p.expect(token.Ident, "field name").Ident
		p.expect(token.Colon, "':'")
		typ, _ := p.parseType()
		p.expect(token.Semicolon, "';'")
		fields = append(fields, ast.FieldDef{Name: fname, Type: typ})
	}

	p.expect(token.RBrace, "'}'")
	p.expect(token.Semicolon, "';'")

	n := &ast.RecordDef{Name: name, Fields: fields, Export: exported}
	n.Pos = pos
	return n
}

// parseExternFuncDecl parses one `fn NAME (PARAMS) -> RET;` inside an extern
// block or after a standalone `extern fn`.
func (p *Parser) parseExternFuncDecl(libName string) *ast.ExternFunc {
	pos := p.pos_()
	p.expect(token.KwFn, "'fn'")
	name := p.expect(token.Ident, "function name").Ident
	p.expect(token.LParen, "'('")
	params := p.parseParams()
	p.expect(token.RParen, "')'")
	ret := p.parseRet()
	p.expect(token.Semicolon, "';'")

	n := &ast.ExternFunc{Name: name, Params: params, Ret: ret, LibName: libName}
	n.Pos = pos
	return n
}

// parseExternLib parses stanza 5: `extern lib "PATH" [as IDENT];` or
// `extern lib "PATH" [as IDENT] { (fn DECL;)+ };`. It returns the declared
// library and any extern functions attached inline.
func (p *Parser) parseExternLib(pos *report.TextPosition) (*ast.ExternLibrary, []*ast.ExternFunc) {
	p.expect(token.KwLib, "'lib'")
	path := p.expect(token.StringLit, "library path").StringValue

	name := autoLibName(path)
	if p.at(token.KwAs) {
		p.advance()
		name = p.expect(token.Ident, "library alias").Ident
	}

	lib := &ast.ExternLibrary{Path: path, Name: name}
	lib.Pos = pos

	if p.at(token.Semicolon) {
		p.advance()
		p.lastExternLib = name
		return lib, nil
	}

	p.expect(token.LBrace, "'{'")
	var funcs []*ast.ExternFunc
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		funcs = append(funcs, p.parseExternFuncDecl(name))
	}
	p.expect(token.RBrace, "'}'")
	p.expect(token.Semicolon, "';'")

	p.lastExternLib = name
	return lib, funcs
}

// parseExternFnStanza parses stanza 6: `extern fn DECL;`, bound to the most
// recently declared library (§4.2).
func (p *Parser) parseExternFnStanza() *ast.ExternFunc {
	return p.parseExternFuncDecl(p.lastExternLib)
}

// autoLibName derives a default internal library name from its path when
// the source omits `as IDENT`, e.g. "libm.so.6" -> "libm_so_6".
func autoLibName(path string) string {
	out := make([]byte, 0, len(path))
	for i := 0; i < len(path); i++ {
		c := path[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}
