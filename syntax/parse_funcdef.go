package syntax

import (
	"fusion/ast"
	"fusion/token"
)

// parseFuncDef parses `[export] fn NAME(PARAMS) -> RET BLOCK` (§4.2). The
// `export` keyword, if present, has already been consumed by the caller;
// exported records whether it was.
func (p *Parser) parseFuncDef(exported bool) *ast.FuncDef {
	posTok := p.pos_()
	p.expect(token.KwFn, "'fn'")

	name := p.expect(token.Ident, "function name").Ident
	p.expect(token.LParen, "'('")
	params := p.parseParams()
	p.expect(token.RParen, "')'")
	ret := p.parseRet()
	body := p.parseBlock()

	n := &ast.FuncDef{Name: name, Params: params, Ret: ret, Body: body, Export: exported}
	n.Pos = posTok
	return n
}
