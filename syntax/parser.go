// Package syntax implements the Fusion parser (§4.2): tokens to an untyped
// program tree, or a parse error with a message and source position.
package syntax

import (
	"fusion/ast"
	"fusion/report"
	"fusion/token"
)

// Parser turns a pre-lexed token stream into an *ast.Program. It never
// attempts error recovery: the first grammar violation raises a
// *report.CompileError (§4.2's failure semantics), which Parse recovers and
// returns as its error without reporting it.
type Parser struct {
	filePath string
	toks     []token.Token
	pos      int

	// lastExternLib is the name of the most recently declared extern
	// library, used by stanza 6's standalone `extern fn DECL;` (§4.2).
	lastExternLib string
}

// NewParser lexes all of src up front and returns a parser positioned at the
// first token.
func NewParser(filePath, src string) *Parser {
	lx := token.NewLexer(src)

	var toks []token.Token
	for {
		t := lx.NextToken()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}

	return &Parser{filePath: filePath, toks: toks}
}

// Parse runs the top-level grammar (§4.2) and returns the resulting program.
// A non-nil error is only ever a *report.CompileError.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if x := recover(); x != nil {
			if ce, ok := x.(*report.CompileError); ok {
				err = ce
				return
			}
			panic(x)
		}
	}()

	prog = p.parseProgram()
	return prog, nil
}

// -----------------------------------------------------------------------------
// token stream helpers

func (p *Parser) cur() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(off int) token.Token {
	i := p.pos + off
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) pos_() *report.TextPosition {
	t := p.cur()
	return &report.TextPosition{StartLine: t.Line, StartCol: t.Col, EndLine: t.Line, EndCol: t.Col + 1}
}

// expect consumes and returns the current token if it has kind, else raises
// a parse error.
func (p *Parser) expect(kind token.Kind, what string) token.Token {
	if !p.at(kind) {
		p.errorf("expected %s, found %s", what, p.cur().String())
	}
	return p.advance()
}

func (p *Parser) errorf(format string, args ...any) {
	report.Raise("parse", p.filePath, p.pos_(), format, args...)
}
