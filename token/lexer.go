package token

import "strings"

// Lexer converts a source string into a stream of tokens (§4.1). It never
// fails: malformed input is either dropped (unknown bytes) or turned into a
// token sequence the parser will reject, per §4.1's failure semantics.
type Lexer struct {
	src        string
	pos        int
	line, col  int
}

// NewLexer creates a lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++

	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return c
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

// NextToken returns the next token in the stream. Once the input is
// exhausted, it returns an endless stream of EOF tokens.
func (l *Lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	if l.atEnd() {
		return Token{Kind: EOF, Line: l.line, Col: l.col}
	}

	startLine, startCol := l.line, l.col
	c := l.peek()

	switch {
	case isDigit(c):
		return l.lexNumber(startLine, startCol)
	case isIdentStart(c):
		return l.lexIdentOrKeyword(startLine, startCol)
	case c == '"':
		return l.lexString(startLine, startCol)
	default:
		return l.lexPunct(startLine, startCol)
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		c := l.peek()

		switch c {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '#':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexNumber(line, col int) Token {
	start := l.pos

	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}

	if !l.atEnd() && l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance() // '.'

		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}

		text := l.src[start:l.pos]
		v := parseFloat(text)
		return Token{Kind: FloatLit, FloatValue: v, Line: line, Col: col}
	}

	text := l.src[start:l.pos]
	v := parseInt(text)
	return Token{Kind: IntLit, IntValue: v, Line: line, Col: col}
}

func (l *Lexer) lexIdentOrKeyword(line, col int) Token {
	start := l.pos

	for !l.atEnd() && isIdentCont(l.peek()) {
		l.advance()
	}

	text := l.src[start:l.pos]
	kind := LookupIdent(text)

	if kind == Ident {
		return Token{Kind: Ident, Ident: text, Line: line, Col: col}
	}

	return Token{Kind: kind, Line: line, Col: col}
}

func (l *Lexer) lexString(line, col int) Token {
	l.advance() // opening quote

	var sb strings.Builder
	for !l.atEnd() && l.peek() != '"' {
		c := l.advance()

		if c == '\\' && !l.atEnd() {
			e := l.advance()
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteByte(e)
			}
			continue
		}

		sb.WriteByte(c)
	}

	if !l.atEnd() {
		l.advance() // closing quote
	}

	return Token{Kind: StringLit, StringValue: sb.String(), Line: line, Col: col}
}

var twoCharOps = map[byte]struct {
	next byte
	kind Kind
}{
	'-': {'>', Arrow},
	'=': {'=', EqEq},
	'!': {'=', NotEq},
	'<': {'=', LessEq},
	'>': {'=', GreaterEq},
}

var oneCharOps = map[byte]Kind{
	'(': LParen, ')': RParen,
	'{': LBrace, '}': RBrace,
	'[': LBracket, ']': RBracket,
	'+': Plus, '-': Minus, '*': Star, '/': Slash,
	',': Comma, ';': Semicolon, ':': Colon, '=': Equals,
	'<': Less, '>': Greater,
}

func (l *Lexer) lexPunct(line, col int) Token {
	c := l.advance()

	if twoOp, ok := twoCharOps[c]; ok && l.peek() == twoOp.next {
		l.advance()
		return Token{Kind: twoOp.kind, Line: line, Col: col}
	}

	if kind, ok := oneCharOps[c]; ok {
		return Token{Kind: kind, Line: line, Col: col}
	}

	// Unknown byte: silently drop it and lex the next token (§4.1).
	return l.NextToken()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func parseInt(text string) int64 {
	var v int64
	for i := 0; i < len(text); i++ {
		v = v*10 + int64(text[i]-'0')
	}
	return v
}

func parseFloat(text string) float64 {
	intPart := text
	fracPart := ""

	if dot := strings.IndexByte(text, '.'); dot >= 0 {
		intPart = text[:dot]
		fracPart = text[dot+1:]
	}

	v := float64(parseInt(intPart))

	if fracPart != "" {
		frac := float64(parseInt(fracPart))
		for range fracPart {
			frac /= 10
		}
		v += frac
	}

	return v
}
