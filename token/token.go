// Package token defines the lexical tokens produced by the Fusion lexer
// (§4.1) and consumed by the parser (§4.2).
package token

// Kind enumerates every token kind the lexer can produce.
type Kind int

const (
	EOF Kind = iota

	IntLit
	FloatLit
	StringLit
	Ident

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket

	Plus
	Minus
	Star
	Slash
	Comma
	Semicolon
	Colon
	Equals

	EqEq
	NotEq
	Less
	Greater
	LessEq
	GreaterEq
	Arrow

	KwExtern
	KwLib
	KwImport
	KwExport
	KwFn
	KwF64
	KwF32
	KwI64
	KwI32
	KwU64
	KwU32
	KwVoid
	KwPtr
	KwAs
	KwLet
	KwReturn
	KwOpaque
	KwStruct
	KwIf
	KwElse
	KwElif
	KwFor
	KwIn
)

var keywords = map[string]Kind{
	"extern": KwExtern,
	"lib":    KwLib,
	"import": KwImport,
	"export": KwExport,
	"fn":     KwFn,
	"f64":    KwF64,
	"f32":    KwF32,
	"i64":    KwI64,
	"i32":    KwI32,
	"u64":    KwU64,
	"u32":    KwU32,
	"void":   KwVoid,
	"ptr":    KwPtr,
	"as":     KwAs,
	"let":    KwLet,
	"return": KwReturn,
	"opaque": KwOpaque,
	"struct": KwStruct,
	"if":     KwIf,
	"else":   KwElse,
	"elif":   KwElif,
	"for":    KwFor,
	"in":     KwIn,
}

// LookupIdent returns the keyword kind for text, or Ident if text is not a
// keyword.
func LookupIdent(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}

	return Ident
}

// Token is a single lexical token with its source position and payload.
// Exactly one of IntValue/FloatValue/StringValue/Ident is meaningful,
// depending on Kind.
type Token struct {
	Kind Kind

	IntValue    int64
	FloatValue  float64
	StringValue string
	Ident       string

	Line, Col int
}

// String is used only for diagnostics ("expected expression, found '<tok>'").
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "<eof>"
	case IntLit:
		return "integer literal"
	case FloatLit:
		return "float literal"
	case StringLit:
		return "string literal"
	case Ident:
		return "identifier '" + t.Ident + "'"
	default:
		if s, ok := punctText[t.Kind]; ok {
			return "'" + s + "'"
		}
		for kw, kind := range keywords {
			if kind == t.Kind {
				return "'" + kw + "'"
			}
		}
		return "token"
	}
}

var punctText = map[Kind]string{
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]",
	Plus: "+", Minus: "-", Star: "*", Slash: "/",
	Comma: ",", Semicolon: ";", Colon: ":", Equals: "=",
	EqEq: "==", NotEq: "!=", Less: "<", Greater: ">",
	LessEq: "<=", GreaterEq: ">=", Arrow: "->",
}
