package token

import "testing"

func TestLexerPunctAndKeywords(t *testing.T) {
	src := `fn main() -> void { let x: i64 = 1; }`
	l := NewLexer(src)

	want := []Kind{
		KwFn, Ident, LParen, RParen, Arrow, KwVoid, LBrace,
		KwLet, Ident, Colon, KwI64, Equals, IntLit, Semicolon,
		RBrace, EOF,
	}

	for i, k := range want {
		got := l.NextToken()
		if got.Kind != k {
			t.Fatalf("token %d: got kind %v, want %v", i, got.Kind, k)
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		src       string
		wantKind  Kind
		wantInt   int64
		wantFloat float64
	}{
		{"0", IntLit, 0, 0},
		{"42", IntLit, 42, 0},
		{"3.5", FloatLit, 0, 3.5},
		{"100.25", FloatLit, 0, 100.25},
	}

	for _, tc := range tests {
		tok := NewLexer(tc.src).NextToken()
		if tok.Kind != tc.wantKind {
			t.Errorf("NextToken(%q).Kind = %v, want %v", tc.src, tok.Kind, tc.wantKind)
			continue
		}
		if tc.wantKind == IntLit && tok.IntValue != tc.wantInt {
			t.Errorf("NextToken(%q).IntValue = %d, want %d", tc.src, tok.IntValue, tc.wantInt)
		}
		if tc.wantKind == FloatLit && tok.FloatValue != tc.wantFloat {
			t.Errorf("NextToken(%q).FloatValue = %g, want %g", tc.src, tok.FloatValue, tc.wantFloat)
		}
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tok := NewLexer(`"line1\nline2\t\"quoted\""`).NextToken()
	if tok.Kind != StringLit {
		t.Fatalf("got kind %v, want StringLit", tok.Kind)
	}

	want := "line1\nline2\t\"quoted\""
	if tok.StringValue != want {
		t.Errorf("StringValue = %q, want %q", tok.StringValue, want)
	}
}

func TestLexerComment(t *testing.T) {
	l := NewLexer("# a comment\nfn")
	tok := l.NextToken()
	if tok.Kind != KwFn {
		t.Fatalf("got kind %v, want KwFn (comment should be skipped)", tok.Kind)
	}
}

func TestLexerUnknownByteIsDropped(t *testing.T) {
	l := NewLexer("@fn")
	tok := l.NextToken()
	if tok.Kind != KwFn {
		t.Fatalf("got kind %v, want KwFn (unknown byte should be skipped)", tok.Kind)
	}
}

func TestLookupIdent(t *testing.T) {
	if k := LookupIdent("struct"); k != KwStruct {
		t.Errorf("LookupIdent(struct) = %v, want KwStruct", k)
	}
	if k := LookupIdent("myVar"); k != Ident {
		t.Errorf("LookupIdent(myVar) = %v, want Ident", k)
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: EOF}, "<eof>"},
		{Token{Kind: IntLit}, "integer literal"},
		{Token{Kind: Ident, Ident: "foo"}, "identifier 'foo'"},
		{Token{Kind: Arrow}, "'->'"},
		{Token{Kind: KwStruct}, "'struct'"},
	}

	for _, tc := range tests {
		if got := tc.tok.String(); got != tc.want {
			t.Errorf("Token{%v}.String() = %q, want %q", tc.tok.Kind, got, tc.want)
		}
	}
}
