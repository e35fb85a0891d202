package lexer

import (
	"testing"

	"named/internal/diag"
	"named/internal/source"
	"named/internal/token"
)

func lex(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.nm", []byte(src)))
	bag := diag.NewBag(16)
	return Tokenize(file, Options{Reporter: &diag.BagReporter{Bag: bag}}), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexerCallWithNamedArgument(t *testing.T) {
	toks, bag := lex(t, `greet(name = "bob", 1, rest...); // tail`)
	want := []token.Kind{
		token.Ident, token.LParen, token.Ident, token.Assign, token.StringLit, token.Comma,
		token.IntLit, token.Comma, token.Ident, token.Ellipsis, token.RParen, token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestLexerNumberSuffixes(t *testing.T) {
	tests := []struct {
		src  string
		want token.Kind
	}{
		{"0", token.IntLit},
		{"0L", token.LongLit},
		{"0f", token.FloatLit},
		{"1.5", token.DoubleLit},
		{"1.5f", token.FloatLit},
		{"1e3", token.DoubleLit},
		{"'a'", token.CharLit},
	}
	for _, tt := range tests {
		toks, _ := lex(t, tt.src)
		if toks[0].Kind != tt.want || toks[0].Text != tt.src {
			t.Errorf("%q: got %v %q", tt.src, toks[0].Kind, toks[0].Text)
		}
	}
}

func TestLexerKeywordsAndComments(t *testing.T) {
	toks, _ := lex(t, "/* block */ class A { extern fn f(); }")
	if toks[0].Kind != token.KwClass || toks[3].Kind != token.KwExtern || toks[4].Kind != token.KwFn {
		t.Fatalf("unexpected kinds %v", kinds(toks))
	}
}

func TestLexerReportsErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{"'x", diag.LexUnterminatedChar},
		{"12abc", diag.LexBadNumber},
		{"#", diag.LexUnknownChar},
		{"/* never closed", diag.LexUnterminatedBlockComment},
	}
	for _, tt := range tests {
		_, bag := lex(t, tt.src)
		if bag.Len() != 1 || bag.Items()[0].Code != tt.code {
			t.Errorf("%q: got %v, want %v", tt.src, bag.Items(), tt.code)
		}
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	lx := New(fs.Get(fs.AddVirtual("p.nm", []byte("a b"))), Options{})
	if lx.Peek().Text != "a" || lx.Peek().Text != "a" {
		t.Fatal("Peek must be idempotent")
	}
	if lx.Next().Text != "a" || lx.Next().Text != "b" || lx.Next().Kind != token.EOF {
		t.Fatal("unexpected token stream")
	}
}
