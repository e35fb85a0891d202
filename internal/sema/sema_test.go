package sema

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/lexer"
	"named/internal/parser"
	"named/internal/source"
	"named/internal/symbols"
)

type checked struct {
	b    *ast.Builder
	unit ast.UnitID
	tc   *Checker
	bag  *diag.Bag
}

func analyzeSource(t *testing.T, src string) *checked {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.nm", []byte(src)))
	bag := diag.NewBag(32)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), b, parser.Options{Reporter: rep})
	if bag.Len() != 0 {
		t.Fatalf("parse errors: %s", summary(bag))
	}
	tc := Analyze(context.Background(), b, res.Unit, Options{Reporter: rep})
	return &checked{b: b, unit: res.Unit, tc: tc, bag: bag}
}

func summary(bag *diag.Bag) string {
	if bag.Len() == 0 {
		return "<none>"
	}
	parts := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		parts = append(parts, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(parts, "; ")
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

// call returns the first call or `new` named name, in post-order over all members.
func (c *checked) call(t *testing.T, name string) ast.ExprID {
	t.Helper()
	for _, decl := range c.b.Members(c.unit) {
		for _, id := range c.b.CallsPostOrder(decl) {
			data, _ := c.b.Exprs.Call(id)
			if c.b.Strings.MustLookup(data.Name) == name {
				return id
			}
		}
	}
	t.Fatalf("no call %q", name)
	return ast.NoExprID
}

func (c *checked) member(t *testing.T, class, name string) []symbols.SymbolID {
	t.Helper()
	cls, ok := c.tc.Symbols().Class(c.b.Strings.Intern(class))
	if !ok {
		t.Fatalf("no class %q", class)
	}
	return c.tc.Symbols().Members(cls, c.b.Strings.Intern(name))
}

func TestAnalyzeCleanUnit(t *testing.T) {
	c := analyzeSource(t, `class A {
	let n: int = 1;
	fn f(a: int, b: string): int { return a; }
	fn sum(xs: int...): int { let all: int[] = xs; return n; }
	fn m() {
		let r: int = f(1, "s");
		sum(1, 2, 3);
		sum();
		new A().f(r, "t");
	}
}`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(c.bag))
	}
	f := c.member(t, "A", "f")[0]
	if got, _ := c.tc.ResolveSymbol(c.call(t, "f")); got != f {
		t.Fatalf("f bound to %d, want %d", got, f)
	}
	if _, ok := c.tc.DeclarationOf(f); !ok {
		t.Fatal("declared method without declaration")
	}
}

func TestAnalyzeDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"unresolved ident", `class A { fn m() { let x: int = y; } }`, []diag.Code{diag.SemaUnresolvedSymbol}},
		{"unknown type", `class A { let x: Nope; }`, []diag.Code{diag.SemaUnresolvedSymbol}},
		{"unknown method", `class A { fn m() { g(1); } }`, []diag.Code{diag.SemaUnresolvedSymbol}},
		{"no overload", `class A { fn f(a: int) {} fn m() { f("s"); } }`, []diag.Code{diag.SemaNoOverload}},
		{"mismatch", `class A { fn m() { let x: int = "s"; } }`, []diag.Code{diag.SemaTypeMismatch}},
		{"missing return", `class A { fn g(): int { return; } }`, []diag.Code{diag.SemaMissingReturn}},
		{"return in void", `class A { fn g() { return 1; } }`, []diag.Code{diag.SemaTypeMismatch}},
		{"duplicate local", `class A { fn g() { let x: int = 1; let x: int = 2; } }`, []diag.Code{diag.SemaDuplicateSymbol}},
		{"duplicate class", `class A { } class A { }`, []diag.Code{diag.SemaDuplicateSymbol}},
		{"bad target", `class A { fn g() { 1 = 2; } }`, []diag.Code{diag.SemaInvalidAssignment}},
		{"marker not literal", `class A { let k: int = 1; fn f(@option(k) a: int) {} }`, []diag.Code{diag.SemaMarkerValue}},
		{"ambiguous", `class A { fn f(a: int, b: long) {} fn f(a: long, b: int) {} fn m() { f(1, 2); } }`, []diag.Code{diag.SemaAmbiguousOverload}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := analyzeSource(t, tt.src)
			if fmt.Sprint(codes(c.bag)) != fmt.Sprint(tt.want) {
				t.Fatalf("got %s", summary(c.bag))
			}
		})
	}
}

func TestNoOverloadNotesCandidates(t *testing.T) {
	c := analyzeSource(t, `class A { fn f(a: int) {} fn f(a: boolean) {} fn m() { f("s"); } }`)
	items := c.bag.Items()
	if len(items) != 1 || len(items[0].Notes) != 2 {
		t.Fatalf("got %s", summary(c.bag))
	}
	cls, _ := c.tc.Symbols().Class(c.b.Strings.Intern("A"))
	if got, _ := c.tc.ResolveSymbol(c.call(t, "f")); got != cls {
		t.Fatalf("failed call bound to %d, want class %d", got, cls)
	}
}

func TestErroneousArgumentSilencesOverloadFailure(t *testing.T) {
	c := analyzeSource(t, `class A { fn f(a: int, b: int) {} fn m() { f(a = 1, 2); } }`)
	if fmt.Sprint(codes(c.bag)) != fmt.Sprint([]diag.Code{diag.SemaUnresolvedSymbol}) {
		t.Fatalf("got %s", summary(c.bag))
	}
	cls, _ := c.tc.Symbols().Class(c.b.Strings.Intern("A"))
	if got, _ := c.tc.ResolveSymbol(c.call(t, "f")); got != cls {
		t.Fatalf("call bound to %d, want class %d", got, cls)
	}
}

func TestMostSpecificOverload(t *testing.T) {
	c := analyzeSource(t, `class A { fn f(a: long) {} fn f(a: int) {} fn m() { f(1); } }`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(c.bag))
	}
	want := c.member(t, "A", "f")[1]
	if got, _ := c.tc.ResolveSymbol(c.call(t, "f")); got != want {
		t.Fatalf("bound to %d, want f(int) %d", got, want)
	}
}

func TestDeclarationOf(t *testing.T) {
	c := analyzeSource(t, `class A { extern fn log(msg: string); fn m() { log("x"); new A(); } }`)
	if c.bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", summary(c.bag))
	}
	logSym := c.member(t, "A", "log")[0]
	if _, ok := c.tc.DeclarationOf(logSym); ok {
		t.Fatal("extern method has a declaration")
	}
	ctor, ok := c.tc.ResolveSymbol(c.call(t, "A"))
	if !ok || c.tc.Symbols().Get(ctor).Kind != symbols.SymbolCtor {
		t.Fatal("new A() not bound to the implicit constructor")
	}
	if _, ok := c.tc.DeclarationOf(ctor); ok {
		t.Fatal("implicit constructor has a declaration")
	}
}

func TestDeclaredDefault(t *testing.T) {
	c := analyzeSource(t, `class A { fn f(a: int, @option(9) b: int, @option c: int) {} }`)
	f := c.member(t, "A", "f")[0]
	decl, _ := c.tc.DeclarationOf(f)
	params := c.b.Decls.Get(decl).Params

	if _, opt := c.tc.DeclaredDefault(params[0]); opt {
		t.Fatal("a is not optional")
	}
	v, opt := c.tc.DeclaredDefault(params[1])
	if !opt {
		t.Fatal("b is optional")
	}
	lit, ok := c.b.Exprs.Literal(v)
	if !ok || c.b.Strings.MustLookup(lit.Value) != "9" {
		t.Fatal("b default is not 9")
	}
	if again, _ := c.tc.DeclaredDefault(params[1]); again != v {
		t.Fatal("cached default changed")
	}
	if v, opt := c.tc.DeclaredDefault(params[2]); !opt || v.IsValid() {
		t.Fatalf("c: value %d optional %v", v, opt)
	}
}

func TestReanalyzeKeepsPinnedBinding(t *testing.T) {
	c := analyzeSource(t, `class A { fn f(a: int) {} fn f(a: long, b: int) {} fn m() { f(a = 1); } }`)
	call := c.call(t, "f")
	target := c.member(t, "A", "f")[0]

	// rewrite by hand: f("s") pinned to f(int)
	sp := c.b.Exprs.Get(call).Span
	str := c.b.Exprs.NewLiteral(source.Span{File: sp.File, Start: sp.End, End: sp.End}, ast.LitString, c.b.Strings.Intern(`"s"`))
	c.b.Exprs.ReplaceCallArgs(call, []ast.ExprID{str})
	c.tc.Bindings().Callee[call] = target
	c.tc.Bindings().Pin(call)

	before := c.bag.Len()
	m := c.b.Members(c.unit)[2]
	if err := c.tc.Reanalyze(context.Background(), m); err != nil {
		t.Fatal(err)
	}
	items := c.bag.Items()[before:]
	if len(items) != 1 || items[0].Code != diag.SemaTypeMismatch {
		t.Fatalf("got %s", summary(c.bag))
	}
	if got, _ := c.tc.ResolveSymbol(call); got != target {
		t.Fatal("pinned binding replaced")
	}
}

func TestReanalyzeUnknownDecl(t *testing.T) {
	c := analyzeSource(t, `class A { }`)
	if err := c.tc.Reanalyze(context.Background(), ast.DeclID(42)); err == nil {
		t.Fatal("expected error")
	}
}
