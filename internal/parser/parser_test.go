package parser

import (
	"fmt"
	"strings"
	"testing"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/lexer"
	"named/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Builder, ast.UnitID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.nm", []byte(src)))
	bag := diag.NewBag(32)
	rep := &diag.BagReporter{Bag: bag}
	b := ast.NewBuilder(ast.Hints{}, nil)
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	res := ParseFile(lx, b, Options{Reporter: rep})
	return b, res.Unit, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func hasDiagnosticCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestParseClassMembers(t *testing.T) {
	src := `class Greeter {
	let count: int = 0;
	init(prefix: string) { }
	fn greet(name: string, @option(3) times: int, rest: string...): string {
		let s: string = name;
		return s;
	}
	extern fn log(msg: string);
}`
	b, unit, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	members := b.Members(unit)
	if len(members) != 4 {
		t.Fatalf("expected 4 members, got %d", len(members))
	}
	wantKinds := []ast.DeclKind{ast.DeclField, ast.DeclCtor, ast.DeclMethod, ast.DeclExtern}
	for i, id := range members {
		if got := b.Decls.Get(id).Kind; got != wantKinds[i] {
			t.Fatalf("member %d: kind %d, want %d", i, got, wantKinds[i])
		}
	}

	greet := b.Decls.Get(members[2])
	if len(greet.Params) != 3 || len(greet.Body) != 2 {
		t.Fatalf("greet: %d params, %d stmts", len(greet.Params), len(greet.Body))
	}
	times := b.Decls.Param(greet.Params[1])
	attr, ok := times.FindAttr(b.Strings.Intern("option"))
	if !ok || !attr.Value.IsValid() {
		t.Fatal("@option(3) not recorded")
	}
	if lit, ok := b.Exprs.Literal(attr.Value); !ok || b.Strings.MustLookup(lit.Value) != "3" {
		t.Fatal("attribute value is not the literal 3")
	}
	if !b.Decls.Param(greet.Params[2]).Variadic {
		t.Fatal("rest should be variadic")
	}
	if b.Strings.MustLookup(greet.Result.Name) != "string" {
		t.Fatal("result type lost")
	}
	if ext := b.Decls.Get(members[3]); len(ext.Body) != 0 || len(ext.Params) != 1 {
		t.Fatal("extern should have a signature and no body")
	}
}

func TestParseNamedArgumentIsAssignment(t *testing.T) {
	src := `class A { fn m() { f(1, b = 2, (c) = g(3)); } }`
	b, unit, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	calls := b.CallsPostOrder(b.Members(unit)[0])
	if len(calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(calls))
	}
	f, _ := b.Exprs.Call(calls[1])
	if b.Strings.MustLookup(f.Name) != "f" || len(f.Args) != 3 {
		t.Fatalf("unexpected outer call")
	}
	for i, want := range []ast.ExprKind{ast.ExprLit, ast.ExprAssign, ast.ExprAssign} {
		if got := b.Exprs.Get(f.Args[i]).Kind; got != want {
			t.Fatalf("arg %d: %s, want %s", i, got, want)
		}
	}
	asg, _ := b.Exprs.Assign(f.Args[2])
	if b.Exprs.Get(asg.Target).Kind != ast.ExprGroup {
		t.Fatal("parenthesised target should stay a group")
	}
}

func TestParseReceiverCallsAndNew(t *testing.T) {
	src := `class A { fn m() { new B(x = 1).run(2).stop(); this.m(); } }`
	b, unit, bag := parseSource(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", diagnosticsSummary(bag))
	}
	calls := b.CallsPostOrder(b.Members(unit)[0])
	kinds := make([]ast.ExprKind, len(calls))
	for i, c := range calls {
		kinds[i] = b.Exprs.Get(c).Kind
	}
	want := []ast.ExprKind{ast.ExprNew, ast.ExprCall, ast.ExprCall, ast.ExprCall}
	if fmt.Sprint(kinds) != fmt.Sprint(want) {
		t.Fatalf("got %v want %v", kinds, want)
	}
	stop, _ := b.Exprs.Call(calls[2])
	if stop.Receiver != calls[1] {
		t.Fatal("receiver chain broken")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"top level", `fn f() {}`, diag.SynUnexpectedTopLevel},
		{"missing semicolon", `class A { fn m() { f() } }`, diag.SynExpectSemicolon},
		{"missing expression", `class A { fn m() { let x: int = ; } }`, diag.SynExpectExpression},
		{"missing type", `class A { let x: = 1; }`, diag.SynExpectType},
		{"variadic not last", `class A { fn m(a: int..., b: int) {} }`, diag.SynVariadicMustBeLast},
		{"unclosed class", `class A { let x: int;`, diag.SynUnclosedBrace},
		{"unclosed args", `class A { fn m() { f(1; } }`, diag.SynUnclosedParen},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, bag := parseSource(t, tc.src)
			if !hasDiagnosticCode(bag, tc.code) {
				t.Fatalf("expected %s, got %s", tc.code.ID(), diagnosticsSummary(bag))
			}
		})
	}
}

func TestParseRecoversAfterBadMember(t *testing.T) {
	src := `class A { 42; fn ok() { } }
class B { }`
	b, unit, bag := parseSource(t, src)
	if !bag.HasErrors() {
		t.Fatal("expected an error")
	}
	if n := len(b.Unit(unit).Classes); n != 2 {
		t.Fatalf("expected both classes, got %d", n)
	}
	if n := len(b.Members(unit)); n != 1 {
		t.Fatalf("expected 1 member, got %d", n)
	}
}
