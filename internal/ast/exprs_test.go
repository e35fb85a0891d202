package ast

import (
	"testing"

	"named/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func TestReplaceCallArgsKeepsOldPayload(t *testing.T) {
	in := source.NewInterner()
	e := NewExprs(0)
	a := e.NewIdent(span(2, 3), in.Intern("a"))
	b := e.NewIdent(span(5, 6), in.Intern("b"))
	call := e.NewCall(span(0, 7), NoExprID, in.Intern("f"), span(0, 1), []ExprID{a, b})

	before, _ := e.Call(call)
	oldArgs := before.Args
	if !e.ReplaceCallArgs(call, []ExprID{b, a}) {
		t.Fatal("ReplaceCallArgs failed")
	}
	after, _ := e.Call(call)
	if after.Args[0] != b || after.Args[1] != a {
		t.Fatalf("unexpected args %v", after.Args)
	}
	if oldArgs[0] != a || oldArgs[1] != b {
		t.Fatalf("old payload mutated: %v", oldArgs)
	}
	if after.Name != before.Name {
		t.Fatal("callee name lost")
	}
	if !e.Get(call).ArgsReplaced() || e.Get(a).ArgsReplaced() {
		t.Fatal("ArgsReplaced flag wrong")
	}
	if e.ReplaceCallArgs(a, nil) {
		t.Fatal("ReplaceCallArgs accepted a non-call")
	}
}

func TestCloneIsDeep(t *testing.T) {
	in := source.NewInterner()
	e := NewExprs(0)
	lit := e.NewLiteral(span(4, 5), LitInt, in.Intern("9"))
	grp := e.NewGroup(span(3, 6), lit)
	call := e.NewNew(span(0, 7), in.Intern("C"), span(0, 1), []ExprID{grp})

	cl := e.Clone(call)
	if cl == call {
		t.Fatal("clone returned the same node")
	}
	d, ok := e.Call(cl)
	if !ok || e.Get(cl).Kind != ExprNew {
		t.Fatal("clone lost kind")
	}
	if d.Args[0] == grp {
		t.Fatal("clone shares argument nodes")
	}
	inner := e.SkipParens(d.Args[0])
	l, ok := e.Literal(inner)
	if !ok || in.MustLookup(l.Value) != "9" {
		t.Fatal("literal not cloned")
	}
	if e.Get(inner).Span != span(4, 5) {
		t.Fatal("span not preserved")
	}
}

func TestCallsPostOrder(t *testing.T) {
	in := source.NewInterner()
	b := NewBuilder(Hints{}, in)
	unit := b.NewUnit(1, span(0, 100))
	cls := b.Decls.NewClass(in.Intern("A"), span(0, 1), span(0, 100))
	b.PushClass(unit, cls)

	// f(g(1), h())
	g := b.Exprs.NewCall(span(2, 6), NoExprID, in.Intern("g"), span(2, 3), []ExprID{
		b.Exprs.NewLiteral(span(4, 5), LitInt, in.Intern("1")),
	})
	h := b.Exprs.NewCall(span(8, 11), NoExprID, in.Intern("h"), span(8, 9), nil)
	f := b.Exprs.NewCall(span(0, 12), NoExprID, in.Intern("f"), span(0, 1), []ExprID{g, h})
	st := b.Stmts.New(Stmt{Kind: StmtExpr, Span: span(0, 13), Expr: f})
	decl := b.Decls.NewDecl(Decl{Kind: DeclMethod, Owner: cls, Name: in.Intern("m"), Body: []StmtID{st}})

	got := b.CallsPostOrder(decl)
	want := []ExprID{g, h, f}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if m := b.Members(unit); len(m) != 1 || m[0] != decl {
		t.Fatalf("members %v", m)
	}
}
