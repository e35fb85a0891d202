package named

import (
	"testing"

	"named/internal/ast"
)

func TestFindCandidate(t *testing.T) {
	t.Run("best score wins", func(t *testing.T) {
		f := newFixture(t)
		str := f.ty.Builtins().String
		num := f.ty.Builtins().Int
		f.method("f", paramSpec{name: "a", typ: str}, paramSpec{name: "b", typ: str}, paramSpec{name: "c", typ: str})
		want := f.method("f", paramSpec{name: "a", typ: num}, paramSpec{name: "b", typ: num}, paramSpec{name: "c", typ: str})
		call := f.call("f", f.intLit("1"), f.intLit("2"), f.strLit("x"))

		cand := f.candidate(call)
		if cand.Symbol != want || cand.Score != 3 || cand.Fallback {
			t.Fatalf("candidate = %+v, want symbol %d score 3", cand, want)
		}
	})

	t.Run("tie goes to first declared", func(t *testing.T) {
		f := newFixture(t)
		first := f.method("f", paramSpec{name: "a", typ: f.ty.Builtins().Long})
		f.method("f", paramSpec{name: "a", typ: f.ty.Builtins().Int})
		call := f.call("f", f.intLit("1"))

		for i := 0; i < 3; i++ {
			if cand := f.candidate(call); cand.Symbol != first {
				t.Fatalf("run %d: candidate = %+v, want %d", i, cand, first)
			}
		}
	})

	t.Run("tie without early stop", func(t *testing.T) {
		f := newFixture(t)
		str := f.ty.Builtins().String
		num := f.ty.Builtins().Int
		first := f.method("f", paramSpec{name: "a", typ: str}, paramSpec{name: "b", typ: num}, paramSpec{name: "c", typ: str})
		f.method("f", paramSpec{name: "a", typ: num}, paramSpec{name: "b", typ: str}, paramSpec{name: "c", typ: str})
		call := f.call("f", f.intLit("1"), f.intLit("2"), f.intLit("3"))

		cand := f.candidate(call)
		if cand.Symbol != first || cand.Score != 1 || cand.Fallback {
			t.Fatalf("candidate = %+v, want %d with score 1", cand, first)
		}
	})

	t.Run("single member is not a fallback", func(t *testing.T) {
		f := newFixture(t)
		only := f.method("f", f.ints("a", "b", "c")...)
		call := f.call("f", f.named("a", f.intLit("1")), f.named("b", f.intLit("2")), f.named("c", f.intLit("3")))

		cand := f.candidate(call)
		if cand.Symbol != only || cand.Score != 0 || cand.Fallback {
			t.Fatalf("candidate = %+v, want %d without fallback", cand, only)
		}
	})

	t.Run("optional parameters score", func(t *testing.T) {
		f := newFixture(t)
		f.method("f", paramSpec{name: "a", typ: f.ty.Builtins().Bool}, paramSpec{name: "b", typ: f.ty.Builtins().Bool})
		want := f.method("f", paramSpec{name: "a", typ: f.ty.Builtins().Bool, optional: true}, paramSpec{name: "b", typ: f.ty.Builtins().Bool, optional: true})
		call := f.call("f", f.named("b", f.intLit("1")), f.named("a", f.intLit("2")))

		if cand := f.candidate(call); cand.Symbol != want || cand.Fallback {
			t.Fatalf("candidate = %+v, want %d", cand, want)
		}
	})

	t.Run("fallback", func(t *testing.T) {
		f := newFixture(t)
		first := f.method("f", paramSpec{name: "a", typ: f.ty.Builtins().Bool})
		f.method("f", paramSpec{name: "a", typ: f.ty.Builtins().Char})
		call := f.call("f", f.strLit("x"))

		cand := f.candidate(call)
		if cand.Symbol != first || !cand.Fallback || cand.Score != 0 {
			t.Fatalf("candidate = %+v, want fallback to %d", cand, first)
		}
	})

	t.Run("no member", func(t *testing.T) {
		f := newFixture(t)
		f.method("g", f.ints("a")...)
		call := f.call("f", f.intLit("1"))
		data, _ := f.b.Exprs.Call(call)
		if _, ok := NewRematcher(f.unit()).FindCandidate(call, classify(f.b.Exprs, data.Args), f.owner); ok {
			t.Fatalf("candidate found for unknown name")
		}
	})

	t.Run("new looks at constructors only", func(t *testing.T) {
		f := newFixture(t)
		f.method("Owner", f.ints("a")...)
		ctor := f.method(ast.CtorName, f.ints("a")...)
		call := f.newObj(f.intLit("1"))
		if cand := f.candidate(call); cand.Symbol != ctor {
			t.Fatalf("candidate = %+v, want ctor %d", cand, ctor)
		}
	})
}

func (f *fixture) candidate(call ast.ExprID) Candidate {
	f.t.Helper()
	data, _ := f.b.Exprs.Call(call)
	cand, ok := NewRematcher(f.unit()).FindCandidate(call, classify(f.b.Exprs, data.Args), f.owner)
	if !ok {
		f.t.Fatalf("no candidate")
	}
	return cand
}

func TestGetOrLast(t *testing.T) {
	items := []int{1, 2, 3}
	for i, want := range []int{1, 2, 3, 3, 3} {
		if got := getOrLast(items, i); got != want {
			t.Fatalf("getOrLast(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestParseFallback(t *testing.T) {
	tests := []struct {
		in   string
		want FallbackPolicy
		err  bool
	}{
		{"", FallbackFirst, false},
		{"first", FallbackFirst, false},
		{"Abandon", FallbackAbandon, false},
		{"guess", FallbackFirst, true},
	}
	for _, tt := range tests {
		got, err := ParseFallback(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Fatalf("ParseFallback(%q) = %v, %v", tt.in, got, err)
		}
	}
}
