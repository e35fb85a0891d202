package named

import (
	"named/internal/ast"
	"named/internal/symbols"
)

// Candidate is the overload picked by the Rematcher.
type Candidate struct {
	Symbol symbols.SymbolID
	Score  int
	// Fallback is set when several overloads scored zero and the first
	// member with the name was taken. Such a pick is a guess. A lone member
	// is never a guess.
	Fallback bool
}

// Rematcher re-runs overload selection for calls the host bound to their
// owner class.
type Rematcher struct {
	u *Unit
}

func NewRematcher(u *Unit) *Rematcher {
	return &Rematcher{u: u}
}

// FindCandidate scores every callable member of owner sharing the call's
// name. A position scores when the argument type is assignable to the
// parameter type or the parameter is optional; past the end of the parameter
// list the last parameter is reused. Highest score wins, ties go to the
// earlier declaration, and the scan stops once a member matches all but one
// argument. False only when no callable member has the name.
func (r *Rematcher) FindCandidate(call ast.ExprID, args []Argument, owner symbols.SymbolID) (Candidate, bool) {
	data, ok := r.u.AST.Exprs.Call(call)
	if !ok {
		return Candidate{}, false
	}
	kind := r.u.AST.Exprs.Get(call).Kind
	name := data.Name
	if kind == ast.ExprNew {
		name = r.u.AST.Strings.Intern(ast.CtorName)
	}

	var first symbols.SymbolID
	members := 0
	best := Candidate{}
	for _, m := range r.u.Symbols.Members(owner, name) {
		sym := r.u.Symbols.Get(m)
		if sym == nil || !sym.Kind.IsCallable() {
			continue
		}
		if (kind == ast.ExprNew) != (sym.Kind == symbols.SymbolCtor) {
			continue
		}
		if !first.IsValid() {
			first = m
		}
		members++
		params, _ := r.u.paramsOf(m)
		score := r.score(args, params)
		if score > best.Score {
			best = Candidate{Symbol: m, Score: score}
			if score >= len(args)-1 {
				break
			}
		}
	}
	if best.Symbol.IsValid() {
		return best, true
	}
	if !first.IsValid() {
		return Candidate{}, false
	}
	return Candidate{Symbol: first, Fallback: members > 1}, true
}

func (r *Rematcher) score(args []Argument, params []Param) int {
	if len(params) == 0 {
		return 0
	}
	score := 0
	for i, a := range args {
		p := getOrLast(params, i)
		if p.Optional || r.u.Host.IsAssignable(r.u.Bindings.TypeOf(a.Expr), p.Type) {
			score++
		}
	}
	return score
}
