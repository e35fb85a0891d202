package sema

import (
	"strings"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/symbols"
	"named/internal/types"
)

// callType resolves calls and `new` expressions.
//
// Overload failure binds the call to the owner class. When some argument
// is already erroneous the failure stays silent: the argument's own
// diagnostic explains it.
func (tc *Checker) callType(id ast.ExprID) types.TypeID {
	exprs := tc.builder.Exprs
	kind := exprs.Get(id).Kind
	callSpan := exprs.Get(id).Span
	data, _ := exprs.Call(id)
	recv, name, nameSpan := data.Receiver, data.Name, data.NameSpan
	args := append([]ast.ExprID(nil), data.Args...)
	b := tc.types.Builtins()

	owner := tc.owner
	memberName := name
	switch {
	case kind == ast.ExprNew:
		cls, ok := tc.table.Class(name)
		if !ok {
			tc.argTypes(args)
			tc.report(diag.SemaUnresolvedSymbol, nameSpan, "cannot find class '"+tc.name(name)+"'")
			return b.Error
		}
		owner, memberName = cls, tc.ctorName
	case recv.IsValid():
		rt := tc.exprType(recv)
		if tc.types.IsError(rt) {
			tc.argTypes(args)
			return b.Error
		}
		cls, ok := tc.classOfType(rt)
		if !ok {
			tc.argTypes(args)
			tc.report(diag.SemaUnresolvedSymbol, nameSpan,
				"cannot find method '"+tc.name(name)+"' on type "+tc.typeName(rt))
			return b.Error
		}
		owner = cls
	}

	argTypes := tc.argTypes(args)
	if tc.bindings.Pinned(id) {
		return tc.checkPinned(id, args, argTypes)
	}

	wantKind := symbols.SymbolMethod
	if kind == ast.ExprNew {
		wantKind = symbols.SymbolCtor
	}
	var candidates []symbols.SymbolID
	for _, m := range tc.table.Members(owner, memberName) {
		if tc.table.Get(m).Kind == wantKind {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		tc.report(diag.SemaUnresolvedSymbol, nameSpan,
			"cannot find method '"+tc.name(name)+"' in class "+tc.table.NameOf(owner))
		tc.bindings.Unbind(id)
		return b.Error
	}

	var applicable []symbols.SymbolID
	for _, c := range candidates {
		if tc.applicable(tc.table.Get(c).Signature, argTypes) {
			applicable = append(applicable, c)
		}
	}
	if len(applicable) > 0 {
		best, ambiguous := tc.mostSpecific(applicable)
		if ambiguous {
			tc.report(diag.SemaAmbiguousOverload, callSpan,
				"reference to '"+tc.name(name)+"' is ambiguous")
		}
		tc.bindings.Callee[id] = best
		return tc.table.Get(best).Signature.Result
	}

	tc.bindings.Callee[id] = owner
	for _, t := range argTypes {
		if tc.types.IsError(t) {
			return b.Error
		}
	}
	rb := diag.ReportError(tc.reporter, diag.SemaNoOverload, callSpan,
		"no suitable overload found for "+tc.name(name)+"("+tc.typeList(argTypes)+")")
	for _, c := range candidates {
		sym := tc.table.Get(c)
		rb.WithNote(sym.Span, "candidate: "+tc.name(name)+"("+tc.typeList(sym.Signature.Params)+")")
	}
	rb.Emit()
	return b.Error
}

func (tc *Checker) argTypes(args []ast.ExprID) []types.TypeID {
	out := make([]types.TypeID, len(args))
	for i, a := range args {
		out[i] = tc.exprType(a)
	}
	return out
}

func (tc *Checker) classOfType(t types.TypeID) (symbols.SymbolID, bool) {
	tt, ok := tc.types.Lookup(t)
	if !ok || tt.Kind != types.KindClass {
		return symbols.NoSymbolID, false
	}
	return tc.table.Class(tt.Name)
}

// applicable: arity (variadic aware) and per-position assignability.
func (tc *Checker) applicable(sig *symbols.Signature, args []types.TypeID) bool {
	n := len(sig.Params)
	if sig.Variadic {
		if len(args) < n-1 {
			return false
		}
	} else if len(args) != n {
		return false
	}
	for i, a := range args {
		if !tc.types.IsAssignable(a, paramAt(sig, i)) {
			return false
		}
	}
	return true
}

// paramAt is the expected type of argument i; variadic tails repeat the element type.
func paramAt(sig *symbols.Signature, i int) types.TypeID {
	if i >= len(sig.Params) {
		return sig.Params[len(sig.Params)-1]
	}
	return sig.Params[i]
}

// mostSpecific picks the candidate whose parameters are assignable to every
// other candidate's parameters. Without a unique winner the first applicable
// candidate is returned and ambiguous is set.
func (tc *Checker) mostSpecific(cands []symbols.SymbolID) (symbols.SymbolID, bool) {
	if len(cands) == 1 {
		return cands[0], false
	}
	for _, c := range cands {
		cs := tc.table.Get(c).Signature
		wins := true
		for _, o := range cands {
			if o == c {
				continue
			}
			if !tc.moreSpecific(cs, tc.table.Get(o).Signature) {
				wins = false
				break
			}
		}
		if wins {
			return c, false
		}
	}
	return cands[0], true
}

func (tc *Checker) moreSpecific(a, b *symbols.Signature) bool {
	if len(a.Params) != len(b.Params) {
		return !a.Variadic && b.Variadic
	}
	for i := range a.Params {
		if !tc.types.IsAssignable(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

// checkPinned keeps a binding chosen by the rewriter and only checks
// argument types against it.
func (tc *Checker) checkPinned(id ast.ExprID, args []ast.ExprID, argTypes []types.TypeID) types.TypeID {
	callee, _ := tc.bindings.CalleeOf(id)
	sig := tc.table.Get(callee).Signature
	for i, at := range argTypes {
		if len(sig.Params) == 0 {
			break
		}
		want := paramAt(sig, i)
		if tc.types.IsError(at) || tc.types.IsAssignable(at, want) {
			continue
		}
		tc.report(diag.SemaTypeMismatch, tc.builder.Exprs.Get(args[i]).Span,
			"incompatible types: "+tc.typeName(at)+" cannot be converted to "+tc.typeName(want))
	}
	return sig.Result
}

func (tc *Checker) typeList(ts []types.TypeID) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = tc.typeName(t)
	}
	return strings.Join(parts, ", ")
}
