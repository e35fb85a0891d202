package sema

import (
	"context"
	"fmt"

	"named/internal/ast"
	"named/internal/symbols"
	"named/internal/trace"
	"named/internal/types"
)

// ResolveSymbol returns the binding of a call produced by the last check.
func (tc *Checker) ResolveSymbol(call ast.ExprID) (symbols.SymbolID, bool) {
	return tc.bindings.CalleeOf(call)
}

func (tc *Checker) IsAssignable(from, to types.TypeID) bool {
	return tc.types.IsAssignable(from, to)
}

// DeclarationOf is false for extern methods and implicit constructors.
func (tc *Checker) DeclarationOf(sym symbols.SymbolID) (ast.DeclID, bool) {
	id, ok := tc.declOf[sym]
	return id, ok
}

// DeclaredDefault reads the marker attribute of a parameter. Results are
// cached per parameter.
func (tc *Checker) DeclaredDefault(param ast.ParamID) (ast.ExprID, bool) {
	if e, ok := tc.defaults[param]; ok {
		return e.value, e.optional
	}
	var e markerEntry
	if p := tc.builder.Decls.Param(param); p != nil {
		if attr, ok := p.FindAttr(tc.marker); ok {
			e = markerEntry{value: attr.Value, optional: true}
		}
	}
	tc.defaults[param] = e
	return e.value, e.optional
}

// Reanalyze re-checks one declaration of the unit. Calls pinned by the
// rewriter keep their binding.
func (tc *Checker) Reanalyze(ctx context.Context, decl ast.DeclID) error {
	d := tc.builder.Decls.Get(decl)
	if d == nil {
		return fmt.Errorf("sema: unknown declaration %d", decl)
	}
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeUnit, "reanalyze", trace.CurrentSpan(ctx).SpanID).
		WithExtra("decl", tc.name(d.Name))
	defer span.End("")
	tc.checkDecl(decl)
	return nil
}
