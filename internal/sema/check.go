package sema

import (
	"context"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/source"
	"named/internal/symbols"
	"named/internal/trace"
	"named/internal/types"
)

// DefaultMarker is the parameter attribute that marks a parameter optional.
const DefaultMarker = "option"

// Options configure a semantic pass over a unit.
type Options struct {
	// Reporter receives diagnostics; normally the unit's diag.Context.
	Reporter diag.Reporter
	Types    *types.Interner
	// Marker overrides DefaultMarker.
	Marker string
}

// Analyze collects the classes of a unit and type-checks every member.
// The returned checker answers the rewriter's queries and can re-check a
// single declaration later.
func Analyze(ctx context.Context, builder *ast.Builder, unit ast.UnitID, opts Options) *Checker {
	if opts.Types == nil {
		opts.Types = types.NewInterner()
	}
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	tc := &Checker{
		builder:  builder,
		unit:     unit,
		reporter: opts.Reporter,
		types:    opts.Types,
		table:    symbols.NewTable(symbols.Hints{}, builder.Strings),
		bindings: symbols.NewBindings(),
		marker:   builder.Strings.Intern(opts.Marker),
		ctorName: builder.Strings.Intern(ast.CtorName),
		declOf:   make(map[symbols.SymbolID]ast.DeclID),
		classOf:  make(map[ast.ClassID]symbols.SymbolID),
		defaults: make(map[ast.ParamID]markerEntry),
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "sema", trace.CurrentSpan(ctx).SpanID)
	tc.collect()
	for _, decl := range builder.Members(unit) {
		tc.checkDecl(decl)
	}
	span.End("")
	return tc
}

// Checker is the reference host: first-pass resolver and type checker.
type Checker struct {
	builder  *ast.Builder
	unit     ast.UnitID
	reporter diag.Reporter
	types    *types.Interner
	table    *symbols.Table
	bindings *symbols.Bindings
	marker   source.StringID
	ctorName source.StringID

	declOf   map[symbols.SymbolID]ast.DeclID
	classOf  map[ast.ClassID]symbols.SymbolID
	defaults map[ast.ParamID]markerEntry

	// текущий контекст проверки
	owner  symbols.SymbolID
	result types.TypeID
	locals map[source.StringID]symbols.SymbolID
}

type markerEntry struct {
	value    ast.ExprID
	optional bool
}

func (tc *Checker) Symbols() *symbols.Table     { return tc.table }
func (tc *Checker) Bindings() *symbols.Bindings { return tc.bindings }
func (tc *Checker) Types() *types.Interner      { return tc.types }

func (tc *Checker) report(code diag.Code, sp source.Span, msg string) {
	if tc.reporter != nil {
		tc.reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (tc *Checker) name(id source.StringID) string {
	return tc.builder.Strings.MustLookup(id)
}

// checkDecl type-checks one member with fresh locals.
func (tc *Checker) checkDecl(id ast.DeclID) {
	decl := tc.builder.Decls.Get(id)
	if decl == nil {
		return
	}
	tc.owner = tc.classOf[decl.Owner]
	tc.locals = make(map[source.StringID]symbols.SymbolID)
	tc.result = tc.types.Builtins().Void

	switch decl.Kind {
	case ast.DeclField:
		if decl.Init.IsValid() {
			tc.expectAssignable(decl.Init, tc.resolveType(decl.Result, false))
		}
		return
	case ast.DeclExtern:
		return
	case ast.DeclMethod:
		if decl.Result.IsValid() {
			tc.result = tc.resolveType(decl.Result, false)
		}
	}
	for _, pid := range decl.Params {
		p := tc.builder.Decls.Param(pid)
		tc.locals[p.Name] = tc.table.NewLocal(&symbols.Symbol{
			Name: p.Name, Kind: symbols.SymbolParam, Span: p.NameSpan,
			Owner: tc.owner, Param: pid, Type: tc.localParamType(p),
		})
	}
	for _, sid := range decl.Body {
		tc.checkStmt(sid)
	}
}

func (tc *Checker) checkStmt(id ast.StmtID) {
	st := tc.builder.Stmts.Get(id)
	b := tc.types.Builtins()
	switch st.Kind {
	case ast.StmtLet:
		t := tc.resolveType(st.Type, true)
		if st.Expr.IsValid() {
			tc.expectAssignable(st.Expr, t)
		}
		if _, dup := tc.locals[st.Name]; dup {
			tc.report(diag.SemaDuplicateSymbol, st.NameSpan, "'"+tc.name(st.Name)+"' is already defined")
		}
		tc.locals[st.Name] = tc.table.NewLocal(&symbols.Symbol{
			Name: st.Name, Kind: symbols.SymbolLocal, Span: st.NameSpan, Owner: tc.owner, Type: t,
		})
	case ast.StmtReturn:
		switch {
		case !st.Expr.IsValid() && tc.result != b.Void:
			tc.report(diag.SemaMissingReturn, st.Span, "missing return value")
		case st.Expr.IsValid() && tc.result == b.Void:
			tc.exprType(st.Expr)
			tc.report(diag.SemaTypeMismatch, st.Span, "unexpected return value in void method")
		case st.Expr.IsValid():
			tc.expectAssignable(st.Expr, tc.result)
		}
	case ast.StmtExpr:
		tc.exprType(st.Expr)
	}
}

// expectAssignable checks expr against want; erroneous types stay silent.
func (tc *Checker) expectAssignable(expr ast.ExprID, want types.TypeID) {
	got := tc.exprType(expr)
	if tc.types.IsError(got) || tc.types.IsError(want) || tc.types.IsAssignable(got, want) {
		return
	}
	tc.report(diag.SemaTypeMismatch, tc.builder.Exprs.Get(expr).Span,
		"incompatible types: "+tc.typeName(got)+" cannot be converted to "+tc.typeName(want))
}

func (tc *Checker) typeName(t types.TypeID) string {
	return tc.types.Format(t, tc.builder.Strings)
}
