package named

import (
	"context"
	"testing"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/source"
	"named/internal/symbols"
	"named/internal/types"
)

// fixture builds one class `Owner` with a `caller` method whose body holds
// the calls under test. Host behaviour is simulated by the helpers: unknown
// identifiers report through the unit's diagnostic context and get the error
// type, exactly like a real first pass would.
type fixture struct {
	t      *testing.T
	b      *ast.Builder
	unitID ast.UnitID
	cls    ast.ClassID
	tbl    *symbols.Table
	bind   *symbols.Bindings
	ty     *types.Interner
	bag    *diag.Bag
	dctx   *diag.Context
	host   *fakeHost
	owner  symbols.SymbolID
	caller ast.DeclID
	pos    uint32
}

type paramSpec struct {
	name     string
	typ      types.TypeID
	variadic bool
	optional bool
	def      ast.ExprID
}

type fakeHost struct {
	f          *fixture
	declOf     map[symbols.SymbolID]ast.DeclID
	reanalyzed []ast.DeclID
}

func (h *fakeHost) ResolveSymbol(call ast.ExprID) (symbols.SymbolID, bool) {
	return h.f.bind.CalleeOf(call)
}

func (h *fakeHost) IsAssignable(from, to types.TypeID) bool {
	return h.f.ty.IsAssignable(from, to)
}

func (h *fakeHost) DeclarationOf(sym symbols.SymbolID) (ast.DeclID, bool) {
	d, ok := h.declOf[sym]
	return d, ok
}

func (h *fakeHost) DeclaredDefault(param ast.ParamID) (ast.ExprID, bool) {
	p := h.f.b.Decls.Param(param)
	attr, ok := p.FindAttr(h.f.b.Strings.Intern("option"))
	if !ok {
		return ast.NoExprID, false
	}
	return attr.Value, true
}

func (h *fakeHost) Reanalyze(_ context.Context, decl ast.DeclID) error {
	h.reanalyzed = append(h.reanalyzed, decl)
	return nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	strs := source.NewInterner()
	f := &fixture{
		t:    t,
		b:    ast.NewBuilder(ast.Hints{}, strs),
		tbl:  symbols.NewTable(symbols.Hints{}, strs),
		bind: symbols.NewBindings(),
		ty:   types.NewInterner(),
		bag:  diag.NewBag(64),
	}
	f.dctx = diag.NewContext(&diag.BagReporter{Bag: f.bag})
	f.host = &fakeHost{f: f, declOf: make(map[symbols.SymbolID]ast.DeclID)}
	f.unitID = f.b.NewUnit(1, f.span(0))
	name := strs.Intern("Owner")
	f.cls = f.b.Decls.NewClass(name, f.span(5), f.span(0))
	f.b.PushClass(f.unitID, f.cls)
	f.owner, _ = f.tbl.DeclareClass(&symbols.Symbol{Name: name, Class: f.cls, Type: f.ty.Intern(types.MakeClass(name))})
	f.caller = f.b.Decls.NewDecl(ast.Decl{Kind: ast.DeclMethod, Owner: f.cls, Name: strs.Intern("caller")})
	return f
}

func (f *fixture) unit() *Unit {
	return &Unit{
		ID: f.unitID, AST: f.b, Symbols: f.tbl, Bindings: f.bind,
		Types: f.ty, Diag: f.dctx, Host: f.host,
	}
}

// span hands out non-overlapping spans so every node has its own identity.
func (f *fixture) span(width uint32) source.Span {
	f.pos += 2
	sp := source.Span{File: 1, Start: f.pos, End: f.pos + width}
	f.pos += width
	return sp
}

func (f *fixture) intern(s string) source.StringID { return f.b.Strings.Intern(s) }

// method declares a method (or constructor when name is ast.CtorName) with
// a declaration tree.
func (f *fixture) method(name string, params ...paramSpec) symbols.SymbolID {
	sym := f.external(name, params...)
	decl := ast.Decl{Kind: ast.DeclMethod, Owner: f.cls, Name: f.intern(name), NameSpan: f.span(len32(name))}
	if name == ast.CtorName {
		decl.Kind = ast.DeclCtor
		f.tbl.Get(sym).Kind = symbols.SymbolCtor
	}
	for _, ps := range params {
		p := ast.Param{Name: f.intern(ps.name), NameSpan: f.span(len32(ps.name)), Variadic: ps.variadic}
		if ps.optional {
			p.Attrs = append(p.Attrs, ast.Attr{Name: f.intern("option"), Span: f.span(7), Value: ps.def})
		}
		decl.Params = append(decl.Params, f.b.Decls.NewParam(p))
	}
	id := f.b.Decls.NewDecl(decl)
	f.host.declOf[sym] = id
	f.tbl.Get(sym).Decl = id
	return sym
}

// external declares a method known only by signature.
func (f *fixture) external(name string, params ...paramSpec) symbols.SymbolID {
	sig := &symbols.Signature{Result: f.ty.Builtins().Void}
	if name == ast.CtorName {
		sig.Result = f.tbl.Get(f.owner).Type
	}
	for _, ps := range params {
		sig.Params = append(sig.Params, ps.typ)
		sig.Variadic = ps.variadic
	}
	return f.tbl.AddMember(f.owner, &symbols.Symbol{Name: f.intern(name), Kind: symbols.SymbolMethod, Signature: sig})
}

func len32(s string) uint32 { return uint32(len(s)) }

func (f *fixture) lit(kind ast.ExprLitKind, text string, t types.TypeID) ast.ExprID {
	id := f.b.Exprs.NewLiteral(f.span(len32(text)), kind, f.intern(text))
	f.bind.Types[id] = t
	return id
}

func (f *fixture) intLit(text string) ast.ExprID {
	return f.lit(ast.LitInt, text, f.ty.Builtins().Int)
}

func (f *fixture) strLit(text string) ast.ExprID {
	return f.lit(ast.LitString, `"`+text+`"`, f.ty.Builtins().String)
}

// local is an identifier bound to a real variable.
func (f *fixture) local(name string, t types.TypeID) ast.ExprID {
	id := f.b.Exprs.NewIdent(f.span(len32(name)), f.intern(name))
	f.bind.Refs[id] = f.tbl.NewLocal(&symbols.Symbol{Name: f.intern(name), Kind: symbols.SymbolLocal, Type: t})
	f.bind.Types[id] = t
	return id
}

// unknown is an identifier the host failed to resolve.
func (f *fixture) unknown(name string) ast.ExprID {
	sp := f.span(len32(name))
	id := f.b.Exprs.NewIdent(sp, f.intern(name))
	f.bind.Types[id] = f.ty.Builtins().Error
	f.dctx.Report(diag.SemaUnresolvedSymbol, diag.SevError, sp, "cannot find symbol '"+name+"'", nil)
	return id
}

// named is `name = value` with an unresolved target.
func (f *fixture) named(name string, value ast.ExprID) ast.ExprID {
	target := f.unknown(name)
	sp := f.b.Exprs.Get(target).Span.Cover(f.b.Exprs.Get(value).Span)
	id := f.b.Exprs.NewAssign(sp, target, value)
	f.bind.Types[id] = f.ty.Builtins().Error
	return id
}

// call appends `name(args)` to the caller body, bound the way a host would
// bind it after a failed overload resolution (to the owner class).
func (f *fixture) call(name string, args ...ast.ExprID) ast.ExprID {
	nameSpan := f.span(len32(name))
	id := f.b.Exprs.NewCall(nameSpan.Cover(f.span(1)), ast.NoExprID, f.intern(name), nameSpan, args)
	f.bind.Callee[id] = f.owner
	f.bind.Types[id] = f.ty.Builtins().Error
	st := f.b.Stmts.New(ast.Stmt{Kind: ast.StmtExpr, Expr: id, Span: f.b.Exprs.Get(id).Span})
	decl := f.b.Decls.Get(f.caller)
	decl.Body = append(decl.Body, st)
	return id
}

// argTexts renders the current argument list of a call.
func (f *fixture) argTexts(call ast.ExprID) []string {
	data, ok := f.b.Exprs.Call(call)
	if !ok {
		f.t.Fatalf("expr %d is not a call", call)
	}
	out := make([]string, len(data.Args))
	for i, a := range data.Args {
		a = f.b.Exprs.SkipParens(a)
		switch e := f.b.Exprs.Get(a); e.Kind {
		case ast.ExprLit:
			l, _ := f.b.Exprs.Literal(a)
			out[i] = f.b.Strings.MustLookup(l.Value)
		case ast.ExprIdent:
			id, _ := f.b.Exprs.Ident(a)
			out[i] = f.b.Strings.MustLookup(id.Name)
		default:
			out[i] = e.Kind.String()
		}
	}
	return out
}

func (f *fixture) resolve(r *Resolver, call ast.ExprID) Outcome {
	f.t.Helper()
	out, err := r.Resolve(context.Background(), call)
	if err != nil {
		f.t.Fatalf("Resolve: %v", err)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ints declares required int parameters.
func (f *fixture) ints(names ...string) []paramSpec {
	out := make([]paramSpec, len(names))
	for i, n := range names {
		out[i] = paramSpec{name: n, typ: f.ty.Builtins().Int}
	}
	return out
}

// newObj appends `new Owner(args)` to the caller body, bound to the class.
func (f *fixture) newObj(args ...ast.ExprID) ast.ExprID {
	nameSpan := f.span(5)
	id := f.b.Exprs.NewNew(nameSpan.Cover(f.span(1)), f.intern("Owner"), nameSpan, args)
	f.bind.Callee[id] = f.owner
	f.bind.Types[id] = f.ty.Builtins().Error
	st := f.b.Stmts.New(ast.Stmt{Kind: ast.StmtExpr, Expr: id, Span: f.b.Exprs.Get(id).Span})
	decl := f.b.Decls.Get(f.caller)
	decl.Body = append(decl.Body, st)
	return id
}
