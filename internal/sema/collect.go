package sema

import (
	"named/internal/ast"
	"named/internal/diag"
	"named/internal/symbols"
	"named/internal/types"
)

// collect declares classes first, then members, so member signatures may
// mention classes declared later in the unit.
func (tc *Checker) collect() {
	u := tc.builder.Unit(tc.unit)
	for _, cid := range u.Classes {
		cls := tc.builder.Decls.Class(cid)
		id, ok := tc.table.DeclareClass(&symbols.Symbol{
			Name: cls.Name, Span: cls.NameSpan, Class: cid,
			Type: tc.types.Intern(types.MakeClass(cls.Name)),
		})
		if !ok {
			tc.report(diag.SemaDuplicateSymbol, cls.NameSpan, "class '"+tc.name(cls.Name)+"' is already defined")
		}
		tc.classOf[cid] = id
	}
	for _, cid := range u.Classes {
		owner := tc.classOf[cid]
		if tc.table.Get(owner).Class != cid {
			continue // дубликат класса: члены не регистрируем
		}
		hasCtor := false
		for _, did := range tc.builder.Decls.Class(cid).Members {
			tc.declareMember(owner, did)
			hasCtor = hasCtor || tc.builder.Decls.Get(did).Kind == ast.DeclCtor
		}
		if !hasCtor {
			tc.table.AddMember(owner, &symbols.Symbol{
				Name: tc.ctorName, Kind: symbols.SymbolCtor,
				Signature: &symbols.Signature{Result: tc.table.Get(owner).Type},
			})
		}
	}
}

func (tc *Checker) declareMember(owner symbols.SymbolID, did ast.DeclID) {
	decl := tc.builder.Decls.Get(did)
	if decl.Kind == ast.DeclField {
		for _, prev := range tc.table.Members(owner, decl.Name) {
			if tc.table.Get(prev).Kind == symbols.SymbolField {
				tc.report(diag.SemaDuplicateSymbol, decl.NameSpan, "field '"+tc.name(decl.Name)+"' is already defined")
				return
			}
		}
		tc.table.AddMember(owner, &symbols.Symbol{
			Name: decl.Name, Kind: symbols.SymbolField, Span: decl.NameSpan,
			Decl: did, Type: tc.resolveType(decl.Result, true),
		})
		return
	}

	sig := &symbols.Signature{Result: tc.types.Builtins().Void}
	kind := symbols.SymbolMethod
	switch {
	case decl.Kind == ast.DeclCtor:
		kind = symbols.SymbolCtor
		sig.Result = tc.table.Get(owner).Type
	case decl.Result.IsValid():
		sig.Result = tc.resolveType(decl.Result, true)
	}
	for _, pid := range decl.Params {
		p := tc.builder.Decls.Param(pid)
		// Signature keeps the element type of `T...`
		sig.Params = append(sig.Params, tc.resolveType(p.Type, true))
		sig.Variadic = p.Variadic
		tc.checkMarker(p)
	}
	id := tc.table.AddMember(owner, &symbols.Symbol{
		Name: decl.Name, Kind: kind, Span: decl.NameSpan, Signature: sig,
	})
	if decl.Kind != ast.DeclExtern {
		tc.table.Get(id).Decl = did
		tc.declOf[id] = did
	}
}

// checkMarker: значение маркера должно быть литералом
func (tc *Checker) checkMarker(p *ast.Param) {
	attr, ok := p.FindAttr(tc.marker)
	if !ok || !attr.Value.IsValid() {
		return
	}
	if _, isLit := tc.builder.Exprs.Literal(tc.builder.Exprs.SkipParens(attr.Value)); !isLit {
		tc.report(diag.SemaMarkerValue, tc.builder.Exprs.Get(attr.Value).Span,
			"default value of '"+tc.name(p.Name)+"' must be a literal")
	}
}

// localParamType is the type a parameter has inside the body: T[] for `T...`.
func (tc *Checker) localParamType(p *ast.Param) types.TypeID {
	t := tc.resolveType(p.Type, false)
	if p.Variadic && !tc.types.IsError(t) {
		t = tc.types.Intern(types.MakeArray(t))
	}
	return t
}

// resolveType maps a written type to a TypeID. Unknown names yield the
// error type; report controls whether that is diagnosed (once, at collection).
func (tc *Checker) resolveType(te ast.TypeExpr, report bool) types.TypeID {
	if !te.IsValid() {
		return tc.types.Builtins().Error
	}
	name := tc.name(te.Name)
	t, ok := tc.types.Builtin(name)
	if !ok {
		cls, found := tc.table.Class(te.Name)
		if !found {
			if report {
				tc.report(diag.SemaUnresolvedSymbol, te.Span, "cannot find type '"+name+"'")
			}
			return tc.types.Builtins().Error
		}
		t = tc.table.Get(cls).Type
	}
	for range te.Dims {
		t = tc.types.Intern(types.MakeArray(t))
	}
	return t
}
