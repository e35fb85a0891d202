package named

import (
	"named/internal/ast"
	"named/internal/source"
	"named/internal/symbols"
	"named/internal/types"
)

// Param describes one declared parameter of a callee.
type Param struct {
	Index    int
	Name     source.StringID
	NameSpan source.Span
	// Type is the element type for a variadic parameter.
	Type     types.TypeID
	Variadic bool
	Optional bool
	// Default is the raw marker value, NoExprID when absent.
	Default ast.ExprID
	Decl    ast.ParamID
}

// paramsOf builds descriptors for a callable. Without a declaration tree only
// types are known; hasDecl reports which case applies.
func (u *Unit) paramsOf(sym symbols.SymbolID) (params []Param, hasDecl bool) {
	s := u.Symbols.Get(sym)
	if s == nil || s.Signature == nil {
		return nil, false
	}
	sig := s.Signature
	params = make([]Param, len(sig.Params))
	for i, t := range sig.Params {
		params[i] = Param{
			Index:    i,
			Type:     t,
			Variadic: sig.Variadic && i == len(sig.Params)-1,
		}
	}
	declID, ok := u.Host.DeclarationOf(sym)
	if !ok {
		return params, false
	}
	decl := u.AST.Decls.Get(declID)
	if decl == nil || len(decl.Params) != len(params) {
		return params, false
	}
	for i, pid := range decl.Params {
		p := u.AST.Decls.Param(pid)
		params[i].Name = p.Name
		params[i].NameSpan = p.NameSpan
		params[i].Decl = pid
		params[i].Default, params[i].Optional = u.Host.DeclaredDefault(pid)
	}
	return params, true
}

func getOrLast[T any](items []T, i int) T {
	if i < len(items) {
		return items[i]
	}
	return items[len(items)-1]
}
