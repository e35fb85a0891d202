package symbols

import (
	"named/internal/ast"
	"named/internal/types"
)

// Bindings is the side table of analysis results keyed by expression.
// The host fills it during analysis; the rewriter overrides call bindings
// and pins them so later reanalysis keeps its choice.
type Bindings struct {
	Callee map[ast.ExprID]SymbolID
	Refs   map[ast.ExprID]SymbolID
	Types  map[ast.ExprID]types.TypeID
	pinned map[ast.ExprID]struct{}
}

func NewBindings() *Bindings {
	return &Bindings{
		Callee: make(map[ast.ExprID]SymbolID),
		Refs:   make(map[ast.ExprID]SymbolID),
		Types:  make(map[ast.ExprID]types.TypeID),
		pinned: make(map[ast.ExprID]struct{}),
	}
}

// CalleeOf returns the symbol a call/new expression is bound to.
func (b *Bindings) CalleeOf(call ast.ExprID) (SymbolID, bool) {
	id, ok := b.Callee[call]
	return id, ok && id.IsValid()
}

// RefOf returns the symbol an identifier resolved to.
func (b *Bindings) RefOf(expr ast.ExprID) (SymbolID, bool) {
	id, ok := b.Refs[expr]
	return id, ok && id.IsValid()
}

// TypeOf returns NoTypeID when the expression has not been typed.
func (b *Bindings) TypeOf(expr ast.ExprID) types.TypeID {
	return b.Types[expr]
}

// Unbind strips the callee and type of a call.
func (b *Bindings) Unbind(call ast.ExprID) {
	delete(b.Callee, call)
	delete(b.Types, call)
	delete(b.pinned, call)
}

// Pin marks a call binding as authoritative.
func (b *Bindings) Pin(call ast.ExprID) {
	b.pinned[call] = struct{}{}
}

func (b *Bindings) Pinned(call ast.ExprID) bool {
	_, ok := b.pinned[call]
	return ok
}
