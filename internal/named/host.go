package named

import (
	"context"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/symbols"
	"named/internal/types"
)

// Host is the analysis toolchain the rewriter cooperates with.
type Host interface {
	// ResolveSymbol returns the binding ordinary resolution produced for a
	// call or `new` expression: a callable, the owner class when overload
	// resolution failed, or nothing.
	ResolveSymbol(call ast.ExprID) (symbols.SymbolID, bool)
	IsAssignable(from, to types.TypeID) bool
	// DeclarationOf maps a callable back to its declaring syntax. Callables
	// known only by signature report false.
	DeclarationOf(sym symbols.SymbolID) (ast.DeclID, bool)
	// DeclaredDefault reads the optional marker of a parameter. optional is
	// false when the parameter carries no marker; value is NoExprID when the
	// marker has no argument.
	DeclaredDefault(param ast.ParamID) (value ast.ExprID, optional bool)
	// Reanalyze re-checks a declaration whose calls were rewritten.
	Reanalyze(ctx context.Context, decl ast.DeclID) error
}

// Unit is one compilation unit together with the tables shared by the host
// and the rewriter.
type Unit struct {
	ID       ast.UnitID
	AST      *ast.Builder
	Symbols  *symbols.Table
	Bindings *symbols.Bindings
	Types    *types.Interner
	Diag     *diag.Context
	Host     Host
}
