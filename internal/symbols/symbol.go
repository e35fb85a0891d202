package symbols

import (
	"named/internal/ast"
	"named/internal/source"
	"named/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolClass
	SymbolMethod
	SymbolCtor
	SymbolField
	SymbolParam
	SymbolLocal
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolClass:
		return "class"
	case SymbolMethod:
		return "method"
	case SymbolCtor:
		return "constructor"
	case SymbolField:
		return "field"
	case SymbolParam:
		return "param"
	case SymbolLocal:
		return "local"
	default:
		return "invalid"
	}
}

// IsCallable reports methods and constructors.
func (k SymbolKind) IsCallable() bool {
	return k == SymbolMethod || k == SymbolCtor
}

// Signature is the callable shape of a method or constructor.
type Signature struct {
	Params   []types.TypeID
	Variadic bool
	Result   types.TypeID
}

// Symbol describes a named entity.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Span  source.Span
	Owner SymbolID
	Type  types.TypeID
	// AST origin; Decl is empty for classes and for callables without a body tree.
	Class     ast.ClassID
	Decl      ast.DeclID
	Param     ast.ParamID
	Signature *Signature
}
