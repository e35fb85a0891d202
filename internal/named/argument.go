package named

import (
	"named/internal/ast"
	"named/internal/source"
)

type ArgKind uint8

const (
	ArgPositional ArgKind = iota
	// ArgPossiblyNamed is `ident = value`; whether it is a named argument or a
	// real assignment is only known once the host has tried to resolve ident.
	ArgPossiblyNamed
)

type Argument struct {
	Kind ArgKind
	// Expr is the argument as written.
	Expr ast.ExprID
	// Set for ArgPossiblyNamed only.
	NameRef ast.ExprID
	Name    source.StringID
	Value   ast.ExprID
}

// classify reads the syntax of each argument; parentheses around the whole
// argument and around the assignment target are skipped.
func classify(exprs *ast.Exprs, args []ast.ExprID) []Argument {
	out := make([]Argument, len(args))
	for i, arg := range args {
		out[i] = Argument{Kind: ArgPositional, Expr: arg}
		asg, ok := exprs.Assign(exprs.SkipParens(arg))
		if !ok {
			continue
		}
		target := exprs.SkipParens(asg.Target)
		ident, ok := exprs.Ident(target)
		if !ok {
			continue
		}
		out[i] = Argument{
			Kind:    ArgPossiblyNamed,
			Expr:    arg,
			NameRef: target,
			Name:    ident.Name,
			Value:   asg.Value,
		}
	}
	return out
}

// isNamed is true only when the host left the target without a symbol and
// with the error type.
func (u *Unit) isNamed(a Argument) bool {
	if a.Kind != ArgPossiblyNamed {
		return false
	}
	if _, bound := u.Bindings.RefOf(a.NameRef); bound {
		return false
	}
	return u.Types.IsError(u.Bindings.TypeOf(a.NameRef))
}

// unwrapped returns the argument with a named value reduced to the value.
func (u *Unit) unwrapped(a Argument) ast.ExprID {
	if u.isNamed(a) {
		return a.Value
	}
	return a.Expr
}
