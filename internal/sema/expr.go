package sema

import (
	"named/internal/ast"
	"named/internal/diag"
	"named/internal/symbols"
	"named/internal/types"
)

// exprType computes and records the type of an expression.
func (tc *Checker) exprType(id ast.ExprID) types.TypeID {
	t := tc.computeType(id)
	tc.bindings.Types[id] = t
	return t
}

func (tc *Checker) computeType(id ast.ExprID) types.TypeID {
	exprs := tc.builder.Exprs
	expr := exprs.Get(id)
	b := tc.types.Builtins()
	if expr == nil {
		return b.Error
	}
	switch expr.Kind {
	case ast.ExprIdent:
		return tc.identType(id)
	case ast.ExprLit:
		if expr.Synthetic() {
			if t, ok := tc.bindings.Types[id]; ok {
				return t
			}
		}
		lit, _ := exprs.Literal(id)
		return tc.literalType(lit.Kind)
	case ast.ExprThis:
		if sym := tc.table.Get(tc.owner); sym != nil {
			return sym.Type
		}
		return b.Error
	case ast.ExprGroup:
		g, _ := exprs.Group(id)
		return tc.exprType(g.Inner)
	case ast.ExprAssign:
		return tc.assignType(id)
	case ast.ExprCall, ast.ExprNew:
		return tc.callType(id)
	}
	return b.Error
}

func (tc *Checker) literalType(k ast.ExprLitKind) types.TypeID {
	b := tc.types.Builtins()
	switch k {
	case ast.LitInt:
		return b.Int
	case ast.LitLong:
		return b.Long
	case ast.LitFloat:
		return b.Float
	case ast.LitDouble:
		return b.Double
	case ast.LitChar:
		return b.Char
	case ast.LitString:
		return b.String
	case ast.LitTrue, ast.LitFalse:
		return b.Bool
	case ast.LitNull:
		return b.Null
	}
	return b.Error
}

// identType: locals and params first, then fields of the enclosing class.
func (tc *Checker) identType(id ast.ExprID) types.TypeID {
	ident, _ := tc.builder.Exprs.Ident(id)
	if sym, ok := tc.locals[ident.Name]; ok {
		tc.bindings.Refs[id] = sym
		return tc.table.Get(sym).Type
	}
	for _, m := range tc.table.Members(tc.owner, ident.Name) {
		if sym := tc.table.Get(m); sym.Kind == symbols.SymbolField {
			tc.bindings.Refs[id] = m
			return sym.Type
		}
	}
	delete(tc.bindings.Refs, id)
	tc.report(diag.SemaUnresolvedSymbol, tc.builder.Exprs.Get(id).Span,
		"cannot find symbol '"+tc.name(ident.Name)+"'")
	return tc.types.Builtins().Error
}

func (tc *Checker) assignType(id ast.ExprID) types.TypeID {
	exprs := tc.builder.Exprs
	asg, _ := exprs.Assign(id)
	target, value := asg.Target, asg.Value
	inner := exprs.SkipParens(target)
	if exprs.Get(inner).Kind != ast.ExprIdent {
		tc.exprType(target)
		tc.exprType(value)
		tc.report(diag.SemaInvalidAssignment, exprs.Get(target).Span, "invalid assignment target")
		return tc.types.Builtins().Error
	}
	want := tc.exprType(target)
	if tc.types.IsError(want) {
		tc.exprType(value)
		return want
	}
	tc.expectAssignable(value, want)
	return want
}
