package named

import (
	"strconv"

	"named/internal/ast"
	"named/internal/source"
	"named/internal/types"
)

// Defaults produces the value inserted for an omitted optional parameter.
type Defaults struct {
	u        *Unit
	sentinel string
}

func NewDefaults(u *Unit, sentinel string) *Defaults {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	return &Defaults{u: u, sentinel: sentinel}
}

// DefaultFor returns a fresh expression for p, or false when p takes no
// default (not optional, or variadic). Synthesized literals get the empty
// span at.
func (d *Defaults) DefaultFor(p Param, at source.Span) (ast.ExprID, bool) {
	if p.Variadic || !p.Optional {
		return ast.NoExprID, false
	}
	exprs := d.u.AST.Exprs
	if p.Default.IsValid() && !d.isSentinel(p.Default) {
		id := exprs.Clone(p.Default)
		exprs.MarkSynthetic(id)
		return id, true
	}
	kind, text := zeroLiteral(d.u.Types.KindOf(p.Type))
	id := exprs.NewLiteral(at, kind, d.u.AST.Strings.Intern(text))
	exprs.MarkSynthetic(id)
	d.u.Bindings.Types[id] = p.Type
	return id, true
}

func (d *Defaults) isSentinel(expr ast.ExprID) bool {
	lit, ok := d.u.AST.Exprs.Literal(d.u.AST.Exprs.SkipParens(expr))
	if !ok || lit.Kind != ast.LitString {
		return false
	}
	raw := d.u.AST.Strings.MustLookup(lit.Value)
	s, err := strconv.Unquote(raw)
	if err != nil {
		return false
	}
	return s == d.sentinel
}

// zeroLiteral: числовой ноль для примитивов, false для boolean, null для остального
func zeroLiteral(k types.Kind) (ast.ExprLitKind, string) {
	switch k {
	case types.KindByte, types.KindShort, types.KindInt:
		return ast.LitInt, "0"
	case types.KindLong:
		return ast.LitLong, "0L"
	case types.KindFloat:
		return ast.LitFloat, "0f"
	case types.KindDouble:
		return ast.LitDouble, "0.0"
	case types.KindChar:
		return ast.LitChar, `'\0'`
	case types.KindBool:
		return ast.LitFalse, "false"
	}
	return ast.LitNull, "null"
}
