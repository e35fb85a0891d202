package format

import (
	"named/internal/ast"
)

// printExpr prints untouched subtrees from source and rebuilds the rest.
func (p *printer) printExpr(id ast.ExprID) {
	exprs := p.b.Exprs
	e := exprs.Get(id)
	if e == nil {
		return
	}
	if !p.dirty(id) {
		p.w.CopySpan(e.Span)
		return
	}
	switch e.Kind {
	case ast.ExprIdent:
		d, _ := exprs.Ident(id)
		p.w.WriteString(p.b.Strings.MustLookup(d.Name))
	case ast.ExprLit:
		d, _ := exprs.Literal(id)
		p.w.WriteString(p.b.Strings.MustLookup(d.Value))
	case ast.ExprThis:
		p.w.WriteString("this")
	case ast.ExprGroup:
		d, _ := exprs.Group(id)
		p.w.WriteString("(")
		p.printExpr(d.Inner)
		p.w.WriteString(")")
	case ast.ExprAssign:
		d, _ := exprs.Assign(id)
		p.printExpr(d.Target)
		p.w.WriteString(" = ")
		p.printExpr(d.Value)
	case ast.ExprCall, ast.ExprNew:
		p.printCall(id, e.Kind)
	}
	if e.Synthetic() && p.opt.MarkDefaults {
		p.w.WriteString(" /* default */")
	}
}

func (p *printer) printCall(id ast.ExprID, kind ast.ExprKind) {
	d, _ := p.b.Exprs.Call(id)
	switch {
	case kind == ast.ExprNew:
		p.w.WriteString("new ")
	case d.Receiver.IsValid():
		p.printExpr(d.Receiver)
		p.w.WriteString(".")
	}
	p.w.WriteString(p.b.Strings.MustLookup(d.Name))
	p.w.WriteString("(")
	for i, arg := range d.Args {
		if i > 0 {
			p.w.WriteString(", ")
		}
		p.printExpr(arg)
	}
	p.w.WriteString(")")
}

// dirty: the subtree holds a synthetic node or a replaced argument list, so
// its source text is stale.
func (p *printer) dirty(id ast.ExprID) bool {
	found := false
	p.b.Exprs.WalkExpr(id, func(n ast.ExprID) {
		if e := p.b.Exprs.Get(n); e.Synthetic() || e.ArgsReplaced() {
			found = true
		}
	})
	return found
}
