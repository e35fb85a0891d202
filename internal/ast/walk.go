package ast

// WalkExpr visits the tree rooted at id in post-order: children before
// their parent, arguments left to right, receiver before arguments.
func (e *Exprs) WalkExpr(id ExprID, visit func(ExprID)) {
	expr := e.Get(id)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ExprCall, ExprNew:
		d, _ := e.Call(id)
		recv, args := d.Receiver, d.Args
		e.WalkExpr(recv, visit)
		for _, a := range args {
			e.WalkExpr(a, visit)
		}
	case ExprAssign:
		d, _ := e.Assign(id)
		target, value := d.Target, d.Value
		e.WalkExpr(target, visit)
		e.WalkExpr(value, visit)
	case ExprGroup:
		d, _ := e.Group(id)
		e.WalkExpr(d.Inner, visit)
	}
	visit(id)
}

// DeclRoots returns the top-level expressions of a member in source order.
// Parameter attribute values are not included: they are evaluated at call
// sites, not in the declaring body.
func (b *Builder) DeclRoots(id DeclID) []ExprID {
	decl := b.Decls.Get(id)
	if decl == nil {
		return nil
	}
	var roots []ExprID
	if decl.Init.IsValid() {
		roots = append(roots, decl.Init)
	}
	for _, sid := range decl.Body {
		if st := b.Stmts.Get(sid); st != nil && st.Expr.IsValid() {
			roots = append(roots, st.Expr)
		}
	}
	return roots
}

// CallsPostOrder lists every call and `new` expression of a member, inner
// calls before the calls containing them.
func (b *Builder) CallsPostOrder(id DeclID) []ExprID {
	var out []ExprID
	for _, root := range b.DeclRoots(id) {
		b.Exprs.WalkExpr(root, func(eid ExprID) {
			if k := b.Exprs.Get(eid).Kind; k == ExprCall || k == ExprNew {
				out = append(out, eid)
			}
		})
	}
	return out
}
