// Package testkit holds structural checks shared by parser, rewriter and
// printer tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"named/internal/ast"
	"named/internal/source"
)

// CheckSpanInvariants runs the span invariants of a parsed (possibly
// rewritten) unit:
// 1) the unit span lies within the file content;
// 2) classes nest in the unit, members in their class;
// 3) every written expression nests in its parent, roots in their member.
// Synthetic subtrees (inserted defaults) are skipped: cloned marker values
// keep the span of the declaring parameter.
func CheckSpanInvariants(b *ast.Builder, unit ast.UnitID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	u := b.Unit(unit)
	if u == nil {
		return fmt.Errorf("unit node not found")
	}
	if u.Span.File != sf.ID {
		return fmt.Errorf("unit span points to different file id: got=%d want=%d", u.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if u.Span.Start > u.Span.End || u.Span.End > lenContent {
		return fmt.Errorf("unit span %v outside content [0,%d)", u.Span, lenContent)
	}

	for _, cid := range u.Classes {
		cls := b.Decls.Class(cid)
		if cls == nil {
			return fmt.Errorf("nil class for id=%d", cid)
		}
		if cls.Span.Empty() || !u.Span.Contains(cls.Span) {
			return fmt.Errorf("class span %v is outside unit span %v", cls.Span, u.Span)
		}
		for _, did := range cls.Members {
			decl := b.Decls.Get(did)
			if decl == nil {
				return fmt.Errorf("nil member for id=%d", did)
			}
			if !cls.Span.Contains(decl.Span) {
				return fmt.Errorf("member span %v is outside class span %v", decl.Span, cls.Span)
			}
			for _, root := range b.DeclRoots(did) {
				if err := checkExpr(b.Exprs, root, decl.Span); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkExpr(exprs *ast.Exprs, id ast.ExprID, parent source.Span) error {
	expr := exprs.Get(id)
	if expr == nil {
		return fmt.Errorf("nil expr for id=%d", id)
	}
	if expr.Synthetic() {
		return nil
	}
	if !parent.Contains(expr.Span) {
		return fmt.Errorf("expr %d span %v is outside parent span %v", id, expr.Span, parent)
	}
	var children []ast.ExprID
	switch expr.Kind {
	case ast.ExprCall, ast.ExprNew:
		d, _ := exprs.Call(id)
		if d.Receiver.IsValid() {
			children = append(children, d.Receiver)
		}
		children = append(children, d.Args...)
	case ast.ExprAssign:
		d, _ := exprs.Assign(id)
		children = append(children, d.Target, d.Value)
	case ast.ExprGroup:
		d, _ := exprs.Group(id)
		children = append(children, d.Inner)
	}
	for _, c := range children {
		if err := checkExpr(exprs, c, expr.Span); err != nil {
			return err
		}
	}
	return nil
}
