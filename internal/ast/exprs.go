package ast

import (
	"slices"

	"named/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLiteralData]
	Calls    *Arena[ExprCallData]
	Assigns  *Arena[ExprAssignData]
	Groups   *Arena[ExprGroupData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		Calls:    NewArena[ExprCallData](capHint / 4),
		Assigns:  NewArena[ExprAssignData](capHint / 8),
		Groups:   NewArena[ExprGroupData](capHint / 8),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewCall creates `receiver.name(args)`; receiver may be NoExprID.
func (e *Exprs) NewCall(span source.Span, receiver ExprID, name source.StringID, nameSpan source.Span, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Receiver: receiver,
		Name:     name,
		NameSpan: nameSpan,
		Args:     slices.Clone(args),
	})
	return e.new(ExprCall, span, PayloadID(payload))
}

// NewNew creates `new name(args)`.
func (e *Exprs) NewNew(span source.Span, name source.StringID, nameSpan source.Span, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Name:     name,
		NameSpan: nameSpan,
		Args:     slices.Clone(args),
	})
	return e.new(ExprNew, span, PayloadID(payload))
}

// Call returns the call data for both ExprCall and ExprNew.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || (expr.Kind != ExprCall && expr.Kind != ExprNew) {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// ReplaceCallArgs repoints the call node to a fresh payload carrying args.
// The previous payload stays in the arena untouched, so anything holding
// the old argument slice keeps seeing the original list.
func (e *Exprs) ReplaceCallArgs(id ExprID, args []ExprID) bool {
	expr := e.Get(id)
	data, ok := e.Call(id)
	if !ok {
		return false
	}
	next := *data
	next.Args = slices.Clone(args)
	expr.Payload = PayloadID(e.Calls.Allocate(next))
	expr.Flags |= ExprFlagArgsReplaced
	return true
}

func (e *Exprs) NewAssign(span source.Span, target, value ExprID) ExprID {
	payload := e.Assigns.Allocate(ExprAssignData{Target: target, Value: value})
	return e.new(ExprAssign, span, PayloadID(payload))
}

func (e *Exprs) Assign(id ExprID) (*ExprAssignData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprAssign {
		return nil, false
	}
	return e.Assigns.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewGroup(span source.Span, inner ExprID) ExprID {
	payload := e.Groups.Allocate(ExprGroupData{Inner: inner})
	return e.new(ExprGroup, span, PayloadID(payload))
}

func (e *Exprs) Group(id ExprID) (*ExprGroupData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprGroup {
		return nil, false
	}
	return e.Groups.Get(uint32(expr.Payload)), true
}

func (e *Exprs) NewThis(span source.Span) ExprID {
	return e.new(ExprThis, span, NoPayloadID)
}

// SkipParens unwraps any number of parentheses.
func (e *Exprs) SkipParens(id ExprID) ExprID {
	for {
		g, ok := e.Group(id)
		if !ok {
			return id
		}
		id = g.Inner
	}
}

// MarkSynthetic sets ExprFlagSynthetic on the node.
func (e *Exprs) MarkSynthetic(id ExprID) {
	if expr := e.Get(id); expr != nil {
		expr.Flags |= ExprFlagSynthetic
	}
}

// Clone deep-copies the expression tree rooted at id. Spans are kept.
func (e *Exprs) Clone(id ExprID) ExprID {
	ep := e.Get(id)
	if ep == nil {
		return NoExprID
	}
	// рекурсия аллоцирует в тех же аренах, поэтому работаем с копиями
	expr := *ep
	var out ExprID
	switch expr.Kind {
	case ExprIdent:
		d, _ := e.Ident(id)
		out = e.NewIdent(expr.Span, d.Name)
	case ExprLit:
		d, _ := e.Literal(id)
		out = e.NewLiteral(expr.Span, d.Kind, d.Value)
	case ExprCall, ExprNew:
		dp, _ := e.Call(id)
		d := *dp
		args := make([]ExprID, len(d.Args))
		for i, a := range d.Args {
			args[i] = e.Clone(a)
		}
		if expr.Kind == ExprNew {
			out = e.NewNew(expr.Span, d.Name, d.NameSpan, args)
		} else {
			out = e.NewCall(expr.Span, e.Clone(d.Receiver), d.Name, d.NameSpan, args)
		}
	case ExprAssign:
		d, _ := e.Assign(id)
		out = e.NewAssign(expr.Span, e.Clone(d.Target), e.Clone(d.Value))
	case ExprGroup:
		d, _ := e.Group(id)
		out = e.NewGroup(expr.Span, e.Clone(d.Inner))
	case ExprThis:
		out = e.NewThis(expr.Span)
	}
	if cl := e.Get(out); cl != nil {
		cl.Flags = expr.Flags
	}
	return out
}
