package ast

import "named/internal/source"

// TypeExpr is a written type: a name followed by zero or more `[]`.
type TypeExpr struct {
	Name source.StringID
	Dims uint8
	Span source.Span
}

func (t TypeExpr) IsValid() bool { return t.Name != source.NoStringID }
