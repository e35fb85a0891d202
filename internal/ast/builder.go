package ast

import (
	"named/internal/source"
)

type Hints struct{ Decls, Stmts, Exprs uint }

// Builder owns every arena of a parsed unit set.
type Builder struct {
	Strings *source.Interner
	Units   *Arena[Unit]
	Decls   *Decls
	Stmts   *Stmts
	Exprs   *Exprs
}

// NewBuilder allocates the arenas. If strings is nil, a fresh interner is used.
func NewBuilder(hints Hints, strings *source.Interner) *Builder {
	if strings == nil {
		strings = source.NewInterner()
	}
	if hints.Decls == 0 {
		hints.Decls = 1 << 6
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Strings: strings,
		Units:   NewArena[Unit](4),
		Decls:   NewDecls(hints.Decls),
		Stmts:   NewStmts(hints.Stmts),
		Exprs:   NewExprs(hints.Exprs),
	}
}

func (b *Builder) NewUnit(file source.FileID, sp source.Span) UnitID {
	return UnitID(b.Units.Allocate(Unit{File: file, Span: sp}))
}

func (b *Builder) Unit(id UnitID) *Unit {
	return b.Units.Get(uint32(id))
}

func (b *Builder) PushClass(unit UnitID, class ClassID) {
	u := b.Unit(unit)
	u.Classes = append(u.Classes, class)
}

// Members lists every member of the unit in declaration order.
func (b *Builder) Members(unit UnitID) []DeclID {
	u := b.Unit(unit)
	if u == nil {
		return nil
	}
	var out []DeclID
	for _, cid := range u.Classes {
		out = append(out, b.Decls.Class(cid).Members...)
	}
	return out
}
