package ast

import "named/internal/source"

type StmtKind uint8

const (
	StmtLet StmtKind = iota
	StmtReturn
	StmtExpr
)

type Stmt struct {
	Kind StmtKind
	Span source.Span
	// let only
	Name     source.StringID
	NameSpan source.Span
	Type     TypeExpr
	// let initializer, return value or expression
	Expr ExprID
}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Stmts{Arena: NewArena[Stmt](capHint)}
}

func (s *Stmts) New(stmt Stmt) StmtID {
	return StmtID(s.Arena.Allocate(stmt))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}
