package ast

import "named/internal/source"

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprCall
	ExprNew
	ExprAssign
	ExprGroup
	ExprThis
)

var exprKindNames = [...]string{
	ExprIdent:  "ident",
	ExprLit:    "lit",
	ExprCall:   "call",
	ExprNew:    "new",
	ExprAssign: "assign",
	ExprGroup:  "group",
	ExprThis:   "this",
}

func (k ExprKind) String() string {
	if int(k) < len(exprKindNames) {
		return exprKindNames[k]
	}
	return "expr?"
}

type ExprFlags uint8

const (
	// ExprFlagSynthetic marks nodes inserted by a rewrite (defaults).
	ExprFlagSynthetic ExprFlags = 1 << iota
	// ExprFlagArgsReplaced marks calls whose argument list was replaced.
	ExprFlagArgsReplaced
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
	Flags   ExprFlags
}

func (e *Expr) Synthetic() bool    { return e.Flags&ExprFlagSynthetic != 0 }
func (e *Expr) ArgsReplaced() bool { return e.Flags&ExprFlagArgsReplaced != 0 }

type ExprLitKind uint8

const (
	LitInt ExprLitKind = iota
	LitLong
	LitFloat
	LitDouble
	LitChar
	LitString
	LitTrue
	LitFalse
	LitNull
)

type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Kind ExprLitKind
	// Value is the literal as written (quotes and suffixes included).
	Value source.StringID
}

// ExprCallData is shared by calls and `new` expressions.
// For `new C(...)` Name is the class name and Receiver is empty.
type ExprCallData struct {
	Receiver ExprID
	Name     source.StringID
	NameSpan source.Span
	Args     []ExprID
}

type ExprAssignData struct {
	Target ExprID
	Value  ExprID
}

type ExprGroupData struct {
	Inner ExprID
}
