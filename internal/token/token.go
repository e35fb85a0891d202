package token

import (
	"named/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, LongLit, FloatLit, DoubleLit, CharLit, StringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

func (t Token) IsKeyword() bool {
	return t.Kind >= KwClass && t.Kind <= KwNull
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
