package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident

	KwClass  // class
	KwFn     // fn
	KwInit   // init
	KwLet    // let
	KwReturn // return
	KwNew    // new
	KwExtern // extern
	KwThis   // this
	KwTrue   // true
	KwFalse  // false
	KwNull   // null

	IntLit    // 42
	LongLit   // 42L
	FloatLit  // 1.5f
	DoubleLit // 1.5
	CharLit   // 'a'
	StringLit // "text"

	Assign    // =
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Ellipsis  // ...
	At        // @
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwClass:   "class",
	KwFn:      "fn",
	KwInit:    "init",
	KwLet:     "let",
	KwReturn:  "return",
	KwNew:     "new",
	KwExtern:  "extern",
	KwThis:    "this",
	KwTrue:    "true",
	KwFalse:   "false",
	KwNull:    "null",
	IntLit:    "IntLit",
	LongLit:   "LongLit",
	FloatLit:  "FloatLit",
	DoubleLit: "DoubleLit",
	CharLit:   "CharLit",
	StringLit: "StringLit",
	Assign:    "=",
	Colon:     ":",
	Semicolon: ";",
	Comma:     ",",
	Dot:       ".",
	Ellipsis:  "...",
	At:        "@",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
