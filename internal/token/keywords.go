package token

var keywords = map[string]Kind{
	"class":  KwClass,
	"fn":     KwFn,
	"init":   KwInit,
	"let":    KwLet,
	"return": KwReturn,
	"new":    KwNew,
	"extern": KwExtern,
	"this":   KwThis,
	"true":   KwTrue,
	"false":  KwFalse,
	"null":   KwNull,
}

// LookupKeyword returns the keyword kind for ident, or (Ident, false).
func LookupKeyword(ident string) (Kind, bool) {
	if k, ok := keywords[ident]; ok {
		return k, true
	}
	return Ident, false
}
