package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"named/internal/diag"
	"named/internal/token"
)

const utf8RuneSelf = 0x80

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	content := lx.file.Content
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := utf8.DecodeRune(content[lx.cursor.Off:])
		if r == utf8.RuneError || !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)) {
			break
		}
		lx.cursor.Off += uint32(size)
	}
	if lx.cursor.Off == start {
		// одиночный не-буквенный unicode символ
		_, size := utf8.DecodeRune(content[start:])
		lx.cursor.Off += uint32(size)
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(content[sp.Start:sp.End])}
	}

	sp := lx.cursor.SpanFrom(start)
	text := norm.NFC.String(string(content[sp.Start:sp.End]))
	kind, _ := token.LookupKeyword(text)
	return token.Token{Kind: kind, Span: sp, Text: text}
}
