package fuzztests

import (
	"testing"

	"named/internal/diag"
	"named/internal/lexer"
	"named/internal/source"
	"named/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.nm", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: &diag.BagReporter{Bag: bag}})
		// каждый токен съедает хотя бы байт, иначе лексер застрял
		for i := 0; ; i++ {
			if i > 2*len(input)+2 {
				t.Fatalf("lexer does not advance on %q", truncateForLog(input, 200))
			}
			if lx.Next().Kind == token.EOF {
				break
			}
		}
	})
}
