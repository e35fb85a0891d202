package fuzztests

import (
	"context"
	"testing"
	"time"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/lexer"
	"named/internal/parser"
	"named/internal/source"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

func parse(input []byte) (*ast.Builder, parser.Result, *source.File, *diag.Bag) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.nm", input))

	bag := diag.NewBag(128)
	reporter := &diag.BagReporter{Bag: bag}
	builder := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(
		lexer.New(file, lexer.Options{Reporter: reporter}),
		builder,
		parser.Options{Reporter: reporter, MaxErrors: 128},
	)
	return builder, res, file, bag
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		builder, res, _, bag := parse(input)
		if builder.Unit(res.Unit) == nil {
			t.Fatalf("no unit for %q", truncateForLog(input, 200))
		}
		if res.Errors > 0 && !bag.HasErrors() {
			t.Fatalf("parser counted %d errors but reported none", res.Errors)
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// Error recovery is the usual suspect for infinite loops.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("class A { fn m() { f(a = 1\nf(b = 2); } }")) // missing paren and semicolon
	f.Add([]byte("class A { fn m() { f(a = ); } }"))            // named argument without value
	f.Add([]byte("class A { fn m(@option(@option) a: int) {} }"))
	f.Add([]byte("class A { fn m() { { { { } } } } }"))
	f.Add([]byte("class A { fn m() { new (x = 1); } }"))
	f.Add([]byte("class class class"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_, _, _, _ = parse(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
