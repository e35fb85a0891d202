package format

import (
	"cmp"
	"errors"
	"slices"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/lexer"
	"named/internal/parser"
	"named/internal/source"
)

type Options struct {
	// MarkDefaults appends `/* default */` after every inserted default.
	MarkDefaults bool
}

type printer struct {
	b   *ast.Builder
	w   *Writer
	opt Options
}

// Unit renders unit. Only the outermost calls whose arguments were replaced
// are printed; everything else is copied from sf unchanged.
func Unit(sf *source.File, b *ast.Builder, unit ast.UnitID, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	if b == nil || b.Unit(unit) == nil {
		return nil, errors.New("format: missing unit")
	}
	p := printer{b: b, w: NewWriter(sf), opt: opt}

	roots := p.changedRoots(unit)
	prev := 0
	for _, id := range roots {
		sp := b.Exprs.Get(id).Span
		p.w.CopyRange(prev, int(sp.Start))
		p.printExpr(id)
		prev = int(sp.End)
	}
	p.w.CopyRange(prev, len(sf.Content))
	return p.w.Bytes(), nil
}

// changedRoots lists replaced calls not nested in another replaced call, in
// source order.
func (p *printer) changedRoots(unit ast.UnitID) []ast.ExprID {
	var changed []ast.ExprID
	for _, decl := range p.b.Members(unit) {
		for _, call := range p.b.CallsPostOrder(decl) {
			if p.b.Exprs.Get(call).ArgsReplaced() {
				changed = append(changed, call)
			}
		}
	}
	// receiver chains share a start; the enclosing call must come first
	slices.SortFunc(changed, func(a, b ast.ExprID) int {
		sa, sb := p.b.Exprs.Get(a).Span, p.b.Exprs.Get(b).Span
		if sa.Start != sb.Start {
			return cmp.Compare(sa.Start, sb.Start)
		}
		return cmp.Compare(sb.End, sa.End)
	})
	roots := changed[:0]
	var last source.Span
	for _, id := range changed {
		sp := p.b.Exprs.Get(id).Span
		if len(roots) > 0 && last.Contains(sp) {
			continue
		}
		roots = append(roots, id)
		last = sp
	}
	return roots
}

// CheckRoundTrip parses out and reports whether it is free of syntax errors
// and declares the same number of members as the original unit.
func CheckRoundTrip(path string, out []byte, b *ast.Builder, unit ast.UnitID) error {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual(path, out))
	bag := diag.NewBag(16)
	rep := &diag.BagReporter{Bag: bag}
	nb := ast.NewBuilder(ast.Hints{}, nil)
	res := parser.ParseFile(lexer.New(sf, lexer.Options{Reporter: rep}), nb, parser.Options{Reporter: rep})
	if bag.HasErrors() {
		return errors.New("format: output does not parse: " + bag.Items()[0].Message)
	}
	if len(nb.Members(res.Unit)) != len(b.Members(unit)) {
		return errors.New("format: member count changed after round-trip")
	}
	return nil
}
