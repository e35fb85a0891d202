package parser

import (
	"slices"

	"named/internal/ast"
	"named/internal/diag"
	"named/internal/lexer"
	"named/internal/source"
	"named/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Unit   ast.UnitID
	Errors uint
}

// Parser - состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer // поток токенов (Peek/Next)
	arenas   *ast.Builder // построитель аренных узлов
	unit     ast.UnitID
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile - входная точка для разбора одного файла.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		unit:     arenas.NewUnit(lx.File().ID, lx.EmptySpan()),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	p.parseClasses()
	return Result{Unit: p.unit, Errors: p.opts.CurrentErrors}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseClasses - основной цикл верхнего уровня: пока не EOF - parseClass.
func (p *Parser) parseClasses() {
	start := p.lx.Peek().Span
	for !p.at(token.EOF) {
		if !p.at(token.KwClass) {
			p.err(diag.SynUnexpectedTopLevel, "expected 'class', got \""+p.lx.Peek().Text+"\"")
			p.resyncUntil(token.KwClass)
			continue
		}
		if cls, ok := p.parseClass(); ok {
			p.arenas.PushClass(p.unit, cls)
		}
	}
	p.arenas.Unit(p.unit).Span = start.Cover(p.lx.Peek().Span)
}

// parseIdent ожидает Ident и интернирует его.
func (p *Parser) parseIdent() (source.StringID, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.arenas.Strings.Intern(tok.Text), tok.Span, true
	}
	p.err(diag.SynExpectIdentifier, "expected identifier, got \""+p.lx.Peek().Text+"\"")
	return source.NoStringID, p.getDiagnosticSpan(), false
}
