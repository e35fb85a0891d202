package parser

import (
	"named/internal/ast"
	"named/internal/diag"
	"named/internal/source"
	"named/internal/token"
)

func isMemberStarter(k token.Kind) bool {
	switch k {
	case token.KwLet, token.KwFn, token.KwInit, token.KwExtern:
		return true
	}
	return false
}

// parseClass: "class" Ident "{" { member } "}"
func (p *Parser) parseClass() (ast.ClassID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		p.resyncUntil(token.KwClass)
		return ast.NoClassID, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' after class name"); !ok {
		p.resyncUntil(token.KwClass)
		return ast.NoClassID, false
	}
	cls := p.arenas.Decls.NewClass(name, nameSpan, kw.Span)
	for !p.atOr(token.RBrace, token.EOF, token.KwClass) {
		if !isMemberStarter(p.lx.Peek().Kind) {
			p.err(diag.SynUnexpectedToken, "expected class member, got \""+p.lx.Peek().Text+"\"")
			p.advance()
			p.resyncUntil(token.KwLet, token.KwFn, token.KwInit, token.KwExtern, token.RBrace, token.KwClass)
			continue
		}
		p.parseMember(cls)
	}
	closeTok, _ := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close class body")
	p.arenas.Decls.Class(cls).Span = kw.Span.Cover(closeTok.Span)
	return cls, true
}

func (p *Parser) parseMember(owner ast.ClassID) {
	start := p.lx.Peek().Span
	switch p.lx.Peek().Kind {
	case token.KwLet:
		p.advance()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			p.resyncStmt()
			return
		}
		decl := ast.Decl{Kind: ast.DeclField, Owner: owner, Name: name, NameSpan: nameSpan}
		if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' before field type"); !ok {
			p.resyncStmt()
			return
		}
		if decl.Result, ok = p.parseType(); !ok {
			p.resyncStmt()
			return
		}
		if p.at(token.Assign) {
			p.advance()
			if decl.Init, ok = p.parseExpr(); !ok {
				p.resyncStmt()
				return
			}
		}
		semi, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after field")
		decl.Span = start.Cover(semi.Span)
		p.arenas.Decls.NewDecl(decl)
	case token.KwFn:
		p.advance()
		p.parseCallable(owner, ast.DeclMethod, start)
	case token.KwInit:
		kw := p.advance()
		p.parseCallableRest(owner, ast.Decl{
			Kind: ast.DeclCtor, Owner: owner,
			Name: p.arenas.Strings.Intern(ast.CtorName), NameSpan: kw.Span,
		}, start)
	case token.KwExtern:
		p.advance()
		if _, ok := p.expect(token.KwFn, diag.SynUnexpectedToken, "expected 'fn' after 'extern'"); !ok {
			p.resyncStmt()
			return
		}
		p.parseCallable(owner, ast.DeclExtern, start)
	}
}

func (p *Parser) parseCallable(owner ast.ClassID, kind ast.DeclKind, start source.Span) {
	name, nameSpan, ok := p.parseIdent()
	if !ok {
		p.resyncUntil(token.KwLet, token.KwFn, token.KwInit, token.KwExtern, token.RBrace)
		return
	}
	p.parseCallableRest(owner, ast.Decl{Kind: kind, Owner: owner, Name: name, NameSpan: nameSpan}, start)
}

// parseCallableRest: "(" params ")" [ ":" Type ] ( block | ";" )
func (p *Parser) parseCallableRest(owner ast.ClassID, decl ast.Decl, start source.Span) {
	params, ok := p.parseParams()
	if !ok {
		p.resyncUntil(token.LBrace, token.Semicolon, token.RBrace)
	}
	decl.Params = params
	if decl.Kind != ast.DeclCtor && p.at(token.Colon) {
		p.advance()
		if decl.Result, ok = p.parseType(); !ok {
			p.resyncUntil(token.LBrace, token.Semicolon, token.RBrace)
		}
	}
	if decl.Kind == ast.DeclExtern {
		semi, _ := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after extern signature")
		decl.Span = start.Cover(semi.Span)
		p.arenas.Decls.NewDecl(decl)
		return
	}
	body, end, ok := p.parseBlock()
	if !ok {
		return
	}
	decl.Body = body
	decl.Span = start.Cover(end)
	p.arenas.Decls.NewDecl(decl)
}

// parseParams: "(" [ param { "," param } ] ")"
func (p *Parser) parseParams() ([]ast.ParamID, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters"); !ok {
		return nil, false
	}
	var params []ast.ParamID
	variadicSeen := false
	for !p.atOr(token.RParen, token.EOF) {
		if len(params) > 0 {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "expected ',' between parameters"); !ok {
				return params, false
			}
		}
		prm, ok := p.parseParam()
		if !ok {
			return params, false
		}
		if variadicSeen {
			p.report(diag.SynVariadicMustBeLast, diag.SevError, prm.Span, "variadic parameter must be the last one")
		}
		variadicSeen = variadicSeen || prm.Variadic
		params = append(params, p.arenas.Decls.NewParam(prm))
	}
	_, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters")
	return params, ok
}

// parseParam: { "@" Ident [ "(" Expr ")" ] } Ident ":" Type [ "..." ]
func (p *Parser) parseParam() (ast.Param, bool) {
	start := p.lx.Peek().Span
	var prm ast.Param
	for p.at(token.At) {
		at := p.advance()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return prm, false
		}
		attr := ast.Attr{Name: name, Span: at.Span.Cover(nameSpan)}
		if p.at(token.LParen) {
			p.advance()
			if attr.Value, ok = p.parseExpr(); !ok {
				return prm, false
			}
			closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after attribute value")
			if !ok {
				return prm, false
			}
			attr.Span = attr.Span.Cover(closeTok.Span)
		}
		prm.Attrs = append(prm.Attrs, attr)
	}
	var ok bool
	if prm.Name, prm.NameSpan, ok = p.parseIdent(); !ok {
		return prm, false
	}
	if _, ok = p.expect(token.Colon, diag.SynExpectColon, "expected ':' before parameter type"); !ok {
		return prm, false
	}
	if prm.Type, ok = p.parseType(); !ok {
		return prm, false
	}
	prm.Span = start.Cover(prm.Type.Span)
	if p.at(token.Ellipsis) {
		dots := p.advance()
		prm.Variadic = true
		prm.Span = prm.Span.Cover(dots.Span)
	}
	return prm, true
}

// parseType: Ident { "[" "]" }
func (p *Parser) parseType() (ast.TypeExpr, bool) {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectType, "expected type, got \""+p.lx.Peek().Text+"\"")
		return ast.TypeExpr{}, false
	}
	tok := p.advance()
	te := ast.TypeExpr{Name: p.arenas.Strings.Intern(tok.Text), Span: tok.Span}
	for p.at(token.LBracket) {
		p.advance()
		closeTok, ok := p.expect(token.RBracket, diag.SynUnexpectedToken, "expected ']' in array type")
		if !ok {
			return te, false
		}
		te.Dims++
		te.Span = te.Span.Cover(closeTok.Span)
	}
	return te, true
}
