package parser

import (
	"named/internal/ast"
	"named/internal/diag"
	"named/internal/source"
	"named/internal/token"
)

// parseExpr: postfix [ "=" Expr ]  (присваивание правоассоциативно)
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	lhs, ok := p.parsePostfixExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.Assign) {
		return lhs, true
	}
	p.advance()
	rhs, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	sp := p.arenas.Exprs.Get(lhs).Span.Cover(p.arenas.Exprs.Get(rhs).Span)
	return p.arenas.Exprs.NewAssign(sp, lhs, rhs), true
}

// parsePostfixExpr: primary { "." Ident "(" args ")" }
func (p *Parser) parsePostfixExpr() (ast.ExprID, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.Dot) {
		p.advance()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoExprID, false
		}
		args, closeSpan, ok := p.parseArgs()
		if !ok {
			return ast.NoExprID, false
		}
		sp := p.arenas.Exprs.Get(expr).Span.Cover(closeSpan)
		expr = p.arenas.Exprs.NewCall(sp, expr, name, nameSpan, args)
	}
	return expr, true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		name := p.arenas.Strings.Intern(tok.Text)
		if !p.at(token.LParen) {
			return p.arenas.Exprs.NewIdent(tok.Span, name), true
		}
		args, closeSpan, ok := p.parseArgs()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewCall(tok.Span.Cover(closeSpan), ast.NoExprID, name, tok.Span, args), true
	case token.KwNew:
		p.advance()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoExprID, false
		}
		args, closeSpan, ok := p.parseArgs()
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewNew(tok.Span.Cover(closeSpan), name, nameSpan, args), true
	case token.KwThis:
		p.advance()
		return p.arenas.Exprs.NewThis(tok.Span), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		if !ok {
			return ast.NoExprID, false
		}
		return p.arenas.Exprs.NewGroup(tok.Span.Cover(closeTok.Span), inner), true
	}
	if kind, ok := literalKind(tok.Kind); ok {
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, kind, p.arenas.Strings.Intern(tok.Text)), true
	}
	p.err(diag.SynExpectExpression, "expected expression, got \""+tok.Text+"\"")
	return ast.NoExprID, false
}

func literalKind(k token.Kind) (ast.ExprLitKind, bool) {
	switch k {
	case token.IntLit:
		return ast.LitInt, true
	case token.LongLit:
		return ast.LitLong, true
	case token.FloatLit:
		return ast.LitFloat, true
	case token.DoubleLit:
		return ast.LitDouble, true
	case token.CharLit:
		return ast.LitChar, true
	case token.StringLit:
		return ast.LitString, true
	case token.KwTrue:
		return ast.LitTrue, true
	case token.KwFalse:
		return ast.LitFalse, true
	case token.KwNull:
		return ast.LitNull, true
	}
	return 0, false
}

// parseArgs: "(" [ Expr { "," Expr } ] ")"; возвращает span ')'.
func (p *Parser) parseArgs() ([]ast.ExprID, source.Span, bool) {
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '('"); !ok {
		return nil, source.Span{}, false
	}
	var args []ast.ExprID
	for !p.atOr(token.RParen, token.EOF) {
		if len(args) > 0 {
			if _, ok := p.expect(token.Comma, diag.SynUnclosedParen, "expected ',' or ')' in argument list"); !ok {
				return nil, source.Span{}, false
			}
		}
		arg, ok := p.parseExpr()
		if !ok {
			return nil, source.Span{}, false
		}
		args = append(args, arg)
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after arguments")
	return args, closeTok.Span, ok
}
