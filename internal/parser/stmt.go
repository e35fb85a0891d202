package parser

import (
	"named/internal/ast"
	"named/internal/diag"
	"named/internal/source"
	"named/internal/token"
)

// parseBlock: "{" { stmt } "}". Возвращает span закрывающей скобки.
func (p *Parser) parseBlock() ([]ast.StmtID, source.Span, bool) {
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{' to open a block"); !ok {
		p.resyncUntil(token.RBrace, token.KwFn, token.KwInit, token.KwLet, token.KwExtern)
		if p.at(token.RBrace) {
			p.advance()
		}
		return nil, p.lastSpan, false
	}
	var stmts []ast.StmtID
	for !p.atOr(token.RBrace, token.EOF) {
		if id, ok := p.parseStmt(); ok {
			stmts = append(stmts, id)
		} else {
			p.resyncStmt()
		}
	}
	closeTok, ok := p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close block")
	return stmts, closeTok.Span, ok
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	start := p.lx.Peek().Span
	switch p.lx.Peek().Kind {
	case token.KwLet:
		p.advance()
		name, nameSpan, ok := p.parseIdent()
		if !ok {
			return ast.NoStmtID, false
		}
		st := ast.Stmt{Kind: ast.StmtLet, Name: name, NameSpan: nameSpan}
		if _, ok = p.expect(token.Colon, diag.SynExpectColon, "expected ':' before local type"); !ok {
			return ast.NoStmtID, false
		}
		if st.Type, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
		if p.at(token.Assign) {
			p.advance()
			if st.Expr, ok = p.parseExpr(); !ok {
				return ast.NoStmtID, false
			}
		}
		return p.finishStmt(st, start)
	case token.KwReturn:
		p.advance()
		st := ast.Stmt{Kind: ast.StmtReturn}
		if !p.at(token.Semicolon) {
			var ok bool
			if st.Expr, ok = p.parseExpr(); !ok {
				return ast.NoStmtID, false
			}
		}
		return p.finishStmt(st, start)
	default:
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		return p.finishStmt(ast.Stmt{Kind: ast.StmtExpr, Expr: expr}, start)
	}
}

func (p *Parser) finishStmt(st ast.Stmt, start source.Span) (ast.StmtID, bool) {
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after statement")
	if !ok {
		return ast.NoStmtID, false
	}
	st.Span = start.Cover(semi.Span)
	return p.arenas.Stmts.New(st), true
}
