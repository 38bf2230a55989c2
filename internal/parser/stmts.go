package parser

import (
	"surgefmt/internal/ast"
	"surgefmt/internal/token"
)

func (p *parser) parseBlock() *ast.Block {
	b := &ast.Block{LBrace: p.expect(token.LBrace)}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		b.Stmts = append(b.Stmts, p.parseStmt())
	}
	b.RBrace = p.expect(token.RBrace)
	return b
}

func (p *parser) parseStmt() ast.Stmt {
	switch p.peek().Kind {
	case token.KwLet, token.KwConst:
		return p.parseLetStmt()
	case token.KwReturn:
		ret := p.bump()
		if p.at(token.Semicolon) {
			return &ast.ReturnStmt{Return: ret, Semi: p.bump()}
		}
		value := p.parseExpr()
		return &ast.ReturnStmt{Return: ret, Value: value, Semi: p.expect(token.Semicolon)}
	case token.KwBreak:
		kw := p.bump()
		return &ast.BreakStmt{Break: kw, Semi: p.expect(token.Semicolon)}
	case token.KwContinue:
		kw := p.bump()
		return &ast.ContinueStmt{Continue: kw, Semi: p.expect(token.Semicolon)}
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		kw := p.bump()
		cond := p.parseExpr()
		return &ast.WhileStmt{While: kw, Cond: cond, Body: p.parseBlock()}
	case token.KwFor:
		kw := p.bump()
		name := p.expect(token.Ident)
		in := p.expect(token.KwIn)
		iter := p.parseExpr()
		return &ast.ForStmt{For: kw, Name: name, In: in, Iter: iter, Body: p.parseBlock()}
	case token.LBrace:
		return &ast.BlockStmt{Block: p.parseBlock()}
	case token.Semicolon:
		return &ast.EmptyStmt{Semi: p.bump()}
	default:
		x := p.parseExpr()
		return &ast.ExprStmt{X: x, Semi: p.expect(token.Semicolon)}
	}
}

// let [mut] name [: Type] [= expr] ;
func (p *parser) parseLetStmt() *ast.LetStmt {
	s := &ast.LetStmt{Let: p.bump()}
	if p.at(token.KwMut) {
		t := p.bump()
		s.Mut = &t
	}
	s.Name = p.expect(token.Ident)
	if p.at(token.Colon) {
		p.bump()
		s.Type = p.parseType()
	}
	if p.at(token.Assign) {
		p.bump()
		s.Value = p.parseExpr()
	}
	s.Semi = p.expect(token.Semicolon)
	return s
}

func (p *parser) parseIf() *ast.IfStmt {
	s := &ast.IfStmt{If: p.bump()}
	s.Cond = p.parseExpr()
	s.Then = p.parseBlock()
	if p.at(token.KwElse) {
		p.bump()
		if p.at(token.KwIf) {
			s.Else = p.parseIf()
		} else {
			s.Else = &ast.BlockStmt{Block: p.parseBlock()}
		}
	}
	return s
}
