package parser

import (
	"surgefmt/internal/ast"
	"surgefmt/internal/diag"
	"surgefmt/internal/token"
)

func (p *parser) parseItem() ast.Item {
	switch p.peek().Kind {
	case token.KwImport:
		return p.parseImport()
	case token.KwPub, token.KwFn, token.KwType:
		return p.parsePubItem()
	case token.KwLet, token.KwConst:
		return &ast.LetItem{Stmt: p.parseLetStmt()}
	case token.Semicolon:
		return &ast.EmptyItem{Semi: p.bump()}
	default:
		tok := p.peek()
		diag.ReportError(p.opts.Reporter, diag.ParseExpectedItem, tok.Span,
			"expected item (import, fn, type, let), found "+quoted(tok))
		panic(bail{})
	}
}

func quoted(t token.Token) string {
	if t.Kind == token.EOF {
		return "end of file"
	}
	return "\"" + t.Text + "\""
}

// import a/b [as c] [:: Name [as X] | ::*] ;
func (p *parser) parseImport() *ast.ImportItem {
	it := &ast.ImportItem{Import: p.bump()}

	it.Module = append(it.Module, p.expect(token.Ident))
	for p.at(token.Slash) {
		p.bump()
		it.Module = append(it.Module, p.expect(token.Ident))
	}

	if p.at(token.KwAs) {
		p.bump()
		alias := p.expect(token.Ident)
		it.Alias = &alias
	}

	if p.at(token.ColonColon) {
		p.bump()
		if p.at(token.Star) {
			p.bump()
			it.Wildcard = true
		} else {
			member := &ast.ImportMember{Name: p.expect(token.Ident)}
			if p.at(token.KwAs) {
				p.bump()
				alias := p.expect(token.Ident)
				member.Alias = &alias
			}
			it.Member = member
		}
	}

	it.Semi = p.expect(token.Semicolon)
	return it
}

func (p *parser) parsePubItem() ast.Item {
	var pub *token.Token
	if p.at(token.KwPub) {
		t := p.bump()
		pub = &t
	}
	switch p.peek().Kind {
	case token.KwFn:
		return p.parseFn(pub)
	case token.KwType:
		return p.parseTypeItem(pub)
	default:
		p.errUnexpected("item after 'pub'")
		return nil
	}
}

// [pub] fn name(params) [-> Type] { ... }
func (p *parser) parseFn(pub *token.Token) *ast.FnItem {
	it := &ast.FnItem{Pub: pub, Fn: p.bump()}
	it.Name = p.expect(token.Ident)
	p.expect(token.LParen)
	for !p.at(token.RParen) {
		name := p.expect(token.Ident)
		p.expect(token.Colon)
		it.Params = append(it.Params, ast.Param{Name: name, Type: p.parseType()})
		if !p.at(token.Comma) {
			break
		}
		p.bump()
	}
	p.expect(token.RParen)
	if p.at(token.Arrow) {
		p.bump()
		it.Ret = p.parseType()
	}
	it.Body = p.parseBlock()
	return it
}

// [pub] type Name = Type ;
func (p *parser) parseTypeItem(pub *token.Token) *ast.TypeItem {
	it := &ast.TypeItem{Pub: pub, Type: p.bump()}
	it.Name = p.expect(token.Ident)
	p.expect(token.Assign)
	it.RHS = p.parseType()
	it.Semi = p.expect(token.Semicolon)
	return it
}

// Type := Ident ('::' Ident)* ('<' Type (',' Type)* '>')? | '[' Type ']'
func (p *parser) parseType() *ast.TypeExpr {
	if p.at(token.LBracket) {
		lb := p.bump()
		elem := p.parseType()
		rb := p.expect(token.RBracket)
		return &ast.TypeExpr{LBracket: &lb, Elem: elem, RBracket: &rb}
	}

	t := &ast.TypeExpr{}
	t.Path = append(t.Path, p.expect(token.Ident))
	for p.at(token.ColonColon) {
		p.bump()
		t.Path = append(t.Path, p.expect(token.Ident))
	}
	if p.at(token.Lt) {
		p.bump()
		t.Args = append(t.Args, p.parseType())
		for p.at(token.Comma) {
			p.bump()
			t.Args = append(t.Args, p.parseType())
		}
		p.expect(token.Gt)
	}
	return t
}
