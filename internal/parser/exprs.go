package parser

import (
	"surgefmt/internal/ast"
	"surgefmt/internal/token"
)

// Binding powers, loosest first. Assignment is right-associative and only
// legal at statement level, but accepting it here keeps the grammar simple;
// the dialect has no expression-valued assignment anyway.
const (
	precAssign = iota + 1
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precCompare
	precShift
	precRange
	precAdditive
	precMultiplicative
)

func binaryPrec(k token.Kind) int {
	switch k {
	case token.Assign, token.PlusAssign, token.MinusAssign,
		token.StarAssign, token.SlashAssign, token.PercentAssign:
		return precAssign
	case token.OrOr:
		return precOr
	case token.AndAnd:
		return precAnd
	case token.Pipe:
		return precBitOr
	case token.Caret:
		return precBitXor
	case token.Amp:
		return precBitAnd
	case token.EqEq, token.BangEq:
		return precEquality
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precCompare
	case token.Shl, token.Shr:
		return precShift
	case token.DotDot, token.DotDotEq:
		return precRange
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return 0
	}
}

func rightAssoc(prec int) bool { return prec == precAssign }

func (p *parser) parseExpr() ast.Expr {
	return p.parseBinary(precAssign)
}

// parseBinary is precedence climbing over parseUnary.
func (p *parser) parseBinary(minPrec int) ast.Expr {
	lhs := p.parseUnary()
	for {
		prec := binaryPrec(p.peek().Kind)
		if prec < minPrec {
			return lhs
		}
		op := p.bump()
		next := prec + 1
		if rightAssoc(prec) {
			next = prec
		}
		rhs := p.parseBinary(next)
		lhs = &ast.BinaryExpr{X: lhs, Op: op, Y: rhs}
	}
}

func (p *parser) parseUnary() ast.Expr {
	switch p.peek().Kind {
	case token.Minus, token.Bang, token.Amp, token.Star:
		op := p.bump()
		return &ast.UnaryExpr{Op: op, X: p.parseUnary()}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary followed by call/index/member suffixes.
func (p *parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch p.peek().Kind {
		case token.LParen:
			lp := p.bump()
			call := &ast.CallExpr{Fun: x, LParen: lp}
			for !p.at(token.RParen) {
				call.Args = append(call.Args, p.parseExpr())
				if !p.at(token.Comma) {
					break
				}
				p.bump()
			}
			call.RParen = p.expect(token.RParen)
			x = call
		case token.LBracket:
			lb := p.bump()
			idx := p.parseExpr()
			rb := p.expect(token.RBracket)
			x = &ast.IndexExpr{X: x, LBracket: lb, Index: idx, RBracket: rb}
		case token.Dot, token.ColonColon:
			op := p.bump()
			name := p.expect(token.Ident)
			x = &ast.MemberExpr{X: x, Op: op, Name: name}
		default:
			return x
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.peek().Kind {
	case token.Ident, token.Underscore:
		return &ast.IdentExpr{Tok: p.bump()}
	case token.IntLit, token.FloatLit, token.StringLit, token.KwTrue, token.KwFalse:
		return &ast.LitExpr{Tok: p.bump()}
	case token.LParen:
		lp := p.bump()
		x := p.parseExpr()
		rp := p.expect(token.RParen)
		return &ast.ParenExpr{LParen: lp, X: x, RParen: rp}
	case token.LBracket:
		arr := &ast.ArrayExpr{LBracket: p.bump()}
		for !p.at(token.RBracket) {
			arr.Elems = append(arr.Elems, p.parseExpr())
			if !p.at(token.Comma) {
				break
			}
			p.bump()
		}
		arr.RBracket = p.expect(token.RBracket)
		return arr
	default:
		p.errUnexpected("expression")
		return nil
	}
}
