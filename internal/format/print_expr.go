package format

import (
	"surgefmt/internal/ast"
	"surgefmt/internal/ops"
	"surgefmt/internal/token"
)

func (p *printer) printExpr(e ast.Expr) {
	switch x := e.(type) {
	case *ast.IdentExpr:
		p.token(x.Tok.Text)
	case *ast.LitExpr:
		p.token(x.Tok.Text)
	case *ast.UnaryExpr:
		p.token(x.Op.Text)
		p.printExpr(x.X)
	case *ast.BinaryExpr:
		p.printBinary(x)
	case *ast.CallExpr:
		p.printCall(x)
	case *ast.IndexExpr:
		p.printExpr(x.X)
		p.token("[")
		p.printExpr(x.Index)
		p.token("]")
	case *ast.MemberExpr:
		p.printExpr(x.X)
		p.token(x.Op.Text)
		p.token(x.Name.Text)
	case *ast.ParenExpr:
		p.token("(")
		p.printExpr(x.X)
		p.token(")")
	case *ast.ArrayExpr:
		p.printArray(x)
	}
}

// printBinary breaks after the operator, so a wrapped chain reads
//
//	a + b +
//	    c
//
// No group is opened here: the breaks belong to the nearest enclosing
// statement or argument group and unify with it.
func (p *printer) printBinary(x *ast.BinaryExpr) {
	p.printExpr(x.X)
	p.space()
	p.token(x.Op.Text)
	p.stream.Break(ops.BreakLine, true)
	p.printExpr(x.Y)
}

// printCall emits `f(args)`; the argument list is one unified group under
// continuation indent.
func (p *printer) printCall(x *ast.CallExpr) {
	p.printExpr(x.Fun)
	p.token("(")
	if len(x.Args) > 0 {
		undo := p.indent(p.opt.ContinuationIndent)
		close := p.group()
		p.stream.Break(ops.BreakLine, false)
		for i, a := range x.Args {
			if i > 0 {
				p.token(",")
				p.stream.Break(ops.BreakLine, true)
			}
			p.printExpr(a)
		}
		p.dropIf(token.Comma)
		close()
		undo()
	}
	p.token(")")
}

// printArray emits `[a, b, c]` as a fill group: elements wrap like words,
// several per line, instead of one per line.
func (p *printer) printArray(x *ast.ArrayExpr) {
	p.token("[")
	if len(x.Elems) > 0 {
		undo := p.indent(p.opt.ContinuationIndent)
		close := p.fillGroup()
		p.stream.Break(ops.BreakLine, false)
		for i, el := range x.Elems {
			if i > 0 {
				p.token(",")
				p.stream.Break(ops.BreakLine, true)
			}
			p.printExpr(el)
		}
		p.dropIf(token.Comma)
		close()
		undo()
	}
	p.token("]")
}
