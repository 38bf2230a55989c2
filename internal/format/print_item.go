package format

import (
	"surgefmt/internal/ast"
	"surgefmt/internal/ops"
	"surgefmt/internal/token"
)

func (p *printer) printItem(item ast.Item) {
	switch it := item.(type) {
	case *ast.ImportItem:
		p.printImport(it)
	case *ast.FnItem:
		p.printFn(it)
	case *ast.LetItem:
		p.printLet(it.Stmt)
	case *ast.TypeItem:
		p.printTypeItem(it)
	case *ast.EmptyItem:
		p.token(";")
	}
}

// printFn emits the signature as one group (arguments wrap together under
// continuation indent) and the body outside it, so a multi-line body never
// forces the signature to break.
func (p *printer) printFn(it *ast.FnItem) {
	if it.Pub != nil {
		p.token("pub")
		p.space()
	}
	p.token("fn")
	p.space()
	p.token(it.Name.Text)
	p.token("(")
	if len(it.Params) > 0 {
		undo := p.indent(p.opt.ContinuationIndent)
		close := p.group()
		p.stream.Break(ops.BreakLine, false)
		for i, prm := range it.Params {
			if i > 0 {
				p.token(",")
				p.stream.Break(ops.BreakLine, true)
			}
			p.token(prm.Name.Text)
			p.token(":")
			p.space()
			p.printType(prm.Type)
		}
		p.dropIf(token.Comma)
		close()
		undo()
	}
	p.token(")")
	if it.Ret != nil {
		p.space()
		p.token("->")
		p.space()
		p.printType(it.Ret)
	}
	p.space()
	p.printBlock(it.Body)
}

func (p *printer) printTypeItem(it *ast.TypeItem) {
	if it.Pub != nil {
		p.token("pub")
		p.space()
	}
	p.token("type")
	p.space()
	p.token(it.Name.Text)
	p.space()
	p.token("=")
	p.space()
	p.printType(it.RHS)
	p.token(";")
}

// printType emits a type reference flat. Types in this dialect are short;
// they never introduce break opportunities of their own.
func (p *printer) printType(t *ast.TypeExpr) {
	if t.IsArray() {
		p.token("[")
		p.printType(t.Elem)
		p.token("]")
		return
	}
	for i, seg := range t.Path {
		if i > 0 {
			p.token("::")
		}
		p.token(seg.Text)
	}
	if len(t.Args) > 0 {
		p.token("<")
		for i, a := range t.Args {
			if i > 0 {
				p.token(",")
				p.space()
			}
			p.printType(a)
		}
		p.token(">")
	}
}
