package format

import (
	"surgefmt/internal/ast"
	"surgefmt/internal/ops"
	"surgefmt/internal/token"
)

func (p *printer) printStmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.LetStmt:
		p.printLet(st)
	case *ast.ReturnStmt:
		p.token("return")
		if st.Value != nil {
			p.space()
			p.printWrapped(st.Value)
		}
		p.token(";")
	case *ast.BreakStmt:
		p.token("break")
		p.token(";")
	case *ast.ContinueStmt:
		p.token("continue")
		p.token(";")
	case *ast.ExprStmt:
		p.printWrapped(st.X)
		p.token(";")
	case *ast.EmptyStmt:
		p.token(";")
	case *ast.IfStmt:
		p.printIf(st)
	case *ast.WhileStmt:
		p.token("while")
		p.space()
		p.printWrapped(st.Cond)
		p.space()
		p.printBlock(st.Body)
	case *ast.ForStmt:
		p.token("for")
		p.space()
		p.token(st.Name.Text)
		p.space()
		p.token("in")
		p.space()
		p.printWrapped(st.Iter)
		p.space()
		p.printBlock(st.Body)
	case *ast.BlockStmt:
		p.printBlock(st.Block)
	}
}

// printLet emits `let [mut] name [: Type] [= value] ;`. The value hangs
// under continuation indent when the line overflows.
func (p *printer) printLet(s *ast.LetStmt) {
	p.token(s.Let.Text)
	p.space()
	if s.Mut != nil {
		p.token("mut")
		p.space()
	}
	p.token(s.Name.Text)
	if s.Type != nil {
		p.token(":")
		p.space()
		p.printType(s.Type)
	}
	if s.Value != nil {
		p.space()
		p.token("=")
		undo := p.indent(p.opt.ContinuationIndent)
		close := p.group()
		p.stream.Break(ops.BreakLine, true)
		p.printExpr(s.Value)
		close()
		undo()
	}
	p.token(";")
}

func (p *printer) printIf(s *ast.IfStmt) {
	p.token("if")
	p.space()
	p.printWrapped(s.Cond)
	p.space()
	p.printBlock(s.Then)
	if s.Else == nil {
		return
	}
	p.space()
	p.token("else")
	p.space()
	switch e := s.Else.(type) {
	case *ast.IfStmt:
		p.printIf(e)
	case *ast.BlockStmt:
		p.printBlock(e.Block)
	}
}

// printWrapped emits an expression inside its own group with continuation
// indent, so a long operand chain wraps as one unit.
func (p *printer) printWrapped(e ast.Expr) {
	undo := p.indent(p.opt.ContinuationIndent)
	close := p.group()
	p.printExpr(e)
	close()
	undo()
}

// printBlock emits `{ stmts }`. A block with neither statements nor comments
// collapses to `{}`; anything else renders multi-line.
func (p *printer) printBlock(b *ast.Block) {
	p.token("{")
	if len(b.Stmts) == 0 && !hasComment(b.RBrace.Leading) {
		p.token("}")
		return
	}
	undo := p.indent(p.opt.BlockIndent)
	for _, st := range b.Stmts {
		p.sepBreak()
		p.printStmt(st)
	}
	p.flushTrailing()
	for p.hasMoreComments() {
		if p.consumeLineGap() >= 2 {
			p.stream.Break(ops.BreakBlank, false)
		} else {
			p.stream.Break(ops.BreakForced, false)
		}
		p.emitCommentLine()
	}
	undo()
	p.consumeLineGap()
	p.stream.Break(ops.BreakForced, false)
	p.token("}")
}

func hasComment(lead []token.Trivia) bool {
	for _, tr := range lead {
		if tr.IsComment() {
			return true
		}
	}
	return false
}
