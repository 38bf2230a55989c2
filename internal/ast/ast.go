// Package ast defines the syntax tree the formatter prints from.
//
// Nodes keep their concrete tokens (with leading trivia) so the printer can
// re-emit comments verbatim and query original blank lines. The compiler-style
// arena builder is intentionally not used here: a formatter holds a single
// file at a time and pointer nodes keep the printer readable.
package ast

import (
	"surgefmt/internal/source"
	"surgefmt/internal/token"
)

// File is a parsed source file.
type File struct {
	Items []Item
	EOF   token.Token // carries trailing trivia
}

// Item is a top-level declaration.
type Item interface {
	Node
	itemNode()
}

// Node is any syntax node with a source extent.
type Node interface {
	Span() source.Span
}

// ImportMember is the `::Name [as Alias]` tail of an import.
type ImportMember struct {
	Name  token.Token
	Alias *token.Token
}

// ImportItem is `import a/b [as c] [::Name [as X] | ::*] ;`.
type ImportItem struct {
	Import   token.Token
	Module   []token.Token // path segments, '/'-separated in source
	Alias    *token.Token
	Member   *ImportMember
	Wildcard bool // `::*`
	Semi     token.Token
}

func (it *ImportItem) itemNode() {}
func (it *ImportItem) Span() source.Span {
	return it.Import.Span.Cover(it.Semi.Span)
}

// QualifiedName joins the module path with '/' and appends the member name
// with '::' when present. This is the sort key base for canonicalization.
func (it *ImportItem) QualifiedName() string {
	name := ""
	for i, seg := range it.Module {
		if i > 0 {
			name += "/"
		}
		name += seg.Text
	}
	if it.Member != nil {
		name += "::" + it.Member.Name.Text
	}
	return name
}

// BoundName returns the identifier the import introduces into scope.
func (it *ImportItem) BoundName() string {
	if it.Member != nil {
		if it.Member.Alias != nil {
			return it.Member.Alias.Text
		}
		return it.Member.Name.Text
	}
	if it.Alias != nil {
		return it.Alias.Text
	}
	if it.Wildcard || len(it.Module) == 0 {
		return ""
	}
	return it.Module[len(it.Module)-1].Text
}

// Param is one `name: Type` function parameter.
type Param struct {
	Name token.Token
	Type *TypeExpr
}

// FnItem is `[pub] fn name(params) [-> Type] { ... }`.
type FnItem struct {
	Pub    *token.Token
	Fn     token.Token
	Name   token.Token
	Params []Param
	Ret    *TypeExpr
	Body   *Block
}

func (it *FnItem) itemNode() {}
func (it *FnItem) Span() source.Span {
	sp := it.Fn.Span
	if it.Pub != nil {
		sp = sp.Cover(it.Pub.Span)
	}
	return sp.Cover(it.Body.Span())
}

// LetItem is a top-level `let`/`const` binding.
type LetItem struct {
	Stmt *LetStmt
}

func (it *LetItem) itemNode()          {}
func (it *LetItem) Span() source.Span { return it.Stmt.Span() }

// TypeItem is `[pub] type Name = Type ;`.
type TypeItem struct {
	Pub  *token.Token
	Type token.Token
	Name token.Token
	RHS  *TypeExpr
	Semi token.Token
}

func (it *TypeItem) itemNode() {}
func (it *TypeItem) Span() source.Span {
	sp := it.Type.Span
	if it.Pub != nil {
		sp = sp.Cover(it.Pub.Span)
	}
	return sp.Cover(it.Semi.Span)
}

// EmptyItem is a stray top-level `;`. Printed as-is by the layout pass and
// stripped by the redundancy pass between the two passes.
type EmptyItem struct {
	Semi token.Token
}

func (it *EmptyItem) itemNode()          {}
func (it *EmptyItem) Span() source.Span { return it.Semi.Span }

// TypeExpr is a type reference: named (with optional generic args) or array.
type TypeExpr struct {
	// Named form: Path segments joined by '::', optional Args in <>.
	Path []token.Token
	Args []*TypeExpr

	// Array form: [Elem].
	LBracket *token.Token
	Elem     *TypeExpr
	RBracket *token.Token
}

func (t *TypeExpr) IsArray() bool { return t.Elem != nil }

func (t *TypeExpr) Span() source.Span {
	if t.IsArray() {
		return t.LBracket.Span.Cover(t.RBracket.Span)
	}
	sp := t.Path[0].Span
	sp = sp.Cover(t.Path[len(t.Path)-1].Span)
	for _, a := range t.Args {
		sp = sp.Cover(a.Span())
	}
	return sp
}

// Block is `{ stmts }`.
type Block struct {
	LBrace token.Token
	Stmts  []Stmt
	RBrace token.Token
}

func (b *Block) Span() source.Span { return b.LBrace.Span.Cover(b.RBrace.Span) }

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// LetStmt is `let [mut] name [: Type] [= expr] ;`.
type LetStmt struct {
	Let   token.Token // 'let' or 'const'
	Mut   *token.Token
	Name  token.Token
	Type  *TypeExpr
	Value Expr
	Semi  token.Token
}

func (s *LetStmt) stmtNode()          {}
func (s *LetStmt) Span() source.Span { return s.Let.Span.Cover(s.Semi.Span) }

// ReturnStmt is `return [expr] ;`.
type ReturnStmt struct {
	Return token.Token
	Value  Expr // nil when bare return
	Semi   token.Token
}

func (s *ReturnStmt) stmtNode()          {}
func (s *ReturnStmt) Span() source.Span { return s.Return.Span.Cover(s.Semi.Span) }

// BreakStmt is `break ;`; ContinueStmt is `continue ;`.
type BreakStmt struct {
	Break token.Token
	Semi  token.Token
}

func (s *BreakStmt) stmtNode()          {}
func (s *BreakStmt) Span() source.Span { return s.Break.Span.Cover(s.Semi.Span) }

type ContinueStmt struct {
	Continue token.Token
	Semi     token.Token
}

func (s *ContinueStmt) stmtNode()          {}
func (s *ContinueStmt) Span() source.Span { return s.Continue.Span.Cover(s.Semi.Span) }

// ExprStmt is `expr ;` (including assignments).
type ExprStmt struct {
	X    Expr
	Semi token.Token
}

func (s *ExprStmt) stmtNode()          {}
func (s *ExprStmt) Span() source.Span { return s.X.Span().Cover(s.Semi.Span) }

// EmptyStmt is a bare `;`. The redundancy pass removes these.
type EmptyStmt struct {
	Semi token.Token
}

func (s *EmptyStmt) stmtNode()          {}
func (s *EmptyStmt) Span() source.Span { return s.Semi.Span }

// IfStmt is `if expr { } [else if ... | else { }]`.
type IfStmt struct {
	If   token.Token
	Cond Expr
	Then *Block
	Else Stmt // *IfStmt, *BlockStmt, or nil
}

func (s *IfStmt) stmtNode() {}
func (s *IfStmt) Span() source.Span {
	sp := s.If.Span.Cover(s.Then.Span())
	if s.Else != nil {
		sp = sp.Cover(s.Else.Span())
	}
	return sp
}

// WhileStmt is `while expr { }`.
type WhileStmt struct {
	While token.Token
	Cond  Expr
	Body  *Block
}

func (s *WhileStmt) stmtNode()          {}
func (s *WhileStmt) Span() source.Span { return s.While.Span.Cover(s.Body.Span()) }

// ForStmt is `for name in expr { }`.
type ForStmt struct {
	For  token.Token
	Name token.Token
	In   token.Token
	Iter Expr
	Body *Block
}

func (s *ForStmt) stmtNode()          {}
func (s *ForStmt) Span() source.Span { return s.For.Span.Cover(s.Body.Span()) }

// BlockStmt is a nested bare block.
type BlockStmt struct {
	Block *Block
}

func (s *BlockStmt) stmtNode()          {}
func (s *BlockStmt) Span() source.Span { return s.Block.Span() }

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// IdentExpr is a bare identifier (or `_`).
type IdentExpr struct {
	Tok token.Token
}

func (e *IdentExpr) exprNode()          {}
func (e *IdentExpr) Span() source.Span { return e.Tok.Span }

// LitExpr is an int/float/string/bool literal.
type LitExpr struct {
	Tok token.Token
}

func (e *LitExpr) exprNode()          {}
func (e *LitExpr) Span() source.Span { return e.Tok.Span }

// UnaryExpr is `-x`, `!x`, `&x`, `*x`.
type UnaryExpr struct {
	Op token.Token
	X  Expr
}

func (e *UnaryExpr) exprNode()          {}
func (e *UnaryExpr) Span() source.Span { return e.Op.Span.Cover(e.X.Span()) }

// BinaryExpr is `x op y`, including assignment operators.
type BinaryExpr struct {
	X  Expr
	Op token.Token
	Y  Expr
}

func (e *BinaryExpr) exprNode()          {}
func (e *BinaryExpr) Span() source.Span { return e.X.Span().Cover(e.Y.Span()) }

// CallExpr is `f(args)`.
type CallExpr struct {
	Fun    Expr
	LParen token.Token
	Args   []Expr
	RParen token.Token
}

func (e *CallExpr) exprNode()          {}
func (e *CallExpr) Span() source.Span { return e.Fun.Span().Cover(e.RParen.Span) }

// IndexExpr is `x[i]`.
type IndexExpr struct {
	X        Expr
	LBracket token.Token
	Index    Expr
	RBracket token.Token
}

func (e *IndexExpr) exprNode()          {}
func (e *IndexExpr) Span() source.Span { return e.X.Span().Cover(e.RBracket.Span) }

// MemberExpr is `x.name` or `x::name`.
type MemberExpr struct {
	X    Expr
	Op   token.Token // Dot or ColonColon
	Name token.Token
}

func (e *MemberExpr) exprNode()          {}
func (e *MemberExpr) Span() source.Span { return e.X.Span().Cover(e.Name.Span) }

// ParenExpr is `(x)`.
type ParenExpr struct {
	LParen token.Token
	X      Expr
	RParen token.Token
}

func (e *ParenExpr) exprNode()          {}
func (e *ParenExpr) Span() source.Span { return e.LParen.Span.Cover(e.RParen.Span) }

// ArrayExpr is `[a, b, c]`.
type ArrayExpr struct {
	LBracket token.Token
	Elems    []Expr
	RBracket token.Token
}

func (e *ArrayExpr) exprNode()          {}
func (e *ArrayExpr) Span() source.Span { return e.LBracket.Span.Cover(e.RBracket.Span) }
