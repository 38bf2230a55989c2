package format

import (
	"surgefmt/internal/ast"
	"surgefmt/internal/patch"
	"surgefmt/internal/source"
)

// collectRedundant returns deletion replacements for elements the formatter
// removes between the two layout passes: stray semicolons everywhere, and
// unused imports when enabled. Wildcard imports are always kept.
func collectRedundant(f *ast.File, file *source.File, removeUnused bool) []patch.Replacement {
	var used map[string]bool
	if removeUnused {
		used = usedNames(f)
	}

	var reps []patch.Replacement
	del := func(sp source.Span) {
		reps = append(reps, patch.Replacement{Span: expandLine(file.Content, sp)})
	}

	for _, item := range f.Items {
		switch it := item.(type) {
		case *ast.EmptyItem:
			del(it.Semi.Span)
		case *ast.ImportItem:
			if removeUnused && it.BoundName() != "" && !used[it.BoundName()] {
				del(it.Span())
			}
		case *ast.FnItem:
			collectEmptyStmts(it.Body, file, &reps)
		}
	}
	return reps
}

func collectEmptyStmts(b *ast.Block, file *source.File, reps *[]patch.Replacement) {
	for _, s := range b.Stmts {
		switch st := s.(type) {
		case *ast.EmptyStmt:
			*reps = append(*reps, patch.Replacement{Span: expandLine(file.Content, st.Semi.Span)})
		case *ast.IfStmt:
			collectEmptyStmts(st.Then, file, reps)
			if st.Else != nil {
				collectEmptyStmts(&ast.Block{Stmts: []ast.Stmt{st.Else}}, file, reps)
			}
		case *ast.WhileStmt:
			collectEmptyStmts(st.Body, file, reps)
		case *ast.ForStmt:
			collectEmptyStmts(st.Body, file, reps)
		case *ast.BlockStmt:
			collectEmptyStmts(st.Block, file, reps)
		}
	}
}

// expandLine widens a deletion span over the surrounding horizontal
// whitespace, and over the following newline when the element sat alone, so
// the removal does not leave a phantom blank line behind.
func expandLine(content []byte, sp source.Span) source.Span {
	for sp.Start > 0 && isBlankByte(content[sp.Start-1]) {
		sp.Start--
	}
	for int(sp.End) < len(content) && isBlankByte(content[sp.End]) {
		sp.End++
	}
	if int(sp.End) < len(content) && content[sp.End] == '\n' {
		sp.End++
	}
	return sp
}

func isBlankByte(b byte) bool { return b == ' ' || b == '\t' }

// usedNames collects every identifier that can refer to an import binding:
// expression roots and the first segment of type paths. Shadowing is not
// tracked; a textual match keeps the import.
func usedNames(f *ast.File) map[string]bool {
	used := make(map[string]bool)
	for _, item := range f.Items {
		switch it := item.(type) {
		case *ast.FnItem:
			for _, prm := range it.Params {
				useType(prm.Type, used)
			}
			if it.Ret != nil {
				useType(it.Ret, used)
			}
			useBlock(it.Body, used)
		case *ast.LetItem:
			useLet(it.Stmt, used)
		case *ast.TypeItem:
			useType(it.RHS, used)
		}
	}
	return used
}

func useLet(s *ast.LetStmt, used map[string]bool) {
	if s.Type != nil {
		useType(s.Type, used)
	}
	if s.Value != nil {
		useExpr(s.Value, used)
	}
}

func useBlock(b *ast.Block, used map[string]bool) {
	for _, s := range b.Stmts {
		useStmt(s, used)
	}
}

func useStmt(s ast.Stmt, used map[string]bool) {
	switch st := s.(type) {
	case *ast.LetStmt:
		useLet(st, used)
	case *ast.ReturnStmt:
		if st.Value != nil {
			useExpr(st.Value, used)
		}
	case *ast.ExprStmt:
		useExpr(st.X, used)
	case *ast.IfStmt:
		useExpr(st.Cond, used)
		useBlock(st.Then, used)
		if st.Else != nil {
			useStmt(st.Else, used)
		}
	case *ast.WhileStmt:
		useExpr(st.Cond, used)
		useBlock(st.Body, used)
	case *ast.ForStmt:
		useExpr(st.Iter, used)
		useBlock(st.Body, used)
	case *ast.BlockStmt:
		useBlock(st.Block, used)
	}
}

func useExpr(e ast.Expr, used map[string]bool) {
	switch x := e.(type) {
	case *ast.IdentExpr:
		used[x.Tok.Text] = true
	case *ast.UnaryExpr:
		useExpr(x.X, used)
	case *ast.BinaryExpr:
		useExpr(x.X, used)
		useExpr(x.Y, used)
	case *ast.CallExpr:
		useExpr(x.Fun, used)
		for _, a := range x.Args {
			useExpr(a, used)
		}
	case *ast.IndexExpr:
		useExpr(x.X, used)
		useExpr(x.Index, used)
	case *ast.MemberExpr:
		useExpr(x.X, used)
	case *ast.ParenExpr:
		useExpr(x.X, used)
	case *ast.ArrayExpr:
		for _, el := range x.Elems {
			useExpr(el, used)
		}
	}
}

func useType(t *ast.TypeExpr, used map[string]bool) {
	if t.IsArray() {
		useType(t.Elem, used)
		return
	}
	if len(t.Path) > 0 {
		used[t.Path[0].Text] = true
	}
	for _, a := range t.Args {
		useType(a, used)
	}
}
