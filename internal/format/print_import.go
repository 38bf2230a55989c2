package format

import "surgefmt/internal/ast"

// printImport emits one import on a single line. Imports never wrap: the
// canonicalizer has already normalized the block, and a path long enough to
// overflow reads better overlong than split.
func (p *printer) printImport(it *ast.ImportItem) {
	p.token("import")
	p.space()
	for i, seg := range it.Module {
		if i > 0 {
			p.token("/")
		}
		p.token(seg.Text)
	}
	if it.Alias != nil {
		p.space()
		p.token("as")
		p.space()
		p.token(it.Alias.Text)
	}
	switch {
	case it.Wildcard:
		p.token("::")
		p.token("*")
	case it.Member != nil:
		p.token("::")
		p.token(it.Member.Name.Text)
		if it.Member.Alias != nil {
			p.space()
			p.token("as")
			p.space()
			p.token(it.Member.Alias.Text)
		}
	}
	p.token(";")
}
