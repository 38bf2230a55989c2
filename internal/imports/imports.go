// Package imports canonicalizes the import block: one contiguous run of
// imports sorted by qualified name, duplicates removed, one import per line.
//
// Блок переписывается одной заменой, поэтому упорядочивание безопасно
// комбинируется с остальными правками макета.
package imports

import (
	"fmt"
	"sort"
	"strings"

	"surgefmt/internal/ast"
	"surgefmt/internal/patch"
	"surgefmt/internal/source"
	"surgefmt/internal/token"
)

// InterruptedError reports material that breaks the import block apart:
// a non-import item between imports, or a comment inside the block. Moving
// either silently would detach it from what it annotates.
type InterruptedError struct {
	Span source.Span
	What string
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("import block interrupted by %s", e.What)
}

// Canonicalize computes the replacements that rewrite the file's import
// block into canonical form. A file without imports yields no replacements.
func Canonicalize(f *ast.File, idx *token.Index) ([]patch.Replacement, error) {
	first, last := -1, -1
	for i, item := range f.Items {
		if _, ok := item.(*ast.ImportItem); ok {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return nil, nil
	}

	var imps []*ast.ImportItem
	for _, item := range f.Items[first : last+1] {
		switch it := item.(type) {
		case *ast.ImportItem:
			imps = append(imps, it)
		case *ast.EmptyItem:
			// stray ';' inside the block: dropped with the rewrite
		default:
			return nil, &InterruptedError{Span: item.Span(), What: "declaration"}
		}
	}

	blockSpan := f.Items[first].Span().Cover(f.Items[last].Span())
	if e, ok := commentInside(idx, blockSpan); ok {
		return nil, &InterruptedError{Span: e.Span, What: fmt.Sprintf("comment %q", e.Text)}
	}

	lines := canonicalLines(imps)
	text := strings.Join(lines, "\n")

	file := idx.File()
	if string(file.Content[blockSpan.Start:blockSpan.End]) == text {
		return nil, nil
	}
	return []patch.Replacement{{Span: blockSpan, Text: text}}, nil
}

// commentInside finds a comment that starts strictly inside the block span.
// Comments before the block and trailing the final semicolon stay untouched.
func commentInside(idx *token.Index, block source.Span) (token.Entry, bool) {
	for _, e := range idx.Entries() {
		if e.Class != token.ClassComment {
			continue
		}
		if e.Span.Start > block.Start && e.Span.Start < block.End {
			return e, true
		}
		if e.Span.Start >= block.End {
			break
		}
	}
	return token.Entry{}, false
}

// canonicalLines renders, sorts, and deduplicates the imports. Sort key is
// the canonical key (qualified name, then alias, then the wildcard marker),
// so the alias-less form precedes aliased ones and non-wildcard precedes
// wildcard. Identical lines collapse to the first occurrence.
func canonicalLines(imps []*ast.ImportItem) []string {
	type entry struct {
		key  string
		line string
	}
	entries := make([]entry, 0, len(imps))
	for _, it := range imps {
		entries = append(entries, entry{key: sortKey(it), line: Render(it)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].key < entries[j].key
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if len(lines) > 0 && lines[len(lines)-1] == e.line {
			continue
		}
		lines = append(lines, e.line)
	}
	return lines
}

// sortKey builds the canonical ordering key of one import:
// qualifiedName + " " + alias + " " + ("*" | "").
func sortKey(it *ast.ImportItem) string {
	alias := ""
	switch {
	case it.Member != nil && it.Member.Alias != nil:
		alias = it.Member.Alias.Text
	case it.Alias != nil:
		alias = it.Alias.Text
	}
	star := ""
	if it.Wildcard {
		star = "*"
	}
	return it.QualifiedName() + " " + alias + " " + star
}

// Render produces the canonical one-line form of a single import.
func Render(it *ast.ImportItem) string {
	var b strings.Builder
	b.WriteString("import ")
	for i, seg := range it.Module {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(seg.Text)
	}
	if it.Alias != nil {
		b.WriteString(" as ")
		b.WriteString(it.Alias.Text)
	}
	switch {
	case it.Wildcard:
		b.WriteString("::*")
	case it.Member != nil:
		b.WriteString("::")
		b.WriteString(it.Member.Name.Text)
		if it.Member.Alias != nil {
			b.WriteString(" as ")
			b.WriteString(it.Member.Alias.Text)
		}
	}
	b.WriteByte(';')
	return b.String()
}
