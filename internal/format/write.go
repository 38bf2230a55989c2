package format

import (
	"bytes"

	"surgefmt/internal/doc"
	"surgefmt/internal/layout"
	"surgefmt/internal/patch"
	"surgefmt/internal/source"
)

// sentinelByte guards trailing whitespace that belongs to verbatim comment
// text. The writer's line trimming stops at it, and it is stripped before
// any byte reaches a replacement. Input containing it is rejected up front.
const sentinelByte = 0x03

// anchor ties an original token range to its position in the rendered bytes.
// The bytes between two anchors are a gap; only gaps ever differ.
type anchor struct {
	span     source.Span
	outStart int
	outEnd   int
}

// writer renders the document tree according to a layout plan and then
// derives the minimal replacement list by comparing gaps against the
// original bytes.
type writer struct {
	tree    *doc.Tree
	plan    *layout.Plan
	out     []byte
	anchors []anchor
}

// render executes the plan over the tree and returns the replacements that
// turn the original file content into the rendered form. An unchanged file
// yields an empty list.
func render(tree *doc.Tree, plan *layout.Plan, f *source.File) []patch.Replacement {
	w := &writer{tree: tree, plan: plan}
	w.visit(tree.Root)
	w.trimLine()
	return w.replacements(f)
}

func (w *writer) visit(id doc.NodeID) {
	n := w.tree.Node(id)
	switch n.Kind {
	case doc.NodeText:
		start := len(w.out)
		w.out = append(w.out, n.Text...)
		if n.Anchored {
			w.anchors = append(w.anchors, anchor{span: n.Span, outStart: start, outEnd: len(w.out)})
		}
		if endsWithBlank(n.Text) {
			w.out = append(w.out, sentinelByte)
		}
	case doc.NodeDrop:
		// the token's original bytes dissolve into the surrounding gap
	case doc.NodeBreak:
		switch w.plan.Forms[id] {
		case layout.FormSpace:
			w.out = append(w.out, ' ')
		case layout.FormNewline:
			w.newline(w.plan.IndentAt[id], 1)
		case layout.FormBlank:
			w.newline(w.plan.IndentAt[id], 2)
		case layout.FormNone:
		}
	case doc.NodeGroup, doc.NodeIndent:
		for _, c := range n.Children {
			w.visit(c)
		}
	}
}

func (w *writer) newline(indent, count int) {
	w.trimLine()
	for i := 0; i < count; i++ {
		w.out = append(w.out, '\n')
	}
	for i := 0; i < indent; i++ {
		w.out = append(w.out, ' ')
	}
}

// trimLine strips trailing spaces and tabs of the current output line. The
// sentinel stops the trim where a comment's own whitespace begins.
func (w *writer) trimLine() {
	i := len(w.out)
	for i > 0 && (w.out[i-1] == ' ' || w.out[i-1] == '\t') {
		i--
	}
	w.out = w.out[:i]
}

func endsWithBlank(s string) bool {
	if len(s) == 0 {
		return false
	}
	b := s[len(s)-1]
	return b == ' ' || b == '\t'
}

// replacements compares every rendered gap against the original gap and
// records a replacement where they differ. Anchored token text is identical
// to the original by construction and never compared.
func (w *writer) replacements(f *source.File) []patch.Replacement {
	var reps []patch.Replacement
	var origEnd uint32
	outEnd := 0

	flush := func(origTo uint32, outTo int) {
		origGap := f.Content[origEnd:origTo]
		outGap := stripSentinel(w.out[outEnd:outTo])
		if !bytes.Equal(origGap, outGap) {
			reps = append(reps, patch.Replacement{
				Span: source.Span{File: f.ID, Start: origEnd, End: origTo},
				Text: string(outGap),
			})
		}
	}

	for _, a := range w.anchors {
		flush(a.span.Start, a.outStart)
		origEnd = a.span.End
		outEnd = a.outEnd
	}
	contentLen := uint32(len(f.Content))
	flush(contentLen, len(w.out))
	return reps
}

func stripSentinel(b []byte) []byte {
	if bytes.IndexByte(b, sentinelByte) < 0 {
		return b
	}
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if c != sentinelByte {
			out = append(out, c)
		}
	}
	return out
}
