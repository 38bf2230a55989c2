package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"surgefmt/internal/doc"
	"surgefmt/internal/ops"
)

// overWide poisons any width sum it enters: a subtree containing a forced
// break or a multi-line verbatim token can never render flat.
const overWide = 1 << 20

func clampAdd(a, b int) int {
	s := a + b
	if s > overWide {
		return overWide
	}
	return s
}

// width returns the flat width of a node in display columns, memoized.
func (e *Engine) width(id doc.NodeID) int {
	if w, ok := e.widths.get(id); ok {
		return w
	}
	n := e.tree.Node(id)
	var w int
	switch n.Kind {
	case doc.NodeText:
		if strings.ContainsRune(n.Text, '\n') {
			// multi-line verbatim token (block comment): force the break
			w = overWide
		} else {
			w = runewidth.StringWidth(n.Text)
		}
	case doc.NodeDrop:
		w = 0
	case doc.NodeBreak:
		switch n.Break {
		case ops.BreakForced, ops.BreakBlank:
			w = overWide
		default:
			w = runewidth.StringWidth(ops.FlatForm(n.Break, n.Flexible))
		}
	case doc.NodeGroup, doc.NodeIndent:
		for _, c := range n.Children {
			w = clampAdd(w, e.width(c))
		}
	}
	e.widths.put(id, w)
	return w
}

// advance moves the column over literal text. Multi-line verbatim text sets
// the column to the width of its last line.
func advance(col int, text string) int {
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		return runewidth.StringWidth(text[i+1:])
	}
	return col + runewidth.StringWidth(text)
}
