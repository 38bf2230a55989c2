// Package layout is the break engine: it walks the document model with a
// running column/indent state and decides, per group, whether it fits on the
// current line.
//
// Назначение: превратить дерево документа в план рендеринга (flat/broken по
// группам, конкретная форма каждого break). Не делает: вывода текста,
// вычисления замен — это Writer.
package layout

import (
	"surgefmt/internal/doc"
	"surgefmt/internal/ops"
)

// Form is the concrete rendering of one break.
type Form uint8

const (
	FormNone Form = iota
	FormSpace
	FormNewline
	FormBlank // newline + empty line
)

// State carries the running column and indent. Each recursive call receives
// and returns its own value; nothing is shared.
type State struct {
	Col    int
	Indent int
}

// Plan records the engine's decisions, indexed by doc.NodeID.
type Plan struct {
	Broken   []bool // per group: render broken
	Forms    []Form // per break: concrete rendering
	IndentAt []int  // per break rendered as newline: indent column
}

// Engine computes the rendering plan for one document tree.
type Engine struct {
	tree     *doc.Tree
	maxWidth int
	widths   *cache
}

// New creates an engine for the tree under the given column budget.
func New(tree *doc.Tree, maxWidth int) *Engine {
	return &Engine{
		tree:     tree,
		maxWidth: maxWidth,
		widths:   newCache(len(tree.Nodes)),
	}
}

// Plan evaluates the whole tree. The root group always renders broken:
// top-level items sit on their own lines regardless of width.
func (e *Engine) Plan() *Plan {
	p := &Plan{
		Broken:   make([]bool, len(e.tree.Nodes)),
		Forms:    make([]Form, len(e.tree.Nodes)),
		IndentAt: make([]int, len(e.tree.Nodes)),
	}
	st := State{}
	e.visitBroken(e.tree.Root, st, p)
	return p
}

// visitGroup decides flat vs broken for one group and returns the state
// after rendering it. Прямой порядок: решение внешней группы первым,
// внутренние группы переоцениваются только если внешняя сломана.
func (e *Engine) visitGroup(id doc.NodeID, st State, p *Plan) State {
	n := e.tree.Node(id)
	if n.Mode == ops.ModeFill {
		return e.visitFill(id, st, p)
	}
	w := e.width(id)
	if st.Col+w <= e.maxWidth {
		// Fits flat. Flatness is contagious: children are not re-evaluated.
		e.markFlat(id, p)
		st.Col += w
		return st
	}
	p.Broken[id] = true
	return e.visitBroken(id, st, p)
}

// visitBroken renders a group broken: immediate Line breaks become newlines,
// child groups are evaluated independently against the post-break state.
func (e *Engine) visitBroken(id doc.NodeID, st State, p *Plan) State {
	p.Broken[id] = true
	for _, c := range e.tree.Node(id).Children {
		st = e.visitChild(c, st, p)
	}
	return st
}

func (e *Engine) visitChild(id doc.NodeID, st State, p *Plan) State {
	n := e.tree.Node(id)
	switch n.Kind {
	case doc.NodeText:
		st.Col = advance(st.Col, n.Text)
	case doc.NodeDrop:
		// consumes an original token, renders nothing
	case doc.NodeBreak:
		switch n.Break {
		case ops.BreakSpace:
			p.Forms[id] = FormSpace
			st.Col++
		case ops.BreakBlank:
			p.Forms[id] = FormBlank
			p.IndentAt[id] = st.Indent
			st.Col = st.Indent
		default: // BreakLine, BreakForced
			p.Forms[id] = FormNewline
			p.IndentAt[id] = st.Indent
			st.Col = st.Indent
		}
	case doc.NodeGroup:
		st = e.visitGroup(id, st, p)
	case doc.NodeIndent:
		inner := st
		inner.Indent += n.Amount
		for _, c := range n.Children {
			inner = e.visitChild(c, inner, p)
		}
		st.Col = inner.Col
	}
	return st
}

// visitFill decides each break independently: break only when the next item
// does not fit on the current line (word-wrap).
func (e *Engine) visitFill(id doc.NodeID, st State, p *Plan) State {
	p.Broken[id] = true
	children := e.tree.Node(id).Children
	for i, c := range children {
		n := e.tree.Node(c)
		if n.Kind != doc.NodeBreak {
			st = e.visitChild(c, st, p)
			continue
		}
		if n.Break == ops.BreakForced || n.Break == ops.BreakBlank {
			st = e.visitChild(c, st, p)
			continue
		}
		next := e.nextItemWidth(children, i+1)
		flatW := len(ops.FlatForm(n.Break, n.Flexible))
		if st.Col+flatW+next > e.maxWidth {
			p.Forms[c] = FormNewline
			p.IndentAt[c] = st.Indent
			st.Col = st.Indent
		} else {
			if flatW == 0 {
				p.Forms[c] = FormNone
			} else {
				p.Forms[c] = FormSpace
			}
			st.Col += flatW
		}
	}
	return st
}

// nextItemWidth measures the run of non-break children starting at i.
func (e *Engine) nextItemWidth(children []doc.NodeID, i int) int {
	w := 0
	for ; i < len(children); i++ {
		n := e.tree.Node(children[i])
		if n.Kind == doc.NodeBreak {
			break
		}
		w = clampAdd(w, e.width(children[i]))
	}
	return w
}

// markFlat fixes the whole subtree flat: nested groups inherit the decision,
// every Line break takes its flat form.
func (e *Engine) markFlat(id doc.NodeID, p *Plan) {
	n := e.tree.Node(id)
	switch n.Kind {
	case doc.NodeBreak:
		if ops.FlatForm(n.Break, n.Flexible) == " " {
			p.Forms[id] = FormSpace
		} else {
			p.Forms[id] = FormNone
		}
	case doc.NodeGroup:
		p.Broken[id] = false
		for _, c := range n.Children {
			e.markFlat(c, p)
		}
	case doc.NodeIndent:
		for _, c := range n.Children {
			e.markFlat(c, p)
		}
	}
}
