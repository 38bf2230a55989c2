// Package doc builds the nested document model from the flat instruction
// stream. Nodes live in an arena; IDs are slice indices.
package doc

import (
	"fmt"
	"strings"

	"surgefmt/internal/ops"
	"surgefmt/internal/source"
)

// NodeID indexes into Tree.Nodes. NoNode marks absence.
type NodeID int32

const NoNode NodeID = -1

// NodeKind discriminates document node variants.
type NodeKind uint8

const (
	NodeText NodeKind = iota
	NodeBreak
	NodeGroup
	NodeIndent
	NodeDrop
)

// Node is one element of the document tree.
type Node struct {
	Kind NodeKind

	// NodeText / NodeDrop
	Text     string
	Span     source.Span
	Anchored bool

	// NodeBreak
	Break    ops.BreakKind
	Flexible bool

	// NodeGroup
	Mode ops.GroupMode

	// NodeIndent
	Amount int

	// NodeGroup / NodeIndent
	Children []NodeID
}

// Tree is the built document. Root is always a group whose immediate breaks
// render broken (top-level items sit on their own lines).
type Tree struct {
	Nodes []Node
	Root  NodeID
}

func (t *Tree) Node(id NodeID) *Node { return &t.Nodes[id] }

func (t *Tree) add(n Node) NodeID {
	t.Nodes = append(t.Nodes, n)
	return NodeID(len(t.Nodes) - 1)
}

// MismatchError reports unmatched group or indent markers in the op stream.
// Internal consistency failure: the printer always emits balanced markers.
// Op is the index of the offending instruction (len(stream) for markers left
// open at end of stream); At is the span of the nearest preceding anchored
// node, zero when the stream has none.
type MismatchError struct {
	What string
	Op   int
	At   source.Span
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("doc: unmatched %s marker at op %d", e.What, e.Op)
}

type frame struct {
	kind     NodeKind // NodeGroup or NodeIndent
	mode     ops.GroupMode
	amount   int
	children []NodeID
}

// Build folds the op stream into a tree. The stream's markers must be
// properly nested; a mismatch is a fatal structural error.
func Build(stream []ops.Op) (*Tree, error) {
	t := &Tree{}
	stack := []frame{{kind: NodeGroup, mode: ops.ModeUnified}}

	push := func(id NodeID) {
		top := &stack[len(stack)-1]
		top.children = append(top.children, id)
	}

	// Ближайший заякоренный спан: позиция для ошибок дисбаланса.
	var lastAnchor source.Span
	for i, op := range stream {
		switch op.Kind {
		case ops.OpText:
			if op.Anchored {
				lastAnchor = op.Span
			}
			push(t.add(Node{
				Kind: NodeText, Text: op.Text,
				Span: op.Span, Anchored: op.Anchored,
			}))
		case ops.OpDrop:
			lastAnchor = op.Span
			push(t.add(Node{Kind: NodeDrop, Span: op.Span, Anchored: true}))
		case ops.OpBreak:
			push(t.add(Node{Kind: NodeBreak, Break: op.Break, Flexible: op.Flexible}))
		case ops.OpOpenGroup:
			stack = append(stack, frame{kind: NodeGroup, mode: op.Mode})
		case ops.OpCloseGroup:
			if len(stack) < 2 || stack[len(stack)-1].kind != NodeGroup {
				return nil, &MismatchError{What: "group", Op: i, At: lastAnchor}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			push(t.add(Node{Kind: NodeGroup, Mode: top.mode, Children: top.children}))
		case ops.OpIndent:
			if op.Indent > 0 {
				stack = append(stack, frame{kind: NodeIndent, amount: op.Indent})
				continue
			}
			if len(stack) < 2 || stack[len(stack)-1].kind != NodeIndent ||
				stack[len(stack)-1].amount != -op.Indent {
				return nil, &MismatchError{What: "indent", Op: i, At: lastAnchor}
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			push(t.add(Node{Kind: NodeIndent, Amount: top.amount, Children: top.children}))
		}
	}

	if len(stack) != 1 {
		return nil, &MismatchError{What: "group", Op: len(stream), At: lastAnchor}
	}
	t.Root = t.add(Node{Kind: NodeGroup, Mode: ops.ModeUnified, Children: stack[0].children})
	return t, nil
}

// FlatRender concatenates the whole tree in its flat form, every break
// replaced by its flat text. Used by tests to check the builder guarantee
// against rendering the op stream directly.
func (t *Tree) FlatRender() string {
	var b strings.Builder
	t.flatRender(t.Root, &b)
	return b.String()
}

func (t *Tree) flatRender(id NodeID, b *strings.Builder) {
	n := t.Node(id)
	switch n.Kind {
	case NodeText:
		b.WriteString(n.Text)
	case NodeBreak:
		b.WriteString(ops.FlatForm(n.Break, n.Flexible))
	case NodeGroup, NodeIndent:
		for _, c := range n.Children {
			t.flatRender(c, b)
		}
	}
}
