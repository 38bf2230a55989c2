package layout

import (
	"testing"

	"surgefmt/internal/doc"
	"surgefmt/internal/ops"
)

func buildPlan(t *testing.T, maxWidth int, emit func(s *ops.Stream)) (*doc.Tree, *Plan) {
	t.Helper()
	var s ops.Stream
	emit(&s)
	tree, err := doc.Build(s.Ops())
	if err != nil {
		t.Fatalf("doc.Build: %v", err)
	}
	return tree, New(tree, maxWidth).Plan()
}

// breakForms returns the planned form of every break in stream order.
func breakForms(tree *doc.Tree, p *Plan) []Form {
	var out []Form
	for id := range tree.Nodes {
		if tree.Nodes[id].Kind == doc.NodeBreak {
			out = append(out, p.Forms[doc.NodeID(id)])
		}
	}
	return out
}

// innerGroups returns every group except the synthetic root.
func innerGroups(tree *doc.Tree) []doc.NodeID {
	var out []doc.NodeID
	for id := range tree.Nodes {
		if doc.NodeID(id) != tree.Root && tree.Nodes[id].Kind == doc.NodeGroup {
			out = append(out, doc.NodeID(id))
		}
	}
	return out
}

func TestGroupFitsFlat(t *testing.T) {
	tree, p := buildPlan(t, 80, func(s *ops.Stream) {
		s.Text("let x =")
		s.OpenGroup(ops.ModeUnified)
		s.Break(ops.BreakLine, true)
		s.Text("1")
		s.CloseGroup()
	})
	groups := innerGroups(tree)
	if len(groups) != 1 || p.Broken[groups[0]] {
		t.Fatalf("fitting group must render flat")
	}
	forms := breakForms(tree, p)
	if len(forms) != 1 || forms[0] != FormSpace {
		t.Fatalf("flexible break in a flat group = %v, want FormSpace", forms)
	}
}

func TestGroupBreaksWhenTooWide(t *testing.T) {
	tree, p := buildPlan(t, 4, func(s *ops.Stream) {
		s.Text("aaaa")
		s.OpenGroup(ops.ModeUnified)
		s.Break(ops.BreakLine, true)
		s.Text("bbbb")
		s.CloseGroup()
	})
	groups := innerGroups(tree)
	if len(groups) != 1 || !p.Broken[groups[0]] {
		t.Fatalf("overflowing group must break")
	}
	forms := breakForms(tree, p)
	if len(forms) != 1 || forms[0] != FormNewline {
		t.Fatalf("break forms = %v, want FormNewline", forms)
	}
}

func TestBrokenBreakUsesEnclosingIndent(t *testing.T) {
	tree, p := buildPlan(t, 4, func(s *ops.Stream) {
		s.Text("aaaa")
		s.Indent(4)
		s.OpenGroup(ops.ModeUnified)
		s.Break(ops.BreakLine, true)
		s.Text("bbbb")
		s.CloseGroup()
		s.Indent(-4)
	})
	for id := range tree.Nodes {
		if tree.Nodes[id].Kind != doc.NodeBreak {
			continue
		}
		if p.Forms[doc.NodeID(id)] != FormNewline {
			t.Fatalf("break must render as newline")
		}
		if p.IndentAt[doc.NodeID(id)] != 4 {
			t.Fatalf("IndentAt = %d, want 4", p.IndentAt[doc.NodeID(id)])
		}
	}
}

func TestForcedBreakPoisonsGroup(t *testing.T) {
	tree, p := buildPlan(t, 100, func(s *ops.Stream) {
		s.OpenGroup(ops.ModeUnified)
		s.Text("a")
		s.Break(ops.BreakForced, false)
		s.Text("b")
		s.Break(ops.BreakLine, true)
		s.Text("c")
		s.CloseGroup()
	})
	groups := innerGroups(tree)
	if len(groups) != 1 || !p.Broken[groups[0]] {
		t.Fatalf("group containing a forced break can never render flat")
	}
	// Unified discipline: the flexible break of the broken group turns into a
	// newline together with the forced one.
	forms := breakForms(tree, p)
	want := []Form{FormNewline, FormNewline}
	for i, f := range forms {
		if f != want[i] {
			t.Fatalf("break forms = %v, want %v", forms, want)
		}
	}
}

func TestBlankBreakRendersBlankLine(t *testing.T) {
	tree, p := buildPlan(t, 80, func(s *ops.Stream) {
		s.Text("a")
		s.Break(ops.BreakBlank, false)
		s.Text("b")
	})
	forms := breakForms(tree, p)
	if len(forms) != 1 || forms[0] != FormBlank {
		t.Fatalf("break forms = %v, want FormBlank", forms)
	}
}

func TestSpaceBreakAlwaysSpace(t *testing.T) {
	tree, p := buildPlan(t, 1, func(s *ops.Stream) {
		s.Text("aaaa")
		s.Break(ops.BreakSpace, false)
		s.Text("bbbb")
	})
	forms := breakForms(tree, p)
	if len(forms) != 1 || forms[0] != FormSpace {
		t.Fatalf("break forms = %v, want FormSpace", forms)
	}
}

func TestFlatnessIsContagious(t *testing.T) {
	tree, p := buildPlan(t, 80, func(s *ops.Stream) {
		s.OpenGroup(ops.ModeUnified)
		s.Text("outer")
		s.Break(ops.BreakLine, true)
		s.OpenGroup(ops.ModeUnified)
		s.Text("inner")
		s.Break(ops.BreakLine, false)
		s.Text("x")
		s.CloseGroup()
		s.CloseGroup()
	})
	for _, g := range innerGroups(tree) {
		if p.Broken[g] {
			t.Fatalf("nested group re-evaluated despite flat parent")
		}
	}
	forms := breakForms(tree, p)
	want := []Form{FormSpace, FormNone}
	for i, f := range forms {
		if f != want[i] {
			t.Fatalf("break forms = %v, want %v", forms, want)
		}
	}
}

func TestFillGroupWraps(t *testing.T) {
	tree, p := buildPlan(t, 10, func(s *ops.Stream) {
		s.OpenGroup(ops.ModeFill)
		s.Text("aaaa")
		s.Break(ops.BreakLine, true)
		s.Text("bbbb")
		s.Break(ops.BreakLine, true)
		s.Text("cccc")
		s.CloseGroup()
	})
	forms := breakForms(tree, p)
	want := []Form{FormSpace, FormNewline}
	if len(forms) != len(want) {
		t.Fatalf("break forms = %v, want %v", forms, want)
	}
	for i, f := range forms {
		if f != want[i] {
			t.Fatalf("break forms = %v, want %v", forms, want)
		}
	}
}
