// Package ops defines the linear instruction stream between the node
// formatter and the document model.
//
// Поток плоский и одноразовый: принтер наполняет его слева направо, билдер
// документа потребляет строго в том же порядке. Op не несёт изменяемого
// состояния.
package ops

import (
	"fmt"
	"strings"

	"surgefmt/internal/source"
)

// Kind discriminates instruction variants.
type Kind uint8

const (
	// OpText emits literal text, optionally anchored to an original token range.
	OpText Kind = iota
	// OpOpenGroup starts a unit whose internal breaks resolve together.
	OpOpenGroup
	// OpCloseGroup ends the innermost open group.
	OpCloseGroup
	// OpBreak is an explicit breakpoint.
	OpBreak
	// OpIndent adjusts the indent for the enclosed region (signed amount;
	// a positive amount opens a region, the matching negative amount closes it).
	OpIndent
	// OpDrop consumes an original token without emitting it (the layout pass
	// deletes it from the output).
	OpDrop
)

// BreakKind determines how a break renders.
type BreakKind uint8

const (
	// BreakSpace always renders as a single space, broken or not.
	BreakSpace BreakKind = iota
	// BreakLine renders flat (space or nothing, per Flexible) when the group
	// is flat and as newline+indent when the group is broken.
	BreakLine
	// BreakForced always renders as a newline and forces its group broken.
	BreakForced
	// BreakBlank renders as a blank line (two newlines); forces the group.
	BreakBlank
)

// GroupMode selects the break-decision discipline of a group.
type GroupMode uint8

const (
	// ModeUnified breaks all or none of the group's immediate breaks.
	ModeUnified GroupMode = iota
	// ModeFill decides each immediate break independently (word-wrap).
	ModeFill
)

// Op is one instruction of the print plan.
type Op struct {
	Kind Kind

	// OpText / OpDrop
	Text     string
	Span     source.Span
	Anchored bool

	// OpBreak
	Break    BreakKind
	Flexible bool // flat form is a space (true) or empty (false)

	// OpIndent
	Indent int

	// OpOpenGroup
	Mode GroupMode
}

// Stream is the append-only accumulator produced by one printer walk.
type Stream struct {
	ops []Op
}

func (s *Stream) Ops() []Op { return s.ops }

func (s *Stream) Text(text string) {
	s.ops = append(s.ops, Op{Kind: OpText, Text: text})
}

func (s *Stream) Token(text string, span source.Span) {
	s.ops = append(s.ops, Op{Kind: OpText, Text: text, Span: span, Anchored: true})
}

func (s *Stream) Drop(span source.Span) {
	s.ops = append(s.ops, Op{Kind: OpDrop, Span: span, Anchored: true})
}

func (s *Stream) OpenGroup(mode GroupMode) {
	s.ops = append(s.ops, Op{Kind: OpOpenGroup, Mode: mode})
}

func (s *Stream) CloseGroup() {
	s.ops = append(s.ops, Op{Kind: OpCloseGroup})
}

func (s *Stream) Break(kind BreakKind, flexible bool) {
	s.ops = append(s.ops, Op{Kind: OpBreak, Break: kind, Flexible: flexible})
}

func (s *Stream) Indent(amount int) {
	s.ops = append(s.ops, Op{Kind: OpIndent, Indent: amount})
}

// FlatForm returns the text a break contributes when its group renders flat.
func FlatForm(kind BreakKind, flexible bool) string {
	switch kind {
	case BreakSpace:
		return " "
	case BreakLine:
		if flexible {
			return " "
		}
		return ""
	default:
		// forced breaks have no flat form; the group can never be flat
		return "\n"
	}
}

// Dump renders the stream for --debug-layout-trace inspection.
func Dump(ops []Op) string {
	var b strings.Builder
	depth := 0
	indentLine := func() {
		for i := 0; i < depth; i++ {
			b.WriteString("  ")
		}
	}
	for _, op := range ops {
		switch op.Kind {
		case OpText:
			indentLine()
			if op.Anchored {
				fmt.Fprintf(&b, "text %q @%s\n", op.Text, op.Span)
			} else {
				fmt.Fprintf(&b, "text %q\n", op.Text)
			}
		case OpDrop:
			indentLine()
			fmt.Fprintf(&b, "drop @%s\n", op.Span)
		case OpOpenGroup:
			indentLine()
			if op.Mode == ModeFill {
				b.WriteString("group(fill) {\n")
			} else {
				b.WriteString("group {\n")
			}
			depth++
		case OpCloseGroup:
			depth--
			indentLine()
			b.WriteString("}\n")
		case OpBreak:
			indentLine()
			fmt.Fprintf(&b, "break kind=%d flexible=%v\n", op.Break, op.Flexible)
		case OpIndent:
			indentLine()
			fmt.Fprintf(&b, "indent %+d\n", op.Indent)
		}
	}
	return b.String()
}
