package format

import (
	"fmt"

	"surgefmt/internal/ast"
	"surgefmt/internal/diag"
	"surgefmt/internal/ops"
	"surgefmt/internal/source"
	"surgefmt/internal/token"
)

// printer walks the syntax tree and emits the instruction stream, consuming
// the significant-token stream in lockstep. Every literal it emits is
// anchored to the token it came from; a mismatch between the tree walk and
// the token stream is a structural error, never a user error.
type printer struct {
	stream  *ops.Stream
	toks    []token.Token // significant tokens, EOF last
	pos     int           // next token to consume
	leadPos int           // next leading trivia of toks[pos] to flush
	opt     Options
}

// structuralErr unwinds the printer on an internal consistency failure.
type structuralErr struct {
	code diag.Code
	span source.Span
	msg  string
}

func newPrinter(toks []token.Token, opt Options) *printer {
	return &printer{stream: &ops.Stream{}, toks: toks, opt: opt}
}

// print emits the whole file and returns the instruction stream.
func (p *printer) print(f *ast.File) (stream []ops.Op, err *structuralErr) {
	defer func() {
		if r := recover(); r != nil {
			if se, ok := r.(*structuralErr); ok {
				stream, err = nil, se
				return
			}
			panic(r)
		}
	}()

	for i, item := range f.Items {
		if i > 0 {
			p.sepBreak()
		}
		p.printItem(item)
	}
	p.finish(len(f.Items) > 0)
	return p.stream.Ops(), nil
}

func (p *printer) peekTok() token.Token { return p.toks[p.pos] }

// token consumes the next significant token, flushing own-line comments
// first, and emits it as an anchored literal. text must match the token.
func (p *printer) token(text string) {
	p.flushOwnLine()
	tok := p.peekTok()
	if tok.Kind == token.EOF || tok.Text != text {
		panic(&structuralErr{
			code: diag.StructTokenCoverage,
			span: tok.Span,
			msg:  fmt.Sprintf("op stream expected %q, token stream has %q", text, tok.Text),
		})
	}
	p.stream.Token(tok.Text, tok.Span)
	p.pos++
	p.leadPos = 0
}

// dropIf consumes and deletes the next token when it matches the kind
// (trailing comma canonicalization).
func (p *printer) dropIf(kind token.Kind) {
	tok := p.peekTok()
	if tok.Kind != kind {
		return
	}
	p.stream.Drop(tok.Span)
	p.pos++
	p.leadPos = 0
}

func (p *printer) space() {
	p.stream.Break(ops.BreakSpace, false)
}

// sepBreak separates two statements or items: first any trailing comments of
// the current line, then a forced break (blank when the original had one).
func (p *printer) sepBreak() {
	p.flushTrailing()
	if p.consumeLineGap() >= 2 {
		p.stream.Break(ops.BreakBlank, false)
	} else {
		p.stream.Break(ops.BreakForced, false)
	}
}

// consumeLineGap consumes the run of whitespace trivia at the current
// position and returns the total newline count. A blank line with spaces in
// it arrives as newline-space-newline, so the run must be taken as a whole.
func (p *printer) consumeLineGap() int {
	n := 0
	lead := p.peekTok().Leading
	for p.leadPos < len(lead) {
		tr := lead[p.leadPos]
		if tr.IsComment() {
			break
		}
		n += tr.NewlineCount()
		p.leadPos++
	}
	return n
}

// flushTrailing emits comments that sit on the current line, before its
// terminating newline: `let x = 1; // note`.
func (p *printer) flushTrailing() {
	lead := p.peekTok().Leading
	for p.leadPos < len(lead) {
		tr := lead[p.leadPos]
		switch tr.Kind {
		case token.TriviaSpace:
			p.leadPos++
		case token.TriviaNewline:
			return
		default: // comment on the current line
			p.space()
			p.stream.Token(tr.Text, tr.Span)
			p.leadPos++
		}
	}
}

// flushOwnLine emits the remaining leading comments of the next token, each
// on its own line, preserving at most one blank line between groups.
func (p *printer) flushOwnLine() {
	lead := p.peekTok().Leading
	for p.leadPos < len(lead) {
		tr := lead[p.leadPos]
		switch tr.Kind {
		case token.TriviaSpace, token.TriviaNewline:
			p.leadPos++
		default:
			p.stream.Token(tr.Text, tr.Span)
			p.leadPos++
			p.breakAfterComment(tr)
		}
	}
}

// breakAfterComment separates a flushed comment from what follows. A line
// comment always ends its line; an inline block comment gets a space.
func (p *printer) breakAfterComment(tr token.Trivia) {
	switch n := p.consumeLineGap(); {
	case n >= 2:
		p.stream.Break(ops.BreakBlank, false)
	case n == 1:
		p.stream.Break(ops.BreakForced, false)
	case tr.Kind == token.TriviaBlockComment:
		p.space()
	default:
		p.stream.Break(ops.BreakForced, false)
	}
}

// emitCommentLine emits the comment starting the current original line, plus
// any further comments sharing that line. The caller has already emitted the
// separating break.
func (p *printer) emitCommentLine() {
	lead := p.peekTok().Leading
	for p.leadPos < len(lead) && lead[p.leadPos].Kind == token.TriviaSpace {
		p.leadPos++
	}
	if p.leadPos < len(lead) && lead[p.leadPos].IsComment() {
		tr := lead[p.leadPos]
		p.stream.Token(tr.Text, tr.Span)
		p.leadPos++
		p.flushTrailing()
	}
}

// finish flushes comments attached to EOF and ends the file with exactly one
// newline.
func (p *printer) finish(hadItems bool) {
	p.flushTrailing()
	emitted := hadItems
	for p.hasMoreComments() {
		n := p.consumeLineGap()
		if emitted {
			if n >= 2 {
				p.stream.Break(ops.BreakBlank, false)
			} else {
				p.stream.Break(ops.BreakForced, false)
			}
		}
		p.emitCommentLine()
		emitted = true
	}
	if len(p.stream.Ops()) > 0 {
		p.stream.Break(ops.BreakForced, false)
	}
}

func (p *printer) hasMoreComments() bool {
	lead := p.peekTok().Leading
	for i := p.leadPos; i < len(lead); i++ {
		if lead[i].IsComment() {
			return true
		}
	}
	return false
}

// indent opens a continuation-indent region; the returned func closes it.
func (p *printer) indent(amount int) func() {
	p.stream.Indent(amount)
	return func() { p.stream.Indent(-amount) }
}

// group opens a unified group; the returned func closes it.
func (p *printer) group() func() {
	p.stream.OpenGroup(ops.ModeUnified)
	return func() { p.stream.CloseGroup() }
}

func (p *printer) fillGroup() func() {
	p.stream.OpenGroup(ops.ModeFill)
	return func() { p.stream.CloseGroup() }
}
