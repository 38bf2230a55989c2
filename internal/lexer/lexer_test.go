package lexer

import (
	"testing"

	"surgefmt/internal/diag"
	"surgefmt/internal/source"
	"surgefmt/internal/token"
)

func lexAll(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.sg", []byte(src)))
	return Tokens(f, Options{})
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestTokensBasicStatement(t *testing.T) {
	toks := lexAll(t, "let mut x: i32 = 1;\n")
	want := []token.Kind{
		token.KwLet, token.KwMut, token.Ident, token.Colon, token.Ident,
		token.Assign, token.IntLit, token.Semicolon, token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kinds[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenTextMatchesSourceSlice(t *testing.T) {
	src := "fn add(a: i32, b: i32) -> i32 { return a + b; }\n"
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.sg", []byte(src)))
	for _, tk := range Tokens(f, Options{}) {
		if tk.Kind == token.EOF {
			continue
		}
		if got := string(f.Content[tk.Span.Start:tk.Span.End]); got != tk.Text {
			t.Fatalf("token text %q does not match source slice %q", tk.Text, got)
		}
	}
}

func TestTriviaCoalescing(t *testing.T) {
	toks := lexAll(t, "a  \t b\n\n\nc")
	// "b" carries one coalesced space run.
	b := toks[1]
	if len(b.Leading) != 1 || b.Leading[0].Kind != token.TriviaSpace {
		t.Fatalf("leading of b = %+v, want one space run", b.Leading)
	}
	if b.Leading[0].Text != "  \t " {
		t.Fatalf("space run text = %q", b.Leading[0].Text)
	}
	// "c" carries one coalesced newline run counting three newlines.
	c := toks[2]
	if len(c.Leading) != 1 || c.Leading[0].Kind != token.TriviaNewline {
		t.Fatalf("leading of c = %+v, want one newline run", c.Leading)
	}
	if n := c.Leading[0].NewlineCount(); n != 3 {
		t.Fatalf("NewlineCount = %d, want 3", n)
	}
}

func TestCommentTrivia(t *testing.T) {
	toks := lexAll(t, "// line\n/// doc\n/* block */ x")
	x := toks[0]
	if x.Kind != token.Ident || x.Text != "x" {
		t.Fatalf("significant token = %+v", x)
	}
	var comments []token.Trivia
	for _, tr := range x.Leading {
		if tr.IsComment() {
			comments = append(comments, tr)
		}
	}
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	wantKinds := []token.TriviaKind{token.TriviaLineComment, token.TriviaDocLine, token.TriviaBlockComment}
	wantTexts := []string{"// line", "/// doc", "/* block */"}
	for i, c := range comments {
		if c.Kind != wantKinds[i] || c.Text != wantTexts[i] {
			t.Fatalf("comment[%d] = %v %q, want %v %q", i, c.Kind, c.Text, wantKinds[i], wantTexts[i])
		}
	}
}

func TestTrailingTriviaAttachedToEOF(t *testing.T) {
	toks := lexAll(t, "x // tail\n")
	eof := toks[len(toks)-1]
	if eof.Kind != token.EOF {
		t.Fatalf("last token is %v, not EOF", eof.Kind)
	}
	found := false
	for _, tr := range eof.Leading {
		if tr.IsComment() && tr.Text == "// tail" {
			found = true
		}
	}
	if !found {
		t.Fatalf("trailing comment not attached to EOF: %+v", eof.Leading)
	}
}

func TestOperatorDisambiguation(t *testing.T) {
	tests := []struct {
		src  string
		want token.Kind
	}{
		{"::", token.ColonColon},
		{":", token.Colon},
		{"->", token.Arrow},
		{"==", token.EqEq},
		{"..=", token.DotDotEq},
		{"..", token.DotDot},
		{"<<", token.Shl},
		{"&&", token.AndAnd},
	}
	for _, tt := range tests {
		toks := lexAll(t, tt.src)
		if toks[0].Kind != tt.want || toks[0].Text != tt.src {
			t.Fatalf("lex(%q) = %v %q, want %v", tt.src, toks[0].Kind, toks[0].Text, tt.want)
		}
	}
}

func TestUnterminatedStringReported(t *testing.T) {
	bag := diag.NewBag(8)
	adapter := &ReporterAdapter{Bag: bag}
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.sg", []byte("\"open")))
	Tokens(f, Options{Reporter: adapter.Reporter()})
	if !bag.HasErrors() {
		t.Fatalf("expected a diagnostic for the unterminated string")
	}
}
