package diagfmt

import (
	"errors"
	"strings"
	"testing"

	"surgefmt/internal/diag"
	"surgefmt/internal/format"
	"surgefmt/internal/source"
)

func TestPrettyRendersCaret(t *testing.T) {
	src := []byte("fn main() {\n  let = 1;\n}\n")
	err := &format.Error{
		Code:    diag.ParseUnexpectedToken,
		Message: "expected a name",
		Pos:     source.LineCol{Line: 2, Col: 7},
	}

	var b strings.Builder
	Pretty(&b, "main.sg", src, err)
	out := b.String()

	if !strings.Contains(out, "main.sg:2:7: syntax error [PARSE_UNEXPECTED_TOKEN]: expected a name") {
		t.Fatalf("header missing:\n%s", out)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + snippet + caret, got:\n%s", out)
	}
	if lines[1] != "   2 |   let = 1;" {
		t.Fatalf("snippet line = %q", lines[1])
	}
	// Caret under column 7, same gutter width as the snippet line.
	if lines[2] != "     |       ^" {
		t.Fatalf("caret line = %q", lines[2])
	}
}

func TestPrettyTabsKeptInCaretPad(t *testing.T) {
	src := []byte("\tlet = 1;\n")
	err := &format.Error{
		Code:    diag.ParseUnexpectedToken,
		Message: "expected a name",
		Pos:     source.LineCol{Line: 1, Col: 6},
	}

	var b strings.Builder
	Pretty(&b, "t.sg", src, err)
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("output = %q", b.String())
	}
	if !strings.HasPrefix(lines[2], "     | \t") {
		t.Fatalf("caret pad lost the tab: %q", lines[2])
	}
}

func TestPrettyWithoutSourceStopsAtHeader(t *testing.T) {
	err := &format.Error{
		Code:    diag.LexUnterminatedString,
		Message: "unterminated string literal",
		Pos:     source.LineCol{Line: 3, Col: 1},
	}
	var b strings.Builder
	Pretty(&b, "gone.sg", nil, err)
	if strings.Count(b.String(), "\n") != 1 {
		t.Fatalf("expected header only, got:\n%s", b.String())
	}
}

func TestPrettyPlainError(t *testing.T) {
	var b strings.Builder
	Pretty(&b, "x.sg", nil, errors.New("permission denied"))
	if b.String() != "x.sg: permission denied\n" {
		t.Fatalf("got %q", b.String())
	}
}

func TestBuildErrorJSON(t *testing.T) {
	fe := &format.Error{
		Code:    diag.StructImportInterrupted,
		Message: "imports interrupted by a declaration",
		Pos:     source.LineCol{Line: 4, Col: 1},
	}
	got := BuildErrorJSON(fe)
	if got.Kind != "structural error" || got.Code != "STRUCT_IMPORT_INTERRUPTED" || got.Line != 4 {
		t.Fatalf("BuildErrorJSON = %+v", got)
	}

	plain := BuildErrorJSON(errors.New("disk full"))
	if plain.Kind != "io error" || plain.Message != "disk full" || plain.Code != "" {
		t.Fatalf("plain error = %+v", plain)
	}
}
