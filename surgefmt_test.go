package surgefmt_test

import (
	"errors"
	"testing"

	"surgefmt"
)

func TestFormatDefaults(t *testing.T) {
	out, err := surgefmt.Format([]byte("fn  main( ){ run(); }"), surgefmt.DefaultOptions())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := "fn main() {\n  run();\n}\n"
	if string(out) != want {
		t.Fatalf("Format = %q, want %q", out, want)
	}
}

func TestFormatIdempotent(t *testing.T) {
	src := []byte("import b;import a;\nfn main() { a.f(); b.g(); }\n")
	once, err := surgefmt.Format(src, surgefmt.DefaultOptions())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	twice, err := surgefmt.Format(once, surgefmt.DefaultOptions())
	if err != nil {
		t.Fatalf("Format (second): %v", err)
	}
	if string(once) != string(twice) {
		t.Fatalf("not idempotent:\nfirst  %q\nsecond %q", once, twice)
	}
}

func TestFormatPreservesBOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, "fn main() {}\n"...)
	out, err := surgefmt.Format(src, surgefmt.DefaultOptions())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(out) < 3 || out[0] != 0xEF || out[1] != 0xBB || out[2] != 0xBF {
		t.Fatalf("BOM dropped: %q", out)
	}
}

func TestFormatSyntaxError(t *testing.T) {
	_, err := surgefmt.Format([]byte("fn main() {\n  let = 1;\n}\n"), surgefmt.DefaultOptions())
	var fe *surgefmt.Error
	if !errors.As(err, &fe) {
		t.Fatalf("error is %T, want *surgefmt.Error", err)
	}
	if fe.Kind != surgefmt.ErrSyntax {
		t.Fatalf("Kind = %v, want ErrSyntax", fe.Kind)
	}
	if fe.Line != 2 {
		t.Fatalf("position = %d:%d, want line 2", fe.Line, fe.Col)
	}
}

func TestFormatUnsupportedInput(t *testing.T) {
	_, err := surgefmt.Format([]byte("fn main() {}\x03"), surgefmt.DefaultOptions())
	var fe *surgefmt.Error
	if !errors.As(err, &fe) || fe.Kind != surgefmt.ErrUnsupportedInput {
		t.Fatalf("err = %v, want ErrUnsupportedInput", err)
	}
}

func TestCanonicalizeImports(t *testing.T) {
	src := []byte("import b;\nimport a;\n\nfn  weird( ){ a.f(); b.g(); }\n")
	out, err := surgefmt.CanonicalizeImports(src)
	if err != nil {
		t.Fatalf("CanonicalizeImports: %v", err)
	}
	want := "import a;\nimport b;\n\nfn  weird( ){ a.f(); b.g(); }\n"
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestStylePresets(t *testing.T) {
	def := surgefmt.DefaultOptions()
	if def.MaxWidth != 100 || def.BlockIndent != 2 || def.ContinuationIndent != 4 || !def.RemoveUnusedImports {
		t.Fatalf("DefaultOptions = %+v", def)
	}
	comp := surgefmt.StyleCompiler()
	if comp.BlockIndent != 4 || comp.ContinuationIndent != 4 {
		t.Fatalf("StyleCompiler = %+v", comp)
	}
	std := surgefmt.StyleStdlib()
	if std.BlockIndent != 4 {
		t.Fatalf("StyleStdlib = %+v", std)
	}
}

func TestErrorKindStrings(t *testing.T) {
	tests := []struct {
		kind surgefmt.ErrorKind
		want string
	}{
		{surgefmt.ErrSyntax, "syntax error"},
		{surgefmt.ErrStructural, "structural error"},
		{surgefmt.ErrUnsupportedInput, "unsupported input"},
		{surgefmt.ErrIO, "io error"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Fatalf("%v.String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
