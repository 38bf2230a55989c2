package imports

import (
	"errors"
	"testing"

	"surgefmt/internal/ast"
	"surgefmt/internal/diag"
	"surgefmt/internal/lexer"
	"surgefmt/internal/parser"
	"surgefmt/internal/patch"
	"surgefmt/internal/source"
	"surgefmt/internal/token"
)

func parse(t *testing.T, src string) (*ast.File, *token.Index, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.sg", []byte(src)))

	bag := diag.NewBag(16)
	adapter := &lexer.ReporterAdapter{Bag: bag}
	toks := lexer.Tokens(f, lexer.Options{Reporter: adapter.Reporter()})
	if bag.HasErrors() {
		t.Fatalf("lex errors in %q", src)
	}
	idx, err := token.NewIndex(f, toks)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	tree, ok := parser.ParseFile(toks, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if !ok {
		t.Fatalf("parse failed for %q", src)
	}
	return tree, idx, f
}

func rewrite(t *testing.T, src string) (string, error) {
	t.Helper()
	tree, idx, f := parse(t, src)
	reps, err := Canonicalize(tree, idx)
	if err != nil {
		return "", err
	}
	out, err := patch.Apply(f.Content, reps)
	if err != nil {
		t.Fatalf("patch.Apply: %v", err)
	}
	return string(out), nil
}

func TestCanonicalizeSortsByQualifiedName(t *testing.T) {
	src := "import std/io;\nimport core/mem;\nimport app;\n\nfn main() {}\n"
	got, err := rewrite(t, src)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	want := "import app;\nimport core/mem;\nimport std/io;\n\nfn main() {}\n"
	if got != want {
		t.Fatalf("rewrite = %q, want %q", got, want)
	}
}

func TestCanonicalizeDeduplicates(t *testing.T) {
	src := "import core/io;\nimport core/io;\nimport core/io as alias;\n"
	got, err := rewrite(t, src)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	// Identical rendered lines collapse; a differing alias form survives and
	// sorts after the alias-less one (empty alias subkey first).
	want := "import core/io;\nimport core/io as alias;\n"
	if got != want {
		t.Fatalf("rewrite = %q, want %q", got, want)
	}
}

func TestCanonicalizeAliasLessSortsFirst(t *testing.T) {
	src := "import a/b as z;\nimport a/b;\n"
	got, err := rewrite(t, src)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	want := "import a/b;\nimport a/b as z;\n"
	if got != want {
		t.Fatalf("rewrite = %q, want %q", got, want)
	}
}

func TestCanonicalizeNonWildcardSortsFirst(t *testing.T) {
	src := "import a/b::*;\nimport a/b;\n"
	got, err := rewrite(t, src)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	want := "import a/b;\nimport a/b::*;\n"
	if got != want {
		t.Fatalf("rewrite = %q, want %q", got, want)
	}
}

func TestCanonicalizeNormalizesSpacing(t *testing.T) {
	src := "import   core / io ;\n"
	got, err := rewrite(t, src)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if got != "import core/io;\n" {
		t.Fatalf("rewrite = %q", got)
	}
}

func TestCanonicalizeDropsStraySemicolonInBlock(t *testing.T) {
	src := "import b;\n;\nimport a;\n"
	got, err := rewrite(t, src)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if got != "import a;\nimport b;\n" {
		t.Fatalf("rewrite = %q", got)
	}
}

func TestCanonicalizeAlreadyCanonicalYieldsNoReplacements(t *testing.T) {
	tree, idx, _ := parse(t, "import a;\nimport b/c;\n\nfn main() {}\n")
	reps, err := Canonicalize(tree, idx)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if len(reps) != 0 {
		t.Fatalf("expected no replacements, got %v", reps)
	}
}

func TestCanonicalizeNoImports(t *testing.T) {
	tree, idx, _ := parse(t, "fn main() {}\n")
	reps, err := Canonicalize(tree, idx)
	if err != nil || len(reps) != 0 {
		t.Fatalf("Canonicalize = %v, %v; want empty, nil", reps, err)
	}
}

func TestCanonicalizeRejectsInterleavedDeclaration(t *testing.T) {
	tree, idx, _ := parse(t, "import b;\nfn f() {}\nimport a;\n")
	_, err := Canonicalize(tree, idx)
	var ie *InterruptedError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InterruptedError, got %v", err)
	}
	if ie.What != "declaration" {
		t.Fatalf("What = %q", ie.What)
	}
}

func TestCanonicalizeRejectsCommentInsideBlock(t *testing.T) {
	tree, idx, _ := parse(t, "import b;\n// which one?\nimport a;\n")
	_, err := Canonicalize(tree, idx)
	var ie *InterruptedError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InterruptedError, got %v", err)
	}
}

func TestCanonicalizeAllowsSurroundingComments(t *testing.T) {
	// A comment before the block and one trailing the final semicolon do not
	// interrupt it.
	src := "// header\nimport b; // tail\n"
	tree, idx, _ := parse(t, src)
	if _, err := Canonicalize(tree, idx); err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
}

func TestRenderForms(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"import a/b;", "import a/b;"},
		{"import a/b as c;", "import a/b as c;"},
		{"import a/b::Member;", "import a/b::Member;"},
		{"import a/b::Member as M;", "import a/b::Member as M;"},
		{"import a/b::*;", "import a/b::*;"},
	}
	for _, tt := range tests {
		tree, _, _ := parse(t, tt.src+"\n")
		it, ok := tree.Items[0].(*ast.ImportItem)
		if !ok {
			t.Fatalf("item is %T", tree.Items[0])
		}
		if got := Render(it); got != tt.want {
			t.Fatalf("Render(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestQualifiedNameIncludesMember(t *testing.T) {
	tree, _, _ := parse(t, "import a/b::Member as M;\n")
	it := tree.Items[0].(*ast.ImportItem)
	if got := it.QualifiedName(); got != "a/b::Member" {
		t.Fatalf("QualifiedName = %q", got)
	}
	if got := it.BoundName(); got != "M" {
		t.Fatalf("BoundName = %q", got)
	}
}
