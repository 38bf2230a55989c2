package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"surgefmt/internal/format"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestCollectSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.sg"), "fn b() {}\n")
	writeFile(t, filepath.Join(dir, "sub", "a.sg"), "fn a() {}\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not source\n")

	files, err := CollectSourceFiles(context.Background(), []string{dir, filepath.Join(dir, "b.sg")})
	if err != nil {
		t.Fatalf("CollectSourceFiles: %v", err)
	}
	want := []string{filepath.Join(dir, "b.sg"), filepath.Join(dir, "sub", "a.sg")}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestFormatPathsCheckMode(t *testing.T) {
	dir := t.TempDir()
	messy := filepath.Join(dir, "messy.sg")
	clean := filepath.Join(dir, "clean.sg")
	writeFile(t, messy, "fn  main( ){ run(); }")
	writeFile(t, clean, "fn main() {\n  run();\n}\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{
		Check:   true,
		Options: format.Defaults(),
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}

	byPath := map[string]FormatResult{}
	for _, r := range results {
		byPath[r.Path] = r
	}
	if r := byPath[messy]; !r.Changed || r.Err != nil {
		t.Fatalf("messy result = %+v", r)
	}
	if r := byPath[clean]; r.Changed || r.Err != nil {
		t.Fatalf("clean result = %+v", r)
	}
	// Check mode never touches the files.
	if readFile(t, messy) != "fn  main( ){ run(); }" {
		t.Fatalf("check mode rewrote the file")
	}
}

func TestFormatPathsWritesBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.sg")
	writeFile(t, path, "fn  main( ){ run(); }")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{
		Options: format.Defaults(),
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 || !results[0].Changed {
		t.Fatalf("results = %+v", results)
	}
	want := "fn main() {\n  run();\n}\n"
	if got := readFile(t, path); got != want {
		t.Fatalf("file = %q, want %q", got, want)
	}

	// Second run over the formatted file reports no change.
	results, err = FormatPaths(context.Background(), []string{path}, FormatOptions{
		Options: format.Defaults(),
	})
	if err != nil {
		t.Fatalf("FormatPaths (second run): %v", err)
	}
	if results[0].Changed {
		t.Fatalf("formatted file reported as changed")
	}
}

func TestFormatPathsStdoutMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.sg")
	writeFile(t, path, "fn  main( ){ run(); }")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{
		Stdout:  true,
		Options: format.Defaults(),
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if string(results[0].Formatted) != "fn main() {\n  run();\n}\n" {
		t.Fatalf("Formatted = %q", results[0].Formatted)
	}
	if readFile(t, path) != "fn  main( ){ run(); }" {
		t.Fatalf("stdout mode rewrote the file")
	}
}

func TestFormatPathsReportsSyntaxErrorsPerFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.sg")
	bad := filepath.Join(dir, "bad.sg")
	writeFile(t, good, "fn main() {}\n")
	writeFile(t, bad, "fn (\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{
		Check:   true,
		Options: format.Defaults(),
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	byPath := map[string]FormatResult{}
	for _, r := range results {
		byPath[r.Path] = r
	}
	if byPath[bad].Err == nil {
		t.Fatalf("expected an error for the bad file")
	}
	if byPath[good].Err != nil {
		t.Fatalf("good file errored: %v", byPath[good].Err)
	}
}

func TestFormatPathsEmitsEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.sg")
	writeFile(t, path, "fn  main( ){ run(); }")

	events := make(chan Event, 16)
	_, err := FormatPaths(context.Background(), []string{path}, FormatOptions{
		Check:   true,
		Options: format.Defaults(),
		Events:  ChannelSink{Ch: events},
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	close(events)

	var statuses []Status
	for ev := range events {
		if ev.File != path {
			t.Fatalf("event for unexpected file %q", ev.File)
		}
		statuses = append(statuses, ev.Status)
	}
	want := []Status{StatusQueued, StatusWorking, StatusChanged}
	if len(statuses) != len(want) {
		t.Fatalf("statuses = %v, want %v", statuses, want)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Fatalf("statuses = %v, want %v", statuses, want)
		}
	}
}

func TestFormatPathsBOMPreserved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bom.sg")
	writeFile(t, path, "\xEF\xBB\xBFfn  main( ){ run(); }")

	_, err := FormatPaths(context.Background(), []string{path}, FormatOptions{
		Options: format.Defaults(),
	})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	want := "\xEF\xBB\xBFfn main() {\n  run();\n}\n"
	if got := readFile(t, path); got != want {
		t.Fatalf("file = %q, want %q", got, want)
	}
}
