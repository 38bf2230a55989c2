// Package format runs the layout-and-patch pipeline over one source file:
// canonicalize imports, lay the file out, strip redundant elements, lay it
// out once more. Every stage produces replacements against the bytes it was
// given, so an already-formatted file flows through untouched.
package format

import (
	"bytes"
	"errors"
	"fmt"

	"fortio.org/safecast"

	"surgefmt/internal/ast"
	"surgefmt/internal/diag"
	"surgefmt/internal/doc"
	"surgefmt/internal/imports"
	"surgefmt/internal/layout"
	"surgefmt/internal/lexer"
	"surgefmt/internal/ops"
	"surgefmt/internal/parser"
	"surgefmt/internal/patch"
	"surgefmt/internal/source"
	"surgefmt/internal/token"
)

// File formats a file registered in a file set and returns the formatted
// bytes. The input is left untouched; CRLF line endings are restored when
// the loader normalized them.
func File(f *source.File, opt Options) ([]byte, error) {
	opt = withDefaults(opt)

	if i := bytes.IndexByte(f.Content, sentinelByte); i >= 0 {
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("offset overflow: %w", err))
		}
		return nil, errorFrom(f, diag.InputReservedSentinel, off,
			"input contains the reserved control byte 0x03")
	}

	content := f.Content

	// Импорты: один общий rewrite до первого прохода макета.
	p, err := parsePass(f.Path, content)
	if err != nil {
		return nil, err
	}
	reps, ierr := imports.Canonicalize(p.tree, p.idx)
	if ierr != nil {
		var ie *imports.InterruptedError
		if errors.As(ierr, &ie) {
			return nil, errorFrom(p.file, diag.StructImportInterrupted, ie.Span.Start, ie.Error())
		}
		return nil, ierr
	}
	content, err = applyReps(p.file, content, reps)
	if err != nil {
		return nil, err
	}

	content, err = layoutPass(f.Path, content, opt, 1)
	if err != nil {
		return nil, err
	}

	// Redundant elements vanish between the passes; pass 2 closes the holes
	// their removal leaves in the layout.
	p, err = parsePass(f.Path, content)
	if err != nil {
		return nil, err
	}
	content, err = applyReps(p.file, content, collectRedundant(p.tree, p.file, opt.RemoveUnusedImports))
	if err != nil {
		return nil, err
	}

	content, err = layoutPass(f.Path, content, opt, 2)
	if err != nil {
		return nil, err
	}

	if f.Flags&source.FileNormalizedCRLF != 0 {
		content = source.RestoreCRLF(content)
	}
	return content, nil
}

// CanonicalizeImports rewrites only the import block, leaving every other
// byte of the file alone. A file without imports comes back unchanged.
func CanonicalizeImports(f *source.File) ([]byte, error) {
	if i := bytes.IndexByte(f.Content, sentinelByte); i >= 0 {
		off, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("offset overflow: %w", err))
		}
		return nil, errorFrom(f, diag.InputReservedSentinel, off,
			"input contains the reserved control byte 0x03")
	}

	p, err := parsePass(f.Path, f.Content)
	if err != nil {
		return nil, err
	}
	reps, ierr := imports.Canonicalize(p.tree, p.idx)
	if ierr != nil {
		var ie *imports.InterruptedError
		if errors.As(ierr, &ie) {
			return nil, errorFrom(p.file, diag.StructImportInterrupted, ie.Span.Start, ie.Error())
		}
		return nil, ierr
	}
	out, err := applyReps(p.file, f.Content, reps)
	if err != nil {
		return nil, err
	}
	if f.Flags&source.FileNormalizedCRLF != 0 {
		out = source.RestoreCRLF(out)
	}
	return out, nil
}

// parsed bundles the artifacts of lexing and parsing one content snapshot.
type parsed struct {
	file *source.File
	toks []token.Token
	idx  *token.Index
	tree *ast.File
}

func parsePass(path string, content []byte) (*parsed, error) {
	fs := source.NewFileSet()
	f := fs.Get(fs.Add(path, content, 0))

	bag := diag.NewBag(64)
	adapter := &lexer.ReporterAdapter{Bag: bag}
	toks := lexer.Tokens(f, lexer.Options{Reporter: adapter.Reporter()})
	if bag.HasErrors() {
		return nil, errorFromBag(f, bag)
	}

	idx, err := token.NewIndex(f, toks)
	if err != nil {
		var cov *token.CoverageError
		if errors.As(err, &cov) {
			return nil, errorFrom(f, diag.StructTokenCoverage, cov.At, cov.Error())
		}
		return nil, err
	}

	tree, ok := parser.ParseFile(toks, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if !ok {
		return nil, errorFromBag(f, bag)
	}
	return &parsed{file: f, toks: toks, idx: idx, tree: tree}, nil
}

// layoutPass runs print → document → break engine → writer over one content
// snapshot and applies the resulting replacements.
func layoutPass(path string, content []byte, opt Options, pass int) ([]byte, error) {
	p, err := parsePass(path, content)
	if err != nil {
		return nil, err
	}

	pr := newPrinter(p.toks, opt)
	stream, serr := pr.print(p.tree)
	if serr != nil {
		return nil, errorFrom(p.file, serr.code, serr.span.Start, serr.msg)
	}
	if opt.DebugLayoutTrace && opt.TraceWriter != nil {
		fmt.Fprintf(opt.TraceWriter, "== layout pass %d ==\n%s", pass, ops.Dump(stream))
	}

	tree, derr := doc.Build(stream)
	if derr != nil {
		var me *doc.MismatchError
		if errors.As(derr, &me) {
			return nil, errorFrom(p.file, diag.StructGroupMismatch, me.At.Start, me.Error())
		}
		return nil, derr
	}
	plan := layout.New(tree, opt.MaxWidth).Plan()
	return applyReps(p.file, content, render(tree, plan, p.file))
}

func applyReps(f *source.File, content []byte, reps []patch.Replacement) ([]byte, error) {
	out, err := patch.Apply(content, reps)
	if err != nil {
		var ov *patch.OverlapError
		if errors.As(err, &ov) {
			return nil, errorFrom(f, diag.StructPatchOverlap, ov.At.Start, ov.Error())
		}
		return nil, err
	}
	return out, nil
}
