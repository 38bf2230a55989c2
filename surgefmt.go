// Package surgefmt formats Surge source code.
//
// The formatter re-lays out whitespace only: every code token and comment of
// the input survives byte-for-byte (imports are the one exception — the
// block is sorted and deduplicated, and redundant semicolons and unused
// imports are removed). Regions that already match the canonical layout are
// never rewritten, so running the formatter twice is a no-op.
package surgefmt

import (
	"errors"
	"fmt"
	"io"

	"surgefmt/internal/diag"
	"surgefmt/internal/format"
	"surgefmt/internal/source"
)

// Options controls a formatting run. Zero numeric fields take the defaults;
// start from DefaultOptions or a style preset to get the boolean defaults.
type Options struct {
	// MaxWidth is the line budget in display columns.
	MaxWidth int
	// BlockIndent indents block bodies relative to the block header.
	BlockIndent int
	// ContinuationIndent indents wrapped continuations relative to the
	// construct's first line.
	ContinuationIndent int
	// RemoveUnusedImports drops imports whose bound name is never referenced.
	// Wildcard imports are always kept.
	RemoveUnusedImports bool

	// DebugLayoutTrace dumps the instruction stream of each layout pass to
	// TraceWriter.
	DebugLayoutTrace bool
	TraceWriter      io.Writer
}

// DefaultOptions returns the default style: two-column blocks, four-column
// continuations, 100-column lines.
func DefaultOptions() Options { return publicOptions(format.Defaults()) }

// StyleCompiler is the style of the compiler sources: four-column indent
// throughout.
func StyleCompiler() Options { return publicOptions(format.StyleCompiler()) }

// StyleStdlib is the style of the standard library. It currently matches
// StyleCompiler; the two are distinct knobs on purpose.
func StyleStdlib() Options { return publicOptions(format.StyleStdlib()) }

// ErrorKind classifies formatting failures.
type ErrorKind uint8

const (
	// ErrSyntax: the input does not parse. The file is returned unformatted.
	ErrSyntax ErrorKind = iota
	// ErrStructural: an internal consistency check failed. Report it.
	ErrStructural
	// ErrUnsupportedInput: the input contains bytes the formatter reserves.
	ErrUnsupportedInput
	// ErrIO: the file could not be read or written.
	ErrIO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrStructural:
		return "structural error"
	case ErrUnsupportedInput:
		return "unsupported input"
	case ErrIO:
		return "io error"
	}
	return "error"
}

// Error is a formatting failure with a 1-based position in the input.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    uint32
	Col     uint32
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Col, e.Kind, e.Message)
}

// Format returns the formatted form of src. CRLF line endings and a UTF-8
// BOM are preserved. On error src is not usable as output; callers keep the
// original bytes.
func Format(src []byte, opts Options) ([]byte, error) {
	body, hadBOM := source.RemoveBOM(src)
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<input>", body))

	out, err := format.File(f, internalOptions(opts))
	if err != nil {
		return nil, publicError(err)
	}
	if hadBOM {
		out = append([]byte{0xEF, 0xBB, 0xBF}, out...)
	}
	return out, nil
}

// CanonicalizeImports sorts and deduplicates the import block without
// touching the rest of the file. Input without imports is returned as is.
func CanonicalizeImports(src []byte) ([]byte, error) {
	body, hadBOM := source.RemoveBOM(src)
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<input>", body))

	out, err := format.CanonicalizeImports(f)
	if err != nil {
		return nil, publicError(err)
	}
	if hadBOM {
		out = append([]byte{0xEF, 0xBB, 0xBF}, out...)
	}
	return out, nil
}

func publicOptions(opt format.Options) Options {
	return Options{
		MaxWidth:            opt.MaxWidth,
		BlockIndent:         opt.BlockIndent,
		ContinuationIndent:  opt.ContinuationIndent,
		RemoveUnusedImports: opt.RemoveUnusedImports,
	}
}

func internalOptions(opts Options) format.Options {
	return format.Options{
		MaxWidth:            opts.MaxWidth,
		BlockIndent:         opts.BlockIndent,
		ContinuationIndent:  opts.ContinuationIndent,
		RemoveUnusedImports: opts.RemoveUnusedImports,
		DebugLayoutTrace:    opts.DebugLayoutTrace,
		TraceWriter:         opts.TraceWriter,
	}
}

func publicError(err error) error {
	var fe *format.Error
	if !errors.As(err, &fe) {
		return err
	}
	kind := ErrIO
	switch fe.Kind() {
	case diag.KindSyntax:
		kind = ErrSyntax
	case diag.KindStructural:
		kind = ErrStructural
	case diag.KindUnsupportedInput:
		kind = ErrUnsupportedInput
	}
	return &Error{Kind: kind, Message: fe.Message, Line: fe.Pos.Line, Col: fe.Pos.Col}
}
