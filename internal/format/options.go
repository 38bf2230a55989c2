package format

import "io"

// Options controls one formatting run.
type Options struct {
	// MaxWidth is the column budget in display columns.
	MaxWidth int
	// BlockIndent is the indent of block bodies relative to the block header.
	BlockIndent int
	// ContinuationIndent is the indent of wrapped continuations (arguments,
	// operands) relative to the construct's first line.
	ContinuationIndent int
	// RemoveUnusedImports drops imports whose bound name is never referenced.
	// Wildcard imports are always kept.
	RemoveUnusedImports bool

	// DebugLayoutTrace dumps the instruction stream of each layout pass to
	// TraceWriter.
	DebugLayoutTrace bool
	TraceWriter      io.Writer
}

// Defaults returns the options used when the caller leaves a field zero.
func Defaults() Options {
	return Options{
		MaxWidth:            100,
		BlockIndent:         2,
		ContinuationIndent:  4,
		RemoveUnusedImports: true,
	}
}

// StyleCompiler is the style of the compiler sources: four-column blocks.
func StyleCompiler() Options {
	opt := Defaults()
	opt.BlockIndent = 4
	return opt
}

// StyleStdlib is the style of the standard library. Currently identical to
// StyleCompiler; kept as a separate knob so the two can diverge.
func StyleStdlib() Options {
	opt := Defaults()
	opt.BlockIndent = 4
	return opt
}

func withDefaults(opt Options) Options {
	def := Defaults()
	if opt.MaxWidth <= 0 {
		opt.MaxWidth = def.MaxWidth
	}
	if opt.BlockIndent <= 0 {
		opt.BlockIndent = def.BlockIndent
	}
	if opt.ContinuationIndent <= 0 {
		opt.ContinuationIndent = def.ContinuationIndent
	}
	return opt
}
