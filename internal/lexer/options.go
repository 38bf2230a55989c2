package lexer

import (
	"surgefmt/internal/source"
)

// Reporter receives scan errors without pulling diag into the lexer.
// kind is a stable string tag; ReporterAdapter maps it to a diag code.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Options configures a scan. A nil Reporter drops errors; scanning continues
// either way so the token stream still covers the whole file.
type Options struct {
	Reporter Reporter
}

func (lx *Lexer) report(kind string, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(kind, sp, msg)
}
