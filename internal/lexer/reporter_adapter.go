package lexer

import (
	"surgefmt/internal/diag"
	"surgefmt/internal/source"
)

// ReporterAdapter адаптирует diag.Bag для использования в лексере.
type ReporterAdapter struct {
	Bag *diag.Bag
}

type bagLexReporter struct{ bag *diag.Bag }

// Reporter returns a lexer.Reporter that forwards diagnostics to the bag.
func (r *ReporterAdapter) Reporter() Reporter {
	return &bagLexReporter{bag: r.Bag}
}

func (r *bagLexReporter) Report(kind string, span source.Span, msg string) {
	if r.bag == nil {
		return
	}
	code := diag.LexUnknownChar
	switch kind {
	case "UnterminatedString":
		code = diag.LexUnterminatedString
	case "UnterminatedBlockComment":
		code = diag.LexUnterminatedBlockComment
	}
	r.bag.Add(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     code,
		Message:  msg,
		Primary:  span,
	})
}
