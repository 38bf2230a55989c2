// Package diagfmt renders formatter failures for the CLI: a compact
// path:line:col header plus the offending source line with a caret, and the
// machine-readable shape used by --format json.
//
// Назначение: человекочитаемый и JSON-вид ошибок форматирования.
// Не делает: чтение файлов, принятие решений об exit-коде.
package diagfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"surgefmt/internal/format"
)

// ErrorJSON is the per-file failure as emitted under --format json.
type ErrorJSON struct {
	Kind    string `json:"kind"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

// BuildErrorJSON classifies err into the JSON shape. Errors that did not come
// out of the pipeline (IO, permissions) keep their plain message.
func BuildErrorJSON(err error) ErrorJSON {
	var fe *format.Error
	if errors.As(err, &fe) {
		return ErrorJSON{
			Kind:    fe.Kind().String(),
			Code:    fe.Code.String(),
			Message: fe.Message,
			Line:    fe.Pos.Line,
			Col:     fe.Pos.Col,
		}
	}
	return ErrorJSON{Kind: "io error", Message: err.Error()}
}

// Pretty writes a human-readable report for a failed file. When src holds the
// file content, the offending line is shown with a caret under the position:
//
//	main.sg:2:7: syntax error [PARSE_UNEXPECTED_TOKEN]: expected a name
//	   2 |   let = 1;
//	     |       ^
func Pretty(w io.Writer, path string, src []byte, err error) {
	var fe *format.Error
	if !errors.As(err, &fe) {
		fmt.Fprintf(w, "%s: %v\n", path, err)
		return
	}

	fmt.Fprintf(w, "%s:%d:%d: %s [%s]: %s\n",
		path, fe.Pos.Line, fe.Pos.Col, fe.Kind(), fe.Code, fe.Message)

	line, ok := sourceLine(src, fe.Pos.Line)
	if !ok {
		return
	}
	gutter := fmt.Sprintf("%4d | ", fe.Pos.Line)
	fmt.Fprintf(w, "%s%s\n", gutter, line)
	fmt.Fprintf(w, "%s | %s^\n", strings.Repeat(" ", 4), caretPad(line, fe.Pos.Col))
}

// sourceLine extracts the 1-based line from raw file bytes. CRLF inputs keep
// their '\r' out of the rendered line.
func sourceLine(src []byte, line uint32) (string, bool) {
	if line == 0 || len(src) == 0 {
		return "", false
	}
	lines := strings.Split(string(src), "\n")
	if int(line) > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[line-1], "\r"), true
}

// caretPad builds the whitespace run that places the caret under the 1-based
// column. Tabs in the source line stay tabs so the caret lines up at any tab
// width.
func caretPad(line string, col uint32) string {
	var b strings.Builder
	n := int(col) - 1
	for i := 0; i < n && i < len(line); i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
