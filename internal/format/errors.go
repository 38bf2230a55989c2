package format

import (
	"fmt"

	"surgefmt/internal/diag"
	"surgefmt/internal/source"
)

// Error is the failure surfaced by the pipeline. Kind() distinguishes user
// errors (syntax, unsupported input) from internal structural failures.
type Error struct {
	Code    diag.Code
	Message string
	Pos     source.LineCol
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Pos.Line, e.Pos.Col, e.Code.Kind(), e.Message)
}

// Kind returns the coarse class of the error.
func (e *Error) Kind() diag.ErrorKind { return e.Code.Kind() }

func errorFrom(f *source.File, code diag.Code, off uint32, msg string) *Error {
	return &Error{Code: code, Message: msg, Pos: f.OffsetLineCol(off)}
}

// errorFromBag surfaces the first error of a diagnostic bag.
func errorFromBag(f *source.File, bag *diag.Bag) *Error {
	bag.Sort()
	d, ok := bag.FirstError()
	if !ok {
		return &Error{Code: diag.CodeUnknown, Message: "unknown failure"}
	}
	return errorFrom(f, d.Code, d.Primary.Start, d.Message)
}
