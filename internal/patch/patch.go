// Package patch applies minimal (original-range → replacement-text) edits to
// source bytes, leaving all uncovered bytes untouched.
package patch

import (
	"fmt"

	"surgefmt/internal/source"
)

// Replacement substitutes the bytes of Span with Text.
type Replacement struct {
	Span source.Span
	Text string
}

// OverlapError reports an unsorted or overlapping replacement list.
// Internal consistency failure: the writer emits replacements in order.
type OverlapError struct {
	At source.Span
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("patch: replacement at %s overlaps or is out of order", e.At)
}

// Apply substitutes every replacement into content. The list must be sorted
// by start offset and non-overlapping. An empty list returns content
// unchanged (the identity case used to confirm idempotence).
func Apply(content []byte, reps []Replacement) ([]byte, error) {
	if len(reps) == 0 {
		return content, nil
	}

	grow := 0
	for _, r := range reps {
		grow += len(r.Text) - int(r.Span.Len())
	}
	out := make([]byte, 0, len(content)+max(grow, 0))

	var cursor uint32
	for _, r := range reps {
		if r.Span.Start < cursor || int(r.Span.End) > len(content) {
			return nil, &OverlapError{At: r.Span}
		}
		out = append(out, content[cursor:r.Span.Start]...)
		out = append(out, r.Text...)
		cursor = r.Span.End
	}
	out = append(out, content[cursor:]...)
	return out, nil
}
