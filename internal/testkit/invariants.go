// Package testkit provides structural checks shared by tests and fuzz
// harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"surgefmt/internal/ast"
	"surgefmt/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) every item span is non-empty and within file content bounds
// 2) every item span points at the file it was parsed from
// 3) item spans appear in source order and never overlap
func CheckSpanInvariants(f *ast.File, sf *source.File) error {
	if f == nil || sf == nil {
		return fmt.Errorf("nil file or source")
	}
	contentLen, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("content length overflow: %w", err)
	}

	var prevEnd uint32
	for i, item := range f.Items {
		sp := item.Span()
		if sp.End <= sp.Start {
			return fmt.Errorf("item %d span is empty: %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("item %d span points at file %d, want %d", i, sp.File, sf.ID)
		}
		if sp.End > contentLen {
			return fmt.Errorf("item %d span %v exceeds content length %d", i, sp, contentLen)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("item %d span %v overlaps the previous item ending at %d", i, sp, prevEnd)
		}
		prevEnd = sp.End
	}

	if eof := f.EOF.Span; eof.Start < prevEnd || eof.End > contentLen {
		return fmt.Errorf("EOF span %v out of place after offset %d", eof, prevEnd)
	}
	return nil
}
