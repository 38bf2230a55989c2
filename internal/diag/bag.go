package diag

import (
	"sort"
)

// Bag collects diagnostics up to a fixed cap. The formatter surfaces only the
// first error, but phases keep reporting so fuzzing sees the full stream.
type Bag struct {
	items []Diagnostic
	max   int
}

func NewBag(max int) *Bag {
	if max <= 0 {
		max = 256
	}
	return &Bag{items: make([]Diagnostic, 0, max), max: max}
}

// Add reports whether the diagnostic was stored; false means the cap is hit.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity >= SevError {
			return true
		}
	}
	return false
}

// FirstError returns the earliest error-severity diagnostic in span order.
func (b *Bag) FirstError() (Diagnostic, bool) {
	var best *Diagnostic
	for i := range b.items {
		d := &b.items[i]
		if d.Severity < SevError {
			continue
		}
		if best == nil || d.Primary.Start < best.Primary.Start {
			best = d
		}
	}
	if best == nil {
		return Diagnostic{}, false
	}
	return *best, true
}

// Sort orders by file, span, severity (errors first within a span), code.
// Детерминированный порядок для стабильного вывода.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code < dj.Code
	})
}
