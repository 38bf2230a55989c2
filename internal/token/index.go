package token

import (
	"fmt"
	"sort"

	"fortio.org/safecast"

	"surgefmt/internal/source"
)

// Class is the coarse lexical class used by the layout pipeline.
type Class uint8

const (
	ClassCode Class = iota
	ClassWhitespace
	ClassComment
)

func (c Class) String() string {
	switch c {
	case ClassCode:
		return "code"
	case ClassWhitespace:
		return "whitespace"
	case ClassComment:
		return "comment"
	}
	return "class(?)"
}

// Entry is one element of the token index partition.
type Entry struct {
	Span  source.Span
	Class Class
	Text  string
}

// CoverageError reports a gap or overlap in the token partition.
// It is an internal consistency failure, never caused by valid input.
type CoverageError struct {
	At      uint32
	Overlap bool
}

func (e *CoverageError) Error() string {
	if e.Overlap {
		return fmt.Sprintf("token index: overlapping ranges at offset %d", e.At)
	}
	return fmt.Sprintf("token index: uncovered bytes at offset %d", e.At)
}

// Index maps every byte of the original file to exactly one lexical entry.
// Entries are sorted by start offset and partition [0, len(content)).
type Index struct {
	file    *source.File
	entries []Entry
}

// NewIndex flattens a significant-token stream (with leading trivia) into a
// partition of the file and validates coverage.
func NewIndex(file *source.File, toks []Token) (*Index, error) {
	entries := make([]Entry, 0, len(toks)*2)
	for _, tok := range toks {
		for _, tr := range tok.Leading {
			class := ClassWhitespace
			if tr.IsComment() {
				class = ClassComment
			}
			entries = append(entries, Entry{Span: tr.Span, Class: class, Text: tr.Text})
		}
		if tok.Kind == EOF {
			continue
		}
		entries = append(entries, Entry{Span: tok.Span, Class: ClassCode, Text: tok.Text})
	}

	idx := &Index{file: file, entries: entries}
	if err := idx.validate(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *Index) validate() error {
	contentLen, err := safecast.Conv[uint32](len(idx.file.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	var cursor uint32
	for _, e := range idx.entries {
		if e.Span.Start < cursor {
			return &CoverageError{At: e.Span.Start, Overlap: true}
		}
		if e.Span.Start > cursor {
			return &CoverageError{At: cursor}
		}
		cursor = e.Span.End
	}
	if cursor != contentLen {
		return &CoverageError{At: cursor}
	}
	return nil
}

// Entries returns the partition in offset order. Read-only.
func (idx *Index) Entries() []Entry { return idx.entries }

// File returns the indexed file.
func (idx *Index) File() *source.File { return idx.file }

// At returns the entry covering the given byte offset.
func (idx *Index) At(off uint32) (Entry, bool) {
	i := sort.Search(len(idx.entries), func(i int) bool {
		return idx.entries[i].Span.End > off
	})
	if i >= len(idx.entries) || !idx.entries[i].Span.Contains(off) {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// HasBlankLine reports whether the original bytes in [from, to) contain a
// blank line (two or more newlines).
func (idx *Index) HasBlankLine(from, to uint32) bool {
	content := idx.file.Content
	if int(to) > len(content) || from >= to {
		return false
	}
	n := 0
	for _, b := range content[from:to] {
		if b == '\n' {
			n++
			if n >= 2 {
				return true
			}
		}
	}
	return false
}
