package patch

import (
	"errors"
	"testing"

	"surgefmt/internal/source"
)

func span(start, end uint32) source.Span {
	return source.Span{File: 0, Start: start, End: end}
}

func TestApplyIdentity(t *testing.T) {
	content := []byte("untouched")
	out, err := Apply(content, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if string(out) != "untouched" {
		t.Fatalf("Apply(nil) = %q", out)
	}
}

func TestApplyReplacements(t *testing.T) {
	tests := []struct {
		name string
		in   string
		reps []Replacement
		want string
	}{
		{
			name: "replace middle",
			in:   "aaa bbb ccc",
			reps: []Replacement{{Span: span(4, 7), Text: "XY"}},
			want: "aaa XY ccc",
		},
		{
			name: "pure insertion",
			in:   "ab",
			reps: []Replacement{{Span: span(1, 1), Text: "---"}},
			want: "a---b",
		},
		{
			name: "pure deletion",
			in:   "keep;drop;keep",
			reps: []Replacement{{Span: span(4, 10), Text: ""}},
			want: "keep;keep",
		},
		{
			name: "several in order",
			in:   "1 2 3",
			reps: []Replacement{
				{Span: span(1, 2), Text: ""},
				{Span: span(3, 4), Text: "\n"},
			},
			want: "12\n3",
		},
		{
			name: "touching spans",
			in:   "abcd",
			reps: []Replacement{
				{Span: span(0, 2), Text: "X"},
				{Span: span(2, 4), Text: "Y"},
			},
			want: "XY",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Apply([]byte(tt.in), tt.reps)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if string(out) != tt.want {
				t.Fatalf("Apply = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestApplyRejectsOverlap(t *testing.T) {
	reps := []Replacement{
		{Span: span(0, 3), Text: "x"},
		{Span: span(2, 5), Text: "y"},
	}
	_, err := Apply([]byte("abcdef"), reps)
	var ov *OverlapError
	if !errors.As(err, &ov) {
		t.Fatalf("expected OverlapError, got %v", err)
	}
	if ov.At.Start != 2 {
		t.Fatalf("overlap reported at %v", ov.At)
	}
}

func TestApplyRejectsOutOfOrder(t *testing.T) {
	reps := []Replacement{
		{Span: span(4, 5), Text: "x"},
		{Span: span(0, 1), Text: "y"},
	}
	if _, err := Apply([]byte("abcdef"), reps); err == nil {
		t.Fatalf("expected error for out-of-order replacements")
	}
}

func TestApplyRejectsPastEnd(t *testing.T) {
	reps := []Replacement{{Span: span(2, 10), Text: "x"}}
	if _, err := Apply([]byte("abc"), reps); err == nil {
		t.Fatalf("expected error for span past end of content")
	}
}
