package token

import "surgefmt/internal/source"

// TriviaKind classifies non-semantic source material attached to tokens.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	TriviaLineComment
	TriviaBlockComment
	TriviaDocLine
)

// Trivia is a run of whitespace or a comment preceding a token.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// IsComment reports whether the trivia carries comment text.
func (tr Trivia) IsComment() bool {
	switch tr.Kind {
	case TriviaLineComment, TriviaBlockComment, TriviaDocLine:
		return true
	default:
		return false
	}
}

// NewlineCount returns the number of line breaks inside the trivia.
func (tr Trivia) NewlineCount() int {
	if tr.Kind != TriviaNewline {
		return 0
	}
	n := 0
	for i := 0; i < len(tr.Text); i++ {
		if tr.Text[i] == '\n' {
			n++
		}
	}
	return n
}
