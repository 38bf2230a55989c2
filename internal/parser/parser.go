// Package parser builds the formatter's syntax tree from the token stream.
//
// Разбор рекурсивным спуском; выражения — precedence climbing. Парсер
// останавливается на первой синтаксической ошибке: форматтер никогда не
// печатает частично разобранный файл.
package parser

import (
	"fmt"

	"surgefmt/internal/ast"
	"surgefmt/internal/diag"
	"surgefmt/internal/source"
	"surgefmt/internal/token"
)

type Options struct {
	Reporter diag.Reporter
}

type parser struct {
	toks []token.Token
	pos  int
	opts Options
}

// bail unwinds the parser after the first reported error.
type bail struct{}

// ParseFile parses a full token stream (ending in EOF) into an ast.File.
// On a syntax error it reports through opts.Reporter and returns ok=false.
func ParseFile(toks []token.Token, opts Options) (file *ast.File, ok bool) {
	p := &parser{toks: toks, opts: opts}
	defer func() {
		if r := recover(); r != nil {
			if _, isBail := r.(bail); isBail {
				file, ok = nil, false
				return
			}
			panic(r)
		}
	}()

	f := &ast.File{}
	for p.peek().Kind != token.EOF {
		f.Items = append(f.Items, p.parseItem())
	}
	f.EOF = p.peek()
	return f, true
}

func (p *parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *parser) at(k token.Kind) bool {
	return p.toks[p.pos].Kind == k
}

func (p *parser) bump() token.Token {
	t := p.toks[p.pos]
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(k token.Kind) token.Token {
	if !p.at(k) {
		p.errExpected(fmt.Sprintf("expected %q", k.String()))
	}
	return p.bump()
}

func (p *parser) errExpected(msg string) {
	tok := p.peek()
	diag.ReportError(p.opts.Reporter, diag.ParseExpectedToken, tok.Span,
		fmt.Sprintf("%s, found %q", msg, tok.Text))
	panic(bail{})
}

func (p *parser) errUnexpected(what string) {
	tok := p.peek()
	sp := tok.Span
	if tok.Kind == token.EOF {
		sp = source.Span{File: sp.File, Start: sp.Start, End: sp.Start}
	}
	diag.ReportError(p.opts.Reporter, diag.ParseUnexpectedToken, sp,
		fmt.Sprintf("unexpected %q while parsing %s", tok.Text, what))
	panic(bail{})
}
