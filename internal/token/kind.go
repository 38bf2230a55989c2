package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	KwFn       // fn
	KwLet      // let
	KwMut      // mut
	KwConst    // const
	KwIf       // if
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwIn       // in
	KwBreak    // break
	KwContinue // continue
	KwReturn   // return
	KwImport   // import
	KwAs       // as
	KwType     // type
	KwPub      // pub
	KwTrue     // true
	KwFalse    // false

	IntLit    // 42
	FloatLit  // 4.2
	StringLit // "..."

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Shl       // <<
	Shr       // >>
	Amp       // &
	Pipe      // |
	Caret     // ^
	AndAnd    // &&
	OrOr      // ||
	Question  // ?
	Colon     // :
	ColonColon // ::
	Semicolon // ;
	Comma     // ,
	Dot       // .
	DotDot    // ..
	DotDotEq  // ..=
	Arrow     // ->
	FatArrow  // =>
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	At        // @
	Underscore // _

	kindCount
)

var kindNames = [...]string{
	Invalid: "Invalid", EOF: "EOF", Ident: "Ident",
	KwFn: "fn", KwLet: "let", KwMut: "mut", KwConst: "const", KwIf: "if",
	KwElse: "else", KwWhile: "while", KwFor: "for", KwIn: "in",
	KwBreak: "break", KwContinue: "continue", KwReturn: "return",
	KwImport: "import", KwAs: "as", KwType: "type", KwPub: "pub",
	KwTrue: "true", KwFalse: "false",
	IntLit: "IntLit", FloatLit: "FloatLit", StringLit: "StringLit",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Assign: "=", PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=",
	SlashAssign: "/=", PercentAssign: "%=",
	EqEq: "==", Bang: "!", BangEq: "!=", Lt: "<", LtEq: "<=", Gt: ">",
	GtEq: ">=", Shl: "<<", Shr: ">>", Amp: "&", Pipe: "|", Caret: "^",
	AndAnd: "&&", OrOr: "||", Question: "?", Colon: ":", ColonColon: "::",
	Semicolon: ";", Comma: ",", Dot: ".", DotDot: "..", DotDotEq: "..=",
	Arrow: "->", FatArrow: "=>", LParen: "(", RParen: ")", LBrace: "{",
	RBrace: "}", LBracket: "[", RBracket: "]", At: "@", Underscore: "_",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
