package diag

// Code is a compact, stable identifier of a diagnostic condition.
type Code uint16

const (
	CodeUnknown Code = iota

	// Синтаксис: вход не разбирается.
	LexUnknownChar
	LexUnterminatedString
	LexUnterminatedBlockComment
	ParseUnexpectedToken
	ParseExpectedToken
	ParseExpectedItem

	// Структура: нарушено предусловие трансформации.
	StructTokenCoverage
	StructGroupMismatch
	StructImportInterrupted
	StructPatchOverlap

	// Вход содержит зарезервированный sentinel-байт.
	InputReservedSentinel

	// IO для bulk-операций драйвера.
	IOLoadFileError
)

// ErrorKind is the coarse class surfaced through the public API.
type ErrorKind uint8

const (
	KindSyntax ErrorKind = iota
	KindStructural
	KindUnsupportedInput
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax error"
	case KindStructural:
		return "structural error"
	case KindUnsupportedInput:
		return "unsupported input"
	case KindIO:
		return "io error"
	}
	return "error"
}

// Kind maps a code to its public error kind.
func (c Code) Kind() ErrorKind {
	switch c {
	case LexUnknownChar, LexUnterminatedString, LexUnterminatedBlockComment,
		ParseUnexpectedToken, ParseExpectedToken, ParseExpectedItem:
		return KindSyntax
	case StructTokenCoverage, StructGroupMismatch, StructImportInterrupted,
		StructPatchOverlap:
		return KindStructural
	case InputReservedSentinel:
		return KindUnsupportedInput
	default:
		return KindIO
	}
}

var codeNames = map[Code]string{
	CodeUnknown:                 "UNKNOWN",
	LexUnknownChar:              "LEX_UNKNOWN_CHAR",
	LexUnterminatedString:       "LEX_UNTERMINATED_STRING",
	LexUnterminatedBlockComment: "LEX_UNTERMINATED_BLOCK_COMMENT",
	ParseUnexpectedToken:        "PARSE_UNEXPECTED_TOKEN",
	ParseExpectedToken:          "PARSE_EXPECTED_TOKEN",
	ParseExpectedItem:           "PARSE_EXPECTED_ITEM",
	StructTokenCoverage:         "STRUCT_TOKEN_COVERAGE",
	StructGroupMismatch:         "STRUCT_GROUP_MISMATCH",
	StructImportInterrupted:     "STRUCT_IMPORT_INTERRUPTED",
	StructPatchOverlap:          "STRUCT_PATCH_OVERLAP",
	InputReservedSentinel:       "INPUT_RESERVED_SENTINEL",
	IOLoadFileError:             "IO_LOAD_FILE",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "CODE(?)"
}
