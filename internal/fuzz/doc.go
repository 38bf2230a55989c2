
// Package fuzztests houses Go fuzz harnesses that exercise the formatting
// pipeline (source -> lexer -> parser -> layout -> patch). Its goal is to
// smoke test robustness, guard against panics on arbitrary inputs, and check
// the formatter's core contract: formatting its own output changes nothing.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер/форматтер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/parser, internal/diag,
// internal/token, internal/format.

package fuzztests
