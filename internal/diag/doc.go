// Package diag defines the diagnostic model shared by the formatting pipeline.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexer, parser, and layout passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or rendering layers.
//
// # Scope
//
// Package diag performs no formatting, IO, or CLI integration. Rendering
// lives in internal/diagfmt; the library surface converts diagnostics into
// the public error type.
//
// Error kinds are coarse classes over codes: a syntax error means the input
// cannot be parsed, a structural error means a precondition of a transform
// was violated (never silently repaired), and unsupported input means the
// reserved sentinel byte was present before any parsing began.
package diag
