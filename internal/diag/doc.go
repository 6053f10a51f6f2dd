// Package diag defines the diagnostic model shared by the lexer, the parser
// and the batch driver.
//
// A Diagnostic carries a severity, a stable Code, a message, the file and
// primary span it points at, and optional text notes. Producers emit through
// a Reporter; BagReporter collects into a bounded Bag which supports sorting
// and deduplication. Rendering lives in internal/diagfmt.
package diag
