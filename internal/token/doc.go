// Package token defines the lexical tokens of Endless Sky data files.
// Invariants:
//   - A token never copies text; Span addresses bytes of the source it was lexed from.
//   - Symbol spans exclude surrounding quotes.
//   - Indent covers exactly one space or tab character; Newline covers one '\n'.
package token
