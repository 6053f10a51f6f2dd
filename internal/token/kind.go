package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Symbol is a bareword or quoted string.
	Symbol Kind = iota
	// Indent is one leading space or tab of a line.
	Indent
	// Newline terminates a line.
	Newline
)

func (k Kind) String() string {
	switch k {
	case Symbol:
		return "Symbol"
	case Indent:
		return "Indent"
	case Newline:
		return "Newline"
	default:
		return "Unknown"
	}
}
