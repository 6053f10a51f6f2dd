package diag

import "fmt"

// Code identifies a kind of diagnostic. The thousands digit selects the
// family shown in its ID: 1 lexical, 4 input/output.
type Code uint16

const (
	UnknownCode Code = 0

	LexInfo              Code = 1000
	LexMixedIndentation  Code = 1001
	LexUnclosedString    Code = 1002
	LexNonASCIICharacter Code = 1003

	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var codeTitles = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexMixedIndentation:  "Mixed indentation",
	LexUnclosedString:    "Unclosed string",
	LexNonASCIICharacter: "Non-ASCII character",
	IOLoadFileError:      "I/O load file error",
	IOCacheError:         "Parse cache error",
}

var codeFamilies = map[int]string{1: "LEX", 2: "SYN", 4: "IO"}

// ID returns the stable textual form of the code, e.g. "LEX1001".
func (c Code) ID() string {
	prefix, ok := codeFamilies[int(c)/1000]
	if !ok {
		prefix = "E"
	}
	return fmt.Sprintf("%s%04d", prefix, uint16(c))
}

// Title is a short human name for the code.
func (c Code) Title() string {
	if t, ok := codeTitles[c]; ok {
		return t
	}
	return codeTitles[UnknownCode]
}

func (c Code) String() string {
	return "[" + c.ID() + "]: " + c.Title()
}
