package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) into one source text.
type Span struct {
	Start uint32 `json:"start" msgpack:"start"` // в байтах включительно
	End   uint32 `json:"end" msgpack:"end"`     // в байтах не включительно
}

// NewSpan builds a Span from int offsets.
// Offsets that do not fit into uint32 are a programming error and panic.
func NewSpan(start, end int) Span {
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start doesn't fit within uint32: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end doesn't fit within uint32: %w", err))
	}
	return Span{Start: s, End: e}
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Slice returns text[s.Start:s.End], or false if the range is not valid for text.
func (s Span) Slice(text string) (string, bool) {
	if s.Start > s.End || uint64(s.End) > uint64(len(text)) {
		return "", false
	}
	return text[s.Start:s.End], true
}
