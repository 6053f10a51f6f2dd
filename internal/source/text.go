package source

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"fortio.org/safecast"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
	lf      = []byte("\n")
)

// Normalize strips a leading UTF-8 BOM and folds CRLF into LF. A lone CR is
// data and stays.
func Normalize(content []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if rest, ok := bytes.CutPrefix(content, utf8BOM); ok {
		content = rest
		flags |= FileHadBOM
	}
	if bytes.Contains(content, crlf) {
		content = bytes.ReplaceAll(content, crlf, lf)
		flags |= FileNormalizedCRLF
	}
	return content, flags
}

// LineCol is a 1-based position; Col counts characters, not bytes.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Locate converts a byte offset of text into a LineCol. Offsets outside
// text are clamped.
func Locate(text string, off int) LineCol {
	prefix := text[:min(max(off, 0), len(text))]
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return LineCol{
		Line: toUint32(strings.Count(prefix, "\n")+1, "line"),
		Col:  toUint32(utf8.RuneCountInString(prefix[lineStart:])+1, "column"),
	}
}

func toUint32(n int, what string) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("%s overflow: %w", what, err))
	}
	return v
}
