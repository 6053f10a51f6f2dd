package diagfmt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"esdata/internal/source"
)

// scanLimit is how many characters of a line or span are shown before
// the rest is replaced by the trim marker.
const scanLimit = 40

const divider = "---------------"

// widths are measured without East Asian ambiguity so output does not
// depend on the locale of the machine that rendered it.
var widthCond = &runewidth.Condition{EastAsianWidth: false}

// printed maps text onto a single output line.
func printed(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n', '\r':
		case '\t':
			sb.WriteString("    ")
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func printedWidth(s string) int {
	return widthCond.StringWidth(printed(s))
}

// carets underlines one mark per printed character; display width only
// drives the padding in front of them.
func carets(s string) string {
	return strings.Repeat("^", max(1, utf8.RuneCountInString(printed(s))))
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// layout holds the byte offsets that drive one rendered diagnostic.
type layout struct {
	src        string
	start, end int
	margin     int

	line, column int
	lineStart    int
	lineEnd      int

	// head ends at headEnd, tail starts at tailStart; the span is long when
	// they do not meet.
	headEnd   int
	tailStart int

	falseStart int
	falseEnd   int

	prevShown bool
	prevLine  int
	prevStart int
	prevEnd   int

	nextShown bool
	nextLine  int
	nextStart int
	nextEnd   int

	// tailLine is the line of the tail when the gap crosses lines.
	tailLine         int
	splitAcrossLines bool
	gutterWidth      int
}

func newLayout(src string, span source.Span, margin int) layout {
	start := min(int(span.Start), len(src))
	end := min(max(int(span.End), start), len(src))

	l := layout{src: src, start: start, end: end, margin: margin}

	prefix := src[:start]
	l.line = strings.Count(prefix, "\n") + 1
	l.lineStart = strings.LastIndexByte(prefix, '\n') + 1
	// столбец в заголовке: число символов до start, но не меньше 1
	l.column = max(1, utf8.RuneCountInString(src[l.lineStart:start]))
	l.lineEnd = lineEndFrom(src, end)

	l.headEnd = l.scanHeadEnd()
	l.tailStart = l.scanTailStart()

	l.falseStart = start
	for i, steps := start, 0; i > l.lineStart && steps < margin; steps++ {
		_, size := utf8.DecodeLastRuneInString(src[:i])
		i -= size
		l.falseStart = i
	}
	l.falseEnd = advance(src, end, margin)

	// previous non-blank line
	prevEnd := l.lineStart
	for i := l.lineStart; i > 0; {
		r, size := utf8.DecodeLastRuneInString(src[:i])
		i -= size
		if !isASCIISpace(r) {
			prevEnd = i + size
			break
		}
	}
	l.prevEnd = prevEnd
	l.prevStart = strings.LastIndexByte(src[:prevEnd], '\n') + 1
	l.prevShown = strings.Contains(src[prevEnd:l.lineStart], "\n")
	l.prevLine = l.line - strings.Count(src[l.prevStart:l.lineStart], "\n")

	// next non-blank line
	nextStart := l.lineEnd
	for i, r := range src[l.lineEnd:] {
		if !isASCIISpace(r) {
			nextStart = l.lineEnd + i
			break
		}
	}
	nextStart = strings.LastIndexByte(src[:nextStart], '\n') + 1
	if nextStart >= l.lineEnd {
		l.nextShown = strings.Contains(src[l.lineEnd:nextStart], "\n")
	}
	l.nextStart = nextStart
	l.nextEnd = lineEndFrom(src, nextStart)
	l.nextLine = l.line + strings.Count(src[l.lineStart:max(nextStart, l.lineStart)], "\n")

	if l.long() {
		gap := src[l.headEnd:l.tailStart]
		l.splitAcrossLines = strings.Contains(gap, "\n")
		l.tailLine = l.line + strings.Count(gap, "\n")
	}

	largest := l.line
	if l.splitAcrossLines {
		largest = l.tailLine
	}
	if l.nextShown {
		largest = max(largest, l.nextLine)
	}
	l.gutterWidth = len(strconv.Itoa(largest))
	return l
}

func lineEndFrom(src string, off int) int {
	if i := strings.IndexByte(src[off:], '\n'); i >= 0 {
		return off + i
	}
	return len(src)
}

// advance moves forward from off by at most n characters without
// crossing a newline.
func advance(src string, off, n int) int {
	steps := 0
	for i, r := range src[off:] {
		if r == '\n' || steps >= n {
			return off + i
		}
		steps++
	}
	return len(src)
}

// scanHeadEnd finds where the visible head of the span ends: leading
// whitespace is skipped, then characters are taken up to a newline, the
// scan limit or the span end.
func (l *layout) scanHeadEnd() int {
	res := l.end
	steps := 0
	skipping := true
	for i, r := range l.src[l.start:] {
		if skipping && isASCIISpace(r) {
			steps++
			continue
		}
		skipping = false
		if r == '\n' || steps >= scanLimit || i >= l.end-l.start {
			break
		}
		res = l.start + i + utf8.RuneLen(r)
		steps++
	}
	return res
}

// scanTailStart mirrors scanHeadEnd from the end of the span.
func (l *layout) scanTailStart() int {
	res := l.start
	steps := 0
	skipping := true
	for i := l.end; i > 0; {
		r, size := utf8.DecodeLastRuneInString(l.src[:i])
		i -= size
		if skipping && isASCIISpace(r) {
			steps++
			continue
		}
		skipping = false
		if r == '\n' || steps >= scanLimit || i < l.start {
			break
		}
		res = i
		steps++
	}
	return res
}

func (l *layout) long() bool {
	return l.tailStart > l.headEnd
}

func (l *layout) prefixTrimmed() bool {
	return l.falseStart > l.lineStart
}

func (l *layout) suffixTrimmed() bool {
	return l.falseEnd < l.lineEnd
}

type renderer struct {
	sb      strings.Builder
	palette Palette
	trim    string
	l       layout
}

func (r *renderer) gutter(line int) {
	r.sb.WriteByte(' ')
	r.sb.WriteString(paint(r.palette.Divider, fmt.Sprintf("%*d | ", r.l.gutterWidth, line)))
}

func (r *renderer) blankGutter() {
	r.sb.WriteByte(' ')
	r.sb.WriteString(paint(r.palette.Divider, fmt.Sprintf("%*s | ", r.l.gutterWidth, "")))
}

func (r *renderer) text(s string) {
	r.sb.WriteString(printed(s))
}

func (r *renderer) colored(c Color, s string) {
	r.sb.WriteString(paint(c, printed(s)))
}

func (r *renderer) pad(n int) {
	r.sb.WriteString(strings.Repeat(" ", n))
}

func (r *renderer) trimWidth() int {
	return widthCond.StringWidth(r.trim)
}

// contextLine prints a neighbouring line, truncated like the primary one.
func (r *renderer) contextLine(line, start, end int) {
	r.gutter(line)
	cut := advance(r.l.src, start, r.l.margin)
	r.text(r.l.src[start:cut])
	if utf8.RuneCountInString(r.l.src[start:end]) > r.l.margin {
		r.sb.WriteByte(' ')
		r.colored(r.palette.Trim, r.trim)
	}
	r.sb.WriteByte('\n')
}

// leadingPart prints the trimmed prefix of the primary line.
func (r *renderer) leadingPart() {
	l := &r.l
	if l.prefixTrimmed() {
		r.colored(r.palette.Trim, r.trim)
		r.sb.WriteByte(' ')
	}
	r.text(l.src[l.falseStart:l.start])
}

func (r *renderer) leadingPad() {
	l := &r.l
	if l.prefixTrimmed() {
		r.pad(r.trimWidth() + 1)
	}
	r.pad(printedWidth(l.src[l.falseStart:l.start]))
}

func (r *renderer) trailingPart() {
	l := &r.l
	r.text(l.src[l.end:l.falseEnd])
	if l.suffixTrimmed() {
		r.sb.WriteByte(' ')
		r.colored(r.palette.Trim, r.trim)
	}
}

func (r *renderer) body() {
	l := &r.l
	src := l.src
	switch {
	case l.long() && l.splitAcrossLines:
		head := src[l.start:l.headEnd]
		tail := src[l.tailStart:l.end]

		r.gutter(l.line)
		r.leadingPart()
		r.colored(r.palette.Highlight, head)
		r.sb.WriteByte('\n')
		r.blankGutter()
		r.leadingPad()
		r.colored(r.palette.Underline, carets(head))
		r.sb.WriteByte('\n')

		r.blankGutter()
		r.colored(r.palette.Trim, r.trim)
		r.sb.WriteByte('\n')

		r.gutter(l.tailLine)
		r.colored(r.palette.Highlight, tail)
		r.trailingPart()
		r.sb.WriteByte('\n')
		r.blankGutter()
		r.colored(r.palette.Underline, carets(tail))

	case l.long():
		head := src[l.start:l.headEnd]
		tail := src[l.tailStart:l.end]

		r.gutter(l.line)
		r.leadingPart()
		r.colored(r.palette.Highlight, head)
		r.sb.WriteByte(' ')
		r.colored(r.palette.Trim, r.trim)
		r.sb.WriteByte(' ')
		r.colored(r.palette.Highlight, tail)
		r.trailingPart()
		r.sb.WriteByte('\n')
		r.blankGutter()
		r.leadingPad()
		r.colored(r.palette.Underline, carets(head))
		r.pad(r.trimWidth() + 2)
		r.colored(r.palette.Underline, carets(tail))

	default:
		hl := src[l.start:l.end]

		r.gutter(l.line)
		r.leadingPart()
		r.colored(r.palette.Highlight, hl)
		r.trailingPart()
		r.sb.WriteByte('\n')
		r.blankGutter()
		r.leadingPad()
		r.colored(r.palette.Underline, carets(hl))
	}
	r.sb.WriteByte('\n')
}

// render produces the full text of one diagnostic.
func render(text, kind, name, trimmed string, p Palette, item Reportable) string {
	trim := printed(trimmed)
	r := renderer{
		palette: p,
		trim:    trim,
		l:       newLayout(text, item.Span(), scanLimit+utf8.RuneCountInString(trim)),
	}
	l := &r.l

	r.sb.WriteString(paint(p.Divider, divider))
	r.sb.WriteByte('\n')
	r.sb.WriteString(paint(p.Message, fmt.Sprintf("%s:%d:%d", printed(name), l.line, l.column)))
	r.sb.WriteByte('\n')
	header := printed(kind) + ":"
	if msg, ok := item.Message(); ok {
		header += " " + printed(msg)
	}
	r.sb.WriteString(paint(p.Message, header))
	r.sb.WriteByte('\n')

	if l.prevShown {
		r.contextLine(l.prevLine, l.prevStart, l.prevEnd)
	}
	r.body()
	if l.nextShown {
		r.contextLine(l.nextLine, l.nextStart, l.nextEnd)
	}

	for _, note := range item.Notes() {
		r.sb.WriteString(paint(p.Note, "NOTE: "+printed(note)))
		r.sb.WriteByte('\n')
	}
	return r.sb.String()
}
