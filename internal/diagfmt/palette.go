package diagfmt

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Color is a terminal foreground color, or NoColor.
type Color uint8

const (
	NoColor Color = iota
	Black
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	BrightBlack
	BrightRed
	BrightGreen
	BrightYellow
	BrightBlue
	BrightMagenta
	BrightCyan
	BrightWhite
)

var colorNames = [...]string{
	NoColor:       "none",
	Black:         "black",
	Red:           "red",
	Green:         "green",
	Yellow:        "yellow",
	Blue:          "blue",
	Magenta:       "magenta",
	Cyan:          "cyan",
	White:         "white",
	BrightBlack:   "bright-black",
	BrightRed:     "bright-red",
	BrightGreen:   "bright-green",
	BrightYellow:  "bright-yellow",
	BrightBlue:    "bright-blue",
	BrightMagenta: "bright-magenta",
	BrightCyan:    "bright-cyan",
	BrightWhite:   "bright-white",
}

func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// ParseColor accepts the names printed by Color.String. Underscores and
// a missing dash ("brightred") are tolerated.
func ParseColor(name string) (Color, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, "_", "-")
	if key == "" {
		return NoColor, nil
	}
	for i, n := range colorNames {
		if n == key || strings.ReplaceAll(n, "-", "") == key {
			return Color(i), nil
		}
	}
	return NoColor, fmt.Errorf("unknown color %q", name)
}

func (c Color) attribute() (color.Attribute, bool) {
	switch {
	case c >= Black && c <= White:
		return color.FgBlack + color.Attribute(c-Black), true
	case c >= BrightBlack && c <= BrightWhite:
		return color.FgHiBlack + color.Attribute(c-BrightBlack), true
	default:
		return 0, false
	}
}

// Palette assigns a color to each role of a rendered report.
type Palette struct {
	Message   Color
	Note      Color
	Divider   Color
	Trim      Color
	Highlight Color
	Underline Color
}

// DefaultPalette is used for errors.
func DefaultPalette() Palette {
	return Palette{
		Message:   BrightRed,
		Note:      BrightGreen,
		Divider:   BrightCyan,
		Trim:      BrightBlue,
		Highlight: BrightRed,
		Underline: BrightMagenta,
	}
}

// WarningPalette swaps the red roles of DefaultPalette for yellow.
func WarningPalette() Palette {
	p := DefaultPalette()
	p.Message = BrightYellow
	p.Highlight = BrightYellow
	return p
}

// ColorlessPalette renders plain text.
func ColorlessPalette() Palette {
	return Palette{}
}

// WithColor returns p unchanged when enabled, otherwise a colorless palette.
func (p Palette) WithColor(enabled bool) Palette {
	if !enabled {
		return ColorlessPalette()
	}
	return p
}

// IsColorless reports whether every role is NoColor.
func (p Palette) IsColorless() bool {
	return p == Palette{}
}

// paint wraps s in the escape sequence of c. Color output is forced on:
// whether to colorize is decided by choosing the palette, not by the
// global color.NoColor switch.
func paint(c Color, s string) string {
	attr, ok := c.attribute()
	if !ok {
		return s
	}
	col := color.New(attr)
	col.EnableColor()
	return col.Sprint(s)
}
