package trace

import (
	"fmt"
	"strings"
)

// Level controls how fine-grained the recorded scopes are.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // ring only, dumped on failure
	LevelStage        // run and stage spans
	LevelSource       // plus one span per source
	LevelDebug        // everything
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelStage:  "stage",
	LevelSource: "source",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a flag value to a Level.
func ParseLevel(s string) (Level, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for l, name := range levelNames {
		if key == name {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|stage|source|debug)", s)
}

// Records reports whether events of scope are kept at this level.
func (l Level) Records(scope Scope) bool {
	switch l {
	case LevelStage:
		return scope <= ScopeStage
	case LevelSource:
		return scope <= ScopeSource
	case LevelDebug:
		return true
	default:
		// LevelError пишет только через дамп кольца
		return false
	}
}
