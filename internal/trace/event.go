package trace

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind is the type of an event.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

func (k Kind) marker() string {
	switch k {
	case KindBegin:
		return "→"
	case KindEnd:
		return "←"
	case KindHeartbeat:
		return "♡"
	default:
		return "•"
	}
}

// Scope is the granularity of an event; lower is coarser.
type Scope uint8

const (
	ScopeRun    Scope = iota + 1 // one command invocation
	ScopeStage                   // list, load, parse, report
	ScopeSource                  // one data file
	ScopeNode
)

func (s Scope) String() string {
	switch s {
	case ScopeRun:
		return "run"
	case ScopeStage:
		return "stage"
	case ScopeSource:
		return "source"
	case ScopeNode:
		return "node"
	default:
		return "unknown"
	}
}

// Attr is one key/value pair attached to an event.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string
	Detail   string
	Attrs    []Attr
	Elapsed  time.Duration // only on KindEnd
}

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	default:
		return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
	}
}

// formatFor picks NDJSON for .json and .ndjson paths, text otherwise.
func formatFor(f Format, path string) Format {
	if f != FormatAuto {
		return f
	}
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".json") {
		return FormatNDJSON
	}
	return FormatText
}

// Encode renders ev as one line in format f.
func (ev *Event) Encode(f Format) []byte {
	if f == FormatNDJSON {
		return ev.json()
	}
	return ev.text()
}

type jsonEvent struct {
	Time     string  `json:"time"`
	Seq      uint64  `json:"seq"`
	Kind     string  `json:"kind"`
	Scope    string  `json:"scope"`
	SpanID   uint64  `json:"span_id,omitempty"`
	ParentID uint64  `json:"parent_id,omitempty"`
	Name     string  `json:"name"`
	Detail   string  `json:"detail,omitempty"`
	Attrs    []Attr  `json:"attrs,omitempty"`
	Elapsed  float64 `json:"elapsed_ms,omitempty"`
}

func (ev *Event) json() []byte {
	out, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format(time.RFC3339Nano),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Attrs:    ev.Attrs,
		Elapsed:  float64(ev.Elapsed) / float64(time.Millisecond),
	})
	if err != nil {
		return nil
	}
	return append(out, '\n')
}

// text: [hh:mm:ss.mmm] <scope indent><marker> name (detail) {k=v, ...} 1.2ms
func (ev *Event) text() []byte {
	var sb strings.Builder
	sb.WriteString("[" + ev.Time.Format("15:04:05.000") + "] ")
	if ev.Scope > ScopeRun {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeRun)))
	}
	sb.WriteString(ev.Kind.marker() + " " + ev.Name)
	if ev.Detail != "" {
		sb.WriteString(" (" + ev.Detail + ")")
	}
	if len(ev.Attrs) > 0 {
		sb.WriteString(" {")
		for i, a := range ev.Attrs {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.Key + "=" + a.Value)
		}
		sb.WriteString("}")
	}
	if ev.Kind == KindEnd {
		fmt.Fprintf(&sb, " %.3fms", float64(ev.Elapsed)/float64(time.Millisecond))
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}
