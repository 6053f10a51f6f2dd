package diag

import (
	"cmp"
	"fmt"
	"slices"

	"fortio.org/safecast"
)

// Bag collects diagnostics up to a fixed limit. Diagnostics past the
// limit are dropped; Merge is the only way to raise it.
type Bag struct {
	items []Diagnostic
	limit uint16
}

// NewBag creates a bag holding at most limit diagnostics.
func NewBag(limit int) *Bag {
	l, err := safecast.Conv[uint16](limit)
	if err != nil {
		panic(fmt.Errorf("bag limit overflow: %w", err))
	}
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), limit: l}
}

// Add appends d and reports whether it fit under the limit.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.limit) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Limit returns the maximum number of diagnostics b keeps.
func (b *Bag) Limit() int { return int(b.limit) }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the diagnostics in insertion order; callers must not
// modify the slice.
func (b *Bag) Items() []Diagnostic { return b.items }

// HasErrors reports whether any diagnostic is an error.
func (b *Bag) HasErrors() bool { return b.worst() >= SevError }

// HasWarnings reports whether any diagnostic is at least a warning.
func (b *Bag) HasWarnings() bool { return b.worst() >= SevWarning }

func (b *Bag) worst() Severity {
	var w Severity
	for i := range b.items {
		w = max(w, b.items[i].Severity)
	}
	return w
}

// Merge appends every diagnostic of other, raising the limit to fit them.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if want := len(b.items) + len(other.items); want > int(b.limit) {
		l, err := safecast.Conv[uint16](want)
		if err != nil {
			l = ^uint16(0)
		}
		b.limit = l
	}
	for _, d := range other.items {
		b.Add(d)
	}
}

// Filter returns a new bag with the diagnostics for which keep is true.
func (b *Bag) Filter(keep func(Diagnostic) bool) *Bag {
	out := NewBag(b.Len())
	for _, d := range b.items {
		if keep(d) {
			out.Add(d)
		}
	}
	return out
}

// Sort orders diagnostics by file and position; at one position errors
// come before warnings.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.File, y.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup keeps the first diagnostic of each file, code and span.
func (b *Bag) Dedup() {
	type key struct {
		file  uint32
		code  Code
		start uint32
		end   uint32
	}
	seen := make(map[key]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		k := key{uint32(d.File), d.Code, d.Primary.Start, d.Primary.End}
		if _, dup := seen[k]; dup {
			return true
		}
		seen[k] = struct{}{}
		return false
	})
}
