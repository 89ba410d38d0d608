package diag

import (
	"cmp"
	"math"
	"slices"

	"fortio.org/safecast"
)

// Bag collects diagnostics up to a limit; the rest are dropped silently.
type Bag struct {
	items []Diagnostic
	limit uint16
}

// NewBag caps the bag at max, clamped to uint16.
func NewBag(max int) *Bag {
	limit, err := safecast.Conv[uint16](max)
	if err != nil {
		limit = math.MaxUint16
		if max < 0 {
			limit = 0
		}
	}
	return &Bag{items: make([]Diagnostic, 0, min(int(limit), 64)), limit: limit}
}

// Add stores d and reports false once the limit is reached.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= int(b.limit) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) HasErrors() bool   { return b.atLeast(SevError) }
func (b *Bag) HasWarnings() bool { return b.atLeast(SevWarning) }

func (b *Bag) atLeast(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

func (b *Bag) Len() int { return len(b.items) }

// Items aliases the bag's storage; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends everything in other, raising the limit if it has to.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); total > int(b.limit) {
		b.limit = uint16(min(total, math.MaxUint16))
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file, position, severity (worst first), then code id.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		if c := cmp.Compare(x.Primary.File, y.Primary.File); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Primary.Line, y.Primary.Line); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Primary.Col, y.Primary.Col); c != 0 {
			return c
		}
		if c := cmp.Compare(y.Severity, x.Severity); c != 0 {
			return c
		}
		return cmp.Compare(x.Code.ID(), y.Code.ID())
	})
}
