// Package literal interns source text into dense integer ids.
package literal

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"risp/internal/zone"
)

// ID identifies interned text. Ids are dense and start at 0.
type ID int64

// None marks tokens that carry no text (punctuation).
const None ID = -1

// Buffer maps text to ids and back. The text itself lives in the zone.
type Buffer struct {
	zone  *zone.Zone
	byID  []string      // id -> text, aliases zone memory
	index map[string]ID // text -> id
}

// New creates an empty buffer whose storage is taken from z.
func New(z *zone.Zone) *Buffer {
	return &Buffer{
		zone:  z,
		byID:  make([]string, 0, 64),
		index: make(map[string]ID, 64),
	}
}

// Get returns the id for text, interning it on first sight.
func (b *Buffer) Get(text string) ID {
	b.mustBeLive()
	if id, ok := b.index[text]; ok {
		return id
	}
	n, err := safecast.Conv[int64](len(b.byID))
	if err != nil {
		panic(fmt.Errorf("literal buffer overflow: %w", err))
	}
	stored := zone.String(b.zone, text)
	id := ID(n)
	b.byID = append(b.byID, stored)
	b.index[stored] = id
	return id
}

// Find returns the text for id, or "" when id was never assigned.
// The result is a heap copy and stays valid after the zone is destroyed,
// but Find itself panics once that happens.
func (b *Buffer) Find(id ID) string {
	s, _ := b.Lookup(id)
	return s
}

// Lookup is Find with an explicit validity flag.
func (b *Buffer) Lookup(id ID) (string, bool) {
	b.mustBeLive()
	if !b.Has(id) {
		return "", false
	}
	return strings.Clone(b.byID[id]), true
}

// Has reports whether id was assigned by this buffer.
func (b *Buffer) Has(id ID) bool {
	return id >= 0 && int64(id) < int64(len(b.byID))
}

// Len returns the number of interned strings.
func (b *Buffer) Len() int {
	return len(b.byID)
}

// Snapshot returns copies of every interned string in id order.
func (b *Buffer) Snapshot() []string {
	b.mustBeLive()
	out := slices.Clone(b.byID)
	for i := range out {
		out[i] = strings.Clone(out[i])
	}
	return out
}

// mustBeLive panics with zone.ErrDestroyed once the backing zone is gone:
// every stored string points into its unmapped pages.
func (b *Buffer) mustBeLive() {
	if b.zone.Destroyed() {
		panic(zone.ErrDestroyed)
	}
}
