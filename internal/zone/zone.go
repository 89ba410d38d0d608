// Package zone implements a bump allocator over chained virtual-memory
// segments. Everything placed in a Zone lives until Destroy and is released
// in one sweep; nothing is freed individually.
package zone

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"unsafe"

	"fortio.org/safecast"

	"risp/internal/trace"
	"risp/internal/vmem"
)

// ErrDestroyed is the panic value for allocations after Destroy.
var ErrDestroyed = errors.New("zone: allocation from a destroyed zone")

// segment is the header stored at the base of every mapping.
type segment struct {
	size uintptr // mapped bytes, header included
	used uintptr // consumed bytes, header included
	next *segment
}

const headerSize = unsafe.Sizeof(segment{})

// Stats describes the current footprint of a zone.
type Stats struct {
	Segments int
	Mapped   uintptr
	Used     uintptr
}

type state struct {
	mapper    vmem.Mapper
	tracer    trace.Tracer
	head      *segment
	cur       *segment
	segments  int
	destroyed bool
}

// Zone is single-owner: it must not be shared between goroutines.
type Zone struct {
	st *state
}

// Option configures a Zone.
type Option func(*state)

// WithMapper overrides the platform mapper.
func WithMapper(m vmem.Mapper) Option {
	return func(s *state) { s.mapper = m }
}

// WithTracer reports segment growth as point events.
func WithTracer(t trace.Tracer) Option {
	return func(s *state) { s.tracer = t }
}

// New creates an empty zone. The first segment is mapped on first use.
func New(opts ...Option) *Zone {
	st := &state{mapper: vmem.Default(), tracer: trace.Nop}
	for _, opt := range opts {
		opt(st)
	}
	z := &Zone{st: st}
	runtime.AddCleanup(z, func(s *state) { _ = s.destroy() }, st)
	return z
}

// Alloc reserves size bytes aligned to align and returns their address.
// The memory is zeroed. Mapping failures are fatal.
func (z *Zone) Alloc(size, align uintptr) unsafe.Pointer {
	st := z.st
	if st.destroyed {
		panic(ErrDestroyed)
	}
	if align == 0 {
		align = 1
	}
	if !vmem.IsPowerOfTwo(align) {
		panic(fmt.Sprintf("zone: alignment %d is not a power of two", align))
	}
	if size == 0 {
		size = 1
	}
	if st.cur != nil {
		if p, ok := st.cur.bump(size, align); ok {
			return p
		}
	}
	st.grow(size + align)
	p, ok := st.cur.bump(size, align)
	if !ok {
		panic(fmt.Sprintf("zone: fresh segment of %d bytes cannot hold %d", st.cur.size, size))
	}
	return p
}

func (s *segment) bump(size, align uintptr) (unsafe.Pointer, bool) {
	base := uintptr(unsafe.Pointer(s))
	off := vmem.RoundUp(base+s.used, align) - base
	if off+size > s.size {
		return nil, false
	}
	s.used = off + size
	return unsafe.Add(unsafe.Pointer(s), off), true
}

func (st *state) grow(request uintptr) {
	need := request + headerSize
	size := uintptr(vmem.PageSize)
	if need > vmem.PageSize {
		size = vmem.RoundUp(max(vmem.PageSize, 2*need), vmem.PageSize)
	}
	p, err := st.mapper.Map(nil, size, vmem.ProtRead|vmem.ProtWrite, vmem.FlagAnonymous|vmem.FlagPrivate, vmem.OpReserve|vmem.OpCommit)
	if err != nil {
		panic(fmt.Errorf("zone: grow by %d bytes: %w", size, err))
	}
	seg := (*segment)(p)
	*seg = segment{size: size, used: headerSize}
	if st.cur == nil {
		st.head = seg
	} else {
		st.cur.next = seg
	}
	st.cur = seg
	st.segments++

	if st.tracer.Enabled() && st.tracer.Level().ShouldEmit(trace.ScopeNode) {
		st.tracer.Emit(&trace.Event{
			Kind:   trace.KindPoint,
			Scope:  trace.ScopeNode,
			Name:   "zone.grow",
			Detail: strconv.FormatUint(uint64(size), 10) + " bytes",
			Extra:  map[string]string{"segments": strconv.Itoa(st.segments)},
		})
	}
}

// Destroy unmaps every segment. It is safe to call more than once; every
// pointer obtained from the zone is invalid afterwards.
func (z *Zone) Destroy() error {
	return z.st.destroy()
}

func (st *state) destroy() error {
	if st.destroyed {
		return nil
	}
	st.destroyed = true
	var first error
	for seg := st.head; seg != nil; {
		next, size := seg.next, seg.size
		if err := st.mapper.Unmap(unsafe.Pointer(seg), size, vmem.OpRelease); err != nil && first == nil {
			first = err
		}
		seg = next
	}
	st.head, st.cur = nil, nil
	st.segments = 0
	return first
}

// Destroyed reports whether Destroy has run.
func (z *Zone) Destroyed() bool { return z.st.destroyed }

// Stats walks the segment chain.
func (z *Zone) Stats() Stats {
	var s Stats
	for seg := z.st.head; seg != nil; seg = seg.next {
		s.Segments++
		s.Mapped += seg.size
		s.Used += seg.used
	}
	return s
}

// Place copies v into the zone and returns its stable address. T must not
// contain Go pointers since the collector does not scan zone memory.
func Place[T any](z *Zone, v T) *T {
	mustBePointerFree[T]()
	p := (*T)(z.Alloc(unsafe.Sizeof(v), unsafe.Alignof(v)))
	*p = v
	return p
}

// String copies s into the zone. The result aliases zone memory.
func String(z *Zone, s string) string {
	if s == "" {
		return ""
	}
	n := len(s)
	p := z.Alloc(uintptr(n), 1)
	copy(unsafe.Slice((*byte)(p), n), s)
	return unsafe.String((*byte)(p), n)
}

// Bytes copies b into the zone.
func Bytes(z *Zone, b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	n, err := safecast.Conv[uintptr](len(b))
	if err != nil {
		panic(fmt.Errorf("zone: byte slice length overflow: %w", err))
	}
	p := z.Alloc(n, 1)
	out := unsafe.Slice((*byte)(p), len(b))
	copy(out, b)
	return out
}
