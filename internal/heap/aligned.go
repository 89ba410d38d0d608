// Package heap provides page-level allocations with alignment stronger than
// the platform mapping granularity.
package heap

import (
	"fmt"
	"unsafe"

	"risp/internal/vmem"
)

const (
	// NativeAlignment is the alignment every allocation gets for free.
	NativeAlignment = 8
	// MaxRetry bounds the reserve/trim/recommit sequence.
	MaxRetry = 10
)

// Aligned hands out blocks whose base address is a multiple of a caller
// supplied power of two.
type Aligned struct {
	mapper vmem.Mapper
}

// New returns an allocator over m; a nil m uses vmem.Default().
func New(m vmem.Mapper) *Aligned {
	if m == nil {
		m = vmem.Default()
	}
	return &Aligned{mapper: m}
}

// Allocate maps size bytes aligned to alignment, readable and writable.
// It panics when alignment is not a power of two or when every attempt fails.
func (a *Aligned) Allocate(size, alignment uintptr) unsafe.Pointer {
	if !vmem.IsPowerOfTwo(alignment) {
		panic(fmt.Sprintf("heap: alignment %d is not a power of two", alignment))
	}
	if alignment < NativeAlignment {
		alignment = NativeAlignment
	}
	gran := a.mapper.Granularity()
	size = vmem.RoundUp(max(size, 1), gran)

	var last error
	for range MaxRetry {
		p, err := a.tryAllocate(size, alignment, gran)
		if err == nil {
			return p
		}
		last = err
	}
	panic(fmt.Errorf("heap: %d bytes at alignment %d failed after %d attempts: %w", size, alignment, MaxRetry, last))
}

func (a *Aligned) tryAllocate(size, alignment, gran uintptr) (unsafe.Pointer, error) {
	if alignment <= gran {
		return a.mapper.Map(nil, size, vmem.ProtRead|vmem.ProtWrite, vmem.FlagAnonymous|vmem.FlagPrivate, vmem.OpReserve|vmem.OpCommit)
	}

	reserved := size + (alignment - gran)
	base, err := a.mapper.Map(nil, reserved, vmem.ProtNone, vmem.FlagAnonymous|vmem.FlagPrivate, vmem.OpReserve)
	if err != nil {
		return nil, err
	}
	roundup := vmem.RoundUp(uintptr(base), alignment) - uintptr(base)
	aligned := unsafe.Add(base, roundup)
	if err := a.mapper.Trim(base, reserved, aligned, size); err != nil {
		return nil, err
	}
	return aligned, nil
}

// Free releases a block returned by Allocate. size must match the request.
func (a *Aligned) Free(p unsafe.Pointer, size uintptr) error {
	if p == nil {
		return nil
	}
	size = vmem.RoundUp(max(size, 1), a.mapper.Granularity())
	return a.mapper.Unmap(p, size, vmem.OpRelease)
}
