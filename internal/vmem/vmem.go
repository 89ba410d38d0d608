package vmem

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// Prot is a memory protection mask.
type Prot uint8

const (
	ProtNone  Prot = 0
	ProtRead  Prot = 1 << 0
	ProtWrite Prot = 1 << 1
	ProtExec  Prot = 1 << 2
)

func (p Prot) String() string {
	if p == ProtNone {
		return "none"
	}
	var parts []string
	if p&ProtRead != 0 {
		parts = append(parts, "read")
	}
	if p&ProtWrite != 0 {
		parts = append(parts, "write")
	}
	if p&ProtExec != 0 {
		parts = append(parts, "exec")
	}
	return strings.Join(parts, "|")
}

// Flags selects the kind of mapping.
type Flags uint8

const (
	FlagNone      Flags = 0
	FlagAnonymous Flags = 1 << 0
	FlagShared    Flags = 1 << 1
	FlagPrivate   Flags = 1 << 2
	FlagFixed     Flags = 1 << 3
)

// Op distinguishes address-space reservation from physical backing.
// Platforms without the distinction treat Reserve|Commit as a plain map.
type Op uint8

const (
	OpCommit   Op = 1 << 0
	OpDecommit Op = 1 << 1
	OpReserve  Op = 1 << 2
	OpRelease  Op = 1 << 3
)

// PageSize is the unit the zone allocator grows by.
const PageSize = 4096

// ErrRaced is returned by Trim when the platform had to release the whole
// reservation and another mapping claimed the wanted address in between.
var ErrRaced = errors.New("vmem: aligned range was claimed concurrently")

// AllocationError wraps a failed OS virtual-memory call.
type AllocationError struct {
	Op   string
	Addr uintptr
	Size uintptr
	Err  error
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("vmem: %s of %d bytes at %#x failed: %v", e.Op, e.Size, e.Addr, e.Err)
}

func (e *AllocationError) Unwrap() error { return e.Err }

// Mapper is the platform virtual-memory capability.
type Mapper interface {
	// Map reserves and/or commits size bytes. hint may be nil.
	Map(hint unsafe.Pointer, size uintptr, prot Prot, flags Flags, op Op) (unsafe.Pointer, error)
	// Unmap releases (OpRelease) or drops the backing of (OpDecommit) a region.
	Unmap(addr unsafe.Pointer, size uintptr, op Op) error
	// Protect changes the protection of a committed region.
	Protect(addr unsafe.Pointer, size uintptr, prot Prot) error
	// Trim shrinks the reservation [base, base+reserved) to [keep, keep+size)
	// and leaves the kept range readable and writable.
	Trim(base unsafe.Pointer, reserved uintptr, keep unsafe.Pointer, size uintptr) error
	// Granularity is the native alignment of addresses returned by Map.
	Granularity() uintptr
}

// RoundUp rounds n up to a multiple of align, which must be a power of two.
func RoundUp(n, align uintptr) uintptr {
	return (n + align - 1) &^ (align - 1)
}

// IsPowerOfTwo reports whether n is a non-zero power of two.
func IsPowerOfTwo(n uintptr) bool {
	return n != 0 && n&(n-1) == 0
}

func newError(op string, addr unsafe.Pointer, size uintptr, err error) error {
	return &AllocationError{Op: op, Addr: uintptr(addr), Size: size, Err: err}
}
