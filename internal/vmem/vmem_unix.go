//go:build linux || darwin || freebsd || netbsd || openbsd

package vmem

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

type posixMapper struct {
	pageSize uintptr
}

// Default returns the mapper for the running platform.
func Default() Mapper {
	return posixMapper{pageSize: uintptr(unix.Getpagesize())}
}

func (m posixMapper) Granularity() uintptr { return m.pageSize }

func (m posixMapper) Map(hint unsafe.Pointer, size uintptr, prot Prot, flags Flags, op Op) (unsafe.Pointer, error) {
	if op&OpReserve == 0 && op&OpCommit != 0 && hint != nil {
		// committing a range that is already reserved
		if err := m.Protect(hint, size, prot); err != nil {
			return nil, err
		}
		return hint, nil
	}
	p, err := unix.MmapPtr(-1, 0, hint, size, posixProt(prot), posixFlags(flags))
	if err != nil {
		return nil, newError("mmap", hint, size, err)
	}
	return p, nil
}

func (m posixMapper) Unmap(addr unsafe.Pointer, size uintptr, op Op) error {
	if op&OpDecommit != 0 && op&OpRelease == 0 {
		b := unsafe.Slice((*byte)(addr), size)
		if err := unix.Madvise(b, unix.MADV_DONTNEED); err != nil {
			return newError("madvise", addr, size, err)
		}
		return m.Protect(addr, size, ProtNone)
	}
	if err := unix.MunmapPtr(addr, size); err != nil {
		return newError("munmap", addr, size, err)
	}
	return nil
}

func (m posixMapper) Protect(addr unsafe.Pointer, size uintptr, prot Prot) error {
	b := unsafe.Slice((*byte)(addr), size)
	if err := unix.Mprotect(b, posixProt(prot)); err != nil {
		return newError("mprotect", addr, size, err)
	}
	return nil
}

func (m posixMapper) Trim(base unsafe.Pointer, reserved uintptr, keep unsafe.Pointer, size uintptr) error {
	head := uintptr(keep) - uintptr(base)
	if head > 0 {
		if err := m.Unmap(base, head, OpRelease); err != nil {
			_ = m.Unmap(base, reserved, OpRelease)
			return err
		}
	}
	if tail := reserved - head - size; tail > 0 {
		if err := m.Unmap(unsafe.Add(keep, size), tail, OpRelease); err != nil {
			_ = m.Unmap(keep, reserved-head, OpRelease)
			return err
		}
	}
	if err := m.Protect(keep, size, ProtRead|ProtWrite); err != nil {
		_ = m.Unmap(keep, size, OpRelease)
		return err
	}
	return nil
}

func posixProt(p Prot) int {
	prot := unix.PROT_NONE
	if p&ProtRead != 0 {
		prot |= unix.PROT_READ
	}
	if p&ProtWrite != 0 {
		prot |= unix.PROT_WRITE
	}
	if p&ProtExec != 0 {
		prot |= unix.PROT_EXEC
	}
	return prot
}

func posixFlags(f Flags) int {
	flags := 0
	if f&FlagAnonymous != 0 {
		flags |= unix.MAP_ANON
	}
	if f&FlagShared != 0 {
		flags |= unix.MAP_SHARED
	}
	if f&FlagPrivate != 0 {
		flags |= unix.MAP_PRIVATE
	}
	if f&FlagFixed != 0 {
		flags |= unix.MAP_FIXED
	}
	if flags&(unix.MAP_SHARED|unix.MAP_PRIVATE) == 0 {
		flags |= unix.MAP_PRIVATE
	}
	return flags
}
