//go:build windows

package vmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// allocation granularity of VirtualAlloc reservations
const windowsGranularity = 64 * 1024

type windowsMapper struct{}

// Default returns the mapper for the running platform.
func Default() Mapper { return windowsMapper{} }

func (windowsMapper) Granularity() uintptr { return windowsGranularity }

func (windowsMapper) Map(hint unsafe.Pointer, size uintptr, prot Prot, _ Flags, op Op) (unsafe.Pointer, error) {
	var kind uint32
	if op&OpReserve != 0 {
		kind |= windows.MEM_RESERVE
	}
	if op&OpCommit != 0 {
		kind |= windows.MEM_COMMIT
	}
	if kind == 0 {
		kind = windows.MEM_RESERVE | windows.MEM_COMMIT
	}
	addr, err := windows.VirtualAlloc(uintptr(hint), size, kind, windowsProt(prot))
	if err != nil {
		return nil, newError("VirtualAlloc", hint, size, err)
	}
	return unsafe.Pointer(addr), nil
}

func (windowsMapper) Unmap(addr unsafe.Pointer, size uintptr, op Op) error {
	if op&OpDecommit != 0 && op&OpRelease == 0 {
		if err := windows.VirtualFree(uintptr(addr), size, windows.MEM_DECOMMIT); err != nil {
			return newError("VirtualFree(decommit)", addr, size, err)
		}
		return nil
	}
	// MEM_RELEASE frees the whole reservation and requires a zero size.
	if err := windows.VirtualFree(uintptr(addr), 0, windows.MEM_RELEASE); err != nil {
		return newError("VirtualFree(release)", addr, size, err)
	}
	return nil
}

func (windowsMapper) Protect(addr unsafe.Pointer, size uintptr, prot Prot) error {
	var old uint32
	if err := windows.VirtualProtect(uintptr(addr), size, windowsProt(prot), &old); err != nil {
		return newError("VirtualProtect", addr, size, err)
	}
	return nil
}

// Trim cannot release part of a reservation here, so it drops the whole
// range and asks for the aligned address back.
func (m windowsMapper) Trim(base unsafe.Pointer, reserved uintptr, keep unsafe.Pointer, size uintptr) error {
	if err := m.Unmap(base, reserved, OpRelease); err != nil {
		return err
	}
	addr, err := windows.VirtualAlloc(uintptr(keep), size, windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_READWRITE)
	if err != nil {
		return newError("VirtualAlloc", keep, size, ErrRaced)
	}
	if addr != uintptr(keep) {
		_ = windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
		return newError("VirtualAlloc", keep, size, ErrRaced)
	}
	return nil
}

func windowsProt(p Prot) uint32 {
	switch {
	case p&ProtExec != 0 && p&ProtWrite != 0:
		return windows.PAGE_EXECUTE_READWRITE
	case p&ProtExec != 0 && p&ProtRead != 0:
		return windows.PAGE_EXECUTE_READ
	case p&ProtExec != 0:
		return windows.PAGE_EXECUTE
	case p&ProtWrite != 0:
		return windows.PAGE_READWRITE
	case p&ProtRead != 0:
		return windows.PAGE_READONLY
	default:
		return windows.PAGE_NOACCESS
	}
}
