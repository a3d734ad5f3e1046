//go:build gd32h7

package mmio

import (
	"runtime/volatile"
	"unsafe"
)

// Volatile accesses physical addresses directly.
type Volatile struct{}

func (Volatile) Load(addr uint32) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(uintptr(addr))))
}

func (Volatile) Store(addr, val uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(uintptr(addr))), val)
}
