// Package mmio is the 32-bit memory-mapped register layer the GD32H7 drivers
// are written against. On the chip (gd32h7 tag) it is backed by
// runtime/volatile; host builds use Sim.
package mmio

// Bus is a 32-bit register address space.
type Bus interface {
	Load(addr uint32) uint32
	Store(addr, val uint32)
}

// Reg is one register on a Bus. Its method set mirrors
// runtime/volatile.Register32 so driver code reads the same either way.
type Reg struct {
	bus  Bus
	addr uint32
}

// R returns the register at addr on bus.
func R(bus Bus, addr uint32) Reg { return Reg{bus: bus, addr: addr} }

func (r Reg) Addr() uint32       { return r.addr }
func (r Reg) Get() uint32        { return r.bus.Load(r.addr) }
func (r Reg) Set(v uint32)       { r.bus.Store(r.addr, v) }
func (r Reg) SetBits(v uint32)   { r.Set(r.Get() | v) }
func (r Reg) ClearBits(v uint32) { r.Set(r.Get() &^ v) }

// HasBits reports whether any bit of v is set.
func (r Reg) HasBits(v uint32) bool { return r.Get()&v != 0 }

// ReplaceBits replaces the field mask<<pos with value<<pos.
func (r Reg) ReplaceBits(value, mask uint32, pos uint8) {
	r.Set(r.Get()&^(mask<<pos) | (value&mask)<<pos)
}
