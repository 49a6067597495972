// Package bus defines the access patterns used for the VT420's external
// memory space. The CPU reaches every other device — the mapper, the DUART,
// VRAM, SRAM — exclusively through the CPUBus interface; no device ever
// holds a reference back to another device, so dispatch stays in one place.
package bus

import "github.com/mmastrac/blaze/hardware/memory/memorymap"

// CPUBus is the interface the CPU's external-memory read/write hook is
// bound to. It never sees which underlying device owns an address — that
// classification is entirely Bus's job.
type CPUBus interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// DebuggerBus defines the meta-operations used by a debugger or monitor:
// Peek and Poke access memory exactly like Read and Write but must never
// trigger a device's ordinary side effects (shadow-register commits,
// EEPROM clocking, chargen pointer advances).
type DebuggerBus interface {
	Peek(address uint16) uint8
	Poke(address uint16, value uint8)
}

// Mapper is the subset of the mapper/VMP's behaviour the bus dispatches to.
type Mapper interface {
	ReadControl(address uint16) uint8
	PeekControl(address uint16) uint8
	WriteControl(address uint16, value uint8)
	WriteShadow(address uint16, value uint8)
	ReadVRAM(address uint16) uint8
	WriteVRAM(address uint16, value uint8)
	ReadUpper(address uint16) uint8
	WriteUpper(address uint16, value uint8)
}

// DUART is the subset of the DUART's behaviour the bus dispatches to.
type DUART interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// Bus is the concrete CPUBus implementation for the core: a pure router
// over the Mapper and DUART it was constructed with. It owns no state of
// its own.
type Bus struct {
	mapper Mapper
	duart  DUART
}

// NewBus constructs a Bus over the given devices.
func NewBus(mapper Mapper, duart DUART) *Bus {
	return &Bus{mapper: mapper, duart: duart}
}

// Read dispatches a CPU external-memory read by address range. Unmapped
// addresses cannot occur — every address in 0x0000-0xFFFF is owned by some
// region — so there is no "unmapped read returns 0xFF" path left to take in
// practice; it would only be reachable if a region were misconfigured. The
// one 0xFF fallback is ReadVRAM's, for an address past the end of a reduced
// VRAM configuration.
func (b *Bus) Read(address uint16) uint8 {
	_, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.DUART:
		return b.duart.ReadRegister(address)
	case memorymap.MapperShadow, memorymap.MapperControl:
		return b.mapper.ReadControl(address)
	case memorymap.Upper:
		return b.mapper.ReadUpper(address)
	default:
		return b.mapper.ReadVRAM(address)
	}
}

// Write dispatches a CPU external-memory write by address range.
func (b *Bus) Write(address uint16, data uint8) {
	_, area := memorymap.MapAddress(address)
	switch area {
	case memorymap.DUART:
		b.duart.WriteRegister(address, data)
	case memorymap.MapperShadow:
		b.mapper.WriteShadow(address, data)
	case memorymap.MapperControl:
		b.mapper.WriteControl(address, data)
	case memorymap.Upper:
		b.mapper.WriteUpper(address, data)
	default:
		b.mapper.WriteVRAM(address, data)
	}
}

// Peek and Poke give a debugger the same dispatch without the mapper's
// side effects: Peek reads the mapper ranges through PeekControl (no
// chargen-pointer advance), and Poke stores shadow-range bytes through
// WriteControl, never through WriteShadow (no shadow commit). Every other
// address goes through Read and Write unchanged, so DUART accesses keep
// their side effects: a Peek of an RX holding register pops its FIFO, and
// a Poke of the output-port commands clocks the EEPROM.
func (b *Bus) Peek(address uint16) uint8 {
	_, area := memorymap.MapAddress(address)
	if area == memorymap.MapperShadow || area == memorymap.MapperControl {
		return b.mapper.PeekControl(address)
	}
	return b.Read(address)
}

func (b *Bus) Poke(address uint16, value uint8) {
	_, area := memorymap.MapAddress(address)
	if area == memorymap.MapperShadow {
		b.mapper.WriteControl(address, value)
		return
	}
	b.Write(address, value)
}
