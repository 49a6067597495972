// Package memorymap classifies an address in the VT420's 16-bit external
// memory space into the region that owns it. Checking which region an
// address falls within is handled entirely by MapAddress; no region is
// mirrored, so the address itself is returned unchanged.
package memorymap

// Area represents one of the address ranges the CPU's external-memory bus
// is divided into.
type Area int

func (a Area) String() string {
	switch a {
	case VRAM:
		return "VRAM"
	case DUART:
		return "DUART"
	case MapperShadow:
		return "MapperShadow"
	case MapperControl:
		return "MapperControl"
	case Upper:
		return "Upper"
	}
	return "undefined"
}

// The regions of the external memory map.
const (
	Undefined Area = iota
	VRAM
	DUART
	MapperShadow
	MapperControl
	Upper
)

// Origin and memtop of every region named in Area. MapAddress checks
// MapperShadow, MapperControl, DUART and Upper first: the first three sit
// inside what would otherwise be the VRAM window's top end, so they must be
// tested before falling back to VRAM.
const (
	OriginDUART         = uint16(0x7FE0)
	MemtopDUART         = uint16(0x7FEF)
	OriginMapperShadow  = uint16(0x7EE0)
	MemtopMapperShadow  = uint16(0x7EFF)
	OriginMapperControl = uint16(0x7FF0)
	MemtopMapperControl = uint16(0x7FFF)
	OriginVRAM          = uint16(0x0000)
	MemtopVRAM          = uint16(0x7FDF)
	OriginUpper         = uint16(0x8000)
	MemtopUpper         = uint16(0xFFFF)
)

// MapAddress classifies address into the Area that owns it. The returned
// address is address unchanged — unlike the teacher's VCS mirroring scheme,
// none of the VT420's regions are mirrored, so no normalisation is needed —
// but the signature is kept symmetrical with the region-local address an
// owning device would index with.
func MapAddress(address uint16) (uint16, Area) {
	if address >= OriginMapperShadow && address <= MemtopMapperShadow {
		return address, MapperShadow
	}
	if address >= OriginMapperControl && address <= MemtopMapperControl {
		return address, MapperControl
	}
	if address >= OriginDUART && address <= MemtopDUART {
		return address, DUART
	}
	if address >= OriginUpper {
		return address, Upper
	}
	return address, VRAM
}

// IsArea returns true if address falls within area.
func IsArea(address uint16, area Area) bool {
	_, a := MapAddress(address)
	return area == a
}
