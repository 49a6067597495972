// Package mapper implements the DC7166 video/memory processor (VMP): the
// mapper register file, VRAM ownership and paging, ROM banking, and the
// scanline scheduler that produces CSYNC. It is the bus's target for both
// the mapper shadow range (0x7EE0-0x7EFF) and the mapper control range
// (0x7FF0-0x7FFF), and for whichever of SRAM/VRAM/ROM is currently mapped
// at 0x8000-0xFFFF.
package mapper

import "github.com/mmastrac/blaze/logger"

const (
	vramSize = 128 * 1024
	sramSize = 32 * 1024
	romSize  = 128 * 1024
	romBank  = 64 * 1024
)

// Mapper owns VRAM, SRAM, ROM, and the 16-register control file, and
// drives the scanline scheduler.
type Mapper struct {
	control [16]uint8

	rowGeomHalf  shadowHalf
	fontOffHalf  shadowHalf

	vram []uint8
	sram []uint8
	rom  []uint8

	sched scanline

	mpInterrupt bool
}

// shadowHalf tracks a two-stage shadow register's half-latched state: the
// low byte must be written before the high byte for a commit to fire, and
// the latch resets on every commit (or on a write that breaks the
// expected order).
type shadowHalf struct {
	haveLow bool
	low     uint8
}

// NewMapper constructs a Mapper with vramBytes bytes of VRAM (64 KiB or 128
// KiB per configuration) and the given ROM image, which must be exactly
// 128 KiB (two 64 KiB banks).
func NewMapper(rom []uint8, vramBytes int) *Mapper {
	m := &Mapper{
		vram: make([]uint8, vramBytes),
		sram: make([]uint8, sramSize),
		rom:  make([]uint8, romSize),
	}
	copy(m.rom, rom)
	m.Reset()
	return m
}

// Reset reinitialises the register file to the documented power-on values
// and puts the scheduler back in Vblank with all counters cleared.
func (m *Mapper) Reset() {
	for i := range m.control {
		m.control[i] = 0
	}
	m.control[RegSession1] = PowerOnSession1
	m.control[RegFrameControl] = PowerOnFrameControl
	m.control[RegPageSelect] = PowerOnPageSelect
	m.control[RegOffsetX] = 0x1E
	m.control[RegOffsetY] = 0x1E
	m.rowGeomHalf = shadowHalf{}
	m.fontOffHalf = shadowHalf{}
	m.sched.reset()
	m.mpInterrupt = false
}

// ReadControl reads a byte from the mapper control range (0x7FF0-0x7FFF).
// Reading RegRowGeometry returns the scheduler's chargen status byte, and
// first advances that byte by one if a shadow low half (0x7EE4) is pending
// -- a ROM-polling quirk, not an architectural requirement, since spec.md
// only says such a read "advances the internal chargen pointer" without
// pinning down by how much; one tick's worth is what this implements.
func (m *Mapper) ReadControl(address uint16) uint8 {
	offset := controlOffset(address)
	switch offset {
	case RegRowGeometry:
		if m.rowGeomHalf.haveLow {
			m.sched.chargenStat++
		}
		return m.sched.chargenStat
	default:
		return m.control[offset]
	}
}

// PeekControl reads a byte from the mapper control range without any of
// ReadControl's side effects, returning the raw last-committed value even
// for RegRowGeometry. This is what a debugger or a test verifying the
// shadow-commit testable property should use.
func (m *Mapper) PeekControl(address uint16) uint8 {
	return m.control[controlOffset(address)]
}

// WriteControl writes a byte into the mapper control range, including the
// byte writes a shadow commit performs on RegRowGeometry/RegFontOffset.
func (m *Mapper) WriteControl(address uint16, value uint8) {
	offset := controlOffset(address)
	m.control[offset] = value
	if offset == RegSession1 && value == 0xA0 {
		logger.Log(logger.Allow, "mapper", "reset strobe: 0x7FF3 = 0xA0")
	}
}

// WriteShadow writes a byte into the mapper shadow range (0x7EE0-0x7EFF).
// Only the two documented shadow pairs have any effect; writes to other
// addresses in the range are logged and otherwise ignored, not stored.
func (m *Mapper) WriteShadow(address uint16, value uint8) {
	switch address {
	case ShadowRowGeomLo:
		m.rowGeomHalf = shadowHalf{haveLow: true, low: value}
	case ShadowRowGeomHi:
		if m.rowGeomHalf.haveLow {
			low := m.rowGeomHalf.low
			m.WriteControl(0x7FF6, low)
			m.WriteControl(0x7FF6, value)
			m.rowGeomHalf = shadowHalf{}
			m.sched.commitPending = true
			m.mpInterrupt = true
		}
	case ShadowFontOffLo:
		m.fontOffHalf = shadowHalf{haveLow: true, low: value}
	case ShadowFontOffHi:
		if m.fontOffHalf.haveLow {
			low := m.fontOffHalf.low
			m.WriteControl(0x7FFC, low)
			m.WriteControl(0x7FFC, value)
			m.fontOffHalf = shadowHalf{}
			m.sched.commitPending = true
			m.mpInterrupt = true
		}
	default:
		logger.Logf(logger.Allow, "mapper", "unknown shadow register write: addr=%#04x value=%#02x", address, value)
	}
}

// ReadVRAM and WriteVRAM access the window at 0x0000-0x7FDF, applying the
// session-flip swizzle when 0x7FF3 bit 4 is set.
func (m *Mapper) ReadVRAM(address uint16) uint8 {
	a := m.swizzle(address)
	if int(a) >= len(m.vram) {
		return 0xFF
	}
	return m.vram[a]
}

func (m *Mapper) WriteVRAM(address uint16, value uint8) {
	a := m.swizzle(address)
	if int(a) < len(m.vram) {
		m.vram[a] = value
	}
}

// swizzle applies the 0x0200-0x03FF XOR-0x0100 remap that 0x7FF3 bit 4
// enables, recovered from the reference implementation's
// swizzle_video_ram. The higher-level meaning of the bit beyond this
// mechanism is an open question (spec.md §9).
func (m *Mapper) swizzle(address uint16) uint16 {
	if m.control[RegSession1]&BitSwizzle != 0 && address >= 0x0200 && address < 0x0400 {
		return address ^ 0x0100
	}
	return address
}

// VRAM returns a copy of the mapper's VRAM, for a host layer pulling a
// framebuffer snapshot at vertical blank; it never lets the caller see or
// mutate the mapper's own backing slice.
func (m *Mapper) VRAM() []uint8 {
	cp := make([]uint8, len(m.vram))
	copy(cp, m.vram)
	return cp
}

// ReadUpper and WriteUpper access 0x8000-0xFFFF, which maps to SRAM or to
// the VRAM window's upper half depending on 0x7FF5 bit 5.
func (m *Mapper) ReadUpper(address uint16) uint8 {
	offset := address - 0x8000
	if m.control[RegPageSelect]&BitVRAMAt8000 != 0 {
		return m.ReadVRAM(offset)
	}
	return m.sram[offset]
}

func (m *Mapper) WriteUpper(address uint16, value uint8) {
	offset := address - 0x8000
	if m.control[RegPageSelect]&BitVRAMAt8000 != 0 {
		m.WriteVRAM(offset, value)
		return
	}
	m.sram[offset] = value
}

// Fetch implements cpu8051.CodeMemory: the mapper selects which 64 KiB
// half of the 128 KiB ROM is visible in the CPU's code-fetch space via
// 0x7FF5 bit 2.
func (m *Mapper) Fetch(address uint16) uint8 {
	bank := 0
	if m.control[RegPageSelect]&BitROMBank != 0 {
		bank = 1
	}
	return m.rom[bank*romBank+int(address)]
}

// TickScanline advances the scheduler by one scanline period. The core
// runtime calls it once per Machine.Tick; hardware/clocks converts those
// ticks to elapsed milliseconds for the selected frame rate.
func (m *Mapper) TickScanline() {
	m.sched.commitPending = false
	if entered := m.sched.tick(m.control[RegFrameControl]&BitFrameRate70Hz != 0); entered {
		m.mpInterrupt = true
	}
}

// MPInterrupt reports whether the VMP wants the CPU to hold, and clears
// the latch: the CPU is expected to observe it once per poll, matching the
// DUART's own status/ack-on-read style in this module.
func (m *Mapper) MPInterrupt() bool {
	v := m.mpInterrupt
	m.mpInterrupt = false
	return v
}

// State reports the scheduler's externally observable state.
func (m *Mapper) State() State {
	return m.sched.reportedState()
}

// CSYNCLow reports whether CSYNC is currently asserted (active-low) on
// port P3.4.
func (m *Mapper) CSYNCLow() bool {
	return m.sched.csyncLow
}

// CSYNCFallingEdge reports whether a CSYNC falling edge occurred on the
// active line most recently ticked, and clears the latch. The CPU's
// timer/counter input counts these edges; invariant 4 (spec.md §3) is
// that exactly one occurs per active scanline, so the count between two
// consecutive vertical-blank entries equals the active line count.
func (m *Mapper) CSYNCFallingEdge() bool {
	return m.sched.takeFallingEdge()
}

func controlOffset(address uint16) uint16 {
	return address - 0x7FF0
}
