package machine

import (
	"github.com/mmastrac/blaze/cpu8051"
	"github.com/mmastrac/blaze/hardware/clocks"
	"github.com/mmastrac/blaze/hardware/eeprom"
)

// romImageSize is the fixed 128 KiB (two 64 KiB banks) ROM image size §6
// of the host-facing ports documents as rom_image: bytes[131072].
const romImageSize = 128 * 1024

// defaultVRAMBytes is the full 128 KiB VRAM configuration; a reduced 64 KiB
// configuration is also valid per spec.md §3.
const defaultVRAMBytes = 128 * 1024

// defaultKeyboardTicksPerBit is the number of Tick calls the keyboard link
// takes to shift one bit at the LK201's fixed 4800 baud, given the same
// quantum-per-CPU-cycle convention the rest of this package's timing uses.
// A host driving a real clock rate derives its own value and overrides it
// in Config; this default is sized for the package's own tests.
const defaultKeyboardTicksPerBit = 4

// Config carries everything New needs at construction time. Unlike the
// teacher's live, disk-backed preferences system, Blaze's core has no
// dynamic reconfiguration after construction — the fields are read by New,
// and again by Reset when it rebuilds the volatile devices, and are never
// changed.
type Config struct {
	// ROM is the 128 KiB code/data image; required, validated against
	// RomTooLarge/RomTooSmall.
	ROM []uint8

	// VRAMBytes selects the full 128 KiB or a reduced 64 KiB VRAM
	// configuration. Zero selects the full-size default.
	VRAMBytes int

	// FrameRate seeds the millisecond accumulator before the first Tick.
	// Mapper register 0x7FF4 bit 4 is the actual source of truth once
	// ticking starts — Tick resyncs the accumulator to it every call —
	// so this only matters for a timing query made before any Tick.
	FrameRate clocks.FrameRate

	// EEPROMOrg selects the serial NVRAM's word organisation. The zero
	// value selects eeprom.Org64x16, the default spec.md §4.4 names.
	EEPROMOrg eeprom.Organization

	// KeyboardTicksPerBit sets the keyboard link's bit-serial rate in
	// units of Tick calls. Zero selects defaultKeyboardTicksPerBit.
	KeyboardTicksPerBit int

	// Core is the 8051 interpreter collaborator this Machine drives.
	// Required; the core never constructs one itself (§1: the
	// interpreter is out of scope).
	Core cpu8051.Core
}

func (c Config) vramBytes() int {
	if c.VRAMBytes == 0 {
		return defaultVRAMBytes
	}
	return c.VRAMBytes
}

func (c Config) eepromOrg() eeprom.Organization {
	var zero eeprom.Organization
	if c.EEPROMOrg == zero {
		return eeprom.Org64x16
	}
	return c.EEPROMOrg
}

func (c Config) keyboardTicksPerBit() int {
	if c.KeyboardTicksPerBit == 0 {
		return defaultKeyboardTicksPerBit
	}
	return c.KeyboardTicksPerBit
}
