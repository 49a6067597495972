package mapper_test

import (
	"testing"

	"github.com/mmastrac/blaze/hardware/mapper"
)

func newTestMapper() *mapper.Mapper {
	rom := make([]uint8, 128*1024)
	return mapper.NewMapper(rom, 128*1024)
}

func TestPowerOnDefaults(t *testing.T) {
	m := newTestMapper()
	if got := m.ReadControl(0x7FF5); got != mapper.PowerOnPageSelect {
		t.Errorf("0x7FF5 = %#02x, want %#02x", got, mapper.PowerOnPageSelect)
	}
	if got := m.ReadControl(0x7FF3); got != mapper.PowerOnSession1 {
		t.Errorf("0x7FF3 = %#02x, want %#02x", got, mapper.PowerOnSession1)
	}
}

func TestShadowCommit(t *testing.T) {
	m := newTestMapper()

	m.WriteShadow(0x7EE4, 0x78)
	if got := m.PeekControl(0x7FF6); got == 0x78 {
		t.Fatalf("commit must not fire after only the low half is written")
	}

	m.WriteShadow(0x7EE5, 0x9A)
	if got := m.PeekControl(0x7FF6); got != 0x9A {
		t.Fatalf("0x7FF6 should hold 0x9A (the second committed byte), got %#02x", got)
	}
	if m.State() != mapper.ShadowCommit {
		t.Fatalf("State() should report ShadowCommit for the tick the commit happened in")
	}
}

func TestShadowCommitRequiresBothHalves(t *testing.T) {
	m := newTestMapper()
	m.WriteShadow(0x7EE4, 0x11)
	// no write to 0x7EE5 yet: nothing should have committed.
	if m.State() == mapper.ShadowCommit {
		t.Fatalf("commit must not fire after only the low half is written")
	}

	// complete the pair, then let the scheduler clear the commit report.
	m.WriteShadow(0x7EE5, 0x22)
	m.TickScanline()

	// a later independent write to 0x7EE5 alone (without a fresh low half)
	// must not commit either.
	m.WriteShadow(0x7EE5, 0x33)
	if m.State() == mapper.ShadowCommit {
		t.Fatalf("commit must not fire unless low half was written this round")
	}
	if got := m.PeekControl(0x7FF6); got != 0x22 {
		t.Fatalf("0x7FF6 should still hold 0x22 from the completed pair, got %#02x", got)
	}
}

func TestVRAMSwizzle(t *testing.T) {
	m := newTestMapper()
	m.WriteControl(0x7FF3, mapper.BitSwizzle)

	m.WriteVRAM(0x0250, 0xAB)
	if got := m.ReadVRAM(0x0250); got != 0xAB {
		t.Fatalf("swizzled read/write round-trip failed: got %#02x", got)
	}
	// the byte should actually be stored at the swizzled address.
	m.WriteControl(0x7FF3, 0) // disable swizzle
	if got := m.ReadVRAM(0x0350); got != 0xAB {
		t.Fatalf("expected swizzled address 0x0350 to hold the byte, got %#02x", got)
	}
}

func TestUpperPageSelect(t *testing.T) {
	m := newTestMapper()

	m.WriteControl(0x7FF5, mapper.PowerOnPageSelect&^uint8(mapper.BitVRAMAt8000))
	m.WriteUpper(0x8000, 0x11)
	if got := m.ReadUpper(0x8000); got != 0x11 {
		t.Fatalf("SRAM round-trip failed: got %#02x", got)
	}

	m.WriteControl(0x7FF5, mapper.PowerOnPageSelect|mapper.BitVRAMAt8000)
	m.WriteUpper(0x8000, 0x22)
	if got := m.ReadUpper(0x8000); got != 0x22 {
		t.Fatalf("VRAM-at-8000 round-trip failed: got %#02x", got)
	}
	// SRAM value from before must be untouched by the VRAM-mapped write.
	m.WriteControl(0x7FF5, mapper.PowerOnPageSelect&^uint8(mapper.BitVRAMAt8000))
	if got := m.ReadUpper(0x8000); got != 0x11 {
		t.Fatalf("expected SRAM to retain its earlier value, got %#02x", got)
	}
}

func TestROMBanking(t *testing.T) {
	rom := make([]uint8, 128*1024)
	rom[0x0000] = 0x08
	rom[0x10000] = 0x18
	m := mapper.NewMapper(rom, 128*1024)

	m.WriteControl(0x7FF5, mapper.PowerOnPageSelect&^uint8(mapper.BitROMBank))
	if got := m.Fetch(0x0000); got != 0x08 {
		t.Errorf("bank 0 fetch = %#02x, want 0x08", got)
	}

	m.WriteControl(0x7FF5, mapper.PowerOnPageSelect|mapper.BitROMBank)
	if got := m.Fetch(0x0000); got != 0x18 {
		t.Errorf("bank 1 fetch = %#02x, want 0x18", got)
	}
}

func TestFrameRateTickCount(t *testing.T) {
	m := newTestMapper()

	// drain the power-on vblank to reach the start of an active run.
	for m.State() == mapper.Vblank {
		m.TickScanline()
	}
	if ticks := countTicksToNextVblankEntry(m); ticks != 417 {
		t.Errorf("60 Hz active run = %d ticks, want 417", ticks)
	}

	for m.State() == mapper.Vblank {
		m.TickScanline()
	}
	m.WriteControl(0x7FF4, mapper.PowerOnFrameControl|mapper.BitFrameRate70Hz)
	if ticks := countTicksToNextVblankEntry(m); ticks != 417 {
		t.Errorf("70 Hz active run = %d ticks, want 417", ticks)
	}
}

// countTicksToNextVblankEntry ticks until the scheduler transitions from
// ActiveLine back into Vblank, returning how many ticks that took.
func countTicksToNextVblankEntry(m *mapper.Mapper) int {
	n := 0
	for {
		m.TickScanline()
		n++
		if m.State() == mapper.Vblank {
			return n
		}
	}
}

// TestCSYNCFallingEdgeCount covers invariant 4 (spec.md §3): the edge
// count between two consecutive vertical-blank entries equals the active
// line count, 417 for either frame rate.
func TestCSYNCFallingEdgeCount(t *testing.T) {
	m := newTestMapper()

	for m.State() == mapper.Vblank {
		m.TickScanline()
		m.CSYNCFallingEdge()
	}

	edges := 0
	for m.State() != mapper.Vblank {
		m.TickScanline()
		if m.CSYNCFallingEdge() {
			edges++
		}
	}
	if edges != 417 {
		t.Errorf("got %d CSYNC falling edges over one active run, want 417", edges)
	}

	m.TickScanline()
	if m.CSYNCFallingEdge() {
		t.Errorf("expected no falling edge while in vertical blank")
	}
}
