package eeprom_test

import (
	"testing"

	"github.com/mmastrac/blaze/hardware/eeprom"
)

// clockBit presents one CS/CLK/DO sample with CLK low, then the same
// sample with CLK high, mimicking how the DUART's bit-banger actually
// toggles the output port one bit at a time.
func clockBit(e *eeprom.EEPROM, cs, di bool) {
	e.Clock(cs, false, di)
	e.Clock(cs, true, di)
}

// shiftCommand presents a start bit, then nbits of value MSB-first.
func shiftCommand(e *eeprom.EEPROM, value uint32, nbits int) {
	clockBit(e, true, true) // start bit
	for i := nbits - 1; i >= 0; i-- {
		bit := (value>>i)&1 != 0
		clockBit(e, true, bit)
	}
}

func runBusy(e *eeprom.EEPROM) {
	for i := 0; i < 8; i++ {
		e.Clock(true, false, false)
		e.Clock(true, true, false)
	}
}

func ewen(e *eeprom.EEPROM) {
	e.Clock(false, false, false)
	e.Clock(true, false, false) // CS rising
	// opcode 00, address top bits 11 -> EWEN
	shiftCommand(e, 0b00_110000, 8)
}

func write(e *eeprom.EEPROM, addr int, word uint16) {
	e.Clock(false, false, false)
	e.Clock(true, false, false)
	shiftCommand(e, uint32(0b01<<6|addr), 8)
	for i := 15; i >= 0; i-- {
		bit := (word>>i)&1 != 0
		clockBit(e, true, bit)
	}
	runBusy(e)
}

func read(e *eeprom.EEPROM, addr int) uint16 {
	e.Clock(false, false, false)
	e.Clock(true, false, false)
	shiftCommand(e, uint32(0b10<<6|addr), 8)

	var word uint16
	// leading ready-bit
	e.Clock(true, false, false)
	e.Clock(true, true, false)
	for i := 0; i < 16; i++ {
		_, dout := e.Clock(true, false, false)
		_, dout = e.Clock(true, true, false)
		word = word<<1 | b2u16(dout)
	}
	return word
}

func b2u16(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

func TestEEPROMRoundTripRequiresEWEN(t *testing.T) {
	e := eeprom.New(eeprom.Org64x16)

	write(e, 0x10, 0xBEEF)
	if got := read(e, 0x10); got == 0xBEEF {
		t.Fatalf("write without a preceding EWEN must be ignored")
	}

	ewen(e)
	write(e, 0x10, 0xBEEF)
	if got := read(e, 0x10); got != 0xBEEF {
		t.Fatalf("got %#04x, want 0xBEEF", got)
	}
}

func TestCSFallingAbortsInFlightOperation(t *testing.T) {
	e := eeprom.New(eeprom.Org64x16)
	ewen(e)

	e.Clock(false, false, false)
	e.Clock(true, false, false) // CS rising, start command
	clockBit(e, true, true)     // start bit only, then abort
	e.Clock(false, false, false)

	// the EEPROM should be idle/ready again, not stuck mid-command.
	ready, _ := e.Clock(false, false, false)
	if !ready {
		t.Fatalf("expected EEPROM to be ready after CS abort")
	}
}

func TestLoadSizeMismatchFallsBackToErased(t *testing.T) {
	e := eeprom.New(eeprom.Org64x16)
	err := e.Load(make([]uint16, 10))
	if err == nil {
		t.Fatalf("expected a size-mismatch error")
	}
	if got := e.Peek(0); got != 0xFFFF {
		t.Fatalf("expected fallback-to-erased contents, got %#04x", got)
	}
}

func TestStoreLoadPersistence(t *testing.T) {
	e := eeprom.New(eeprom.Org64x16)
	e.Poke(5, 0x1234)

	saved := e.Store()

	e2 := eeprom.New(eeprom.Org64x16)
	if err := e2.Load(saved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := e2.Peek(5); got != 0x1234 {
		t.Fatalf("got %#04x, want 0x1234", got)
	}
}
