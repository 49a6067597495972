// Package eeprom implements the 5911-style serial EEPROM: a bit-serial
// state machine clocked through the DUART's CS/CLK/DO output bits and
// read back on the DUART's DI input bit.
package eeprom

import "github.com/mmastrac/blaze/errors"

// Organization selects between the EEPROM's two documented configurations.
type Organization struct {
	Words    int
	WordBits int
	AddrBits int
}

// Org64x16 and Org128x8 are the two organizations spec.md §4.4 names. 64x16
// is the default: it's the organization the EEPROM round-trip testable
// property (a 6-bit address, a 16-bit word) is written against.
var (
	Org64x16 = Organization{Words: 64, WordBits: 16, AddrBits: 6}
	Org128x8 = Organization{Words: 128, WordBits: 8, AddrBits: 7}
)

type state int

const (
	stateIdle state = iota
	stateShiftCmd
	stateReadOut
	stateWriteData
	stateBusy
)

const busyTicks = 4

// opcode identifies the decoded two-bit instruction (plus the 00-prefixed
// sub-forms EWEN/EWDS/ERAL/WRAL carry in their top two address bits).
type opcode int

const (
	opRead opcode = iota
	opWrite
	opErase
	opEWEN
	opEWDS
	opERAL
	opWRAL
)

// EEPROM is the 5911 serial NVRAM state machine.
type EEPROM struct {
	org Organization
	mem []uint16

	cs, clk, do trace

	state       state
	shiftBits   int
	shiftValue  uint32
	op          opcode
	addr        int
	dataBits    int
	dataValue   uint32
	busyCount   int
	doLine      bool
	writeEnable bool
}

// New constructs an EEPROM of the given organization, erased (all ones).
func New(org Organization) *EEPROM {
	e := &EEPROM{org: org, mem: make([]uint16, org.Words)}
	e.eraseAll()
	return e
}

func (e *EEPROM) eraseAll() {
	mask := uint16(1)<<e.org.WordBits - 1
	for i := range e.mem {
		e.mem[i] = mask
	}
}

// Load replaces the EEPROM's contents from a persisted image. If data
// doesn't match the device's capacity, the mismatch is reported and the
// EEPROM falls back to its erased contents, per spec.md §7.
func (e *EEPROM) Load(data []uint16) error {
	if len(data) != len(e.mem) {
		e.eraseAll()
		return errors.New(errors.NvramSizeMismatch, len(data), len(e.mem))
	}
	copy(e.mem, data)
	return nil
}

// Store returns a copy of the EEPROM's current contents, suitable for the
// host layer's nvram.store port.
func (e *EEPROM) Store() []uint16 {
	cp := make([]uint16, len(e.mem))
	copy(cp, e.mem)
	return cp
}

// Peek and Poke give a debugger direct access without going through the
// bit-serial protocol.
func (e *EEPROM) Peek(addr int) uint16 { return e.mem[addr] }
func (e *EEPROM) Poke(addr int, v uint16) {
	e.mem[addr] = v & (1<<e.org.WordBits - 1)
}

// Clock implements duart.EEPROMDevice: one call per DUART output-port
// change, presenting the current CS/CLK/DO lines and returning the
// EEPROM's Ready and DataOut bits.
func (e *EEPROM) Clock(cs, clk, do bool) (ready, dataOut bool) {
	e.cs.tick(cs)
	e.clk.tick(clk)
	e.do.tick(do)

	if e.cs.falling() || !e.cs.hi() {
		e.state = stateIdle
		e.doLine = false
		return e.readyBit(), e.doLine
	}

	if e.cs.rising() {
		e.state = stateShiftCmd
		e.shiftBits = 0
		e.shiftValue = 0
		e.doLine = false
	}

	if e.cs.hi() && e.clk.rising() {
		e.onClockRising()
	}
	if e.cs.hi() && e.clk.falling() {
		e.onClockFalling()
	}

	return e.readyBit(), e.doLine
}

func (e *EEPROM) readyBit() bool {
	return e.state != stateBusy
}

// onClockRising samples DI into whichever shift register the current
// state is filling.
func (e *EEPROM) onClockRising() {
	di := e.do.hi()
	switch e.state {
	case stateShiftCmd:
		e.shiftValue = (e.shiftValue << 1) | b2u32(di)
		e.shiftBits++
		// start bit + 2 opcode bits + address bits
		if e.shiftBits == 1+2+e.org.AddrBits {
			e.decodeCommand()
		}
	case stateWriteData:
		e.dataValue = (e.dataValue << 1) | b2u32(di)
		e.dataBits++
		if e.dataBits == e.org.WordBits {
			e.completeWrite()
		}
	}
}

// onClockFalling advances the read-side shift-out, which — per the 2681's
// bit-banger convention used throughout this module — changes DO on the
// falling edge so it's stable for the CPU to sample on the next rising
// edge.
func (e *EEPROM) onClockFalling() {
	switch e.state {
	case stateReadOut:
		if e.dataBits < 0 {
			// the leading ready-bit, always zero.
			e.doLine = false
			e.dataBits = 0
			return
		}
		bit := (e.mem[e.addr] >> (e.org.WordBits - 1 - e.dataBits)) & 1
		e.doLine = bit != 0
		e.dataBits++
		if e.dataBits >= e.org.WordBits {
			e.state = stateIdle
		}
	case stateBusy:
		e.busyCount--
		if e.busyCount <= 0 {
			e.state = stateIdle
			e.doLine = false
		}
	}
}

func b2u32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// decodeCommand interprets the accumulated start-bit + opcode + address
// shift register, per the scheme spec.md §4.4 documents: a leading 1
// start bit (discarded here — e.shiftValue still includes it, masked off
// below), two opcode bits, then the address field.
func (e *EEPROM) decodeCommand() {
	addrMask := uint32(1)<<e.org.AddrBits - 1
	addr := int(e.shiftValue & addrMask)
	opBits := (e.shiftValue >> e.org.AddrBits) & 0b11

	switch opBits {
	case 0b10:
		e.op = opRead
		e.addr = addr
		e.state = stateReadOut
		e.dataBits = -1 // leading ready-bit before the first data bit
	case 0b01:
		e.op = opWrite
		e.addr = addr
		e.state = stateWriteData
		e.dataBits = 0
		e.dataValue = 0
	case 0b11:
		e.op = opErase
		e.addr = addr
		e.startBusyOp(func() {
			if e.writeEnable {
				e.mem[e.addr] = uint16(1)<<e.org.WordBits - 1
			}
		})
	case 0b00:
		switch addr >> (e.org.AddrBits - 2) {
		case 0b11:
			e.op = opEWEN
			e.writeEnable = true
			e.state = stateIdle
		case 0b00:
			e.op = opEWDS
			e.writeEnable = false
			e.state = stateIdle
		case 0b01:
			e.op = opERAL
			e.startBusyOp(func() {
				if e.writeEnable {
					e.eraseAll()
				}
			})
		case 0b10:
			e.op = opWRAL
			e.addr = addr
			e.state = stateWriteData
			e.dataBits = 0
			e.dataValue = 0
		}
	}
}

func (e *EEPROM) completeWrite() {
	switch e.op {
	case opWRAL:
		e.startBusyOp(func() {
			if e.writeEnable {
				for i := range e.mem {
					e.mem[i] = uint16(e.dataValue)
				}
			}
		})
	default:
		addr := e.addr
		data := uint16(e.dataValue)
		e.startBusyOp(func() {
			if e.writeEnable {
				e.mem[addr] = data
			}
		})
	}
}

func (e *EEPROM) startBusyOp(apply func()) {
	apply()
	e.state = stateBusy
	e.busyCount = busyTicks
	e.doLine = true
}
