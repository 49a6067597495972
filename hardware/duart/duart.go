// Package duart implements the 2681 dual UART: its two serial channels,
// the input/output port latches that also carry the bit-banged EEPROM
// wiring, and the interrupt logic that feeds the CPU's P3.3 line.
package duart

import "github.com/mmastrac/blaze/logger"

// EEPROMDevice is the bit-serial NVRAM the DUART's output port bits drive
// and whose state it reads back through the input port. Implemented by
// hardware/eeprom.EEPROM.
type EEPROMDevice interface {
	// Clock presents one edge of the CS/CLK/DO lines to the EEPROM and
	// returns its current Ready and DataOut bits.
	Clock(cs, clk, do bool) (ready, dataOut bool)
}

// DUART is the 2681 dual UART.
type DUART struct {
	a, b channel

	outputPort     uint8
	outputPortConf uint8
	auxControl     uint8
	intMask    uint8
	intStatus  uint8

	counterUpper, counterLower uint8
	scratch                    uint8

	dcd, printerDSR, dsr, cts bool // external modem-control inputs, active-low at the pins

	eeprom            EEPROMDevice
	eepromReady       bool
	eepromData        bool
}

// NewDUART constructs a DUART with both channels idle and the EEPROM
// signal lines at their reset level (CS/CLK/DO all low).
func NewDUART() *DUART {
	d := &DUART{}
	d.Reset()
	return d
}

// Reset reinitialises both channels and clears pending interrupts.
func (d *DUART) Reset() {
	d.a.reset()
	d.b.reset()
	d.outputPort = 0
	d.intStatus = 0
}

// SetTransport attaches channel 0 (A, the printer path) or channel 1 (B,
// the host path) to a byte pipe.
func (d *DUART) SetTransport(ch int, t Transport) {
	if ch == 0 {
		d.a.transport = t
	} else {
		d.b.transport = t
	}
}

// SetEEPROM attaches the EEPROM the output port's CS/CLK/DO bits drive.
func (d *DUART) SetEEPROM(e EEPROMDevice) {
	d.eeprom = e
}

// ReadRegister implements bus.DUART.
func (d *DUART) ReadRegister(address uint16) uint8 {
	reg := ReadRegister(address - 0x7FE0)
	switch reg {
	case ModeRegisterA:
		return d.a.readMode()
	case StatusRegisterA:
		return d.a.status()
	case BRGExtend:
		return 0
	case RxHoldingRegisterA:
		return d.a.popRx()
	case InputPortChangeRegister:
		return 0
	case InterruptStatusRegister:
		return d.intStatus
	case CounterTimerUpperValue:
		return d.counterUpper
	case CounterTimerLowerValue:
		return d.counterLower
	case ModeRegisterB:
		return d.b.readMode()
	case StatusRegisterB:
		return d.b.status()
	case Test1x16x:
		return 0
	case RxHoldingRegisterB:
		return d.b.popRx()
	case ReadScratchPad:
		return d.scratch
	case InputPorts:
		return d.inputPort()
	case StartCounterCommand, StopCounterCommand:
		return 0
	}
	return 0xFF
}

// WriteRegister implements bus.DUART.
func (d *DUART) WriteRegister(address uint16, value uint8) {
	reg := WriteRegister(address - 0x7FE0)
	switch reg {
	case WriteModeRegisterA:
		d.a.writeMode(value)
	case ClockSelectRegisterA:
		// baud-rate selector; not modelled beyond storing it, since the
		// core only needs byte-at-a-time timing, not bit-accurate baud.
	case CommandRegisterA:
		d.command(&d.a, value)
	case TxHoldingRegisterA:
		d.a.writeTxHolding(value)
	case AuxControlRegister:
		d.auxControl = value
	case InterruptMaskRegister:
		d.intMask = value
	case CounterTimerUpperPreset:
		d.counterUpper = value
	case CounterTimerLowerPreset:
		d.counterLower = value
	case WriteModeRegisterB:
		d.b.writeMode(value)
	case ClockSelectRegisterB:
	case CommandRegisterB:
		d.command(&d.b, value)
	case TxHoldingRegisterB:
		d.b.writeTxHolding(value)
	case WriteScratchPad:
		d.scratch = value
	case OutputPortConfRegister:
		d.outputPortConf = value
	case SetOutputPortBitsCommand:
		d.setOutputPort(value, true)
	case ResetOutputPortBitsCommand:
		d.setOutputPort(value, false)
	default:
		logger.Logf(logger.Allow, "duart", "unknown register write: addr=%#04x value=%#02x", address, value)
	}
}

func (d *DUART) command(c *channel, value uint8) {
	switch value & 0b111 {
	case CmdResetMRPointer:
		c.resetMRPointer()
	case CmdResetRX:
		c.rxCount = 0
		c.overrun = false
	case CmdResetTX:
		c.txFull = false
	}
}

func (d *DUART) setOutputPort(bits uint8, set bool) {
	if set {
		d.outputPort |= bits
	} else {
		d.outputPort &^= bits
	}
	if bits&(OutputEEPROMCS|OutputEEPROMCLK|OutputEEPROMDO) != 0 {
		d.clockEEPROM()
	}
}

func (d *DUART) clockEEPROM() {
	if d.eeprom == nil {
		return
	}
	cs := d.outputPort&OutputEEPROMCS != 0
	clk := d.outputPort&OutputEEPROMCLK != 0
	do := d.outputPort&OutputEEPROMDO != 0
	d.eepromReady, d.eepromData = d.eeprom.Clock(cs, clk, do)
}

// inputPort composes the read-only input port byte. DCD, printer DSR, DSR
// and CTS are active-low at the pins; EEPROM-ready and EEPROM-data-in are
// active-high, per spec.md §4.3.
func (d *DUART) inputPort() uint8 {
	var v uint8
	if !d.dcd {
		v |= InputDCD
	}
	if !d.printerDSR {
		v |= InputPrinterDSR
	}
	if d.eepromReady {
		v |= InputEEPROMReady
	}
	if d.eepromData {
		v |= InputEEPROMData
	}
	if !d.dsr {
		v |= InputDSR
	}
	if !d.cts {
		v |= InputCTS
	}
	return v
}

// SetModemControl lets the host layer drive the DCD/DSR/CTS inputs from
// whatever real or simulated modem it has attached.
func (d *DUART) SetModemControl(dcd, printerDSR, dsr, cts bool) {
	d.dcd, d.printerDSR, d.dsr, d.cts = dcd, printerDSR, dsr, cts
}

// Tick drains/fills both channels' byte buffers against their transports.
func (d *DUART) Tick() {
	d.a.tick()
	d.b.tick()
	d.updateInterruptStatus()
}

func (d *DUART) updateInterruptStatus() {
	var pending uint8
	if d.a.rxCount > 0 {
		pending |= IntRxReadyA
	}
	if !d.a.txFull {
		pending |= IntTxReadyA
	}
	if d.b.rxCount > 0 {
		pending |= IntRxReadyB
	}
	if !d.b.txFull {
		pending |= IntTxReadyB
	}
	d.intStatus = pending
}

// Interrupt reports whether any unmasked event is pending, the level
// driven onto P3.3.
func (d *DUART) Interrupt() bool {
	return d.intStatus&d.intMask != 0
}
