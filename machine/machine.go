// Package machine composes the Bus, Mapper, DUART, EEPROM, keyboard link
// and SSU protocol engine into the single runtime described in spec.md §9's
// design note: one Machine value owning every device by inclusion, ticked
// in the fixed CPU → VMP → DUART → EEPROM → I/O-drain order spec.md §5
// requires.
package machine

import (
	"github.com/mmastrac/blaze/cpu8051"
	"github.com/mmastrac/blaze/errors"
	"github.com/mmastrac/blaze/hardware/clocks"
	"github.com/mmastrac/blaze/hardware/duart"
	"github.com/mmastrac/blaze/hardware/eeprom"
	"github.com/mmastrac/blaze/hardware/keyboard"
	"github.com/mmastrac/blaze/hardware/mapper"
	"github.com/mmastrac/blaze/hardware/memory/bus"
	"github.com/mmastrac/blaze/ssu"
)

// Port 3 bit assignments, per cpu8051.Core's documented wiring: keyboard
// RX/TX on P3.0/P3.1, MP interrupt on P3.2, DUART interrupt on P3.3,
// CSYNC on P3.4.
const (
	bitKeyboardRX     = 1 << 0
	bitKeyboardTX     = 1 << 1
	bitMPInterrupt    = 1 << 2
	bitDUARTInterrupt = 1 << 3
	bitCSYNC          = 1 << 4
)

// Machine owns every device. It holds no references back from a device to
// another device or to Machine itself — the tick loop is the only thing
// that ever reaches across devices.
type Machine struct {
	Core     cpu8051.Core
	Bus      *bus.Bus
	Mapper   *mapper.Mapper
	DUART    *duart.DUART
	EEPROM   *eeprom.EEPROM
	Keyboard *keyboard.Keyboard
	SSU      *ssu.Engine

	cfg   Config
	accum *clocks.Accumulator
}

// New constructs a Machine from cfg, validating the ROM image's size.
func New(cfg Config) (*Machine, error) {
	if len(cfg.ROM) > romImageSize {
		return nil, errors.New(errors.RomTooLarge, len(cfg.ROM), romImageSize)
	}
	if len(cfg.ROM) < romImageSize {
		return nil, errors.New(errors.RomTooSmall, len(cfg.ROM), romImageSize)
	}

	m := &Machine{cfg: cfg}
	m.build()
	m.Core = cfg.Core
	m.Core.SetExternalMemory(m.Bus)
	m.Core.SetCodeMemory(m.Mapper)
	return m, nil
}

// build (re)constructs every device except the CPU collaborator and the
// EEPROM, which survive a Reset the way real NVRAM and an installed
// interpreter would.
func (m *Machine) build() {
	m.Mapper = mapper.NewMapper(m.cfg.ROM, m.cfg.vramBytes())
	m.DUART = duart.NewDUART()
	if m.EEPROM == nil {
		m.EEPROM = eeprom.New(m.cfg.eepromOrg())
	}
	m.DUART.SetEEPROM(m.EEPROM)
	m.SSU = ssu.NewEngine()
	m.DUART.SetTransport(1, &ssuTransport{engine: m.SSU})
	m.Bus = bus.NewBus(m.Mapper, m.DUART)
	m.Keyboard = keyboard.New(m.cfg.keyboardTicksPerBit())
	m.accum = clocks.NewAccumulator(m.cfg.FrameRate)
}

// Reset emulates the reset switch: the CPU resets, and every device except
// the EEPROM (non-volatile) and the installed interpreter is destroyed and
// recreated, matching the teacher's VCS.Reset pattern for its own
// volatile devices. Any comm transport a host attached via DUART.SetTransport
// must be reattached after Reset, since the DUART instance it was attached
// to no longer exists.
func (m *Machine) Reset() {
	m.build()
	m.Core.Reset()
	m.Core.SetExternalMemory(m.Bus)
	m.Core.SetCodeMemory(m.Mapper)
}

// Tick advances every device by one clock quantum and returns the whole
// milliseconds of simulated time the quantum represents, per the
// accumulator's rational conversion. The default quantum is one CPU cycle;
// a host wanting a coarser quantum calls Tick in a loop rather than this
// package doing so internally, keeping the single-tick ordering guarantee
// spec.md §5 states exactly matched to one call here.
func (m *Machine) Tick() int {
	m.Core.Step()
	m.Mapper.TickScanline()
	m.DUART.Tick()
	// EEPROM's own state machine only advances on CS/CLK/DO edges, which
	// arrive synchronously through DUART.WriteRegister during Core.Step;
	// there is nothing left for a separate per-tick EEPROM step to do.
	cpuTXPin := m.Core.Port(3)&bitKeyboardTX != 0
	keyboardRXPin := m.Keyboard.Tick(cpuTXPin)
	m.arbitrateInterrupts(keyboardRXPin)
	m.syncFrameRate()
	return m.accum.Tick()
}

// syncFrameRate keeps the millisecond accumulator's rate in lockstep with
// mapper register 0x7FF4 bit 4, the only place the frame rate is actually
// selected; software can flip it at any time, so this is read fresh every
// tick rather than cached at construction.
func (m *Machine) syncFrameRate() {
	rate := clocks.Rate60Hz
	if m.Mapper.PeekControl(0x7FF0+mapper.RegFrameControl)&mapper.BitFrameRate70Hz != 0 {
		rate = clocks.Rate70Hz
	}
	m.accum.SetRate(rate)
}

// TickN calls Tick n times and returns the total elapsed simulated
// milliseconds, for a host or test measuring a run of frames.
func (m *Machine) TickN(n int) int {
	elapsed := 0
	for i := 0; i < n; i++ {
		elapsed += m.Tick()
	}
	return elapsed
}

// arbitrateInterrupts samples the level-triggered interrupt and direct
// port-bit inputs and writes them onto P3 in one pass, per spec.md §4.7.
func (m *Machine) arbitrateInterrupts(keyboardRXPin bool) {
	const mask = bitKeyboardRX | bitMPInterrupt | bitDUARTInterrupt | bitCSYNC
	var v uint8

	if m.Mapper.MPInterrupt() {
		v |= bitMPInterrupt
	}
	if m.DUART.Interrupt() {
		v |= bitDUARTInterrupt
	}
	if !m.Mapper.CSYNCLow() {
		v |= bitCSYNC
	}
	if keyboardRXPin {
		v |= bitKeyboardRX
	}

	m.Core.SetPort(3, mask, v)
}

// PushKey delivers a key event to the keyboard link, the keyboard.push
// host port spec.md §6 names.
func (m *Machine) PushKey(e keyboard.Event) {
	m.Keyboard.Push(e)
}

// Framebuffer returns a snapshot of VRAM, the display.frame host port
// spec.md §6 names. A host pulls this once per simulated vertical blank,
// which it observes through Mapper.State returning mapper.Vblank.
func (m *Machine) Framebuffer() []uint8 {
	return m.Mapper.VRAM()
}

// LoadNVRAM and StoreNVRAM implement the nvram.load/nvram.store host ports.
func (m *Machine) LoadNVRAM(data []uint16) error {
	return m.EEPROM.Load(data)
}

func (m *Machine) StoreNVRAM() []uint16 {
	return m.EEPROM.Store()
}

// ssuTransport bridges a DUART channel to an in-process protocol engine:
// bytes the DUART drains from its TX holding register are fed into the
// engine as incoming wire bytes, and bytes the engine has queued to send
// are what the DUART's RX side reads back. This is the fourth kind of
// duart.Transport alongside loopback, subprocess and real-serial, needed
// because the SSU peer in this module lives in the same process rather
// than at the far end of an actual wire.
type ssuTransport struct {
	engine *ssu.Engine
	outbox []uint8
}

func (t *ssuTransport) WriteByte(b uint8) {
	t.engine.Feed(b)
}

func (t *ssuTransport) ReadByte() (uint8, bool) {
	if len(t.outbox) == 0 {
		t.outbox = t.engine.Drain()
		if len(t.outbox) == 0 {
			return 0, false
		}
	}
	b := t.outbox[0]
	t.outbox = t.outbox[1:]
	return b, true
}
