package keyboard

// Keyboard is the LK201/LK401 byte-protocol state machine and its
// bit-serial link: Tick's cpuTXPin argument samples the CPU's P3.1
// output, and its return value is what P3.0 (the CPU's RX) should read.
type Keyboard struct {
	tx *uartTX
	rx *uartRX

	leds      uint8
	inhibited bool
}

// New constructs a Keyboard whose link runs at one bit per ticksPerBit
// calls to Tick — the host layer derives ticksPerBit from the simulated
// clock rate and the LK201's fixed 4800 baud.
func New(ticksPerBit int) *Keyboard {
	return &Keyboard{
		tx: newUARTTX(ticksPerBit),
		rx: newUARTRX(ticksPerBit),
	}
}

// Push translates a high-level key event into the byte(s) the LK201
// would transmit. Modifier keys (Shift, Ctrl, Lock, Meta) transmit their
// code on both press and release; every other mapped key transmits its
// code on press and the all-up code on release.
func (k *Keyboard) Push(e Event) {
	if k.inhibited {
		return
	}
	code, ok := Keymap[e.Key]
	if !ok {
		return
	}
	if modifierKeys[e.Key] {
		k.tx.push(code)
		return
	}
	if e.Down {
		k.tx.push(code)
	} else {
		k.tx.push(allUpCode)
	}
}

// Tick advances the bit-serial link by one clock quantum.
func (k *Keyboard) Tick(cpuTXPin bool) (cpuRXPin bool) {
	k.tx.tick()
	k.rx.tick(cpuTXPin)
	if b, ok := k.rx.pop(); ok {
		k.handleCommand(b)
	}
	return k.tx.Pin()
}

// handleCommand applies the subset of host-to-keyboard commands this
// module models: power-up self-test, LED state, and inhibit/resume.
// Commands outside this subset are accepted on the wire and ignored, the
// same fallback the original LK201Command decoder uses for bytes it
// doesn't recognise.
func (k *Keyboard) handleCommand(b uint8) {
	switch b {
	case 0xfd: // PowerUp
		k.tx.push(0x01) // firmware ID
		k.tx.push(0x00) // hardware ID
		k.tx.push(0x00) // no error
	case 0x89: // Inhibit
		k.inhibited = true
		k.leds |= 0x04
	case 0x8b: // Resume
		k.inhibited = false
		k.leds &^= 0x04
	case 0xab: // RequestId
		k.tx.push(0x01)
		k.tx.push(0x00)
	default:
		if b&0x80 != 0 {
			k.leds = b
		}
	}
}

// LEDs reports the last LED-control parameter byte the keyboard
// received, for a debugger or display layer to render.
func (k *Keyboard) LEDs() uint8 { return k.leds }
