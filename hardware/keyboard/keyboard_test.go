package keyboard

import "testing"

const testTicksPerBit = 4

// drainBytes ticks the keyboard with an idle host-TX line and decodes
// whatever it transmits back, stopping once n bytes have been collected
// or the tick budget runs out.
func drainBytes(k *Keyboard, n int) []uint8 {
	rx := newUARTRX(testTicksPerBit)
	var got []uint8
	for i := 0; i < n*12*testTicksPerBit && len(got) < n; i++ {
		pin := k.Tick(true)
		rx.tick(pin)
		if b, ok := rx.pop(); ok {
			got = append(got, b)
		}
	}
	return got
}

// sendCommand frames b onto the keyboard's RX line one bit at a time,
// ticking for exactly one 10-bit frame (start, 8 data, stop) so that any
// reply the keyboard starts is still there for drainBytes to decode.
func sendCommand(k *Keyboard, b uint8) {
	tx := newUARTTX(testTicksPerBit)
	tx.push(b)
	for i := 0; i < 10*testTicksPerBit; i++ {
		tx.tick()
		k.Tick(tx.Pin())
	}
}

func TestKeyPressProducesByteOverLink(t *testing.T) {
	k := New(testTicksPerBit)
	k.Push(KeyDown(KeyA))

	got := drainBytes(k, 1)
	if len(got) != 1 || got[0] != Keymap[KeyA] {
		t.Fatalf("got %#v, want [%#02x]", got, Keymap[KeyA])
	}
}

func TestModifierKeySendsCodeOnPressAndRelease(t *testing.T) {
	k := New(testTicksPerBit)
	k.Push(KeyDown(KeyShift))
	k.Push(KeyUp(KeyShift))

	got := drainBytes(k, 2)
	want := []uint8{Keymap[KeyShift], Keymap[KeyShift]}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestNonModifierKeyReleaseSendsAllUp(t *testing.T) {
	k := New(testTicksPerBit)
	k.Push(KeyDown(KeyA))
	k.Push(KeyUp(KeyA))

	got := drainBytes(k, 2)
	want := []uint8{Keymap[KeyA], allUpCode}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestPowerUpCommandRoundTrip(t *testing.T) {
	k := New(testTicksPerBit)
	sendCommand(k, 0xfd) // PowerUp

	got := drainBytes(k, 3)
	want := []uint8{0x01, 0x00, 0x00}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestInhibitSuppressesKeyPresses(t *testing.T) {
	k := New(testTicksPerBit)
	sendCommand(k, 0x89) // Inhibit
	k.Push(KeyDown(KeyA))

	got := drainBytes(k, 1)
	if len(got) != 0 {
		t.Fatalf("expected no output while inhibited, got %#v", got)
	}

	sendCommand(k, 0x8b) // Resume
	k.Push(KeyDown(KeyA))
	got = drainBytes(k, 1)
	if len(got) != 1 || got[0] != Keymap[KeyA] {
		t.Fatalf("got %#v, want [%#02x] after resume", got, Keymap[KeyA])
	}
}
