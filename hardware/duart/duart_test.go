package duart_test

import (
	"testing"

	"github.com/mmastrac/blaze/hardware/duart"
)

type loopback struct {
	in  []uint8
	out []uint8
}

func (l *loopback) ReadByte() (uint8, bool) {
	if len(l.in) == 0 {
		return 0, false
	}
	b := l.in[0]
	l.in = l.in[1:]
	return b, true
}

func (l *loopback) WriteByte(b uint8) {
	l.out = append(l.out, b)
}

func TestChannelBTransmit(t *testing.T) {
	d := duart.NewDUART()
	lb := &loopback{}
	d.SetTransport(1, lb)

	d.WriteRegister(0x7FE0+uint16(duart.TxHoldingRegisterB), 0x41)
	d.Tick()

	if len(lb.out) != 1 || lb.out[0] != 0x41 {
		t.Fatalf("expected transport to receive 0x41, got %v", lb.out)
	}
}

func TestChannelARxFIFOOverrun(t *testing.T) {
	d := duart.NewDUART()
	lb := &loopback{in: []uint8{1, 2, 3, 4}}
	d.SetTransport(0, lb)

	for i := 0; i < 4; i++ {
		d.Tick()
	}

	status := d.ReadRegister(0x7FE0 + uint16(duart.StatusRegisterA))
	if status&duart.StatusOverrun == 0 {
		t.Fatalf("expected overrun bit to be set after 4 bytes into a depth-3 FIFO")
	}
}

func TestRxReadyClearsAfterDrain(t *testing.T) {
	d := duart.NewDUART()
	lb := &loopback{in: []uint8{0xAB}}
	d.SetTransport(0, lb)
	d.Tick()

	if s := d.ReadRegister(0x7FE0 + uint16(duart.StatusRegisterA)); s&duart.StatusRxReady == 0 {
		t.Fatalf("expected RX-ready after a byte arrives")
	}
	if got := d.ReadRegister(0x7FE0 + uint16(duart.RxHoldingRegisterA)); got != 0xAB {
		t.Fatalf("got %#02x, want 0xAB", got)
	}
	if s := d.ReadRegister(0x7FE0 + uint16(duart.StatusRegisterA)); s&duart.StatusRxReady != 0 {
		t.Fatalf("expected RX-ready to clear once the FIFO is drained")
	}
}

type fakeEEPROM struct {
	lastCS, lastCLK, lastDO bool
	ready, dataOut          bool
}

func (e *fakeEEPROM) Clock(cs, clk, do bool) (bool, bool) {
	e.lastCS, e.lastCLK, e.lastDO = cs, clk, do
	return e.ready, e.dataOut
}

func TestEEPROMSignalWiring(t *testing.T) {
	d := duart.NewDUART()
	ee := &fakeEEPROM{ready: true, dataOut: true}
	d.SetEEPROM(ee)

	d.WriteRegister(0x7FE0+uint16(duart.SetOutputPortBitsCommand), duart.OutputEEPROMCS|duart.OutputEEPROMCLK)
	if !ee.lastCS || !ee.lastCLK {
		t.Fatalf("expected CS and CLK to reach the EEPROM")
	}

	in := d.ReadRegister(0x7FE0 + uint16(duart.InputPorts))
	if in&duart.InputEEPROMReady == 0 || in&duart.InputEEPROMData == 0 {
		t.Fatalf("expected EEPROM ready/data-in bits to be reflected in the input port, got %#02x", in)
	}
}

func TestInterruptMasking(t *testing.T) {
	d := duart.NewDUART()
	lb := &loopback{in: []uint8{0x01}}
	d.SetTransport(0, lb)
	d.Tick()

	if d.Interrupt() {
		t.Fatalf("expected no interrupt with an all-zero mask")
	}

	d.WriteRegister(0x7FE0+uint16(duart.InterruptMaskRegister), duart.IntRxReadyA)
	d.Tick()
	if !d.Interrupt() {
		t.Fatalf("expected interrupt once RX-ready-A is unmasked")
	}
}
