package duart

// Transport is the byte pipe a channel is connected to: a loopback buffer,
// a subprocess, or a real serial port, supplied by the host layer. Channel
// A is wired to the printer path; channel B is wired to whichever of the
// RS-232/RS-423 paths the CPU's mux selects (an external collaborator;
// the DUART itself only calls Transport, it never chooses between them).
type Transport interface {
	// ReadByte returns the next received byte, or ok=false if none is
	// available yet.
	ReadByte() (b uint8, ok bool)
	// WriteByte transmits a byte. It never blocks.
	WriteByte(b uint8)
}

// channel holds one of the 2681's two identical serial channels.
type channel struct {
	transport Transport

	mr        [2]uint8
	mrPointer int

	txHolding uint8
	txFull    bool

	rxFIFO  [rxFIFODepth]uint8
	rxCount int
	overrun bool

	intMask uint8 // this channel's RX/TX-ready bits within InterruptMaskRegister
}

func (c *channel) reset() {
	c.mrPointer = 0
	c.txFull = false
	c.rxCount = 0
	c.overrun = false
}

func (c *channel) writeMode(value uint8) {
	c.mr[c.mrPointer] = value
	if c.mrPointer == 0 {
		c.mrPointer = 1
	}
}

func (c *channel) readMode() uint8 {
	return c.mr[0]
}

func (c *channel) resetMRPointer() {
	c.mrPointer = 0
}

func (c *channel) status() uint8 {
	var s uint8
	if c.rxCount > 0 {
		s |= StatusRxReady
	}
	if !c.txFull {
		s |= StatusTxReady
	}
	if c.overrun {
		s |= StatusOverrun
	}
	return s
}

// writeTxHolding stages a byte for transmission. A write while the holding
// register is still full (the previous byte hasn't drained) discards the
// oldest unsent byte, per spec.md's TX-overrun failure model.
func (c *channel) writeTxHolding(value uint8) {
	c.txHolding = value
	c.txFull = true
}

// pushRx enqueues a received byte. An RX overrun sets the overrun-error
// bit and drops the newest byte, per spec.md.
func (c *channel) pushRx(value uint8) {
	if c.rxCount >= len(c.rxFIFO) {
		c.overrun = true
		return
	}
	c.rxFIFO[c.rxCount] = value
	c.rxCount++
}

func (c *channel) popRx() uint8 {
	if c.rxCount == 0 {
		return 0
	}
	v := c.rxFIFO[0]
	copy(c.rxFIFO[:], c.rxFIFO[1:c.rxCount])
	c.rxCount--
	return v
}

// tick drains a pending TX byte to the transport and pulls a waiting RX
// byte from it. DUART.Tick calls it on every call, and Machine.Tick calls
// DUART.Tick once per clock quantum; no baud-rate divider is applied, so
// a channel moves at most one byte each way per quantum.
func (c *channel) tick() {
	if c.txFull && c.transport != nil {
		c.transport.WriteByte(c.txHolding)
		c.txFull = false
	}
	if c.transport != nil {
		if b, ok := c.transport.ReadByte(); ok {
			c.pushRx(b)
		}
	}
}
