package cpu8051

var _ Core = (*TestCore)(nil)

// TestCore is a minimal Core used by package tests elsewhere in the module
// in place of a real 8051 interpreter. It executes no instructions; Step
// only advances a configurable cycle count, and ports are plain bytes a
// test can set and inspect directly.
type TestCore struct {
	ports       [4]uint8 // index 1..3 used, 0 unused
	CyclesPerStep int
	mem         ExternalMemory
	code        CodeMemory
}

// NewTestCore constructs a TestCore that reports one cycle per Step unless
// CyclesPerStep is set otherwise.
func NewTestCore() *TestCore {
	return &TestCore{CyclesPerStep: 1}
}

func (c *TestCore) Step() int {
	return c.CyclesPerStep
}

func (c *TestCore) Port(p int) uint8 {
	return c.ports[p]
}

func (c *TestCore) SetPort(p int, mask uint8, value uint8) {
	c.ports[p] = (c.ports[p] &^ mask) | (value & mask)
}

func (c *TestCore) SetExternalMemory(mem ExternalMemory) {
	c.mem = mem
}

func (c *TestCore) SetCodeMemory(mem CodeMemory) {
	c.code = mem
}

func (c *TestCore) Reset() {
	c.ports = [4]uint8{}
}

// ReadExternal and WriteExternal let a test drive the installed
// ExternalMemory hook the way the interpreter itself would on a MOVX
// instruction.
func (c *TestCore) ReadExternal(address uint16) uint8 {
	return c.mem.Read(address)
}

func (c *TestCore) WriteExternal(address uint16, data uint8) {
	c.mem.Write(address, data)
}

// FetchCode exercises the installed CodeMemory hook.
func (c *TestCore) FetchCode(address uint16) uint8 {
	return c.code.Fetch(address)
}
