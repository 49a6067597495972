// Package cpu8051 defines the boundary between the core and the Intel 8051
// instruction-set interpreter. The interpreter itself is an external
// collaborator (a reusable library, out of scope here); this package
// defines only the small interface the core depends on, so that Machine
// never imports a concrete interpreter.
package cpu8051

// Core is the subset of an 8051 interpreter the core drives directly. An
// implementation is expected to execute one machine instruction per Step
// and to read/write its P1-P3 ports through the Ports methods so devices
// outside the CPU — the mapper's CSYNC line, the DUART's interrupt line,
// the keyboard's bit-serial pins — can observe and drive them.
type Core interface {
	// Step executes the next instruction and returns the number of clock
	// cycles it consumed.
	Step() int

	// Port reads the current value of port p (1, 2 or 3).
	Port(p int) uint8

	// SetPort writes mask bits of port p, leaving the others unchanged.
	// Devices drive individual pins (CSYNC on P3.4, MP interrupt on P3.2,
	// DUART interrupt on P3.3, keyboard RX/TX on P3.0/P3.1) this way rather
	// than overwriting the whole port.
	SetPort(p int, mask uint8, value uint8)

	// SetExternalMemory installs the hook the interpreter calls for every
	// external-memory access (MOVX). Implementers should pass a small
	// object that forwards into the Bus, never a closure capturing the
	// whole Machine, so the dispatch path stays visible in a profile.
	SetExternalMemory(mem ExternalMemory)

	// SetCodeMemory installs the hook used for code fetches, which sees a
	// separate 16-bit address space selected by the mapper's ROM-bank bit.
	SetCodeMemory(mem CodeMemory)

	// Reset returns the core to its post-reset state.
	Reset()
}

// ExternalMemory is the MOVX read/write hook, backed in practice by
// hardware/memory/bus.Bus.
type ExternalMemory interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// CodeMemory is the code-fetch hook, backed in practice by the mapper's ROM
// bank selection.
type CodeMemory interface {
	Fetch(address uint16) uint8
}
