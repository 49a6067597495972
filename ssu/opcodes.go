// Package ssu implements the DEC TD/SMP protocol engine: the byte-at-a-time
// framer/parser, its escape handling, and the session/credit multiplexer
// layered over one DUART channel.
package ssu

// Opcode identifies a TD/SMP command. The byte values are the printable
// ASCII characters DEC's protocol assigns them.
type Opcode uint8

const (
	OpProbe          Opcode = '!'
	OpOpenSession    Opcode = '"'
	OpSelectSession  Opcode = '#'
	OpReset          Opcode = '*'
	OpAddCredits     Opcode = '+'
	OpVerifyCredits  Opcode = '-'
	OpCloseSession   Opcode = '.'
	OpDisable        Opcode = '/'
	OpZeroCredits    Opcode = '0'
	OpSendBreak      Opcode = ':'
	OpRequestRestore Opcode = ';'
	OpRestore        Opcode = '<'
	OpReport         Opcode = '='
	OpRestoreEnd     Opcode = '>'
	OpQuerySession   Opcode = '?'
)

func isKnownOpcode(op uint8) bool {
	switch Opcode(op) {
	case OpProbe, OpOpenSession, OpSelectSession, OpReset, OpAddCredits,
		OpVerifyCredits, OpCloseSession, OpDisable, OpZeroCredits,
		OpSendBreak, OpRequestRestore, OpRestore, OpReport, OpRestoreEnd,
		OpQuerySession:
		return true
	}
	return false
}

const (
	intro = 0x14
	term  = 0x1C

	paramNotApplicable = 'a'
	resultOK           = '@'
	resultError        = 'e'
)

// LinkState is the per-side protocol state spec.md §4.6 names.
type LinkState int

const (
	Disabled LinkState = iota
	Enabled
	Active
)

func (s LinkState) String() string {
	switch s {
	case Disabled:
		return "Disabled"
	case Enabled:
		return "Enabled"
	case Active:
		return "Active"
	}
	return "Unknown"
}
