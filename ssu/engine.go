package ssu

import "github.com/mmastrac/blaze/errors"

const maxSessions = 2

// MaxSessions reports the number of sessions an Engine multiplexes, for a
// caller validating a configured session count against it.
func MaxSessions() int { return maxSessions }

// session tracks one multiplexed TD/SMP channel's flow-control state.
type session struct {
	open    bool
	name    string
	credits uint16 // bytes this side may still transmit on the session
}

type byteState int

const (
	stateData byteState = iota
	stateEsc
	stateCmdParams
)

// Engine is one side of the TD/SMP protocol, layered over a single DUART
// channel. Feed presents incoming wire bytes one at a time; Drain
// collects whatever the engine has queued to send back.
type Engine struct {
	state byteState
	op    uint8
	buf   []uint8

	link       LinkState
	sessions   [maxSessions]session
	txSession  int // session our own outgoing data is currently addressed to
	rxSelected int // session the peer has told us its outgoing data belongs to
	restoring  bool
	disabled   bool // set once an explicit DISABLE has torn the protocol down

	out   []uint8
	inbox [maxSessions][]uint8
}

// NewEngine constructs an engine with the protocol disabled and both
// sessions closed.
func NewEngine() *Engine {
	return &Engine{}
}

// State reports the per-side protocol state.
func (e *Engine) State() LinkState { return e.link }

// SessionOpen, SessionName and Credits expose the session model for a
// debugger or test to inspect.
func (e *Engine) SessionOpen(idx int) bool   { return e.sessions[idx].open }
func (e *Engine) SessionName(idx int) string { return e.sessions[idx].name }
func (e *Engine) Credits(idx int) uint16     { return e.sessions[idx].credits }

// Feed processes one byte arriving on the underlying DUART channel.
func (e *Engine) Feed(b uint8) {
	switch e.state {
	case stateData:
		if b == intro {
			e.state = stateEsc
			return
		}
		e.deliverData(b)

	case stateEsc:
		switch b {
		case 'T':
			e.deliverData(intro)
			e.state = stateData
		case 'Q':
			// XON: nothing in this engine throttles transmission on its
			// own account, so there's no local state to clear.
			e.state = stateData
		case 'S':
			// XOFF: likewise observed, not enforced, by this engine.
			e.state = stateData
		default:
			e.op = b
			e.buf = e.buf[:0]
			e.state = stateCmdParams
		}

	case stateCmdParams:
		if b == term {
			e.dispatch(e.op, e.buf)
			e.state = stateData
			return
		}
		e.buf = append(e.buf, b)
	}
}

func (e *Engine) deliverData(b uint8) {
	e.inbox[e.rxSelected] = append(e.inbox[e.rxSelected], b)
}

// ReceivedData pops and clears the bytes received for session idx.
func (e *Engine) ReceivedData(idx int) []uint8 {
	data := e.inbox[idx]
	e.inbox[idx] = nil
	return data
}

// Drain pops and clears the bytes the engine has queued to transmit.
func (e *Engine) Drain() []uint8 {
	out := e.out
	e.out = nil
	return out
}

func (e *Engine) send(bytes []uint8) { e.out = append(e.out, bytes...) }

// Probe initiates the handshake by sending PROBE.
func (e *Engine) Probe() {
	e.send(frame(OpProbe, encodeParam(0), sessionLetter(0), sessionLetter(1)))
}

// OpenSession opens a local session and tells the peer about it.
func (e *Engine) OpenSession(idx int, name string) error {
	if idx < 0 || idx >= maxSessions {
		return errors.New(errors.SessionLimitExceeded, idx)
	}
	e.sessions[idx].open = true
	e.sessions[idx].name = name
	params := append([]uint8{sessionLetter(idx)}, []uint8(name)...)
	e.send(frame(OpOpenSession, params...))
	return nil
}

// CloseSession closes a local session and tells the peer.
func (e *Engine) CloseSession(idx int) error {
	if idx < 0 || idx >= maxSessions {
		return errors.New(errors.SessionLimitExceeded, idx)
	}
	e.sessions[idx].open = false
	e.send(frame(OpCloseSession, sessionLetter(idx)))
	return nil
}

// GrantCredits tells the peer it may send us n more bytes on session idx.
func (e *Engine) GrantCredits(idx int, n uint16) error {
	if idx < 0 || idx >= maxSessions {
		return errors.New(errors.SessionLimitExceeded, idx)
	}
	c := encodeCredits(n)
	e.send(frame(OpAddCredits, sessionLetter(idx), c[0], c[1], c[2]))
	return nil
}

// SendData transmits data on session idx, consuming outbound credit one
// byte at a time. It refuses outright, queuing nothing, if the session
// lacks enough credit for the whole payload.
func (e *Engine) SendData(idx int, data []uint8) error {
	if idx < 0 || idx >= maxSessions {
		return errors.New(errors.SessionLimitExceeded, idx)
	}
	if e.disabled {
		return errors.New(errors.SsuProtocolDisabled)
	}
	if !e.sessions[idx].open {
		return errors.New(errors.SsuSessionNotOpen, string(sessionLetter(idx)))
	}
	if uint16(len(data)) > e.sessions[idx].credits {
		return errors.New(errors.SsuCreditExhausted, string(sessionLetter(idx)))
	}
	if e.txSession != idx {
		e.send(frame(OpSelectSession, sessionLetter(idx)))
		e.txSession = idx
	}
	e.sessions[idx].credits -= uint16(len(data))
	e.send(escapeData(data))
	return nil
}

// dispatch handles one complete `<op> <params>` command.
func (e *Engine) dispatch(op uint8, params []uint8) {
	if !isKnownOpcode(op) {
		// spec.md §7: an unrecognisable opcode is discarded silently.
		return
	}

	switch Opcode(op) {
	case OpProbe:
		e.handleProbe(params)
	case OpReport:
		// a report is itself an acknowledgement; nothing replies to it.
	case OpOpenSession:
		e.handleOpenSession(op, params)
	case OpSelectSession:
		e.handleSelectSession(op, params)
	case OpReset:
		e.handleReset(op, params)
	case OpAddCredits:
		e.handleAddCredits(op, params)
	case OpVerifyCredits:
		e.ack(op)
	case OpCloseSession:
		e.handleCloseSession(op, params)
	case OpDisable:
		e.link = Disabled
		e.disabled = true
		e.sessions = [maxSessions]session{}
		e.ack(op)
	case OpZeroCredits:
		e.handleZeroCredits(op, params)
	case OpSendBreak:
		e.ack(op)
	case OpRequestRestore:
		e.handleRequestRestore()
	case OpRestore:
		e.restoring = true
	case OpRestoreEnd:
		e.restoring = false
		e.link = Active
	case OpQuerySession:
		e.handleQuerySession(op, params)
	}
}

func (e *Engine) ack(op uint8) {
	e.send(reportFrame(Opcode(op), paramNotApplicable, resultOK))
}

func (e *Engine) nack(op uint8) {
	e.send(reportFrame(Opcode(op), paramNotApplicable, resultError))
}

func (e *Engine) handleProbe(params []uint8) {
	if len(params) == 0 {
		e.nack(uint8(OpProbe))
		return
	}
	switch params[0] {
	case '@':
		// a request: acknowledge and become Enabled.
		e.link = Enabled
		e.disabled = false
		e.ack(uint8(OpProbe))
	case 'A', 'B':
		// a response to a probe we sent.
		e.link = Enabled
		e.disabled = false
		if params[0] == 'B' {
			e.send(frame(OpRequestRestore))
		}
	default:
		e.nack(uint8(OpProbe))
	}
}

func (e *Engine) handleOpenSession(op uint8, params []uint8) {
	if len(params) == 0 {
		e.nack(op)
		return
	}
	idx, ok := sessionIndex(params[0])
	if !ok {
		e.nack(op)
		return
	}
	e.sessions[idx].open = true
	e.sessions[idx].name = string(params[1:])
	e.link = Active
	e.ack(op)
}

func (e *Engine) handleSelectSession(op uint8, params []uint8) {
	if len(params) == 0 {
		e.nack(op)
		return
	}
	idx, ok := sessionIndex(params[0])
	if !ok {
		e.nack(op)
		return
	}
	e.rxSelected = idx
	e.ack(op)
}

func (e *Engine) handleReset(op uint8, params []uint8) {
	if len(params) == 0 {
		for i := range e.sessions {
			e.sessions[i].credits = 0
		}
		e.ack(op)
		return
	}
	idx, ok := sessionIndex(params[0])
	if !ok {
		e.nack(op)
		return
	}
	e.sessions[idx].credits = 0
	e.inbox[idx] = nil
	e.ack(op)
}

func (e *Engine) handleAddCredits(op uint8, params []uint8) {
	if len(params) < 4 {
		e.nack(op)
		return
	}
	idx, ok := sessionIndex(params[0])
	if !ok {
		e.nack(op)
		return
	}
	e.sessions[idx].credits += decodeCredits(params[1:4])
	e.ack(op)
}

func (e *Engine) handleZeroCredits(op uint8, params []uint8) {
	if len(params) == 0 {
		e.nack(op)
		return
	}
	idx, ok := sessionIndex(params[0])
	if !ok {
		e.nack(op)
		return
	}
	e.sessions[idx].credits = 0
	e.ack(op)
}

func (e *Engine) handleCloseSession(op uint8, params []uint8) {
	if len(params) == 0 {
		e.nack(op)
		return
	}
	idx, ok := sessionIndex(params[0])
	if !ok {
		e.nack(op)
		return
	}
	e.sessions[idx].open = false
	e.ack(op)
}

func (e *Engine) handleQuerySession(op uint8, params []uint8) {
	if len(params) == 0 {
		e.nack(op)
		return
	}
	idx, ok := sessionIndex(params[0])
	if !ok {
		e.nack(op)
		return
	}
	result := uint8(resultError)
	if e.sessions[idx].open {
		result = resultOK
	}
	e.send(reportFrame(OpQuerySession, params[0], result))
}

// handleRequestRestore answers a peer's restore request with our current
// open-session list, per spec.md §4.6 step 4.
func (e *Engine) handleRequestRestore() {
	e.send(frame(OpRestore))
	for i := range e.sessions {
		if e.sessions[i].open {
			params := append([]uint8{sessionLetter(i)}, []uint8(e.sessions[i].name)...)
			e.send(frame(OpOpenSession, params...))
		}
	}
	e.send(frame(OpRestoreEnd))
}
