package duart

// ReadRegister names the sixteen byte-wide registers the CPU sees on a
// read at 0x7FE0+offset, following the 2681 datasheet's own layout.
type ReadRegister int

const (
	ModeRegisterA ReadRegister = iota
	StatusRegisterA
	BRGExtend
	RxHoldingRegisterA
	InputPortChangeRegister
	InterruptStatusRegister
	CounterTimerUpperValue
	CounterTimerLowerValue
	ModeRegisterB
	StatusRegisterB
	Test1x16x
	RxHoldingRegisterB
	ReadScratchPad
	InputPorts
	StartCounterCommand
	StopCounterCommand
)

// WriteRegister names the sixteen byte-wide registers the CPU sees on a
// write at 0x7FE0+offset.
type WriteRegister int

const (
	WriteModeRegisterA WriteRegister = iota
	ClockSelectRegisterA
	CommandRegisterA
	TxHoldingRegisterA
	AuxControlRegister
	InterruptMaskRegister
	CounterTimerUpperPreset
	CounterTimerLowerPreset
	WriteModeRegisterB
	ClockSelectRegisterB
	CommandRegisterB
	TxHoldingRegisterB
	WriteScratchPad
	OutputPortConfRegister
	SetOutputPortBitsCommand
	ResetOutputPortBitsCommand
)

// Status register bits (SRA/SRB), per channel.
const (
	StatusRxReady   = 1 << 0
	StatusTxReady   = 1 << 2
	StatusOverrun   = 1 << 4
)

// Interrupt status/mask bits (ISR/IMR).
const (
	IntTxReadyA = 1 << 0
	IntRxReadyA = 1 << 1
	IntTxReadyB = 1 << 4
	IntRxReadyB = 1 << 5
	IntDeltaDCD = 1 << 3
	IntCounter  = 1 << 3 // same bit as IntDeltaDCD: two names for one bit position
)

// Input port bits, read at InputPorts. All are active-low except the two
// EEPROM bits, which are active-high.
const (
	InputDCD         = 1 << 0
	InputPrinterDSR  = 1 << 1
	InputEEPROMReady = 1 << 2 // active-high
	InputEEPROMData  = 1 << 3 // active-high
	InputSpeed       = 1 << 4
	InputDSR         = 1 << 5
	InputCTS         = 1 << 6
)

// Output port bits, driven through SetOutputPortBitsCommand /
// ResetOutputPortBitsCommand.
const (
	OutputPrinterDTR = 1 << 0
	OutputEEPROMDO   = 1 << 1
	OutputEEPROMCLK  = 1 << 2
	OutputEEPROMCS   = 1 << 3
	OutputDTR2       = 1 << 4
	OutputSpeedSel   = 1 << 5
	OutputDTR1       = 1 << 6
	OutputRTS        = 1 << 7
)

// Command register bits (CRA/CRB). Bit assignments recovered from the
// reference implementation; spec.md describes the write-counter reset
// behaviour but is silent on which bits do what.
const (
	CmdResetMRPointer = 0b001
	CmdResetRX        = 0b010
	CmdResetTX        = 0b011
)

const rxFIFODepth = 3
