// Package keyboard implements the LK201/LK401 keyboard link: the
// byte-protocol state machine (make/break codes for the keys in Keymap)
// and the bit-serial UART framing that carries it over two CPU port-3
// pins at 4800 baud, 8-N-1. Auto-repeat is not generated, and the host's
// division mode-selection commands are accepted and ignored.
package keyboard

// Key identifies one LK201/LK401 keycap. The values themselves carry no
// meaning beyond distinguishing keys from one another; Keymap below maps
// each Key to the byte the keyboard actually transmits.
type Key int

const (
	KeyNone Key = iota

	// alphanumeric block
	KeyGrave
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyMinus
	KeyEqual
	KeyQ
	KeyW
	KeyE
	KeyR
	KeyT
	KeyY
	KeyU
	KeyI
	KeyO
	KeyP
	KeyLBracket
	KeyRBracket
	KeyBackslash
	KeyA
	KeyS
	KeyD
	KeyF
	KeyG
	KeyH
	KeyJ
	KeyK
	KeyL
	KeySemicolon
	KeyQuote
	KeyZ
	KeyX
	KeyC
	KeyV
	KeyB
	KeyN
	KeyM
	KeyComma
	KeyPeriod
	KeySlash
	KeySpace

	// mode/modifier keys
	KeyShift
	KeyRShift
	KeyCtrl
	KeyLock
	KeyMeta

	// editing keypad
	KeyFind
	KeyInsertHere
	KeyRemove
	KeySelect
	KeyPrevScreen
	KeyNextScreen
	KeyArrowUp
	KeyArrowDown
	KeyLeft
	KeyRight
	KeyDelete
	KeyReturn
	KeyTab

	// function-key row
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyHelp
	KeyMenu
)

// Keymap translates a Key to the single byte the LK201 transmits for a
// key-down. The LK201 uses one fixed code per key regardless of direction:
// the UpDown-mode keys listed in modifierKeys below retransmit the same
// byte on key-up. Values are the keycodes
// `_examples/original_source/src/lk201.rs`'s def_char_keys! table and
// SpecialKey enum assign to each cap.
var Keymap = map[Key]uint8{
	KeyGrave:     0xbf,
	Key1:         0xc0,
	Key2:         0xc5,
	Key3:         0xcb,
	Key4:         0xd0,
	Key5:         0xd6,
	Key6:         0xdb,
	Key7:         0xe0,
	Key8:         0xe5,
	Key9:         0xea,
	Key0:         0xef,
	KeyMinus:     0xf9,
	KeyEqual:     0xf5,
	KeyQ:         0xc1,
	KeyW:         0xc6,
	KeyE:         0xcc,
	KeyR:         0xd1,
	KeyT:         0xd7,
	KeyY:         0xdc,
	KeyU:         0xe1,
	KeyI:         0xe6,
	KeyO:         0xeb,
	KeyP:         0xf0,
	KeyLBracket:  0xfa,
	KeyRBracket:  0xf6,
	KeyBackslash: 0xf7,
	KeyA:         0xc2,
	KeyS:         0xc7,
	KeyD:         0xcd,
	KeyF:         0xd2,
	KeyG:         0xd8,
	KeyH:         0xdd,
	KeyJ:         0xe2,
	KeyK:         0xe7,
	KeyL:         0xec,
	KeySemicolon: 0xf2,
	KeyQuote:     0xfb,
	KeyZ:         0xc3,
	KeyX:         0xc8,
	KeyC:         0xce,
	KeyV:         0xd3,
	KeyB:         0xd9,
	KeyN:         0xde,
	KeyM:         0xe3,
	KeyComma:     0xe8,
	KeyPeriod:    0xed,
	KeySlash:     0xf3,
	KeySpace:     0xd4,

	KeyShift:  0xae,
	KeyRShift: 0xab,
	KeyCtrl:   0xaf,
	KeyLock:   0xb0,
	KeyMeta:   0xb1,

	KeyFind:       0x8a,
	KeyInsertHere: 0x8b,
	KeyRemove:     0x8c,
	KeySelect:     0x8d,
	KeyPrevScreen: 0x8e,
	KeyNextScreen: 0x8f,
	KeyLeft:       0xa7,
	KeyRight:      0xa8,
	KeyArrowDown:  0xa9,
	KeyArrowUp:    0xaa,
	KeyDelete:     0xbc,
	KeyReturn:     0xbd,
	KeyTab:        0xbe,

	KeyF1:  0x56,
	KeyF2:  0x57,
	KeyF3:  0x58,
	KeyF4:  0x59,
	KeyF5:  0x5a,
	KeyF6:  0x64,
	KeyF7:  0x65,
	KeyF8:  0x66,
	KeyF9:  0x67,
	KeyF10: 0x68,
	KeyF11: 0x71,
	KeyF12: 0x72,
	KeyF13: 0x73,
	KeyF14: 0x74,
	KeyHelp: 0x7c,
	KeyMenu: 0x7d,
}

// modifierKeys transmit their keycode on both press and release (UpDown
// mode); every other key in Keymap transmits its code once on key-down and
// allUpCode on release. No repeat codes are generated while a key is held.
var modifierKeys = map[Key]bool{
	KeyShift:  true,
	KeyRShift: true,
	KeyCtrl:   true,
	KeyLock:   true,
	KeyMeta:   true,
}

// allUpCode (LK_ALL_UPS in the real protocol) is transmitted on every
// release of a non-modifier key, not only when the last held key of a
// division is released.
const allUpCode = 0xb3
