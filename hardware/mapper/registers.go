package mapper

// Control register offsets, relative to 0x7FF0.
const (
	RegScrollStart  = 0x00 // 0x7FF0
	RegScrollStop   = 0x01 // 0x7FF1
	RegScrollOffset = 0x02 // 0x7FF2
	RegSession1     = 0x03 // 0x7FF3
	RegFrameControl = 0x04 // 0x7FF4
	RegPageSelect   = 0x05 // 0x7FF5
	RegRowGeometry  = 0x06 // 0x7FF6
	RegOffsetX      = 0x07 // 0x7FF7
	RegOffsetY      = 0x08 // 0x7FF8
	RegMaxRows      = 0x0A // 0x7FFA
	RegFontOffset   = 0x0C // 0x7FFC
)

// Session-1 control bits (0x7FF3).
const (
	BitReset         = 1 << 7
	BitBlinkWatchdog = 1 << 6
	BitVRAMPage      = 1 << 5
	BitSwizzle       = 1 << 4
	BitScreenSelect  = 1 << 3
	BitBorderInvert  = 1 << 2
	BitSession1Invert = 1 << 1
	BitSession1Cols  = 1 << 0
)

// Frame-control bits (0x7FF4).
const (
	BitVRAMTopology  = 1 << 6
	BitFrameRate70Hz = 1 << 4
	BitPageFlip      = 1 << 3
	BitSession2Invert = 1 << 1
	BitSession2Cols  = 1 << 0
)

// Page-select bits (0x7FF5).
const (
	BitVRAMAt8000 = 1 << 5
	BitROMBank    = 1 << 2
)

// Shadow register addresses.
const (
	ShadowRowGeomLo  = 0x7EE4
	ShadowRowGeomHi  = 0x7EE5
	ShadowFontOffLo  = 0x7EE6
	ShadowFontOffHi  = 0x7EE7
)

// Power-on defaults, before the ROM's own reset sequence drives its own
// values (0x7FF3 = 0xA0). Recovered from the reference implementation's
// Mapper::new(); spec.md documents only the ROM-driven post-reset values.
const (
	PowerOnSession1     = 0xFF
	PowerOnFrameControl = 0xFF
	PowerOnPageSelect   = 0xF4
)

// Well-known row-geometry encodings (high nibble = row height - 1, low
// nibble = encoded line count).
const (
	RowGeom50Lines         = 0x78
	RowGeom38Lines         = 0x9A
	RowGeom26Lines         = 0xD0
	RowGeom24LinesStatus   = 0xF0
	RowGeomOtherStatus     = 0xFC
)
