package errors

var messages = map[Errno]string{
	RomTooLarge: "rom image is too large (%d bytes, maximum is %d)",
	RomTooSmall: "rom image is too small (%d bytes, minimum is %d)",

	NvramSizeMismatch: "nvram image size (%d) does not match device capacity (%d), falling back to erased contents",

	SsuFramingError:      "malformed TD/SMP frame: %s",
	SsuCreditExhausted:   "no outbound credit remaining for session %s",
	SessionLimitExceeded: "session index %d is outside the supported session range",
	SsuSessionNotOpen:    "session %s is not open",
	SsuProtocolDisabled:  "SSU protocol is disabled",
}
