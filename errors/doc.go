// Package errors defines BlazeError, the error type returned across package
// boundaries in the core. Each BlazeError carries an Errno naming the
// condition and the values needed to format a message for it.
//
// Device-internal conditions — a DUART overrun, an EEPROM that isn't ready —
// are never reported through this package. Those are observable register
// bits, not API errors; a caller reads them off the device the same way the
// hardware would.
//
// Typical use:
//
//	if len(nvram) != cap {
//		return errors.New(errors.NvramSizeMismatch, len(nvram), cap)
//	}
//
// and at the point an error is handled:
//
//	if errors.Is(err, errors.NvramSizeMismatch) {
//		// fall back to erased contents
//	}
package errors
