package keyboard

// Event is a high-level key action delivered by the host layer's
// keyboard.push port. It carries no byte-protocol detail — translating
// it into the LK201 wire format is this package's job.
type Event struct {
	Key  Key
	Down bool
}

// KeyDown and KeyUp build the two Event shapes spec.md §6 names.
func KeyDown(k Key) Event { return Event{Key: k, Down: true} }
func KeyUp(k Key) Event   { return Event{Key: k, Down: false} }
