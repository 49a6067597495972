package memorymap

import (
	"fmt"
	"strings"
)

// Summary returns a single multiline string detailing every region in the
// external memory map. Useful for reference.
func Summary() string {
	var area, current Area
	var a, sa uint16

	s := strings.Builder{}

	_, current = MapAddress(0)

	for a = uint16(1); ; a++ {
		_, area = MapAddress(a)

		if area != current {
			s.WriteString(fmt.Sprintf("%04x -> %04x\t%s\n", sa, a-uint16(1), current.String()))
			current = area
			sa = a
		}

		// a is a uint16, so stop at the top address rather than letting
		// the increment wrap back to 0x0000.
		if a == MemtopUpper {
			break
		}
	}

	s.WriteString(fmt.Sprintf("%04x -> %04x\t%s\n", sa, a, area.String()))

	return s.String()
}
