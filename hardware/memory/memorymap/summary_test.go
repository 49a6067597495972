package memorymap_test

import (
	"testing"

	"github.com/mmastrac/blaze/hardware/memory/memorymap"
)

const validMemMap = `0000 -> 7edf	VRAM
7ee0 -> 7eff	MapperShadow
7f00 -> 7fdf	VRAM
7fe0 -> 7fef	DUART
7ff0 -> 7fff	MapperControl
8000 -> ffff	Upper
`

func TestSummary(t *testing.T) {
	if got := memorymap.Summary(); got != validMemMap {
		t.Fatalf("memory map is invalid:\n%s", got)
	}
}

func TestMapAddress(t *testing.T) {
	tests := []struct {
		addr uint16
		area memorymap.Area
	}{
		{0x0000, memorymap.VRAM},
		{0x7FDF, memorymap.VRAM},
		{0x7FE0, memorymap.DUART},
		{0x7FEF, memorymap.DUART},
		{0x7FF0, memorymap.MapperControl},
		{0x7FFF, memorymap.MapperControl},
		{0x8000, memorymap.Upper},
		{0xFFFF, memorymap.Upper},
	}

	for _, tc := range tests {
		_, area := memorymap.MapAddress(tc.addr)
		if area != tc.area {
			t.Errorf("MapAddress(%#04x) = %s, want %s", tc.addr, area, tc.area)
		}
	}
}
