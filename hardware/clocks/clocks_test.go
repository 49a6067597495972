package clocks_test

import (
	"testing"

	"github.com/mmastrac/blaze/hardware/clocks"
)

func TestAccumulatorConvergesOverManyFrames(t *testing.T) {
	a := clocks.NewAccumulator(clocks.Rate60Hz)
	total, _, _ := clocks.ActiveAndBlankLines(clocks.Rate60Hz)

	const frames = 30
	elapsed := 0
	for f := 0; f < frames; f++ {
		for i := 0; i < total; i++ {
			elapsed += a.Tick()
		}
	}

	// 30 frames at 500/30 ms each is exactly 500ms.
	if elapsed != 500 {
		t.Fatalf("got %dms over %d frames, want 500ms", elapsed, frames)
	}
}

func TestAccumulator70HzConvergesOverManyFrames(t *testing.T) {
	a := clocks.NewAccumulator(clocks.Rate70Hz)
	total, _, _ := clocks.ActiveAndBlankLines(clocks.Rate70Hz)

	const frames = 7
	elapsed := 0
	for f := 0; f < frames; f++ {
		for i := 0; i < total; i++ {
			elapsed += a.Tick()
		}
	}

	// 7 frames at 100/7 ms each is exactly 100ms.
	if elapsed != 100 {
		t.Fatalf("got %dms over %d frames, want 100ms", elapsed, frames)
	}
}
