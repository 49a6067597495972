// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package clocks defines the frame-rate constants the scanline scheduler
// runs against, and a rational tick accumulator for converting between
// simulated scanline ticks and elapsed wall-clock milliseconds without
// the drift repeated floating-point addition would introduce over a
// long run.
package clocks

// FrameRate identifies one of the VT420's two supported video timings.
type FrameRate int

const (
	Rate60Hz FrameRate = iota
	Rate70Hz
)

// The frame period expressed as an exact fraction of milliseconds:
// 16.67ms = 500/30, 14.29ms = 100/7.
const (
	period60HzNumerator   = 500
	period60HzDenominator = 30

	period70HzNumerator   = 100
	period70HzDenominator = 7
)

// PeriodMillis returns the frame period as an exact numerator/denominator
// pair.
func (r FrameRate) PeriodMillis() (numerator, denominator int) {
	if r == Rate70Hz {
		return period70HzNumerator, period70HzDenominator
	}
	return period60HzNumerator, period60HzDenominator
}

// ActiveAndBlankLines returns the total, active, and vertical-blank
// scanline counts for a frame rate, per spec.md §4.2's scanline
// scheduler table.
func ActiveAndBlankLines(rate FrameRate) (total, active, blank int) {
	if rate == Rate70Hz {
		return 536, 417, 119
	}
	return 625, 417, 208
}

// Accumulator distributes a frame's num/den millisecond period evenly
// across its scanline ticks using integer arithmetic only. Each Tick
// adds the period numerator to a running remainder and divides out
// whole milliseconds; the leftover carries forward, so the sum of
// reported milliseconds across any number of frames matches num/den
// exactly rather than drifting the way float64(16.666...) would.
type Accumulator struct {
	rate      FrameRate
	remainder int
}

// NewAccumulator constructs an Accumulator for the given frame rate.
func NewAccumulator(rate FrameRate) *Accumulator {
	return &Accumulator{rate: rate}
}

// SetRate changes the frame rate the accumulator measures against. The
// carried remainder is not reset; a rate change mid-frame is a modelling
// simplification, not a hardware-accurate transition.
func (a *Accumulator) SetRate(rate FrameRate) { a.rate = rate }

// Tick advances the accumulator by one scanline tick and returns the
// whole milliseconds that have elapsed since the remainder last carried
// past a millisecond boundary (usually 0).
func (a *Accumulator) Tick() int {
	num, den := a.rate.PeriodMillis()
	total, _, _ := ActiveAndBlankLines(a.rate)
	unit := den * total

	a.remainder += num
	ms := a.remainder / unit
	a.remainder -= ms * unit
	return ms
}
