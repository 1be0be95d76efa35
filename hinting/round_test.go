// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import (
	"testing"

	"golang.org/x/image/math/fixed"
)

func TestRoundModes(t *testing.T) {
	testCases := []struct {
		mode  roundingMode
		cases [][2]fixed.Int26_6
	}{
		{roundToGrid, [][2]fixed.Int26_6{
			{0, 0}, {32, 64}, {-32, -64}, {64, 64}, {50, 64},
		}},
		{roundToHalfGrid, [][2]fixed.Int26_6{
			{0, 32}, {32, 32}, {-32, -32}, {64, 96}, {50, 32},
		}},
		{roundToDoubleGrid, [][2]fixed.Int26_6{
			{0, 0}, {32, 32}, {-32, -32}, {64, 64}, {50, 64},
		}},
		{roundDownToGrid, [][2]fixed.Int26_6{
			{0, 0}, {32, 0}, {-32, 0}, {64, 64}, {50, 0},
		}},
		{roundUpToGrid, [][2]fixed.Int26_6{
			{0, 0}, {32, 64}, {-32, -64}, {64, 64}, {50, 64},
		}},
		{roundOff, [][2]fixed.Int26_6{
			{0, 0}, {32, 32}, {-32, -32}, {64, 64}, {50, 50},
		}},
	}
	for _, tc := range testCases {
		r := newRoundState()
		r.mode = tc.mode
		for _, c := range tc.cases {
			if got := r.round(c[0]); got != c[1] {
				t.Errorf("mode %d: round(%d) = %d, want %d", tc.mode, c[0], got, c[1])
			}
		}
	}
}

func TestRoundZeroIsZeroOrPhase(t *testing.T) {
	// Rounding never moves a zero distance off zero for the grid modes.
	for mode := roundToHalfGrid; mode <= roundOff; mode++ {
		if mode == roundToHalfGrid {
			continue // half grid maps 0 to 32 by definition
		}
		r := newRoundState()
		r.mode = mode
		if got := r.round(0); got != 0 {
			t.Errorf("mode %d: round(0) = %d, want 0", mode, got)
		}
	}
}

func TestSuperRoundDecode(t *testing.T) {
	// Selector 0x0A: period = grid/2, phase = 0, threshold = 6/8 period.
	var r roundState
	r.mode = roundSuper
	r.superRound(0x4000, 0x0A)
	if r.period != 32 || r.phase != 0 || r.threshold != 24 {
		t.Errorf("superRound(0x4000, 0x0A) = period %d, phase %d, threshold %d; want 32, 0, 24",
			r.period, r.phase, r.threshold)
	}
}

func TestSuperRoundPeriods(t *testing.T) {
	testCases := []struct {
		selector int32
		period   fixed.Int26_6
	}{
		{0x00, 32},
		{0x40, 64},
		{0x80, 128},
		{0xC0, 64},
	}
	for _, tc := range testCases {
		var r roundState
		r.superRound(0x4000, tc.selector)
		if r.period != tc.period {
			t.Errorf("selector %#02x: period = %d, want %d", tc.selector, r.period, tc.period)
		}
	}
	// S45ROUND uses a grid period of sqrt(2)/2 pixels.
	var r roundState
	r.superRound(0x2D41, 0x40)
	if r.period != 0x2D41>>8 {
		t.Errorf("s45 period = %d, want %d", r.period, 0x2D41>>8)
	}
}

func TestSuperRoundNeverCrossesZero(t *testing.T) {
	var r roundState
	r.mode = roundSuper
	r.superRound(0x4000, 0x48)
	for d := fixed.Int26_6(-256); d <= 256; d++ {
		got := r.round(d)
		if d >= 0 && got < 0 {
			t.Fatalf("round(%d) = %d crossed zero", d, got)
		}
		if d < 0 && got > 0 {
			t.Fatalf("round(%d) = %d crossed zero", d, got)
		}
	}
}
