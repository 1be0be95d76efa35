// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import "golang.org/x/image/math/fixed"

// roundingMode selects how distances snap to the pixel grid.
type roundingMode uint8

const (
	roundToHalfGrid roundingMode = iota
	roundToGrid
	roundToDoubleGrid
	roundDownToGrid
	roundUpToGrid
	roundOff
	roundSuper
	roundSuper45
)

// roundState holds the rounding mode plus the period, phase and
// threshold registers used by the super round modes.
type roundState struct {
	mode      roundingMode
	threshold fixed.Int26_6
	phase     fixed.Int26_6
	period    fixed.Int26_6
}

func newRoundState() roundState {
	return roundState{mode: roundToGrid, period: 64}
}

// superRound decodes an SROUND/S45ROUND selector byte. gridPeriod is
// 0x4000 for SROUND and 0x2D41 (sqrt(2)/2) for S45ROUND, in a 2.14-ish
// scale that the final shift drops back to 26.6.
func (r *roundState) superRound(gridPeriod int32, selector int32) {
	period := gridPeriod
	switch selector & 0xC0 {
	case 0x00:
		period = gridPeriod / 2
	case 0x40:
		period = gridPeriod
	case 0x80:
		period = gridPeriod * 2
	case 0xC0:
		period = gridPeriod
	}
	var phase int32
	switch selector & 0x30 {
	case 0x00:
		phase = 0
	case 0x10:
		phase = period / 4
	case 0x20:
		phase = period / 2
	case 0x30:
		phase = period * 3 / 4
	}
	var threshold int32
	if selector&0xF == 0 {
		threshold = period - 1
	} else {
		threshold = (int32(selector&0xF) - 4) * period / 8
	}
	r.period = fixed.Int26_6(period >> 8)
	r.phase = fixed.Int26_6(phase >> 8)
	r.threshold = fixed.Int26_6(threshold >> 8)
}

// round applies the current rounding mode to a distance. Positive and
// negative distances round symmetrically and never cross zero.
func (r roundState) round(distance fixed.Int26_6) fixed.Int26_6 {
	switch r.mode {
	case roundToHalfGrid:
		if distance >= 0 {
			return max26(floorX(distance)+32, 0)
		}
		return min26(-(floorX(-distance) + 32), 0)
	case roundToGrid:
		if distance >= 0 {
			return max26(roundX(distance), 0)
		}
		return min26(-roundX(-distance), 0)
	case roundToDoubleGrid:
		if distance >= 0 {
			return max26(roundPad(distance, 32), 0)
		}
		return min26(-roundPad(-distance, 32), 0)
	case roundDownToGrid:
		if distance >= 0 {
			return max26(floorX(distance), 0)
		}
		return min26(-floorX(-distance), 0)
	case roundUpToGrid:
		if distance >= 0 {
			return max26(ceilX(distance), 0)
		}
		return min26(-ceilX(-distance), 0)
	case roundSuper:
		if distance >= 0 {
			v := (distance + r.threshold - r.phase) & -r.period
			return max26(v+r.phase, r.phase)
		}
		v := -((r.threshold - r.phase - distance) & -r.period)
		return min26(v-r.phase, -r.phase)
	case roundSuper45:
		if distance >= 0 {
			v := (distance + r.threshold - r.phase) / r.period * r.period
			return max26(v+r.phase, r.phase)
		}
		v := -((r.threshold - r.phase - distance) / r.period * r.period)
		return min26(v-r.phase, -r.phase)
	default: // roundOff
		return distance
	}
}

func min26(a, b fixed.Int26_6) fixed.Int26_6 {
	if a < b {
		return a
	}
	return b
}

func max26(a, b fixed.Int26_6) fixed.Int26_6 {
	if a > b {
		return a
	}
	return b
}
