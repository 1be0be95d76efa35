// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

// This file implements the fixed point arithmetic used by the bytecode
// interpreter: 26.6 values for device-space coordinates, 16.16 values
// for scale factors and 2.14 values for unit vectors. The formulas match
// the FreeType implementations bit for bit, which matters because fonts
// are authored against that exact arithmetic.

import (
	"math/bits"

	"golang.org/x/image/math/fixed"
)

func floorX(x fixed.Int26_6) fixed.Int26_6 {
	return x &^ 63
}

func roundX(x fixed.Int26_6) fixed.Int26_6 {
	return floorX(x + 32)
}

func ceilX(x fixed.Int26_6) fixed.Int26_6 {
	return floorX(x + 63)
}

func floorPad(x, n fixed.Int26_6) fixed.Int26_6 {
	return x &^ (n - 1)
}

func roundPad(x, n fixed.Int26_6) fixed.Int26_6 {
	return floorPad(x+n/2, n)
}

// mulDiv returns a*b/c rounded to nearest, with the sign carried
// separately so that rounding is symmetric around zero. A zero divisor
// yields 0x7FFFFFFF with the combined sign.
func mulDiv(a, b, c int32) int32 {
	s := int64(1)
	aa, bb, cc := int64(a), int64(b), int64(c)
	if aa < 0 {
		aa, s = -aa, -s
	}
	if bb < 0 {
		bb, s = -bb, -s
	}
	if cc < 0 {
		cc, s = -cc, -s
	}
	d := int64(0x7FFFFFFF)
	if cc > 0 {
		d = (aa*bb + cc/2) / cc
	}
	if s < 0 {
		return int32(-d)
	}
	return int32(d)
}

// mulDivNoRound is mulDiv truncated toward zero.
func mulDivNoRound(a, b, c int32) int32 {
	s := int64(1)
	aa, bb, cc := int64(a), int64(b), int64(c)
	if aa < 0 {
		aa, s = -aa, -s
	}
	if bb < 0 {
		bb, s = -bb, -s
	}
	if cc < 0 {
		cc, s = -cc, -s
	}
	d := int64(0x7FFFFFFF)
	if cc > 0 {
		d = (aa * bb) / cc
	}
	if s < 0 {
		return int32(-d)
	}
	return int32(d)
}

// mulFix multiplies two 16.16 values. Also used to scale a 26.6 value by
// a 16.16 factor, which yields a 26.6 value.
func mulFix(a, b int32) int32 {
	return mulDiv(a, b, 0x10000)
}

// divFix divides two like-formatted values, returning a 16.16 ratio.
func divFix(a, b int32) int32 {
	return mulDiv(a, 0x10000, b)
}

// mul14 multiplies a value by a 2.14 unit vector component.
func mul14(a, b int32) int32 {
	v := int64(a) * int64(b)
	v += 0x2000 + (v >> 63)
	return int32(v >> 14)
}

// dot14 returns the dot product of two 2.14 vectors, in 2.14.
func dot14(ax, ay, bx, by int32) int32 {
	v := int64(ax)*int64(bx) + int64(ay)*int64(by)
	v += 0x2000 + (v >> 63)
	return int32(v >> 14)
}

// normalize14 scales the vector (x, y) to unit length in 2.14 fixed
// point. It is a port of FT_Vector_NormLen, including its wrapping
// 32-bit arithmetic: hint programs depend on the exact low bits of the
// result, not merely on a vector of length one.
func normalize14(x, y int32) (nx, ny int32) {
	sx, sy := int32(1), int32(1)
	ux, uy := uint32(x), uint32(y)
	if x < 0 {
		ux = -ux
		sx = -sx
	}
	if y < 0 {
		uy = -uy
		sy = -sy
	}
	if ux == 0 {
		nx = x / 4
		if uy > 0 {
			ny = sy * 0x10000 / 4
		}
		return nx, ny
	}
	if uy == 0 {
		ny = y / 4
		if ux > 0 {
			nx = sx * 0x10000 / 4
		}
		return nx, ny
	}
	length := ux + uy>>1
	if uy > ux {
		length = uy + ux>>1
	}
	shift := int32(bits.LeadingZeros32(length))
	shift -= 15
	if length >= 0xAAAAAAAA>>uint(bits.LeadingZeros32(length)) {
		shift--
	}
	if shift > 0 {
		ux <<= uint(shift)
		uy <<= uint(shift)
		if uy > ux {
			length = uy + ux>>1
		} else {
			length = ux + uy>>1
		}
	} else {
		ux >>= uint(-shift)
		uy >>= uint(-shift)
		length >>= uint(-shift)
	}
	// Newton iterations on the reciprocal length.
	b := 0x10000 - int32(length)
	ix, iy := int32(ux), int32(uy)
	var u, v uint32
	for {
		u = uint32(ix + (ix*b)>>16)
		v = uint32(iy + (iy*b)>>16)
		z := -int32(u*u+v*v) / 0x200
		z = z * ((0x10000 + b) >> 8) / 0x10000
		b += z
		if z <= 0 {
			break
		}
	}
	return int32(u) * sx / 4, int32(v) * sy / 4
}
