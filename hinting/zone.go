// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import "golang.org/x/image/math/fixed"

// PointFlags carries the on-curve bit and the touch markers for an
// outline point. The touch markers record which axes an instruction has
// already adjusted, which is what IUP interpolates against.
type PointFlags uint8

const (
	flagOnCurve  PointFlags = 1 << 0
	flagTouchedX PointFlags = 1 << 3
	flagTouchedY PointFlags = 1 << 4
	flagTouched             = flagTouchedX | flagTouchedY
)

// OnCurve reports whether the point is on the curve.
func (f PointFlags) OnCurve() bool {
	return f&flagOnCurve != 0
}

// OutlinePoint is an outline point in font units, before scaling.
type OutlinePoint struct {
	X, Y int32
}

// coordAxis selects the axes a movement or touch applies to.
type coordAxis uint8

const (
	axisBoth coordAxis = iota
	axisX
	axisY
)

func (a coordAxis) touchedFlag() PointFlags {
	switch a {
	case axisX:
		return flagTouchedX
	case axisY:
		return flagTouchedY
	}
	return flagTouched
}

// zonePointer selects the twilight or glyph zone.
type zonePointer uint8

const (
	twilightZone zonePointer = 0
	glyphZone    zonePointer = 1
)

func zonePointerFromInt(v int32) (zonePointer, error) {
	switch v {
	case 0:
		return twilightZone, nil
	case 1:
		return glyphZone, nil
	}
	return glyphZone, invalidZoneIndex(v)
}

// zone is one of the two point zones the interpreter works on. The
// twilight zone has no unscaled points; reads there yield (0, 0).
type zone struct {
	unscaled []OutlinePoint
	original []fixed.Point26_6
	points   []fixed.Point26_6
	flags    []PointFlags
	contours []uint16
}

func (z *zone) point(i int) (fixed.Point26_6, error) {
	if i < 0 || i >= len(z.points) {
		return fixed.Point26_6{}, invalidPointIndex(i)
	}
	return z.points[i], nil
}

func (z *zone) pointPtr(i int) (*fixed.Point26_6, error) {
	if i < 0 || i >= len(z.points) {
		return nil, invalidPointIndex(i)
	}
	return &z.points[i], nil
}

func (z *zone) originalPoint(i int) (fixed.Point26_6, error) {
	if i < 0 || i >= len(z.original) {
		return fixed.Point26_6{}, invalidPointIndex(i)
	}
	return z.original[i], nil
}

func (z *zone) originalPtr(i int) (*fixed.Point26_6, error) {
	if i < 0 || i >= len(z.original) {
		return nil, invalidPointIndex(i)
	}
	return &z.original[i], nil
}

func (z *zone) unscaledPoint(i int) OutlinePoint {
	if i < 0 || i >= len(z.unscaled) {
		return OutlinePoint{}
	}
	return z.unscaled[i]
}

func (z *zone) contour(i int) (uint16, error) {
	if i < 0 || i >= len(z.contours) {
		return 0, invalidContourIndex(i)
	}
	return z.contours[i], nil
}

func (z *zone) touch(i int, axis coordAxis) error {
	if i < 0 || i >= len(z.flags) {
		return invalidPointIndex(i)
	}
	z.flags[i] |= axis.touchedFlag()
	return nil
}

func (z *zone) untouch(i int, axis coordAxis) error {
	if i < 0 || i >= len(z.flags) {
		return invalidPointIndex(i)
	}
	z.flags[i] &^= axis.touchedFlag()
	return nil
}

func (z *zone) isTouched(i int, axis coordAxis) (bool, error) {
	if i < 0 || i >= len(z.flags) {
		return false, invalidPointIndex(i)
	}
	return z.flags[i]&axis.touchedFlag() != 0, nil
}

func (z *zone) flipOnCurve(i int) error {
	if i < 0 || i >= len(z.flags) {
		return invalidPointIndex(i)
	}
	z.flags[i] ^= flagOnCurve
	return nil
}

func (z *zone) setOnCurve(start, end int, on bool) error {
	if start < 0 || end > len(z.flags) || start > end {
		return invalidPointRange(start, end)
	}
	for i := start; i < end; i++ {
		if on {
			z.flags[i] |= flagOnCurve
		} else {
			z.flags[i] &^= flagOnCurve
		}
	}
	return nil
}

// iup interpolates the untouched points of every contour between their
// touched neighbors along one axis. A contour with a single touched
// point is shifted rigidly instead.
func (z *zone) iup(axis coordAxis) error {
	point := 0
	for i := range z.contours {
		endPoint := int(z.contours[i])
		firstPoint := point
		if endPoint >= len(z.points) {
			endPoint = len(z.points) - 1
		}
		for point <= endPoint {
			touched, err := z.isTouched(point, axis)
			if err != nil {
				return err
			}
			if touched {
				break
			}
			point++
		}
		if point > endPoint {
			continue
		}
		firstTouched := point
		curTouched := point
		point++
		for point <= endPoint {
			touched, err := z.isTouched(point, axis)
			if err != nil {
				return err
			}
			if touched {
				if err := z.iupInterpolate(axis, curTouched+1, point-1, curTouched, point); err != nil {
					return err
				}
				curTouched = point
			}
			point++
		}
		if curTouched == firstTouched {
			if err := z.iupShift(axis, firstPoint, endPoint, curTouched); err != nil {
				return err
			}
		} else {
			if err := z.iupInterpolate(axis, curTouched+1, endPoint, curTouched, firstTouched); err != nil {
				return err
			}
			if firstTouched > 0 {
				if err := z.iupInterpolate(axis, firstPoint, firstTouched-1, curTouched, firstTouched); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// iupShift moves the points p1..=p2 (excluding the reference point p
// itself) by the delta the reference point moved.
func (z *zone) iupShift(axis coordAxis, p1, p2, p int) error {
	if p1 > p2 || p1 > p || p > p2 {
		return nil
	}
	if p2 >= len(z.points) || p2 >= len(z.original) {
		return invalidPointRange(p1, p2+1)
	}
	var delta fixed.Int26_6
	if axis == axisX {
		delta = z.points[p].X - z.original[p].X
	} else {
		delta = z.points[p].Y - z.original[p].Y
	}
	if delta == 0 {
		return nil
	}
	for i := p1; i <= p2; i++ {
		if i == p {
			continue
		}
		if axis == axisX {
			z.points[i].X += delta
		} else {
			z.points[i].Y += delta
		}
	}
	return nil
}

// iupInterpolate adjusts the points p1..=p2 against the movement of the
// two reference points. Points that fall outside the reference span in
// the original outline are shifted by the nearer reference's delta;
// points inside are interpolated in the unscaled (font unit) space so
// that accumulated scaling error does not distort the result.
func (z *zone) iupInterpolate(axis coordAxis, p1, p2, ref1, ref2 int) error {
	if p1 > p2 {
		return nil
	}
	if ref1 >= len(z.points) || ref2 >= len(z.points) {
		return nil
	}
	if p2 >= len(z.points) || p2 >= len(z.original) {
		return invalidPointRange(p1, p2+1)
	}
	pick := func(p fixed.Point26_6) fixed.Int26_6 {
		if axis == axisX {
			return p.X
		}
		return p.Y
	}
	pickU := func(p OutlinePoint) int32 {
		if axis == axisX {
			return p.X
		}
		return p.Y
	}
	orus1 := pickU(z.unscaledPoint(ref1))
	orus2 := pickU(z.unscaledPoint(ref2))
	if orus1 > orus2 {
		orus1, orus2 = orus2, orus1
		ref1, ref2 = ref2, ref1
	}
	org1 := pick(z.original[ref1])
	org2 := pick(z.original[ref2])
	cur1 := pick(z.points[ref1])
	cur2 := pick(z.points[ref2])
	delta1 := cur1 - org1
	delta2 := cur2 - org2
	if cur1 == cur2 || orus1 == orus2 {
		for i := p1; i <= p2; i++ {
			a := pick(z.original[i])
			switch {
			case a <= org1:
				a += delta1
			case a >= org2:
				a += delta2
			default:
				a = cur1
			}
			if axis == axisX {
				z.points[i].X = a
			} else {
				z.points[i].Y = a
			}
		}
		return nil
	}
	scale := divFix(int32(cur2-cur1), orus2-orus1)
	for i := p1; i <= p2; i++ {
		a := pick(z.original[i])
		switch {
		case a <= org1:
			a += delta1
		case a >= org2:
			a += delta2
		default:
			a = cur1 + fixed.Int26_6(mulFix(pickU(z.unscaledPoint(i))-orus1, scale))
		}
		if axis == axisX {
			z.points[i].X = a
		} else {
			z.points[i].Y = a
		}
	}
	return nil
}
