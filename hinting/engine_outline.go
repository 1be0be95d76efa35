// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import "golang.org/x/image/math/fixed"

// This file implements the instructions that move, measure and flag
// outline points: the shift, interpolation, delta and relative move
// families.

// inTwilight reports whether any of the given zone pointers references
// the twilight zone.
func (e *engine) inTwilight(zps ...zonePointer) bool {
	for _, zp := range zps {
		if zp == twilightZone {
			return true
		}
	}
	return false
}

// useLoopCounter consumes the loop counter, resetting it to 1.
func (e *engine) useLoopCounter() int {
	count := int(e.graphics.loopCounter)
	e.graphics.loopCounter = 1
	return count
}

// opFLIPPT handles FLIPPT (0x80): toggles the on-curve flag of
// loop-counter many points in the glyph zone.
func (e *engine) opFLIPPT() error {
	count := e.useLoopCounter()
	if e.graphics.backwardCompatibility && e.graphics.didIUPx && e.graphics.didIUPy {
		// Too late to change the outline; still consume the arguments.
		for i := 0; i < count; i++ {
			if _, err := e.stack.pop(); err != nil {
				return err
			}
		}
		return nil
	}
	z := e.graphics.zone(glyphZone)
	for i := 0; i < count; i++ {
		p, err := e.stack.pop()
		if err != nil {
			return err
		}
		if err := z.flipOnCurve(int(p)); err != nil {
			return err
		}
	}
	return nil
}

// opFLIPRG handles FLIPRGON (0x81) and FLIPRGOFF (0x82): sets or clears
// the on-curve flag for an inclusive range of glyph zone points.
func (e *engine) opFLIPRG(on bool) error {
	high, err := e.stack.pop()
	if err != nil {
		return err
	}
	low, err := e.stack.pop()
	if err != nil {
		return err
	}
	if e.graphics.backwardCompatibility && e.graphics.didIUPx && e.graphics.didIUPy {
		return nil
	}
	return e.graphics.zone(glyphZone).setOnCurve(int(low), int(high)+1, on)
}

// opSHP handles SHP[a] (0x32 - 0x33): shifts loop-counter many points
// by the amount the reference point has moved.
func (e *engine) opSHP(op Opcode) error {
	disp, err := e.graphics.pointDisplacement(op)
	if err != nil {
		return err
	}
	count := e.useLoopCounter()
	for i := 0; i < count; i++ {
		p, err := e.stack.pop()
		if err != nil {
			return err
		}
		if err := e.graphics.moveZp2Point(int(p), disp.dx, disp.dy, true); err != nil {
			return err
		}
	}
	return nil
}

// opSHC handles SHC[a] (0x34 - 0x35): shifts a whole contour, skipping
// the reference point itself when it lies on that contour.
func (e *engine) opSHC(op Opcode) error {
	contour, err := e.stack.pop()
	if err != nil {
		return err
	}
	disp, err := e.graphics.pointDisplacement(op)
	if err != nil {
		return err
	}
	z := e.graphics.zone(e.graphics.zp2)
	start := 0
	if contour != 0 {
		prev, err := z.contour(int(contour) - 1)
		if err != nil {
			return err
		}
		start = int(prev) + 1
	}
	var end int
	if e.graphics.zp2 == twilightZone {
		end = len(z.points)
	} else {
		last, err := z.contour(int(contour))
		if err != nil {
			return err
		}
		end = int(last) + 1
	}
	for i := start; i < end; i++ {
		if disp.zone == e.graphics.zp2 && disp.point == i {
			continue
		}
		if err := e.graphics.moveZp2Point(i, disp.dx, disp.dy, true); err != nil {
			return err
		}
	}
	return nil
}

// opSHZ handles SHZ[a] (0x36 - 0x37): shifts every point of the zone
// referenced by zp2 without touching any of them.
func (e *engine) opSHZ(op Opcode) error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	if _, err := zonePointerFromInt(n); err != nil {
		return err
	}
	disp, err := e.graphics.pointDisplacement(op)
	if err != nil {
		return err
	}
	z := e.graphics.zone(e.graphics.zp2)
	var end int
	if e.graphics.zp2 == twilightZone {
		end = len(z.points)
	} else if len(z.contours) > 0 {
		end = int(z.contours[len(z.contours)-1]) + 1
	}
	for i := 0; i < end; i++ {
		if disp.zone == e.graphics.zp2 && disp.point == i {
			continue
		}
		if err := e.graphics.moveZp2Point(i, disp.dx, disp.dy, false); err != nil {
			return err
		}
	}
	return nil
}

// opSHPIX handles SHPIX (0x38): shifts loop-counter many points by a
// pixel amount along the freedom vector. Under backward compatibility
// only twilight points, y-touched points and composite y moves go
// through; skipped points are not marked touched.
func (e *engine) opSHPIX() error {
	amount, err := e.stack.pop()
	if err != nil {
		return err
	}
	fv := e.graphics.freedomVector
	dx := fixed.Int26_6(mul14(amount, fv.X))
	dy := fixed.Int26_6(mul14(amount, fv.Y))
	count := e.useLoopCounter()
	inTwilight := e.inTwilight(e.graphics.zp0, e.graphics.zp1, e.graphics.zp2)
	for i := 0; i < count; i++ {
		p, err := e.stack.pop()
		if err != nil {
			return err
		}
		if e.graphics.backwardCompatibility {
			move := inTwilight
			if !move && !(e.graphics.didIUPx && e.graphics.didIUPy) {
				if e.graphics.isComposite && fv.Y != 0 {
					move = true
				} else {
					touched, err := e.graphics.zone(e.graphics.zp2).isTouched(int(p), axisY)
					if err != nil {
						return err
					}
					move = touched
				}
			}
			if !move {
				continue
			}
		}
		if err := e.graphics.moveZp2Point(int(p), dx, dy, true); err != nil {
			return err
		}
	}
	return nil
}

// opMSIRP handles MSIRP[a] (0x3A - 0x3B): moves a point until its
// distance from rp0 equals the popped value. In the twilight zone the
// point is first created on top of the reference point.
func (e *engine) opMSIRP(op Opcode) error {
	distance, err := e.stack.pop()
	if err != nil {
		return err
	}
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	g := &e.graphics
	if g.zp1 == twilightZone {
		rp0Orig, err := g.zone(g.zp0).originalPoint(g.rp0)
		if err != nil {
			return err
		}
		orig, err := g.zone(g.zp1).originalPtr(int(p))
		if err != nil {
			return err
		}
		*orig = rp0Orig
		if err := g.moveOriginal(g.zp1, int(p), fixed.Int26_6(distance)); err != nil {
			return err
		}
		cur, err := g.zone(g.zp1).pointPtr(int(p))
		if err != nil {
			return err
		}
		*cur = *orig
	}
	cur, err := g.zone(g.zp1).point(int(p))
	if err != nil {
		return err
	}
	ref, err := g.zone(g.zp0).point(g.rp0)
	if err != nil {
		return err
	}
	d := g.project(cur, ref)
	if err := g.movePoint(g.zp1, int(p), fixed.Int26_6(distance)-d); err != nil {
		return err
	}
	g.rp1 = g.rp0
	g.rp2 = int(p)
	if op&1 != 0 {
		g.rp0 = int(p)
	}
	return nil
}

// opMDAP handles MDAP[a] (0x2E - 0x2F): touches a point, optionally
// rounding its position along the projection vector.
func (e *engine) opMDAP(op Opcode) error {
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	g := &e.graphics
	var distance fixed.Int26_6
	if op&1 != 0 {
		cur, err := g.zone(g.zp0).point(int(p))
		if err != nil {
			return err
		}
		v := g.fastProject(cur)
		distance = g.round.round(v) - v
	}
	if err := g.movePoint(g.zp0, int(p), distance); err != nil {
		return err
	}
	g.rp0 = int(p)
	g.rp1 = int(p)
	return nil
}

// opMIAP handles MIAP[a] (0x3E - 0x3F): moves a point to the position
// given by a CVT entry, with optional cut-in test and rounding.
func (e *engine) opMIAP(op Opcode) error {
	cvtEntry, err := e.stack.pop()
	if err != nil {
		return err
	}
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	distance, err := e.cvtGet(int(cvtEntry))
	if err != nil {
		return err
	}
	g := &e.graphics
	if g.zp0 == twilightZone {
		// Twilight points spring into existence here.
		fv := g.freedomVector
		orig, err := g.zone(g.zp0).originalPtr(int(p))
		if err != nil {
			return err
		}
		orig.X = fixed.Int26_6(mul14(int32(distance), fv.X))
		orig.Y = fixed.Int26_6(mul14(int32(distance), fv.Y))
		cur, err := g.zone(g.zp0).pointPtr(int(p))
		if err != nil {
			return err
		}
		*cur = *orig
	}
	cur, err := g.zone(g.zp0).point(int(p))
	if err != nil {
		return err
	}
	origDist := g.fastProject(cur)
	if op&1 != 0 {
		d := distance - origDist
		if d < 0 {
			d = -d
		}
		if d > g.controlValueCutin {
			distance = origDist
		}
		distance = g.round.round(distance)
	}
	if err := g.movePoint(g.zp0, int(p), distance-origDist); err != nil {
		return err
	}
	g.rp0 = int(p)
	g.rp1 = int(p)
	return nil
}

// opMDRP handles MDRP[abcde] (0xC0 - 0xDF): moves a point so that its
// distance from rp0 matches the distance in the original outline.
func (e *engine) opMDRP(op Opcode) error {
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	g := &e.graphics
	var origDist fixed.Int26_6
	if e.inTwilight(g.zp0, g.zp1) {
		o1, err := g.zone(g.zp1).originalPoint(int(p))
		if err != nil {
			return err
		}
		o2, err := g.zone(g.zp0).originalPoint(g.rp0)
		if err != nil {
			return err
		}
		origDist = g.dualProject(o1, o2)
	} else {
		u1 := g.zone(g.zp1).unscaledPoint(int(p))
		u2 := g.zone(g.zp0).unscaledPoint(g.rp0)
		origDist = fixed.Int26_6(mulFix(g.dualProjectUnscaled(u1, u2), g.unscaledToPixels()))
	}
	// Single width test.
	if d := origDist - g.singleWidth; -g.singleWidthCutin < d && d < g.singleWidthCutin {
		if origDist >= 0 {
			origDist = g.singleWidth
		} else {
			origDist = -g.singleWidth
		}
	}
	distance := origDist
	if op&4 != 0 {
		distance = g.round.round(origDist)
	}
	if op&8 != 0 {
		if origDist >= 0 {
			if distance < g.minDistance {
				distance = g.minDistance
			}
		} else {
			if distance > -g.minDistance {
				distance = -g.minDistance
			}
		}
	}
	cur, err := g.zone(g.zp1).point(int(p))
	if err != nil {
		return err
	}
	ref, err := g.zone(g.zp0).point(g.rp0)
	if err != nil {
		return err
	}
	curDist := g.project(cur, ref)
	if err := g.movePoint(g.zp1, int(p), distance-curDist); err != nil {
		return err
	}
	g.rp1 = g.rp0
	g.rp2 = int(p)
	if op&16 != 0 {
		g.rp0 = int(p)
	}
	return nil
}

// opMIRP handles MIRP[abcde] (0xE0 - 0xFF): like MDRP, but the target
// distance comes from the CVT.
func (e *engine) opMIRP(op Opcode) error {
	cvtEntry, err := e.stack.pop()
	if err != nil {
		return err
	}
	// The entry is biased by one so that -1 selects a zero distance.
	cvtEntry++
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	var cvtDist fixed.Int26_6
	if cvtEntry != 0 {
		cvtDist, err = e.cvtGet(int(cvtEntry) - 1)
		if err != nil {
			return err
		}
	}
	g := &e.graphics
	// Single width test.
	if d := cvtDist - g.singleWidth; -g.singleWidthCutin < d && d < g.singleWidthCutin {
		if cvtDist >= 0 {
			cvtDist = g.singleWidth
		} else {
			cvtDist = -g.singleWidth
		}
	}
	if g.zp1 == twilightZone {
		fv := g.freedomVector
		rp0Orig, err := g.zone(g.zp0).originalPoint(g.rp0)
		if err != nil {
			return err
		}
		orig, err := g.zone(g.zp1).originalPtr(int(p))
		if err != nil {
			return err
		}
		orig.X = rp0Orig.X + fixed.Int26_6(mul14(int32(cvtDist), fv.X))
		orig.Y = rp0Orig.Y + fixed.Int26_6(mul14(int32(cvtDist), fv.Y))
		cur, err := g.zone(g.zp1).pointPtr(int(p))
		if err != nil {
			return err
		}
		*cur = *orig
	}
	o1, err := g.zone(g.zp1).originalPoint(int(p))
	if err != nil {
		return err
	}
	o2, err := g.zone(g.zp0).originalPoint(g.rp0)
	if err != nil {
		return err
	}
	origDist := g.dualProject(o1, o2)
	cur, err := g.zone(g.zp1).point(int(p))
	if err != nil {
		return err
	}
	ref, err := g.zone(g.zp0).point(g.rp0)
	if err != nil {
		return err
	}
	curDist := g.project(cur, ref)
	if g.autoFlip && (int32(origDist)^int32(cvtDist)) < 0 {
		cvtDist = -cvtDist
	}
	var distance fixed.Int26_6
	if op&4 != 0 {
		// The cut-in test is only done when both points are in the
		// same zone.
		if g.zp0 == g.zp1 {
			d := cvtDist - origDist
			if d < 0 {
				d = -d
			}
			if d > g.controlValueCutin {
				cvtDist = origDist
			}
		}
		distance = g.round.round(cvtDist)
	} else {
		distance = cvtDist
	}
	if op&8 != 0 {
		if origDist >= 0 {
			if distance < g.minDistance {
				distance = g.minDistance
			}
		} else {
			if distance > -g.minDistance {
				distance = -g.minDistance
			}
		}
	}
	if err := g.movePoint(g.zp1, int(p), distance-curDist); err != nil {
		return err
	}
	g.rp1 = g.rp0
	g.rp2 = int(p)
	if op&16 != 0 {
		g.rp0 = int(p)
	}
	return nil
}

// opIP handles IP (0x39): interpolates loop-counter many points so that
// they keep their original relation to rp1 and rp2. Outside the
// twilight zone the original relation is measured in font units, which
// sidesteps accumulated scaling error.
func (e *engine) opIP() error {
	g := &e.graphics
	inTwilight := e.inTwilight(g.zp0, g.zp1, g.zp2)
	var (
		origBase fixed.Point26_6
		orusBase OutlinePoint
		oldRange int32
	)
	if inTwilight {
		var err error
		origBase, err = g.zone(g.zp0).originalPoint(g.rp1)
		if err != nil {
			return err
		}
		ref, err := g.zone(g.zp1).originalPoint(g.rp2)
		if err != nil {
			return err
		}
		oldRange = int32(g.dualProject(ref, origBase))
	} else {
		orusBase = g.zone(g.zp0).unscaledPoint(g.rp1)
		oldRange = g.dualProjectUnscaled(g.zone(g.zp1).unscaledPoint(g.rp2), orusBase)
	}
	curBase, err := g.zone(g.zp0).point(g.rp1)
	if err != nil {
		return err
	}
	curRef, err := g.zone(g.zp1).point(g.rp2)
	if err != nil {
		return err
	}
	curRange := int32(g.project(curRef, curBase))
	count := e.useLoopCounter()
	for i := 0; i < count; i++ {
		p, err := e.stack.pop()
		if err != nil {
			return err
		}
		var origDist int32
		if inTwilight {
			orig, err := g.zone(g.zp2).originalPoint(int(p))
			if err != nil {
				return err
			}
			origDist = int32(g.dualProject(orig, origBase))
		} else {
			origDist = g.dualProjectUnscaled(g.zone(g.zp2).unscaledPoint(int(p)), orusBase)
		}
		cur, err := g.zone(g.zp2).point(int(p))
		if err != nil {
			return err
		}
		curDist := int32(g.project(cur, curBase))
		var newDist int32
		if origDist != 0 {
			if oldRange != 0 {
				newDist = mulDiv(origDist, curRange, oldRange)
			} else {
				newDist = origDist
			}
		}
		if err := g.movePoint(g.zp2, int(p), fixed.Int26_6(newDist-curDist)); err != nil {
			return err
		}
	}
	return nil
}

// opALIGNPTS handles ALIGNPTS (0x27): moves two points toward each
// other until they project to the same position.
func (e *engine) opALIGNPTS() error {
	p2, err := e.stack.pop()
	if err != nil {
		return err
	}
	p1, err := e.stack.pop()
	if err != nil {
		return err
	}
	g := &e.graphics
	a, err := g.zone(g.zp0).point(int(p2))
	if err != nil {
		return err
	}
	b, err := g.zone(g.zp1).point(int(p1))
	if err != nil {
		return err
	}
	d := g.project(a, b) / 2
	if err := g.movePoint(g.zp1, int(p1), d); err != nil {
		return err
	}
	return g.movePoint(g.zp0, int(p2), -d)
}

// opALIGNRP handles ALIGNRP (0x3C): moves loop-counter many points onto
// the projection of rp0.
func (e *engine) opALIGNRP() error {
	g := &e.graphics
	count := e.useLoopCounter()
	for i := 0; i < count; i++ {
		p, err := e.stack.pop()
		if err != nil {
			return err
		}
		cur, err := g.zone(g.zp1).point(int(p))
		if err != nil {
			return err
		}
		ref, err := g.zone(g.zp0).point(g.rp0)
		if err != nil {
			return err
		}
		if err := g.movePoint(g.zp1, int(p), -g.project(cur, ref)); err != nil {
			return err
		}
	}
	return nil
}

// opISECT handles ISECT (0x0F): moves a point to the intersection of
// the lines A and B. Nearly parallel lines get the midpoint of all four
// line endpoints instead.
func (e *engine) opISECT() error {
	b1, err := e.stack.pop()
	if err != nil {
		return err
	}
	b0, err := e.stack.pop()
	if err != nil {
		return err
	}
	a1, err := e.stack.pop()
	if err != nil {
		return err
	}
	a0, err := e.stack.pop()
	if err != nil {
		return err
	}
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	g := &e.graphics
	pa0, err := g.zone(g.zp1).point(int(a0))
	if err != nil {
		return err
	}
	pa1, err := g.zone(g.zp1).point(int(a1))
	if err != nil {
		return err
	}
	pb0, err := g.zone(g.zp0).point(int(b0))
	if err != nil {
		return err
	}
	pb1, err := g.zone(g.zp0).point(int(b1))
	if err != nil {
		return err
	}
	point, err := g.zone(g.zp2).pointPtr(int(p))
	if err != nil {
		return err
	}
	dax := int32(pa1.X - pa0.X)
	day := int32(pa1.Y - pa0.Y)
	dbx := int32(pb1.X - pb0.X)
	dby := int32(pb1.Y - pb0.Y)
	dx := int32(pb0.X - pa0.X)
	dy := int32(pb0.Y - pa0.Y)
	discriminant := mulDiv(dax, -dby, 0x40) + mulDiv(day, dbx, 0x40)
	dp := mulDiv(dax, dbx, 0x40) + mulDiv(day, dby, 0x40)
	absDisc, absDP := discriminant, dp
	if absDisc < 0 {
		absDisc = -absDisc
	}
	if absDP < 0 {
		absDP = -absDP
	}
	// The discriminant above zero means the angle is at least 3 degrees.
	if 19*absDisc > absDP {
		v := mulDiv(dx, -dby, 0x40) + mulDiv(dy, dbx, 0x40)
		point.X = pa0.X + fixed.Int26_6(mulDiv(v, dax, discriminant))
		point.Y = pa0.Y + fixed.Int26_6(mulDiv(v, day, discriminant))
	} else {
		point.X = (pa0.X + pa1.X + pb0.X + pb1.X) / 4
		point.Y = (pa0.Y + pa1.Y + pb0.Y + pb1.Y) / 4
	}
	return g.zone(g.zp2).touch(int(p), axisBoth)
}

// opGC handles GC[a] (0x46 - 0x47): pushes the projected coordinate of
// a point, from its current or original position.
func (e *engine) opGC(op Opcode) error {
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	g := &e.graphics
	var v fixed.Int26_6
	if op&1 != 0 {
		orig, err := g.zone(g.zp2).originalPoint(int(p))
		if err != nil {
			return err
		}
		v = g.dualProject(orig, fixed.Point26_6{})
	} else {
		cur, err := g.zone(g.zp2).point(int(p))
		if err != nil {
			return err
		}
		v = g.fastProject(cur)
	}
	return e.stack.push(int32(v))
}

// opSCFS handles SCFS (0x48): moves a point so that its projected
// coordinate equals the popped value.
func (e *engine) opSCFS() error {
	value, err := e.stack.pop()
	if err != nil {
		return err
	}
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	g := &e.graphics
	cur, err := g.zone(g.zp2).point(int(p))
	if err != nil {
		return err
	}
	a := g.fastProject(cur)
	if err := g.movePoint(g.zp2, int(p), fixed.Int26_6(value)-a); err != nil {
		return err
	}
	if g.zp2 == twilightZone {
		// Keep the original in sync so later measurements see the move.
		cur, err := g.zone(g.zp2).point(int(p))
		if err != nil {
			return err
		}
		orig, err := g.zone(g.zp2).originalPtr(int(p))
		if err != nil {
			return err
		}
		*orig = cur
	}
	return nil
}

// opMD handles MD[a] (0x49 - 0x4A): measures the distance between two
// points, from their current or original positions.
func (e *engine) opMD(op Opcode) error {
	k, err := e.stack.pop()
	if err != nil {
		return err
	}
	l, err := e.stack.pop()
	if err != nil {
		return err
	}
	g := &e.graphics
	var d fixed.Int26_6
	switch {
	case op&1 != 0:
		p1, err := g.zone(g.zp0).point(int(l))
		if err != nil {
			return err
		}
		p2, err := g.zone(g.zp1).point(int(k))
		if err != nil {
			return err
		}
		d = g.project(p1, p2)
	case e.inTwilight(g.zp0, g.zp1):
		o1, err := g.zone(g.zp0).originalPoint(int(l))
		if err != nil {
			return err
		}
		o2, err := g.zone(g.zp1).originalPoint(int(k))
		if err != nil {
			return err
		}
		d = g.dualProject(o1, o2)
	default:
		u1 := g.zone(g.zp0).unscaledPoint(int(l))
		u2 := g.zone(g.zp1).unscaledPoint(int(k))
		d = fixed.Int26_6(mulFix(g.dualProjectUnscaled(u1, u2), g.unscaledToPixels()))
	}
	return e.stack.push(int32(d))
}

// opUTP handles UTP (0x29): clears the touch flags named by the freedom
// vector.
func (e *engine) opUTP() error {
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	g := &e.graphics
	fv := g.freedomVector
	var axis coordAxis
	switch {
	case fv.X != 0 && fv.Y != 0:
		axis = axisBoth
	case fv.X != 0:
		axis = axisX
	case fv.Y != 0:
		axis = axisY
	default:
		return nil
	}
	return g.zone(g.zp0).untouch(int(p), axis)
}

// opIUP handles IUP[a] (0x30 - 0x31): interpolates the untouched glyph
// zone points along one axis. Under backward compatibility the first
// IUP in each axis is remembered, and once both ran no more outline
// changes are allowed.
func (e *engine) opIUP(op Opcode) error {
	axis := axisY
	if op&1 != 0 {
		axis = axisX
	}
	g := &e.graphics
	if g.backwardCompatibility {
		if g.didIUPx && g.didIUPy {
			return nil
		}
		if axis == axisX {
			g.didIUPx = true
		} else {
			g.didIUPy = true
		}
	}
	return g.zone(glyphZone).iup(axis)
}

// deltaBias returns the ppem bias for one of the three delta exception
// ranges.
func (e *engine) deltaBias(op Opcode) int32 {
	bias := int32(e.graphics.deltaBase)
	switch op {
	case opDELTAP2, opDELTAC2:
		bias += 16
	case opDELTAP3, opDELTAC3:
		bias += 32
	}
	return bias
}

// deltaArg decodes the magnitude of a delta exception argument into a
// 26.6 pixel amount.
func (e *engine) deltaArg(b int32) fixed.Int26_6 {
	b = (b & 0xF) - 8
	if b >= 0 {
		b++
	}
	b *= 1 << (6 - uint(e.graphics.deltaShift))
	return fixed.Int26_6(b)
}

// opDELTAP handles DELTAP1 (0x5D), DELTAP2 (0x71) and DELTAP3 (0x72):
// moves single points at a single ppem. Out-of-range point numbers are
// skipped; some fonts use them to smuggle data past the interpreter.
func (e *engine) opDELTAP(op Opcode) error {
	g := &e.graphics
	pointCount := len(g.zone(g.zp0).points)
	n, err := e.stack.popCount(2)
	if err != nil {
		return err
	}
	bias := e.deltaBias(op)
	for i := 0; i < n; i++ {
		p, err := e.stack.pop()
		if err != nil {
			return err
		}
		b, err := e.stack.pop()
		if err != nil {
			return err
		}
		if p < 0 || int(p) >= pointCount {
			continue
		}
		if c := (b&0xF0)>>4 + bias; g.ppem != c {
			continue
		}
		amount := e.deltaArg(b)
		if g.backwardCompatibility {
			move := false
			if !(g.didIUPx && g.didIUPy) {
				if g.isComposite && g.freedomVector.Y != 0 {
					move = true
				} else {
					touched, err := g.zone(g.zp0).isTouched(int(p), axisY)
					if err != nil {
						return err
					}
					move = touched
				}
			}
			if !move {
				continue
			}
		}
		if err := g.movePoint(g.zp0, int(p), amount); err != nil {
			return err
		}
	}
	return nil
}

// opDELTAC handles DELTAC1 (0x73), DELTAC2 (0x74) and DELTAC3 (0x75):
// adjusts CVT entries at a single ppem.
func (e *engine) opDELTAC(op Opcode) error {
	n, err := e.stack.popCount(2)
	if err != nil {
		return err
	}
	bias := e.deltaBias(op)
	for i := 0; i < n; i++ {
		cvtIx, err := e.stack.pop()
		if err != nil {
			return err
		}
		b, err := e.stack.pop()
		if err != nil {
			return err
		}
		if c := (b&0xF0)>>4 + bias; e.graphics.ppem != c {
			continue
		}
		cur, err := e.cvtGet(int(cvtIx))
		if err != nil {
			return err
		}
		if err := e.cvtSet(int(cvtIx), cur+e.deltaArg(b)); err != nil {
			return err
		}
	}
	return nil
}
