// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import "golang.org/x/image/math/fixed"

// vector14 is a unit vector in 2.14 fixed point.
type vector14 struct {
	X, Y int32
}

// Target is the rendering target the hint programs are being run for.
// Several instructions (GETINFO, the backward compatibility heuristics)
// change behavior with it.
type Target uint8

const (
	// TargetSmooth is grayscale antialiased rendering.
	TargetSmooth Target = iota
	// TargetMono is black and white rendering with full hinting.
	TargetMono
	// TargetLCD is antialiased rendering for horizontal RGB stripes.
	TargetLCD
	// TargetVerticalLCD is antialiased rendering for vertical stripes.
	TargetVerticalLCD
	// TargetLight is like TargetSmooth but keeps the unhinted advance
	// widths, hinting in the vertical direction only.
	TargetLight
)

func (t Target) isSmooth() bool {
	return t != TargetMono
}

func (t Target) preserveLinearMetrics() bool {
	return t == TargetLight
}

func (t Target) isVerticalLCD() bool {
	return t == TargetVerticalLCD
}

func (t Target) isGrayscaleCleartype() bool {
	return t == TargetSmooth || t == TargetLight
}

// retainedState is the portion of the graphics state that the control
// value program sets and that persists across runs of the interpreter
// for the same instance.
//
// Defaults per the TrueType graphics state table.
type retainedState struct {
	autoFlip          bool
	controlValueCutin fixed.Int26_6
	deltaBase         uint16
	deltaShift        uint16
	instructControl   uint8
	minDistance       fixed.Int26_6
	scanControl       bool
	scanType          int32
	singleWidthCutin  fixed.Int26_6
	singleWidth       fixed.Int26_6
	target            Target
	// scale converts font units to 26.6 pixels, in 16.16.
	scale int32
	ppem  int32
	// isRotated and isStretched describe the transform the instance was
	// created with; GETINFO reports them.
	isRotated   bool
	isStretched bool
}

func newRetainedState() retainedState {
	return retainedState{
		autoFlip:          true,
		controlValueCutin: 68, // 17/16 pixels
		deltaBase:         9,
		deltaShift:        3,
		minDistance:       64, // one pixel
	}
}

// graphicsState is the interpreter's full graphics state: the retained
// registers plus everything that resets between programs.
type graphicsState struct {
	retainedState

	projVector     vector14
	projAxis       coordAxis
	dualProjVector vector14
	dualProjAxis   coordAxis
	freedomVector  vector14
	freedomAxis    coordAxis
	// fdotp is the dot product of the freedom and projection vectors,
	// in 2.14. Movement along the freedom vector divides by it.
	fdotp int32

	round roundState

	rp0, rp1, rp2 int
	loopCounter   uint32
	zp0, zp1, zp2 zonePointer
	zones         [2]zone

	isComposite bool
	// backwardCompatibility suppresses horizontal moves (and vertical
	// moves after IUP in both directions) so that "modern" vertical-only
	// hinting keeps outline shape and metrics in the direction where
	// subpixel rendering does a better job. ClearType native fonts opt
	// out with INSTCTRL.
	backwardCompatibility bool
	isPedantic            bool
	didIUPx, didIUPy      bool
}

func newGraphicsState() graphicsState {
	axis := vector14{X: 0x4000}
	return graphicsState{
		retainedState:         newRetainedState(),
		projVector:            axis,
		dualProjVector:        axis,
		freedomVector:         axis,
		fdotp:                 0x4000,
		round:                 newRoundState(),
		loopCounter:           1,
		zp0:                   glyphZone,
		zp1:                   glyphZone,
		zp2:                   glyphZone,
		backwardCompatibility: true,
	}
}

// reset restores the non-retained portion of the graphics state to its
// defaults at the start of a program.
func (g *graphicsState) reset() {
	retained := g.retainedState
	zones := g.zones
	isComposite := g.isComposite
	*g = newGraphicsState()
	g.retainedState = retained
	g.zones = zones
	g.isComposite = isComposite
	g.updateProjectionState()
}

// resetRetained restores the retained registers to their defaults while
// keeping the per-instance scale, ppem and target.
func (g *graphicsState) resetRetained() {
	scale := g.scale
	ppem := g.ppem
	target := g.target
	g.retainedState = newRetainedState()
	g.scale = scale
	g.ppem = ppem
	g.target = target
}

// unscaledToPixels returns the factor for scaling unscaled points to
// pixels. Composite glyph components arrive already scaled, so the
// factor is the identity there.
func (g *graphicsState) unscaledToPixels() int32 {
	if g.isComposite {
		return 1 << 16
	}
	return g.scale
}

func (g *graphicsState) zone(p zonePointer) *zone {
	return &g.zones[p]
}

// updateProjectionState recomputes the state derived from the freedom
// and projection vectors: the dot product and the axis fast paths.
func (g *graphicsState) updateProjectionState() {
	const one = 0x4000 // 1.0 in 2.14
	if g.freedomVector.X == one {
		g.fdotp = g.projVector.X
	} else if g.freedomVector.Y == one {
		g.fdotp = g.projVector.Y
	} else {
		px, py := g.projVector.X, g.projVector.Y
		fx, fy := g.freedomVector.X, g.freedomVector.Y
		g.fdotp = (px*fx + py*fy) >> 14
	}
	g.projAxis = axisBoth
	if g.projVector.X == one {
		g.projAxis = axisX
	} else if g.projVector.Y == one {
		g.projAxis = axisY
	}
	g.dualProjAxis = axisBoth
	if g.dualProjVector.X == one {
		g.dualProjAxis = axisX
	} else if g.dualProjVector.Y == one {
		g.dualProjAxis = axisY
	}
	g.freedomAxis = axisBoth
	if g.fdotp == one {
		if g.freedomVector.X == one {
			g.freedomAxis = axisX
		} else if g.freedomVector.Y == one {
			g.freedomAxis = axisY
		}
	}
	// At small sizes fdotp can become too small, producing overflows
	// and spikes when dividing by it.
	if g.fdotp > -0x400 && g.fdotp < 0x400 {
		g.fdotp = one
	}
}

// project measures v1 - v2 along the projection vector.
func (g *graphicsState) project(v1, v2 fixed.Point26_6) fixed.Int26_6 {
	switch g.projAxis {
	case axisX:
		return v1.X - v2.X
	case axisY:
		return v1.Y - v2.Y
	}
	dx := int32(v1.X - v2.X)
	dy := int32(v1.Y - v2.Y)
	return fixed.Int26_6(dot14(dx, dy, g.projVector.X, g.projVector.Y))
}

// fastProject projects a point against the origin.
func (g *graphicsState) fastProject(v fixed.Point26_6) fixed.Int26_6 {
	return g.project(v, fixed.Point26_6{})
}

// dualProject measures v1 - v2 along the dual projection vector, which
// tracks the outline as it was before any instructions ran.
func (g *graphicsState) dualProject(v1, v2 fixed.Point26_6) fixed.Int26_6 {
	switch g.dualProjAxis {
	case axisX:
		return v1.X - v2.X
	case axisY:
		return v1.Y - v2.Y
	}
	dx := int32(v1.X - v2.X)
	dy := int32(v1.Y - v2.Y)
	return fixed.Int26_6(dot14(dx, dy, g.dualProjVector.X, g.dualProjVector.Y))
}

// dualProjectUnscaled is dualProject for font unit points.
func (g *graphicsState) dualProjectUnscaled(v1, v2 OutlinePoint) int32 {
	switch g.dualProjAxis {
	case axisX:
		return v1.X - v2.X
	case axisY:
		return v1.Y - v2.Y
	}
	return dot14(v1.X-v2.X, v1.Y-v2.Y, g.dualProjVector.X, g.dualProjVector.Y)
}

// moveOriginal moves an original point by the given distance along the
// freedom vector. Original points carry no touch flags and ignore the
// backward compatibility heuristics.
func (g *graphicsState) moveOriginal(zp zonePointer, i int, distance fixed.Int26_6) error {
	fv := g.freedomVector
	fdotp := g.fdotp
	axis := g.freedomAxis
	point, err := g.zone(zp).originalPtr(i)
	if err != nil {
		return err
	}
	switch axis {
	case axisX:
		point.X += distance
	case axisY:
		point.Y += distance
	default:
		if fv.X != 0 {
			point.X += fixed.Int26_6(mulDiv(int32(distance), fv.X, fdotp))
		}
		if fv.Y != 0 {
			point.Y += fixed.Int26_6(mulDiv(int32(distance), fv.Y, fdotp))
		}
	}
	return nil
}

// movePoint moves a current point by the given distance along the
// freedom vector, marking the moved axes touched. Under backward
// compatibility, x never moves and y stops moving once IUP has run in
// both directions; the touch flags are still set.
func (g *graphicsState) movePoint(zp zonePointer, i int, distance fixed.Int26_6) error {
	backCompat := g.backwardCompatibility
	backCompatAndDidIUP := backCompat && g.didIUPx && g.didIUPy
	zone := g.zone(zp)
	point, err := zone.pointPtr(i)
	if err != nil {
		return err
	}
	switch g.freedomAxis {
	case axisX:
		if !backCompat {
			point.X += distance
		}
		return zone.touch(i, axisX)
	case axisY:
		if !backCompatAndDidIUP {
			point.Y += distance
		}
		return zone.touch(i, axisY)
	}
	fv := g.freedomVector
	if fv.X != 0 {
		if !backCompat {
			point.X += fixed.Int26_6(mulDiv(int32(distance), fv.X, g.fdotp))
		}
		if err := zone.touch(i, axisX); err != nil {
			return err
		}
	}
	if fv.Y != 0 {
		if !backCompatAndDidIUP {
			point.Y += fixed.Int26_6(mulDiv(int32(distance), fv.Y, g.fdotp))
		}
		if err := zone.touch(i, axisY); err != nil {
			return err
		}
	}
	return nil
}

// moveZp2Point shifts a point in the zone referenced by zp2 by the
// given deltas, under the same backward compatibility rules as
// movePoint. Used by SHP, SHC, SHZ and SHPIX.
func (g *graphicsState) moveZp2Point(i int, dx, dy fixed.Int26_6, doTouch bool) error {
	backCompat := g.backwardCompatibility
	backCompatAndDidIUP := backCompat && g.didIUPx && g.didIUPy
	fv := g.freedomVector
	zone := g.zone(g.zp2)
	if fv.X != 0 {
		if !backCompat {
			point, err := zone.pointPtr(i)
			if err != nil {
				return err
			}
			point.X += dx
		}
		if doTouch {
			if err := zone.touch(i, axisX); err != nil {
				return err
			}
		}
	}
	if fv.Y != 0 {
		if !backCompatAndDidIUP {
			point, err := zone.pointPtr(i)
			if err != nil {
				return err
			}
			point.Y += dy
		}
		if doTouch {
			if err := zone.touch(i, axisY); err != nil {
				return err
			}
		}
	}
	return nil
}

// pointDisplacement computes how far a reference point has moved from
// its original position, resolved into freedom vector components. The
// low opcode bit of the shift family selects which reference point.
type pointDisplacement struct {
	zone   zonePointer
	point  int
	dx, dy fixed.Int26_6
}

func (g *graphicsState) pointDisplacement(opcode Opcode) (pointDisplacement, error) {
	var (
		zp zonePointer
		i  int
	)
	if opcode&1 != 0 {
		zp, i = g.zp0, g.rp1
	} else {
		zp, i = g.zp1, g.rp2
	}
	zone := g.zone(zp)
	point, err := zone.point(i)
	if err != nil {
		return pointDisplacement{}, err
	}
	original, err := zone.originalPoint(i)
	if err != nil {
		return pointDisplacement{}, err
	}
	distance := g.project(point, original)
	fv := g.freedomVector
	return pointDisplacement{
		zone:  zp,
		point: i,
		dx:    fixed.Int26_6(mulDiv(int32(distance), fv.X, g.fdotp)),
		dy:    fixed.Int26_6(mulDiv(int32(distance), fv.Y, g.fdotp)),
	}, nil
}
