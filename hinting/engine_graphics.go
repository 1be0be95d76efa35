// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import "golang.org/x/image/math/fixed"

// This file implements the instructions that read and write the
// graphics state: the vector setters, the reference point and zone
// pointer setters, the scalar registers and GETINFO.

// opSVTCA handles SVTCA[a], SPVTCA[a] and SFVTCA[a] (0x00 - 0x05),
// which set the projection and/or freedom vector to a coordinate axis.
// The low opcode bit selects the axis (1 = x, 0 = y).
func (e *engine) opSVTCA(op Opcode) error {
	x := int32(op&1) << 14
	y := x ^ 0x4000
	v := vector14{X: x, Y: y}
	// Opcodes below 4 set the projection vector.
	if op < 4 {
		e.graphics.projVector = v
		e.graphics.dualProjVector = v
	}
	// Opcodes with bit 2 unset set the freedom vector.
	if op&2 == 0 {
		e.graphics.freedomVector = v
	}
	e.graphics.updateProjectionState()
	return nil
}

// lineVector computes the normalized vector parallel or perpendicular
// to the line from p2 to p1. Coincident points yield the x axis.
func lineVector(p1, p2 fixed.Point26_6, parallel bool) vector14 {
	a := int32(p1.X - p2.X)
	b := int32(p1.Y - p2.Y)
	if a == 0 && b == 0 {
		a = 0x4000
	} else if !parallel {
		// Rotate counter-clockwise by 90 degrees.
		a, b = -b, a
	}
	nx, ny := normalize14(a, b)
	return vector14{X: nx, Y: ny}
}

// opSVTL handles SPVTL[a] (0x06 - 0x07) and SFVTL[a] (0x08 - 0x09),
// which set the projection or freedom vector to a line between two
// points. The low opcode bit selects perpendicular over parallel.
func (e *engine) opSVTL(op Opcode) error {
	index1, err := e.stack.pop()
	if err != nil {
		return err
	}
	index2, err := e.stack.pop()
	if err != nil {
		return err
	}
	p1, err := e.graphics.zone(e.graphics.zp1).point(int(index2))
	if err != nil {
		return err
	}
	p2, err := e.graphics.zone(e.graphics.zp2).point(int(index1))
	if err != nil {
		return err
	}
	v := lineVector(p1, p2, op&1 == 0)
	if op < 8 {
		e.graphics.projVector = v
		e.graphics.dualProjVector = v
	} else {
		e.graphics.freedomVector = v
	}
	e.graphics.updateProjectionState()
	return nil
}

// opSDPVTL handles SDPVTL[a] (0x86 - 0x87). The dual projection vector
// is set from the original positions of the two points, the projection
// vector from their current positions.
func (e *engine) opSDPVTL(op Opcode) error {
	index1, err := e.stack.pop()
	if err != nil {
		return err
	}
	index2, err := e.stack.pop()
	if err != nil {
		return err
	}
	parallel := op&1 == 0
	zp1 := e.graphics.zone(e.graphics.zp1)
	zp2 := e.graphics.zone(e.graphics.zp2)
	o1, err := zp1.originalPoint(int(index2))
	if err != nil {
		return err
	}
	o2, err := zp2.originalPoint(int(index1))
	if err != nil {
		return err
	}
	e.graphics.dualProjVector = lineVector(o1, o2, parallel)
	p1, err := zp1.point(int(index2))
	if err != nil {
		return err
	}
	p2, err := zp2.point(int(index1))
	if err != nil {
		return err
	}
	e.graphics.projVector = lineVector(p1, p2, parallel)
	e.graphics.updateProjectionState()
	return nil
}

// opSFVTPV handles SFVTPV (0x0E).
func (e *engine) opSFVTPV() error {
	e.graphics.freedomVector = e.graphics.projVector
	e.graphics.updateProjectionState()
	return nil
}

// opSPVFS handles SPVFS (0x0A): set the projection vector from two
// 2.14 components on the stack. A zero vector keeps the current one.
func (e *engine) opSPVFS() error {
	y, err := e.stack.pop()
	if err != nil {
		return err
	}
	x, err := e.stack.pop()
	if err != nil {
		return err
	}
	v := e.graphics.projVector
	if x, y := int32(int16(x)), int32(int16(y)); x != 0 || y != 0 {
		nx, ny := normalize14(x, y)
		v = vector14{X: nx, Y: ny}
	}
	e.graphics.projVector = v
	e.graphics.dualProjVector = v
	e.graphics.updateProjectionState()
	return nil
}

// opSFVFS handles SFVFS (0x0B).
func (e *engine) opSFVFS() error {
	y, err := e.stack.pop()
	if err != nil {
		return err
	}
	x, err := e.stack.pop()
	if err != nil {
		return err
	}
	v := e.graphics.freedomVector
	if x, y := int32(int16(x)), int32(int16(y)); x != 0 || y != 0 {
		nx, ny := normalize14(x, y)
		v = vector14{X: nx, Y: ny}
	}
	e.graphics.freedomVector = v
	e.graphics.updateProjectionState()
	return nil
}

// opGPV handles GPV (0x0C).
func (e *engine) opGPV() error {
	if err := e.stack.push(e.graphics.projVector.X); err != nil {
		return err
	}
	return e.stack.push(e.graphics.projVector.Y)
}

// opGFV handles GFV (0x0D).
func (e *engine) opGFV() error {
	if err := e.stack.push(e.graphics.freedomVector.X); err != nil {
		return err
	}
	return e.stack.push(e.graphics.freedomVector.Y)
}

// opSRP handles SRP0, SRP1 and SRP2 (0x10 - 0x12).
func (e *engine) opSRP(op Opcode) error {
	p, err := e.stack.pop()
	if err != nil {
		return err
	}
	switch op {
	case opSRP0:
		e.graphics.rp0 = int(p)
	case opSRP1:
		e.graphics.rp1 = int(p)
	default:
		e.graphics.rp2 = int(p)
	}
	return nil
}

// opSZP handles SZP0, SZP1, SZP2 and SZPS (0x13 - 0x16).
func (e *engine) opSZP(op Opcode) error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	zp, err := zonePointerFromInt(n)
	if err != nil {
		return err
	}
	switch op {
	case opSZP0:
		e.graphics.zp0 = zp
	case opSZP1:
		e.graphics.zp1 = zp
	case opSZP2:
		e.graphics.zp2 = zp
	default:
		e.graphics.zp0 = zp
		e.graphics.zp1 = zp
		e.graphics.zp2 = zp
	}
	return nil
}

// opSLOOP handles SLOOP (0x17). As in FreeType, the loop counter is
// heuristically limited to 16 bits.
func (e *engine) opSLOOP() error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	if n < 0 {
		return ErrNegativeLoopCounter
	}
	if n > 0xFFFF {
		n = 0xFFFF
	}
	e.graphics.loopCounter = uint32(n)
	return nil
}

// opSMD handles SMD (0x1A).
func (e *engine) opSMD() error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	e.graphics.minDistance = fixed.Int26_6(n)
	return nil
}

// opSCVTCI handles SCVTCI (0x1D).
func (e *engine) opSCVTCI() error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	e.graphics.controlValueCutin = fixed.Int26_6(n)
	return nil
}

// opSSWCI handles SSWCI (0x1E).
func (e *engine) opSSWCI() error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	e.graphics.singleWidthCutin = fixed.Int26_6(n)
	return nil
}

// opSSW handles SSW (0x1F). The single width is given in font units
// and stored scaled to pixels.
func (e *engine) opSSW() error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	e.graphics.singleWidth = fixed.Int26_6(mulFix(n, e.graphics.scale))
	return nil
}

// opSDB handles SDB (0x5E).
func (e *engine) opSDB() error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	e.graphics.deltaBase = uint16(n)
	return nil
}

// opSDS handles SDS (0x5F). A delta shift beyond 6 would scale the
// exception below the 26.6 resolution.
func (e *engine) opSDS() error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	if uint32(n) > 6 {
		return invalidStackValue(n)
	}
	e.graphics.deltaShift = uint16(n)
	return nil
}

// opSROUND handles SROUND (0x76) and S45ROUND (0x77). The grid period
// is one pixel for SROUND and sqrt(2)/2 for S45ROUND.
func (e *engine) opSROUND(gridPeriod int32, mode roundingMode) error {
	selector, err := e.stack.pop()
	if err != nil {
		return err
	}
	e.graphics.round.superRound(gridPeriod, selector)
	e.graphics.round.mode = mode
	return nil
}

// opINSTCTRL handles INSTCTRL (0x8E). Meant for the control value
// program; glyph programs may only use selector 3, which temporarily
// toggles backward compatibility for native ClearType fonts.
func (e *engine) opINSTCTRL() error {
	selector, err := e.stack.pop()
	if err != nil {
		return err
	}
	value, err := e.stack.pop()
	if err != nil {
		return err
	}
	// Selectors are indices starting at 1, not flags.
	flag := int32(1) << uint(selector-1)
	if selector < 1 || selector > 3 || (value != 0 && value != flag) {
		return nil
	}
	if selector == 3 && e.graphics.target.preserveLinearMetrics() {
		return nil
	}
	switch {
	case e.program.initial == ControlValueProgram:
		e.graphics.instructControl &^= uint8(flag)
		e.graphics.instructControl |= uint8(value)
	case e.program.initial == GlyphProgram && selector == 3:
		e.graphics.backwardCompatibility = value != 4
	}
	return nil
}

// opSCANCTRL handles SCANCTRL (0x85). Bits 0-7 of the popped flags are
// a ppem threshold; bits 8-10 turn dropout control on and bits 11-13
// turn it off under the named conditions.
func (e *engine) opSCANCTRL() error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	threshold := n & 0xFF
	switch threshold {
	case 0xFF:
		e.graphics.scanControl = true
	case 0:
		e.graphics.scanControl = false
	default:
		g := &e.graphics
		if n&0x100 != 0 && g.ppem <= threshold {
			g.scanControl = true
		}
		if n&0x200 != 0 && g.isRotated {
			g.scanControl = true
		}
		if n&0x400 != 0 && g.isStretched {
			g.scanControl = true
		}
		if n&0x800 != 0 && g.ppem > threshold {
			g.scanControl = false
		}
		if n&0x1000 != 0 && g.isRotated {
			g.scanControl = false
		}
		if n&0x2000 != 0 && g.isStretched {
			g.scanControl = false
		}
	}
	return nil
}

// opSCANTYPE handles SCANTYPE (0x8D).
func (e *engine) opSCANTYPE() error {
	n, err := e.stack.pop()
	if err != nil {
		return err
	}
	e.graphics.scanType = n & 0xFFFF
	return nil
}

// opGETINFO handles GETINFO (0x88).
//
// The selector bits checked for the smooth-rendering result flags match
// FreeType, including the long-standing oddity that bit 15 (vertical
// LCD) answers to selector bit 0 rather than its own selector bit.
func (e *engine) opGETINFO() error {
	selector, err := e.stack.pop()
	if err != nil {
		return err
	}
	var result int32
	// Interpreter version.
	if selector&1 != 0 {
		if e.v35 {
			result = 35
		} else {
			result = 42
		}
	}
	if selector&2 != 0 && e.graphics.isRotated {
		result |= 1 << 8
	}
	if selector&4 != 0 && e.graphics.isStretched {
		result |= 1 << 9
	}
	if selector&8 != 0 && e.axisCount != 0 {
		result |= 1 << 10
	}
	if !e.v35 && e.graphics.target.isSmooth() {
		// Subpixel hinting is always enabled.
		if selector&64 != 0 {
			result |= 1 << 13
		}
		if selector&1 != 0 && e.graphics.target.isVerticalLCD() {
			result |= 1 << 15
		}
		// Subpixel positioning is always enabled.
		if selector&1024 != 0 {
			result |= 1 << 17
		}
		if selector&2048 != 0 && !e.graphics.target.preserveLinearMetrics() {
			result |= 1 << 18
		}
		if selector&4096 != 0 && e.graphics.target.isGrayscaleCleartype() {
			result |= 1 << 19
		}
	}
	return e.stack.push(result)
}

// opGETVARIATION handles GETVARIATION (0x91): pushes the normalized
// design space coordinates, one 2.14 value per axis. On a non-variable
// font the opcode keeps its IDEF meaning, if any.
func (e *engine) opGETVARIATION() error {
	if e.axisCount == 0 {
		return e.opUnknown(opGETVARIATION)
	}
	for i := 0; i < e.axisCount; i++ {
		var coord int32
		if i < len(e.coords) {
			coord = e.coords[i]
		}
		if err := e.stack.push(coord); err != nil {
			return err
		}
	}
	return nil
}

// opGETDATA handles GETDATA (0x92), which is undocumented and only
// assigned on variable fonts, where it pushes 17.
func (e *engine) opGETDATA() error {
	if e.axisCount == 0 {
		return e.opUnknown(opGETDATA)
	}
	return e.stack.push(17)
}

// opMPS handles MPS (0x4C). The legacy interpreter pushed the ppem
// instead of the point size, and fonts calibrated against it expect
// that.
func (e *engine) opMPS() error {
	if e.v35 {
		return e.stack.push(e.graphics.ppem)
	}
	return e.stack.push(int32(e.pointSize))
}
