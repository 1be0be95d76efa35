// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

// testGraphicsState builds a three point glyph zone with the freedom
// and projection vectors pointing along (fvx, fvy).
func testGraphicsState(fvx, fvy int32) *graphicsState {
	g := newGraphicsState()
	g.zones[glyphZone] = zone{
		original: []fixed.Point26_6{p26(0, 0), p26(10, 10), p26(20, -42)},
		points:   []fixed.Point26_6{p26(-5, -20), p26(10, 10), p26(20, 20)},
		flags:    make([]PointFlags, 3),
		contours: []uint16{3},
	}
	nx, ny := normalize14(fvx, fvy)
	g.freedomVector = vector14{X: nx, Y: ny}
	g.projVector = vector14{X: nx, Y: ny}
	g.updateProjectionState()
	return &g
}

func p26(x, y fixed.Int26_6) fixed.Point26_6 {
	return fixed.Point26_6{X: x, Y: y}
}

func TestProjectOneAxis(t *testing.T) {
	g := testGraphicsState(1, 0)
	assert.Equal(t, axisX, g.projAxis)
	assert.Equal(t, vector14{X: 0x4000}, g.projVector)
	testCases := []struct {
		v1, v2 fixed.Point26_6
		want   fixed.Int26_6
	}{
		{p26(0, 0), p26(0, 0), 0},
		{p26(100, 100), p26(0, 0), 100},
		{p26(42, 100), p26(100, 0), -58},
		{p26(0, 0), p26(100, 100), -100},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, g.project(tc.v1, tc.v2), "project(%v, %v)", tc.v1, tc.v2)
	}
}

func TestProjectBothAxes(t *testing.T) {
	g := testGraphicsState(0x4000, 0x4000)
	assert.Equal(t, axisBoth, g.projAxis)
	testCases := []struct {
		v1, v2 fixed.Point26_6
		want   fixed.Int26_6
	}{
		{p26(0, 0), p26(0, 0), 0},
		{p26(100, 100), p26(0, 0), 141},
		{p26(42, 100), p26(100, 0), 30},
		{p26(0, 0), p26(100, 100), -141},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, g.project(tc.v1, tc.v2), "project(%v, %v)", tc.v1, tc.v2)
	}
}

func TestSmallFdotpSnapsToOne(t *testing.T) {
	g := newGraphicsState()
	// Nearly perpendicular freedom and projection vectors would make
	// every division by fdotp explode.
	g.freedomVector = vector14{X: 0, Y: 0x3FFF}
	g.projVector = vector14{X: 0x4000, Y: 0}
	g.updateProjectionState()
	assert.Equal(t, int32(0x4000), g.fdotp)
}

func TestMovePointX(t *testing.T) {
	g := testGraphicsState(100, 0)
	origX := g.zones[glyphZone].points[0].X
	dx := fixed.Int26_6(10)
	// Backward compatibility is on by default; x must not move.
	require.NoError(t, g.movePoint(glyphZone, 0, dx))
	assert.Equal(t, origX, g.zones[glyphZone].points[0].X)
	g.backwardCompatibility = false
	require.NoError(t, g.movePoint(glyphZone, 0, dx))
	assert.Equal(t, origX+dx, g.zones[glyphZone].points[0].X)
}

func TestMovePointY(t *testing.T) {
	g := testGraphicsState(0, 100)
	origY := g.zones[glyphZone].points[0].Y
	dy := fixed.Int26_6(10)
	// Movement in y stops after IUP ran in both directions.
	g.didIUPx = true
	g.didIUPy = true
	require.NoError(t, g.movePoint(glyphZone, 0, dy))
	assert.Equal(t, origY, g.zones[glyphZone].points[0].Y)
	g.didIUPx = false
	g.didIUPy = false
	require.NoError(t, g.movePoint(glyphZone, 0, dy))
	assert.Equal(t, origY+dy, g.zones[glyphZone].points[0].Y)
}

func TestMovePointXAndY(t *testing.T) {
	g := testGraphicsState(100, 50)
	orig := g.zones[glyphZone].points[0]
	dist := fixed.Int26_6(10)
	g.didIUPx = true
	g.didIUPy = true
	require.NoError(t, g.movePoint(glyphZone, 0, dist))
	assert.Equal(t, orig, g.zones[glyphZone].points[0])
	g.backwardCompatibility = false
	g.didIUPx = false
	g.didIUPy = false
	require.NoError(t, g.movePoint(glyphZone, 0, dist))
	assert.Equal(t, p26(4, -16), g.zones[glyphZone].points[0])
}

func TestMoveOriginal(t *testing.T) {
	testCases := []struct {
		desc     string
		fvx, fvy int32
		want     fixed.Point26_6
	}{
		{"x only", 100, 0, p26(10, 0)},
		{"y only", 0, 100, p26(0, 10)},
		{"x and y", 100, 50, p26(9, 4)},
	}
	for _, tc := range testCases {
		g := testGraphicsState(tc.fvx, tc.fvy)
		require.NoError(t, g.moveOriginal(glyphZone, 0, 10), tc.desc)
		assert.Equal(t, tc.want, g.zones[glyphZone].original[0], tc.desc)
	}
}

func TestMoveZp2Point(t *testing.T) {
	g := testGraphicsState(100, 50)
	orig := g.zones[glyphZone].points[0]
	dx, dy := fixed.Int26_6(10), fixed.Int26_6(-10)
	g.didIUPx = true
	g.didIUPy = true
	require.NoError(t, g.moveZp2Point(0, dx, dy, false))
	assert.Equal(t, orig, g.zones[glyphZone].points[0])
	g.backwardCompatibility = false
	g.didIUPx = false
	g.didIUPy = false
	require.NoError(t, g.moveZp2Point(0, dx, dy, false))
	assert.Equal(t, p26(orig.X+dx, orig.Y+dy), g.zones[glyphZone].points[0])
}

func TestPointDisplacement(t *testing.T) {
	g := testGraphicsState(100, 50)
	g.rp1 = 0
	pd, err := g.pointDisplacement(1)
	require.NoError(t, err)
	assert.Equal(t, pointDisplacement{zone: glyphZone, point: 0, dx: -12, dy: -6}, pd)
	g.rp2 = 2
	pd, err = g.pointDisplacement(0)
	require.NoError(t, err)
	assert.Equal(t, pointDisplacement{zone: glyphZone, point: 2, dx: 25, dy: 13}, pd)
}

func TestGraphicsStateReset(t *testing.T) {
	g := testGraphicsState(100, 50)
	g.loopCounter = 7
	g.rp0 = 2
	g.zp0 = twilightZone
	g.minDistance = 128
	g.isComposite = true
	g.reset()
	assert.Equal(t, uint32(1), g.loopCounter)
	assert.Equal(t, 0, g.rp0)
	assert.Equal(t, glyphZone, g.zp0)
	// Retained registers, zones and the composite flag survive a reset.
	assert.Equal(t, fixed.Int26_6(128), g.minDistance)
	assert.True(t, g.isComposite)
	assert.Len(t, g.zones[glyphZone].points, 3)
	assert.Equal(t, vector14{X: 0x4000}, g.freedomVector)
}

func TestResetRetained(t *testing.T) {
	g := newGraphicsState()
	g.scale = 1 << 14
	g.ppem = 16
	g.target = TargetLight
	g.minDistance = 128
	g.deltaBase = 12
	g.resetRetained()
	assert.Equal(t, int32(1<<14), g.scale)
	assert.Equal(t, int32(16), g.ppem)
	assert.Equal(t, TargetLight, g.target)
	assert.Equal(t, fixed.Int26_6(64), g.minDistance)
	assert.Equal(t, uint16(9), g.deltaBase)
}
