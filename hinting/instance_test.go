// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

var testLimits = Limits{
	MaxStackElements:   32,
	MaxStorage:         8,
	MaxFunctionDefs:    8,
	MaxInstructionDefs: 8,
	MaxTwilightPoints:  4,
}

// testOutline builds a two point outline followed by the four phantom
// points.
func testOutline(bytecode []byte) *Outline {
	points := []fixed.Point26_6{
		{X: 100, Y: 0},
		{X: 500, Y: 100},
		// Phantom points.
		{X: 0, Y: 0},
		{X: 600, Y: 0},
		{X: 0, Y: 0},
		{X: 0, Y: 64},
	}
	unscaled := make([]OutlinePoint, len(points))
	for i, p := range points {
		unscaled[i] = OutlinePoint{X: int32(p.X), Y: int32(p.Y)}
	}
	return &Outline{
		GlyphID:  7,
		Unscaled: unscaled,
		Original: append([]fixed.Point26_6(nil), points...),
		Points:   append([]fixed.Point26_6(nil), points...),
		Flags:    make([]PointFlags, len(points)),
		Contours: []uint16{1},
		Bytecode: bytecode,
	}
}

func TestInstanceReconfigureAndHint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.hinting")
	defer teardown()

	// The font program defines function 0, which moves point 0 to the
	// position in cvt entry 0.
	fpgm := []byte{
		byte(opPUSHB000), 0,
		byte(opFDEF),
		byte(opPUSHB001), 0, 0,
		byte(opMIAP0),
		byte(opENDF),
	}
	// The control value program overwrites cvt entry 0 with 200 (in
	// 26.6 pixels), which persists for every glyph.
	prep := []byte{
		byte(opPUSHB001), 0, 200,
		byte(opWCVTP),
	}
	inst := NewInstance(fpgm, prep, []int32{100}, Config{Limits: testLimits})
	require.NoError(t, inst.Reconfigure(1<<16, 12, TargetMono, nil))
	assert.True(t, inst.Enabled())
	assert.False(t, inst.BackwardCompatibility())

	glyph := []byte{byte(opPUSHB000), 0, byte(opCALL)}
	outline := testOutline(glyph)
	require.NoError(t, inst.Hint(outline, false))

	want := testOutline(nil).Points
	want[0].X = 200
	if diff := cmp.Diff(want, outline.Points); diff != "" {
		t.Errorf("hinted points mismatch (-want +got):\n%s", diff)
	}
	// With backward compatibility off the phantom points are captured.
	assert.Equal(t, outline.Points[2:6], outline.Phantom[:])
}

func TestInstanceCvtWritesDoNotPersist(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.hinting")
	defer teardown()

	prep := []byte{
		byte(opPUSHB001), 0, 200,
		byte(opWCVTP),
	}
	inst := NewInstance(nil, prep, []int32{0}, Config{Limits: testLimits})
	require.NoError(t, inst.Reconfigure(1<<16, 12, TargetMono, nil))

	// The first glyph scribbles over cvt entry 0 and storage cell 0.
	scribble := []byte{
		byte(opPUSHB001), 0, 50,
		byte(opWCVTP),
		byte(opPUSHB001), 0, 99,
		byte(opWS),
	}
	require.NoError(t, inst.Hint(testOutline(scribble), false))

	// The second glyph still sees the state the control value program
	// computed.
	read := []byte{
		byte(opPUSHB001), 0, 0,
		byte(opMIAP0),
	}
	outline := testOutline(read)
	require.NoError(t, inst.Hint(outline, false))
	assert.Equal(t, fixed.Int26_6(200), outline.Points[0].X)
}

func TestInstanceBackwardCompatibilitySuppressesX(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.hinting")
	defer teardown()

	prep := []byte{
		byte(opPUSHB001), 0, 200,
		byte(opWCVTP),
	}
	inst := NewInstance(nil, prep, []int32{0}, Config{Limits: testLimits})
	require.NoError(t, inst.Reconfigure(1<<16, 12, TargetSmooth, nil))
	assert.True(t, inst.BackwardCompatibility())

	glyph := []byte{
		byte(opPUSHB001), 0, 0,
		byte(opMIAP0),
	}
	outline := testOutline(glyph)
	require.NoError(t, inst.Hint(outline, false))
	// The program ran, but horizontal moves are suppressed and the
	// phantom points stay linear.
	assert.Equal(t, fixed.Int26_6(100), outline.Points[0].X)
	assert.Equal(t, [4]fixed.Point26_6{}, outline.Phantom)
}

func TestInstanceDisabledByInstructControl(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.hinting")
	defer teardown()

	prep := []byte{
		byte(opPUSHB001), 1, 1,
		byte(opINSTCTRL),
	}
	inst := NewInstance(nil, prep, nil, Config{Limits: testLimits})
	require.NoError(t, inst.Reconfigure(1<<16, 12, TargetMono, nil))
	assert.False(t, inst.Enabled())

	outline := testOutline([]byte{0x83}) // would fail if it ran
	require.NoError(t, inst.Hint(outline, false))
	assert.Equal(t, testOutline(nil).Points, outline.Points)
}

func TestInstancePoisonedByFontProgramFailure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.hinting")
	defer teardown()

	inst := NewInstance([]byte{0x83}, nil, nil, Config{Limits: testLimits})
	err := inst.Reconfigure(1<<16, 12, TargetMono, nil)
	require.ErrorIs(t, err, ErrUnhandledOpcode)
	pe := &ProgramError{}
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, FontProgram, pe.Program)

	// Hinting reports the same failure until a Reconfigure succeeds.
	assert.Equal(t, err, inst.Hint(testOutline(nil), false))
}

func TestInstanceHintErrorNamesGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.hinting")
	defer teardown()

	inst := NewInstance(nil, nil, nil, Config{Limits: testLimits})
	require.NoError(t, inst.Reconfigure(1<<16, 12, TargetMono, nil))

	outline := testOutline([]byte{0x83})
	err := inst.Hint(outline, true)
	require.ErrorIs(t, err, ErrUnhandledOpcode)
	pe := &ProgramError{}
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, GlyphProgram, pe.Program)
	assert.Equal(t, uint16(7), pe.GlyphID)
	assert.Contains(t, err.Error(), "glyph 7")
}

func TestInstancePedanticHint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.hinting")
	defer teardown()

	inst := NewInstance(nil, nil, nil, Config{Limits: testLimits})
	require.NoError(t, inst.Reconfigure(1<<16, 12, TargetMono, nil))

	// Popping an empty stack is forgiven by default and fatal in
	// pedantic mode.
	outline := testOutline([]byte{byte(opPOP)})
	require.NoError(t, inst.Hint(outline, false))
	err := inst.Hint(outline, true)
	assert.ErrorIs(t, err, ErrValueStackUnderflow)
}

func TestInstanceFunctionsSurviveReconfigure(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.hinting")
	defer teardown()

	fpgm := []byte{
		byte(opPUSHB000), 0,
		byte(opFDEF),
		byte(opPUSHB001), 0, 0,
		byte(opMIAP0),
		byte(opENDF),
	}
	prep := []byte{
		byte(opPUSHB001), 0, 200,
		byte(opWCVTP),
	}
	inst := NewInstance(fpgm, prep, []int32{0}, Config{Limits: testLimits})
	require.NoError(t, inst.Reconfigure(1<<16, 12, TargetMono, nil))
	require.NoError(t, inst.Reconfigure(2<<16, 24, TargetMono, nil))

	outline := testOutline([]byte{byte(opPUSHB000), 0, byte(opCALL)})
	require.NoError(t, inst.Hint(outline, false))
	assert.Equal(t, fixed.Int26_6(200), outline.Points[0].X)
}

// FuzzHint feeds arbitrary bytecode to a glyph program. Whatever the
// bytes, Hint must terminate and return nil or a typed error; the
// interpreter never panics and never loops forever.
func FuzzHint(f *testing.F) {
	f.Add([]byte{byte(opPUSHB000), 0, byte(opMIAP0)}, false)
	// Infinite backward jump, stopped by the loop budget.
	f.Add([]byte{byte(opPUSHW000), 0xFF, 0xFD, byte(opJMPR)}, false)
	// IF with no matching EIF.
	f.Add([]byte{byte(opPUSHB000), 0, byte(opIF)}, true)
	// Definitions are not allowed in glyph programs.
	f.Add([]byte{byte(opPUSHB000), 0, byte(opFDEF)}, false)
	// Delta exception count far beyond the actual stack contents.
	f.Add([]byte{byte(opPUSHB001), 0x3C, 0, byte(opPUSHW000), 0x7F, 0xFF, byte(opDELTAP1)}, false)
	// Truncated push and an unassigned opcode.
	f.Add([]byte{byte(opNPUSHW), 200, 1}, true)
	f.Add([]byte{0x83, 0x28}, false)
	f.Fuzz(func(t *testing.T, bytecode []byte, pedantic bool) {
		inst := NewInstance(nil, nil, []int32{0, 64}, Config{Limits: testLimits})
		if err := inst.Reconfigure(1<<16, 12, TargetMono, nil); err != nil {
			t.Fatal(err)
		}
		outline := testOutline(bytecode)
		if err := inst.Hint(outline, pedantic); err != nil {
			pe := &ProgramError{}
			require.ErrorAs(t, err, &pe)
		}
	})
}
