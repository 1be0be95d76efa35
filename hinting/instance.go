// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

// Package hinting implements the TrueType bytecode interpreter: the
// virtual machine that executes the hint programs embedded in a font to
// adjust scaled glyph outlines to the pixel grid.
package hinting

import (
	"errors"

	"golang.org/x/image/math/fixed"
)

// Limits are the interpreter resource limits a font declares in its
// maxp table.
type Limits struct {
	MaxStackElements   int
	MaxStorage         int
	MaxFunctionDefs    int
	MaxInstructionDefs int
	MaxTwilightPoints  int
}

// Config describes the font-wide properties of an Instance.
type Config struct {
	Limits Limits
	// AxisCount is the number of variation axes, zero for a static font.
	AxisCount int
	// V35 selects the legacy rasterizer version 35 behavior.
	V35 bool
	// Rotated and Stretched describe the transform the outlines will be
	// rendered under; GETINFO and SCANCTRL report them.
	Rotated   bool
	Stretched bool
}

// Outline is one scaled glyph outline to be hinted, including the four
// phantom points at the tail of the point slices.
//
// Points is adjusted in place. Original holds the scaled points as they
// were before hinting and Unscaled the font unit points; the glyph
// program measures against both.
type Outline struct {
	GlyphID  uint16
	Unscaled []OutlinePoint
	Original []fixed.Point26_6
	Points   []fixed.Point26_6
	Flags    []PointFlags
	Contours []uint16
	// Bytecode is the glyph program, from the glyf table.
	Bytecode []byte
	// IsComposite marks component outlines, which arrive already scaled
	// and get laxer backward compatibility treatment.
	IsComposite bool
	// Phantom receives the hinted phantom points, for hinted metrics.
	Phantom [4]fixed.Point26_6
}

// Instance carries the state the font and control value programs
// compute for one size and rendering configuration: the scaled CVT, the
// storage area, the function definitions and the twilight zone. One
// Instance hints any number of glyphs sequentially.
type Instance struct {
	fontProgram   []byte
	cvProgram     []byte
	controlValues []int32
	cfg           Config

	functions    []definition
	instructions []definition
	cvt          []int32
	storage      []int32
	stackBuf     []int32
	coords       []int32

	twilightUnscaled []OutlinePoint
	twilightOriginal []fixed.Point26_6
	twilightPoints   []fixed.Point26_6
	twilightFlags    []PointFlags
	twilightContours []uint16

	retained retainedState

	// err poisons the instance when the font or control value program
	// failed; hinting would run on inconsistent state.
	err error
}

// NewInstance creates an instance for a font's fpgm and prep programs
// and its unscaled control values. Reconfigure must be called before
// the first Hint.
func NewInstance(fontProgram, cvProgram []byte, controlValues []int32, cfg Config) *Instance {
	return &Instance{
		fontProgram:   fontProgram,
		cvProgram:     cvProgram,
		controlValues: controlValues,
		cfg:           cfg,
		retained:      newRetainedState(),
	}
}

// setup sizes the instance buffers and scales the control values for
// the given scale (16.16 font units to 26.6 pixels).
func (i *Instance) setup(scale, ppem int32, target Target, coords []int32) {
	limits := i.cfg.Limits
	i.functions = resizeDefs(i.functions, limits.MaxFunctionDefs)
	i.instructions = resizeDefs(i.instructions, limits.MaxInstructionDefs)
	if len(i.cvt) != len(i.controlValues) {
		i.cvt = make([]int32, len(i.controlValues))
	}
	for j, v := range i.controlValues {
		i.cvt[j] = mulFix(v<<6, scale>>6)
	}
	i.storage = make([]int32, limits.MaxStorage)
	i.stackBuf = make([]int32, limits.MaxStackElements)
	i.coords = append(i.coords[:0], coords...)

	n := limits.MaxTwilightPoints
	i.twilightUnscaled = make([]OutlinePoint, n)
	i.twilightOriginal = make([]fixed.Point26_6, n)
	i.twilightPoints = make([]fixed.Point26_6, n)
	i.twilightFlags = make([]PointFlags, n)
	i.twilightContours = []uint16{uint16(n)}

	i.retained = newRetainedState()
	i.retained.scale = scale
	i.retained.ppem = ppem
	i.retained.target = target
	i.retained.isRotated = i.cfg.Rotated
	i.retained.isStretched = i.cfg.Stretched
}

func resizeDefs(defs []definition, n int) []definition {
	if len(defs) != n {
		return make([]definition, n)
	}
	for j := range defs {
		defs[j] = definition{}
	}
	return defs
}

// newEngine assembles an engine over the instance state. The glyph
// program and its zone vary per call; everything else is shared.
func (i *Instance) newEngine(glyphCode []byte, program Program, twilight, glyph zone, cvt, storage cowSlice, pointCount int) engine {
	e := engine{
		program:      newProgramState(i.fontProgram, i.cvProgram, glyphCode, program),
		graphics:     newGraphicsState(),
		functions:    definitionMap{defs: i.functions},
		instructions: definitionMap{defs: i.instructions},
		cvt:          cvt,
		storage:      storage,
		stack:        valueStack{values: i.stackBuf},
		budget:       newLoopBudget(pointCount, len(i.cvt)),
		axisCount:    i.cfg.AxisCount,
		coords:       i.coords,
		pointSize:    fixed.Int26_6(i.retained.ppem * 64),
		v35:          i.cfg.V35,
	}
	e.graphics.retainedState = i.retained
	e.graphics.zones = [2]zone{twilight, glyph}
	return e
}

// Reconfigure prepares the instance for a scale (a 16.16 factor from
// font units to 26.6 pixels), a ppem size, a rendering target and
// variation coordinates: it rebuilds the instance state and runs the
// font and control value programs. A failure in either program poisons
// the instance until the next successful Reconfigure.
func (i *Instance) Reconfigure(scale, ppem int32, target Target, coords []int32) error {
	i.setup(scale, ppem, target, coords)
	twilight := zone{
		unscaled: i.twilightUnscaled,
		original: i.twilightOriginal,
		points:   i.twilightPoints,
		flags:    i.twilightFlags,
		contours: i.twilightContours,
	}
	e := i.newEngine(nil, FontProgram, twilight, zone{},
		newMutCowSlice(i.cvt), newMutCowSlice(i.storage), 0)
	if len(i.fontProgram) > 0 {
		e.reset(FontProgram, false)
		if err := e.run(); err != nil {
			i.err = err
			return err
		}
	}
	if len(i.cvProgram) > 0 {
		e.reset(ControlValueProgram, false)
		if err := e.run(); err != nil {
			i.err = err
			return err
		}
	}
	i.retained = e.graphics.retainedState
	i.err = nil
	return nil
}

// Enabled reports whether glyph programs should run at all. The control
// value program can turn hinting off with INSTCTRL.
func (i *Instance) Enabled() bool {
	return i.retained.instructControl&1 == 0
}

// BackwardCompatibility reports whether glyph programs will start in
// backward compatibility mode under the current configuration.
func (i *Instance) BackwardCompatibility() bool {
	switch {
	case i.retained.target.preserveLinearMetrics():
		return true
	case i.retained.target.isSmooth():
		return i.retained.instructControl&4 == 0
	default:
		return false
	}
}

// Hint runs the outline's glyph program, adjusting its points in
// place. CVT and storage writes made by the program are discarded
// afterwards, as are twilight zone changes; the state computed by
// Reconfigure serves every glyph.
//
// In pedantic mode ill-formed bytecode fails loudly; otherwise the
// interpreter mimics the widely deployed lenient behaviors.
func (i *Instance) Hint(outline *Outline, pedantic bool) error {
	if i.err != nil {
		return i.err
	}
	if !i.Enabled() {
		return nil
	}
	twilight := zone{
		unscaled: i.twilightUnscaled,
		original: append([]fixed.Point26_6(nil), i.twilightOriginal...),
		points:   append([]fixed.Point26_6(nil), i.twilightPoints...),
		flags:    append([]PointFlags(nil), i.twilightFlags...),
		contours: i.twilightContours,
	}
	glyph := zone{
		unscaled: outline.Unscaled,
		original: outline.Original,
		points:   outline.Points,
		flags:    outline.Flags,
		contours: outline.Contours,
	}
	e := i.newEngine(outline.Bytecode, GlyphProgram, twilight, glyph,
		newCowSlice(i.cvt), newCowSlice(i.storage), len(outline.Points))
	e.graphics.isComposite = outline.IsComposite
	e.reset(GlyphProgram, pedantic)
	if err := e.run(); err != nil {
		var pe *ProgramError
		if errors.As(err, &pe) {
			pe.GlyphID = outline.GlyphID
		}
		return err
	}
	// In backward compatibility mode the phantom points were locked in
	// place, so hinted metrics would be meaningless.
	if !e.graphics.backwardCompatibility && len(outline.Points) >= 4 {
		copy(outline.Phantom[:], outline.Points[len(outline.Points)-4:])
	}
	return nil
}
