// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import "golang.org/x/image/math/fixed"

// maxRunInstructions caps a single program run so that hostile or
// broken bytecode always terminates.
const maxRunInstructions = 1000000

// loopBudget limits the instructions that can repeat work: backward
// jumps and loop calls. The budget scales with the outline and CVT
// sizes, so small glyphs cannot burn arbitrary time.
type loopBudget struct {
	limit         int
	backwardJumps int
	loopCalls     int
}

func newLoopBudget(pointCount, cvtLen int) loopBudget {
	var limit int
	if pointCount > 0 {
		a := pointCount * 10
		if a < 50 {
			a = 50
		}
		b := cvtLen / 10
		if b < 50 {
			b = 50
		}
		limit = a + b
	} else {
		limit = 300 + 22*cvtLen
	}
	return loopBudget{limit: limit}
}

func (b *loopBudget) reset() {
	b.backwardJumps = 0
	b.loopCalls = 0
}

func (b *loopBudget) backwardJump() error {
	b.backwardJumps++
	if b.backwardJumps > b.limit {
		return ErrExceededExecutionBudget
	}
	return nil
}

func (b *loopBudget) loopCall(count int) error {
	b.loopCalls += count
	if b.loopCalls > b.limit {
		return ErrExceededExecutionBudget
	}
	return nil
}

// engine is the bytecode interpreter: the program state, the graphics
// state, the two definition tables, the CVT and storage areas and the
// operand stack. An Instance assembles one engine per program run.
type engine struct {
	program      programState
	graphics     graphicsState
	functions    definitionMap
	instructions definitionMap
	cvt          cowSlice
	storage      cowSlice
	stack        valueStack
	budget       loopBudget

	// axisCount and coords describe the variation space, for
	// GETVARIATION and GETDATA.
	axisCount int
	coords    []int32

	// pointSize is the nominal size in 26.6 points, for MPS.
	pointSize fixed.Int26_6
	// v35 selects the legacy interpreter behavior for GETINFO and MPS.
	v35 bool
}

// reset prepares the engine to run the given program from its start,
// applying the per-program entry rules.
func (e *engine) reset(program Program, pedantic bool) {
	e.program.reset(program)
	e.graphics.reset()
	e.graphics.isPedantic = pedantic
	e.stack.pedantic = pedantic
	e.budget.reset()
	// Definitions may only be created by the font and control value
	// programs.
	e.functions.mutable = program != GlyphProgram
	e.instructions.mutable = program != GlyphProgram
	switch program {
	case FontProgram:
		e.functions.reset()
		e.instructions.reset()
	case ControlValueProgram:
		e.graphics.backwardCompatibility = false
	case GlyphProgram:
		// Instruct control bit 1 reverts the retained graphics state
		// to its defaults for this glyph.
		if e.graphics.instructControl&2 != 0 {
			e.graphics.resetRetained()
		}
		switch {
		case e.graphics.target.preserveLinearMetrics():
			e.graphics.backwardCompatibility = true
		case e.graphics.target.isSmooth():
			e.graphics.backwardCompatibility = e.graphics.instructControl&4 == 0
		default:
			e.graphics.backwardCompatibility = false
		}
	}
}

// run decodes and dispatches instructions until the program ends or an
// instruction fails. Errors are returned as a ProgramError locating the
// failing instruction.
func (e *engine) run() error {
	tracer().Infof("running %s program (%d bytes)", e.program.current,
		len(e.program.decoder.bytecode))
	count := 0
	for !e.program.decoder.done() {
		program := e.program.current
		ins, err := e.program.decoder.decode()
		if err != nil {
			return &ProgramError{Program: program, PC: e.program.decoder.pc, Err: err}
		}
		tracer().Debugf("%s %04d: %s", program, ins.PC, ins)
		if err := e.dispatch(ins); err != nil {
			tracer().Errorf("%s %04d: %s: %v", program, ins.PC, ins.Opcode, err)
			return &ProgramError{Program: program, PC: ins.PC, Opcode: ins.Opcode, Err: err}
		}
		if count++; count > maxRunInstructions {
			return &ProgramError{
				Program: e.program.current,
				PC:      ins.PC,
				Opcode:  ins.Opcode,
				Err:     ErrExceededExecutionBudget,
			}
		}
	}
	return nil
}

// dispatch executes one decoded instruction.
func (e *engine) dispatch(ins Instruction) error {
	op := ins.Opcode
	switch op {
	case opSVTCA0, opSVTCA1, opSPVTCA0, opSPVTCA1, opSFVTCA0, opSFVTCA1:
		return e.opSVTCA(op)
	case opSPVTL0, opSPVTL1, opSFVTL0, opSFVTL1:
		return e.opSVTL(op)
	case opSPVFS:
		return e.opSPVFS()
	case opSFVFS:
		return e.opSFVFS()
	case opGPV:
		return e.opGPV()
	case opGFV:
		return e.opGFV()
	case opSFVTPV:
		return e.opSFVTPV()
	case opISECT:
		return e.opISECT()
	case opSRP0, opSRP1, opSRP2:
		return e.opSRP(op)
	case opSZP0, opSZP1, opSZP2, opSZPS:
		return e.opSZP(op)
	case opSLOOP:
		return e.opSLOOP()
	case opRTG:
		e.graphics.round.mode = roundToGrid
	case opRTHG:
		e.graphics.round.mode = roundToHalfGrid
	case opSMD:
		return e.opSMD()
	case opELSE:
		return e.opELSE()
	case opJMPR:
		return e.doJump(true)
	case opSCVTCI:
		return e.opSCVTCI()
	case opSSWCI:
		return e.opSSWCI()
	case opSSW:
		return e.opSSW()
	case opDUP:
		return e.stack.dup()
	case opPOP:
		_, err := e.stack.pop()
		return err
	case opCLEAR:
		e.stack.clear()
	case opSWAP:
		return e.stack.swap()
	case opDEPTH:
		return e.stack.push(int32(e.stack.len()))
	case opCINDEX:
		return e.stack.copyIndex()
	case opMINDEX:
		return e.stack.moveIndex()
	case opALIGNPTS:
		return e.opALIGNPTS()
	case opUTP:
		return e.opUTP()
	case opLOOPCALL:
		return e.opLOOPCALL()
	case opCALL:
		return e.opCALL()
	case opFDEF:
		return e.opFDEF()
	case opENDF:
		return e.program.leave()
	case opMDAP0, opMDAP1:
		return e.opMDAP(op)
	case opIUP0, opIUP1:
		return e.opIUP(op)
	case opSHP0, opSHP1:
		return e.opSHP(op)
	case opSHC0, opSHC1:
		return e.opSHC(op)
	case opSHZ0, opSHZ1:
		return e.opSHZ(op)
	case opSHPIX:
		return e.opSHPIX()
	case opIP:
		return e.opIP()
	case opMSIRP0, opMSIRP1:
		return e.opMSIRP(op)
	case opALIGNRP:
		return e.opALIGNRP()
	case opRTDG:
		e.graphics.round.mode = roundToDoubleGrid
	case opMIAP0, opMIAP1:
		return e.opMIAP(op)
	case opNPUSHB, opNPUSHW:
		return e.opPush(ins)
	case opWS:
		return e.opWS()
	case opRS:
		return e.opRS()
	case opWCVTP:
		return e.opWCVTP()
	case opRCVT:
		return e.opRCVT()
	case opGC0, opGC1:
		return e.opGC(op)
	case opSCFS:
		return e.opSCFS()
	case opMD0, opMD1:
		return e.opMD(op)
	case opMPPEM:
		return e.stack.push(e.graphics.ppem)
	case opMPS:
		return e.opMPS()
	case opFLIPON:
		e.graphics.autoFlip = true
	case opFLIPOFF:
		e.graphics.autoFlip = false
	case opDEBUG:
		// Not supported in production fonts; just pops its argument.
		_, err := e.stack.pop()
		return err
	case opLT:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return b2i(a < b), nil })
	case opLTEQ:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return b2i(a <= b), nil })
	case opGT:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return b2i(a > b), nil })
	case opGTEQ:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return b2i(a >= b), nil })
	case opEQ:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return b2i(a == b), nil })
	case opNEQ:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return b2i(a != b), nil })
	case opODD:
		return e.opODD()
	case opEVEN:
		return e.opEVEN()
	case opIF:
		return e.opIF()
	case opEIF:
		// The matching IF or ELSE already skipped here.
	case opAND:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return b2i(a != 0 && b != 0), nil })
	case opOR:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return b2i(a != 0 || b != 0), nil })
	case opNOT:
		return e.stack.applyUnary(func(a int32) (int32, error) { return b2i(a == 0), nil })
	case opDELTAP1, opDELTAP2, opDELTAP3:
		return e.opDELTAP(op)
	case opSDB:
		return e.opSDB()
	case opSDS:
		return e.opSDS()
	case opADD:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return a + b, nil })
	case opSUB:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return a - b, nil })
	case opDIV:
		return e.stack.applyBinary(func(a, b int32) (int32, error) {
			if b == 0 {
				return 0, ErrDivideByZero
			}
			return mulDivNoRound(a, 64, b), nil
		})
	case opMUL:
		return e.stack.applyBinary(func(a, b int32) (int32, error) { return mulDiv(a, b, 64), nil })
	case opABS:
		return e.stack.applyUnary(func(a int32) (int32, error) {
			if a < 0 {
				return -a, nil
			}
			return a, nil
		})
	case opNEG:
		return e.stack.applyUnary(func(a int32) (int32, error) { return -a, nil })
	case opFLOOR:
		return e.stack.applyUnary(func(a int32) (int32, error) {
			return int32(floorX(fixed.Int26_6(a))), nil
		})
	case opCEILING:
		return e.stack.applyUnary(func(a int32) (int32, error) {
			return int32(ceilX(fixed.Int26_6(a))), nil
		})
	case opROUND00, opROUND01, opROUND10, opROUND11:
		return e.opROUND()
	case opNROUND00, opNROUND01, opNROUND10, opNROUND11:
		// "No round" leaves the value alone.
	case opWCVTF:
		return e.opWCVTF()
	case opDELTAC1, opDELTAC2, opDELTAC3:
		return e.opDELTAC(op)
	case opSROUND:
		return e.opSROUND(0x4000, roundSuper)
	case opS45ROUND:
		return e.opSROUND(0x2D41, roundSuper45)
	case opJROT:
		v, err := e.stack.pop()
		if err != nil {
			return err
		}
		return e.doJump(v != 0)
	case opJROF:
		v, err := e.stack.pop()
		if err != nil {
			return err
		}
		return e.doJump(v == 0)
	case opROFF:
		e.graphics.round.mode = roundOff
	case opRUTG:
		e.graphics.round.mode = roundUpToGrid
	case opRDTG:
		e.graphics.round.mode = roundDownToGrid
	case opSANGW:
		// Obsolete; pops and ignores the angle weight.
		_, err := e.stack.pop()
		return err
	case opAA:
		// Obsolete, no arguments.
	case opFLIPPT:
		return e.opFLIPPT()
	case opFLIPRGON:
		return e.opFLIPRG(true)
	case opFLIPRGOFF:
		return e.opFLIPRG(false)
	case opSCANCTRL:
		return e.opSCANCTRL()
	case opSDPVTL0, opSDPVTL1:
		return e.opSDPVTL(op)
	case opGETINFO:
		return e.opGETINFO()
	case opIDEF:
		return e.opIDEF()
	case opROLL:
		return e.stack.roll()
	case opMAX:
		return e.stack.applyBinary(func(a, b int32) (int32, error) {
			if a > b {
				return a, nil
			}
			return b, nil
		})
	case opMIN:
		return e.stack.applyBinary(func(a, b int32) (int32, error) {
			if a < b {
				return a, nil
			}
			return b, nil
		})
	case opSCANTYPE:
		return e.opSCANTYPE()
	case opINSTCTRL:
		return e.opINSTCTRL()
	case opGETVARIATION:
		return e.opGETVARIATION()
	case opGETDATA:
		return e.opGETDATA()
	default:
		switch {
		case op >= opMIRP00000:
			return e.opMIRP(op)
		case op >= opMDRP00000:
			return e.opMDRP(op)
		case op >= opPUSHB000:
			return e.opPush(ins)
		default:
			// Unassigned opcode: an IDEF may have given it a meaning.
			return e.opUnknown(op)
		}
	}
	return nil
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// cvtGet reads a CVT entry, in 26.6 pixels.
func (e *engine) cvtGet(i int) (fixed.Int26_6, error) {
	v, ok := e.cvt.get(i)
	if !ok {
		return 0, invalidCvtIndex(i)
	}
	return fixed.Int26_6(v), nil
}

func (e *engine) cvtSet(i int, v fixed.Int26_6) error {
	if !e.cvt.set(i, int32(v)) {
		return invalidCvtIndex(i)
	}
	return nil
}
