// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import (
	"errors"

	"golang.org/x/image/math/fixed"
)

// This file implements the instructions for stack pushes, control flow,
// function and instruction definitions, the storage area and the
// control value table.

// maxDefinitionSize bounds the bytecode length of a single FDEF or IDEF
// body in pedantic mode.
const maxDefinitionSize = 0xFFFF

// opPush handles the PUSHB, PUSHW, NPUSHB and NPUSHW families: the
// operands were decoded inline with the instruction.
func (e *engine) opPush(ins Instruction) error {
	for i, n := 0, ins.OperandCount(); i < n; i++ {
		if err := e.stack.push(ins.Operand(i)); err != nil {
			return err
		}
	}
	return nil
}

// opIF handles IF (0x58). A zero condition skips forward to the
// matching ELSE or EIF, counting nested IFs on the way.
func (e *engine) opIF() error {
	cond, err := e.stack.pop()
	if err != nil {
		return err
	}
	if cond != 0 {
		return nil
	}
	nestDepth := 1
	for {
		ins, err := e.program.decoder.decode()
		if err != nil {
			return err
		}
		switch ins.Opcode {
		case opIF:
			nestDepth++
		case opELSE:
			if nestDepth == 1 {
				return nil
			}
		case opEIF:
			nestDepth--
			if nestDepth == 0 {
				return nil
			}
		}
	}
}

// opELSE handles ELSE (0x1B). Reached only when the IF branch was
// taken, so it skips to the matching EIF.
func (e *engine) opELSE() error {
	nestDepth := 1
	for {
		ins, err := e.program.decoder.decode()
		if err != nil {
			return err
		}
		switch ins.Opcode {
		case opIF:
			nestDepth++
		case opEIF:
			nestDepth--
			if nestDepth == 0 {
				return nil
			}
		}
	}
}

// doJump implements JMPR, JROT and JROF. The offset on the stack counts
// from the jump instruction itself, which the decoder has already
// passed. Backward jumps are charged against the loop budget.
func (e *engine) doJump(test bool) error {
	offset, err := e.stack.pop()
	if err != nil {
		return err
	}
	offset--
	if !test {
		return nil
	}
	if offset == -1 {
		// A jump to itself would loop forever.
		return ErrInvalidJump
	}
	if offset < 0 {
		if err := e.budget.backwardJump(); err != nil {
			return err
		}
	}
	e.program.decoder.pc += int(offset)
	return nil
}

// opFDEF handles FDEF (0x2C).
func (e *engine) opFDEF() error {
	key, err := e.stack.pop()
	if err != nil {
		return err
	}
	return e.defineBody(&e.functions, key)
}

// opIDEF handles IDEF (0x89).
func (e *engine) opIDEF() error {
	key, err := e.stack.pop()
	if err != nil {
		return err
	}
	return e.defineBody(&e.instructions, key)
}

// defineBody records the code range from the current position to the
// matching ENDF as the definition for key. Nested definitions are not
// allowed; running off the end of the program is an error.
func (e *engine) defineBody(defs *definitionMap, key int32) error {
	def, err := defs.allocate(key)
	if err != nil {
		return err
	}
	start := e.program.decoder.pc
	for !e.program.decoder.done() {
		ins, err := e.program.decoder.decode()
		if err != nil {
			return err
		}
		switch ins.Opcode {
		case opFDEF, opIDEF:
			return ErrNestedDefinition
		case opENDF:
			end := ins.PC + 1
			if e.graphics.isPedantic && end-start > maxDefinitionSize {
				*def = definition{}
				return ErrDefinitionTooLarge
			}
			*def = definition{
				start:   start,
				end:     end,
				key:     key,
				program: e.program.current,
				active:  true,
			}
			return nil
		}
	}
	return ErrUnexpectedEndOfBytecode
}

// opCALL handles CALL (0x2B).
func (e *engine) opCALL() error {
	key, err := e.stack.pop()
	if err != nil {
		return err
	}
	return e.callDef(&e.functions, 1, key)
}

// opLOOPCALL handles LOOPCALL (0x2A). The repeat count is charged
// against the loop budget.
func (e *engine) opLOOPCALL() error {
	key, err := e.stack.pop()
	if err != nil {
		return err
	}
	count, err := e.stack.pop()
	if err != nil {
		return err
	}
	if count <= 0 {
		return nil
	}
	if err := e.budget.loopCall(int(count)); err != nil {
		return err
	}
	return e.callDef(&e.functions, uint32(count), key)
}

func (e *engine) callDef(defs *definitionMap, count uint32, key int32) error {
	def, err := defs.get(key)
	if err != nil {
		return err
	}
	return e.program.enter(def, count)
}

// opUnknown executes an opcode with no fixed meaning: an IDEF may have
// defined it, otherwise it is unhandled.
func (e *engine) opUnknown(op Opcode) error {
	err := e.callDef(&e.instructions, 1, int32(op))
	if errors.Is(err, ErrInvalidDefinition) {
		return unhandledOpcode(op)
	}
	return err
}

// opWS handles WS (0x42). Out-of-range writes are dropped unless
// pedantic.
func (e *engine) opWS() error {
	value, err := e.stack.pop()
	if err != nil {
		return err
	}
	loc, err := e.stack.pop()
	if err != nil {
		return err
	}
	if !e.storage.set(int(loc), value) && e.graphics.isPedantic {
		return invalidStorageIndex(int(loc))
	}
	return nil
}

// opRS handles RS (0x43). Out-of-range reads yield zero unless
// pedantic.
func (e *engine) opRS() error {
	loc, err := e.stack.pop()
	if err != nil {
		return err
	}
	v, ok := e.storage.get(int(loc))
	if !ok {
		if e.graphics.isPedantic {
			return invalidStorageIndex(int(loc))
		}
		v = 0
	}
	return e.stack.push(v)
}

// opWCVTP handles WCVTP (0x44): write a CVT entry in pixel units.
func (e *engine) opWCVTP() error {
	value, err := e.stack.pop()
	if err != nil {
		return err
	}
	index, err := e.stack.pop()
	if err != nil {
		return err
	}
	if err := e.cvtSet(int(index), fixed.Int26_6(value)); err != nil && e.graphics.isPedantic {
		return err
	}
	return nil
}

// opWCVTF handles WCVTF (0x70): write a CVT entry given in font units.
func (e *engine) opWCVTF() error {
	value, err := e.stack.pop()
	if err != nil {
		return err
	}
	index, err := e.stack.pop()
	if err != nil {
		return err
	}
	scaled := fixed.Int26_6(mulFix(value, e.graphics.scale))
	if err := e.cvtSet(int(index), scaled); err != nil && e.graphics.isPedantic {
		return err
	}
	return nil
}

// opRCVT handles RCVT (0x45). Out-of-range reads yield zero unless
// pedantic.
func (e *engine) opRCVT() error {
	index, err := e.stack.pop()
	if err != nil {
		return err
	}
	v, err := e.cvtGet(int(index))
	if err != nil {
		if e.graphics.isPedantic {
			return err
		}
		v = 0
	}
	return e.stack.push(int32(v))
}

// opROUND handles ROUND[ab] (0x68 - 0x6B): rounds the value on top of
// the stack per the current round state. The engine characteristic
// bits are ignored, as everywhere else.
func (e *engine) opROUND() error {
	return e.stack.applyUnary(func(a int32) (int32, error) {
		return int32(e.graphics.round.round(fixed.Int26_6(a))), nil
	})
}

// opODD handles ODD (0x56): the value is rounded first, then tested.
func (e *engine) opODD() error {
	return e.stack.applyUnary(func(a int32) (int32, error) {
		return b2i(e.graphics.round.round(fixed.Int26_6(a))&127 == 64), nil
	})
}

// opEVEN handles EVEN (0x57).
func (e *engine) opEVEN() error {
	return e.stack.applyUnary(func(a int32) (int32, error) {
		return b2i(e.graphics.round.round(fixed.Int26_6(a))&127 == 0), nil
	})
}
