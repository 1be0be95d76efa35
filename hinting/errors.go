// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import (
	"errors"
	"fmt"
)

// Errors raised by the interpreter. Ill-formed bytecode is expected in
// the wild, so these are ordinary error values rather than panics, and
// callers can classify them with errors.Is.
var (
	ErrUnhandledOpcode          = errors.New("truehint: unhandled opcode")
	ErrUnexpectedEndOfBytecode  = errors.New("truehint: unexpected end of bytecode")
	ErrTooManyInstructions      = errors.New("truehint: too many instructions")
	ErrInvalidJump              = errors.New("truehint: invalid jump")
	ErrValueStackOverflow       = errors.New("truehint: value stack overflow")
	ErrValueStackUnderflow      = errors.New("truehint: value stack underflow")
	ErrCallStackOverflow        = errors.New("truehint: call stack overflow")
	ErrCallStackUnderflow       = errors.New("truehint: call stack underflow")
	ErrInvalidStackValue        = errors.New("truehint: invalid stack value")
	ErrInvalidPointIndex        = errors.New("truehint: invalid point index")
	ErrInvalidPointRange        = errors.New("truehint: invalid point range")
	ErrInvalidContourIndex      = errors.New("truehint: invalid contour index")
	ErrInvalidCvtIndex          = errors.New("truehint: invalid cvt index")
	ErrInvalidStorageIndex      = errors.New("truehint: invalid storage index")
	ErrDivideByZero             = errors.New("truehint: division by zero")
	ErrInvalidZoneIndex         = errors.New("truehint: invalid zone index")
	ErrNegativeLoopCounter      = errors.New("truehint: negative loop counter")
	ErrInvalidDefinition        = errors.New("truehint: invalid definition")
	ErrDefinitionInGlyphProgram = errors.New("truehint: definition in glyph program")
	ErrNestedDefinition         = errors.New("truehint: nested definition")
	ErrTooManyDefinitions       = errors.New("truehint: too many definitions")
	ErrDefinitionTooLarge       = errors.New("truehint: definition too large")
	ErrExceededExecutionBudget  = errors.New("truehint: exceeded execution budget")
)

func unhandledOpcode(op Opcode) error {
	return fmt.Errorf("%w %s", ErrUnhandledOpcode, op)
}

func invalidStackValue(v int32) error {
	return fmt.Errorf("%w %d", ErrInvalidStackValue, v)
}

func invalidPointIndex(i int) error {
	return fmt.Errorf("%w %d", ErrInvalidPointIndex, i)
}

func invalidPointRange(start, end int) error {
	return fmt.Errorf("%w %d..%d", ErrInvalidPointRange, start, end)
}

func invalidContourIndex(i int) error {
	return fmt.Errorf("%w %d", ErrInvalidContourIndex, i)
}

func invalidCvtIndex(i int) error {
	return fmt.Errorf("%w %d", ErrInvalidCvtIndex, i)
}

func invalidStorageIndex(i int) error {
	return fmt.Errorf("%w %d", ErrInvalidStorageIndex, i)
}

func invalidZoneIndex(v int32) error {
	return fmt.Errorf("%w %d", ErrInvalidZoneIndex, v)
}

func invalidDefinition(key int32) error {
	return fmt.Errorf("%w %d", ErrInvalidDefinition, key)
}

// ProgramError wraps an interpreter error with the location where the
// failing instruction was decoded.
type ProgramError struct {
	Program Program
	// GlyphID is the glyph being hinted, if the failure happened in a
	// glyph program.
	GlyphID uint16
	PC      int
	Opcode  Opcode
	Err     error
}

func (e *ProgramError) Error() string {
	if e.Program == GlyphProgram {
		return fmt.Sprintf("%v (%s program, glyph %d, %s at pc %d)",
			e.Err, e.Program, e.GlyphID, e.Opcode, e.PC)
	}
	return fmt.Sprintf("%v (%s program, %s at pc %d)", e.Err, e.Program, e.Opcode, e.PC)
}

func (e *ProgramError) Unwrap() error {
	return e.Err
}
