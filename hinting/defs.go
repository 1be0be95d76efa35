// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

// Program identifies the source of a piece of bytecode.
type Program uint8

const (
	// FontProgram initializes the function and instruction definition
	// tables. Stored in the fpgm table, run once per font.
	FontProgram Program = iota
	// ControlValueProgram initializes the CVT and storage area for a
	// size and rendering configuration. Stored in the prep table.
	ControlValueProgram
	// GlyphProgram is the per-glyph instruction stream from glyf.
	GlyphProgram
)

func (p Program) String() string {
	switch p {
	case FontProgram:
		return "fpgm"
	case ControlValueProgram:
		return "prep"
	}
	return "glyf"
}

// definition records the code range of a function (FDEF) or instruction
// (IDEF) definition. The key is the function number or the opcode.
type definition struct {
	start, end int
	key        int32
	program    Program
	active     bool
}

// definitionMap maps function numbers or opcodes to definitions. Glyph
// programs see an immutable view: defining there is an error.
type definitionMap struct {
	defs    []definition
	mutable bool
}

// allocate finds a slot for a new definition with the given key.
// Overriding an existing definition is legal, so an active entry with
// the same key is reused. Well-behaved fonts number their functions
// 0..maxFunctionDefs, making the key directly usable as an index;
// instruction definitions (high opcode values, rarely more than a
// handful) fall back to scanning for a free slot from the end.
func (m *definitionMap) allocate(key int32) (*definition, error) {
	if !m.mutable {
		return nil, ErrDefinitionInGlyphProgram
	}
	ix := -1
	if k := int(key); 0 <= k && k < len(m.defs) && (!m.defs[k].active || m.defs[k].key == key) {
		ix = k
	} else {
		for i := len(m.defs) - 1; i >= 0; i-- {
			if m.defs[i].active {
				if m.defs[i].key == key {
					ix = i
					break
				}
			} else if ix < 0 {
				ix = i
			}
		}
		if ix < 0 {
			return nil, ErrTooManyDefinitions
		}
	}
	m.defs[ix] = definition{key: key, active: true}
	return &m.defs[ix], nil
}

// get looks up the definition for a key: first trying the key as an
// index, then a reverse linear scan.
func (m *definitionMap) get(key int32) (definition, error) {
	if k := int(key); 0 <= k && k < len(m.defs) {
		if def := m.defs[k]; def.active && def.key == key {
			return def, nil
		}
	}
	for i := len(m.defs) - 1; i >= 0; i-- {
		if def := m.defs[i]; def.active && def.key == key {
			return def, nil
		}
	}
	return definition{}, invalidDefinition(key)
}

func (m *definitionMap) reset() {
	if m.mutable {
		for i := range m.defs {
			m.defs[i] = definition{}
		}
	}
}

// callStackDepth bounds nested CALL/LOOPCALL/IDEF invocations.
const callStackDepth = 32

type callRecord struct {
	callerProgram Program
	returnPC      int
	currentCount  uint32
	def           definition
}

type callStack struct {
	records [callStackDepth]callRecord
	top     int
}

func (s *callStack) len() int {
	return s.top
}

func (s *callStack) push(rec callRecord) error {
	if s.top >= len(s.records) {
		return ErrCallStackOverflow
	}
	s.records[s.top] = rec
	s.top++
	return nil
}

func (s *callStack) pop() (callRecord, error) {
	if s.top == 0 {
		return callRecord{}, ErrCallStackUnderflow
	}
	s.top--
	return s.records[s.top], nil
}

func (s *callStack) peek() (callRecord, error) {
	if s.top == 0 {
		return callRecord{}, ErrCallStackUnderflow
	}
	return s.records[s.top-1], nil
}

func (s *callStack) clear() {
	s.top = 0
}

// programState tracks the active program, its decoder and the nested
// function invocations.
type programState struct {
	// bytecode for the three program types, indexed by Program.
	bytecode [3][]byte
	initial  Program
	current  Program
	decoder  decoder
	calls    callStack
}

func newProgramState(fontCode, cvCode, glyphCode []byte, initial Program) programState {
	bytecode := [3][]byte{fontCode, cvCode, glyphCode}
	return programState{
		bytecode: bytecode,
		initial:  initial,
		current:  initial,
		decoder:  decoder{bytecode: bytecode[initial]},
	}
}

// reset prepares the state for running the given program from its start.
func (s *programState) reset(program Program) {
	s.initial = program
	s.current = program
	s.decoder = decoder{bytecode: s.bytecode[program]}
	s.calls.clear()
}

// enter jumps to a definition's code, to be executed count times.
func (s *programState) enter(def definition, count uint32) error {
	err := s.calls.push(callRecord{
		callerProgram: s.current,
		returnPC:      s.decoder.pc,
		currentCount:  count,
		def:           def,
	})
	if err != nil {
		return err
	}
	s.current = def.program
	s.decoder = decoder{bytecode: s.bytecode[def.program], pc: def.start}
	return nil
}

// leave returns from the definition on top of the call stack. A loop
// call with iterations remaining restarts from the definition's first
// instruction instead.
func (s *programState) leave() error {
	rec, err := s.calls.pop()
	if err != nil {
		return err
	}
	if rec.currentCount > 1 {
		rec.currentCount--
		s.decoder.pc = rec.def.start
		return s.calls.push(rec)
	}
	s.current = rec.callerProgram
	s.decoder.bytecode = s.bytecode[rec.callerProgram]
	s.decoder.pc = rec.returnPC
	return nil
}
