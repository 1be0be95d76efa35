// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import (
	"fmt"
	"strings"
)

// Instruction is a single decoded instruction: the opcode, any operands
// that were encoded inline in the bytecode (push instructions only) and
// the program counter where decoding started.
type Instruction struct {
	Opcode   Opcode
	PC       int
	operands []byte
	isWords  bool
}

// OperandCount returns the number of inline operands.
func (in Instruction) OperandCount() int {
	if in.isWords {
		return len(in.operands) / 2
	}
	return len(in.operands)
}

// Operand returns the i'th inline operand: a zero-extended byte or a
// sign-extended big-endian word.
func (in Instruction) Operand(i int) int32 {
	if in.isWords {
		return int32(int16(uint16(in.operands[2*i])<<8 | uint16(in.operands[2*i+1])))
	}
	return int32(in.operands[i])
}

// String renders the instruction in assembly form, e.g. "PUSHB[010] 1 2 3".
func (in Instruction) String() string {
	if len(in.operands) == 0 {
		return in.Opcode.String()
	}
	var sb strings.Builder
	sb.WriteString(in.Opcode.String())
	for i, n := 0, in.OperandCount(); i < n; i++ {
		fmt.Fprintf(&sb, " %d", in.Operand(i))
	}
	return sb.String()
}

// decoder steps through a bytecode stream one instruction at a time.
type decoder struct {
	bytecode []byte
	pc       int
}

// done reports whether the program counter has run off the bytecode.
// Jumps can move it in either direction, so both ends count.
func (d *decoder) done() bool {
	return d.pc < 0 || d.pc >= len(d.bytecode)
}

// Disassemble decodes a whole bytecode stream. On ill-formed bytecode
// the instructions decoded so far are returned along with the error.
func Disassemble(bytecode []byte) ([]Instruction, error) {
	var instructions []Instruction
	d := decoder{bytecode: bytecode}
	for !d.done() {
		in, err := d.decode()
		if err != nil {
			return instructions, err
		}
		instructions = append(instructions, in)
	}
	return instructions, nil
}

// decode consumes the next instruction. Inline operands for the push
// families are captured as a subslice; the program counter advances past
// the whole encoding.
func (d *decoder) decode() (Instruction, error) {
	if d.done() {
		return Instruction{}, ErrUnexpectedEndOfBytecode
	}
	in := Instruction{Opcode: Opcode(d.bytecode[d.pc]), PC: d.pc}
	opLen := 1
	count := 0
	width := 1
	switch {
	case in.Opcode == opNPUSHB || in.Opcode == opNPUSHW:
		if d.pc+1 >= len(d.bytecode) {
			return Instruction{}, ErrUnexpectedEndOfBytecode
		}
		count = int(d.bytecode[d.pc+1])
		if in.Opcode == opNPUSHW {
			width = 2
		}
		opLen = 2 + width*count
	case in.Opcode >= opPUSHB000 && in.Opcode <= opPUSHW111:
		count = int(in.Opcode-opPUSHB000)&7 + 1
		if in.Opcode >= opPUSHW000 {
			width = 2
		}
		opLen = 1 + width*count
	}
	if d.pc+opLen > len(d.bytecode) {
		return Instruction{}, ErrUnexpectedEndOfBytecode
	}
	if count > 0 {
		start := d.pc + opLen - width*count
		in.operands = d.bytecode[start : d.pc+opLen]
		in.isWords = width == 2
	}
	d.pc += opLen
	return in, nil
}
