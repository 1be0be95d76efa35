// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSimple(t *testing.T) {
	d := decoder{bytecode: []byte{byte(opDUP), byte(opSWAP)}}
	ins, err := d.decode()
	require.NoError(t, err)
	assert.Equal(t, opDUP, ins.Opcode)
	assert.Equal(t, 0, ins.PC)
	ins, err = d.decode()
	require.NoError(t, err)
	assert.Equal(t, opSWAP, ins.Opcode)
	assert.Equal(t, 1, ins.PC)
	assert.True(t, d.done())
}

func TestDecodePushOperands(t *testing.T) {
	d := decoder{bytecode: []byte{
		byte(opPUSHB010), 10, 20, 30,
		byte(opPUSHW001), 255, 254, 0, 253,
		byte(opNPUSHB), 2, 1, 2,
		byte(opNPUSHW), 1, 4, 5,
	}}
	ins, err := d.decode()
	require.NoError(t, err)
	assert.Equal(t, 3, ins.OperandCount())
	assert.Equal(t, int32(20), ins.Operand(1))

	ins, err = d.decode()
	require.NoError(t, err)
	assert.Equal(t, 2, ins.OperandCount())
	assert.Equal(t, int32(-2), ins.Operand(0))
	assert.Equal(t, int32(253), ins.Operand(1))

	ins, err = d.decode()
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, []int32{ins.Operand(0), ins.Operand(1)})

	ins, err = d.decode()
	require.NoError(t, err)
	assert.Equal(t, 1, ins.OperandCount())
	assert.Equal(t, int32(0x0405), ins.Operand(0))
	assert.True(t, d.done())
}

func TestDecodeTruncatedPush(t *testing.T) {
	for _, bytecode := range [][]byte{
		{byte(opPUSHB010), 10, 20},
		{byte(opNPUSHB)},
		{byte(opNPUSHW), 2, 0, 1},
	} {
		d := decoder{bytecode: bytecode}
		_, err := d.decode()
		assert.ErrorIs(t, err, ErrUnexpectedEndOfBytecode)
	}
}

func TestDecodeDoneOutOfRange(t *testing.T) {
	// Jumps can push the program counter off either end.
	d := decoder{bytecode: []byte{byte(opDUP)}, pc: -3}
	assert.True(t, d.done())
	d.pc = 1
	assert.True(t, d.done())
}

func TestInstructionString(t *testing.T) {
	d := decoder{bytecode: []byte{byte(opPUSHB010), 1, 2, 3}}
	ins, err := d.decode()
	require.NoError(t, err)
	assert.Equal(t, "PUSHB[010] 1 2 3", ins.String())
	assert.Equal(t, "MIRP[10110]", Opcode(0xF6).String())
	assert.Equal(t, "MDRP[00001]", Opcode(0xC1).String())
}
