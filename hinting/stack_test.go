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

func newTestStack(values ...int32) valueStack {
	s := valueStack{values: make([]int32, 32)}
	for _, v := range values {
		if err := s.push(v); err != nil {
			panic(err)
		}
	}
	return s
}

func (s *valueStack) contents() []int32 {
	return s.values[:s.top]
}

func TestStackPushPop(t *testing.T) {
	s := newTestStack(1, 2, 3)
	v, err := s.pop()
	require.NoError(t, err)
	assert.Equal(t, int32(3), v)
	assert.Equal(t, 2, s.len())
}

func TestStackOverflow(t *testing.T) {
	s := valueStack{values: make([]int32, 2)}
	require.NoError(t, s.push(1))
	require.NoError(t, s.push(2))
	assert.ErrorIs(t, s.push(3), ErrValueStackOverflow)
}

func TestStackUnderflowLenient(t *testing.T) {
	var s valueStack
	v, err := s.pop()
	require.NoError(t, err)
	assert.Equal(t, int32(0), v)
}

func TestStackUnderflowPedantic(t *testing.T) {
	s := valueStack{pedantic: true}
	_, err := s.pop()
	assert.ErrorIs(t, err, ErrValueStackUnderflow)
}

func TestStackPopCount(t *testing.T) {
	// Count is clamped to the available pairs when lenient.
	s := newTestStack(1, 2, 3, 4, 100)
	n, err := s.popCount(2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	s = newTestStack(1, 2, -1)
	n, err = s.popCount(2)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	s = newTestStack(1, 2, -1)
	s.pedantic = true
	_, err = s.popCount(2)
	assert.ErrorIs(t, err, ErrInvalidStackValue)
}

func TestStackCopyIndex(t *testing.T) {
	s := newTestStack(40, 60, 50, 3)
	require.NoError(t, s.copyIndex())
	assert.Equal(t, []int32{40, 60, 50, 40}, s.contents())

	// A bad index yields zero when lenient, an error when pedantic.
	s = newTestStack(40, 9)
	require.NoError(t, s.copyIndex())
	assert.Equal(t, []int32{40, 0}, s.contents())

	s = newTestStack(40, 9)
	s.pedantic = true
	assert.ErrorIs(t, s.copyIndex(), ErrInvalidStackValue)
}

func TestStackMoveIndex(t *testing.T) {
	s := newTestStack(40, 60, 50, 50, 40, 4)
	require.NoError(t, s.moveIndex())
	assert.Equal(t, []int32{40, 50, 50, 40, 60}, s.contents())

	// A bad index just drops the count when lenient.
	s = newTestStack(40, 9)
	require.NoError(t, s.moveIndex())
	assert.Equal(t, []int32{40}, s.contents())
}

func TestStackRoll(t *testing.T) {
	s := newTestStack(1, 2, 3)
	require.NoError(t, s.roll())
	assert.Equal(t, []int32{2, 3, 1}, s.contents())
}

func TestStackApply(t *testing.T) {
	s := newTestStack(10, 3)
	err := s.applyBinary(func(a, b int32) (int32, error) { return a - b, nil })
	require.NoError(t, err)
	assert.Equal(t, []int32{7}, s.contents())
	err = s.applyUnary(func(a int32) (int32, error) { return -a, nil })
	require.NoError(t, err)
	assert.Equal(t, []int32{-7}, s.contents())
}
