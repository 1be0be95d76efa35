// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

// valueStack is the interpreter's operand stack.
//
// In pedantic mode every out-of-range access is a hard error. Otherwise
// underflows produce zeros and bad indices are ignored, which is how
// broken fonts in the wild keep rendering.
type valueStack struct {
	values   []int32
	top      int
	pedantic bool
}

func (s *valueStack) len() int {
	return s.top
}

func (s *valueStack) clear() {
	s.top = 0
}

func (s *valueStack) push(v int32) error {
	if s.top >= len(s.values) {
		return ErrValueStackOverflow
	}
	s.values[s.top] = v
	s.top++
	return nil
}

func (s *valueStack) pop() (int32, error) {
	if s.top == 0 {
		if s.pedantic {
			return 0, ErrValueStackUnderflow
		}
		return 0, nil
	}
	s.top--
	return s.values[s.top], nil
}

// popCount pops a count argument for the delta and push instructions,
// clamping it to the available stack in non-pedantic mode.
func (s *valueStack) popCount(pairSize int) (int, error) {
	n, err := s.pop()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		if s.pedantic {
			return 0, invalidStackValue(n)
		}
		return 0, nil
	}
	count := int(n)
	if max := s.top / pairSize; count > max && !s.pedantic {
		count = max
	}
	return count, nil
}

func (s *valueStack) dup() error {
	if s.top == 0 {
		if s.pedantic {
			return ErrValueStackUnderflow
		}
		return s.push(0)
	}
	return s.push(s.values[s.top-1])
}

func (s *valueStack) swap() error {
	a, err := s.pop()
	if err != nil {
		return err
	}
	b, err := s.pop()
	if err != nil {
		return err
	}
	if err := s.push(a); err != nil {
		return err
	}
	return s.push(b)
}

// copyIndex implements CINDEX: replaces the top element k with a copy of
// the element k entries below it.
func (s *valueStack) copyIndex() error {
	if s.top == 0 {
		if s.pedantic {
			return ErrValueStackUnderflow
		}
		return nil
	}
	index := int(s.values[s.top-1])
	if index <= 0 || index >= s.top {
		if s.pedantic {
			return invalidStackValue(int32(index))
		}
		s.values[s.top-1] = 0
		return nil
	}
	s.values[s.top-1] = s.values[s.top-1-index]
	return nil
}

// moveIndex implements MINDEX: moves the element k entries below the top
// to the top, shifting the elements in between down.
func (s *valueStack) moveIndex() error {
	if s.top == 0 {
		if s.pedantic {
			return ErrValueStackUnderflow
		}
		return nil
	}
	index := int(s.values[s.top-1])
	if index <= 0 || index >= s.top {
		if s.pedantic {
			return invalidStackValue(int32(index))
		}
		s.top--
		return nil
	}
	v := s.values[s.top-1-index]
	copy(s.values[s.top-1-index:s.top-1], s.values[s.top-index:s.top])
	s.values[s.top-2] = v
	s.top--
	return nil
}

func (s *valueStack) roll() error {
	a, err := s.pop()
	if err != nil {
		return err
	}
	b, err := s.pop()
	if err != nil {
		return err
	}
	c, err := s.pop()
	if err != nil {
		return err
	}
	if err := s.push(b); err != nil {
		return err
	}
	if err := s.push(a); err != nil {
		return err
	}
	return s.push(c)
}

// applyUnary replaces the top element with op(top).
func (s *valueStack) applyUnary(op func(int32) (int32, error)) error {
	a, err := s.pop()
	if err != nil {
		return err
	}
	v, err := op(a)
	if err != nil {
		return err
	}
	return s.push(v)
}

// applyBinary replaces the top two elements with op(a, b), where b is
// popped first.
func (s *valueStack) applyBinary(op func(a, b int32) (int32, error)) error {
	b, err := s.pop()
	if err != nil {
		return err
	}
	a, err := s.pop()
	if err != nil {
		return err
	}
	v, err := op(a, b)
	if err != nil {
		return err
	}
	return s.push(v)
}
