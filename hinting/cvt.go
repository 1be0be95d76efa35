// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

// cowSlice is a copy-on-write backing store for the control value table
// and the storage area.
//
// Both tables are initialized by the control value program with values
// relevant to one size and rendering configuration, but some fonts also
// write to them from glyph programs. Those writes must not leak into
// future glyphs, so the first write in a glyph program copies the shared
// buffer into a private one and all changes are discarded with it when
// the program finishes.
type cowSlice struct {
	data []int32 // shared, never written
	mut  []int32 // private copy, non-nil once a write happened
}

// newCowSlice wraps a shared buffer, deferring the copy to the first
// write.
func newCowSlice(data []int32) cowSlice {
	return cowSlice{data: data}
}

// newMutCowSlice wraps a buffer the caller already owns, so writes go
// straight through. Used for the font and control value programs, whose
// writes are meant to persist.
func newMutCowSlice(data []int32) cowSlice {
	return cowSlice{mut: data}
}

func (s *cowSlice) len() int {
	if s.mut != nil {
		return len(s.mut)
	}
	return len(s.data)
}

func (s *cowSlice) get(i int) (int32, bool) {
	if s.mut != nil {
		if i < 0 || i >= len(s.mut) {
			return 0, false
		}
		return s.mut[i], true
	}
	if i < 0 || i >= len(s.data) {
		return 0, false
	}
	return s.data[i], true
}

func (s *cowSlice) set(i int, v int32) bool {
	if s.mut == nil {
		s.mut = make([]int32, len(s.data))
		copy(s.mut, s.data)
	}
	if i < 0 || i >= len(s.mut) {
		return false
	}
	s.mut[i] = v
	return true
}
