// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import "testing"

func TestCowSliceCopyOnWrite(t *testing.T) {
	data := make([]int32, 16)
	for i := range data {
		data[i] = int32(i)
	}
	s := newCowSlice(data)
	if s.mut != nil {
		t.Fatal("fresh slice already has a private copy")
	}
	for i := range data {
		if v, ok := s.get(i); !ok || v != int32(i) {
			t.Fatalf("get(%d) = %d, %t", i, v, ok)
		}
	}
	for i := range data {
		v, _ := s.get(i)
		if !s.set(i, v*2) {
			t.Fatalf("set(%d) failed", i)
		}
	}
	if s.mut == nil {
		t.Fatal("write did not create the private copy")
	}
	for i := range data {
		if v, _ := s.get(i); v != int32(i)*2 {
			t.Fatalf("get(%d) = %d, want %d", i, v, i*2)
		}
		// The shared buffer must be untouched.
		if data[i] != int32(i) {
			t.Fatalf("shared buffer modified at %d", i)
		}
	}
}

func TestCowSliceOutOfBounds(t *testing.T) {
	s := newMutCowSlice([]int32{1, 2})
	if v, ok := s.get(0); !ok || v != 1 {
		t.Fatalf("get(0) = %d, %t", v, ok)
	}
	if _, ok := s.get(2); ok {
		t.Fatal("get(2) succeeded out of bounds")
	}
	if s.set(2, 3) {
		t.Fatal("set(2) succeeded out of bounds")
	}
	if s.set(-1, 3) {
		t.Fatal("set(-1) succeeded out of bounds")
	}
}

func TestMutCowSliceWritesThrough(t *testing.T) {
	data := []int32{1, 2, 3}
	s := newMutCowSlice(data)
	if !s.set(1, 42) {
		t.Fatal("set(1) failed")
	}
	if data[1] != 42 {
		t.Fatal("write did not reach the owned buffer")
	}
}
