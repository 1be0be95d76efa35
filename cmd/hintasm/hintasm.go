// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

// hintasm disassembles raw TrueType hint bytecode, as extracted from a
// font's fpgm or prep table or from a glyph, one instruction per line.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/goki/truehint/hinting"
)

var bytecodefile = flag.String("bytecode", "", "filename of raw hint bytecode to disassemble")

func main() {
	flag.Parse()

	bytecode, err := os.ReadFile(*bytecodefile)
	if err != nil {
		fmt.Printf("Failed to load bytecode from %s: %+v\n", *bytecodefile, err)
		os.Exit(1)
	}

	instructions, err := hinting.Disassemble(bytecode)
	for _, in := range instructions {
		fmt.Printf("%04d\t%s\n", in.PC, in)
	}
	if err != nil {
		fmt.Printf("Failed to disassemble %s: %+v\n", *bytecodefile, err)
		os.Exit(1)
	}
}
