// Copyright 2012 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hinting

import "github.com/npillmayer/schuko/tracing"

// tracer traces to the "font.hinting" key.
func tracer() tracing.Trace {
	return tracing.Select("font.hinting")
}
