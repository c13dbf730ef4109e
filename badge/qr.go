// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"errors"
	"fmt"
	"image"
)

// Matrix is a square grid of QR modules.
type Matrix interface {
	// Size returns the number of modules on a side.
	Size() int
	// ModuleAt reports whether the module at x, y is dark.
	ModuleAt(x, y int) bool
}

// Encoder turns text into a QR module matrix.
type Encoder interface {
	Encode(text string) (Matrix, error)
}

// BoolMatrix is a Matrix stored row by row. Cells outside the grid are light.
type BoolMatrix [][]bool

// Size implements Matrix.
func (b BoolMatrix) Size() int {
	return len(b)
}

// ModuleAt implements Matrix.
func (b BoolMatrix) ModuleAt(x, y int) bool {
	if y < 0 || y >= len(b) || x < 0 || x >= len(b[y]) {
		return false
	}
	return b[y][x]
}

// MeasureQR returns the rendered side of m in pixels and the side of one
// module when m is scaled by an integer factor into budget pixels.
//
// size is never larger than budget. module is 0 when m has more modules than
// budget has pixels.
func MeasureQR(budget int, m Matrix) (size, module int) {
	n := m.Size()
	if n <= 0 || budget <= 0 {
		return 0, 0
	}
	module = budget / n
	return module * n, module
}

// Rasterize returns the commands drawing m with its top-left corner at origin
// within budget pixels: a white square behind the code and one black square
// per dark module.
func Rasterize(origin image.Point, budget int, m Matrix) (Frame, error) {
	if m == nil || m.Size() <= 0 {
		return nil, fail(ErrEncoding, "rasterize", errors.New("empty matrix"))
	}
	size, module := MeasureQR(budget, m)
	if module == 0 {
		return nil, fail(ErrDegenerateLayout, "rasterize", fmt.Errorf("%d modules do not fit in %d pixels", m.Size(), budget))
	}
	var r recorder
	rasterize(&r, origin, size, module, m)
	return r.f, nil
}

func rasterize(d Drawer, origin image.Point, size, module int, m Matrix) {
	d.SetColor(White)
	d.FillRect(rect(origin.X, origin.Y, size, size))
	d.SetColor(Black)
	n := m.Size()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if m.ModuleAt(x, y) {
				d.FillRect(rect(origin.X+x*module, origin.Y+y*module, module, module))
			}
		}
	}
}
