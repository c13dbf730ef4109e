// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import "image"

// Measurer returns the rendered width in pixels of s at the given font scale.
type Measurer interface {
	MeasureText(s string, scale float64) (int, error)
}

// Drawer is the set of drawing primitives a frame is replayed onto.
type Drawer interface {
	// Clear fills the whole surface with the current color.
	Clear()
	SetColor(c Color)
	SetThickness(n int)
	FillRect(r image.Rectangle)
	// Line draws from one pixel to another, both included.
	Line(from, to image.Point)
	// Text draws s with its left edge at at.X and its vertical middle at at.Y.
	Text(s string, at image.Point, scale float64)
	// Image copies img with its top-left corner at at.
	Image(img *Bitmap, at image.Point)
}

// Surface is a Drawer that can also measure text.
type Surface interface {
	Drawer
	Measurer
}

// MeasurerFunc adapts a function to Measurer.
type MeasurerFunc func(s string, scale float64) (int, error)

// MeasureText implements Measurer.
func (f MeasurerFunc) MeasureText(s string, scale float64) (int, error) {
	return f(s, scale)
}
