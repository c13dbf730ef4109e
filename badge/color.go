// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"fmt"
	"image/color"
)

// Color is a 4 bit pen level, from Black (0) to White (15).
type Color uint8

const (
	Black Color = 0
	White Color = 15
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.Gray{Y: c.gray()}.RGBA()
}

func (c Color) gray() uint8 {
	if c > White {
		c = White
	}
	return uint8(c) * 17
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
}
