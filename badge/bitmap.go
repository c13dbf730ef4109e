// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Bitmap is a packed 1 bit per pixel image.
//
// Rows are byte aligned and the most significant bit is the leftmost pixel.
// A set bit is white (image1bit.On).
type Bitmap struct {
	Pix    []byte
	Width  int
	Height int
}

// NewBitmap returns an all black bitmap.
func NewBitmap(w, h int) *Bitmap {
	return &Bitmap{
		Pix:    make([]byte, BitmapSize(w, h)),
		Width:  w,
		Height: h,
	}
}

// BitmapSize returns the number of bytes used by a w x h bitmap.
func BitmapSize(w, h int) int {
	return (w + 7) / 8 * h
}

// ParseBitmap copies data into a w x h bitmap.
//
// Short data leaves the remaining pixels black, extra bytes are ignored.
func ParseBitmap(data []byte, w, h int) *Bitmap {
	b := NewBitmap(w, h)
	copy(b.Pix, data)
	return b
}

// Bytes returns the packed pixel data.
func (b *Bitmap) Bytes() []byte {
	return b.Pix
}

func (b *Bitmap) stride() int {
	return (b.Width + 7) / 8
}

// BitAt reports whether the pixel at x, y is white. Pixels outside the bitmap
// are black.
func (b *Bitmap) BitAt(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.Pix[y*b.stride()+x/8]&(0x80>>uint(x%8)) != 0
}

// SetBit sets the pixel at x, y.
func (b *Bitmap) SetBit(x, y int, v bool) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	i, mask := y*b.stride()+x/8, byte(0x80>>uint(x%8))
	if v {
		b.Pix[i] |= mask
	} else {
		b.Pix[i] &^= mask
	}
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color {
	return image1bit.Bit(b.BitAt(x, y))
}

// Set implements draw.Image.
func (b *Bitmap) Set(x, y int, c color.Color) {
	b.SetBit(x, y, bool(image1bit.BitModel.Convert(c).(image1bit.Bit)))
}

var _ image.Image = (*Bitmap)(nil)
