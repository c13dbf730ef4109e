// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package store

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/GermanBionicSystems/badge/badge"
	"golang.org/x/image/draw"
)

// ImportImage decodes a PNG, JPEG or GIF image and converts it to a w x h
// packed bitmap.
//
// The source is scaled to fill w x h, ignoring its aspect ratio. Pixels
// brighter than mid gray become white; with dither the error is diffused
// with Floyd-Steinberg instead.
func ImportImage(r io.Reader, w, h int, dither bool) (*badge.Bitmap, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("store: decoding image: %w", err)
	}
	return Convert(src, w, h, dither), nil
}

// Convert scales src to w x h and reduces it to 1 bit per pixel.
func Convert(src image.Image, w, h int, dither bool) *badge.Bitmap {
	gray := image.NewGray(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(gray, gray.Bounds(), src, src.Bounds(), draw.Src, nil)

	b := badge.NewBitmap(w, h)
	if dither {
		pal := image.NewPaletted(gray.Bounds(), color.Palette{color.Black, color.White})
		stddraw.FloydSteinberg.Draw(pal, pal.Bounds(), gray, image.Point{})
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				b.SetBit(x, y, pal.ColorIndexAt(x, y) == 1)
			}
		}
		return b
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.SetBit(x, y, gray.GrayAt(x, y).Y >= 0x80)
		}
	}
	return b
}
