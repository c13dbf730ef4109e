// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package raster implements badge.Surface on an in-memory image using
// github.com/fogleman/gg and a TrueType font.
//
// Font scale 1 is Opts.EmHeight pixels. Text is antialiased while drawing
// and thresholded when the surface is converted to a 1 bit image with Bits
// or Bitmap.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/GermanBionicSystems/badge/badge"
)

// Opts configures a Surface.
type Opts struct {
	Width, Height int

	// Font is a TrueType font. Go Regular is used when empty.
	Font []byte

	// EmHeight is the font size in pixels at scale 1.
	EmHeight float64
}

// DefaultEmHeight approximates the sans font of the Badger 2040 firmware.
const DefaultEmHeight = 24

// Surface is a badge.Surface drawing into an RGBA image.
type Surface struct {
	dc        *gg.Context
	font      *truetype.Font
	em        float64
	faces     map[int]font.Face
	thickness int
}

// New returns a black surface of the given size.
func New(opts *Opts) (*Surface, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", opts.Width, opts.Height)
	}
	ttf := opts.Font
	if len(ttf) == 0 {
		ttf = goregular.TTF
	}
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("raster: parsing font: %w", err)
	}
	em := opts.EmHeight
	if em <= 0 {
		em = DefaultEmHeight
	}
	s := &Surface{
		dc:        gg.NewContext(opts.Width, opts.Height),
		font:      f,
		em:        em,
		faces:     map[int]font.Face{},
		thickness: 1,
	}
	s.dc.SetLineCap(gg.LineCapSquare)
	s.SetColor(badge.Black)
	s.Clear()
	return s, nil
}

// face returns the font face for scale, cached by hundredths.
func (s *Surface) face(scale float64) (font.Face, error) {
	if math.IsNaN(scale) || scale <= 0 {
		return nil, fmt.Errorf("raster: invalid font scale %v", scale)
	}
	key := int(math.Round(scale * 100))
	if key == 0 {
		return nil, errors.New("raster: font scale below 0.01")
	}
	f, ok := s.faces[key]
	if !ok {
		f = truetype.NewFace(s.font, &truetype.Options{
			Size:    float64(key) / 100 * s.em,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		s.faces[key] = f
	}
	return f, nil
}

// MeasureText implements badge.Measurer. Widths are rounded up.
func (s *Surface) MeasureText(text string, scale float64) (int, error) {
	f, err := s.face(scale)
	if err != nil {
		return 0, err
	}
	s.dc.SetFontFace(f)
	w, _ := s.dc.MeasureString(text)
	return int(math.Ceil(w)), nil
}

// Clear implements badge.Drawer.
func (s *Surface) Clear() {
	s.dc.Clear()
}

// SetColor implements badge.Drawer.
func (s *Surface) SetColor(c badge.Color) {
	s.dc.SetColor(c)
}

// SetThickness implements badge.Drawer.
func (s *Surface) SetThickness(n int) {
	if n < 1 {
		n = 1
	}
	s.thickness = n
}

// FillRect implements badge.Drawer.
func (s *Surface) FillRect(r image.Rectangle) {
	if r.Empty() {
		return
	}
	s.dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
	s.dc.Fill()
}

// Line implements badge.Drawer.
func (s *Surface) Line(from, to image.Point) {
	s.dc.SetLineWidth(float64(s.thickness))
	s.dc.DrawLine(float64(from.X)+0.5, float64(from.Y)+0.5, float64(to.X)+0.5, float64(to.Y)+0.5)
	s.dc.Stroke()
}

// Text implements badge.Drawer.
//
// Thicker pens are emulated by drawing the string again one pixel to the
// right for each extra unit of thickness.
func (s *Surface) Text(text string, at image.Point, scale float64) {
	f, err := s.face(scale)
	if err != nil || text == "" {
		return
	}
	s.dc.SetFontFace(f)
	for i := 0; i < s.thickness; i++ {
		s.dc.DrawStringAnchored(text, float64(at.X+i), float64(at.Y), 0, 0.5)
	}
}

// Image implements badge.Drawer.
func (s *Surface) Image(img *badge.Bitmap, at image.Point) {
	s.dc.DrawImage(img, at.X, at.Y)
}

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle {
	return s.dc.Image().Bounds()
}

// RGBA returns the antialiased drawing.
func (s *Surface) RGBA() image.Image {
	return s.dc.Image()
}

// Bits returns the drawing thresholded to 1 bit, in the layout used by the
// periph display drivers.
func (s *Surface) Bits() *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(s.Bounds())
	draw.Src.Draw(img, img.Bounds(), s.dc.Image(), image.Point{})
	return img
}

// Bitmap returns the drawing thresholded to a packed badge.Bitmap.
func (s *Surface) Bitmap() *badge.Bitmap {
	r := s.Bounds()
	b := badge.NewBitmap(r.Dx(), r.Dy())
	draw.Src.Draw(b, b.Bounds(), s.dc.Image(), r.Min)
	return b
}

var _ badge.Surface = (*Surface)(nil)
