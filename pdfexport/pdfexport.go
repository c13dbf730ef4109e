// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pdfexport replays badge frames into a vector PDF using
// github.com/tdewolff/canvas.
//
// The output is meant for printing a paper copy of a badge or for reviewing a
// layout at a readable size. Pixels become squares of Opts.PixelSize
// millimeters.
package pdfexport

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/badge/badge"
)

const ptPerMM = 72 / 25.4

// Opts configures a Doc.
type Opts struct {
	Width, Height int

	// PixelSize is the side of one panel pixel in millimeters.
	PixelSize float64

	// Font is a TrueType font. Go Regular is used when empty.
	Font []byte

	// EmHeight is the font size in pixels at scale 1.
	EmHeight float64
}

// Doc is a badge.Drawer producing a single page PDF.
type Doc struct {
	c      *canvas.Canvas
	ctx    *canvas.Context
	family *canvas.FontFamily
	px     float64
	em     float64
	w, h   int

	color     color.Color
	thickness int
}

// New returns an empty page matching the panel size.
func New(opts *Opts) (*Doc, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("pdfexport: invalid size %dx%d", opts.Width, opts.Height)
	}
	px := opts.PixelSize
	if px <= 0 {
		px = 0.25
	}
	em := opts.EmHeight
	if em <= 0 {
		em = 24
	}
	ttf := opts.Font
	if len(ttf) == 0 {
		ttf = goregular.TTF
	}
	family := canvas.NewFontFamily("badge")
	if err := family.LoadFont(ttf, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("pdfexport: loading font: %w", err)
	}

	c := canvas.New(float64(opts.Width)*px, float64(opts.Height)*px)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	return &Doc{
		c:         c,
		ctx:       ctx,
		family:    family,
		px:        px,
		em:        em,
		w:         opts.Width,
		h:         opts.Height,
		color:     badge.Black,
		thickness: 1,
	}, nil
}

// Clear implements badge.Drawer.
func (d *Doc) Clear() {
	d.FillRect(image.Rect(0, 0, d.w, d.h))
}

// SetColor implements badge.Drawer.
func (d *Doc) SetColor(c badge.Color) {
	d.color = c
}

// SetThickness implements badge.Drawer.
func (d *Doc) SetThickness(n int) {
	if n < 1 {
		n = 1
	}
	d.thickness = n
}

// FillRect implements badge.Drawer.
func (d *Doc) FillRect(r image.Rectangle) {
	if r.Empty() {
		return
	}
	d.ctx.SetFillColor(d.color)
	d.ctx.SetStrokeColor(color.RGBA{})
	d.ctx.DrawPath(d.mm(r.Min.X), d.mm(r.Min.Y), canvas.Rectangle(d.mm(r.Dx()), d.mm(r.Dy())))
}

// Line implements badge.Drawer.
func (d *Doc) Line(from, to image.Point) {
	d.ctx.SetFillColor(color.RGBA{})
	d.ctx.SetStrokeColor(d.color)
	d.ctx.SetStrokeWidth(float64(d.thickness) * d.px)
	p := &canvas.Path{}
	p.MoveTo(0, 0)
	p.LineTo(d.mm(to.X-from.X), d.mm(to.Y-from.Y))
	d.ctx.DrawPath(d.mm(from.X)+d.px/2, d.mm(from.Y)+d.px/2, p)
}

// Text implements badge.Drawer. The pen thickness is not used, vector text
// is drawn at its regular weight.
func (d *Doc) Text(s string, at image.Point, scale float64) {
	if s == "" || scale <= 0 {
		return
	}
	face := d.family.Face(scale*d.em*d.px*ptPerMM, d.color, canvas.FontRegular, canvas.FontNormal)
	// at.Y is the vertical middle of the line.
	baseline := d.mm(at.Y) + face.Metrics().Ascent/2
	d.ctx.DrawText(d.mm(at.X), baseline, canvas.NewTextLine(face, s, canvas.Left))
}

// Image implements badge.Drawer.
func (d *Doc) Image(img *badge.Bitmap, at image.Point) {
	d.ctx.DrawImage(d.mm(at.X), d.mm(at.Y), img, canvas.DPMM(1/d.px))
}

func (d *Doc) mm(v int) float64 {
	return float64(v) * d.px
}

// WriteTo writes the page as PDF.
func (d *Doc) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	writer := pdf.New(&buf, d.c.W, d.c.H, nil)
	d.c.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("pdfexport: writing PDF: %w", err)
	}
	return buf.WriteTo(w)
}

// Export replays f into a new PDF written to w.
func Export(w io.Writer, f badge.Frame, opts *Opts) error {
	d, err := New(opts)
	if err != nil {
		return err
	}
	badge.Commit(d, f)
	_, err = d.WriteTo(w)
	return err
}

var _ badge.Drawer = (*Doc)(nil)
