// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen implements a display.Drawer that shows the badge panel in a
// terminal using ANSI 256 color codes.
//
// Useful to try layouts on a host before flashing a board.
package screen

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	// Size of the panel.
	W, H int
	// Step is the side of the square of panel pixels shown as one terminal
	// block. 0 is 1.
	Step int
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Out defaults to a colorable stdout.
	Out io.Writer
}

// Dev is a panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	step    int
	palette ansi256.Palette

	pixels *image.Gray
	buf    bytes.Buffer
	// rows printed by the last refresh, to redraw in place.
	rows int
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Out
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	step := opts.Step
	if step < 1 {
		step = 1
	}
	return &Dev{
		w:       w,
		step:    step,
		palette: *p,
		pixels:  image.NewGray(image.Rect(0, 0, opts.W, opts.H)),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen{%dx%d}", d.pixels.Rect.Dx(), d.pixels.Rect.Dy())
}

// Halt implements conn.Resource.
//
// It resets the terminal colors and leaves the last image in the scrollback.
func (d *Dev) Halt() error {
	_, err := io.WriteString(d.w, "\033[0m\n")
	d.rows = 0
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.pixels.Rect
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.pixels, r, src, sp, draw.Src)
	return d.refresh()
}

// block returns the mean gray level of the step x step square at (x, y) as
// the opaque color the palette matches.
func (d *Dev) block(x, y int) color.NRGBA {
	sum, n := 0, 0
	for j := y; j < y+d.step && j < d.pixels.Rect.Max.Y; j++ {
		for i := x; i < x+d.step && i < d.pixels.Rect.Max.X; i++ {
			sum += int(d.pixels.GrayAt(i, j).Y)
			n++
		}
	}
	g := uint8(sum / n)
	return color.NRGBA{R: g, G: g, B: g, A: 0xff}
}

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated per call.
	d.buf.Reset()
	if d.rows > 0 {
		fmt.Fprintf(&d.buf, "\033[%dA", d.rows)
	}
	d.rows = 0
	r := d.pixels.Rect
	for y := r.Min.Y; y < r.Max.Y; y += d.step {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := r.Min.X; x < r.Max.X; x += d.step {
			_, _ = io.WriteString(&d.buf, d.palette.Block(d.block(x, y)))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
		d.rows++
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
