// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"sync"

	"github.com/GermanBionicSystems/badge/input"
	"golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"
)

// Options for preview displays.
type Options struct {
	// Width and height of the panel.
	Width, Height int
	// Scale enlarges every panel pixel to Scale x Scale image pixels. 0 is 1.
	Scale int
	// Format specifies the image format to send to clients.
	Format ImageFormat
	// Presses receives the buttons pressed on the page. Nil disables them.
	Presses *input.Chan
}

// Display keeps a gray copy of the panel and serves it over HTTP.
type Display struct {
	defaultFormat ImageFormat
	scale         int
	presses       *input.Chan

	mu       sync.Mutex
	buffer   *image.Gray
	clients  map[*client]struct{}
	snapshot map[ImageFormat][]byte
	frames   int
}

// New returns a preview display, black until the first Draw.
func New(opt *Options) *Display {
	scale := opt.Scale
	if scale < 1 {
		scale = 1
	}
	return &Display{
		defaultFormat: opt.Format,
		scale:         scale,
		presses:       opt.Presses,
		buffer:        image.NewGray(image.Rect(0, 0, opt.Width, opt.Height)),
		clients:       map[*client]struct{}{},
		snapshot:      map[ImageFormat][]byte{},
	}
}

func (d *Display) String() string {
	return fmt.Sprintf("preview.Display{%dx%d}", d.buffer.Rect.Dx(), d.buffer.Rect.Dy())
}

// Halt terminates all running streams asynchronously.
func (d *Display) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for c := range d.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
	return nil
}

// ColorModel implements display.Drawer.
func (d *Display) ColorModel() color.Model {
	return color.GrayModel
}

// Bounds implements display.Drawer.
func (d *Display) Bounds() image.Rectangle {
	return d.buffer.Bounds()
}

// Draw implements display.Drawer and refreshes every stream.
func (d *Display) Draw(dstRect image.Rectangle, src image.Image, srcPts image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	stddraw.Draw(d.buffer, dstRect, src, srcPts, stddraw.Src)
	d.frames++
	clear(d.snapshot)
	for c := range d.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
	return nil
}

// Frames returns the number of Draw calls so far.
func (d *Display) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// encode returns the panel encoded as format. The result is cached until the
// next Draw and must not be modified.
func (d *Display) encode(format ImageFormat) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.snapshot[format]; ok {
		return b, nil
	}

	var img image.Image = d.buffer
	if d.scale > 1 {
		r := d.buffer.Bounds()
		big := image.NewGray(image.Rect(0, 0, r.Dx()*d.scale, r.Dy()*d.scale))
		draw.NearestNeighbor.Scale(big, big.Bounds(), d.buffer, r, draw.Src, nil)
		img = big
	}

	var buf bytes.Buffer
	if err := format.encode(&buf, img); err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	d.snapshot[format] = buf.Bytes()
	return buf.Bytes(), nil
}

var _ display.Drawer = (*Display)(nil)
