// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"fmt"
	"image"
)

// Op is the kind of a drawing command.
type Op uint8

const (
	OpClear Op = iota
	OpSetColor
	OpSetThickness
	OpFillRect
	OpLine
	OpText
	OpImage
)

func (o Op) String() string {
	switch o {
	case OpClear:
		return "Clear"
	case OpSetColor:
		return "SetColor"
	case OpSetThickness:
		return "SetThickness"
	case OpFillRect:
		return "FillRect"
	case OpLine:
		return "Line"
	case OpText:
		return "Text"
	case OpImage:
		return "Image"
	default:
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
}

// Command is a single drawing primitive. Only the fields used by Op are set.
type Command struct {
	Op        Op
	Color     Color
	Thickness int
	// Rect is the area of OpFillRect. It is never canonicalized, a rectangle
	// with Max before Min would be a layout bug.
	Rect     image.Rectangle
	From, To image.Point
	// At is the anchor of OpText and OpImage.
	At    image.Point
	Text  string
	Scale float64
	Image *Bitmap
}

func (c Command) String() string {
	switch c.Op {
	case OpSetColor:
		return fmt.Sprintf("SetColor(%s)", c.Color)
	case OpSetThickness:
		return fmt.Sprintf("SetThickness(%d)", c.Thickness)
	case OpFillRect:
		return fmt.Sprintf("FillRect(%v)", c.Rect)
	case OpLine:
		return fmt.Sprintf("Line(%v, %v)", c.From, c.To)
	case OpText:
		return fmt.Sprintf("Text(%q, %v, %.2f)", c.Text, c.At, c.Scale)
	case OpImage:
		return fmt.Sprintf("Image(%dx%d, %v)", c.Image.Width, c.Image.Height, c.At)
	default:
		return c.Op.String()
	}
}

// Frame is the computed list of commands for one redraw.
type Frame []Command

// Count returns the number of commands of kind op.
func (f Frame) Count(op Op) int {
	n := 0
	for _, c := range f {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Commit replays f onto d.
func Commit(d Drawer, f Frame) {
	for _, c := range f {
		switch c.Op {
		case OpClear:
			d.Clear()
		case OpSetColor:
			d.SetColor(c.Color)
		case OpSetThickness:
			d.SetThickness(c.Thickness)
		case OpFillRect:
			d.FillRect(c.Rect)
		case OpLine:
			d.Line(c.From, c.To)
		case OpText:
			d.Text(c.Text, c.At, c.Scale)
		case OpImage:
			d.Image(c.Image, c.At)
		}
	}
}

// recorder builds a Frame. It implements Drawer.
type recorder struct {
	f Frame
}

func (r *recorder) Clear() {
	r.f = append(r.f, Command{Op: OpClear})
}

func (r *recorder) SetColor(c Color) {
	r.f = append(r.f, Command{Op: OpSetColor, Color: c})
}

func (r *recorder) SetThickness(n int) {
	r.f = append(r.f, Command{Op: OpSetThickness, Thickness: n})
}

func (r *recorder) FillRect(rect image.Rectangle) {
	r.f = append(r.f, Command{Op: OpFillRect, Rect: rect})
}

func (r *recorder) Line(from, to image.Point) {
	r.f = append(r.f, Command{Op: OpLine, From: from, To: to})
}

func (r *recorder) Text(s string, at image.Point, scale float64) {
	r.f = append(r.f, Command{Op: OpText, Text: s, At: at, Scale: scale})
}

func (r *recorder) Image(img *Bitmap, at image.Point) {
	r.f = append(r.f, Command{Op: OpImage, Image: img, At: at})
}

// rect returns the x, y, w, h rectangle without canonicalizing it.
func rect(x, y, w, h int) image.Rectangle {
	return image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+w, y+h)}
}

var _ Drawer = (*recorder)(nil)
