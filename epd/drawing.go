// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import (
	"encoding/binary"
	"image"
	"image/draw"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// setMemoryArea configures the target drawing area (horizontal is in bytes,
// vertical in pixels).
func setMemoryArea(ctrl controller, area image.Rectangle) {
	startX, endX := uint8(area.Min.X), uint8(area.Max.X-1)

	var startEndY [4]byte
	binary.LittleEndian.PutUint16(startEndY[0:], uint16(area.Min.Y))
	binary.LittleEndian.PutUint16(startEndY[2:], uint16(area.Max.Y-1))

	ctrl.sendCommand(dataEntryModeSetting)
	// Y increment, X increment; update address counter in X direction
	ctrl.sendData([]byte{0b011})

	ctrl.sendCommand(setRAMXAddressStartEndPosition)
	ctrl.sendData([]byte{startX, endX})

	ctrl.sendCommand(setRAMYAddressStartEndPosition)
	ctrl.sendData(startEndY[:])

	ctrl.sendCommand(setRAMXAddressCounter)
	ctrl.sendData([]byte{startX})

	ctrl.sendCommand(setRAMYAddressCounter)
	ctrl.sendData(startEndY[:2])
}

type drawOpts struct {
	// RAM commands to upload to; both buffers when empty.
	commands []byte
	devSize  image.Point
	origin   Corner
	buffer   *image1bit.VerticalLSB
	dstRect  image.Rectangle
	src      image.Image
	srcPts   image.Point
}

type drawSpec struct {
	// Offset from the logical buffer position to the buffer position aligned
	// with the physical top-left corner. It is non-zero when the origin puts
	// the byte padding of the buffer in front of the visible area.
	bufferDstOffset image.Point

	// Destination in buffer in pixels.
	bufferDstRect image.Rectangle

	// Destination in device RAM in pixels, rotated for the origin.
	memDstRect image.Rectangle

	// Area to send to device; horizontally in bytes, vertically in pixels.
	memRect image.Rectangle
}

// spec pre-computes the various offsets required for sending image updates to
// the device.
func (o *drawOpts) spec() drawSpec {
	s := drawSpec{
		bufferDstRect: image.Rectangle{Max: o.devSize}.Intersect(o.dstRect),
	}
	if s.bufferDstRect.Empty() {
		return s
	}

	pad := o.buffer.Bounds().Size().Sub(o.devSize)
	switch o.origin {
	case TopRight:
		s.bufferDstOffset.Y = pad.Y
	case BottomRight, BottomLeft:
		s.bufferDstOffset = pad
	}

	r := s.bufferDstRect
	switch o.origin {
	case TopLeft:
		s.memDstRect = r
	case TopRight:
		s.memDstRect = image.Rect(o.devSize.Y-r.Max.Y, r.Min.X, o.devSize.Y-r.Min.Y, r.Max.X)
	case BottomRight:
		s.memDstRect = image.Rect(o.devSize.X-r.Max.X, o.devSize.Y-r.Max.Y, o.devSize.X-r.Min.X, o.devSize.Y-r.Min.Y)
	case BottomLeft:
		s.memDstRect = image.Rect(r.Min.Y, o.devSize.X-r.Max.X, r.Max.Y, o.devSize.X-r.Min.X)
	}

	s.bufferDstRect = s.bufferDstRect.Add(s.bufferDstOffset)

	s.memRect = image.Rect(
		s.memDstRect.Min.X/8, s.memDstRect.Min.Y,
		(s.memDstRect.Max.X+7)/8, s.memDstRect.Max.Y,
	)

	return s
}

// bufferPos maps a pixel in device RAM to the logical buffer position drawn
// there.
func (o *drawOpts) bufferPos(memX, memY int) image.Point {
	switch o.origin {
	case TopRight:
		return image.Pt(memY, o.devSize.Y-memX-1)
	case BottomRight:
		return image.Pt(o.devSize.X-memX-1, o.devSize.Y-memY-1)
	case BottomLeft:
		return image.Pt(o.devSize.X-memY-1, memX)
	default:
		return image.Pt(memX, memY)
	}
}

// sendImage sends an image to the controller after setting up the registers.
func (o *drawOpts) sendImage(ctrl controller, cmd byte, spec *drawSpec) {
	if spec.memRect.Empty() {
		return
	}

	setMemoryArea(ctrl, spec.memRect)

	ctrl.sendCommand(cmd)

	row := make([]byte, spec.memRect.Dx())

	for memY := spec.memRect.Min.Y; memY < spec.memRect.Max.Y; memY++ {
		for i := range row {
			row[i] = 0
			memX := (spec.memRect.Min.X + i) * 8

			for bit := 0; bit < 8; bit++ {
				pos := o.bufferPos(memX+bit, memY).Add(spec.bufferDstOffset)
				if o.buffer.BitAt(pos.X, pos.Y) {
					row[i] |= 0x80 >> bit
				}
			}
		}

		ctrl.sendData(row)
	}
}

func drawImage(ctrl controller, opts *drawOpts) {
	s := opts.spec()

	if s.memRect.Empty() {
		return
	}

	// The buffer is kept in logical orientation. Rotation and alignment with
	// the origin happens while sending the image data.
	draw.Src.Draw(opts.buffer, s.bufferDstRect, opts.src, opts.srcPts)

	commands := opts.commands

	if len(commands) == 0 {
		commands = []byte{writeRAMBW, writeRAMRed}
	}

	// Keep the two buffers in sync.
	for _, cmd := range commands {
		opts.sendImage(ctrl, cmd, &s)
	}
}
