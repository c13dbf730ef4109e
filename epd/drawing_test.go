// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import (
	"bytes"
	"image"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

func TestDrawSpec(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts drawOpts
		want drawSpec
	}{
		{
			name: "empty",
		},
		{
			name: "smaller than display",
			opts: drawOpts{
				devSize: image.Pt(100, 200),
				buffer:  image1bit.NewVerticalLSB(image.Rect(0, 0, 104, 200)),
				dstRect: image.Rect(17, 4, 25, 8),
			},
			want: drawSpec{
				bufferDstRect: image.Rect(17, 4, 25, 8),
				memDstRect:    image.Rect(17, 4, 25, 8),
				memRect:       image.Rect(2, 4, 4, 8),
			},
		},
		{
			name: "larger than display",
			opts: drawOpts{
				devSize: image.Pt(100, 200),
				buffer:  image1bit.NewVerticalLSB(image.Rect(0, 0, 104, 200)),
				dstRect: image.Rect(-20, 50, 125, 300),
			},
			want: drawSpec{
				bufferDstRect: image.Rect(0, 50, 100, 200),
				memDstRect:    image.Rect(0, 50, 100, 200),
				memRect:       image.Rect(0, 50, 13, 200),
			},
		},
		{
			name: "badge landscape",
			opts: drawOpts{
				devSize: image.Pt(296, 128),
				origin:  TopRight,
				buffer:  image1bit.NewVerticalLSB(image.Rect(0, 0, 296, 128)),
				dstRect: image.Rect(0, 0, 296, 128),
			},
			want: drawSpec{
				bufferDstRect: image.Rect(0, 0, 296, 128),
				memDstRect:    image.Rect(0, 0, 128, 296),
				memRect:       image.Rect(0, 0, 16, 296),
			},
		},
		{
			name: "top right padded",
			opts: drawOpts{
				devSize: image.Pt(250, 122),
				origin:  TopRight,
				buffer:  image1bit.NewVerticalLSB(image.Rect(0, 0, 250, 128)),
				dstRect: image.Rect(0, 0, 10, 10),
			},
			want: drawSpec{
				bufferDstOffset: image.Pt(0, 6),
				bufferDstRect:   image.Rect(0, 6, 10, 16),
				memDstRect:      image.Rect(112, 0, 122, 10),
				memRect:         image.Rect(14, 0, 16, 10),
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.opts.spec()

			if diff := cmp.Diff(got, tc.want, cmpopts.EquateEmpty(), cmp.AllowUnexported(drawSpec{})); diff != "" {
				t.Errorf("spec() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestSendImage(t *testing.T) {
	for _, tc := range []struct {
		name string
		cmd  byte
		opts drawOpts
		want []record
	}{
		{
			name: "empty",
			opts: drawOpts{
				buffer: image1bit.NewVerticalLSB(image.Rectangle{}),
			},
		},
		{
			name: "partial non-aligned",
			cmd:  writeRAMRed,
			opts: drawOpts{
				devSize: image.Pt(100, 64),
				dstRect: image.Rect(17, 4, 41, 8),
				buffer: func() *image1bit.VerticalLSB {
					img := image1bit.NewVerticalLSB(image.Rect(0, 0, 104, 64))
					draw.Src.Draw(img, image.Rect(17, 4, 41, 8), &image.Uniform{image1bit.On}, image.Point{})
					return img
				}(),
			},
			want: []record{
				{cmd: dataEntryModeSetting, data: []byte{0x3}},
				{cmd: setRAMXAddressStartEndPosition, data: []byte{2, 6 - 1}},
				{cmd: setRAMYAddressStartEndPosition, data: []byte{4, 0, 8 - 1, 0}},
				{cmd: setRAMXAddressCounter, data: []byte{2}},
				{cmd: setRAMYAddressCounter, data: []byte{4, 0}},
				{
					cmd:  writeRAMRed,
					data: bytes.Repeat([]byte{0x7f, 0xff, 0xff, 0x80}, 4),
				},
			},
		},
		{
			name: "rotated pixel",
			cmd:  writeRAMBW,
			opts: drawOpts{
				devSize: image.Pt(16, 8),
				origin:  TopRight,
				dstRect: image.Rect(0, 0, 16, 8),
				buffer: func() *image1bit.VerticalLSB {
					img := image1bit.NewVerticalLSB(image.Rect(0, 0, 16, 8))
					img.SetBit(0, 0, image1bit.On)
					return img
				}(),
			},
			want: []record{
				{cmd: dataEntryModeSetting, data: []byte{0x3}},
				{cmd: setRAMXAddressStartEndPosition, data: []byte{0, 0}},
				{cmd: setRAMYAddressStartEndPosition, data: []byte{0, 0, 16 - 1, 0}},
				{cmd: setRAMXAddressCounter, data: []byte{0}},
				{cmd: setRAMYAddressCounter, data: []byte{0, 0}},
				{
					cmd:  writeRAMBW,
					data: append([]byte{0x01}, make([]byte, 15)...),
				},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController

			spec := tc.opts.spec()

			tc.opts.sendImage(&got, tc.cmd, &spec)

			if diff := diffRecords(got, tc.want); diff != "" {
				t.Errorf("sendImage() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestDrawImage(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts drawOpts
		want []record
	}{
		{
			name: "empty",
		},
		{
			name: "both buffers",
			opts: drawOpts{
				devSize: image.Pt(16, 2),
				buffer:  image1bit.NewVerticalLSB(image.Rect(0, 0, 16, 2)),
				dstRect: image.Rect(0, 0, 16, 2),
				src:     &image.Uniform{image1bit.On},
			},
			want: func() []record {
				setup := []record{
					{cmd: dataEntryModeSetting, data: []byte{0x3}},
					{cmd: setRAMXAddressStartEndPosition, data: []byte{0, 1}},
					{cmd: setRAMYAddressStartEndPosition, data: []byte{0, 0, 1, 0}},
					{cmd: setRAMXAddressCounter, data: []byte{0}},
					{cmd: setRAMYAddressCounter, data: []byte{0, 0}},
				}
				var want []record
				for _, cmd := range []byte{writeRAMBW, writeRAMRed} {
					want = append(want, setup...)
					want = append(want, record{cmd: cmd, data: []byte{0xff, 0xff, 0xff, 0xff}})
				}
				return want
			}(),
		},
		{
			name: "full",
			opts: drawOpts{
				commands: []byte{writeRAMRed},
				devSize:  image.Pt(80, 120),
				buffer:   image1bit.NewVerticalLSB(image.Rect(0, 0, 80, 120)),
				dstRect:  image.Rect(0, 0, 80, 120),
				src:      &image.Uniform{image1bit.On},
				srcPts:   image.Pt(33, 44),
			},
			want: []record{
				{cmd: dataEntryModeSetting, data: []byte{0x3}},
				{cmd: setRAMXAddressStartEndPosition, data: []byte{0, 10 - 1}},
				{cmd: setRAMYAddressStartEndPosition, data: []byte{0, 0, 120 - 1, 0}},
				{cmd: setRAMXAddressCounter, data: []byte{0}},
				{cmd: setRAMYAddressCounter, data: []byte{0, 0}},
				{
					cmd:  writeRAMRed,
					data: bytes.Repeat([]byte{0xff}, 80/8*120),
				},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController

			drawImage(&got, &tc.opts)

			if diff := diffRecords(got, tc.want); diff != "" {
				t.Errorf("drawImage() difference (-got +want):\n%s", diff)
			}
		})
	}
}
