// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
)

// ImageFormat is the encoding of the panel images sent to clients.
type ImageFormat int

const (
	// PNG sends two color paletted images, exact for a 1 bit panel and a
	// fraction of the size of a gray PNG.
	PNG ImageFormat = iota
	// JPEG is lossy and blurs glyph edges. Some browsers render multipart
	// JPEG streams more smoothly.
	JPEG
)

// DefaultFormat is used when neither Options nor the "format" URL parameter
// select one.
const DefaultFormat = PNG

// panel holds the two colors an e-paper pixel can take.
var panel = color.Palette{color.Gray{}, color.Gray{Y: 0xff}}

// ParseImageFormat returns the format named s: "png", "jpeg" or "jpg", in
// any case.
func ParseImageFormat(s string) (ImageFormat, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return DefaultFormat, fmt.Errorf("preview: unknown image format %q", s)
}

func (f ImageFormat) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	default:
		return fmt.Sprintf("ImageFormat(%d)", int(f))
	}
}

func (f ImageFormat) mimeType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// encode writes img in format f. PNG images are mapped to black and white
// first.
func (f ImageFormat) encode(w io.Writer, img image.Image) error {
	switch f {
	case PNG:
		p := image.NewPaletted(img.Bounds(), panel)
		draw.Draw(p, p.Rect, img, p.Rect.Min, draw.Src)
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		return enc.Encode(w, p)
	case JPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	}
	return fmt.Errorf("unhandled image format %s", f)
}
