// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"fmt"
	"image"
)

// Geometry describes the fixed bands of the badge, in pixels.
type Geometry struct {
	Width  int
	Height int

	// ImageWidth is the width of the right-hand image panel.
	ImageWidth int

	CompanyHeight int
	DetailsHeight int

	LeftPadding   int
	NamePadding   int
	DetailSpacing int

	CompanyTextSize float64
	DetailsTextSize float64

	// QRBudget is the largest side, in pixels, a QR code may use.
	QRBudget int
}

// Badger2040 is the layout of the 296x128 panel of a Pimoroni Badger 2040.
var Badger2040 = Geometry{
	Width:           296,
	Height:          128,
	ImageWidth:      104,
	CompanyHeight:   40,
	DetailsHeight:   20,
	LeftPadding:     5,
	NamePadding:     10,
	DetailSpacing:   10,
	CompanyTextSize: 0.7,
	DetailsTextSize: 0.47,
	QRBudget:        104,
}

// NameHeight is the height of the band between the company and the details.
func (g *Geometry) NameHeight() int {
	return g.Height - g.CompanyHeight - 2*g.DetailsHeight - 2
}

// TextWidth is the width left of the image panel.
func (g *Geometry) TextWidth() int {
	return g.Width - g.ImageWidth - 1
}

// Bounds returns the panel rectangle.
func (g *Geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// ImageOrigin is the top-left corner of the image panel.
func (g *Geometry) ImageOrigin() image.Point {
	return image.Pt(g.Width-g.ImageWidth, 0)
}

// Validate returns an ErrInvariant failure if the bands do not fit.
func (g *Geometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fail(ErrInvariant, "geometry", fmt.Errorf("panel %dx%d", g.Width, g.Height))
	case g.ImageWidth <= 0 || g.CompanyHeight <= 0 || g.DetailsHeight <= 0:
		return fail(ErrInvariant, "geometry", fmt.Errorf("image width %d, company height %d, details height %d", g.ImageWidth, g.CompanyHeight, g.DetailsHeight))
	case g.NameHeight() <= 0:
		return fail(ErrInvariant, "geometry", fmt.Errorf("name band height %d", g.NameHeight()))
	case g.TextWidth() <= 0:
		return fail(ErrInvariant, "geometry", fmt.Errorf("text width %d", g.TextWidth()))
	case g.CompanyTextSize <= 0 || g.DetailsTextSize <= 0:
		return fail(ErrInvariant, "geometry", fmt.Errorf("text sizes %g and %g", g.CompanyTextSize, g.DetailsTextSize))
	case g.QRBudget < 0:
		return fail(ErrInvariant, "geometry", fmt.Errorf("QR budget %d", g.QRBudget))
	}
	return nil
}
