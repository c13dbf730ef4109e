// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// ScaleSearch selects how the name font scale is searched.
type ScaleSearch int

const (
	// Linear steps down from 2.00 by 0.01 until the name fits.
	Linear ScaleSearch = iota
	// Bisect binary searches the same range. It returns the same scale as
	// Linear as long as wider scales never measure narrower.
	Bisect
)

func (s ScaleSearch) String() string {
	switch s {
	case Linear:
		return "linear"
	case Bisect:
		return "bisect"
	default:
		return fmt.Sprintf("ScaleSearch(%d)", int(s))
	}
}

// ParseScaleSearch returns the search named s, "linear" or "bisect".
func ParseScaleSearch(s string) (ScaleSearch, error) {
	switch strings.ToLower(s) {
	case "", "linear":
		return Linear, nil
	case "bisect":
		return Bisect, nil
	}
	return Linear, fmt.Errorf("badge: unknown scale search %q", s)
}

// DegeneratePolicy selects what happens when a QR code does not fit in its
// budget at one pixel per module.
type DegeneratePolicy int

const (
	// FailDegenerate fails the render with ErrDegenerateLayout.
	FailDegenerate DegeneratePolicy = iota
	// BlankDegenerate leaves the image panel empty.
	BlankDegenerate
)

func (p DegeneratePolicy) String() string {
	switch p {
	case FailDegenerate:
		return "fail"
	case BlankDegenerate:
		return "blank"
	default:
		return fmt.Sprintf("DegeneratePolicy(%d)", int(p))
	}
}

// ParseDegeneratePolicy returns the policy named s, "fail" or "blank".
func ParseDegeneratePolicy(s string) (DegeneratePolicy, error) {
	switch strings.ToLower(s) {
	case "", "fail":
		return FailDegenerate, nil
	case "blank":
		return BlankDegenerate, nil
	}
	return FailDegenerate, fmt.Errorf("badge: unknown degenerate policy %q", s)
}

// Name scales are searched in hundredths.
const (
	nameScaleMax = 200
	nameScaleMin = 10
)

// Opts configures a Layout.
type Opts struct {
	Geometry   Geometry
	Search     ScaleSearch
	Degenerate DegeneratePolicy
}

// DefaultOpts lays out a Badger 2040.
var DefaultOpts = Opts{
	Geometry: Badger2040,
}

// Layout computes badge frames. It holds no state between calls.
type Layout struct {
	g          Geometry
	m          Measurer
	enc        Encoder
	search     ScaleSearch
	degenerate DegeneratePolicy
}

// NewLayout returns a Layout measuring text with m and encoding QR codes with
// enc.
//
// The geometry is validated once here. Missing services are only reported
// by the render passes that need them.
func NewLayout(opts *Opts, m Measurer, enc Encoder) (*Layout, error) {
	if err := opts.Geometry.Validate(); err != nil {
		return nil, err
	}
	return &Layout{
		g:          opts.Geometry,
		m:          m,
		enc:        enc,
		search:     opts.Search,
		degenerate: opts.Degenerate,
	}, nil
}

// Geometry returns the validated geometry.
func (l *Layout) Geometry() Geometry {
	return l.g
}

// Format truncates the company and detail fields of p so that they fit the
// text area.
//
// The detail values are limited to the width left after their title and the
// detail spacing. Name and URL are returned as is.
func (l *Layout) Format(p Profile) (Profile, error) {
	g := &l.g
	tw := g.TextWidth()

	var err error
	if p.Company, err = Truncate(l.m, p.Company, g.CompanyTextSize, tw); err != nil {
		return Profile{}, err
	}

	for _, d := range []struct{ title, text *string }{
		{&p.Detail1Title, &p.Detail1Text},
		{&p.Detail2Title, &p.Detail2Text},
	} {
		if *d.title, err = Truncate(l.m, *d.title, g.DetailsTextSize, tw); err != nil {
			return Profile{}, err
		}
		w, err := measure(l.m, *d.title, g.DetailsTextSize)
		if err != nil {
			return Profile{}, err
		}
		if *d.text, err = Truncate(l.m, *d.text, g.DetailsTextSize, tw-g.DetailSpacing-w); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

// Render computes the frame for p. img is only used in ShowImage mode and
// must be ImageWidth x Height.
//
// Fields of p are drawn as given; run them through Format first.
func (l *Layout) Render(mode Mode, img *Bitmap, p *Profile) (Frame, error) {
	if p == nil {
		return nil, fail(ErrInvariant, "render", errors.New("no profile"))
	}
	g := &l.g
	var r recorder

	r.SetColor(Black)
	r.Clear()

	switch mode {
	case ShowImage:
		if err := l.drawImage(&r, img); err != nil {
			return nil, err
		}
	case ShowQR:
		if err := l.drawQR(&r, p.URL); err != nil {
			return nil, err
		}
	default:
		return nil, fail(ErrInvariant, "render", fmt.Errorf("unknown mode %d", int(mode)))
	}

	l.drawBorder(&r)

	r.SetColor(White)
	r.SetThickness(2)
	r.Text(p.Company, image.Pt(g.LeftPadding, g.CompanyHeight/2+1), g.CompanyTextSize)

	if err := l.drawName(&r, p.Name); err != nil {
		return nil, err
	}
	if err := l.drawDetails(&r, p); err != nil {
		return nil, err
	}
	return r.f, nil
}

func (l *Layout) drawImage(r *recorder, img *Bitmap) error {
	g := &l.g
	if img == nil {
		return fail(ErrInvariant, "image", errors.New("no image"))
	}
	if img.Width != g.ImageWidth || img.Height != g.Height {
		return fail(ErrInvariant, "image", fmt.Errorf("image is %dx%d, want %dx%d", img.Width, img.Height, g.ImageWidth, g.Height))
	}
	r.Image(img, g.ImageOrigin())
	return nil
}

func (l *Layout) drawQR(r *recorder, url string) error {
	g := &l.g
	if l.enc == nil {
		return fail(ErrEncoding, "encode", errors.New("no QR encoder"))
	}
	m, err := l.enc.Encode(url)
	if err != nil {
		return fail(ErrEncoding, fmt.Sprintf("encode %q", url), err)
	}
	if m == nil || m.Size() <= 0 {
		return fail(ErrEncoding, fmt.Sprintf("encode %q", url), errors.New("empty matrix"))
	}

	size, module := MeasureQR(g.QRBudget, m)
	if module == 0 && l.degenerate != BlankDegenerate {
		return fail(ErrDegenerateLayout, "qr", fmt.Errorf("%d modules do not fit in %d pixels", m.Size(), g.QRBudget))
	}

	top := (g.Height - size) / 2
	left := g.Width - size

	r.SetColor(White)
	r.FillRect(rect(left-3, 0, size+2, g.Height))
	if module > 0 {
		rasterize(r, image.Pt(left, top), size, module, m)
	}
	return nil
}

func (l *Layout) drawBorder(r *recorder) {
	g := &l.g
	x0, x1, y1 := g.Width-g.ImageWidth, g.Width-1, g.Height-1

	r.SetColor(White)
	r.SetThickness(1)
	r.Line(image.Pt(x0, 0), image.Pt(x1, 0))
	r.Line(image.Pt(x0, 0), image.Pt(x0, y1))
	r.Line(image.Pt(x0, y1), image.Pt(x1, y1))
	r.Line(image.Pt(x1, 0), image.Pt(x1, y1))
}

func (l *Layout) drawName(r *recorder, name string) error {
	g := &l.g
	tw := g.TextWidth()

	r.SetColor(White)
	r.SetThickness(1)
	r.FillRect(rect(0, g.CompanyHeight+1, tw+1, g.NameHeight()+1))

	scale, w, err := l.NameScale(name)
	if err != nil {
		return err
	}
	r.SetColor(Black)
	r.SetThickness(2)
	r.Text(name, image.Pt(floorDiv(tw-w, 2), g.NameHeight()/2+g.CompanyHeight+1), scale)
	return nil
}

func (l *Layout) drawDetails(r *recorder, p *Profile) error {
	g := &l.g
	tw := g.TextWidth()

	r.SetColor(White)
	r.SetThickness(1)
	r.FillRect(rect(0, g.Height-2*g.DetailsHeight, tw+1, g.DetailsHeight))
	r.FillRect(rect(0, g.Height-g.DetailsHeight, tw+1, g.DetailsHeight))

	r.SetColor(Black)
	for _, d := range []struct {
		title, text string
		y           int
	}{
		{p.Detail1Title, p.Detail1Text, g.Height - (3*g.DetailsHeight)/2},
		{p.Detail2Title, p.Detail2Text, g.Height - g.DetailsHeight/2},
	} {
		w, err := measure(l.m, d.title, g.DetailsTextSize)
		if err != nil {
			return err
		}
		r.Text(d.title, image.Pt(g.LeftPadding, d.y), g.DetailsTextSize)
		r.Text(d.text, image.Pt(g.LeftPadding+w+g.DetailSpacing, d.y), g.DetailsTextSize)
	}
	return nil
}

// NameScale returns the largest scale, from 2.00 down to 0.10 in steps of
// 0.01, at which name measures less than TextWidth-NamePadding, along with
// the width at that scale. A name that never fits gets 0.10.
func (l *Layout) NameScale(name string) (float64, int, error) {
	limit := l.g.TextWidth() - l.g.NamePadding
	fits := func(h int) (bool, int, error) {
		w, err := measure(l.m, name, hundredths(h))
		return w < limit, w, err
	}

	if l.search == Bisect {
		return l.bisectNameScale(fits)
	}

	h := nameScaleMax
	ok, w, err := fits(h)
	for err == nil && !ok && h > nameScaleMin {
		h--
		ok, w, err = fits(h)
	}
	if err != nil {
		return 0, 0, err
	}
	return hundredths(h), w, nil
}

func (l *Layout) bisectNameScale(fits func(int) (bool, int, error)) (float64, int, error) {
	ok, w, err := fits(nameScaleMax)
	if err != nil {
		return 0, 0, err
	}
	if ok {
		return hundredths(nameScaleMax), w, nil
	}
	ok, w, err = fits(nameScaleMin)
	if err != nil {
		return 0, 0, err
	}
	if !ok {
		return hundredths(nameScaleMin), w, nil
	}

	// fits(lo) holds, fits(hi) does not.
	lo, hi, loW := nameScaleMin, nameScaleMax, w
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		ok, w, err := fits(mid)
		if err != nil {
			return 0, 0, err
		}
		if ok {
			lo, loW = mid, w
		} else {
			hi = mid
		}
	}
	return hundredths(lo), loW, nil
}

func hundredths(h int) float64 {
	return float64(h) / 100
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
