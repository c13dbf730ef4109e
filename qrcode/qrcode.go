// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package qrcode encodes badge URLs as QR module matrices.
package qrcode

import (
	"fmt"
	"strings"

	goqr "github.com/skip2/go-qrcode"

	"github.com/GermanBionicSystems/badge/badge"
)

// Level is the error recovery level of the encoded symbol.
type Level = goqr.RecoveryLevel

const (
	Low     = goqr.Low
	Medium  = goqr.Medium
	High    = goqr.High
	Highest = goqr.Highest
)

// Opts configures an Encoder.
type Opts struct {
	Level Level
	// QuietZone keeps the four module wide light border around the symbol.
	QuietZone bool
}

// DefaultOpts encodes at medium recovery without a quiet zone; the badge
// panel border provides the contrast instead.
var DefaultOpts = Opts{
	Level: Medium,
}

// Encoder implements badge.Encoder.
type Encoder struct {
	opts Opts
}

// New returns an Encoder.
func New(opts *Opts) *Encoder {
	return &Encoder{opts: *opts}
}

// Encode implements badge.Encoder.
//
// The smallest QR version holding text at the configured level is used.
func (e *Encoder) Encode(text string) (badge.Matrix, error) {
	q, err := goqr.New(text, e.opts.Level)
	if err != nil {
		return nil, fmt.Errorf("qrcode: encoding %d bytes: %w", len(text), err)
	}
	q.DisableBorder = !e.opts.QuietZone
	return badge.BoolMatrix(q.Bitmap()), nil
}

func (e *Encoder) String() string {
	return fmt.Sprintf("qrcode.Encoder{%s}", LevelString(e.opts.Level))
}

// ParseLevel returns the recovery level named s: low, medium, high or
// highest (also L, M, Q, H).
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "low", "l":
		return Low, nil
	case "", "medium", "m":
		return Medium, nil
	case "high", "q":
		return High, nil
	case "highest", "h":
		return Highest, nil
	}
	return Medium, fmt.Errorf("qrcode: unknown recovery level %q", s)
}

// LevelString returns the name accepted by ParseLevel.
func LevelString(l Level) string {
	switch l {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	case Highest:
		return "highest"
	default:
		return fmt.Sprint(int(l))
	}
}

var _ badge.Encoder = (*Encoder)(nil)
