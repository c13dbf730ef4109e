// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"errors"
	"fmt"
)

var (
	// ErrMeasurement is returned when text cannot be measured.
	ErrMeasurement = errors.New("badge: text measurement failed")
	// ErrEncoding is returned when the profile URL cannot be encoded as a QR
	// code.
	ErrEncoding = errors.New("badge: QR encoding failed")
	// ErrDegenerateLayout is returned when the QR code has more modules than
	// pixels available for it.
	ErrDegenerateLayout = errors.New("badge: degenerate layout")
	// ErrInvariant is returned for geometry or input that cannot be laid out.
	ErrInvariant = errors.New("badge: invariant violated")
)

// RenderFailure describes why a frame could not be computed.
//
// errors.Is matches Kind, errors.Unwrap returns the underlying cause.
type RenderFailure struct {
	Op   string
	Kind error
	Err  error
}

func (f *RenderFailure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%v: %s", f.Kind, f.Op)
	}
	return fmt.Sprintf("%v: %s: %v", f.Kind, f.Op, f.Err)
}

// Is implements errors.Is.
func (f *RenderFailure) Is(target error) bool {
	return target == f.Kind
}

// Unwrap implements errors.Unwrap.
func (f *RenderFailure) Unwrap() error {
	return f.Err
}

func fail(kind error, op string, err error) error {
	return &RenderFailure{Op: op, Kind: kind, Err: err}
}
