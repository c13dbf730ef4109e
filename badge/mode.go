// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"fmt"
	"strings"
)

// Mode selects what the image panel shows.
type Mode int

const (
	ShowImage Mode = iota
	ShowQR

	numModes = 2
)

// Next returns the following mode, wrapping around.
func (m Mode) Next() Mode {
	return (m.normalize() + 1) % numModes
}

// Prev returns the preceding mode, wrapping around.
func (m Mode) Prev() Mode {
	return (m.normalize() + numModes - 1) % numModes
}

func (m Mode) normalize() Mode {
	return ((m % numModes) + numModes) % numModes
}

func (m Mode) String() string {
	switch m {
	case ShowImage:
		return "image"
	case ShowQR:
		return "qr"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode returns the Mode named s ("image" or "qr").
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "image", "img":
		return ShowImage, nil
	case "qr", "qrcode":
		return ShowQR, nil
	}
	return ShowImage, fmt.Errorf("badge: unknown mode %q", s)
}
