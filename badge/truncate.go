// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"errors"
	"fmt"
)

// Truncate drops trailing characters of s until it measures at most width
// pixels at scale, or nothing is left.
//
// It removes whole runes, one at a time, and measures at most once per rune.
// A string measuring 0 pixels is kept as is.
func Truncate(m Measurer, s string, scale float64, width int) (string, error) {
	runes := []rune(s)
	for n := len(runes); ; n-- {
		t := string(runes[:n])
		if n == 0 {
			return t, nil
		}
		w, err := measure(m, t, scale)
		if err != nil {
			return "", err
		}
		if w <= 0 || w <= width {
			return t, nil
		}
	}
}

func measure(m Measurer, s string, scale float64) (int, error) {
	if m == nil {
		return 0, fail(ErrMeasurement, "measure", errors.New("no text measurer"))
	}
	w, err := m.MeasureText(s, scale)
	if err != nil {
		return 0, fail(ErrMeasurement, fmt.Sprintf("measure %q at %.2f", s, scale), err)
	}
	return w, nil
}
