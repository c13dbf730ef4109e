// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"errors"
	"math"
	"unicode/utf8"
)

// monoMeasurer measures every rune as advance pixels wide at scale 1.
type monoMeasurer struct {
	advance int
	calls   int
	err     error
}

func (m *monoMeasurer) MeasureText(s string, scale float64) (int, error) {
	m.calls++
	if m.err != nil {
		return 0, m.err
	}
	h := int(math.Round(scale * 100))
	return utf8.RuneCountInString(s) * m.advance * h / 100, nil
}

type fakeEncoder struct {
	m   Matrix
	err error
}

func (e *fakeEncoder) Encode(string) (Matrix, error) {
	return e.m, e.err
}

// checkerMatrix returns an n x n matrix with every other module dark.
func checkerMatrix(n int) BoolMatrix {
	m := make(BoolMatrix, n)
	for y := range m {
		m[y] = make([]bool, n)
		for x := range m[y] {
			m[y][x] = (x+y)%2 == 0
		}
	}
	return m
}

func countDark(m Matrix) int {
	n := 0
	for y := 0; y < m.Size(); y++ {
		for x := 0; x < m.Size(); x++ {
			if m.ModuleAt(x, y) {
				n++
			}
		}
	}
	return n
}

var errBroken = errors.New("broken")
