// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badge

import (
	"errors"
	"fmt"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	for _, tc := range []struct {
		s     string
		scale float64
		width int
		want  string
	}{
		{s: "", width: 100, scale: 1, want: ""},
		{s: "hello", width: 100, scale: 1, want: "hello"},
		{s: "hello", width: 50, scale: 1, want: "hello"},
		{s: "hello", width: 49, scale: 1, want: "hell"},
		{s: "hello", width: 9, scale: 1, want: ""},
		{s: "hello", width: 0, scale: 1, want: ""},
		{s: "hello", width: -7, scale: 1, want: ""},
		{s: "hello", width: 20, scale: 0.5, want: "hell"},
		{s: "grüße", width: 30, scale: 1, want: "grü"},
	} {
		t.Run(fmt.Sprintf("%q/%d/%.2f", tc.s, tc.width, tc.scale), func(t *testing.T) {
			m := &monoMeasurer{advance: 10}
			got, err := Truncate(m, tc.s, tc.scale, tc.width)
			if err != nil {
				t.Fatalf("Truncate() failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("Truncate() = %q, want %q", got, tc.want)
			}
			if max := utf8.RuneCountInString(tc.s) + 1; m.calls > max {
				t.Errorf("Truncate() measured %d times, want at most %d", m.calls, max)
			}
		})
	}
}

func TestTruncateProperties(t *testing.T) {
	m := &monoMeasurer{advance: 13}
	for _, s := range []string{"", "a", "mustelid inc", "H. Badger", "Wolfeschlegelsteinhausenbergerdorff", "日本語のテキスト"} {
		for _, scale := range []float64{0.1, 0.47, 0.7, 2} {
			for _, width := range []int{0, 1, 5, 42, 191, 1000} {
				got, err := Truncate(m, s, scale, width)
				if err != nil {
					t.Fatal(err)
				}
				if w, _ := m.MeasureText(got, scale); w > width {
					t.Errorf("Truncate(%q, %.2f, %d) = %q measures %d", s, scale, width, got, w)
				}
				if len(got) > len(s) {
					t.Errorf("Truncate(%q, %.2f, %d) = %q grew", s, scale, width, got)
				}
				if again, _ := Truncate(m, got, scale, width); again != got {
					t.Errorf("Truncate() not idempotent: %q then %q", got, again)
				}
			}
		}
	}
}

func TestTruncateFailure(t *testing.T) {
	if _, err := Truncate(&monoMeasurer{err: errBroken}, "abc", 1, 10); !errors.Is(err, ErrMeasurement) {
		t.Errorf("Truncate() returned %v, want ErrMeasurement", err)
	} else if !errors.Is(err, errBroken) {
		t.Errorf("Truncate() returned %v, want cause %v", err, errBroken)
	}

	if _, err := Truncate(nil, "abc", 1, 10); !errors.Is(err, ErrMeasurement) {
		t.Errorf("Truncate(nil) returned %v, want ErrMeasurement", err)
	}

	var f *RenderFailure
	if _, err := Truncate(nil, "abc", 1, 10); !errors.As(err, &f) {
		t.Errorf("Truncate(nil) returned %T, want *RenderFailure", err)
	}
}
