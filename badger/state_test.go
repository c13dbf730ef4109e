// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badger

import (
	"testing"

	"github.com/GermanBionicSystems/badge/badge"
	"github.com/GermanBionicSystems/badge/input"
	"github.com/GermanBionicSystems/badge/store"
)

func TestState_Apply(t *testing.T) {
	for _, tc := range []struct {
		name    string
		from    State
		buttons []input.Button
		want    State
	}{
		{"slot", DefaultState, []input.Button{input.C}, State{store.SlotC, badge.ShowImage}},
		{"up wraps", DefaultState, []input.Button{input.Up}, State{store.SlotA, badge.ShowQR}},
		{"down", DefaultState, []input.Button{input.Down}, State{store.SlotA, badge.ShowQR}},
		{"up twice", DefaultState, []input.Button{input.Up, input.Up}, State{store.SlotA, badge.ShowImage}},
		{"slot keeps mode", State{store.SlotA, badge.ShowQR}, []input.Button{input.B}, State{store.SlotB, badge.ShowQR}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := tc.from
			for _, b := range tc.buttons {
				s = s.Apply(b)
			}
			if s != tc.want {
				t.Fatalf("got %s, want %s", s, tc.want)
			}
		})
	}
	if s := DefaultState.String(); s != "A/image" {
		t.Fatal(s)
	}
}

func TestState_ApplyDirection(t *testing.T) {
	for _, m := range []badge.Mode{badge.ShowImage, badge.ShowQR} {
		s := State{Slot: store.SlotB, Mode: m}
		if got, want := s.Apply(input.Up).Mode, m.Prev(); got != want {
			t.Errorf("%s: Up gave %s, want %s", m, got, want)
		}
		if got, want := s.Apply(input.Down).Mode, m.Next(); got != want {
			t.Errorf("%s: Down gave %s, want %s", m, got, want)
		}
	}
}
