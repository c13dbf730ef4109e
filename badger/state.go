// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badger

import (
	"fmt"

	"github.com/GermanBionicSystems/badge/badge"
	"github.com/GermanBionicSystems/badge/input"
	"github.com/GermanBionicSystems/badge/store"
)

// State is what the panel shows.
type State struct {
	Slot store.Slot
	Mode badge.Mode
}

// DefaultState shows the image of slot A.
var DefaultState = State{Slot: store.SlotA, Mode: badge.ShowImage}

// Apply returns the state after b is pressed. A, B and C select a slot, Up
// steps back through the modes and Down steps forward.
func (s State) Apply(b input.Button) State {
	switch b {
	case input.A:
		s.Slot = store.SlotA
	case input.B:
		s.Slot = store.SlotB
	case input.C:
		s.Slot = store.SlotC
	case input.Up:
		s.Mode = s.Mode.Prev()
	case input.Down:
		s.Mode = s.Mode.Next()
	}
	return s
}

func (s State) String() string {
	return fmt.Sprintf("%s/%s", s.Slot, s.Mode)
}
