// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package input delivers badge button presses.
//
// Buttons A, B and C select a slot, Up and Down cycle the display mode. A
// GPIO source reads the buttons of the board through periph, a Chan source
// is fed programmatically, for example by the HTTP preview.
package input
