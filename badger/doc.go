// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package badger runs the badge: it turns button presses into slot and mode
// changes and redraws the panel after each of them.
//
// A redraw loads the profile and image of the current slot, computes the
// frame with badge.Layout and only then rasterizes it and flushes the 1 bit
// result to every sink. A frame that fails to compute leaves the sinks
// untouched.
package badger
