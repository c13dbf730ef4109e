// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package badges is a container for the packages of an e-paper name badge.
//
// badge computes frames, raster, pdfexport and the display drivers in epd,
// preview and screen show them, badger ties them to the buttons in input
// and the slot files in store. The command is in cmd/badger.
package badges
