// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package epd drives the SSD1675 and SSD1680 e-paper controllers used by
// badge sized displays.
//
// The driver keeps a copy of the panel in memory and only uploads the area
// passed to Draw. The panel keeps its image without power, so Halt puts the
// controller into deep sleep instead of clearing it.
//
// Datasheets
//
// https://www.good-display.com/companyfile/101.html
//
// https://www.waveshare.com/w/upload/d/d5/2.13inch_e-Paper_Specification.pdf
package epd
