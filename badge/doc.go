// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package badge lays out a name badge for a small e-paper panel.
//
// The panel is split into a text area on the left and a square-ish image
// panel on the right. The text area holds a company band, a name band whose
// font scale shrinks until the name fits, and two detail rows made of a title
// and a value. The image panel shows either a 1-bit bitmap or a QR code of the
// profile URL.
//
// Rendering is split in two steps. Layout.Render computes a Frame, a list of
// drawing commands, without touching any surface. Commit then replays the
// frame onto a Drawer. A failed render never leaves a half drawn panel.
//
// The text measurement and QR encoding services are injected as Measurer and
// Encoder; see packages raster and qrcode for the implementations used on
// the device.
package badge
