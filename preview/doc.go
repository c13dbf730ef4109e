// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package preview shows the badge panel in a web browser.
//
// Display is a display.Drawer. Its HTTP handler serves a page with the panel
// and the badge buttons, a snapshot of the panel and a stream of images that
// is updated on every Draw. The stream uses "multipart/x-mixed-replace", the
// MJPEG protocol of IP cameras, with PNG images by default.
//
// Button presses posted to the handler are delivered through an input.Chan,
// so the badge can be driven without hardware.
package preview
