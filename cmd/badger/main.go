// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// badger shows a name badge on an e-paper panel.
//
// Three slots hold a profile and a picture each. Buttons A, B and C select
// the slot, Up and Down toggle between the picture and a QR code of the
// profile URL. The panel can be mirrored to a browser and to the terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
