// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package store keeps the badge profiles and images of each slot in a
// directory.
//
// Slot A uses badgeA.txt and badge-imageA.bin, and so on. A missing profile
// is created with badge.DefaultProfile, a missing image falls back to an
// image compiled into the binary.
package store
