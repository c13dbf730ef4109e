// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package store

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/GermanBionicSystems/badge/badge"
)

// Slot names one of the saved badges.
type Slot byte

const (
	SlotA Slot = 'A'
	SlotB Slot = 'B'
	SlotC Slot = 'C'
)

// Slots lists every slot in button order.
var Slots = []Slot{SlotA, SlotB, SlotC}

func (s Slot) String() string {
	return string(rune(s))
}

// ParseSlot returns the slot named s, case insensitive.
func ParseSlot(s string) (Slot, error) {
	for _, slot := range Slots {
		if strings.EqualFold(s, slot.String()) {
			return slot, nil
		}
	}
	return 0, fmt.Errorf("store: unknown slot %q", s)
}

func (s Slot) profileName() string {
	return "badge" + s.String() + ".txt"
}

func (s Slot) imageName() string {
	return "badge-image" + s.String() + ".bin"
}

//go:embed default-image.bin
var defaultImage []byte

// DefaultImageWidth and DefaultImageHeight are the size of the built-in
// image.
const (
	DefaultImageWidth  = 104
	DefaultImageHeight = 128
)

// Store reads and writes slot files in a directory.
type Store struct {
	dir  string
	imgW int
	imgH int
}

// New returns a Store in dir for images of w x h pixels.
func New(dir string, w, h int) *Store {
	return &Store{dir: dir, imgW: w, imgH: h}
}

// Dir returns the directory holding the slot files.
func (s *Store) Dir() string {
	return s.dir
}

// Init creates the directory and the default profile of every slot that
// has none.
func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	for _, slot := range Slots {
		if _, err := s.Profile(slot); err != nil {
			return err
		}
	}
	return nil
}

// Profile returns the profile of slot, writing badge.DefaultProfile first if
// the slot has no profile file.
func (s *Store) Profile(slot Slot) (badge.Profile, error) {
	path := filepath.Join(s.dir, slot.profileName())
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.SaveProfile(slot, &badge.DefaultProfile); err != nil {
			return badge.Profile{}, err
		}
		return badge.DefaultProfile, nil
	}
	if err != nil {
		return badge.Profile{}, fmt.Errorf("store: %w", err)
	}
	p, err := badge.ParseProfile(bytes.NewReader(data))
	if err != nil {
		return badge.Profile{}, fmt.Errorf("store: parsing %s: %w", path, err)
	}
	return p, nil
}

// SaveProfile writes p as the profile of slot.
func (s *Store) SaveProfile(slot Slot, p *badge.Profile) error {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return err
	}
	return s.write(slot.profileName(), buf.Bytes())
}

// Image returns the image of slot, or the built-in image if the slot has
// none. Short files are padded with black.
func (s *Store) Image(slot Slot) (*badge.Bitmap, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, slot.imageName()))
	if errors.Is(err, fs.ErrNotExist) {
		return s.DefaultImage(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return badge.ParseBitmap(data, s.imgW, s.imgH), nil
}

// DefaultImage returns the built-in image. When the store uses another image
// size, an all white image is returned instead.
func (s *Store) DefaultImage() *badge.Bitmap {
	if s.imgW == DefaultImageWidth && s.imgH == DefaultImageHeight {
		return badge.ParseBitmap(defaultImage, s.imgW, s.imgH)
	}
	b := badge.NewBitmap(s.imgW, s.imgH)
	for i := range b.Pix {
		b.Pix[i] = 0xff
	}
	return b
}

// SaveImage writes b as the image of slot.
func (s *Store) SaveImage(slot Slot, b *badge.Bitmap) error {
	if b.Width != s.imgW || b.Height != s.imgH {
		return fmt.Errorf("store: image is %dx%d, want %dx%d", b.Width, b.Height, s.imgW, s.imgH)
	}
	return s.write(slot.imageName(), b.Bytes())
}

func (s *Store) write(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// slotOf returns the slot a file in the store belongs to.
func slotOf(path string) (Slot, bool) {
	name := filepath.Base(path)
	for _, slot := range Slots {
		if name == slot.profileName() || name == slot.imageName() {
			return slot, true
		}
	}
	return 0, false
}
