// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GermanBionicSystems/badge/badge"
	"github.com/GermanBionicSystems/badge/epd"
	"github.com/GermanBionicSystems/badge/input"
	"github.com/GermanBionicSystems/badge/qrcode"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(badge.Badger2040, c.Geometry.Badge()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	opts, err := c.LayoutOpts()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(badge.DefaultOpts, opts); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	q, err := c.QROpts()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(qrcode.DefaultOpts, q); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	d, err := c.DisplayOpts()
	if err != nil {
		t.Fatal(err)
	}
	if d.Width != epd.EPD2in9v2.Width || d.Origin != epd.TopRight {
		t.Fatalf("unexpected display %+v", d)
	}
	if !c.Display.HatPins() {
		t.Fatal("default display must use the HAT pins")
	}
	if n := len(c.ButtonPins()); n != 5 {
		t.Fatalf("%d buttons", n)
	}
}

func TestParse(t *testing.T) {
	const doc = `
geometry:
  image_width: 96
layout:
  search: bisect
  degenerate: blank
qr:
  level: high
display:
  driver: none
buttons:
  up: ""
  down: ""
  active_low: true
  debounce: 20ms
`
	c, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	opts, err := c.LayoutOpts()
	if err != nil {
		t.Fatal(err)
	}
	want := badge.Opts{Geometry: badge.Badger2040, Search: badge.Bisect, Degenerate: badge.BlankDegenerate}
	want.Geometry.ImageWidth = 96
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if q, _ := c.QROpts(); q.Level != qrcode.High {
		t.Fatalf("level %v", q.Level)
	}
	if d, err := c.DisplayOpts(); err != nil || d != nil {
		t.Fatalf("DisplayOpts() = %v, %v", d, err)
	}
	wantPins := map[input.Button]string{input.A: "GPIO12", input.B: "GPIO13", input.C: "GPIO14"}
	if diff := cmp.Diff(wantPins, c.ButtonPins()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	g := c.GPIOOpts()
	if !g.ActiveLow || g.Debounce != 20*time.Millisecond {
		t.Fatalf("GPIOOpts() = %+v", g)
	}
}

func TestParse_empty(t *testing.T) {
	c, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), c); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestParse_errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		doc  string
	}{
		{"unknown key", "colour: red\n"},
		{"bad yaml", "geometry: [\n"},
		{"search", "layout:\n  search: random\n"},
		{"degenerate", "layout:\n  degenerate: shrink\n"},
		{"level", "qr:\n  level: extreme\n"},
		{"driver", "display:\n  driver: lcd\n"},
		{"geometry", "geometry:\n  image_width: 400\n"},
		{"font", "font:\n  em: -1\n"},
		{"store", "store:\n  dir: \"\"\n"},
		{"debounce", "buttons:\n  debounce: -1s\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tc.doc)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParse_geometryInvariant(t *testing.T) {
	_, err := Parse(strings.NewReader("geometry:\n  image_width: 400\n"))
	if !errors.Is(err, badge.ErrInvariant) {
		t.Fatalf("got %v, want ErrInvariant", err)
	}
}

func TestWriteToLoad(t *testing.T) {
	c := Default()
	c.Layout.Search = "bisect"
	c.Buttons.Debounce = 75 * time.Millisecond

	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "badge.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(c, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestLoad_missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("got %v", err)
	}
}
