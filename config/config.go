// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the badge configuration from YAML.
//
// Every field has a default matching a Badger 2040, so an empty file is a
// valid configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/GermanBionicSystems/badge/badge"
	"github.com/GermanBionicSystems/badge/epd"
	"github.com/GermanBionicSystems/badge/input"
	"github.com/GermanBionicSystems/badge/qrcode"
)

// Config is the whole configuration.
type Config struct {
	Geometry Geometry `yaml:"geometry"`
	Layout   Layout   `yaml:"layout"`
	QR       QR       `yaml:"qr"`
	Font     Font     `yaml:"font"`
	Store    Store    `yaml:"store"`
	Display  Display  `yaml:"display"`
	Preview  Preview  `yaml:"preview"`
	Buttons  Buttons  `yaml:"buttons"`
}

// Geometry mirrors badge.Geometry.
type Geometry struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	ImageWidth      int     `yaml:"image_width"`
	CompanyHeight   int     `yaml:"company_height"`
	DetailsHeight   int     `yaml:"details_height"`
	LeftPadding     int     `yaml:"left_padding"`
	NamePadding     int     `yaml:"name_padding"`
	DetailSpacing   int     `yaml:"detail_spacing"`
	CompanyTextSize float64 `yaml:"company_text_size"`
	DetailsTextSize float64 `yaml:"details_text_size"`
	QRBudget        int     `yaml:"qr_budget"`
}

// Layout selects the layout strategies.
type Layout struct {
	// Search is "linear" or "bisect".
	Search string `yaml:"search"`
	// Degenerate is "fail" or "blank".
	Degenerate string `yaml:"degenerate"`
}

// QR configures the QR encoder.
type QR struct {
	// Level is low, medium, high or highest.
	Level     string `yaml:"level"`
	QuietZone bool   `yaml:"quiet_zone"`
}

// Font selects the text font.
type Font struct {
	// Path to a TrueType font; Go Regular when empty.
	Path string `yaml:"path"`
	// Em is the font size in pixels at scale 1.
	Em float64 `yaml:"em"`
}

// Store locates the slot files.
type Store struct {
	Dir string `yaml:"dir"`
	// Dither converted images instead of thresholding them.
	Dither bool `yaml:"dither"`
}

// Display selects the e-paper panel.
type Display struct {
	// Driver is epd2in9v2, epd2in13v2 or none.
	Driver string `yaml:"driver"`
	// SPI is the periph SPI port name; the first port when empty.
	SPI string `yaml:"spi"`
	// Partial refreshes only the changed pixels.
	Partial bool `yaml:"partial"`
	// Pins default to the Waveshare e-Paper HAT when all are empty.
	DC   string `yaml:"dc"`
	CS   string `yaml:"cs"`
	RST  string `yaml:"rst"`
	Busy string `yaml:"busy"`
}

// Preview configures the host side sinks.
type Preview struct {
	// Addr serves the HTTP preview when not empty, e.g. ":8080".
	Addr  string `yaml:"addr"`
	Scale int    `yaml:"scale"`
	// Terminal prints the panel to stdout.
	Terminal bool `yaml:"terminal"`
	Step     int  `yaml:"step"`
}

// Buttons names the GPIO pin of each button. Buttons without a pin are not
// read.
type Buttons struct {
	A         string        `yaml:"a"`
	B         string        `yaml:"b"`
	C         string        `yaml:"c"`
	Up        string        `yaml:"up"`
	Down      string        `yaml:"down"`
	ActiveLow bool          `yaml:"active_low"`
	Debounce  time.Duration `yaml:"debounce"`
}

// Default returns the configuration of a Badger 2040 style badge with a 2.9"
// panel and the buttons on GPIO 12 to 15 and 11.
func Default() *Config {
	g := badge.Badger2040
	return &Config{
		Geometry: Geometry{
			Width:           g.Width,
			Height:          g.Height,
			ImageWidth:      g.ImageWidth,
			CompanyHeight:   g.CompanyHeight,
			DetailsHeight:   g.DetailsHeight,
			LeftPadding:     g.LeftPadding,
			NamePadding:     g.NamePadding,
			DetailSpacing:   g.DetailSpacing,
			CompanyTextSize: g.CompanyTextSize,
			DetailsTextSize: g.DetailsTextSize,
			QRBudget:        g.QRBudget,
		},
		Layout:  Layout{Search: badge.Linear.String(), Degenerate: badge.FailDegenerate.String()},
		QR:      QR{Level: qrcode.LevelString(qrcode.DefaultOpts.Level)},
		Store:   Store{Dir: "badges"},
		Display: Display{Driver: "epd2in9v2"},
		Preview: Preview{Scale: 3, Step: 2},
		Buttons: Buttons{
			A:        "GPIO12",
			B:        "GPIO13",
			C:        "GPIO14",
			Up:       "GPIO15",
			Down:     "GPIO11",
			Debounce: input.DefaultGPIOOpts.Debounce,
		},
	}
}

// Load reads the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return c, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are an error.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// WriteTo writes c as YAML.
func (c *Config) WriteTo(w io.Writer) (int64, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	n, err := w.Write(b)
	return int64(n), err
}

// Validate checks the geometry and every enumerated value.
func (c *Config) Validate() error {
	g := c.Geometry.Badge()
	if err := g.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.LayoutOpts(); err != nil {
		return err
	}
	if _, err := c.QROpts(); err != nil {
		return err
	}
	if _, err := c.DisplayOpts(); err != nil {
		return err
	}
	if c.Font.Em < 0 {
		return fmt.Errorf("config: font em %v is negative", c.Font.Em)
	}
	if c.Store.Dir == "" {
		return errors.New("config: store dir is empty")
	}
	if c.Buttons.Debounce < 0 {
		return fmt.Errorf("config: button debounce %s is negative", c.Buttons.Debounce)
	}
	return nil
}

// Badge returns the layout geometry.
func (g *Geometry) Badge() badge.Geometry {
	return badge.Geometry{
		Width:           g.Width,
		Height:          g.Height,
		ImageWidth:      g.ImageWidth,
		CompanyHeight:   g.CompanyHeight,
		DetailsHeight:   g.DetailsHeight,
		LeftPadding:     g.LeftPadding,
		NamePadding:     g.NamePadding,
		DetailSpacing:   g.DetailSpacing,
		CompanyTextSize: g.CompanyTextSize,
		DetailsTextSize: g.DetailsTextSize,
		QRBudget:        g.QRBudget,
	}
}

// LayoutOpts returns the badge layout options.
func (c *Config) LayoutOpts() (badge.Opts, error) {
	search, err := badge.ParseScaleSearch(c.Layout.Search)
	if err != nil {
		return badge.Opts{}, fmt.Errorf("config: %w", err)
	}
	degenerate, err := badge.ParseDegeneratePolicy(c.Layout.Degenerate)
	if err != nil {
		return badge.Opts{}, fmt.Errorf("config: %w", err)
	}
	return badge.Opts{
		Geometry:   c.Geometry.Badge(),
		Search:     search,
		Degenerate: degenerate,
	}, nil
}

// QROpts returns the QR encoder options.
func (c *Config) QROpts() (qrcode.Opts, error) {
	level, err := qrcode.ParseLevel(c.QR.Level)
	if err != nil {
		return qrcode.Opts{}, fmt.Errorf("config: %w", err)
	}
	return qrcode.Opts{Level: level, QuietZone: c.QR.QuietZone}, nil
}

// DisplayOpts returns the panel options, nil when the driver is "none".
func (c *Config) DisplayOpts() (*epd.Opts, error) {
	var opts epd.Opts
	switch c.Display.Driver {
	case "none", "":
		return nil, nil
	case "epd2in9v2":
		opts = epd.EPD2in9v2
	case "epd2in13v2":
		opts = epd.EPD2in13v2
		opts.Origin = epd.TopRight
	default:
		return nil, fmt.Errorf("config: unknown display driver %q", c.Display.Driver)
	}
	return &opts, nil
}

// HatPins reports whether the panel uses the e-Paper HAT pins.
func (d *Display) HatPins() bool {
	return d.DC == "" && d.CS == "" && d.RST == "" && d.Busy == ""
}

// ButtonPins returns the pin name of every configured button.
func (c *Config) ButtonPins() map[input.Button]string {
	pins := map[input.Button]string{}
	for b, name := range map[input.Button]string{
		input.A:    c.Buttons.A,
		input.B:    c.Buttons.B,
		input.C:    c.Buttons.C,
		input.Up:   c.Buttons.Up,
		input.Down: c.Buttons.Down,
	} {
		if name != "" {
			pins[b] = name
		}
	}
	return pins
}

// GPIOOpts returns the button input options.
func (c *Config) GPIOOpts() input.GPIOOpts {
	opts := input.DefaultGPIOOpts
	opts.ActiveLow = c.Buttons.ActiveLow
	opts.Debounce = c.Buttons.Debounce
	return opts
}
