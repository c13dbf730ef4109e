// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/badge/badger"
	"github.com/GermanBionicSystems/badge/config"
	"github.com/GermanBionicSystems/badge/epd"
	"github.com/GermanBionicSystems/badge/input"
	"github.com/GermanBionicSystems/badge/preview"
	"github.com/GermanBionicSystems/badge/screen"
)

// hostFlags override the preview section of the configuration.
type hostFlags struct {
	addr     string
	terminal bool
	slot     string
	mode     string
}

func (f *hostFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.addr, "addr", "", "serve the HTTP preview on this address")
	cmd.Flags().BoolVar(&f.terminal, "terminal", false, "mirror the panel on the terminal")
	cmd.Flags().StringVar(&f.slot, "slot", "A", "slot shown first")
	cmd.Flags().StringVar(&f.mode, "mode", "image", "mode shown first, image or qr")
}

func runCmd(e *env) *cobra.Command {
	var f hostFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive the e-paper panel and the buttons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := host.Init(); err != nil {
				return err
			}
			var sinks []badger.Sink
			var sources []input.Source

			opts, err := e.cfg.DisplayOpts()
			if err != nil {
				return err
			}
			if opts != nil {
				port, err := spireg.Open(e.cfg.Display.SPI)
				if err != nil {
					return err
				}
				defer port.Close()
				dev, err := openPanel(port, &e.cfg.Display, opts)
				if err != nil {
					return err
				}
				e.log.Info("panel ready", zap.Stringer("dev", dev))
				sinks = append(sinks, badger.Sink{Drawer: dev, HaltAfterDraw: true})
			}

			if names := e.cfg.ButtonPins(); len(names) > 0 {
				pins, err := input.LookupPins(names)
				if err != nil {
					return err
				}
				gpioOpts := e.cfg.GPIOOpts()
				buttons, err := input.NewGPIO(pins, &gpioOpts)
				if err != nil {
					return err
				}
				defer buttons.Halt()
				e.log.Info("buttons ready", zap.Stringer("input", buttons))
				sources = append(sources, buttons)
			}
			return serve(cmd.Context(), e, &f, sinks, sources)
		},
	}
	f.register(cmd)
	return cmd
}

func previewCmd(e *env) *cobra.Command {
	var f hostFlags
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Run the badge without hardware",
		Long: `Run the badge without hardware. The panel is shown in a browser and on
the terminal; buttons are pressed on the page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.addr == "" && e.cfg.Preview.Addr == "" {
				f.addr = "localhost:8080"
			}
			return serve(cmd.Context(), e, &f, nil, nil)
		},
	}
	f.register(cmd)
	return cmd
}

// openPanel opens the configured panel and wakes it up.
func openPanel(port spi.Port, d *config.Display, opts *epd.Opts) (*epd.Dev, error) {
	var dev *epd.Dev
	var err error
	if d.HatPins() {
		dev, err = epd.NewHat(port, opts)
	} else {
		var pins [4]gpio.PinIO
		for i, name := range []string{d.DC, d.CS, d.RST, d.Busy} {
			if pins[i] = gpioreg.ByName(name); pins[i] == nil {
				return nil, fmt.Errorf("unknown panel pin %q", name)
			}
		}
		dev, err = epd.New(port, pins[0], pins[1], pins[2], pins[3], opts)
	}
	if err != nil {
		return nil, err
	}
	if err := dev.Init(); err != nil {
		return nil, err
	}
	if d.Partial {
		if err := dev.SetUpdateMode(epd.Partial); err != nil {
			return nil, err
		}
	}
	return dev, nil
}

// serve adds the host sinks to sinks and runs the badge until interrupted.
func serve(ctx context.Context, e *env, f *hostFlags, sinks []badger.Sink, sources []input.Source) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	initial, err := parseState(f.slot, f.mode)
	if err != nil {
		return err
	}
	g := e.cfg.Geometry

	addr := e.cfg.Preview.Addr
	if f.addr != "" {
		addr = f.addr
	}
	if addr != "" {
		presses := input.NewChan(8)
		pv := preview.New(&preview.Options{
			Width:   g.Width,
			Height:  g.Height,
			Scale:   e.cfg.Preview.Scale,
			Format:  preview.DefaultFormat,
			Presses: presses,
		})
		srv := &http.Server{Addr: addr, Handler: pv.Handler(), ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				e.log.Error("preview server failed", zap.Error(err))
			}
		}()
		defer func() {
			_ = pv.Halt()
			shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdown)
		}()
		e.log.Info("preview", zap.String("addr", addr))
		sinks = append(sinks, badger.Sink{Drawer: pv})
		sources = append(sources, presses)
	}

	if e.cfg.Preview.Terminal || f.terminal {
		term := screen.New(&screen.Opts{W: g.Width, H: g.Height, Step: e.cfg.Preview.Step})
		defer term.Halt()
		sinks = append(sinks, badger.Sink{Drawer: term})
	}
	if len(sinks) == 0 {
		return errors.New("nothing to draw on: configure a display, a preview address or the terminal")
	}

	app, _, err := e.newApp(sinks, initial, true)
	if err != nil {
		return err
	}
	// Without sources the badge shows the initial state until interrupted.
	var events <-chan input.Event
	if len(sources) > 0 {
		events = input.Merge(ctx, sources...)
	}
	return app.Run(ctx, events)
}
