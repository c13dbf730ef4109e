// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GermanBionicSystems/badge/badge"
	"github.com/GermanBionicSystems/badge/badger"
	"github.com/GermanBionicSystems/badge/config"
	"github.com/GermanBionicSystems/badge/qrcode"
	"github.com/GermanBionicSystems/badge/raster"
	"github.com/GermanBionicSystems/badge/store"
)

const defaultConfig = "badger.yaml"

// env is shared by every command.
type env struct {
	configPath string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:          "badger",
		Short:        "Name badge for e-paper panels",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if e.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			log, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			e.log = log
			// init creates the file it is pointed at.
			explicit := cmd.Flags().Changed("config") && cmd.Name() != "init"
			e.cfg, err = loadConfig(e.configPath, explicit)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&e.configPath, "config", "c", defaultConfig, "YAML configuration file")
	root.PersistentFlags().BoolVarP(&e.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(runCmd(e), previewCmd(e), renderCmd(e), initCmd(e), convertCmd(e))
	return root
}

// loadConfig reads path. A missing default file yields the defaults.
func loadConfig(path string, explicit bool) (*config.Config, error) {
	c, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return config.Default(), nil
	}
	return c, err
}

func (e *env) store() *store.Store {
	g := e.cfg.Geometry
	return store.New(e.cfg.Store.Dir, g.ImageWidth, g.Height)
}

func (e *env) font() ([]byte, error) {
	if e.cfg.Font.Path == "" {
		return nil, nil
	}
	b, err := os.ReadFile(e.cfg.Font.Path)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	return b, nil
}

func (e *env) surface() (*raster.Surface, error) {
	ttf, err := e.font()
	if err != nil {
		return nil, err
	}
	return raster.New(&raster.Opts{
		Width:    e.cfg.Geometry.Width,
		Height:   e.cfg.Geometry.Height,
		Font:     ttf,
		EmHeight: e.cfg.Font.Em,
	})
}

func (e *env) layout(m badge.Measurer) (*badge.Layout, error) {
	lo, err := e.cfg.LayoutOpts()
	if err != nil {
		return nil, err
	}
	qo, err := e.cfg.QROpts()
	if err != nil {
		return nil, err
	}
	return badge.NewLayout(&lo, m, qrcode.New(&qo))
}

// newApp wires the layout, store and surface of the configuration to sinks.
func (e *env) newApp(sinks []badger.Sink, initial badger.State, watch bool) (*badger.App, *raster.Surface, error) {
	s, err := e.surface()
	if err != nil {
		return nil, nil, err
	}
	l, err := e.layout(s)
	if err != nil {
		return nil, nil, err
	}
	st := e.store()
	if err := st.Init(); err != nil {
		return nil, nil, err
	}
	app, err := badger.New(&badger.Opts{
		Layout:  l,
		Store:   st,
		Surface: s,
		Sinks:   sinks,
		Logger:  e.log,
		Initial: initial,
		Watch:   watch,
	})
	if err != nil {
		return nil, nil, err
	}
	return app, s, nil
}

// parseState parses the --slot and --mode flags.
func parseState(slot, mode string) (badger.State, error) {
	s, err := store.ParseSlot(slot)
	if err != nil {
		return badger.State{}, err
	}
	m, err := badge.ParseMode(mode)
	if err != nil {
		return badger.State{}, err
	}
	return badger.State{Slot: s, Mode: m}, nil
}
