// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package badger

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/badge/badge"
	"github.com/GermanBionicSystems/badge/input"
	"github.com/GermanBionicSystems/badge/raster"
	"github.com/GermanBionicSystems/badge/store"
)

// Sink is a display receiving every frame.
type Sink struct {
	display.Drawer
	// HaltAfterDraw halts the sink once the frame is drawn. Used to put
	// e-paper controllers to sleep between presses.
	HaltAfterDraw bool
}

// Opts configures an App.
type Opts struct {
	Layout  *badge.Layout
	Store   *store.Store
	Surface *raster.Surface
	Sinks   []Sink
	// Logger defaults to zap.NewNop.
	Logger *zap.Logger
	// Initial is the state shown by the first redraw; DefaultState when
	// zero.
	Initial State
	// Watch redraws when the files of the shown slot change.
	Watch bool
}

// App is the badge application. Its methods must not be called
// concurrently; Run serializes them.
type App struct {
	layout  *badge.Layout
	store   *store.Store
	surface *raster.Surface
	sinks   []Sink
	log     *zap.Logger
	watch   bool

	state  State
	frame  badge.Frame
	frames int
}

// New returns an App. The surface must have the size of the layout
// geometry.
func New(opts *Opts) (*App, error) {
	if opts.Layout == nil || opts.Store == nil || opts.Surface == nil {
		return nil, errors.New("badger: layout, store and surface are required")
	}
	g := opts.Layout.Geometry()
	if got := opts.Surface.Bounds(); got != g.Bounds() {
		return nil, fmt.Errorf("badger: surface is %v, layout needs %v", got, g.Bounds())
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	state := opts.Initial
	if state.Slot == 0 {
		state = DefaultState
	}
	return &App{
		layout:  opts.Layout,
		store:   opts.Store,
		surface: opts.Surface,
		sinks:   opts.Sinks,
		log:     log,
		watch:   opts.Watch,
		state:   state,
	}, nil
}

// State returns the state shown by the last redraw attempt.
func (a *App) State() State {
	return a.state
}

// Frame returns the last frame that was drawn, nil before the first one.
func (a *App) Frame() badge.Frame {
	return a.frame
}

// Frames returns the number of frames drawn.
func (a *App) Frames() int {
	return a.frames
}

// Compute loads the files of s and computes its frame without drawing it.
func (a *App) Compute(s State) (badge.Frame, error) {
	p, err := a.store.Profile(s.Slot)
	if err != nil {
		return nil, err
	}
	var img *badge.Bitmap
	if s.Mode == badge.ShowImage {
		if img, err = a.store.Image(s.Slot); err != nil {
			return nil, err
		}
	}
	if p, err = a.layout.Format(p); err != nil {
		return nil, err
	}
	return a.layout.Render(s.Mode, img, &p)
}

// Redraw computes the frame of the current state and flushes it to every
// sink. When the frame cannot be computed the sinks keep the last one.
func (a *App) Redraw() error {
	start := time.Now()
	f, err := a.Compute(a.state)
	if err != nil {
		a.log.Error("frame failed", zap.Stringer("state", a.state), zap.Error(err))
		return fmt.Errorf("badger: %s: %w", a.state, err)
	}

	badge.Commit(a.surface, f)
	bits := a.surface.Bits()

	var errs []error
	for _, s := range a.sinks {
		if err := s.Draw(s.Bounds(), bits, image.Point{}); err != nil {
			a.log.Error("draw failed", zap.Stringer("sink", s), zap.Error(err))
			errs = append(errs, fmt.Errorf("badger: drawing on %s: %w", s, err))
			continue
		}
		if s.HaltAfterDraw {
			if err := s.Halt(); err != nil {
				a.log.Warn("halt failed", zap.Stringer("sink", s), zap.Error(err))
			}
		}
	}
	a.frame = f
	a.frames++
	a.log.Info("redraw",
		zap.Stringer("slot", a.state.Slot),
		zap.Stringer("mode", a.state.Mode),
		zap.Int("commands", len(f)),
		zap.Duration("took", time.Since(start)))
	return errors.Join(errs...)
}

// HandleEvent applies a button press and redraws.
func (a *App) HandleEvent(e input.Event) error {
	next := a.state.Apply(e.Button)
	a.log.Debug("press", zap.Stringer("button", e.Button), zap.Stringer("from", a.state), zap.Stringer("to", next))
	a.state = next
	return a.Redraw()
}

// Run draws the current state, then handles events until ctx is done or
// events is closed. Failed frames are logged and do not stop the loop.
func (a *App) Run(ctx context.Context, events <-chan input.Event) error {
	ctx, cancel := context.WithCancel(ctx)
	changed := make(chan store.Slot, 1)
	var wg sync.WaitGroup
	if a.watch {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := a.store.Watch(ctx, func(s store.Slot) {
				select {
				case changed <- s:
				default:
				}
			})
			if err != nil {
				a.log.Error("watch failed", zap.String("dir", a.store.Dir()), zap.Error(err))
			}
		}()
	}
	defer func() {
		cancel()
		wg.Wait()
	}()

	_ = a.Redraw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			_ = a.HandleEvent(e)
		case s := <-changed:
			if s == a.state.Slot {
				a.log.Info("slot changed on disk", zap.Stringer("slot", s))
				_ = a.Redraw()
			}
		}
	}
}
