// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package input

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/gpio/gpioutil"
)

// GPIOOpts configures a GPIO source.
type GPIOOpts struct {
	// ActiveLow buttons pull the pin to ground when pressed. Otherwise the
	// pin is pulled down and a press reads High, as on the Badger 2040.
	ActiveLow bool
	// Denoise and Debounce are passed to gpioutil.Debounce.
	Denoise  time.Duration
	Debounce time.Duration
	// Poll bounds how long a pin waits for an edge before checking for
	// cancellation.
	Poll time.Duration
}

// DefaultGPIOOpts matches the Badger 2040 buttons.
var DefaultGPIOOpts = GPIOOpts{
	Debounce: 50 * time.Millisecond,
	Poll:     100 * time.Millisecond,
}

// GPIO is a Source reading buttons wired to GPIO pins.
type GPIO struct {
	pins    map[Button]gpio.PinIO
	pressed gpio.Level
	poll    time.Duration
}

// LookupPins finds the pins named in names with gpioreg.
//
// host.Init() must have been called first.
func LookupPins(names map[Button]string) (map[Button]gpio.PinIO, error) {
	pins := make(map[Button]gpio.PinIO, len(names))
	for b, n := range names {
		p := gpioreg.ByName(n)
		if p == nil {
			return nil, fmt.Errorf("input: no pin %q for button %s", n, b)
		}
		pins[b] = p
	}
	return pins, nil
}

// NewGPIO configures pins as inputs and returns a GPIO source.
func NewGPIO(pins map[Button]gpio.PinIO, opts *GPIOOpts) (*GPIO, error) {
	if len(pins) == 0 {
		return nil, errors.New("input: no button pins")
	}
	g := &GPIO{pins: make(map[Button]gpio.PinIO, len(pins)), pressed: gpio.High, poll: opts.Poll}
	pull, edge := gpio.PullDown, gpio.RisingEdge
	if opts.ActiveLow {
		g.pressed, pull, edge = gpio.Low, gpio.PullUp, gpio.FallingEdge
	}
	if g.poll <= 0 {
		g.poll = DefaultGPIOOpts.Poll
	}
	for b, p := range pins {
		d, err := gpioutil.Debounce(p, opts.Denoise, opts.Debounce, edge)
		if err != nil {
			return nil, fmt.Errorf("input: button %s: %w", b, err)
		}
		if err := d.In(pull, edge); err != nil {
			return nil, fmt.Errorf("input: button %s: %w", b, err)
		}
		g.pins[b] = d
	}
	return g, nil
}

// Events implements Source.
//
// Each pin is watched by its own goroutine. A press is reported when an edge
// leaves the pin at the pressed level.
func (g *GPIO) Events(ctx context.Context) <-chan Event {
	out := make(chan Event)
	var wg sync.WaitGroup
	for b, p := range g.pins {
		wg.Add(1)
		go func(b Button, p gpio.PinIO) {
			defer wg.Done()
			for ctx.Err() == nil {
				if !p.WaitForEdge(g.poll) || p.Read() != g.pressed {
					continue
				}
				select {
				case out <- Event{Button: b, Time: time.Now()}:
				case <-ctx.Done():
				}
			}
		}(b, p)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Halt stops the pins.
func (g *GPIO) Halt() error {
	var errs []error
	for _, p := range g.pins {
		errs = append(errs, p.Halt())
	}
	return errors.Join(errs...)
}

func (g *GPIO) String() string {
	return fmt.Sprintf("GPIO{%d buttons}", len(g.pins))
}

var _ Source = (*GPIO)(nil)
