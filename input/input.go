// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package input

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Button is one of the badge buttons.
type Button int

const (
	A Button = iota
	B
	C
	Up
	Down
)

// Buttons lists every button.
var Buttons = []Button{A, B, C, Up, Down}

var buttonNames = [...]string{"a", "b", "c", "up", "down"}

func (b Button) String() string {
	if b < 0 || int(b) >= len(buttonNames) {
		return fmt.Sprintf("Button(%d)", int(b))
	}
	return buttonNames[b]
}

// ParseButton returns the button named s, case insensitive.
func ParseButton(s string) (Button, error) {
	for i, n := range buttonNames {
		if strings.EqualFold(s, n) {
			return Button(i), nil
		}
	}
	return 0, fmt.Errorf("input: unknown button %q", s)
}

// Event is a button press.
type Event struct {
	Button Button
	Time   time.Time
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%s", e.Button, e.Time.Format(time.RFC3339Nano))
}

// Source produces button presses.
type Source interface {
	// Events returns a channel of presses. The channel is closed once ctx is
	// done and the source stopped.
	Events(ctx context.Context) <-chan Event
}

// Chan is a Source fed by Press.
type Chan struct {
	c chan Event
}

// NewChan returns a Chan buffering up to n presses.
func NewChan(n int) *Chan {
	return &Chan{c: make(chan Event, n)}
}

// Press queues a press of b. It returns false when the buffer is full and
// the press was dropped.
func (c *Chan) Press(b Button) bool {
	select {
	case c.c <- Event{Button: b, Time: time.Now()}:
		return true
	default:
		return false
	}
}

// Events implements Source.
func (c *Chan) Events(ctx context.Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e := <-c.c:
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Merge returns a channel carrying the presses of every source. It is closed
// once all the sources closed theirs.
func Merge(ctx context.Context, sources ...Source) <-chan Event {
	out := make(chan Event)
	var wg sync.WaitGroup
	for _, s := range sources {
		wg.Add(1)
		go func(c <-chan Event) {
			defer wg.Done()
			for e := range c {
				select {
				case out <- e:
				case <-ctx.Done():
				}
			}
		}(s.Events(ctx))
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

var _ Source = (*Chan)(nil)
