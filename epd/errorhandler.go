// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler latches the first error; every later call is a no-op.
type errorHandler struct {
	d   Dev
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) tx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, nil)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) waitUntilIdle() {
	if eh.err != nil {
		return
	}
	for eh.d.busy.Read() == gpio.High {
		time.Sleep(100 * time.Millisecond)
	}
}

func (eh *errorHandler) send(dc gpio.Level, b []byte) {
	eh.dcOut(dc)
	eh.csOut(gpio.Low)
	eh.tx(b)
	eh.csOut(gpio.High)
}

func (eh *errorHandler) sendCommand(cmd byte) {
	eh.send(gpio.Low, []byte{cmd})
}

func (eh *errorHandler) sendData(data []byte) {
	eh.send(gpio.High, data)
}
