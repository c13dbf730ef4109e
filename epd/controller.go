// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package epd

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle()
}

func initDisplay(ctrl controller, opts *Opts) {
	ctrl.waitUntilIdle()
	ctrl.sendCommand(swReset)
	ctrl.waitUntilIdle()

	if !opts.otp() {
		ctrl.sendCommand(setAnalogBlockControl)
		ctrl.sendData([]byte{0x54})

		ctrl.sendCommand(setDigitalBlockControl)
		ctrl.sendData([]byte{0x3B})
	}

	gates := opts.Height - 1
	ctrl.sendCommand(driverOutputControl)
	ctrl.sendData([]byte{byte(gates & 0xFF), byte(gates >> 8), 0x00})

	if opts.otp() {
		// Internal temperature sensor selects the OTP waveform.
		ctrl.sendCommand(tempSensorSelect)
		ctrl.sendData([]byte{0x80})
		return
	}

	lut := opts.FullUpdate
	ctrl.sendCommand(gateDrivingVoltageControl)
	ctrl.sendData([]byte{lut[lutSize]})

	ctrl.sendCommand(sourceDrivingVoltageControl)
	ctrl.sendData(lut[lutSize+1 : lutSize+4])

	ctrl.sendCommand(setDummyLinePeriod)
	ctrl.sendData([]byte{lut[lutSize+4]})

	ctrl.sendCommand(setGateTime)
	ctrl.sendData([]byte{lut[lutSize+5]})
}

// configDisplayMode loads the waveform of mode. OTP displays only get their
// border waveform set; the update sequence selects their waveform.
func configDisplayMode(ctrl controller, mode PartialUpdate, opts *Opts) {
	border := opts.Border
	if mode == Partial {
		border = 0x01
	}

	if opts.otp() {
		ctrl.sendCommand(borderWaveformControl)
		ctrl.sendData([]byte{border})
		return
	}

	vcom, lut := byte(0x55), opts.FullUpdate
	if mode == Partial {
		vcom, lut = 0x24, opts.PartialUpdate
	}

	ctrl.sendCommand(writeVcomRegister)
	ctrl.sendData([]byte{vcom})

	ctrl.sendCommand(borderWaveformControl)
	ctrl.sendData([]byte{border})

	ctrl.sendCommand(writeLutRegister)
	ctrl.sendData(lut[:lutSize])

	if mode == Partial {
		// Undocumented values from the vendor example code.
		ctrl.sendCommand(writeRegisterForDisplayOption)
		ctrl.sendData([]byte{0x00, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00})

		ctrl.sendCommand(displayUpdateControl2)
		ctrl.sendData([]byte{0xC0})

		ctrl.sendCommand(masterActivation)

		ctrl.waitUntilIdle()
	}
}

func updateDisplay(ctrl controller, mode PartialUpdate, otp bool) {
	var displayUpdateFlags byte

	if mode == Partial {
		// Make use of red buffer
		displayUpdateFlags = 0b1000_0000
	}

	ctrl.sendCommand(displayUpdateControl1)
	ctrl.sendData([]byte{displayUpdateFlags})

	seq := displayUpdateDisableClock |
		displayUpdateDisableAnalog |
		displayUpdateDisplay |
		displayUpdateEnableClock |
		displayUpdateEnableAnalog
	if otp {
		seq |= displayUpdateLoadLUTFromOTP | displayUpdateLoadTemperature
		if mode == Partial {
			seq |= displayUpdateMode2
		}
	}

	ctrl.sendCommand(displayUpdateControl2)
	ctrl.sendData([]byte{seq})

	ctrl.sendCommand(masterActivation)
	ctrl.waitUntilIdle()
}

// deepSleep keeps the RAM content but turns off the DC/DC converter, the
// clock, the output load and the MCU.
func deepSleep(ctrl controller) {
	ctrl.sendCommand(deepSleepMode)
	ctrl.sendData([]byte{0x01})
}
