package app

import "donut/hal"

// guardedApp turns a panic inside a tick into an error so the runner can
// still release the surface and restore the terminal.
type guardedApp struct {
	hal.App
	h hal.HAL
}

func (a guardedApp) Step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = reportPanic(a.h, r)
		}
	}()
	return a.App.Step()
}

func reportPanic(h hal.HAL, v any) error {
	return hal.ReportPanic(h.Logger(), v)
}
