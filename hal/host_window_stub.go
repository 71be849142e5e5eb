//go:build !cgo

package hal

import (
	"context"
	"errors"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	HostConfig
	Title string
	Scale int
}

func RunWindow(_ context.Context, _ WindowConfig, _ NewApp) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
