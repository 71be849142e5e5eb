// Package app wires the torus loop to a host runner and a drawing surface.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"donut/anim"
	"donut/hal"
	"donut/internal/config"
	"donut/loop"
	"donut/render"
	"donut/torus"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
)

// Title is the window caption prefix.
const Title = "3D Torus"

// Mode picks the host runner.
type Mode string

const (
	ModeWindow   Mode = "window"
	ModeHeadless Mode = "headless"
	ModeTerminal Mode = "terminal"
)

// ParseMode accepts window, headless or terminal.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeWindow, ModeHeadless, ModeTerminal:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want window, headless or terminal)", s)
}

// Config selects the host, grid and optional outputs for Run.
type Config struct {
	Mode Mode
	// Settings is the optional JSON settings payload.
	Settings string

	Cols, Rows int
	// Cell is the pixel size of one grid cell in window and snapshot output.
	Cell int
	// Frames stops headless and terminal runs after N ticks (0 = no limit).
	Frames uint64
	// Snapshot is a PNG path written when a headless run ends.
	Snapshot string
	// Control reads JSON control lines from the serial channel.
	Control bool

	LogLevel slog.Level
	// Log receives log lines; stderr when nil, discarded in terminal mode.
	Log    io.Writer
	Serial hal.Serial
	// Screen overrides the terminal screen.
	Screen tcell.Screen
}

// DefaultConfig is a 20x20 grid of 20 px cells in a window, logging at info.
func DefaultConfig() Config {
	p := torus.DefaultParams()
	return Config{
		Mode:     ModeWindow,
		Cols:     p.Width,
		Rows:     p.Height,
		Cell:     20,
		LogLevel: slog.LevelInfo,
	}
}

func (c Config) params() (torus.Params, error) {
	p := torus.DefaultParams()
	p.Width, p.Height = c.Cols, c.Rows
	if err := p.Validate(); err != nil {
		return torus.Params{}, err
	}
	return p, nil
}

func (c Config) hostConfig() hal.HostConfig {
	hc := hal.HostConfig{Log: c.Log, Serial: c.Serial}
	if hc.Log == nil && c.Mode == ModeTerminal {
		hc.Log = io.Discard
	}
	if c.Mode != ModeTerminal {
		hc.Width, hc.Height = c.Cols*c.Cell, c.Rows*c.Cell
	}
	return hc
}

// Run blocks until the animation stops, ctx is cancelled or the host fails.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Cell <= 0 {
		return fmt.Errorf("invalid cell size %d", cfg.Cell)
	}
	params, err := cfg.params()
	if err != nil {
		return err
	}
	newApp := func(h hal.HAL) (hal.App, error) {
		return newSystem(ctx, h, cfg, params)
	}

	switch cfg.Mode {
	case ModeWindow:
		return hal.RunWindow(ctx, hal.WindowConfig{HostConfig: cfg.hostConfig(), Title: Title, Scale: 1}, newApp)
	case ModeHeadless:
		return hal.RunHeadless(ctx, hal.HeadlessConfig{HostConfig: cfg.hostConfig(), Ticks: cfg.Frames}, newApp)
	case ModeTerminal:
		return hal.RunTerminal(ctx, hal.TerminalConfig{HostConfig: cfg.hostConfig(), Screen: cfg.Screen, Ticks: cfg.Frames}, newApp)
	}
	return fmt.Errorf("unknown mode %q", cfg.Mode)
}

// openPresenter is swapped in tests.
var openPresenter = func(h hal.HAL, cfg Config, log *slog.Logger) (loop.Presenter, error) {
	return newPresenter(h, cfg, log)
}

// newSystem builds the loop for one host. It runs on the runner's goroutine.
func newSystem(ctx context.Context, h hal.HAL, cfg Config, params torus.Params) (a hal.App, err error) {
	log := newLogger(h.Logger(), cfg.LogLevel)
	gg.SetLogger(log)

	var presenter loop.Presenter
	release := func() {
		if presenter == nil {
			return
		}
		if cerr := presenter.Close(); cerr != nil {
			log.Warn("close presenter", "err", cerr)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, reportPanic(h, r)
			release()
		}
	}()

	var settings anim.Update
	if strings.TrimSpace(cfg.Settings) != "" {
		u, perr := config.ParseSettings(cfg.Settings)
		if perr != nil {
			log.Warn("invalid settings, using defaults", "err", perr)
		} else {
			settings = u
		}
	}

	p, err := openPresenter(h, cfg, log)
	if err != nil {
		return nil, err
	}
	presenter = p
	l, err := loop.New(loop.Config{
		Params:    params,
		Presenter: presenter,
		Settings:  settings,
		Events:    h.Input().Events(),
		Logger:    log,
	})
	if err != nil {
		release()
		return nil, err
	}
	s := l.Driver().Settings
	log.Info("starting", "mode", cfg.Mode, "grid", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"fps", s.FrameRate, "rotation_speed", s.RotationSpeed, "color_speed", s.ColorSpeed)

	if cfg.Control {
		if cfg.Mode == ModeTerminal {
			log.Warn("control channel unavailable in terminal mode")
		} else if sr := h.Serial(); sr != nil {
			go readControl(ctx, sr, l, log)
		}
	}
	return guardedApp{App: l, h: h}, nil
}

func newPresenter(h hal.HAL, cfg Config, log *slog.Logger) (*render.Presenter, error) {
	switch {
	case cfg.Mode == ModeTerminal:
		s, err := render.NewTerminalSurface(h.Display().Screen())
		if err != nil {
			return nil, err
		}
		// Terminal cells are about twice as tall as wide.
		return render.NewPresenter(s, 2, 1)
	case cfg.Mode == ModeHeadless && cfg.Snapshot != "":
		s, err := render.NewImageSurface(cfg.Cols*cfg.Cell, cfg.Rows*cfg.Cell, float64(cfg.Cell)*0.8)
		if err != nil {
			return nil, err
		}
		return render.NewPresenter(&snapshotSurface{ImageSurface: s, path: cfg.Snapshot, log: log}, cfg.Cell, cfg.Cell)
	default:
		s, err := render.NewFramebufferSurface(h.Display().Framebuffer(), nil)
		if err != nil {
			return nil, err
		}
		return render.NewPresenter(s, cfg.Cell, cfg.Cell)
	}
}

func newLogger(l hal.Logger, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(&hal.LineWriter{L: l}, &slog.HandlerOptions{Level: level}))
}

// snapshotSurface saves the last presented frame when it is released.
type snapshotSurface struct {
	*render.ImageSurface
	path string
	log  *slog.Logger
}

func (s *snapshotSurface) Close() error {
	var err error
	if s.Frames() > 0 {
		if err = s.SavePNG(s.path); err != nil {
			err = fmt.Errorf("snapshot: %w", err)
		} else {
			s.log.Info("snapshot written", "path", s.path, "frames", s.Frames())
		}
	}
	if cerr := s.ImageSurface.Close(); err == nil {
		err = cerr
	}
	return err
}
