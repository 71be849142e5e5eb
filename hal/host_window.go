//go:build cgo

package hal

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	HostConfig
	Title string
	Scale int
}

// RunWindow opens a desktop window that displays the framebuffer, forwards
// keyboard input and steps the app at app.TPS() ticks per second.
// It blocks until the app stops, the window closes or ctx is cancelled.
func RunWindow(ctx context.Context, cfg WindowConfig, newApp NewApp) (err error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 1
	}

	h := newHost(cfg.HostConfig, nil)
	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()

	g := &hostGame{ctx: ctx, h: h, app: app, title: cfg.Title, tps: app.TPS()}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(g.tps)
	return ebiten.RunGame(g)
}

type hostGame struct {
	ctx   context.Context
	h     *hostHAL
	app   App
	title string
	tps   int
	ticks uint64

	img   *image.RGBA
	fbImg *ebiten.Image
	// drawErr carries a recovered Draw panic to the next Update.
	drawErr error
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.drawErr != nil {
		return g.drawErr
	}
	g.h.kbd.poll()
	if err := g.app.Step(); err != nil {
		if errors.Is(err, ErrQuit) {
			return ebiten.Termination
		}
		return err
	}

	if tps := g.app.TPS(); tps != g.tps {
		g.tps = tps
		ebiten.SetTPS(tps)
	}
	g.ticks++
	if g.title != "" && g.ticks%30 == 0 {
		ebiten.SetWindowTitle(windowTitle(g.title, ebiten.ActualTPS()))
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	defer func() {
		if r := recover(); r != nil && g.drawErr == nil {
			g.drawErr = ReportPanic(g.h.logger, r)
		}
	}()
	fb := g.h.fb
	if g.img == nil {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}
	fb.snapshotRGBA(g.img)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
