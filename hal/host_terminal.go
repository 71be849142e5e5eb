package hal

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the character-cell runner.
type TerminalConfig struct {
	HostConfig
	// Screen is created with tcell.NewScreen when nil.
	Screen tcell.Screen
	Ticks  uint64
}

// RunTerminal drives the app inside a terminal. The screen is always
// finalized before RunTerminal returns.
func RunTerminal(ctx context.Context, cfg TerminalConfig, newApp NewApp) (err error) {
	screen := cfg.Screen
	if screen == nil {
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	hc := cfg.HostConfig
	hc.Width, hc.Height = 0, 0
	h := newHost(hc, screen)

	app, err := newApp(h)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close())
	}()

	go pumpTerminal(screen, h.kbd)
	return runTicks(ctx, app, cfg.Ticks)
}

// pumpTerminal forwards tcell events until the screen is finalized.
func pumpTerminal(screen tcell.Screen, kbd *hostKeyboard) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if out, ok := terminalEvent(ev); ok {
			kbd.emit(out)
		}
	}
}

func terminalEvent(ev tcell.Event) (Event, bool) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return Event{}, false
	}
	switch key.Key() {
	case tcell.KeyEscape:
		return Event{Type: EventKey, Code: KeyEscape}, true
	case tcell.KeyCtrlC:
		return Event{Type: EventClose}, true
	case tcell.KeyEnter:
		return Event{Type: EventKey, Code: KeyEnter}, true
	case tcell.KeyRune:
		r := key.Rune()
		if r == ' ' {
			return Event{Type: EventKey, Code: KeySpace, Rune: r}, true
		}
		return Event{Type: EventKey, Rune: r}, true
	}
	return Event{}, false
}
