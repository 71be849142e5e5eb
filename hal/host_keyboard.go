//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type hostKeyboard struct {
	ch chan Event
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan Event, 64)}
}

func (k *hostKeyboard) Events() <-chan Event { return k.ch }

func (k *hostKeyboard) emit(ev Event) {
	select {
	case k.ch <- ev:
	default:
	}
}

// poll reads the ebiten key state; it must run on the ebiten update goroutine.
func (k *hostKeyboard) poll() {
	if ebiten.IsWindowBeingClosed() {
		k.emit(Event{Type: EventClose})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		k.emit(Event{Type: EventKey, Code: KeySpace, Rune: ' '})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		k.emit(Event{Type: EventKey, Code: KeyEscape})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		k.emit(Event{Type: EventKey, Code: KeyEnter})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		k.emit(Event{Type: EventKey, Rune: 'q'})
	}
}
