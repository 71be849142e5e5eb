//go:build !cgo

package hal

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

func (k *hostKeyboard) poll() {
	// No window keyboard without the ebiten backend.
}
