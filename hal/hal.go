package hal

import (
	"errors"

	"github.com/gdamore/tcell/v2"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrQuit is returned by App.Step once the app has stopped.
// Runners treat it as a clean exit.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// EventType classifies input events.
type EventType uint8

const (
	EventKey EventType = iota + 1
	// EventClose is a window close or terminal interrupt request.
	EventClose
)

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeySpace
	KeyEnter
)

// Event is one input event. Rune is set for printable keys.
type Event struct {
	Type EventType
	Code KeyCode
	Rune rune
}

// Input delivers input events (best-effort; events are dropped when the
// consumer falls behind).
type Input interface {
	Events() <-chan Event
}

// Display exposes whatever the host can draw on.
type Display interface {
	// Framebuffer is nil on character-cell hosts.
	Framebuffer() Framebuffer
	// Screen is nil on pixel hosts.
	Screen() tcell.Screen
}

// Serial is a byte stream to the controlling process.
type Serial interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
}

// HAL is the only contact point between the renderer and the platform.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Serial() Serial
}

// App is what a host runner drives: one Step per tick at TPS ticks per
// second. Close releases the app's display resources and must be safe to
// call more than once.
type App interface {
	Step() error
	TPS() int
	Close() error
}

// NewApp builds an App on top of a host.
type NewApp func(HAL) (App, error)
