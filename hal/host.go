package hal

import (
	"io"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// HostConfig sizes the host framebuffer and picks the log destination.
type HostConfig struct {
	Width  int
	Height int
	// Log receives log lines; os.Stderr when nil.
	Log io.Writer
	// Serial is the control channel; stdin/stdout when nil.
	Serial Serial
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	screen tcell.Screen
	kbd    *hostKeyboard
	serial Serial
}

// New returns a host HAL with a cfg.Width x cfg.Height framebuffer.
func New(cfg HostConfig) HAL {
	return newHost(cfg, nil)
}

func newHost(cfg HostConfig, screen tcell.Screen) *hostHAL {
	w := cfg.Log
	if w == nil {
		w = os.Stderr
	}
	h := &hostHAL{
		logger: &hostLogger{w: w},
		screen: screen,
		kbd:    newHostKeyboard(),
		serial: cfg.Serial,
	}
	if h.serial == nil {
		h.serial = &hostSerial{r: os.Stdin, w: os.Stdout}
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		h.fb = newHostFramebuffer(cfg.Width, cfg.Height)
	}
	return h
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb, screen: h.screen} }
func (h *hostHAL) Input() Input     { return h.kbd }
func (h *hostHAL) Serial() Serial   { return h.serial }

type hostDisplay struct {
	fb     *hostFramebuffer
	screen tcell.Screen
}

func (d hostDisplay) Framebuffer() Framebuffer {
	if d.fb == nil {
		return nil
	}
	return d.fb
}

func (d hostDisplay) Screen() tcell.Screen { return d.screen }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, s)
	l.w.Write([]byte{'\n'})
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
