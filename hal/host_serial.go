package hal

import (
	"io"
	"sync"
)

type hostSerial struct {
	mu sync.Mutex
	r  io.Reader
	w  io.Writer
}

// NewSerial wraps a reader/writer pair as a Serial.
func NewSerial(r io.Reader, w io.Writer) Serial {
	return &hostSerial{r: r, w: w}
}

func (s *hostSerial) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotImplemented
	}
	return s.r.Read(p)
}

func (s *hostSerial) Write(p []byte) (int, error) {
	if s.w == nil {
		return 0, ErrNotImplemented
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
