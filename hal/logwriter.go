package hal

import "bytes"

// LineWriter adapts a Logger to io.Writer, emitting one log line per
// newline-terminated chunk. A trailing partial line is held until the next
// newline arrives.
type LineWriter struct {
	L   Logger
	buf []byte
}

func (w *LineWriter) Write(p []byte) (int, error) {
	if w.L == nil {
		return len(p), nil
	}
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.L.WriteLineBytes(w.buf[:i])
		w.buf = w.buf[i+1:]
	}
	if len(w.buf) == 0 {
		w.buf = nil
	}
	return len(p), nil
}
