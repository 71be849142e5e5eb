package hal

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// ReportPanic writes v and the current stack to l, one line per frame, and
// returns v as an error. Call it from the recovering defer.
func ReportPanic(l Logger, v any) error {
	if l != nil {
		l.WriteLineString(fmt.Sprintf("Torus Panic: panic=%v", v))
		for _, line := range strings.Split(string(debug.Stack()), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}
	return fmt.Errorf("panic: %v", v)
}

// windowTitle is the caption shown while running at tps frames per second.
func windowTitle(base string, tps float64) string {
	return fmt.Sprintf("%s - FPS: %.1f", base, tps)
}
