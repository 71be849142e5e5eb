package render

import (
	"errors"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// TerminalSurface draws glyphs as cells of a tcell screen. Coordinates are
// cell positions.
type TerminalSurface struct {
	screen tcell.Screen
	bg     tcell.Color
}

func NewTerminalSurface(screen tcell.Screen) (*TerminalSurface, error) {
	if screen == nil {
		return nil, errors.New("render: no terminal screen")
	}
	return &TerminalSurface{screen: screen, bg: tcell.ColorBlack}, nil
}

func (s *TerminalSurface) Clear(bg color.RGBA) {
	s.bg = rgbColor(bg)
	s.screen.SetStyle(tcell.StyleDefault.Background(s.bg))
	s.screen.Clear()
}

func (s *TerminalSurface) DrawGlyph(r rune, cx, cy int, fg color.RGBA) {
	style := tcell.StyleDefault.Foreground(rgbColor(fg)).Background(s.bg)
	s.screen.SetContent(cx, cy, r, nil, style)
}

func (s *TerminalSurface) Present() error {
	s.screen.Show()
	return nil
}

func rgbColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
