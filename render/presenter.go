// Package render draws resolved torus frames onto a display surface.
package render

import (
	"errors"
	"image/color"

	"donut/torus"
)

// Background fills the surface before every frame.
var Background = color.RGBA{A: 0xFF}

// Surface is the drawing collaborator behind a Presenter.
//
// Coordinates are in surface units (pixels, or cells for a terminal).
// DrawGlyph centers r on (cx, cy).
type Surface interface {
	Clear(bg color.RGBA)
	DrawGlyph(r rune, cx, cy int, fg color.RGBA)
	Present() error
}

// Presenter lays a frame out as a grid of cellW x cellH blocks.
type Presenter struct {
	s            Surface
	cellW, cellH int
}

// NewPresenter returns a presenter drawing onto s.
func NewPresenter(s Surface, cellW, cellH int) (*Presenter, error) {
	if s == nil {
		return nil, errors.New("render: nil surface")
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, errors.New("render: cell size must be positive")
	}
	return &Presenter{s: s, cellW: cellW, cellH: cellH}, nil
}

// Surface returns the underlying surface.
func (p *Presenter) Surface() Surface { return p.s }

// Draw clears the surface, draws every non-blank cell of f in row-major order
// colored fg, and presents the result.
func (p *Presenter) Draw(f *torus.Frame, fg color.RGBA) error {
	p.s.Clear(Background)
	for row := 0; row < f.Height(); row++ {
		cy := row*p.cellH + p.cellH/2
		for col := 0; col < f.Width(); col++ {
			g := f.Glyph(col, row)
			if g == torus.Blank {
				continue
			}
			p.s.DrawGlyph(rune(g), col*p.cellW+p.cellW/2, cy, fg)
		}
	}
	return p.s.Present()
}

// Close releases the surface if it holds resources.
func (p *Presenter) Close() error {
	if c, ok := p.s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
