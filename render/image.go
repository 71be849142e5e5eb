package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomonobold"
)

// ImageSurface rasterizes glyphs into an offscreen gg context. It backs
// headless snapshots.
type ImageSurface struct {
	ctx    *gg.Context
	source *text.FontSource
	frames int
}

// NewImageSurface allocates a w x h canvas using Go Mono Bold at size points.
func NewImageSurface(w, h int, size float64) (*ImageSurface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("render: invalid canvas %dx%d", w, h)
	}
	if size <= 0 {
		return nil, fmt.Errorf("render: invalid font size %v", size)
	}
	source, err := text.NewFontSource(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("render: load font: %w", err)
	}
	ctx := gg.NewContext(w, h)
	ctx.SetFont(source.Face(size))
	return &ImageSurface{ctx: ctx, source: source}, nil
}

func (s *ImageSurface) Clear(bg color.RGBA) {
	s.ctx.ClearWithColor(gg.FromColor(bg))
}

func (s *ImageSurface) DrawGlyph(r rune, cx, cy int, fg color.RGBA) {
	s.ctx.SetColor(fg)
	s.ctx.DrawStringAnchored(string(r), float64(cx), float64(cy), 0.5, 0.5)
}

// Present counts the frame; the canvas is read back on demand.
func (s *ImageSurface) Present() error {
	s.frames++
	return nil
}

// Frames reports how many frames have been presented.
func (s *ImageSurface) Frames() int { return s.frames }

// Image returns the current canvas.
func (s *ImageSurface) Image() image.Image { return s.ctx.Image() }

// SavePNG writes the canvas to path.
func (s *ImageSurface) SavePNG(path string) error { return s.ctx.SavePNG(path) }

// EncodePNG writes the canvas to w as PNG.
func (s *ImageSurface) EncodePNG(w io.Writer) error { return s.ctx.EncodePNG(w) }

func (s *ImageSurface) Close() error {
	err := s.ctx.Close()
	if cerr := s.source.Close(); err == nil {
		err = cerr
	}
	return err
}
