package render

import (
	"errors"
	"image/color"

	"donut/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
)

// DefaultFont is the bitmap font used on framebuffers.
var DefaultFont tinyfont.Fonter = &freemono.Bold12pt7b

// FramebufferSurface draws glyphs into an RGB565 framebuffer with tinyfont.
type FramebufferSurface struct {
	fb   hal.Framebuffer
	font tinyfont.Fonter
	d    fbDisplayer
}

// NewFramebufferSurface wraps fb. A nil font selects DefaultFont.
func NewFramebufferSurface(fb hal.Framebuffer, font tinyfont.Fonter) (*FramebufferSurface, error) {
	if fb == nil {
		return nil, errors.New("render: no framebuffer")
	}
	if fb.Format() != hal.PixelFormatRGB565 {
		return nil, errors.New("render: framebuffer must be RGB565")
	}
	if font == nil {
		font = DefaultFont
	}
	return &FramebufferSurface{fb: fb, font: font, d: fbDisplayer{fb: fb}}, nil
}

func (s *FramebufferSurface) Clear(bg color.RGBA) {
	s.fb.ClearRGB(bg.R, bg.G, bg.B)
}

// DrawGlyph centers the glyph's ink box on (cx, cy).
func (s *FramebufferSurface) DrawGlyph(r rune, cx, cy int, fg color.RGBA) {
	info := s.font.GetGlyph(r).Info()
	x := int16(cx) - int16(info.Width)/2 - int16(info.XOffset)
	// The ink spans baseline+YOffset .. baseline+YOffset+Height.
	y := int16(cy) - int16(info.Height)/2 - int16(info.YOffset)
	tinyfont.DrawChar(&s.d, s.font, x, y, r, fg)
}

func (s *FramebufferSurface) Present() error {
	return s.fb.Present()
}

// fbDisplayer lets tinyfont plot into the framebuffer.
type fbDisplayer struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplayer)(nil)

func (d *fbDisplayer) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplayer) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := hal.RGB565(c)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplayer) Display() error { return nil }
