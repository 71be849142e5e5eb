package torus

import "strings"

// Frame holds one render's resolved grid. It is never reused across renders.
type Frame struct {
	w, h  int
	glyph []byte
	depth []float64
}

// NewFrame returns a blank w x h frame.
func NewFrame(w, h int) *Frame {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	f := &Frame{
		w:     w,
		h:     h,
		glyph: make([]byte, w*h),
		depth: make([]float64, w*h),
	}
	for i := range f.glyph {
		f.glyph[i] = Blank
	}
	return f
}

func (f *Frame) Width() int  { return f.w }
func (f *Frame) Height() int { return f.h }

// Plot offers a sample to cell (x, y). The nearest sample (largest inverse
// depth) wins; on an exact depth tie the denser glyph wins so the result does
// not depend on write order. It reports whether the cell changed.
func (f *Frame) Plot(x, y int, invDepth float64, glyph int) bool {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return false
	}
	if glyph < 0 || glyph >= len(Ramp) {
		return false
	}
	i := y*f.w + x
	g := Ramp[glyph]
	switch {
	case invDepth > f.depth[i]:
	case invDepth == f.depth[i] && f.glyph[i] != Blank && strings.IndexByte(Ramp, f.glyph[i]) < glyph:
	default:
		return false
	}
	f.depth[i] = invDepth
	f.glyph[i] = g
	return true
}

// Glyph returns the glyph at (x, y), Blank when out of range or never hit.
func (f *Frame) Glyph(x, y int) byte {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return Blank
	}
	return f.glyph[y*f.w+x]
}

// Depth returns the winning inverse depth at (x, y), 0 when never hit.
func (f *Frame) Depth(x, y int) float64 {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return 0
	}
	return f.depth[y*f.w+x]
}

// String renders the grid as text, one line per row.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow((f.w + 1) * f.h)
	for y := 0; y < f.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(f.glyph[y*f.w : (y+1)*f.w])
	}
	return sb.String()
}

// Render samples, projects and resolves one frame for rotation (a, b).
func Render(p Params, a, b float64) *Frame {
	f := NewFrame(p.Width, p.Height)
	k1 := p.K1()
	for pt := range Sample(p, a, b) {
		c, ok := Project(pt, k1, p.Width, p.Height)
		if !ok {
			continue
		}
		f.Plot(c.X, c.Y, c.InvDepth, c.Glyph)
	}
	return f
}
