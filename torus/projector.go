package torus

import "math"

// Ramp orders glyphs from sparse to dense.
const Ramp = ".,-~:;=!*#$@"

// Blank marks a cell no sample reached.
const Blank = ' '

// Cell is a projected sample: grid position, depth proxy and ramp index.
type Cell struct {
	X, Y     int
	InvDepth float64
	Glyph    int
}

// Luminance is the fixed lighting term for rotation (a, b) at surface
// angles (theta, phi). It ranges over [-sqrt(2), sqrt(2)].
func Luminance(a, b, theta, phi float64) float64 {
	sinA, cosA := math.Sincos(a)
	sinB, cosB := math.Sincos(b)
	sinT, cosT := math.Sincos(theta)
	sinP, cosP := math.Sincos(phi)
	return luminance(sinA, cosA, sinB, cosB, sinT, cosT, sinP, cosP)
}

func luminance(sinA, cosA, sinB, cosB, sinT, cosT, sinP, cosP float64) float64 {
	return cosP*cosT*sinB - cosA*cosT*sinP - sinA*sinT +
		cosB*(cosA*sinT-cosT*sinA*sinP)
}

// GlyphIndex maps a luminance value onto Ramp.
func GlyphIndex(l float64) int {
	i := int(math.Floor(l * 8))
	if i < 0 {
		return 0
	}
	if i > len(Ramp)-1 {
		return len(Ramp) - 1
	}
	return i
}

// Project maps pt onto a w x h grid with scale k1.
// ok is false when the point falls outside the grid.
func Project(pt Point, k1 float64, w, h int) (c Cell, ok bool) {
	xp := int(float64(w)/2 + k1*pt.InvDepth*pt.X)
	yp := int(float64(h)/2 - k1*pt.InvDepth*pt.Y)
	if xp < 0 || xp >= w || yp < 0 || yp >= h {
		return Cell{}, false
	}
	return Cell{
		X:        xp,
		Y:        yp,
		InvDepth: pt.InvDepth,
		Glyph:    GlyphIndex(pt.Luminance),
	}, true
}
