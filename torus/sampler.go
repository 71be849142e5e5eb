package torus

import (
	"iter"
	"math"
)

// Point is one sample on the rotated torus surface.
type Point struct {
	Theta, Phi float64
	X, Y, Z    float64
	InvDepth   float64
	Luminance  float64
}

// Sample enumerates the surface for rotation angles a and b.
//
// Theta walks the tube cross-section, phi walks the revolution around the
// center. The sequence is pure and can be ranged over any number of times.
func Sample(p Params, a, b float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		sinA, cosA := math.Sincos(a)
		sinB, cosB := math.Sincos(b)

		for theta := 0.0; theta < 2*math.Pi; theta += p.ThetaStep {
			sinT, cosT := math.Sincos(theta)
			circleX := p.R2 + p.R1*cosT
			circleY := p.R1 * sinT

			for phi := 0.0; phi < 2*math.Pi; phi += p.PhiStep {
				sinP, cosP := math.Sincos(phi)

				x := circleX*(cosB*cosP+sinA*sinB*sinP) - circleY*cosA*sinB
				y := circleX*(sinB*cosP-sinA*cosB*sinP) + circleY*cosA*cosB
				z := p.K2 + cosA*circleX*sinP + circleY*sinA

				pt := Point{
					Theta:     theta,
					Phi:       phi,
					X:         x,
					Y:         y,
					Z:         z,
					InvDepth:  1 / z,
					Luminance: luminance(sinA, cosA, sinB, cosB, sinT, cosT, sinP, cosP),
				}
				if !yield(pt) {
					return
				}
			}
		}
	}
}
