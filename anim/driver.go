// Package anim holds the state that survives between frames: rotation
// angles, hue and the speed settings.
package anim

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Per-frame increments at unit speed.
const (
	StepA   = 0.15
	StepB   = 0.035
	StepHue = 0.005
)

// Driver advances the animation once per completed frame.
//
// A and B grow without bound; the renderer only feeds them to sin/cos.
type Driver struct {
	A, B float64
	Hue  float64

	Settings Settings
}

// NewDriver starts at A = B = hue = 0 with s.
func NewDriver(s Settings) *Driver {
	return &Driver{Settings: s}
}

// Advance steps the angles and hue by one frame.
func (d *Driver) Advance() {
	d.A += StepA * d.Settings.RotationSpeed
	d.B += StepB * d.Settings.RotationSpeed
	d.Hue += StepHue * d.Settings.ColorSpeed
	if d.Hue >= 1 {
		d.Hue = 0
	}
}

// Apply forwards u to the settings.
func (d *Driver) Apply(u Update) {
	d.Settings.Apply(u)
}

// Color is the glyph color for the current hue.
func (d *Driver) Color() color.RGBA {
	return HueColor(d.Hue)
}

// HueColor converts hue h in [0, 1) at full saturation and value.
func HueColor(h float64) color.RGBA {
	r, g, b := colorful.Hsv(h*360, 1, 1).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}
