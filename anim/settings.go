package anim

import "fmt"

// Valid settings ranges. Values outside are clamped, never rejected.
const (
	MinFrameRate = 10
	MaxFrameRate = 120

	MinRotationSpeed = 0.1
	MaxRotationSpeed = 5.0

	MinColorSpeed = 0.1
	MaxColorSpeed = 3.0
)

// Settings are the user-tunable animation knobs.
type Settings struct {
	FrameRate     int
	RotationSpeed float64
	ColorSpeed    float64
}

// DefaultSettings returns 60 fps at unit speeds.
func DefaultSettings() Settings {
	return Settings{
		FrameRate:     60,
		RotationSpeed: 1.0,
		ColorSpeed:    1.0,
	}
}

// Update carries optional new settings. Nil fields are left untouched.
type Update struct {
	FrameRate     *int
	RotationSpeed *float64
	ColorSpeed    *float64
}

// Empty reports whether u changes nothing.
func (u Update) Empty() bool {
	return u.FrameRate == nil && u.RotationSpeed == nil && u.ColorSpeed == nil
}

func (u Update) String() string {
	s := "{"
	sep := ""
	if u.FrameRate != nil {
		s += fmt.Sprintf("fps=%d", *u.FrameRate)
		sep = " "
	}
	if u.RotationSpeed != nil {
		s += fmt.Sprintf("%srotation=%gx", sep, *u.RotationSpeed)
		sep = " "
	}
	if u.ColorSpeed != nil {
		s += fmt.Sprintf("%scolor=%gx", sep, *u.ColorSpeed)
	}
	return s + "}"
}

// Apply clamps and stores the provided fields of u.
func (s *Settings) Apply(u Update) {
	if u.FrameRate != nil {
		s.FrameRate = clampInt(*u.FrameRate, MinFrameRate, MaxFrameRate)
	}
	if u.RotationSpeed != nil {
		s.RotationSpeed = clampFloat(*u.RotationSpeed, MinRotationSpeed, MaxRotationSpeed)
	}
	if u.ColorSpeed != nil {
		s.ColorSpeed = clampFloat(*u.ColorSpeed, MinColorSpeed, MaxColorSpeed)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	// NaN compares false everywhere; pin it to the low end.
	if !(v >= lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
