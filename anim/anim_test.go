package anim

import (
	"image/color"
	"math"
	"testing"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestSettingsClamp(t *testing.T) {
	s := DefaultSettings()
	s.Apply(Update{FrameRate: intp(200)})
	if s.FrameRate != 120 {
		t.Fatalf("FrameRate=%d; want 120", s.FrameRate)
	}
	if s.RotationSpeed != 1 || s.ColorSpeed != 1 {
		t.Fatalf("untouched fields changed: %+v", s)
	}

	s.Apply(Update{RotationSpeed: floatp(0.01)})
	if s.RotationSpeed != 0.1 {
		t.Fatalf("RotationSpeed=%g; want 0.1", s.RotationSpeed)
	}
	if s.FrameRate != 120 || s.ColorSpeed != 1 {
		t.Fatalf("untouched fields changed: %+v", s)
	}

	tcs := []struct {
		u    Update
		want Settings
	}{
		{u: Update{FrameRate: intp(5)}, want: Settings{FrameRate: 10, RotationSpeed: 1, ColorSpeed: 1}},
		{u: Update{FrameRate: intp(30)}, want: Settings{FrameRate: 30, RotationSpeed: 1, ColorSpeed: 1}},
		{u: Update{RotationSpeed: floatp(9)}, want: Settings{FrameRate: 60, RotationSpeed: 5, ColorSpeed: 1}},
		{u: Update{ColorSpeed: floatp(0)}, want: Settings{FrameRate: 60, RotationSpeed: 1, ColorSpeed: 0.1}},
		{u: Update{ColorSpeed: floatp(3.5)}, want: Settings{FrameRate: 60, RotationSpeed: 1, ColorSpeed: 3}},
		{u: Update{ColorSpeed: floatp(math.NaN())}, want: Settings{FrameRate: 60, RotationSpeed: 1, ColorSpeed: 0.1}},
		{u: Update{}, want: DefaultSettings()},
	}
	for i, tc := range tcs {
		s := DefaultSettings()
		s.Apply(tc.u)
		if s != tc.want {
			t.Fatalf("case %d: got %+v; want %+v", i, s, tc.want)
		}
	}
}

func TestDriverAdvance(t *testing.T) {
	d := NewDriver(DefaultSettings())
	d.Advance()
	if d.A != StepA || d.B != StepB || d.Hue != StepHue {
		t.Fatalf("after one frame: A=%g B=%g hue=%g", d.A, d.B, d.Hue)
	}

	d = NewDriver(Settings{FrameRate: 60, RotationSpeed: 2, ColorSpeed: 3})
	d.Advance()
	if math.Abs(d.A-0.3) > 1e-12 || math.Abs(d.B-0.07) > 1e-12 || math.Abs(d.Hue-0.015) > 1e-12 {
		t.Fatalf("scaled frame: A=%g B=%g hue=%g", d.A, d.B, d.Hue)
	}
}

func TestDriverHueWraps(t *testing.T) {
	d := NewDriver(Settings{FrameRate: 60, RotationSpeed: 1, ColorSpeed: MaxColorSpeed})
	wrapped := false
	prev := d.Hue
	for i := 0; i < 1000; i++ {
		d.Advance()
		if d.Hue < 0 || d.Hue >= 1 {
			t.Fatalf("frame %d: hue=%g outside [0,1)", i, d.Hue)
		}
		if d.Hue < prev {
			wrapped = true
		}
		prev = d.Hue
	}
	if !wrapped {
		t.Fatal("expected hue to wrap at least once")
	}
}

func TestDriverAnglesUnbounded(t *testing.T) {
	d := NewDriver(Settings{FrameRate: 60, RotationSpeed: MaxRotationSpeed, ColorSpeed: 1})
	for i := 0; i < 100; i++ {
		d.Advance()
	}
	if d.A <= 2*math.Pi {
		t.Fatalf("A=%g was normalized", d.A)
	}
}

func TestHueColor(t *testing.T) {
	tcs := []struct {
		h    float64
		want color.RGBA
	}{
		{h: 0, want: color.RGBA{R: 255, A: 255}},
		{h: 1.0 / 3, want: color.RGBA{G: 255, A: 255}},
		{h: 2.0 / 3, want: color.RGBA{B: 255, A: 255}},
		{h: 0.5, want: color.RGBA{G: 255, B: 255, A: 255}},
	}
	for _, tc := range tcs {
		if got := HueColor(tc.h); got != tc.want {
			t.Fatalf("HueColor(%g)=%v; want %v", tc.h, got, tc.want)
		}
	}
}

func TestUpdateString(t *testing.T) {
	u := Update{FrameRate: intp(30), ColorSpeed: floatp(2)}
	if got, want := u.String(), "{fps=30 color=2x}"; got != want {
		t.Fatalf("String()=%q; want %q", got, want)
	}
	if !(Update{}).Empty() || u.Empty() {
		t.Fatal("Empty mismatch")
	}
}
