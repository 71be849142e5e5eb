package render

import (
	"bytes"
	"errors"
	"image/color"
	"io"
	"testing"

	"donut/hal"
	"donut/torus"

	"github.com/gdamore/tcell/v2"
)

type drawCall struct {
	r      rune
	cx, cy int
}

type recordingSurface struct {
	clears  int
	draws   []drawCall
	order   []string
	present error
	closed  int
}

func (s *recordingSurface) Clear(color.RGBA) {
	s.clears++
	s.order = append(s.order, "clear")
}

func (s *recordingSurface) DrawGlyph(r rune, cx, cy int, _ color.RGBA) {
	s.draws = append(s.draws, drawCall{r: r, cx: cx, cy: cy})
	s.order = append(s.order, "draw")
}

func (s *recordingSurface) Present() error {
	s.order = append(s.order, "present")
	return s.present
}

func (s *recordingSurface) Close() error {
	s.closed++
	return nil
}

func TestPresenterDrawsNonBlankCellsAtCenters(t *testing.T) {
	f := torus.NewFrame(3, 2)
	f.Plot(0, 0, 1, 11)
	f.Plot(2, 1, 1, 0)

	s := &recordingSurface{}
	p, err := NewPresenter(s, 20, 20)
	if err != nil {
		t.Fatalf("NewPresenter: %v", err)
	}
	if err := p.Draw(f, color.RGBA{R: 255, A: 255}); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	want := []drawCall{{r: '@', cx: 10, cy: 10}, {r: '.', cx: 50, cy: 30}}
	if len(s.draws) != len(want) {
		t.Fatalf("draws = %+v; want %+v", s.draws, want)
	}
	for i := range want {
		if s.draws[i] != want[i] {
			t.Fatalf("draw %d = %+v; want %+v", i, s.draws[i], want[i])
		}
	}
	if s.order[0] != "clear" || s.order[len(s.order)-1] != "present" {
		t.Fatalf("order = %v", s.order)
	}
}

func TestPresenterBlankFrameOnlyClears(t *testing.T) {
	s := &recordingSurface{}
	p, _ := NewPresenter(s, 2, 1)
	if err := p.Draw(torus.NewFrame(4, 4), color.RGBA{}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if s.clears != 1 || len(s.draws) != 0 {
		t.Fatalf("clears=%d draws=%d", s.clears, len(s.draws))
	}
}

func TestPresenterPropagatesPresentError(t *testing.T) {
	boom := errors.New("surface gone")
	s := &recordingSurface{present: boom}
	p, _ := NewPresenter(s, 1, 1)
	if err := p.Draw(torus.NewFrame(1, 1), color.RGBA{}); !errors.Is(err, boom) {
		t.Fatalf("err = %v; want %v", err, boom)
	}
}

func TestPresenterClose(t *testing.T) {
	s := &recordingSurface{}
	p, _ := NewPresenter(s, 1, 1)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.closed != 1 {
		t.Fatalf("closed = %d", s.closed)
	}
}

func TestNewPresenterRejectsBadInput(t *testing.T) {
	if _, err := NewPresenter(nil, 1, 1); err == nil {
		t.Fatal("expected error for nil surface")
	}
	if _, err := NewPresenter(&recordingSurface{}, 0, 1); err == nil {
		t.Fatal("expected error for zero cell width")
	}
}

func TestFramebufferSurfaceDrawsNearCenter(t *testing.T) {
	h := hal.New(hal.HostConfig{Width: 40, Height: 40, Log: io.Discard})
	fb := h.Display().Framebuffer()
	s, err := NewFramebufferSurface(fb, nil)
	if err != nil {
		t.Fatalf("NewFramebufferSurface: %v", err)
	}
	s.Clear(Background)
	s.DrawGlyph('@', 20, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	buf := fb.Buffer()
	lit := 0
	for y := 8; y < 32; y++ {
		for x := 8; x < 32; x++ {
			off := y*fb.StrideBytes() + x*2
			if buf[off] != 0 || buf[off+1] != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("no pixels lit around the glyph center")
	}
	if err := s.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
}

func TestFramebufferSurfaceNeedsFramebuffer(t *testing.T) {
	if _, err := NewFramebufferSurface(nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestTerminalSurfaceSetsCells(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 20)

	s, err := NewTerminalSurface(screen)
	if err != nil {
		t.Fatalf("NewTerminalSurface: %v", err)
	}
	p, _ := NewPresenter(s, 2, 1)

	f := torus.NewFrame(20, 20)
	f.Plot(3, 4, 1, 11)
	fg := color.RGBA{R: 255, A: 255}
	if err := p.Draw(f, fg); err != nil {
		t.Fatalf("Draw: %v", err)
	}

	r, _, style, _ := screen.GetContent(7, 4)
	if r != '@' {
		t.Fatalf("cell (7,4) = %q; want '@'", r)
	}
	gotFg, gotBg, _ := style.Decompose()
	if gotFg != tcell.NewRGBColor(255, 0, 0) {
		t.Fatalf("fg = %v; want red", gotFg)
	}
	if gotBg != tcell.NewRGBColor(0, 0, 0) {
		t.Fatalf("bg = %v; want black", gotBg)
	}
	if r, _, _, _ := screen.GetContent(6, 4); r != ' ' {
		t.Fatalf("cell (6,4) = %q; want blank", r)
	}
}

func TestImageSurfaceRendersGlyph(t *testing.T) {
	s, err := NewImageSurface(40, 40, 18)
	if err != nil {
		t.Fatalf("NewImageSurface: %v", err)
	}
	defer s.Close()

	s.Clear(Background)
	s.DrawGlyph('@', 20, 20, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	if err := s.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if s.Frames() != 1 {
		t.Fatalf("frames = %d", s.Frames())
	}

	img := s.Image()
	lit := 0
	for y := 5; y < 35; y++ {
		for x := 5; x < 35; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r|g|b != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("glyph left no ink on the canvas")
	}

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Fatal("output is not a PNG")
	}
}

func TestNewImageSurfaceRejectsEmptyCanvas(t *testing.T) {
	if _, err := NewImageSurface(0, 10, 12); err == nil {
		t.Fatal("expected error")
	}
}
