package backdrop

import (
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestCapPixelRatio(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{1.5, 1.5},
		{2, 2},
		{3, 2},
		{0, 1},
		{-1, 1},
		{math.NaN(), 1},
	}
	for _, tt := range tests {
		if got := capPixelRatio(tt.in); got != tt.want {
			t.Errorf("capPixelRatio(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSurfaceSizes(t *testing.T) {
	s := NewSurface(800, 600, 1.5, true)
	if w, h := s.Size(); w != 800 || h != 600 {
		t.Errorf("Size = %dx%d", w, h)
	}
	if w, h := s.PixelSize(); w != 1200 || h != 900 {
		t.Errorf("PixelSize = %dx%d, want 1200x900", w, h)
	}
	if !s.Antialias() {
		t.Error("Antialias = false")
	}
	if s.Allocated() {
		t.Error("image should be allocated lazily")
	}

	s.SetSize(0, -4)
	if w, h := s.Size(); w != 1 || h != 1 {
		t.Errorf("Size after invalid SetSize = %dx%d, want 1x1", w, h)
	}

	s.SetPixelRatio(4)
	if s.PixelRatio() != MaxPixelRatio {
		t.Errorf("PixelRatio = %f, want %f", s.PixelRatio(), MaxPixelRatio)
	}
}

func TestSurfaceDispose(t *testing.T) {
	s := NewSurface(10, 10, 1, false)
	s.paint = func(*ebiten.Image) {}
	s.Dispose()
	if !s.Disposed() {
		t.Error("Disposed = false")
	}
	if s.Image() != nil {
		t.Error("Image after Dispose should be nil")
	}
	if s.Paint() != nil {
		t.Error("Paint after Dispose should be nil")
	}
	s.Dispose() // idempotent
}
