package backdrop

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// MaxPixelRatio caps the device pixel ratio a Surface renders at, bounding
// GPU cost on high-density displays.
const MaxPixelRatio = 2.0

// Surface is the offscreen canvas a Renderer draws into. Its logical size
// tracks the host viewport; its backing image is Size × PixelRatio device
// pixels and is allocated lazily on first use.
type Surface struct {
	image      *ebiten.Image
	w, h       int
	pixelRatio float64
	antialias  bool
	disposed   bool

	// paint, when set, redraws the surface contents. Hosts call it through
	// Paint right before compositing.
	paint func(dst *ebiten.Image)
}

// NewSurface creates a surface with the given logical size. The image is not
// allocated until Image is called.
func NewSurface(w, h int, pixelRatio float64, antialias bool) *Surface {
	return &Surface{
		w:          max(w, 1),
		h:          max(h, 1),
		pixelRatio: capPixelRatio(pixelRatio),
		antialias:  antialias,
	}
}

// capPixelRatio clamps r to (0, MaxPixelRatio]; non-positive ratios become 1.
func capPixelRatio(r float64) float64 {
	if r <= 0 || math.IsNaN(r) {
		return 1
	}
	return math.Min(r, MaxPixelRatio)
}

// Size returns the logical size.
func (s *Surface) Size() (w, h int) {
	return s.w, s.h
}

// PixelRatio returns the capped device pixel ratio.
func (s *Surface) PixelRatio() float64 {
	return s.pixelRatio
}

// PixelSize returns the backing image size in device pixels.
func (s *Surface) PixelSize() (w, h int) {
	return max(int(math.Round(float64(s.w)*s.pixelRatio)), 1),
		max(int(math.Round(float64(s.h)*s.pixelRatio)), 1)
}

// Antialias reports whether lines and points are drawn anti-aliased.
func (s *Surface) Antialias() bool {
	return s.antialias
}

// SetSize changes the logical size. The backing image is released and
// reallocated at the new size on next use.
func (s *Surface) SetSize(w, h int) {
	w, h = max(w, 1), max(h, 1)
	if w == s.w && h == s.h {
		return
	}
	s.w, s.h = w, h
	s.release()
}

// SetPixelRatio changes the device pixel ratio, capped at MaxPixelRatio.
func (s *Surface) SetPixelRatio(r float64) {
	r = capPixelRatio(r)
	if r == s.pixelRatio {
		return
	}
	s.pixelRatio = r
	s.release()
}

// Image returns the backing image, allocating it if needed. Returns nil after
// Dispose.
func (s *Surface) Image() *ebiten.Image {
	if s.disposed {
		return nil
	}
	if s.image == nil {
		pw, ph := s.PixelSize()
		s.image = ebiten.NewImage(pw, ph)
	}
	return s.image
}

// Allocated reports whether a backing image currently exists.
func (s *Surface) Allocated() bool {
	return s.image != nil
}

// Paint runs the surface's paint function into its image. No-op when nothing
// is bound or after Dispose.
func (s *Surface) Paint() *ebiten.Image {
	if s.disposed || s.paint == nil {
		return nil
	}
	img := s.Image()
	s.paint(img)
	return img
}

// Dispose deallocates the backing image. The Surface must not be used after
// calling Dispose.
func (s *Surface) Dispose() {
	if s.disposed {
		return
	}
	s.release()
	s.paint = nil
	s.disposed = true
}

// Disposed reports whether Dispose has been called.
func (s *Surface) Disposed() bool {
	return s.disposed
}

func (s *Surface) release() {
	if s.image != nil {
		s.image.Deallocate()
		s.image = nil
	}
}
