package backdrop

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultIntroFade is the duration in seconds of the opacity fade-in after
// construction.
const DefaultIntroFade = 1.5

// introFade tweens a global opacity multiplier from 0 to 1. It only affects
// vertex colors, never transforms.
type introFade struct {
	tween *gween.Tween
	alpha float64
	done  bool
}

// newIntroFade creates a fade of the given duration. Non-positive durations
// start fully opaque.
func newIntroFade(seconds float64) *introFade {
	if seconds <= 0 {
		return &introFade{alpha: 1, done: true}
	}
	return &introFade{
		tween: gween.New(0, 1, float32(seconds), ease.OutCubic),
	}
}

// update advances the fade by dt seconds.
func (f *introFade) update(dt float64) {
	if f.done {
		return
	}
	val, finished := f.tween.Update(float32(dt))
	f.alpha = clamp01(float64(val))
	if finished {
		f.alpha = 1
		f.done = true
	}
}
