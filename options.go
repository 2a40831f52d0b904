package backdrop

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

type options struct {
	logger        *zap.Logger
	clock         Clock
	rng           *rand.Rand
	debug         bool
	sink          EventSink
	showFPS       bool
	screenshotDir string
	introFade     float64
}

func defaultOptions() options {
	return options{
		logger:        zap.NewNop(),
		screenshotDir: DefaultScreenshotDir,
		introFade:     DefaultIntroFade,
	}
}

// Option configures a Renderer.
type Option func(*options)

// WithLogger sets the logger. Nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock sets the clock time-driven animation reads each frame. Defaults
// to wall time starting at the first frame.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithRand sets the random source used to generate content. Passing a seeded
// source makes the scene layout reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) { o.rng = rng }
}

// WithSeed is shorthand for WithRand with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithDebug enables per-frame render stats at debug log level.
func WithDebug(enabled bool) Option {
	return func(o *options) { o.debug = enabled }
}

// WithEventSink forwards pointer, resize and dispose events to sink.
func WithEventSink(sink EventSink) Option {
	return func(o *options) { o.sink = sink }
}

// WithShowFPS draws an FPS/TPS readout over the scene.
func WithShowFPS(enabled bool) Option {
	return func(o *options) { o.showFPS = enabled }
}

// WithScreenshotDir sets where Screenshot writes PNG files.
func WithScreenshotDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.screenshotDir = dir
		}
	}
}

// WithIntroFade sets the fade-in duration in seconds. Zero disables the fade.
func WithIntroFade(seconds float64) Option {
	return func(o *options) { o.introFade = seconds }
}
