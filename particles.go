package backdrop

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// CloudConfig controls how a particle cloud is sampled.
type CloudConfig struct {
	// Count is the number of points. Non-positive values default to 128.
	Count int
	// Extent is the edge length of the cube the points are sampled from.
	// Each coordinate is uniform in [-Extent/2, Extent/2).
	Extent float64
}

// NewParticleCloud samples cfg.Count positions uniformly from a cube centered
// on the origin. The positions never change after creation; animate the
// owning object's transform instead.
func NewParticleCloud(rng *rand.Rand, cfg CloudConfig) *Geometry {
	n := cfg.Count
	if n <= 0 {
		n = 128
	}
	r := Range{Min: -cfg.Extent / 2, Max: cfg.Extent / 2}
	g := &Geometry{Positions: make([]mgl64.Vec3, n)}
	for i := range g.Positions {
		g.Positions[i] = mgl64.Vec3{r.Random(rng), r.Random(rng), r.Random(rng)}
	}
	return g
}

// Random returns a random float64 in [Min, Max) drawn from rng, or from the
// package-level source when rng is nil.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	var f float64
	if rng != nil {
		f = rng.Float64()
	} else {
		f = rand.Float64()
	}
	return r.Min + f*(r.Max-r.Min)
}
