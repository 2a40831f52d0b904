package backdrop

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// FogExp2 darkens distant geometry toward Color with a factor that grows with
// the square of depth.
type FogExp2 struct {
	Color   Color
	Density float64
}

// Factor returns the fog blend factor in [0, 1] for a view-space depth.
func (f FogExp2) Factor(depth float64) float64 {
	if f.Density <= 0 || depth <= 0 {
		return 0
	}
	d := f.Density * depth
	return clamp01(1 - math.Exp(-d*d))
}

// Scene is the top-level object that owns the object tree plus background
// and fog state.
type Scene struct {
	root *Object3D

	// Background is the color the surface is cleared to each frame.
	Background Color
	// Fog is applied to every vertex by depth. A zero Density disables it.
	Fog FogExp2
}

// NewScene creates a new scene with a pre-created root group at the origin.
func NewScene() *Scene {
	return &Scene{root: NewGroup("root")}
}

// Root returns the scene's root group.
func (s *Scene) Root() *Object3D {
	return s.root
}

// Add attaches obj to the scene root.
func (s *Scene) Add(obj *Object3D) error {
	return s.root.Add(obj)
}

// Freeze fixes the scene's membership. Later Add or Remove calls anywhere in
// the tree return ErrFrozen; transforms stay mutable.
func (s *Scene) Freeze() {
	freezeSubtree(s.root)
}

// Frozen reports whether Freeze has been called.
func (s *Scene) Frozen() bool {
	return s.root.frozen
}

// Count returns the number of objects of the given kind in the tree,
// excluding the root.
func (s *Scene) Count(kind ObjectKind) int {
	n := 0
	for _, c := range s.root.children {
		c.Walk(func(o *Object3D) {
			if o.Kind == kind {
				n++
			}
		})
	}
	return n
}

// updateTransforms refreshes world matrices for the whole tree.
func (s *Scene) updateTransforms() {
	updateWorldMatrix(s.root, mgl64.Ident4(), false)
}
