package backdrop

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Euler is a rotation in radians applied in X, then Y, then Z order
// (intrinsic), matching the usual scene-graph convention.
type Euler struct {
	X, Y, Z float64
}

// Material describes how an object's geometry is shaded.
type Material struct {
	Color   Color
	Opacity float64
	// Size is the world-space point size for KindPoints. Points shrink with
	// distance from the camera.
	Size float64
	// DepthTest is recorded for parity with GPU materials. The software
	// projector ignores it and draws in scene order.
	DepthTest bool
}

// objectIDCounter is a plain counter (no atomic; backdrop is single-threaded).
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// Object3D is the scene graph element. A single flat struct is used for all
// object kinds to avoid interface dispatch on the hot path.
type Object3D struct {
	// Identity
	ID   uint32
	Name string
	Kind ObjectKind

	// Hierarchy
	Parent   *Object3D
	children []*Object3D

	// Transform (local)
	Position mgl64.Vec3
	Rotation Euler
	Scale    mgl64.Vec3

	Visible bool

	Geometry *Geometry
	Material Material

	worldMatrix    mgl64.Mat4
	transformDirty bool
	frozen         bool
}

func objectDefaults(o *Object3D) {
	o.ID = nextObjectID()
	o.Scale = mgl64.Vec3{1, 1, 1}
	o.Visible = true
	o.worldMatrix = mgl64.Ident4()
	o.transformDirty = true
	o.Material.Color = ColorWhite
	o.Material.Opacity = 1
}

// NewGroup creates a transform-only container.
func NewGroup(name string) *Object3D {
	o := &Object3D{Name: name, Kind: KindGroup}
	objectDefaults(o)
	return o
}

// NewPoints creates a point cloud drawn as one attenuated quad per position.
func NewPoints(name string, geo *Geometry, mat Material) *Object3D {
	o := &Object3D{Name: name, Kind: KindPoints, Geometry: geo}
	objectDefaults(o)
	o.Material = mat
	return o
}

// NewLineSegments creates an object that draws every geometry edge.
func NewLineSegments(name string, geo *Geometry, mat Material) *Object3D {
	o := &Object3D{Name: name, Kind: KindLineSegments, Geometry: geo}
	objectDefaults(o)
	o.Material = mat
	return o
}

// NewMesh creates a mesh object. Meshes are drawn as the edges of their
// triangles.
func NewMesh(name string, geo *Geometry, mat Material) *Object3D {
	o := &Object3D{Name: name, Kind: KindMesh, Geometry: geo}
	objectDefaults(o)
	o.Material = mat
	return o
}

// --- Tree manipulation ---

// Add appends child to this object's children. If child already has a
// parent it is removed from that parent first. Returns ErrFrozen when this
// object belongs to a frozen scene.
// Panics if child is nil or child is an ancestor of this object (cycle).
func (o *Object3D) Add(child *Object3D) error {
	if child == nil {
		panic("backdrop: cannot add nil child")
	}
	if o.frozen || child.frozen {
		return fmt.Errorf("backdrop: add %q to %q: %w", child.Name, o.Name, ErrFrozen)
	}
	if isAncestor(child, o) {
		panic("backdrop: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = o
	o.children = append(o.children, child)
	markSubtreeDirty(child)
	return nil
}

// Remove detaches child from this object. Returns ErrFrozen when this object
// belongs to a frozen scene.
// Panics if child.Parent != o.
func (o *Object3D) Remove(child *Object3D) error {
	if o.frozen {
		return fmt.Errorf("backdrop: remove %q from %q: %w", child.Name, o.Name, ErrFrozen)
	}
	if child.Parent != o {
		panic("backdrop: child's parent is not this object")
	}
	o.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
	return nil
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (o *Object3D) Children() []*Object3D {
	return o.children
}

// NumChildren returns the number of children.
func (o *Object3D) NumChildren() int {
	return len(o.children)
}

// Frozen reports whether the object's membership is fixed.
func (o *Object3D) Frozen() bool {
	return o.frozen
}

// Walk calls fn for this object and every descendant, depth-first in
// child order.
func (o *Object3D) Walk(fn func(*Object3D)) {
	fn(o)
	for _, c := range o.children {
		c.Walk(fn)
	}
}

// WorldMatrix returns the world matrix computed by the last transform update.
func (o *Object3D) WorldMatrix() mgl64.Mat4 {
	return o.worldMatrix
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of obj.
func isAncestor(candidate, obj *Object3D) bool {
	for p := obj; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from o.children without clearing child.Parent.
func (o *Object3D) removeChildByPtr(child *Object3D) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on obj and all its descendants.
func markSubtreeDirty(obj *Object3D) {
	obj.transformDirty = true
	for _, child := range obj.children {
		markSubtreeDirty(child)
	}
}

// freezeSubtree fixes membership of obj and all its descendants.
func freezeSubtree(obj *Object3D) {
	obj.frozen = true
	for _, child := range obj.children {
		freezeSubtree(child)
	}
}
