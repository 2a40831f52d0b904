package backdrop

import "github.com/go-gl/mathgl/mgl64"

// computeLocalMatrix computes the local matrix from the object's transform
// properties.
//
// Composition order:
//
//	Scale -> RotateZ -> RotateY -> RotateX -> Translate(Position)
func computeLocalMatrix(o *Object3D) mgl64.Mat4 {
	m := mgl64.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	if o.Rotation.X != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(o.Rotation.X))
	}
	if o.Rotation.Y != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(o.Rotation.Y))
	}
	if o.Rotation.Z != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(o.Rotation.Z))
	}
	if o.Scale != (mgl64.Vec3{1, 1, 1}) {
		m = m.Mul4(mgl64.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z()))
	}
	return m
}

// updateWorldMatrix recomputes an object's worldMatrix.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this object even if it's not dirty.
func updateWorldMatrix(o *Object3D, parent mgl64.Mat4, parentRecomputed bool) {
	recompute := o.transformDirty || parentRecomputed
	if recompute {
		o.worldMatrix = parent.Mul4(computeLocalMatrix(o))
		o.transformDirty = false
	}
	for _, child := range o.children {
		updateWorldMatrix(child, o.worldMatrix, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the object's local position and marks it dirty.
func (o *Object3D) SetPosition(x, y, z float64) {
	o.Position = mgl64.Vec3{x, y, z}
	o.transformDirty = true
}

// SetRotation sets the object's rotation (radians) and marks it dirty.
func (o *Object3D) SetRotation(r Euler) {
	o.Rotation = r
	o.transformDirty = true
}

// Rotate adds the given deltas to the object's rotation and marks it dirty.
func (o *Object3D) Rotate(dx, dy, dz float64) {
	o.Rotation.X += dx
	o.Rotation.Y += dy
	o.Rotation.Z += dz
	o.transformDirty = true
}

// SetScale sets the object's scale and marks it dirty.
func (o *Object3D) SetScale(x, y, z float64) {
	o.Scale = mgl64.Vec3{x, y, z}
	o.transformDirty = true
}

// LocalToWorld converts a local-space point to world space using the last
// computed world matrix.
func (o *Object3D) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, o.worldMatrix)
}
