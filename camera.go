package backdrop

import (
	"github.com/go-gl/mathgl/mgl64"
)

// PerspectiveCamera projects the scene through a symmetric view frustum.
type PerspectiveCamera struct {
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Aspect is viewport width divided by height.
	Aspect float64
	// Near and Far bound the visible depth range.
	Near, Far float64
	// Position is the camera's world-space eye point.
	Position mgl64.Vec3
	// Up orients the camera when looking at a target.
	Up mgl64.Vec3

	target mgl64.Vec3

	view       mgl64.Mat4
	projection mgl64.Mat4
	viewDirty  bool
	projDirty  bool
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	if aspect <= 0 {
		aspect = 1
	}
	return &PerspectiveCamera{
		FOV:       fov,
		Aspect:    aspect,
		Near:      near,
		Far:       far,
		Up:        mgl64.Vec3{0, 1, 0},
		target:    mgl64.Vec3{0, 0, -1},
		viewDirty: true,
		projDirty: true,
	}
}

// SetAspect updates the aspect ratio and invalidates the projection matrix.
// Non-positive values are ignored.
func (c *PerspectiveCamera) SetAspect(aspect float64) {
	if aspect <= 0 || aspect == c.Aspect {
		return
	}
	c.Aspect = aspect
	c.projDirty = true
}

// SetPosition moves the eye point.
func (c *PerspectiveCamera) SetPosition(p mgl64.Vec3) {
	c.Position = p
	c.viewDirty = true
}

// LookAt orients the camera toward a world-space point.
func (c *PerspectiveCamera) LookAt(target mgl64.Vec3) {
	c.target = target
	c.viewDirty = true
}

// Target returns the point the camera is looking at.
func (c *PerspectiveCamera) Target() mgl64.Vec3 {
	return c.target
}

// Approach moves the camera's X and Y a fraction k of the remaining distance
// toward (tx, ty). Z is unchanged. A k of 1.0 snaps immediately; lower
// values give smoother following.
func (c *PerspectiveCamera) Approach(tx, ty, k float64) {
	x := c.Position.X()
	y := c.Position.Y()
	x += (tx - x) * k
	y += (ty - y) * k
	c.Position = mgl64.Vec3{x, y, c.Position.Z()}
	c.viewDirty = true
}

// View returns the world-to-camera matrix, recomputing it if dirty.
func (c *PerspectiveCamera) View() mgl64.Mat4 {
	if c.viewDirty {
		c.view = mgl64.LookAtV(c.Position, c.target, c.Up)
		c.viewDirty = false
	}
	return c.view
}

// Projection returns the camera-to-clip matrix, recomputing it if dirty.
func (c *PerspectiveCamera) Projection() mgl64.Mat4 {
	if c.projDirty {
		c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
		c.projDirty = false
	}
	return c.projection
}

// ViewProjection returns Projection × View.
func (c *PerspectiveCamera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// WorldToScreen projects a world-space point to pixel coordinates in a
// viewport of the given size. ok is false for points at or behind the near
// plane.
func (c *PerspectiveCamera) WorldToScreen(p mgl64.Vec3, width, height float64) (sx, sy, depth float64, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	return clipToScreen(clip, c.Near, width, height)
}

// clipToScreen converts a clip-space position to pixel coordinates with Y
// increasing downward. depth is the view-space distance along the view axis.
func clipToScreen(clip mgl64.Vec4, near, width, height float64) (sx, sy, depth float64, ok bool) {
	w := clip.W()
	if w < near {
		return 0, 0, w, false
	}
	nx := clip.X() / w
	ny := clip.Y() / w
	sx = (nx + 1) * 0.5 * width
	sy = (1 - ny) * 0.5 * height
	return sx, sy, w, true
}
