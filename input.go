package backdrop

// PointerDamping scales the pointer's distance from the viewport center into
// a camera target offset.
const PointerDamping = 0.05

// PointerState holds the damped pointer offsets from the viewport center.
// Written by pointer-move notifications, read once per frame; the latest
// write wins.
type PointerState struct {
	X, Y float64
}

// Update recomputes the offsets for a pointer at (px, py) in a viewport of
// size (w, h).
func (p *PointerState) Update(px, py float64, w, h int) {
	p.X = (px - float64(w)/2) * PointerDamping
	p.Y = (py - float64(h)/2) * PointerDamping
}

// CameraTarget returns the X/Y point the camera drifts toward. Screen Y grows
// downward while world Y grows upward, so Y is negated.
func (p PointerState) CameraTarget() (x, y float64) {
	return p.X, -p.Y
}
