package backdrop

import (
	"errors"
	"image/color"
)

// ErrFrozen is returned when adding an object to a scene whose membership
// has been fixed.
var ErrFrozen = errors.New("backdrop: scene is frozen")

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material color.
var ColorWhite = Color{1, 1, 1, 1}

// Hex returns the opaque color for a 0xRRGGBB value.
func Hex(rgb uint32) Color {
	return Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// Lerp blends c toward other by t and keeps c's alpha.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A,
	}
}

// toRGBA converts c to a premultiplied color.RGBA for image.Fill.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Range is a general-purpose half-open [Min, Max) sampling range.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies inside the closed range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// ObjectKind distinguishes rendering behavior for an Object3D.
type ObjectKind uint8

const (
	KindGroup        ObjectKind = iota // transform-only parent with no visual output
	KindPoints                         // one screen-facing quad per position
	KindLineSegments                   // one line per geometry edge
	KindMesh                           // mesh drawn as its triangle edges
)

func (k ObjectKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindPoints:
		return "points"
	case KindLineSegments:
		return "lines"
	case KindMesh:
		return "mesh"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of renderer event forwarded to an EventSink.
type EventType uint8

const (
	EventPointerMove EventType = iota // the host reported pointer movement
	EventResize                       // the host viewport changed size
	EventDispose                      // the renderer released its resources
)

func (t EventType) String() string {
	switch t {
	case EventPointerMove:
		return "pointer-move"
	case EventResize:
		return "resize"
	case EventDispose:
		return "dispose"
	default:
		return "unknown"
	}
}

// Event carries renderer event data for an EventSink.
type Event struct {
	Type EventType
	// Pointer fields (valid for EventPointerMove): raw viewport position and
	// the damped offsets derived from it.
	X, Y             float64
	OffsetX, OffsetY float64
	// Resize fields (valid for EventResize).
	Width, Height int
	// Frame is the number of frames processed when the event fired.
	Frame uint64
}

// EventSink is the interface for optional event forwarding, for example
// into an ECS world.
type EventSink interface {
	EmitEvent(event Event)
}
