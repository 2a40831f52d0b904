// Package ecs provides ECS adapters for backdrop.
package ecs

import (
	"github.com/graphlearn/backdrop"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// BackdropEventType is the Donburi event type for backdrop renderer events.
// Subscribe to this in your ECS systems to receive pointer, resize, and
// dispose events.
var BackdropEventType = events.NewEventType[backdrop.Event]()

// ViewData mirrors the renderer's latest viewport and pointer state.
type ViewData struct {
	Width, Height    int
	PointerX         float64
	PointerY         float64
	OffsetX, OffsetY float64
	Disposed         bool
	LastFrame        uint64
}

// View is the component holding ViewData on the sink's view entity.
var View = donburi.NewComponentType[ViewData]()

type donburiSink struct {
	world donburi.World
	view  donburi.Entity
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to BackdropEventType and can be consumed with events.Subscribe
// and ProcessEvents. The sink also creates one entity with a View component
// that is kept current as events arrive.
func NewDonburiSink(world donburi.World) backdrop.EventSink {
	return &donburiSink{
		world: world,
		view:  world.Create(View),
	}
}

func (s *donburiSink) EmitEvent(event backdrop.Event) {
	if entry := s.world.Entry(s.view); entry.Valid() {
		v := View.Get(entry)
		switch event.Type {
		case backdrop.EventPointerMove:
			v.PointerX, v.PointerY = event.X, event.Y
			v.OffsetX, v.OffsetY = event.OffsetX, event.OffsetY
		case backdrop.EventResize:
			v.Width, v.Height = event.Width, event.Height
		case backdrop.EventDispose:
			v.Disposed = true
		}
		v.LastFrame = event.Frame
	}
	BackdropEventType.Publish(s.world, event)
}

// ViewEntity returns the entity carrying the sink's View component.
func ViewEntity(sink backdrop.EventSink) (donburi.Entity, bool) {
	s, ok := sink.(*donburiSink)
	if !ok {
		return donburi.Null, false
	}
	return s.view, true
}
