package ecs

import (
	"testing"

	"github.com/graphlearn/backdrop"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
	e, ok := ViewEntity(sink)
	if !ok {
		t.Fatal("ViewEntity: not a donburi sink")
	}
	if !world.Valid(e) {
		t.Error("view entity is not alive")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []backdrop.Event
	BackdropEventType.Subscribe(world, func(w donburi.World, e backdrop.Event) {
		received = append(received, e)
	})

	sink.EmitEvent(backdrop.Event{
		Type:    backdrop.EventPointerMove,
		X:       100,
		Y:       200,
		OffsetX: 5,
		OffsetY: -2,
		Frame:   3,
	})
	sink.EmitEvent(backdrop.Event{
		Type:   backdrop.EventResize,
		Width:  800,
		Height: 600,
	})

	// Published events sit in the queue until processed.
	BackdropEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e0 := received[0]; e0.Type != backdrop.EventPointerMove || e0.X != 100 || e0.Y != 200 {
		t.Errorf("event 0: %+v", e0)
	}
	if e1 := received[1]; e1.Type != backdrop.EventResize || e1.Width != 800 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ViewComponent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	sink.EmitEvent(backdrop.Event{Type: backdrop.EventPointerMove, X: 10, Y: 20, OffsetX: 1, OffsetY: 2})
	sink.EmitEvent(backdrop.Event{Type: backdrop.EventResize, Width: 640, Height: 480, Frame: 9})

	e, _ := ViewEntity(sink)
	v := View.Get(world.Entry(e))
	if v.PointerX != 10 || v.PointerY != 20 || v.OffsetX != 1 || v.OffsetY != 2 {
		t.Errorf("pointer = %+v", v)
	}
	if v.Width != 640 || v.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", v.Width, v.Height)
	}
	if v.LastFrame != 9 {
		t.Errorf("LastFrame = %d, want 9", v.LastFrame)
	}
	if v.Disposed {
		t.Error("Disposed should be false")
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink backdrop.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	BackdropEventType.Subscribe(world, func(w donburi.World, e backdrop.Event) {
		count1++
	})
	BackdropEventType.Subscribe(world, func(w donburi.World, e backdrop.Event) {
		count2++
	})

	sink.EmitEvent(backdrop.Event{Type: backdrop.EventDispose})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_FromRenderer(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	host := backdrop.NewHeadlessHost(800, 600, "canvas-container")
	r := backdrop.New(host, "canvas-container",
		backdrop.WithEventSink(sink),
		backdrop.WithSeed(1),
		backdrop.WithClock(&backdrop.ManualClock{}),
	)
	if !r.Started() {
		t.Fatal("renderer did not start")
	}

	var got []backdrop.EventType
	BackdropEventType.Subscribe(world, func(w donburi.World, e backdrop.Event) {
		got = append(got, e.Type)
	})

	host.MovePointer(500, 300)
	host.Tick()
	host.Resize(1024, 768)
	r.Dispose()
	BackdropEventType.ProcessEvents(world)

	want := []backdrop.EventType{backdrop.EventPointerMove, backdrop.EventResize, backdrop.EventDispose}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}

	e, _ := ViewEntity(sink)
	v := View.Get(world.Entry(e))
	if !v.Disposed || v.Width != 1024 || v.OffsetX != 5 {
		t.Errorf("view = %+v", v)
	}
}
