// Package ecs provides ECS adapters for backdrop's renderer events.
//
// The primary adapter is [NewDonburiSink], which bridges renderer events
// (pointer move, resize, dispose) into a [Donburi] world as typed events.
// Subscribe to [BackdropEventType] in your ECS systems to receive them, or
// read the [View] component for the latest viewport and pointer state.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	r := backdrop.New(host, "canvas-container", backdrop.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
