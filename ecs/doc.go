// Package ecs provides ECS adapters for folio's scene events.
//
// The primary adapter is [NewDonburiSink], which bridges scene visibility
// events (entered, exited) into a [Donburi] world as typed events.
// Subscribe to [SceneEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	page.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
