// Package ecs provides ECS adapters for folio.
package ecs

import (
	"github.com/phanxgames/folio"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for folio scene visibility
// events. Subscribe to this in your ECS systems to react to sections
// entering and leaving the viewport.
var SceneEventType = events.NewEventType[folio.SceneEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) folio.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event folio.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
