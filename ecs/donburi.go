package ecs

import (
	"github.com/phanxgames/storycam"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// TriggerEventType is the Donburi event type for trigger volume events.
// Subscribe to this in your ECS systems to receive enter, exit, and fire
// edges.
var TriggerEventType = events.NewEventType[storycam.TriggerEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Trigger
// events are queued on TriggerEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) storycam.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitTriggerEvent(event storycam.TriggerEvent) {
	TriggerEventType.Publish(s.world, event)
}
