// Package ecs provides ECS adapters for storycam's trigger events.
//
// The primary adapter is [NewDonburiSink], which publishes trigger volume
// edges (enter, exit, fire) into a [Donburi] world as typed events.
// Subscribe to [TriggerEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	director := storycam.NewDirector(storycam.Options{
//		Config: cfg,
//		Events: sink,
//	})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
