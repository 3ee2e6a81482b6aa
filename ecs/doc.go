// Package ecs connects cascade's global event bus to entity-component
// systems.
//
// [NewDonburiStore] returns a cascade.EventSink that republishes every
// dispatched global event (or only the names it is given) as a
// [SceneEvent] on a [Donburi] world. Systems subscribe to [SceneEventType]
// and drain the queue with events.ProcessAllEvents.
//
//	w.SetEventSink(ecs.NewDonburiStore(ecsWorld, cascade.EventClick, cascade.EventKeyDown))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
