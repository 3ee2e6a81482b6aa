package ecs

import (
	"testing"

	"github.com/phanxgames/cascade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []SceneEvent
	SceneEventType.Subscribe(world, func(w donburi.World, e SceneEvent) {
		received = append(received, e)
	})

	store.EmitEvent(cascade.Event{
		Name:      cascade.EventClick,
		Namespace: cascade.DefaultNamespace,
		Args:      []any{cascade.Pointer{X: 100, Y: 200}},
	})
	store.EmitEvent(cascade.Event{Name: "score", Namespace: "ui", Args: []any{42}})

	// Events are queued; process them.
	SceneEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Name != cascade.EventClick || e0.Namespace != cascade.DefaultNamespace {
		t.Errorf("event 0: %+v", e0)
	}
	if p, ok := e0.Args[0].(cascade.Pointer); !ok || p.X != 100 || p.Y != 200 {
		t.Errorf("event 0 pointer: %+v", e0.Args)
	}
	e1 := received[1]
	if e1.Name != "score" || e1.Namespace != "ui" || e1.Args[0] != 42 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_Filter(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world, cascade.EventKeyDown)

	var names []string
	SceneEventType.Subscribe(world, func(w donburi.World, e SceneEvent) {
		names = append(names, e.Name)
	})

	store.EmitEvent(cascade.Event{Name: cascade.EventEnterFrame})
	store.EmitEvent(cascade.Event{Name: cascade.EventKeyDown})
	SceneEventType.ProcessEvents(world)

	if len(names) != 1 || names[0] != cascade.EventKeyDown {
		t.Errorf("names = %v, want [keydown]", names)
	}
}

func TestDonburiStore_WorldForwarding(t *testing.T) {
	world := donburi.NewWorld()
	scene := cascade.NewWorld(nil)
	scene.SetEventSink(NewDonburiStore(world))

	var count int
	SceneEventType.Subscribe(world, func(w donburi.World, e SceneEvent) {
		count++
	})

	scene.Trigger("ping")
	scene.Pause()
	scene.Trigger("ping")
	scene.Play()
	scene.Trigger("ping.ns")
	events.ProcessAllEvents(world)

	if count != 2 {
		t.Errorf("forwarded %d events, want 2 (paused trigger dropped)", count)
	}
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	SceneEventType.Subscribe(world, func(w donburi.World, e SceneEvent) {
		count1++
	})
	SceneEventType.Subscribe(world, func(w donburi.World, e SceneEvent) {
		count2++
	})

	store.EmitEvent(cascade.Event{Name: cascade.EventClick})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
