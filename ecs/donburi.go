package ecs

import (
	"github.com/phanxgames/cascade"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEvent is the payload published for every global cascade event.
// Element is the id of the event's target element, empty for global events.
type SceneEvent struct {
	Name      string
	Namespace string
	Element   string
	Args      []any
}

// SceneEventType is the Donburi event type for cascade events. Subscribe to
// it in your ECS systems to receive frame ticks, clicks and key events.
var SceneEventType = events.NewEventType[SceneEvent]()

type donburiStore struct {
	world  donburi.World
	filter map[string]bool
}

// NewDonburiStore creates an EventSink backed by a Donburi world. Events are
// published to SceneEventType and delivered by events.ProcessAllEvents or
// SceneEventType.ProcessEvents. When names are given only those events are
// forwarded; otherwise every event is, "enterframe" included.
func NewDonburiStore(world donburi.World, names ...string) cascade.EventSink {
	s := &donburiStore{world: world}
	if len(names) > 0 {
		s.filter = make(map[string]bool, len(names))
		for _, n := range names {
			s.filter[n] = true
		}
	}
	return s
}

func (s *donburiStore) EmitEvent(ev cascade.Event) {
	if s.filter != nil && !s.filter[ev.Name] {
		return
	}
	out := SceneEvent{Name: ev.Name, Namespace: ev.Namespace, Args: ev.Args}
	if ev.Target != nil {
		out.Element = ev.Target.ID
	}
	SceneEventType.Publish(s.world, out)
}
