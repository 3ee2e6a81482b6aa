package cascade

import "strings"

// DefaultNamespace is the reserved namespace of handlers bound without an
// explicit ".namespace" suffix. Triggering an event in the default namespace
// fires every namespace registered under that event.
const DefaultNamespace = "root"

// Event is delivered to every handler of a triggered event.
type Event struct {
	Name      string
	Namespace string
	// Target is the element the event was triggered on, or nil for global
	// events.
	Target *Element
	Args   []any
}

// Arg returns the i-th trigger argument, or nil if there is none.
func (ev Event) Arg(i int) any {
	if i < 0 || i >= len(ev.Args) {
		return nil
	}
	return ev.Args[i]
}

// Handler reacts to a triggered event.
type Handler func(ev Event)

// EventSink receives every global event the world dispatches. Used to bridge
// events into an external system such as an ECS world.
type EventSink interface {
	EmitEvent(ev Event)
}

// parseEventName splits "name.namespace" into its parts. The namespace ends
// at the next '.', so "evt.a.b" is namespace "a". It defaults to
// DefaultNamespace.
func parseEventName(spec string) (name, namespace string) {
	name, rest, _ := strings.Cut(spec, ".")
	namespace, _, _ = strings.Cut(rest, ".")
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return name, namespace
}

type handlerEntry struct {
	id uint64
	fn Handler
}

type namespaceList struct {
	name     string
	handlers []handlerEntry
}

// eventTable maps event name to namespace to an ordered handler list.
// Namespaces keep their registration order.
type eventTable struct {
	events map[string][]*namespaceList
	ids    *uint64
}

func newEventTable(ids *uint64) eventTable {
	return eventTable{events: make(map[string][]*namespaceList), ids: ids}
}

func (t *eventTable) bind(spec string, fn Handler) Binding {
	name, ns := parseEventName(spec)
	*t.ids++
	id := *t.ids

	lists := t.events[name]
	var target *namespaceList
	for _, l := range lists {
		if l.name == ns {
			target = l
			break
		}
	}
	if target == nil {
		target = &namespaceList{name: ns}
		t.events[name] = append(lists, target)
	}
	target.handlers = append(target.handlers, handlerEntry{id: id, fn: fn})
	return Binding{table: t, name: name, id: id}
}

// unbindNamespace deletes the whole handler list of one namespace.
func (t *eventTable) unbindNamespace(spec string) {
	name, ns := parseEventName(spec)
	lists, ok := t.events[name]
	if !ok {
		return
	}
	for i, l := range lists {
		if l.name == ns {
			copy(lists[i:], lists[i+1:])
			lists[len(lists)-1] = nil
			lists = lists[:len(lists)-1]
			break
		}
	}
	if len(lists) == 0 {
		delete(t.events, name)
		return
	}
	t.events[name] = lists
}

// unbindEvent deletes every namespace of an event.
func (t *eventTable) unbindEvent(spec string) {
	name, _ := parseEventName(spec)
	delete(t.events, name)
}

// remove scans every namespace of name for the handler instance id.
func (t *eventTable) remove(name string, id uint64) {
	for _, l := range t.events[name] {
		for i := range l.handlers {
			if l.handlers[i].id == id {
				copy(l.handlers[i:], l.handlers[i+1:])
				l.handlers[len(l.handlers)-1] = handlerEntry{}
				l.handlers = l.handlers[:len(l.handlers)-1]
				return
			}
		}
	}
}

// snapshot returns the handlers that a trigger of spec fires, in dispatch
// order. The copy keeps dispatch stable when handlers bind or unbind.
func (t *eventTable) snapshot(spec string) (name, ns string, fns []Handler) {
	name, ns = parseEventName(spec)
	for _, l := range t.events[name] {
		if ns != DefaultNamespace && l.name != ns {
			continue
		}
		for _, h := range l.handlers {
			fns = append(fns, h.fn)
		}
	}
	return name, ns, fns
}

func (t *eventTable) dispatch(spec string, target *Element, args []any) (Event, bool) {
	name, ns, fns := t.snapshot(spec)
	ev := Event{Name: name, Namespace: ns, Target: target, Args: args}
	for _, fn := range fns {
		fn(ev)
	}
	return ev, len(fns) > 0
}

func (t *eventTable) count(spec string) int {
	_, _, fns := t.snapshot(spec)
	return len(fns)
}

// Binding identifies handlers registered by a Bind call (or, for collections
// and watchers, a group of them). The zero Binding is valid and unbinds
// nothing.
type Binding struct {
	table *eventTable
	name  string
	id    uint64
	group []Binding
}

// Unbind removes the handler instance wherever it currently lives under its
// event, including every grouped member. Unbinding twice is a no-op.
func (b Binding) Unbind() {
	for _, g := range b.group {
		g.Unbind()
	}
	if b.table != nil {
		b.table.remove(b.name, b.id)
	}
}

func groupBindings(bs []Binding) Binding {
	return Binding{group: bs}
}
