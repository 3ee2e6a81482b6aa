package cascade

import "slices"

// ElementList is an ordered collection of elements that applies every
// Selection operation to each member. Members removed after the list was
// built are skipped.
type ElementList struct {
	elements []*Element
}

func newElementList(elements []*Element) *ElementList {
	return &ElementList{elements: elements}
}

// NewElementList wraps elements in a list.
func NewElementList(elements ...*Element) *ElementList {
	return newElementList(slices.Clone(elements))
}

// live returns the members that have not been removed.
func (l *ElementList) live() []*Element {
	out := make([]*Element, 0, len(l.elements))
	for _, e := range l.elements {
		if !e.removed {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of live members.
func (l *ElementList) Len() int { return len(l.live()) }

// Elements returns a copy of the live members.
func (l *ElementList) Elements() []*Element { return l.live() }

// At returns the i-th live member, or nil when out of range.
func (l *ElementList) At(i int) *Element {
	live := l.live()
	if i < 0 || i >= len(live) {
		return nil
	}
	return live[i]
}

// Each calls fn on every live member in order.
func (l *ElementList) Each(fn func(e *Element)) {
	for _, e := range l.live() {
		fn(e)
	}
}

// Sort returns a new list ordered by the attribute prop with the missing
// value policy of Sort.
func (l *ElementList) Sort(prop string, descending bool) *ElementList {
	return newElementList(Sort(l.live(), prop, descending))
}

// Search returns the members matching spec.
func (l *ElementList) Search(spec Spec) *ElementList {
	var out []*Element
	for _, e := range l.live() {
		if spec.Matches(e) {
			out = append(out, e)
		}
	}
	return newElementList(out)
}

// Inherit applies the classes to every member.
func (l *ElementList) Inherit(classes string, opts Options) {
	l.Each(func(e *Element) { e.Inherit(classes, opts) })
}

// Merge merges attrs into every member. Nested attribute trees are copied per
// member so later merges stay independent.
func (l *ElementList) Merge(attrs map[string]any) {
	l.Each(func(e *Element) { e.Merge(Merge(make(map[string]any), attrs)) })
}

// Remove removes every member.
func (l *ElementList) Remove() {
	l.Each((*Element).Remove)
}

// Bind binds fn on every member. The returned Binding unbinds all of them.
func (l *ElementList) Bind(spec string, fn Handler) Binding {
	var bs []Binding
	l.Each(func(e *Element) { bs = append(bs, e.Bind(spec, fn)) })
	return groupBindings(bs)
}

// Unbind deletes a namespace of an event on every member.
func (l *ElementList) Unbind(spec string) {
	l.Each(func(e *Element) { e.Unbind(spec) })
}

// UnbindAll deletes an event on every member.
func (l *ElementList) UnbindAll(spec string) {
	l.Each(func(e *Element) { e.UnbindAll(spec) })
}

// Trigger fires an element event on every member.
func (l *ElementList) Trigger(spec string, args ...any) {
	l.Each(func(e *Element) { e.Trigger(spec, args...) })
}

// Became registers the watcher on every member.
func (l *ElementList) Became(spec Spec, fn func(e *Element)) Binding {
	var bs []Binding
	l.Each(func(e *Element) { bs = append(bs, e.Became(spec, fn)) })
	return groupBindings(bs)
}

// While registers the watcher on every member.
func (l *ElementList) While(spec Spec, fn func(e *Element)) Binding {
	var bs []Binding
	l.Each(func(e *Element) { bs = append(bs, e.While(spec, fn)) })
	return groupBindings(bs)
}

// OnClick registers the click watcher on every member.
func (l *ElementList) OnClick(fn func(e *Element)) Binding {
	var bs []Binding
	l.Each(func(e *Element) { bs = append(bs, e.OnClick(fn)) })
	return groupBindings(bs)
}

// HideAllDrawings hides every drawing of every member.
func (l *ElementList) HideAllDrawings() {
	l.Each((*Element).HideAllDrawings)
}

// ToggleDrawings toggles the two drawings on every member.
func (l *ElementList) ToggleDrawings(hide, show string) {
	l.Each(func(e *Element) { e.ToggleDrawings(hide, show) })
}
