package cascade

import "strings"

// Selection is what a selector query returns: a single *Element or an
// *ElementList. Every operation applies to each selected element.
type Selection interface {
	Inherit(classes string, opts Options)
	Merge(attrs map[string]any)
	Remove()
	Bind(spec string, fn Handler) Binding
	Unbind(spec string)
	UnbindAll(spec string)
	Trigger(spec string, args ...any)
	Became(spec Spec, fn func(e *Element)) Binding
	While(spec Spec, fn func(e *Element)) Binding
	OnClick(fn func(e *Element)) Binding
	HideAllDrawings()
	ToggleDrawings(hide, show string)
	Len() int
	Elements() []*Element
}

var (
	_ Selection = (*Element)(nil)
	_ Selection = (*ElementList)(nil)
)

// Select resolves a selector against the live elements. "*" selects every
// element and always yields an *ElementList. Otherwise an optional "#id"
// token restricts to that id and every other space-separated token is a
// class the element must inherit. A query matching exactly one element
// returns that *Element; any other count returns an *ElementList, possibly
// empty.
func (w *World) Select(selector string) Selection {
	list := w.SelectAll(selector)
	if strings.TrimSpace(selector) != "*" && list.Len() == 1 {
		return list.At(0)
	}
	return list
}

// SelectAll is Select that always returns a list.
func (w *World) SelectAll(selector string) *ElementList {
	if strings.TrimSpace(selector) == "*" {
		return newElementList(w.all())
	}
	id, classes := parseSpecs(selector)
	if id == "" && hasIDToken(selector) {
		return newElementList(nil)
	}
	var out []*Element
	for _, e := range w.all() {
		if id != "" && e.ID != id {
			continue
		}
		if hasAllClasses(e, classes) {
			out = append(out, e)
		}
	}
	return newElementList(out)
}

// hasIDToken reports whether specs carries a '#' token, valid or not.
func hasIDToken(specs string) bool {
	for _, tok := range strings.Fields(specs) {
		if strings.HasPrefix(tok, "#") {
			return true
		}
	}
	return false
}

func hasAllClasses(e *Element, classes []string) bool {
	for _, c := range classes {
		if !e.Is(c) {
			return false
		}
	}
	return true
}

// parseSpecs splits "[#id] [Class ...]" into its id and class names. The
// first '#' token supplies the id, read up to the first character outside
// [a-zA-Z0-9]; further '#' tokens are ignored.
func parseSpecs(specs string) (id string, classes []string) {
	seenID := false
	for _, tok := range strings.Fields(specs) {
		if rest, ok := strings.CutPrefix(tok, "#"); ok {
			if !seenID {
				id = identPrefix(rest)
				seenID = true
			}
			continue
		}
		classes = append(classes, tok)
	}
	return id, classes
}

func identPrefix(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			continue
		}
		return s[:i]
	}
	return s
}
