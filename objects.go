package cascade

import (
	"cmp"
	"math"
	"reflect"
	"slices"
	"strings"
	"time"
)

// Attributer exposes named attribute values. A missing attribute reports
// ok == false; it is never the same as a present zero value.
type Attributer interface {
	Attr(name string) (value any, ok bool)
}

// Attrs is a plain attribute tree.
type Attrs map[string]any

// Attr implements Attributer. A nil value counts as missing.
func (a Attrs) Attr(name string) (any, bool) {
	v, ok := a[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// isPlainObject reports whether v is a nested attribute tree that merges and
// matches recursively.
func isPlainObject(v any) bool {
	switch v.(type) {
	case map[string]any, Attrs:
		return true
	}
	return false
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case Attrs:
		return m
	}
	return nil
}

// asAttributer returns a view of v that nested match specs can descend into.
func asAttributer(v any) (Attributer, bool) {
	switch a := v.(type) {
	case map[string]any:
		return Attrs(a), true
	case Attributer:
		return a, true
	}
	return nil, false
}

// Merge recursively merges every key of each source into dst, in argument
// order, and returns dst. Nested plain objects merge key by key; any other
// value (slices included) overwrites the destination key. A nil dst or a nil
// source is a no-op for that pairing.
func Merge(dst map[string]any, srcs ...map[string]any) map[string]any {
	for _, src := range srcs {
		mergeRecursively(dst, src)
	}
	return dst
}

func mergeRecursively(dst, src map[string]any) {
	if dst == nil || src == nil {
		return
	}
	for k, v := range src {
		if isPlainObject(v) {
			sub := asMap(dst[k])
			if sub == nil {
				sub = make(map[string]any)
				dst[k] = sub
			}
			mergeRecursively(sub, asMap(v))
			continue
		}
		dst[k] = v
	}
}

// Sort returns a stably sorted copy of items ordered by the attribute prop,
// ascending unless descending is set.
//
// Present values compare with < and >. When one side lacks the attribute it
// ranks as if it held zero against a numeric value on the other side: after
// negative values and before positive ones. Two missing values, equal values,
// and values that cannot be ordered against each other keep their relative
// order.
func Sort[T Attributer](items []T, prop string, descending bool) []T {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b T) int {
		av, aok := a.Attr(prop)
		bv, bok := b.Attr(prop)
		c := compareAttr(av, aok, bv, bok)
		if descending {
			return -c
		}
		return c
	})
	return out
}

// SortMap sorts the values of a keyed collection, discarding the keys. Values
// enter the stable sort in ascending key order so ties are deterministic.
func SortMap[K cmp.Ordered, T Attributer](m map[K]T, prop string, descending bool) []T {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	values := make([]T, 0, len(keys))
	for _, k := range keys {
		values = append(values, m[k])
	}
	return Sort(values, prop, descending)
}

// compareAttr is the three-way comparator behind Sort with an explicit
// missing marker on each side.
func compareAttr(a any, aok bool, b any, bok bool) int {
	switch {
	case aok && bok:
		if c, ok := compareValues(a, b); ok {
			return c
		}
		return 0
	case !aok && bok:
		return -signOf(b)
	case aok && !bok:
		return signOf(a)
	}
	return 0
}

// signOf returns the sign of a numeric value and 0 for anything else.
func signOf(v any) int {
	f, ok := toFloat(v)
	if !ok || f == 0 || math.IsNaN(f) {
		return 0
	}
	if f < 0 {
		return -1
	}
	return 1
}

// compareValues orders two present values. Numbers of any kind compare
// numerically, strings lexically, and times chronologically. ok is false when
// the pair has no ordering.
func compareValues(a, b any) (int, bool) {
	if af, ok := toFloat(a); ok {
		bf, ok := toFloat(b)
		if !ok || math.IsNaN(af) || math.IsNaN(bf) {
			return 0, false
		}
		return cmp.Compare(af, bf), true
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv), true
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv), true
		}
	}
	return 0, false
}

// equalValues is literal equality with numeric kinds unified.
func equalValues(a, b any) bool {
	if c, ok := compareValues(a, b); ok {
		return c == 0
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// RotatePoint rotates p about anchor by angle degrees (clockwise on a
// y-down surface) and rounds the result to whole units, halves upward.
func RotatePoint(p, anchor Vec2, angle float64) Vec2 {
	theta := angle * math.Pi / 180
	dx := p.X - anchor.X
	dy := p.Y - anchor.Y
	sin, cos := math.Sincos(theta)
	return Vec2{
		X: math.Floor(cos*dx - sin*dy + anchor.X + 0.5),
		Y: math.Floor(sin*dx + cos*dy + anchor.Y + 0.5),
	}
}
