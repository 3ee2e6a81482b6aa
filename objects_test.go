package cascade

import (
	"reflect"
	"testing"
)

// --- Merge ---

func TestMergeRecursive(t *testing.T) {
	dst := map[string]any{
		"a":    1,
		"pos":  map[string]any{"x": 1, "y": 2},
		"tags": []any{"a"},
	}
	Merge(dst,
		map[string]any{"pos": map[string]any{"y": 5, "z": 6}, "tags": []any{"b"}},
		map[string]any{"b": "two"},
	)
	want := map[string]any{
		"a":    1,
		"b":    "two",
		"pos":  map[string]any{"x": 1, "y": 5, "z": 6},
		"tags": []any{"b"},
	}
	if !reflect.DeepEqual(dst, want) {
		t.Errorf("Merge = %v, want %v", dst, want)
	}
}

func TestMergeLaterSourceWins(t *testing.T) {
	dst := Merge(map[string]any{}, map[string]any{"k": 1}, map[string]any{"k": 2})
	if dst["k"] != 2 {
		t.Errorf("k = %v, want 2", dst["k"])
	}
}

func TestMergeCopiesNestedObjects(t *testing.T) {
	src := map[string]any{"pos": map[string]any{"x": 1}}
	a := Merge(map[string]any{}, src)
	b := Merge(map[string]any{}, src)
	a["pos"].(map[string]any)["x"] = 99
	if b["pos"].(map[string]any)["x"] != 1 {
		t.Error("merged nested objects should not be shared")
	}
}

func TestMergeNil(t *testing.T) {
	if got := Merge(nil, map[string]any{"a": 1}); got != nil {
		t.Errorf("Merge(nil) = %v", got)
	}
	dst := map[string]any{"a": 1}
	Merge(dst, nil)
	if len(dst) != 1 {
		t.Errorf("dst = %v", dst)
	}
}

// --- Sort ---

func keysOf(items []Attrs, prop string) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = it[prop]
	}
	return out
}

func TestSortMissingValuePlacement(t *testing.T) {
	items := []Attrs{{"b": 8}, {"a": 3, "b": 9}, {"a": -2, "b": 9}}
	got := Sort(items, "a", false)
	want := []Attrs{{"a": -2, "b": 9}, {"b": 8}, {"a": 3, "b": 9}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sort asc = %v, want %v", got, want)
	}
	if items[0]["b"] != 8 {
		t.Error("Sort must not reorder its input")
	}
}

func TestSortDescendingInverse(t *testing.T) {
	items := []Attrs{{"a": 5}, {"a": -1}, {"a": 3}, {"a": 0}}
	asc := keysOf(Sort(items, "a", false), "a")
	desc := keysOf(Sort(items, "a", true), "a")
	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("asc %v and desc %v are not inverses", asc, desc)
		}
	}
}

func TestSortStableTies(t *testing.T) {
	items := []Attrs{{"a": 1, "n": 0}, {"a": 1, "n": 1}, {"n": 2}, {"n": 3}}
	got := keysOf(Sort(items, "a", false), "n")
	want := []any{2, 3, 0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortStrings(t *testing.T) {
	items := []Attrs{{"s": "pear"}, {"s": "apple"}, {"s": "fig"}}
	got := keysOf(Sort(items, "s", false), "s")
	want := []any{"apple", "fig", "pear"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortMixedNumericKinds(t *testing.T) {
	items := []Attrs{{"a": 2.5}, {"a": 1}, {"a": int64(3)}}
	got := keysOf(Sort(items, "a", false), "a")
	want := []any{1, 2.5, int64(3)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestSortMap(t *testing.T) {
	m := map[string]Attrs{"b": {"a": 1}, "a": {"a": 1, "first": true}, "c": {"a": 0}}
	got := SortMap(m, "a", false)
	if got[0]["a"] != 0 || got[1]["first"] != true {
		t.Errorf("SortMap = %v", got)
	}
}

// --- RotatePoint ---

func TestRotatePoint(t *testing.T) {
	tests := []struct {
		name   string
		p, a   Vec2
		angle  float64
		expect Vec2
	}{
		{"zero", Vec2{10, 0}, Vec2{}, 0, Vec2{10, 0}},
		{"quarter", Vec2{10, 0}, Vec2{}, 90, Vec2{0, 10}},
		{"half", Vec2{10, 0}, Vec2{}, 180, Vec2{-10, 0}},
		{"about anchor", Vec2{20, 10}, Vec2{10, 10}, 90, Vec2{10, 20}},
		{"rounded", Vec2{10, 0}, Vec2{}, 45, Vec2{7, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotatePoint(tt.p, tt.a, tt.angle)
			if got != tt.expect {
				t.Errorf("RotatePoint(%v, %v, %v) = %v, want %v", tt.p, tt.a, tt.angle, got, tt.expect)
			}
		})
	}
}
