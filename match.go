package cascade

import (
	"strconv"
	"strings"
)

// Op is the comparison an Expr applies to an attribute value.
type Op uint8

const (
	OpEquals         Op = iota // literal equality
	OpNotEquals                // "!=" prefix
	OpLess                     // "<" prefix
	OpLessOrEqual              // "<=" prefix
	OpGreater                  // ">" prefix
	OpGreaterOrEqual           // ">=" prefix
	OpNested                   // recurse into a nested attribute tree
)

func (op Op) String() string {
	switch op {
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpLess:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	case OpNested:
		return "nested"
	}
	return "unknown"
}

// Expr is one test against a single attribute value.
type Expr struct {
	Op     Op
	Value  any
	Nested Spec
}

// Eq builds an equality test.
func Eq(v any) Expr { return Expr{Op: OpEquals, Value: v} }

// Ne builds an inequality test.
func Ne(v any) Expr { return Expr{Op: OpNotEquals, Value: v} }

// Lt builds a less-than test.
func Lt(v any) Expr { return Expr{Op: OpLess, Value: v} }

// Le builds a less-or-equal test.
func Le(v any) Expr { return Expr{Op: OpLessOrEqual, Value: v} }

// Gt builds a greater-than test.
func Gt(v any) Expr { return Expr{Op: OpGreater, Value: v} }

// Ge builds a greater-or-equal test.
func Ge(v any) Expr { return Expr{Op: OpGreaterOrEqual, Value: v} }

// Nested builds a test that descends into a nested attribute tree.
func Nested(s Spec) Expr { return Expr{Op: OpNested, Nested: s} }

// Spec maps attribute names to the expression their values must satisfy.
// Every entry must hold for the spec to match.
type Spec map[string]Expr

// operators in parse precedence; two-character forms come first.
var operators = []struct {
	prefix string
	op     Op
}{
	{"<=", OpLessOrEqual},
	{">=", OpGreaterOrEqual},
	{"!=", OpNotEquals},
	{"<", OpLess},
	{">", OpGreater},
}

// ParseSpec builds a Spec from a plain attribute tree. A string leaf that
// starts with <=, <, >=, > or != becomes that comparison against the rest of
// the string, read as a number when it parses as one. Nested plain objects
// become nested specs. Every other leaf is an equality test.
func ParseSpec(raw map[string]any) Spec {
	spec := make(Spec, len(raw))
	for k, v := range raw {
		spec[k] = ParseExpr(v)
	}
	return spec
}

// ParseExpr builds the Expr for a single leaf of a raw spec.
func ParseExpr(v any) Expr {
	if isPlainObject(v) {
		return Nested(ParseSpec(asMap(v)))
	}
	s, ok := v.(string)
	if !ok {
		return Eq(v)
	}
	for _, o := range operators {
		if rest, found := strings.CutPrefix(s, o.prefix); found {
			return Expr{Op: o.op, Value: parseOperand(rest)}
		}
	}
	return Eq(s)
}

func parseOperand(s string) any {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// Matches reports whether subject satisfies every entry of the spec. An
// attribute missing on the subject never matches.
func (s Spec) Matches(subject Attributer) bool {
	if subject == nil {
		return false
	}
	for name, expr := range s {
		v, ok := subject.Attr(name)
		if !ok {
			return false
		}
		if !expr.test(v) {
			return false
		}
	}
	return true
}

// test applies the expression to a present value. Operands that cannot be
// ordered against the value fail every ordering comparison.
func (e Expr) test(v any) bool {
	switch e.Op {
	case OpEquals:
		return equalValues(v, e.Value)
	case OpNotEquals:
		return !equalValues(v, e.Value)
	case OpNested:
		sub, ok := asAttributer(v)
		if !ok {
			return false
		}
		return e.Nested.Matches(sub)
	}
	c, ok := compareValues(v, e.Value)
	if !ok {
		return false
	}
	switch e.Op {
	case OpLess:
		return c < 0
	case OpLessOrEqual:
		return c <= 0
	case OpGreater:
		return c > 0
	case OpGreaterOrEqual:
		return c >= 0
	}
	return false
}
