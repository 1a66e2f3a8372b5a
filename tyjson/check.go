package tyjson

import "fmt"

// Reason is one localized entry in a diagnostic trail.
type Reason struct {
	Path    string // dotted path to the offending descriptor or value node
	Message string // human-readable explanation
}

func (r Reason) String() string {
	if r.Path != "" {
		return fmt.Sprintf("%s: %s", r.Path, r.Message)
	}
	return r.Message
}

// Result reports the outcome of a classification or conformance check.
// The trail is ordered innermost first: the deepest failing node appears
// before the reasons of its enclosing nodes.
type Result struct {
	OK    bool
	Trail []Reason
}

func trailString(trail []Reason) string {
	s := ""
	for i, r := range trail {
		if i > 0 {
			s += "; "
		}
		s += r.String()
	}
	return s
}

// checker accumulates a diagnostic trail across one recursive check. A new
// checker is created per top-level call, so concurrent checks on a shared
// descriptor never touch common state.
type checker struct {
	trail []Reason
	opts  ConformOptions
}

func (c *checker) fail(path, format string, args ...interface{}) bool {
	c.trail = append(c.trail, Reason{Path: path, Message: fmt.Sprintf(format, args...)})
	return false
}

// mark returns the current trail length, for rollback when a speculative
// branch (a union member) fails but the overall check can still succeed.
func (c *checker) mark() int {
	return len(c.trail)
}

func (c *checker) rollback(mark int) {
	c.trail = c.trail[:mark]
}

func joinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

// ============================================================
// Typecheckable
// ============================================================

// Typecheckable reports whether the descriptor is well-formed: every
// descriptor reachable through it is a member of the supported algebra,
// and product field defaults conform to their field descriptors.
func Typecheckable(d *Descriptor) Result {
	c := &checker{opts: DefaultConformOptions()}
	ok := c.typecheckable(d, "")
	return Result{OK: ok, Trail: c.trail}
}

func (c *checker) typecheckable(d *Descriptor, path string) bool {
	if d == nil {
		return c.fail(path, "nil descriptor")
	}
	switch d.Kind {
	case DescNull, DescBool, DescInt, DescFloat, DescStr, DescDecimal:
		return true

	case DescEnum:
		if d.Name == "" {
			return c.fail(path, "enumeration has no name")
		}
		if len(d.Members) == 0 {
			return c.fail(path, "enumeration %s has no members", d.Name)
		}
		seen := make(map[string]bool, len(d.Members))
		for _, m := range d.Members {
			if seen[m] {
				return c.fail(path, "enumeration %s declares member %q twice", d.Name, m)
			}
			seen[m] = true
		}
		return true

	case DescLiteral:
		if len(d.Consts) == 0 {
			return c.fail(path, "literal has no constants")
		}
		for i, v := range d.Consts {
			switch v.Kind() {
			case KindNull, KindBool, KindInt, KindFloat, KindStr, KindDecimal, KindEnum:
				// scalar constants only
			default:
				return c.fail(path, "literal constant #%d (%s) is not a scalar", i, v)
			}
		}
		return true

	case DescUnion:
		if len(d.Alts) == 0 {
			return c.fail(path, "union has no members")
		}
		for i, alt := range d.Alts {
			if !c.typecheckable(alt, joinPath(path, fmt.Sprintf("union[%d]", i))) {
				return c.fail(path, "union member #%d is not typecheckable", i)
			}
		}
		return true

	case DescList, DescSet, DescFrozenSet, DescDeque:
		if !c.typecheckable(d.Elem, joinPath(path, "elem")) {
			return c.fail(path, "%s element descriptor is not typecheckable", d.Kind)
		}
		return true

	case DescTuple:
		if d.Variadic {
			if !c.typecheckable(d.Elem, joinPath(path, "elem")) {
				return c.fail(path, "variadic tuple element descriptor is not typecheckable")
			}
			return true
		}
		for i, e := range d.Elems {
			if !c.typecheckable(e, joinPath(path, fmt.Sprintf("tuple[%d]", i))) {
				return c.fail(path, "tuple position #%d is not typecheckable", i)
			}
		}
		return true

	case DescMap:
		if !c.typecheckable(d.Key, joinPath(path, "key")) {
			return c.fail(path, "map key descriptor is not typecheckable")
		}
		if !c.typecheckable(d.Val, joinPath(path, "value")) {
			return c.fail(path, "map value descriptor is not typecheckable")
		}
		return true

	case DescProduct:
		if d.Name == "" {
			return c.fail(path, "product has no name")
		}
		seen := make(map[string]bool, len(d.Fields))
		for _, f := range d.Fields {
			fieldPath := joinPath(path, f.Name)
			if f.Name == "" {
				return c.fail(path, "product %s has an unnamed field", d.String())
			}
			if seen[f.Name] {
				return c.fail(path, "product %s declares field %q twice", d.String(), f.Name)
			}
			seen[f.Name] = true
			if !c.typecheckable(f.Type, fieldPath) {
				return c.fail(path, "field %q of product %s is not typecheckable", f.Name, d.String())
			}
			if f.Default != nil && !c.conforms(f.Default, f.Type, joinPath(fieldPath, "default")) {
				return c.fail(path, "default for field %q does not conform to %s", f.Name, f.Type)
			}
		}
		return true

	default:
		return c.fail(path, "descriptor kind %d is outside the supported algebra", d.Kind)
	}
}

// ============================================================
// Keyable
// ============================================================

// Keyable reports whether the descriptor may be used as a mapping key.
// Composite keys are permitted exactly when every transitive leaf is a
// scalar-like value: lists, sets, deques, and mappings are rejected.
func Keyable(d *Descriptor) Result {
	c := &checker{opts: DefaultConformOptions()}
	ok := c.keyable(d, "")
	return Result{OK: ok, Trail: c.trail}
}

func (c *checker) keyable(d *Descriptor, path string) bool {
	if d == nil {
		return c.fail(path, "nil descriptor")
	}
	switch d.Kind {
	case DescNull, DescBool, DescInt, DescFloat, DescStr, DescDecimal:
		return true

	case DescEnum:
		return true

	case DescLiteral:
		return true

	case DescUnion:
		for i, alt := range d.Alts {
			if !c.keyable(alt, joinPath(path, fmt.Sprintf("union[%d]", i))) {
				return c.fail(path, "union member #%d is not keyable", i)
			}
		}
		return true

	case DescFrozenSet:
		if !c.keyable(d.Elem, joinPath(path, "elem")) {
			return c.fail(path, "frozenset element descriptor is not keyable")
		}
		return true

	case DescTuple:
		if d.Variadic {
			if !c.keyable(d.Elem, joinPath(path, "elem")) {
				return c.fail(path, "variadic tuple element descriptor is not keyable")
			}
			return true
		}
		for i, e := range d.Elems {
			if !c.keyable(e, joinPath(path, fmt.Sprintf("tuple[%d]", i))) {
				return c.fail(path, "tuple position #%d is not keyable", i)
			}
		}
		return true

	case DescProduct:
		for _, f := range d.Fields {
			if !c.keyable(f.Type, joinPath(path, f.Name)) {
				return c.fail(path, "field %q of product %s is not keyable", f.Name, d.String())
			}
		}
		return true

	case DescList, DescSet, DescDeque, DescMap:
		return c.fail(path, "%s is not keyable", d.Kind)

	default:
		return c.fail(path, "descriptor kind %d is outside the supported algebra", d.Kind)
	}
}
