package tyjson

import "fmt"

// ConformOptions configures conformance checking.
type ConformOptions struct {
	// CastDecimal accepts a decimal value where Int is expected when the
	// decimal has an exact integral value, and where Float is expected for
	// any decimal.
	CastDecimal bool
}

// DefaultConformOptions returns the default options (decimal casting on).
func DefaultConformOptions() ConformOptions {
	return ConformOptions{CastDecimal: true}
}

// Conforms reports whether the value matches the descriptor, with decimal
// casting enabled.
func Conforms(v *Value, d *Descriptor) Result {
	return ConformsWithOptions(v, d, DefaultConformOptions())
}

// ConformsWithOptions reports whether the value matches the descriptor.
// A malformed descriptor yields a failing result whose trail carries the
// classification reasons; Encode and Decode surface the same condition as
// a *MalformedDescriptorError.
func ConformsWithOptions(v *Value, d *Descriptor, opts ConformOptions) Result {
	if tc := Typecheckable(d); !tc.OK {
		tc.Trail = append(tc.Trail, Reason{Message: fmt.Sprintf("descriptor %s is not typecheckable", d)})
		return tc
	}
	c := &checker{opts: opts}
	ok := c.conforms(v, d, "")
	return Result{OK: ok, Trail: c.trail}
}

func (c *checker) conforms(v *Value, d *Descriptor, path string) bool {
	switch d.Kind {
	case DescNull:
		if !v.IsNull() {
			return c.fail(path, "expected null, got %s", v.Kind())
		}
		return true

	case DescBool:
		if v.Kind() != KindBool {
			return c.fail(path, "expected bool, got %s (%s)", v.Kind(), v)
		}
		return true

	case DescInt:
		switch v.Kind() {
		case KindInt:
			return true
		case KindDecimal:
			if c.opts.CastDecimal && v.decVal.IsInteger() {
				return true
			}
			if c.opts.CastDecimal {
				return c.fail(path, "decimal %s has no exact integral value", v)
			}
			return c.fail(path, "expected int, got decimal (casting disabled)")
		default:
			return c.fail(path, "expected int, got %s (%s)", v.Kind(), v)
		}

	case DescFloat:
		switch v.Kind() {
		case KindFloat, KindInt: // ints widen to float
			return true
		case KindDecimal:
			if c.opts.CastDecimal {
				return true
			}
			return c.fail(path, "expected float, got decimal (casting disabled)")
		default:
			return c.fail(path, "expected float, got %s (%s)", v.Kind(), v)
		}

	case DescStr:
		if v.Kind() != KindStr {
			return c.fail(path, "expected str, got %s (%s)", v.Kind(), v)
		}
		return true

	case DescDecimal:
		if v.Kind() != KindDecimal {
			return c.fail(path, "expected decimal, got %s (%s)", v.Kind(), v)
		}
		return true

	case DescEnum:
		if v.Kind() != KindEnum {
			return c.fail(path, "expected member of %s, got %s (%s)", d.Name, v.Kind(), v)
		}
		if v.enumVal.Enum != d.Name {
			return c.fail(path, "expected member of %s, got member of %s", d.Name, v.enumVal.Enum)
		}
		if !d.HasMember(v.enumVal.Member) {
			return c.fail(path, "%s is not a declared member of %s", v.enumVal.Member, d.Name)
		}
		return true

	case DescLiteral:
		for _, lit := range d.Consts {
			if Equal(v, lit) {
				return true
			}
		}
		return c.fail(path, "value %s is not one of the declared constants of %s", v, d)

	case DescUnion:
		var collected []Reason
		for _, alt := range d.Alts {
			m := c.mark()
			if c.conforms(v, alt, path) {
				c.rollback(m)
				return true
			}
			collected = append(collected, c.trail[m:]...)
			c.rollback(m)
		}
		c.trail = append(c.trail, collected...)
		return c.fail(path, "value %s conforms to no member of %s", v, d)

	case DescList, DescSet, DescFrozenSet, DescDeque:
		want := seqKind(d.Kind)
		if v.Kind() != want {
			return c.fail(path, "expected %s, got %s (%s)", want, v.Kind(), v)
		}
		for i, e := range v.elems {
			if !c.conforms(e, d.Elem, fmt.Sprintf("%s[%d]", path, i)) {
				return c.fail(path, "%s element #%d does not conform to %s", want, i, d.Elem)
			}
		}
		return true

	case DescTuple:
		if v.Kind() != KindTuple {
			return c.fail(path, "expected tuple, got %s (%s)", v.Kind(), v)
		}
		if d.Variadic {
			for i, e := range v.elems {
				if !c.conforms(e, d.Elem, fmt.Sprintf("%s[%d]", path, i)) {
					return c.fail(path, "tuple element #%d does not conform to %s", i, d.Elem)
				}
			}
			return true
		}
		if len(v.elems) != len(d.Elems) {
			return c.fail(path, "tuple arity mismatch: expected %d, got %d", len(d.Elems), len(v.elems))
		}
		for i, e := range v.elems {
			if !c.conforms(e, d.Elems[i], fmt.Sprintf("%s[%d]", path, i)) {
				return c.fail(path, "tuple position #%d does not conform to %s", i, d.Elems[i])
			}
		}
		return true

	case DescMap:
		if d.Ordered {
			if v.Kind() != KindOrderedDict {
				return c.fail(path, "expected ordereddict, got %s (%s)", v.Kind(), v)
			}
		} else {
			if v.Kind() != KindDict {
				return c.fail(path, "expected dict, got %s (%s)", v.Kind(), v)
			}
		}
		for i, e := range v.entries {
			if !c.conforms(e.Key, d.Key, fmt.Sprintf("%s.key[%d]", path, i)) {
				return c.fail(path, "map key %s does not conform to %s", e.Key, d.Key)
			}
			if !c.conforms(e.Value, d.Val, joinPath(path, e.Key.String())) {
				return c.fail(path, "map value for key %s does not conform to %s", e.Key, d.Val)
			}
		}
		return true

	case DescProduct:
		if v.Kind() != KindProduct {
			return c.fail(path, "expected %s, got %s (%s)", d.String(), v.Kind(), v)
		}
		pv := v.productVal
		if pv.TypeName != d.Name {
			return c.fail(path, "expected product %s, got %s", d.Name, pv.TypeName)
		}
		// Field sets must match exactly.
		declared := make(map[string]*Descriptor, len(d.Fields))
		for _, f := range d.Fields {
			declared[f.Name] = f.Type
		}
		present := make(map[string]bool, len(pv.Fields))
		for _, f := range pv.Fields {
			if present[f.Name] {
				return c.fail(path, "product %s repeats field %q", d.Name, f.Name)
			}
			present[f.Name] = true
			ft, ok := declared[f.Name]
			if !ok {
				return c.fail(joinPath(path, f.Name), "unknown field %q on product %s", f.Name, d.Name)
			}
			if !c.conforms(f.Value, ft, joinPath(path, f.Name)) {
				return c.fail(path, "field %q does not conform to %s", f.Name, ft)
			}
		}
		for _, f := range d.Fields {
			if !present[f.Name] {
				return c.fail(joinPath(path, f.Name), "missing field %q on product %s", f.Name, d.Name)
			}
		}
		return true

	default:
		return c.fail(path, "descriptor kind %d is outside the supported algebra", d.Kind)
	}
}

// conformsQuiet checks conformance without touching the trail. Used where
// a mismatch is an expected outcome (union member selection).
func (c *checker) conformsQuiet(v *Value, d *Descriptor) bool {
	sub := &checker{opts: c.opts}
	return sub.conforms(v, d, "")
}

func seqKind(k DescKind) Kind {
	switch k {
	case DescList:
		return KindList
	case DescSet:
		return KindSet
	case DescFrozenSet:
		return KindFrozenSet
	case DescDeque:
		return KindDeque
	default:
		return KindNull
	}
}
