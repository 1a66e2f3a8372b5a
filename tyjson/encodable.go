package tyjson

import "fmt"

// Encodable reports whether values of the descriptor can be losslessly
// represented in the interchange format. A descriptor is encodable iff it
// is typecheckable, its literal constants are JSON primitives, its mapping
// keys are keyable and themselves encodable, and all member descriptors
// are recursively encodable. Decimal and enumeration descriptors always
// have defined encodings.
func Encodable(d *Descriptor) Result {
	tc := Typecheckable(d)
	if !tc.OK {
		tc.Trail = append(tc.Trail, Reason{Message: fmt.Sprintf("descriptor %s is not typecheckable", d)})
		return tc
	}
	c := &checker{opts: DefaultConformOptions()}
	ok := c.encodable(d, "")
	return Result{OK: ok, Trail: c.trail}
}

func (c *checker) encodable(d *Descriptor, path string) bool {
	switch d.Kind {
	case DescNull, DescBool, DescInt, DescFloat, DescStr, DescDecimal, DescEnum:
		return true

	case DescLiteral:
		for i, v := range d.Consts {
			switch v.Kind() {
			case KindNull, KindBool, KindInt, KindFloat, KindStr:
				// JSON primitives only
			default:
				return c.fail(path, "literal constant #%d (%s) is not a JSON primitive", i, v)
			}
		}
		return true

	case DescUnion:
		for i, alt := range d.Alts {
			if !c.encodable(alt, joinPath(path, fmt.Sprintf("union[%d]", i))) {
				return c.fail(path, "union member #%d is not encodable", i)
			}
		}
		return true

	case DescList, DescSet, DescFrozenSet, DescDeque:
		if !c.encodable(d.Elem, joinPath(path, "elem")) {
			return c.fail(path, "%s element descriptor is not encodable", d.Kind)
		}
		return true

	case DescTuple:
		if d.Variadic {
			if !c.encodable(d.Elem, joinPath(path, "elem")) {
				return c.fail(path, "variadic tuple element descriptor is not encodable")
			}
			return true
		}
		for i, e := range d.Elems {
			if !c.encodable(e, joinPath(path, fmt.Sprintf("tuple[%d]", i))) {
				return c.fail(path, "tuple position #%d is not encodable", i)
			}
		}
		return true

	case DescMap:
		if !c.keyable(d.Key, joinPath(path, "key")) {
			return c.fail(path, "map key descriptor %s is not keyable", d.Key)
		}
		if !c.encodable(d.Key, joinPath(path, "key")) {
			return c.fail(path, "map key descriptor %s is not encodable", d.Key)
		}
		if !c.encodable(d.Val, joinPath(path, "value")) {
			return c.fail(path, "map value descriptor %s is not encodable", d.Val)
		}
		return true

	case DescProduct:
		for _, f := range d.Fields {
			if !c.encodable(f.Type, joinPath(path, f.Name)) {
				return c.fail(path, "field %q of product %s is not encodable", f.Name, d.String())
			}
		}
		return true

	default:
		return c.fail(path, "descriptor kind %d is outside the supported algebra", d.Kind)
	}
}
