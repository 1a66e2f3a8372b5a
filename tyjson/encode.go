package tyjson

import (
	"fmt"
	"strconv"
)

// EncodeOptions configures encoding.
type EncodeOptions struct {
	// UseRawDecimal passes decimal values through as native decimals
	// instead of canonical decimal strings, for formats that support them.
	UseRawDecimal bool

	// ProductsAsArrays encodes product values as positional arrays in
	// declared field order instead of key-value objects.
	ProductsAsArrays bool
}

// DefaultEncodeOptions returns the default options (decimals as strings,
// products as objects).
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{}
}

// Encode converts a conforming value into an interchange value. The
// descriptor must be encodable and the value must conform to it; either
// violation is surfaced as a descriptive error carrying the diagnostic
// trail.
func Encode(v *Value, d *Descriptor) (any, error) {
	return EncodeWithOptions(v, d, DefaultEncodeOptions())
}

// EncodeWithOptions converts a conforming value with custom options.
func EncodeWithOptions(v *Value, d *Descriptor, opts EncodeOptions) (any, error) {
	if res := Encodable(d); !res.OK {
		return nil, malformed(d, res.Trail)
	}
	if res := Conforms(v, d); !res.OK {
		return nil, nonConforming(d, res.Trail)
	}
	e := &encoder{opts: opts, check: &checker{opts: DefaultConformOptions()}}
	return e.encode(v, d)
}

type encoder struct {
	opts  EncodeOptions
	check *checker
}

func (e *encoder) encode(v *Value, d *Descriptor) (any, error) {
	switch d.Kind {
	case DescNull:
		return nil, nil

	case DescBool:
		return v.boolVal, nil

	case DescInt:
		if v.Kind() == KindDecimal {
			return v.decVal.IntPart(), nil
		}
		return v.intVal, nil

	case DescFloat:
		switch v.Kind() {
		case KindInt: // widened
			return float64(v.intVal), nil
		case KindDecimal:
			return v.decVal.InexactFloat64(), nil
		default:
			return v.floatVal, nil
		}

	case DescStr:
		return v.strVal, nil

	case DescDecimal:
		if e.opts.UseRawDecimal {
			return v.decVal, nil
		}
		return v.decVal.String(), nil

	case DescEnum:
		return v.enumVal.Member, nil

	case DescLiteral:
		// Literal values pass through unchanged.
		return scalarInterchange(v)

	case DescUnion:
		// First member the value conforms to, in declared order.
		for _, alt := range d.Alts {
			if e.check.conformsQuiet(v, alt) {
				return e.encode(v, alt)
			}
		}
		return nil, fmt.Errorf("tyjson: value %s conforms to no member of %s", v, d)

	case DescList, DescSet, DescFrozenSet, DescDeque:
		out := make([]any, len(v.elems))
		for i, el := range v.elems {
			enc, err := e.encode(el, d.Elem)
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil

	case DescTuple:
		out := make([]any, len(v.elems))
		for i, el := range v.elems {
			et := d.Elem
			if !d.Variadic {
				et = d.Elems[i]
			}
			enc, err := e.encode(el, et)
			if err != nil {
				return nil, err
			}
			out[i] = enc
		}
		return out, nil

	case DescMap:
		out := NewObject()
		for _, entry := range v.entries {
			key, err := e.encodeKey(entry.Key, d.Key)
			if err != nil {
				return nil, err
			}
			val, err := e.encode(entry.Value, d.Val)
			if err != nil {
				return nil, err
			}
			out.Set(key, val)
		}
		return out, nil

	case DescProduct:
		if e.opts.ProductsAsArrays {
			out := make([]any, len(d.Fields))
			for i, f := range d.Fields {
				enc, err := e.encode(v.Field(f.Name), f.Type)
				if err != nil {
					return nil, err
				}
				out[i] = enc
			}
			return out, nil
		}
		// One entry per field in declared order; fields are never omitted,
		// even when they equal their default.
		out := NewObject()
		for _, f := range d.Fields {
			enc, err := e.encode(v.Field(f.Name), f.Type)
			if err != nil {
				return nil, err
			}
			out.Set(f.Name, enc)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("tyjson: descriptor kind %d is outside the supported algebra", d.Kind)
	}
}

// encodeKey produces the string form of a mapping key. Keys whose
// descriptor is a JSON primitive, enumeration, or literal are rendered
// directly; any other keyable key is recursively encoded and serialized to
// compact JSON text, which Decode parses back. Union keys take the
// compact-JSON path, so the first member the key conforms to decides its
// string form (the same declared-order precedence Decode uses).
func (e *encoder) encodeKey(k *Value, kd *Descriptor) (string, error) {
	switch kd.Kind {
	case DescStr:
		return k.strVal, nil
	case DescBool, DescInt, DescFloat, DescNull:
		return scalarKeyString(k)
	case DescEnum:
		return k.enumVal.Member, nil
	case DescLiteral:
		return scalarKeyString(k)
	default:
		// Keys must stay canonical regardless of encode options: decimals
		// as strings, products as objects.
		sub := &encoder{opts: EncodeOptions{}, check: e.check}
		enc, err := sub.encode(k, kd)
		if err != nil {
			return "", err
		}
		b, err := MarshalInterchange(enc)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// scalarKeyString renders a JSON-primitive value as a bare object key.
func scalarKeyString(v *Value) (string, error) {
	switch v.Kind() {
	case KindNull:
		return "null", nil
	case KindBool:
		if v.boolVal {
			return "true", nil
		}
		return "false", nil
	case KindInt:
		return strconv.FormatInt(v.intVal, 10), nil
	case KindFloat:
		b, err := MarshalInterchange(v.floatVal)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case KindStr:
		return v.strVal, nil
	default:
		return "", fmt.Errorf("tyjson: %s cannot be used as a direct object key", v.Kind())
	}
}

// scalarInterchange passes a JSON-primitive value through unchanged.
func scalarInterchange(v *Value) (any, error) {
	switch v.Kind() {
	case KindNull:
		return nil, nil
	case KindBool:
		return v.boolVal, nil
	case KindInt:
		return v.intVal, nil
	case KindFloat:
		return v.floatVal, nil
	case KindStr:
		return v.strVal, nil
	default:
		return nil, fmt.Errorf("tyjson: %s is not a JSON primitive", v.Kind())
	}
}
