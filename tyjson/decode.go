package tyjson

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// DecodeOptions configures decoding.
type DecodeOptions struct {
	// CastDecimal permits decimal interchange numbers where Int is
	// expected when the decimal has an exact integral value, and where
	// Float is expected for any decimal.
	CastDecimal bool
}

// DefaultDecodeOptions returns the default options (decimal casting on).
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{CastDecimal: true}
}

// Decode converts an interchange value back into a conforming runtime
// value, restoring information the interchange format alone cannot carry
// (set-ness, tuple arity, product field names and defaults). The blob is
// shape-checked at every node; mismatches are surfaced as a
// *NonConformingError carrying the diagnostic trail, innermost first.
func Decode(blob any, d *Descriptor) (*Value, error) {
	return DecodeWithOptions(blob, d, DefaultDecodeOptions())
}

// DecodeWithOptions converts an interchange value with custom options.
func DecodeWithOptions(blob any, d *Descriptor, opts DecodeOptions) (*Value, error) {
	if res := Encodable(d); !res.OK {
		return nil, malformed(d, res.Trail)
	}
	dec := &decoder{opts: opts}
	v, ok := dec.decode(blob, d, "")
	if !ok {
		return nil, nonConforming(d, dec.trail)
	}
	return v, nil
}

type decoder struct {
	opts  DecodeOptions
	trail []Reason
}

func (dc *decoder) fail(path, format string, args ...interface{}) bool {
	dc.trail = append(dc.trail, Reason{Path: path, Message: fmt.Sprintf(format, args...)})
	return false
}

func (dc *decoder) mark() int {
	return len(dc.trail)
}

func (dc *decoder) rollback(mark int) {
	dc.trail = dc.trail[:mark]
}

func (dc *decoder) decode(blob any, d *Descriptor, path string) (*Value, bool) {
	switch d.Kind {
	case DescNull:
		if blob != nil {
			return nil, dc.fail(path, "expected null, got %s", blobKind(blob))
		}
		return Null(), true

	case DescBool:
		b, ok := blob.(bool)
		if !ok {
			return nil, dc.fail(path, "expected bool, got %s", blobKind(blob))
		}
		return Bool(b), true

	case DescInt:
		switch n := blob.(type) {
		case int64:
			return Int(n), true
		case decimal.Decimal:
			if !dc.opts.CastDecimal {
				return nil, dc.fail(path, "expected int, got decimal (casting disabled)")
			}
			if !n.IsInteger() {
				return nil, dc.fail(path, "decimal %s has no exact integral value", n)
			}
			return Int(n.IntPart()), true
		default:
			return nil, dc.fail(path, "expected int, got %s", blobKind(blob))
		}

	case DescFloat:
		switch n := blob.(type) {
		case float64:
			return Float(n), true
		case int64: // ints widen to float
			return Float(float64(n)), true
		case decimal.Decimal:
			if !dc.opts.CastDecimal {
				return nil, dc.fail(path, "expected float, got decimal (casting disabled)")
			}
			return Float(n.InexactFloat64()), true
		default:
			return nil, dc.fail(path, "expected float, got %s", blobKind(blob))
		}

	case DescStr:
		s, ok := blob.(string)
		if !ok {
			return nil, dc.fail(path, "expected str, got %s", blobKind(blob))
		}
		return Str(s), true

	case DescDecimal:
		switch n := blob.(type) {
		case decimal.Decimal:
			return Dec(n), true
		case string:
			parsed, err := decimal.NewFromString(n)
			if err != nil {
				return nil, dc.fail(path, "%q is not a decimal string", n)
			}
			return Dec(parsed), true
		case int64:
			return Dec(decimal.NewFromInt(n)), true
		case float64:
			return Dec(decimal.NewFromFloat(n)), true
		default:
			return nil, dc.fail(path, "expected decimal, got %s", blobKind(blob))
		}

	case DescEnum:
		s, ok := blob.(string)
		if !ok {
			return nil, dc.fail(path, "expected member name of %s, got %s", d.Name, blobKind(blob))
		}
		if !d.HasMember(s) {
			return nil, dc.fail(path, "%q is not a declared member of %s", s, d.Name)
		}
		return Enum(d.Name, s), true

	case DescLiteral:
		for _, lit := range d.Consts {
			if dc.blobMatchesConst(blob, lit) {
				return lit, true
			}
		}
		return nil, dc.fail(path, "%s is not one of the declared constants of %s", blobString(blob), d)

	case DescUnion:
		// Members are tried in declared order; the first success wins.
		// Overlapping shapes resolve by declaration order, not best match.
		var collected []Reason
		for _, alt := range d.Alts {
			m := dc.mark()
			if v, ok := dc.decode(blob, alt, path); ok {
				dc.rollback(m)
				return v, true
			}
			collected = append(collected, dc.trail[m:]...)
			dc.rollback(m)
		}
		dc.trail = append(dc.trail, collected...)
		return nil, dc.fail(path, "%s matches no member of %s", blobString(blob), d)

	case DescList, DescSet, DescFrozenSet, DescDeque:
		arr, ok := blob.([]any)
		if !ok {
			return nil, dc.fail(path, "expected array, got %s", blobKind(blob))
		}
		elems := make([]*Value, 0, len(arr))
		for i, e := range arr {
			v, ok := dc.decode(e, d.Elem, fmt.Sprintf("%s[%d]", path, i))
			if !ok {
				return nil, dc.fail(path, "element #%d does not decode as %s", i, d.Elem)
			}
			elems = append(elems, v)
		}
		switch d.Kind {
		case DescList:
			return List(elems...), true
		case DescSet:
			return Set(elems...), true // de-duplicates by value equality
		case DescFrozenSet:
			return FrozenSet(elems...), true
		default:
			return Deque(elems...), true
		}

	case DescTuple:
		arr, ok := blob.([]any)
		if !ok {
			return nil, dc.fail(path, "expected array, got %s", blobKind(blob))
		}
		if !d.Variadic && len(arr) != len(d.Elems) {
			return nil, dc.fail(path, "array length %d does not match tuple arity %d", len(arr), len(d.Elems))
		}
		elems := make([]*Value, 0, len(arr))
		for i, e := range arr {
			et := d.Elem
			if !d.Variadic {
				et = d.Elems[i]
			}
			v, ok := dc.decode(e, et, fmt.Sprintf("%s[%d]", path, i))
			if !ok {
				return nil, dc.fail(path, "tuple position #%d does not decode as %s", i, et)
			}
			elems = append(elems, v)
		}
		return Tuple(elems...), true

	case DescMap:
		obj, ok := dc.blobObject(blob, d.Ordered, path)
		if !ok {
			return nil, false
		}
		entries := make([]Entry, 0, obj.Len())
		for _, ks := range obj.Keys() {
			key, ok := dc.decodeKey(ks, d.Key, joinPath(path, ks))
			if !ok {
				return nil, dc.fail(path, "key %q does not decode as %s", ks, d.Key)
			}
			raw, _ := obj.Get(ks)
			val, ok := dc.decode(raw, d.Val, joinPath(path, ks))
			if !ok {
				return nil, dc.fail(path, "value for key %q does not decode as %s", ks, d.Val)
			}
			entries = append(entries, Entry{Key: key, Value: val})
		}
		if d.Ordered {
			return OrderedDict(entries...), true
		}
		return Dict(entries...), true

	case DescProduct:
		return dc.decodeProduct(blob, d, path)

	default:
		return nil, dc.fail(path, "descriptor kind %d is outside the supported algebra", d.Kind)
	}
}

// blobObject normalizes an object blob. Ordered mappings require an
// order-preserving *Object; unordered mappings also accept stdlib
// map[string]any graphs (keys sorted for determinism).
func (dc *decoder) blobObject(blob any, needOrder bool, path string) (*Object, bool) {
	switch o := blob.(type) {
	case *Object:
		return o, true
	case map[string]any:
		if needOrder {
			return nil, dc.fail(path, "expected ordered object, got unordered map")
		}
		obj := NewObject()
		for k, v := range o {
			obj.Set(k, v)
		}
		sortKeys(obj.keys)
		return obj, true
	default:
		return nil, dc.fail(path, "expected object, got %s", blobKind(blob))
	}
}

func (dc *decoder) decodeProduct(blob any, d *Descriptor, path string) (*Value, bool) {
	// Positional array form: one element per declared field, in order.
	if arr, ok := blob.([]any); ok {
		if len(arr) != len(d.Fields) {
			return nil, dc.fail(path, "array length %d does not match field count %d of %s", len(arr), len(d.Fields), d.Name)
		}
		fields := make([]FieldValue, 0, len(d.Fields))
		for i, f := range d.Fields {
			v, ok := dc.decode(arr[i], f.Type, joinPath(path, f.Name))
			if !ok {
				return nil, dc.fail(path, "field %q does not decode as %s", f.Name, f.Type)
			}
			fields = append(fields, FieldValue{Name: f.Name, Value: v})
		}
		return dc.finishProduct(Product(d.Name, fields...), d, path)
	}

	obj, ok := dc.blobObject(blob, false, path)
	if !ok {
		return nil, false
	}

	// Provided keys unioned with defaulted fields must exactly equal the
	// field set: unknown names and missing non-defaulted names both fail.
	for _, k := range obj.Keys() {
		if d.FieldByName(k) == nil {
			return nil, dc.fail(joinPath(path, k), "unknown field %q on product %s", k, d.Name)
		}
	}
	fields := make([]FieldValue, 0, len(d.Fields))
	for _, f := range d.Fields {
		raw, present := obj.Get(f.Name)
		if !present {
			if f.Default == nil {
				return nil, dc.fail(joinPath(path, f.Name), "missing field %q on product %s has no default", f.Name, d.Name)
			}
			fields = append(fields, FieldValue{Name: f.Name, Value: f.Default})
			continue
		}
		v, ok := dc.decode(raw, f.Type, joinPath(path, f.Name))
		if !ok {
			return nil, dc.fail(path, "field %q does not decode as %s", f.Name, f.Type)
		}
		fields = append(fields, FieldValue{Name: f.Name, Value: v})
	}
	return dc.finishProduct(Product(d.Name, fields...), d, path)
}

// finishProduct re-verifies the reconstructed aggregate.
func (dc *decoder) finishProduct(v *Value, d *Descriptor, path string) (*Value, bool) {
	res := ConformsWithOptions(v, d, ConformOptions{CastDecimal: dc.opts.CastDecimal})
	if !res.OK {
		dc.trail = append(dc.trail, res.Trail...)
		return nil, dc.fail(path, "reconstructed %s does not conform", d.Name)
	}
	return v, true
}

// decodeKey parses an object key back into a key value. Keys whose
// descriptor is a JSON primitive, enumeration, or literal are read
// directly from the key string; any other key is parsed as compact JSON
// and decoded recursively, mirroring encodeKey.
func (dc *decoder) decodeKey(ks string, kd *Descriptor, path string) (*Value, bool) {
	switch kd.Kind {
	case DescStr:
		return Str(ks), true

	case DescBool:
		switch ks {
		case "true":
			return Bool(true), true
		case "false":
			return Bool(false), true
		}
		return nil, dc.fail(path, "key %q is not a bool", ks)

	case DescInt:
		n, err := strconv.ParseInt(ks, 10, 64)
		if err != nil {
			return nil, dc.fail(path, "key %q is not an int", ks)
		}
		return Int(n), true

	case DescFloat:
		f, err := strconv.ParseFloat(ks, 64)
		if err != nil {
			return nil, dc.fail(path, "key %q is not a float", ks)
		}
		return Float(f), true

	case DescNull:
		if ks != "null" {
			return nil, dc.fail(path, "key %q is not null", ks)
		}
		return Null(), true

	case DescEnum:
		if !kd.HasMember(ks) {
			return nil, dc.fail(path, "key %q is not a declared member of %s", ks, kd.Name)
		}
		return Enum(kd.Name, ks), true

	case DescLiteral:
		for _, lit := range kd.Consts {
			s, err := scalarKeyString(lit)
			if err == nil && s == ks {
				return lit, true
			}
		}
		return nil, dc.fail(path, "key %q is not one of the declared constants of %s", ks, kd)

	default:
		blob, err := ParseInterchange([]byte(ks))
		if err != nil {
			return nil, dc.fail(path, "key %q is not valid compact JSON: %v", ks, err)
		}
		return dc.decode(blob, kd, path)
	}
}

// blobMatchesConst compares an interchange scalar against a literal
// constant. Kinds match exactly except that decimal interchange numbers
// compare numerically against int and float constants, mirroring the
// conformance cast policy.
func (dc *decoder) blobMatchesConst(blob any, lit *Value) bool {
	switch lit.Kind() {
	case KindNull:
		return blob == nil
	case KindBool:
		b, ok := blob.(bool)
		return ok && b == lit.boolVal
	case KindInt:
		switch n := blob.(type) {
		case int64:
			return n == lit.intVal
		case decimal.Decimal:
			return dc.opts.CastDecimal && n.IsInteger() && n.IntPart() == lit.intVal
		}
		return false
	case KindFloat:
		switch n := blob.(type) {
		case float64:
			return n == lit.floatVal
		case decimal.Decimal:
			return dc.opts.CastDecimal && n.InexactFloat64() == lit.floatVal
		}
		return false
	case KindStr:
		s, ok := blob.(string)
		return ok && s == lit.strVal
	default:
		return false
	}
}

func blobKind(blob any) string {
	switch blob.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int64:
		return "int"
	case float64:
		return "float"
	case decimal.Decimal:
		return "number"
	case string:
		return "str"
	case []any:
		return "array"
	case *Object, map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", blob)
	}
}

func blobString(blob any) string {
	b, err := MarshalInterchange(blob)
	if err != nil {
		return fmt.Sprintf("%v", blob)
	}
	return string(b)
}
