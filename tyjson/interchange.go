package tyjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// An interchange value is expressed only in terms of:
//
//	nil, bool, int64, float64, string, decimal.Decimal, []any, *Object
//
// decimal.Decimal appears on input (number literals parse to decimals so
// precision is not lost before Decode applies its cast policy) and, when
// UseRawDecimal is set, on output.

// Object is an insertion-ordered string-keyed interchange object. JSON
// objects carry field order on the wire; Object preserves it so that
// ordered mappings and product fields round-trip.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{vals: make(map[string]any)}
}

// Set stores a key-value pair, keeping the key's original position when it
// is already present.
func (o *Object) Set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value for a key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Has reports whether the key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.vals[key]
	return ok
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (o *Object) Keys() []string {
	return o.keys
}

// MarshalJSON renders the object in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeInterchange(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ============================================================
// Writer
// ============================================================

// MarshalInterchange renders an interchange value as compact JSON text.
// Decimals are written as bare JSON numbers; object fields keep insertion
// order.
func MarshalInterchange(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeInterchange(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeInterchange(buf *bytes.Buffer, v any) error {
	switch val := v.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case int:
		buf.WriteString(strconv.Itoa(val))
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("tyjson: NaN/Infinity cannot be represented in JSON")
		}
		b, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(b)
	case string:
		b, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(b)
	case decimal.Decimal:
		buf.WriteString(val.String())
	case []any:
		buf.WriteByte('[')
		for i, e := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeInterchange(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case *Object:
		buf.WriteByte('{')
		for i, k := range val.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			if err := writeInterchange(buf, val.vals[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case map[string]any:
		// Accepted for convenience (stdlib-produced graphs); order is the
		// map's iteration order and therefore unspecified.
		obj := NewObject()
		for k, e := range val {
			obj.Set(k, e)
		}
		sortKeys(obj.keys)
		return writeInterchange(buf, obj)
	default:
		return fmt.Errorf("tyjson: %T is not an interchange value", v)
	}
	return nil
}

func sortKeys(keys []string) {
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
}

// ============================================================
// Parser
// ============================================================

// ParseInterchange parses JSON text into an interchange value. Number
// literals become decimal.Decimal so precision survives until Decode
// applies the cast policy; objects become *Object with field order intact.
func ParseInterchange(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := parseValue(dec)
	if err != nil {
		return nil, err
	}
	// Reject trailing content after the first value.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("tyjson: trailing data after JSON value")
	}
	return v, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("tyjson: JSON parse error: %w", err)
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case nil:
		return nil, nil
	case bool:
		return t, nil
	case string:
		return t, nil
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return nil, fmt.Errorf("tyjson: invalid number %q: %w", t.String(), err)
		}
		return d, nil
	case json.Delim:
		switch t {
		case '[':
			arr := []any{}
			for dec.More() {
				e, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, e)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, fmt.Errorf("tyjson: JSON parse error: %w", err)
			}
			return arr, nil
		case '{':
			obj := NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("tyjson: JSON parse error: %w", err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("tyjson: object key is not a string: %v", keyTok)
				}
				val, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				obj.Set(key, val)
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, fmt.Errorf("tyjson: JSON parse error: %w", err)
			}
			return obj, nil
		default:
			return nil, fmt.Errorf("tyjson: unexpected delimiter %v", t)
		}
	default:
		return nil, fmt.Errorf("tyjson: unexpected JSON token %v", tok)
	}
}

// PlainInterchange converts an interchange value to the plain graph shape
// produced by encoding/json (map[string]any, []any, json.Number), losing
// field order. Useful when handing blobs to libraries that expect stdlib
// JSON values, such as JSON Schema validators.
func PlainInterchange(v any) any {
	switch val := v.(type) {
	case decimal.Decimal:
		return json.Number(val.String())
	case int64:
		return json.Number(strconv.FormatInt(val, 10))
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = PlainInterchange(e)
		}
		return out
	case *Object:
		out := make(map[string]any, len(val.keys))
		for _, k := range val.keys {
			out[k] = PlainInterchange(val.vals[k])
		}
		return out
	default:
		return v
	}
}
