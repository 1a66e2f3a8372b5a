package tyjson

import (
	"bytes"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ExportJSONSchema converts an encodable descriptor into a JSON Schema
// (draft 2020-12) document describing its interchange encoding. The
// schema covers the object form of products; the positional-array decode
// convenience is not expressed.
func ExportJSONSchema(d *Descriptor) (*Object, error) {
	if res := Encodable(d); !res.OK {
		return nil, malformed(d, res.Trail)
	}
	root := schemaFor(d)
	root.Set("$schema", "https://json-schema.org/draft/2020-12/schema")
	return root, nil
}

func schemaFor(d *Descriptor) *Object {
	s := NewObject()
	switch d.Kind {
	case DescNull:
		s.Set("type", "null")

	case DescBool:
		s.Set("type", "boolean")

	case DescInt:
		s.Set("type", "integer")

	case DescFloat:
		s.Set("type", "number")

	case DescStr:
		s.Set("type", "string")

	case DescDecimal:
		// Canonical encoding is a decimal string; raw mode emits a number.
		s.Set("type", []any{"string", "number"})
		s.Set("title", "decimal")

	case DescEnum:
		s.Set("type", "string")
		members := make([]any, len(d.Members))
		for i, m := range d.Members {
			members[i] = m
		}
		s.Set("enum", members)
		if d.Name != "" {
			s.Set("title", d.Name)
		}

	case DescLiteral:
		consts := make([]any, 0, len(d.Consts))
		for _, c := range d.Consts {
			enc, err := scalarInterchange(c)
			if err != nil {
				continue
			}
			consts = append(consts, enc)
		}
		s.Set("enum", consts)

	case DescUnion:
		alts := make([]any, len(d.Alts))
		for i, a := range d.Alts {
			alts[i] = schemaFor(a)
		}
		s.Set("anyOf", alts)

	case DescList, DescDeque:
		s.Set("type", "array")
		s.Set("items", schemaFor(d.Elem))

	case DescSet, DescFrozenSet:
		s.Set("type", "array")
		s.Set("items", schemaFor(d.Elem))
		s.Set("uniqueItems", true)

	case DescTuple:
		s.Set("type", "array")
		if d.Variadic {
			s.Set("items", schemaFor(d.Elem))
		} else {
			prefix := make([]any, len(d.Elems))
			for i, e := range d.Elems {
				prefix[i] = schemaFor(e)
			}
			s.Set("prefixItems", prefix)
			s.Set("minItems", int64(len(d.Elems)))
			s.Set("maxItems", int64(len(d.Elems)))
		}

	case DescMap:
		// Keys are stringified on the wire; only the value shape is
		// expressible in the schema.
		s.Set("type", "object")
		s.Set("additionalProperties", schemaFor(d.Val))

	case DescProduct:
		s.Set("type", "object")
		if d.Name != "" {
			s.Set("title", d.Name)
		}
		props := NewObject()
		required := []any{}
		for _, f := range d.Fields {
			props.Set(f.Name, schemaFor(f.Type))
			if f.Default == nil {
				required = append(required, f.Name)
			}
		}
		s.Set("properties", props)
		if len(required) > 0 {
			s.Set("required", required)
		}
		s.Set("additionalProperties", false)
	}
	return s
}

// CompileJSONSchema exports the descriptor's JSON Schema and compiles it
// with the jsonschema package, ready to validate plain interchange graphs
// (see PlainInterchange).
func CompileJSONSchema(d *Descriptor) (*jsonschema.Schema, error) {
	doc, err := ExportJSONSchema(d)
	if err != nil {
		return nil, err
	}
	raw, err := MarshalInterchange(doc)
	if err != nil {
		return nil, err
	}
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("tyjson: invalid schema JSON: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("tyjson: failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("tyjson: failed to compile schema: %w", err)
	}
	return schema, nil
}
