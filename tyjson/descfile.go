package tyjson

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ParseDescriptorYAML parses a textual descriptor definition into a
// Descriptor. The format is a small YAML document (JSON works too, being
// a YAML subset):
//
//	type: product
//	name: Point
//	fields:
//	  - name: x
//	    type: int
//	  - name: y
//	    type: int
//	    default: 0
//
// Primitive descriptors may be written as bare scalars ("int", "str").
// Composite kinds use the keys elem (list/set/frozenset/deque, variadic
// tuple, optional), elems (fixed tuple), of (union members), key/value/
// ordered (map), members (enum), consts (literal), and fields (product).
func ParseDescriptorYAML(data []byte) (*Descriptor, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("tyjson: invalid descriptor document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, fmt.Errorf("tyjson: descriptor document must contain exactly one definition")
	}
	return parseDescNode(doc.Content[0])
}

func parseDescNode(n *yaml.Node) (*Descriptor, error) {
	if n.Kind == yaml.ScalarNode {
		return primitiveByName(n.Value)
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("tyjson: line %d: descriptor must be a scalar name or a mapping", n.Line)
	}

	keys := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys[n.Content[i].Value] = n.Content[i+1]
	}
	typeNode, ok := keys["type"]
	if !ok {
		return nil, fmt.Errorf("tyjson: line %d: descriptor mapping needs a type key", n.Line)
	}
	kind := typeNode.Value

	switch kind {
	case "null", "bool", "int", "float", "str", "decimal":
		return primitiveByName(kind)

	case "enum":
		name, err := stringKey(keys, "name", n)
		if err != nil {
			return nil, err
		}
		membersNode, ok := keys["members"]
		if !ok || membersNode.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("tyjson: line %d: enum needs a members sequence", n.Line)
		}
		members := make([]string, len(membersNode.Content))
		for i, m := range membersNode.Content {
			members[i] = m.Value
		}
		return EnumType(name, members...), nil

	case "literal":
		constsNode, ok := keys["consts"]
		if !ok || constsNode.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("tyjson: line %d: literal needs a consts sequence", n.Line)
		}
		consts := make([]*Value, len(constsNode.Content))
		for i, cn := range constsNode.Content {
			v, err := scalarValue(cn)
			if err != nil {
				return nil, err
			}
			consts[i] = v
		}
		return LiteralType(consts...), nil

	case "union":
		altsNode, ok := keys["of"]
		if !ok || altsNode.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("tyjson: line %d: union needs an of sequence", n.Line)
		}
		alts := make([]*Descriptor, len(altsNode.Content))
		for i, an := range altsNode.Content {
			alt, err := parseDescNode(an)
			if err != nil {
				return nil, err
			}
			alts[i] = alt
		}
		return UnionType(alts...), nil

	case "optional":
		elem, err := elemKey(keys, n)
		if err != nil {
			return nil, err
		}
		return Optional(elem), nil

	case "list", "set", "frozenset", "deque":
		elem, err := elemKey(keys, n)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "list":
			return ListType(elem), nil
		case "set":
			return SetType(elem), nil
		case "frozenset":
			return FrozenSetType(elem), nil
		default:
			return DequeType(elem), nil
		}

	case "tuple":
		if elemsNode, ok := keys["elems"]; ok {
			if elemsNode.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("tyjson: line %d: tuple elems must be a sequence", n.Line)
			}
			elems := make([]*Descriptor, len(elemsNode.Content))
			for i, en := range elemsNode.Content {
				e, err := parseDescNode(en)
				if err != nil {
					return nil, err
				}
				elems[i] = e
			}
			return TupleType(elems...), nil
		}
		elem, err := elemKey(keys, n)
		if err != nil {
			return nil, err
		}
		return VariadicTupleType(elem), nil

	case "map":
		keyNode, ok := keys["key"]
		if !ok {
			return nil, fmt.Errorf("tyjson: line %d: map needs a key descriptor", n.Line)
		}
		valNode, ok := keys["value"]
		if !ok {
			return nil, fmt.Errorf("tyjson: line %d: map needs a value descriptor", n.Line)
		}
		kd, err := parseDescNode(keyNode)
		if err != nil {
			return nil, err
		}
		vd, err := parseDescNode(valNode)
		if err != nil {
			return nil, err
		}
		if orderedNode, ok := keys["ordered"]; ok && orderedNode.Value == "true" {
			return OrderedDictType(kd, vd), nil
		}
		return DictType(kd, vd), nil

	case "product":
		name, err := stringKey(keys, "name", n)
		if err != nil {
			return nil, err
		}
		fieldsNode, ok := keys["fields"]
		if !ok || fieldsNode.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("tyjson: line %d: product needs a fields sequence", n.Line)
		}
		fields := make([]FieldDef, 0, len(fieldsNode.Content))
		for _, fn := range fieldsNode.Content {
			f, err := parseFieldNode(fn)
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
		}
		return ProductType(name, fields...), nil

	default:
		return nil, fmt.Errorf("tyjson: line %d: unknown descriptor type %q", typeNode.Line, kind)
	}
}

func parseFieldNode(n *yaml.Node) (FieldDef, error) {
	if n.Kind != yaml.MappingNode {
		return FieldDef{}, fmt.Errorf("tyjson: line %d: field must be a mapping", n.Line)
	}
	keys := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys[n.Content[i].Value] = n.Content[i+1]
	}
	name, err := stringKey(keys, "name", n)
	if err != nil {
		return FieldDef{}, err
	}
	typeNode, ok := keys["type"]
	if !ok {
		return FieldDef{}, fmt.Errorf("tyjson: line %d: field %q needs a type", n.Line, name)
	}
	ft, err := parseDescNode(typeNode)
	if err != nil {
		return FieldDef{}, err
	}
	defNode, ok := keys["default"]
	if !ok {
		return Field(name, ft), nil
	}
	def, err := defaultValue(defNode, ft)
	if err != nil {
		return FieldDef{}, err
	}
	return FieldDefault(name, ft, def), nil
}

func elemKey(keys map[string]*yaml.Node, n *yaml.Node) (*Descriptor, error) {
	elemNode, ok := keys["elem"]
	if !ok {
		return nil, fmt.Errorf("tyjson: line %d: missing elem descriptor", n.Line)
	}
	return parseDescNode(elemNode)
}

func stringKey(keys map[string]*yaml.Node, key string, n *yaml.Node) (string, error) {
	node, ok := keys[key]
	if !ok || node.Kind != yaml.ScalarNode || node.Value == "" {
		return "", fmt.Errorf("tyjson: line %d: missing %s", n.Line, key)
	}
	return node.Value, nil
}

func primitiveByName(name string) (*Descriptor, error) {
	switch name {
	case "null":
		return NullType(), nil
	case "bool":
		return BoolType(), nil
	case "int":
		return IntType(), nil
	case "float":
		return FloatType(), nil
	case "str":
		return StrType(), nil
	case "decimal":
		return DecimalType(), nil
	default:
		return nil, fmt.Errorf("tyjson: unknown descriptor type %q", name)
	}
}

// scalarValue converts a YAML scalar to a runtime value by its tag.
func scalarValue(n *yaml.Node) (*Value, error) {
	if n.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("tyjson: line %d: constant must be a scalar", n.Line)
	}
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("tyjson: line %d: invalid bool %q", n.Line, n.Value)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("tyjson: line %d: invalid int %q", n.Line, n.Value)
		}
		return Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("tyjson: line %d: invalid float %q", n.Line, n.Value)
		}
		return Float(f), nil
	case "!!str":
		return Str(n.Value), nil
	default:
		return nil, fmt.Errorf("tyjson: line %d: unsupported constant tag %s", n.Line, n.Tag)
	}
}

// defaultValue converts a YAML scalar into a default for the given field
// descriptor. Decimal and enum fields interpret the scalar through the
// descriptor; everything else converts by YAML tag.
func defaultValue(n *yaml.Node, ft *Descriptor) (*Value, error) {
	if ft != nil {
		switch ft.Kind {
		case DescDecimal:
			d, err := decimal.NewFromString(n.Value)
			if err != nil {
				return nil, fmt.Errorf("tyjson: line %d: invalid decimal default %q", n.Line, n.Value)
			}
			return Dec(d), nil
		case DescEnum:
			if !ft.HasMember(n.Value) {
				return nil, fmt.Errorf("tyjson: line %d: %q is not a member of %s", n.Line, n.Value, ft.Name)
			}
			return Enum(ft.Name, n.Value), nil
		}
	}
	return scalarValue(n)
}
