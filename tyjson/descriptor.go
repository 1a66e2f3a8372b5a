package tyjson

import "strings"

// DescKind indicates the kind of a type descriptor.
type DescKind uint8

const (
	DescNull DescKind = iota
	DescBool
	DescInt
	DescFloat
	DescStr
	DescDecimal   // arbitrary-precision decimal number
	DescEnum      // named enumeration
	DescLiteral   // ordered set of concrete constants
	DescUnion     // ordered union of member descriptors
	DescList      // ordered sequence, duplicates allowed
	DescSet       // unordered sequence, unique elements
	DescFrozenSet // unordered, unique, immutable
	DescDeque     // ordered double-ended sequence
	DescTuple     // fixed or variadic ordered aggregate
	DescMap       // key-value mapping
	DescProduct   // named product type with per-field defaults
)

// String returns the descriptor kind name.
func (k DescKind) String() string {
	switch k {
	case DescNull:
		return "null"
	case DescBool:
		return "bool"
	case DescInt:
		return "int"
	case DescFloat:
		return "float"
	case DescStr:
		return "str"
	case DescDecimal:
		return "decimal"
	case DescEnum:
		return "enum"
	case DescLiteral:
		return "literal"
	case DescUnion:
		return "union"
	case DescList:
		return "list"
	case DescSet:
		return "set"
	case DescFrozenSet:
		return "frozenset"
	case DescDeque:
		return "deque"
	case DescTuple:
		return "tuple"
	case DescMap:
		return "map"
	case DescProduct:
		return "product"
	default:
		return "unknown"
	}
}

// FieldDef represents a field in a product descriptor.
type FieldDef struct {
	Name    string
	Type    *Descriptor
	Default *Value // nil when the field has no default
}

// Descriptor describes a type within the supported algebra. Descriptors are
// built once via the constructors below and never mutated afterwards; a
// single descriptor is safe to share across concurrent encode/decode calls.
type Descriptor struct {
	Kind DescKind

	Name    string   // DescEnum, DescProduct
	Members []string // DescEnum: declared member names, in order

	Consts []*Value // DescLiteral: declared constants, in order

	Alts []*Descriptor // DescUnion: member descriptors, in declared order

	Elem *Descriptor // DescList/Set/FrozenSet/Deque, variadic DescTuple

	Elems    []*Descriptor // fixed DescTuple: per-position descriptors
	Variadic bool          // DescTuple

	Key     *Descriptor // DescMap
	Val     *Descriptor // DescMap
	Ordered bool        // DescMap: insertion order is significant

	Fields []FieldDef // DescProduct
}

// ============================================================
// Constructors
// ============================================================

// NullType returns the null descriptor.
func NullType() *Descriptor {
	return &Descriptor{Kind: DescNull}
}

// BoolType returns the boolean descriptor.
func BoolType() *Descriptor {
	return &Descriptor{Kind: DescBool}
}

// IntType returns the integer descriptor.
func IntType() *Descriptor {
	return &Descriptor{Kind: DescInt}
}

// FloatType returns the float descriptor.
func FloatType() *Descriptor {
	return &Descriptor{Kind: DescFloat}
}

// StrType returns the string descriptor.
func StrType() *Descriptor {
	return &Descriptor{Kind: DescStr}
}

// DecimalType returns the arbitrary-precision decimal descriptor.
func DecimalType() *Descriptor {
	return &Descriptor{Kind: DescDecimal}
}

// EnumType returns an enumeration descriptor with the given member names.
func EnumType(name string, members ...string) *Descriptor {
	return &Descriptor{Kind: DescEnum, Name: name, Members: members}
}

// LiteralType returns a literal descriptor over the given constants.
func LiteralType(consts ...*Value) *Descriptor {
	return &Descriptor{Kind: DescLiteral, Consts: consts}
}

// UnionType returns a union descriptor. Member order is significant: decode
// tries members in declared order and the first success wins.
func UnionType(alts ...*Descriptor) *Descriptor {
	return &Descriptor{Kind: DescUnion, Alts: alts}
}

// Optional returns Union[t, Null].
func Optional(t *Descriptor) *Descriptor {
	return UnionType(t, NullType())
}

// ListType returns a list descriptor.
func ListType(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: DescList, Elem: elem}
}

// SetType returns a set descriptor.
func SetType(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: DescSet, Elem: elem}
}

// FrozenSetType returns a frozenset descriptor.
func FrozenSetType(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: DescFrozenSet, Elem: elem}
}

// DequeType returns a deque descriptor.
func DequeType(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: DescDeque, Elem: elem}
}

// TupleType returns a fixed-arity tuple descriptor.
func TupleType(elems ...*Descriptor) *Descriptor {
	return &Descriptor{Kind: DescTuple, Elems: elems}
}

// VariadicTupleType returns a variadic tuple descriptor (any arity, one
// element descriptor).
func VariadicTupleType(elem *Descriptor) *Descriptor {
	return &Descriptor{Kind: DescTuple, Elem: elem, Variadic: true}
}

// DictType returns an unordered mapping descriptor.
func DictType(key, val *Descriptor) *Descriptor {
	return &Descriptor{Kind: DescMap, Key: key, Val: val}
}

// OrderedDictType returns an insertion-ordered mapping descriptor.
func OrderedDictType(key, val *Descriptor) *Descriptor {
	return &Descriptor{Kind: DescMap, Key: key, Val: val, Ordered: true}
}

// ProductType returns a named product descriptor.
func ProductType(name string, fields ...FieldDef) *Descriptor {
	return &Descriptor{Kind: DescProduct, Name: name, Fields: fields}
}

// Field creates a product field without a default.
func Field(name string, t *Descriptor) FieldDef {
	return FieldDef{Name: name, Type: t}
}

// FieldDefault creates a product field with a default value. The default
// must conform to the field descriptor or the product is not typecheckable.
func FieldDefault(name string, t *Descriptor, def *Value) FieldDef {
	return FieldDef{Name: name, Type: t, Default: def}
}

// ============================================================
// Introspection
// ============================================================

// HasMember reports whether the enumeration declares the given member name.
func (d *Descriptor) HasMember(name string) bool {
	if d == nil || d.Kind != DescEnum {
		return false
	}
	for _, m := range d.Members {
		if m == name {
			return true
		}
	}
	return false
}

// FieldByName returns the product field with the given name, or nil.
func (d *Descriptor) FieldByName(name string) *FieldDef {
	if d == nil || d.Kind != DescProduct {
		return nil
	}
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// String returns the descriptor as a compact type expression.
func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	switch d.Kind {
	case DescNull, DescBool, DescInt, DescFloat, DescStr, DescDecimal:
		return d.Kind.String()
	case DescEnum:
		if d.Name != "" {
			return d.Name
		}
		return "enum"
	case DescLiteral:
		var sb strings.Builder
		sb.WriteString("literal[")
		for i, c := range d.Consts {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(c.String())
		}
		sb.WriteByte(']')
		return sb.String()
	case DescUnion:
		parts := make([]string, len(d.Alts))
		for i, a := range d.Alts {
			parts[i] = a.String()
		}
		return "union<" + strings.Join(parts, "|") + ">"
	case DescList:
		return "list<" + d.Elem.String() + ">"
	case DescSet:
		return "set<" + d.Elem.String() + ">"
	case DescFrozenSet:
		return "frozenset<" + d.Elem.String() + ">"
	case DescDeque:
		return "deque<" + d.Elem.String() + ">"
	case DescTuple:
		if d.Variadic {
			return "tuple<" + d.Elem.String() + "...>"
		}
		parts := make([]string, len(d.Elems))
		for i, e := range d.Elems {
			parts[i] = e.String()
		}
		return "tuple<" + strings.Join(parts, ",") + ">"
	case DescMap:
		prefix := "map<"
		if d.Ordered {
			prefix = "orderedmap<"
		}
		return prefix + d.Key.String() + "," + d.Val.String() + ">"
	case DescProduct:
		if d.Name != "" {
			return d.Name
		}
		return "product"
	default:
		return "unknown"
	}
}
