package tyjson

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies the runtime shape of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindStr
	KindDecimal
	KindEnum
	KindList
	KindSet
	KindFrozenSet
	KindDeque
	KindTuple
	KindDict        // unordered key-value mapping
	KindOrderedDict // insertion-ordered key-value mapping
	KindProduct     // named fixed-shape aggregate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindStr:
		return "str"
	case KindDecimal:
		return "decimal"
	case KindEnum:
		return "enum"
	case KindList:
		return "list"
	case KindSet:
		return "set"
	case KindFrozenSet:
		return "frozenset"
	case KindDeque:
		return "deque"
	case KindTuple:
		return "tuple"
	case KindDict:
		return "dict"
	case KindOrderedDict:
		return "ordereddict"
	case KindProduct:
		return "product"
	default:
		return "unknown"
	}
}

// EnumMember identifies one member of a named enumeration.
type EnumMember struct {
	Enum   string // enumeration name (e.g. "Color")
	Member string // member name (e.g. "Red")
}

// String returns the member as "Enum.Member".
func (m EnumMember) String() string {
	if m.Enum == "" {
		return m.Member
	}
	return m.Enum + "." + m.Member
}

// Entry represents a key-value pair in a Dict or OrderedDict.
type Entry struct {
	Key   *Value
	Value *Value
}

// FieldValue represents a named field in a Product value.
type FieldValue struct {
	Name  string
	Value *Value
}

// ProductValue represents an instance of a named product type.
type ProductValue struct {
	TypeName string       // the product type name (e.g. "Point")
	Fields   []FieldValue // field name → value pairs, in declared order
}

// Value is a runtime value of the interchange engine. Values form a closed
// tagged algebra; the engine never retains a Value beyond a single call.
type Value struct {
	kind Kind

	// Scalar values (only one valid based on kind)
	boolVal  bool
	intVal   int64
	floatVal float64
	strVal   string
	decVal   decimal.Decimal
	enumVal  EnumMember

	// Container values
	elems      []*Value // list, set, frozenset, deque, tuple
	entries    []Entry  // dict, ordereddict
	productVal *ProductValue
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{kind: KindBool, boolVal: v}
}

// Int creates an integer value.
func Int(v int64) *Value {
	return &Value{kind: KindInt, intVal: v}
}

// Float creates a float value.
func Float(v float64) *Value {
	return &Value{kind: KindFloat, floatVal: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{kind: KindStr, strVal: v}
}

// Dec creates a decimal value.
func Dec(v decimal.Decimal) *Value {
	return &Value{kind: KindDecimal, decVal: v}
}

// DecFromString creates a decimal value from its textual form.
func DecFromString(s string) (*Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("tyjson: invalid decimal %q: %w", s, err)
	}
	return Dec(d), nil
}

// MustDec creates a decimal value from its textual form, panicking on
// malformed input. Intended for constants and tests.
func MustDec(s string) *Value {
	v, err := DecFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Enum creates an enumeration member value.
func Enum(enum, member string) *Value {
	return &Value{kind: KindEnum, enumVal: EnumMember{Enum: enum, Member: member}}
}

// List creates an ordered list value.
func List(elems ...*Value) *Value {
	return &Value{kind: KindList, elems: elems}
}

// Set creates an unordered set value. Elements are kept in insertion order
// so that encoding stays deterministic; duplicates are dropped.
func Set(elems ...*Value) *Value {
	return &Value{kind: KindSet, elems: dedup(elems)}
}

// FrozenSet creates an immutable unordered set value.
func FrozenSet(elems ...*Value) *Value {
	return &Value{kind: KindFrozenSet, elems: dedup(elems)}
}

// Deque creates a double-ended queue value.
func Deque(elems ...*Value) *Value {
	return &Value{kind: KindDeque, elems: elems}
}

// Tuple creates a fixed-arity ordered aggregate value.
func Tuple(elems ...*Value) *Value {
	return &Value{kind: KindTuple, elems: elems}
}

// Dict creates an unordered mapping value. Entries are kept in insertion
// order so that encoding stays deterministic.
func Dict(entries ...Entry) *Value {
	return &Value{kind: KindDict, entries: entries}
}

// OrderedDict creates an insertion-ordered mapping value.
func OrderedDict(entries ...Entry) *Value {
	return &Value{kind: KindOrderedDict, entries: entries}
}

// Product creates an instance of a named product type.
func Product(typeName string, fields ...FieldValue) *Value {
	return &Value{
		kind: KindProduct,
		productVal: &ProductValue{
			TypeName: typeName,
			Fields:   fields,
		},
	}
}

// EntryVal creates an Entry for use in Dict/OrderedDict construction.
func EntryVal(key, value *Value) Entry {
	return Entry{Key: key, Value: value}
}

// FieldVal creates a FieldValue for use in Product construction.
func FieldVal(name string, value *Value) FieldValue {
	return FieldValue{Name: name, Value: value}
}

func dedup(elems []*Value) []*Value {
	out := make([]*Value, 0, len(elems))
	for _, e := range elems {
		dup := false
		for _, seen := range out {
			if Equal(seen, e) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, e)
		}
	}
	return out
}

// ============================================================
// Accessors
// ============================================================

// Kind returns the value kind.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.kind == KindNull
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if v == nil {
		return false, fmt.Errorf("tyjson: nil value")
	}
	if v.kind != KindBool {
		return false, fmt.Errorf("tyjson: expected bool, got %s", v.kind)
	}
	return v.boolVal, nil
}

// AsInt returns the integer value.
func (v *Value) AsInt() (int64, error) {
	if v == nil {
		return 0, fmt.Errorf("tyjson: nil value")
	}
	if v.kind != KindInt {
		return 0, fmt.Errorf("tyjson: expected int, got %s", v.kind)
	}
	return v.intVal, nil
}

// AsFloat returns the float value.
func (v *Value) AsFloat() (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("tyjson: nil value")
	}
	if v.kind != KindFloat {
		return 0, fmt.Errorf("tyjson: expected float, got %s", v.kind)
	}
	return v.floatVal, nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if v == nil {
		return "", fmt.Errorf("tyjson: nil value")
	}
	if v.kind != KindStr {
		return "", fmt.Errorf("tyjson: expected str, got %s", v.kind)
	}
	return v.strVal, nil
}

// AsDecimal returns the decimal value.
func (v *Value) AsDecimal() (decimal.Decimal, error) {
	if v == nil {
		return decimal.Decimal{}, fmt.Errorf("tyjson: nil value")
	}
	if v.kind != KindDecimal {
		return decimal.Decimal{}, fmt.Errorf("tyjson: expected decimal, got %s", v.kind)
	}
	return v.decVal, nil
}

// AsEnum returns the enumeration member.
func (v *Value) AsEnum() (EnumMember, error) {
	if v == nil {
		return EnumMember{}, fmt.Errorf("tyjson: nil value")
	}
	if v.kind != KindEnum {
		return EnumMember{}, fmt.Errorf("tyjson: expected enum, got %s", v.kind)
	}
	return v.enumVal, nil
}

// Items returns the elements of a list, set, frozenset, deque, or tuple.
func (v *Value) Items() ([]*Value, error) {
	if v == nil {
		return nil, fmt.Errorf("tyjson: nil value")
	}
	switch v.kind {
	case KindList, KindSet, KindFrozenSet, KindDeque, KindTuple:
		return v.elems, nil
	default:
		return nil, fmt.Errorf("tyjson: expected sequence, got %s", v.kind)
	}
}

// Entries returns the entries of a dict or ordereddict.
func (v *Value) Entries() ([]Entry, error) {
	if v == nil {
		return nil, fmt.Errorf("tyjson: nil value")
	}
	switch v.kind {
	case KindDict, KindOrderedDict:
		return v.entries, nil
	default:
		return nil, fmt.Errorf("tyjson: expected mapping, got %s", v.kind)
	}
}

// AsProduct returns the product value.
func (v *Value) AsProduct() (*ProductValue, error) {
	if v == nil {
		return nil, fmt.Errorf("tyjson: nil value")
	}
	if v.kind != KindProduct {
		return nil, fmt.Errorf("tyjson: expected product, got %s", v.kind)
	}
	return v.productVal, nil
}

// Len returns the length of a sequence, mapping, or product.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case KindList, KindSet, KindFrozenSet, KindDeque, KindTuple:
		return len(v.elems)
	case KindDict, KindOrderedDict:
		return len(v.entries)
	case KindProduct:
		return len(v.productVal.Fields)
	default:
		return 0
	}
}

// Index returns the i-th element of a sequence.
func (v *Value) Index(i int) (*Value, error) {
	if _, err := v.Items(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(v.elems) {
		return nil, fmt.Errorf("tyjson: index %d out of bounds (len=%d)", i, len(v.elems))
	}
	return v.elems[i], nil
}

// Get returns the value for a mapping key, using value equality.
func (v *Value) Get(key *Value) *Value {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindDict, KindOrderedDict:
		for _, e := range v.entries {
			if Equal(e.Key, key) {
				return e.Value
			}
		}
	}
	return nil
}

// Field returns a product field value by name.
func (v *Value) Field(name string) *Value {
	if v == nil || v.kind != KindProduct {
		return nil
	}
	for _, f := range v.productVal.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// Contains reports whether a set/frozenset/list contains an element equal
// to the given value.
func (v *Value) Contains(elem *Value) bool {
	if v == nil {
		return false
	}
	switch v.kind {
	case KindList, KindSet, KindFrozenSet, KindDeque, KindTuple:
		for _, e := range v.elems {
			if Equal(e, elem) {
				return true
			}
		}
	}
	return false
}

// ============================================================
// Equality
// ============================================================

// Equal reports deep value equality. Sets and frozensets compare by
// content regardless of element order, as do unordered dicts; ordered
// dicts, sequences, and tuples compare element-wise in order. Kinds must
// match exactly: Bool(true) is never equal to Int(1), and Int(1) is never
// equal to Dec("1").
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a.IsNull() && b.IsNull()
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.boolVal == b.boolVal
	case KindInt:
		return a.intVal == b.intVal
	case KindFloat:
		return a.floatVal == b.floatVal
	case KindStr:
		return a.strVal == b.strVal
	case KindDecimal:
		return a.decVal.Equal(b.decVal)
	case KindEnum:
		return a.enumVal == b.enumVal
	case KindList, KindDeque, KindTuple:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case KindSet, KindFrozenSet:
		return setEqual(a.elems, b.elems)
	case KindDict:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for _, e := range a.entries {
			if !Equal(b.Get(e.Key), e.Value) {
				return false
			}
		}
		return true
	case KindOrderedDict:
		if len(a.entries) != len(b.entries) {
			return false
		}
		for i := range a.entries {
			if !Equal(a.entries[i].Key, b.entries[i].Key) ||
				!Equal(a.entries[i].Value, b.entries[i].Value) {
				return false
			}
		}
		return true
	case KindProduct:
		if a.productVal.TypeName != b.productVal.TypeName {
			return false
		}
		if len(a.productVal.Fields) != len(b.productVal.Fields) {
			return false
		}
		for i, f := range a.productVal.Fields {
			g := b.productVal.Fields[i]
			if f.Name != g.Name || !Equal(f.Value, g.Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func setEqual(a, b []*Value) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if Equal(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ============================================================
// Rendering (diagnostics only)
// ============================================================

// String renders the value compactly for diagnostics. Not an interchange
// format; use Encode for wire output.
func (v *Value) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v *Value) render(sb *strings.Builder) {
	if v == nil || v.kind == KindNull {
		sb.WriteString("null")
		return
	}
	switch v.kind {
	case KindBool:
		if v.boolVal {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindInt:
		fmt.Fprintf(sb, "%d", v.intVal)
	case KindFloat:
		fmt.Fprintf(sb, "%v", v.floatVal)
	case KindStr:
		fmt.Fprintf(sb, "%q", v.strVal)
	case KindDecimal:
		sb.WriteString(v.decVal.String())
		sb.WriteByte('d')
	case KindEnum:
		sb.WriteString(v.enumVal.String())
	case KindList, KindDeque, KindTuple:
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteByte(' ')
			}
			e.render(sb)
		}
		sb.WriteByte(']')
	case KindSet, KindFrozenSet:
		sb.WriteByte('{')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteByte(' ')
			}
			e.render(sb)
		}
		sb.WriteByte('}')
	case KindDict, KindOrderedDict:
		sb.WriteByte('{')
		for i, e := range v.entries {
			if i > 0 {
				sb.WriteByte(' ')
			}
			e.Key.render(sb)
			sb.WriteByte(':')
			e.Value.render(sb)
		}
		sb.WriteByte('}')
	case KindProduct:
		sb.WriteString(v.productVal.TypeName)
		sb.WriteByte('{')
		for i, f := range v.productVal.Fields {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(f.Name)
			sb.WriteByte('=')
			f.Value.render(sb)
		}
		sb.WriteByte('}')
	}
}
