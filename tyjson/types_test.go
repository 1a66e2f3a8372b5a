package tyjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Constructor and Accessor Tests
// ============================================================

func TestValue_Accessors(t *testing.T) {
	b, err := Bool(true).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	i, err := Int(-3).AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(-3), i)

	f, err := Float(2.5).AsFloat()
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	s, err := Str("hi").AsStr()
	require.NoError(t, err)
	assert.Equal(t, "hi", s)

	d, err := MustDec("1.50").AsDecimal()
	require.NoError(t, err)
	assert.Equal(t, "1.50", d.String())

	m, err := Enum("Color", "Red").AsEnum()
	require.NoError(t, err)
	assert.Equal(t, EnumMember{Enum: "Color", Member: "Red"}, m)

	// Accessors refuse the wrong kind.
	_, err = Str("1").AsInt()
	assert.Error(t, err)
	_, err = Int(1).AsStr()
	assert.Error(t, err)
	_, err = Bool(true).AsInt()
	assert.Error(t, err)
}

func TestValue_SetsDeduplicate(t *testing.T) {
	s := Set(Int(1), Int(2), Int(1))
	assert.Equal(t, 2, s.Len())

	fs := FrozenSet(Str("a"), Str("a"))
	assert.Equal(t, 1, fs.Len())

	// Lists keep duplicates.
	l := List(Int(1), Int(1))
	assert.Equal(t, 2, l.Len())
}

func TestValue_SetsDeduplicateByValueEquality(t *testing.T) {
	// Structural duplicates collapse even for composite elements.
	s := Set(Tuple(Int(1), Int(2)), Tuple(Int(1), Int(2)), Tuple(Int(2), Int(1)))
	assert.Equal(t, 2, s.Len())
}

func TestValue_ProductAccess(t *testing.T) {
	v := Product("Point", FieldVal("x", Int(1)), FieldVal("y", Int(2)))
	pv, err := v.AsProduct()
	require.NoError(t, err)
	assert.Equal(t, "Point", pv.TypeName)
	require.Len(t, pv.Fields, 2)

	assert.True(t, Equal(Int(1), v.Field("x")))
	assert.True(t, Equal(Int(2), v.Field("y")))
	assert.Nil(t, v.Field("z"))
}

func TestValue_DictAccess(t *testing.T) {
	v := Dict(EntryVal(Str("a"), Int(1)))
	assert.True(t, Equal(Int(1), v.Get(Str("a"))))
	assert.Nil(t, v.Get(Str("missing")))

	entries, err := v.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDecFromString(t *testing.T) {
	v, err := DecFromString("3.14")
	require.NoError(t, err)
	assert.Equal(t, KindDecimal, v.Kind())

	_, err = DecFromString("not a number")
	assert.Error(t, err)
}

// ============================================================
// Equality Tests
// ============================================================

func TestEqual(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *Value
		equal bool
	}{
		{"nulls", Null(), Null(), true},
		{"same ints", Int(1), Int(1), true},
		{"different ints", Int(1), Int(2), false},
		{"same floats", Float(1.5), Float(1.5), true},
		{"same strs", Str("a"), Str("a"), true},

		// Kinds never cross-compare, matching conformance's disjointness.
		{"bool vs int", Bool(true), Int(1), false},
		{"int vs float", Int(1), Float(1), false},
		{"int vs decimal", Int(1), MustDec("1"), false},
		{"str vs enum member", Str("Red"), Enum("Color", "Red"), false},

		// Decimal equality is numeric, not textual.
		{"decimals differing in scale", MustDec("1.5"), MustDec("1.50"), true},
		{"different decimals", MustDec("1.5"), MustDec("1.51"), false},

		{"same enum members", Enum("Color", "Red"), Enum("Color", "Red"), true},
		{"members of different enums", Enum("Color", "Red"), Enum("Shade", "Red"), false},

		{"same lists", List(Int(1), Int(2)), List(Int(1), Int(2)), true},
		{"reordered lists", List(Int(1), Int(2)), List(Int(2), Int(1)), false},
		{"list vs tuple", List(Int(1)), Tuple(Int(1)), false},
		{"list vs deque", List(Int(1)), Deque(Int(1)), false},

		// Sets compare by content regardless of construction order.
		{"reordered sets", Set(Int(1), Int(2)), Set(Int(2), Int(1)), true},
		{"set vs frozenset", Set(Int(1)), FrozenSet(Int(1)), false},
		{"unequal sets", Set(Int(1)), Set(Int(2)), false},

		// Unordered dicts compare by content; ordered dicts by sequence.
		{
			"reordered dicts",
			Dict(EntryVal(Str("a"), Int(1)), EntryVal(Str("b"), Int(2))),
			Dict(EntryVal(Str("b"), Int(2)), EntryVal(Str("a"), Int(1))),
			true,
		},
		{
			"reordered ordered dicts",
			OrderedDict(EntryVal(Str("a"), Int(1)), EntryVal(Str("b"), Int(2))),
			OrderedDict(EntryVal(Str("b"), Int(2)), EntryVal(Str("a"), Int(1))),
			false,
		},
		{
			"dict vs ordered dict",
			Dict(EntryVal(Str("a"), Int(1))),
			OrderedDict(EntryVal(Str("a"), Int(1))),
			false,
		},

		{
			"same products",
			Product("P", FieldVal("x", Int(1))),
			Product("P", FieldVal("x", Int(1))),
			true,
		},
		{
			"products of different types",
			Product("P", FieldVal("x", Int(1))),
			Product("Q", FieldVal("x", Int(1))),
			false,
		},
		{
			"products with different field values",
			Product("P", FieldVal("x", Int(1))),
			Product("P", FieldVal("x", Int(2))),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(tt.a, tt.b))
			assert.Equal(t, tt.equal, Equal(tt.b, tt.a), "equality is symmetric")
		})
	}
}

// ============================================================
// Rendering Tests
// ============================================================

func TestValue_String(t *testing.T) {
	// The diagnostic renderer is for error messages; spot-check a few
	// shapes rather than pinning the whole grammar.
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "42", Int(42).String())
	assert.Contains(t, Enum("Color", "Red").String(), "Red")
	assert.Contains(t, List(Int(1), Int(2)).String(), "1")
}

func TestDescriptor_String(t *testing.T) {
	tests := []struct {
		desc     *Descriptor
		expected string
	}{
		{IntType(), "int"},
		{ListType(IntType()), "list<int>"},
		{UnionType(IntType(), FloatType()), "union<int|float>"},
		{DictType(StrType(), IntType()), "map<str,int>"},
		{TupleType(IntType(), StrType()), "tuple<int,str>"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.desc.String())
		})
	}
}
