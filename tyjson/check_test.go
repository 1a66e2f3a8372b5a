package tyjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Typecheckable Tests
// ============================================================

func TestTypecheckable_Primitives(t *testing.T) {
	for _, d := range []*Descriptor{
		NullType(), BoolType(), IntType(), FloatType(), StrType(), DecimalType(),
	} {
		t.Run(d.String(), func(t *testing.T) {
			assert.True(t, Typecheckable(d).OK)
		})
	}
}

func TestTypecheckable_Composites(t *testing.T) {
	tests := []struct {
		name string
		desc *Descriptor
		ok   bool
	}{
		{"enum", EnumType("Color", "Red", "Green", "Blue"), true},
		{"empty enum", EnumType("Color"), false},
		{"enum with duplicate member", EnumType("Color", "Red", "Red"), false},
		{"literal of primitives", LiteralType(Int(0), Int(1), Str("auto")), true},
		{"literal of enum member", LiteralType(Enum("Color", "Red")), true},
		{"literal of decimal", LiteralType(MustDec("0.5")), true},
		{"empty literal", LiteralType(), false},
		{"literal of list", LiteralType(List(Int(1))), false},
		{"union", UnionType(IntType(), StrType()), true},
		{"empty union", UnionType(), false},
		{"union with nil member", UnionType(IntType(), nil), false},
		{"optional", Optional(StrType()), true},
		{"list", ListType(IntType()), true},
		{"list of nil", ListType(nil), false},
		{"set", SetType(StrType()), true},
		{"frozenset", FrozenSetType(IntType()), true},
		{"deque", DequeType(FloatType()), true},
		{"fixed tuple", TupleType(IntType(), StrType()), true},
		{"empty fixed tuple", TupleType(), true},
		{"variadic tuple", VariadicTupleType(IntType()), true},
		{"map", DictType(StrType(), IntType()), true},
		{"ordered map", OrderedDictType(StrType(), IntType()), true},
		{"deep nesting", ListType(DictType(StrType(), UnionType(IntType(), ListType(FloatType())))), true},
		{"nested malformed elem", ListType(ListType(EnumType("E"))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Typecheckable(tt.desc)
			assert.Equal(t, tt.ok, res.OK)
			if !tt.ok {
				assert.NotEmpty(t, res.Trail)
			}
		})
	}
}

func TestTypecheckable_Products(t *testing.T) {
	tests := []struct {
		name string
		desc *Descriptor
		ok   bool
	}{
		{
			"simple product",
			ProductType("Point", Field("x", IntType()), Field("y", IntType())),
			true,
		},
		{
			"empty product",
			ProductType("Unit"),
			true,
		},
		{
			"unnamed product",
			ProductType("", Field("x", IntType())),
			false,
		},
		{
			"unnamed field",
			ProductType("Point", Field("", IntType())),
			false,
		},
		{
			"duplicate field",
			ProductType("Point", Field("x", IntType()), Field("x", IntType())),
			false,
		},
		{
			"field with nil type",
			ProductType("Point", Field("x", nil)),
			false,
		},
		{
			"conforming default",
			ProductType("Config", FieldDefault("retries", IntType(), Int(3))),
			true,
		},
		{
			"non-conforming default",
			ProductType("Config", FieldDefault("retries", IntType(), Str("three"))),
			false,
		},
		{
			"nested product",
			ProductType("Segment",
				Field("a", ProductType("Point", Field("x", IntType()))),
				Field("b", ProductType("Point", Field("x", IntType()))),
			),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, Typecheckable(tt.desc).OK)
		})
	}
}

func TestTypecheckable_NilDescriptor(t *testing.T) {
	res := Typecheckable(nil)
	require.False(t, res.OK)
	require.NotEmpty(t, res.Trail)
}

// ============================================================
// Keyable Tests
// ============================================================

func TestKeyable(t *testing.T) {
	tests := []struct {
		name string
		desc *Descriptor
		ok   bool
	}{
		{"bool", BoolType(), true},
		{"int", IntType(), true},
		{"float", FloatType(), true},
		{"str", StrType(), true},
		{"null", NullType(), true},
		{"decimal", DecimalType(), true},
		{"enum", EnumType("Color", "Red"), true},
		{"literal", LiteralType(Int(0), Int(1)), true},
		{"union of keyables", UnionType(IntType(), StrType()), true},
		{"union with unkeyable member", UnionType(IntType(), ListType(IntType())), false},
		{"frozenset", FrozenSetType(IntType()), true},
		{"frozenset of lists", FrozenSetType(ListType(IntType())), false},
		{"fixed tuple of keyables", TupleType(IntType(), IntType()), true},
		{"fixed tuple with list slot", TupleType(IntType(), ListType(IntType())), false},
		{"variadic tuple", VariadicTupleType(StrType()), true},
		{"list", ListType(IntType()), false},
		{"set", SetType(IntType()), false},
		{"deque", DequeType(IntType()), false},
		{"map", DictType(StrType(), IntType()), false},
		{"product of keyables", ProductType("P", Field("x", IntType())), true},
		{"product with list field", ProductType("P", Field("xs", ListType(IntType()))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, Keyable(tt.desc).OK)
		})
	}
}

func TestKeyable_GatesMapEncodability(t *testing.T) {
	// A map keyed by an unkeyable type is still typecheckable but has no
	// interchange encoding; a map keyed by a keyable composite has one.
	bad := DictType(ListType(IntType()), StrType())
	require.True(t, Typecheckable(bad).OK)
	require.False(t, Encodable(bad).OK)

	good := DictType(TupleType(IntType(), IntType()), StrType())
	require.True(t, Typecheckable(good).OK)
	require.True(t, Encodable(good).OK)
}

// ============================================================
// Trail Tests
// ============================================================

func TestTrail_InnermostFirst(t *testing.T) {
	d := ListType(DictType(ListType(IntType()), StrType()))
	res := Encodable(d)
	require.False(t, res.OK)
	require.GreaterOrEqual(t, len(res.Trail), 2)
	// The innermost reason (the unkeyable list key) comes before the
	// enclosing ones.
	assert.Contains(t, res.Trail[0].Message, "not keyable")
	assert.Equal(t, "elem.key", res.Trail[0].Path)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "x", joinPath("", "x"))
	assert.Equal(t, "a.b", joinPath("a", "b"))
	assert.Equal(t, "a.b.c", joinPath("a.b", "c"))
}
