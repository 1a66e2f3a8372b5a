package tyjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodable(t *testing.T) {
	tests := []struct {
		name string
		desc *Descriptor
		ok   bool
	}{
		{"int", IntType(), true},
		{"decimal", DecimalType(), true},
		{"enum", EnumType("Color", "Red"), true},
		{"literal of primitives", LiteralType(Int(0), Str("auto"), Null()), true},

		// Typecheckable permits enum-member and decimal constants; the
		// interchange form does not, since their encodings would collide
		// with plain strings.
		{"literal of enum member", LiteralType(Enum("Color", "Red")), false},
		{"literal of decimal", LiteralType(MustDec("0.5")), false},

		{"union", UnionType(IntType(), StrType()), true},
		{"list", ListType(IntType()), true},
		{"set", SetType(StrType()), true},
		{"tuple", TupleType(IntType(), StrType()), true},
		{"variadic tuple", VariadicTupleType(IntType()), true},

		{"map with str key", DictType(StrType(), IntType()), true},
		{"map with int key", DictType(IntType(), StrType()), true},
		{"map with tuple key", DictType(TupleType(IntType(), IntType()), StrType()), true},
		{"map with list key", DictType(ListType(IntType()), StrType()), false},
		{"map with set key", DictType(SetType(IntType()), StrType()), false},
		{"map with map key", DictType(DictType(StrType(), IntType()), StrType()), false},
		{"ordered map", OrderedDictType(StrType(), FloatType()), true},

		{"product", ProductType("Point", Field("x", IntType())), true},
		{
			"product with unencodable field",
			ProductType("Odd", Field("lit", LiteralType(MustDec("1.5")))),
			false,
		},

		// Not typecheckable implies not encodable.
		{"empty union", UnionType(), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, Encodable(tt.desc).OK)
		})
	}
}

func TestEncodable_NestedKeyGate(t *testing.T) {
	// Keyability is checked wherever a map appears, not only at the root.
	d := ListType(UnionType(IntType(), DictType(FrozenSetType(IntType()), StrType())))
	assert.True(t, Encodable(d).OK)

	bad := ListType(UnionType(IntType(), DictType(SetType(IntType()), StrType())))
	assert.False(t, Encodable(bad).OK)
}
