package tyjson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// inventoryType is a descriptor exercising most of the algebra at once.
func inventoryType() *Descriptor {
	return ProductType("Inventory",
		Field("name", StrType()),
		Field("tags", SetType(StrType())),
		Field("position", TupleType(IntType(), IntType())),
		Field("status", EnumType("Status", "Active", "Retired")),
		FieldDefault("note", Optional(StrType()), Null()),
		Field("counts", DictType(StrType(), IntType())),
		Field("history", ListType(ProductType("Event",
			Field("kind", LiteralType(Str("add"), Str("remove"))),
			Field("amount", DecimalType()),
		))),
	)
}

func inventoryValue() *Value {
	return Product("Inventory",
		FieldVal("name", Str("widgets")),
		FieldVal("tags", Set(Str("a"), Str("b"))),
		FieldVal("position", Tuple(Int(3), Int(4))),
		FieldVal("status", Enum("Status", "Active")),
		FieldVal("note", Null()),
		FieldVal("counts", Dict(EntryVal(Str("warehouse"), Int(7)))),
		FieldVal("history", List(
			Product("Event", FieldVal("kind", Str("add")), FieldVal("amount", MustDec("2.50"))),
		)),
	)
}

func TestRoundTrip_Inventory(t *testing.T) {
	d := inventoryType()
	v := inventoryValue()
	require.True(t, Conforms(v, d).OK)

	blob, err := Encode(v, d)
	require.NoError(t, err)

	text, err := MarshalInterchange(blob)
	require.NoError(t, err)

	parsed, err := ParseInterchange(text)
	require.NoError(t, err)

	back, err := Decode(parsed, d)
	require.NoError(t, err)

	require.True(t, Equal(v, back), "round trip changed the value:\n in: %s\nout: %s", v, back)
}

func TestRoundTrip_CompositeKeys(t *testing.T) {
	d := OrderedDictType(TupleType(IntType(), IntType()), ListType(StrType()))
	v := OrderedDict(
		EntryVal(Tuple(Int(1), Int(0)), List(Str("east"))),
		EntryVal(Tuple(Int(0), Int(1)), List(Str("north"))),
	)

	blob, err := Encode(v, d)
	require.NoError(t, err)
	text, err := MarshalInterchange(blob)
	require.NoError(t, err)
	parsed, err := ParseInterchange(text)
	require.NoError(t, err)
	back, err := Decode(parsed, d)
	require.NoError(t, err)
	require.True(t, Equal(v, back))
}

func TestRoundTrip_ProductsAsArrays(t *testing.T) {
	d := ProductType("Point", Field("x", IntType()), Field("y", IntType()))
	v := Product("Point", FieldVal("x", Int(1)), FieldVal("y", Int(2)))

	blob, err := EncodeWithOptions(v, d, EncodeOptions{ProductsAsArrays: true})
	require.NoError(t, err)
	back, err := Decode(blob, d)
	require.NoError(t, err)
	require.True(t, Equal(v, back))
}

func TestRoundTrip_RawDecimal(t *testing.T) {
	d := ListType(DecimalType())
	v := List(MustDec("0.1"), MustDec("1.000"))

	blob, err := EncodeWithOptions(v, d, EncodeOptions{UseRawDecimal: true})
	require.NoError(t, err)
	text, err := MarshalInterchange(blob)
	require.NoError(t, err)
	require.Equal(t, "[0.1,1.000]", string(text))

	parsed, err := ParseInterchange(text)
	require.NoError(t, err)
	back, err := Decode(parsed, d)
	require.NoError(t, err)
	require.True(t, Equal(v, back), "raw decimals keep exact precision through the wire")
}

// ============================================================
// Benchmarks
// ============================================================

func BenchmarkEncode(b *testing.B) {
	d := inventoryType()
	v := inventoryValue()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(v, d); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	d := inventoryType()
	blob, err := Encode(inventoryValue(), d)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(blob, d); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkConforms(b *testing.B) {
	d := inventoryType()
	v := inventoryValue()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if !Conforms(v, d).OK {
			b.Fatal("value should conform")
		}
	}
}
