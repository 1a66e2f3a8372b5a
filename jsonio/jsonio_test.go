package jsonio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyjson/tyjson/tyjson"
)

func pointType() *tyjson.Descriptor {
	return tyjson.ProductType("Point",
		tyjson.Field("x", tyjson.IntType()),
		tyjson.FieldDefault("y", tyjson.IntType(), tyjson.Int(0)),
	)
}

func TestLoad(t *testing.T) {
	v, err := Load(strings.NewReader(`{"x": 3}`), pointType())
	require.NoError(t, err)
	assert.True(t, tyjson.Equal(tyjson.Int(3), v.Field("x")))
	assert.True(t, tyjson.Equal(tyjson.Int(0), v.Field("y")), "default filled in")
}

func TestLoad_NonConforming(t *testing.T) {
	_, err := Load(strings.NewReader(`{"x": "three"}`), pointType())
	require.Error(t, err)
	var nc *tyjson.NonConformingError
	assert.ErrorAs(t, err, &nc)
}

func TestDump(t *testing.T) {
	v := tyjson.Product("Point",
		tyjson.FieldVal("x", tyjson.Int(1)),
		tyjson.FieldVal("y", tyjson.Int(2)),
	)
	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, v, pointType()))
	assert.Equal(t, `{"x":1,"y":2}`, buf.String())
}

func TestDumpWithOptions_RawDecimal(t *testing.T) {
	d := tyjson.ListType(tyjson.DecimalType())
	v := tyjson.List(tyjson.MustDec("0.10"))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf, v, d))
	assert.Equal(t, `["0.10"]`, buf.String())

	buf.Reset()
	opts := tyjson.EncodeOptions{UseRawDecimal: true}
	require.NoError(t, DumpWithOptions(&buf, v, d, opts))
	assert.Equal(t, `[0.10]`, buf.String())
}

func TestMarshalUnmarshal(t *testing.T) {
	d := pointType()
	v := tyjson.Product("Point",
		tyjson.FieldVal("x", tyjson.Int(7)),
		tyjson.FieldVal("y", tyjson.Int(0)),
	)

	data, err := Marshal(v, d)
	require.NoError(t, err)

	back, err := Unmarshal(data, d)
	require.NoError(t, err)
	assert.True(t, tyjson.Equal(v, back))
}

func TestReadWrite(t *testing.T) {
	// Read/Write round-trips arbitrary interchange text, preserving field
	// order and number precision without a descriptor.
	in := `{"z":1.50,"a":[true,null]}`
	v, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, v))
	assert.Equal(t, in, buf.String())
}

func TestWriteIndent(t *testing.T) {
	v, err := Read(strings.NewReader(`{"a":1}`))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteIndent(&buf, v, "", "  "))
	assert.Equal(t, "{\n  \"a\": 1\n}", buf.String())
}

func TestRead_Invalid(t *testing.T) {
	_, err := Read(strings.NewReader("{broken"))
	assert.Error(t, err)
}
