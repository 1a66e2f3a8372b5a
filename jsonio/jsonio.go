// Package jsonio supplies the textual interchange reader/writer around the
// tyjson engine: JSON text in, interchange graphs out, and convenience
// calls that compose parsing with Decode and Encode with writing.
//
// Number literals are parsed into arbitrary-precision decimals so that
// precision is not silently lost before Decode gets a chance to apply its
// cast policy.
package jsonio

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tyjson/tyjson/tyjson"
)

// Read parses one JSON value from the reader into an interchange value.
func Read(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("jsonio: read: %w", err)
	}
	return tyjson.ParseInterchange(data)
}

// Write renders an interchange value as compact JSON text.
func Write(w io.Writer, v any) error {
	data, err := tyjson.MarshalInterchange(v)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("jsonio: write: %w", err)
	}
	return nil
}

// WriteIndent renders an interchange value as indented JSON text.
func WriteIndent(w io.Writer, v any, prefix, indent string) error {
	data, err := tyjson.MarshalInterchange(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return fmt.Errorf("jsonio: indent: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("jsonio: write: %w", err)
	}
	return nil
}

// Load reads JSON text from the reader and decodes it against the
// descriptor.
func Load(r io.Reader, d *tyjson.Descriptor) (*tyjson.Value, error) {
	return LoadWithOptions(r, d, tyjson.DefaultDecodeOptions())
}

// LoadWithOptions reads and decodes with custom decode options.
func LoadWithOptions(r io.Reader, d *tyjson.Descriptor, opts tyjson.DecodeOptions) (*tyjson.Value, error) {
	blob, err := Read(r)
	if err != nil {
		return nil, err
	}
	return tyjson.DecodeWithOptions(blob, d, opts)
}

// Dump encodes the value against the descriptor and writes compact JSON
// text to the writer.
func Dump(w io.Writer, v *tyjson.Value, d *tyjson.Descriptor) error {
	return DumpWithOptions(w, v, d, tyjson.DefaultEncodeOptions())
}

// DumpWithOptions encodes and writes with custom encode options. Raw
// decimals are rendered as bare JSON numbers.
func DumpWithOptions(w io.Writer, v *tyjson.Value, d *tyjson.Descriptor, opts tyjson.EncodeOptions) error {
	blob, err := tyjson.EncodeWithOptions(v, d, opts)
	if err != nil {
		return err
	}
	return Write(w, blob)
}

// Marshal encodes the value against the descriptor into compact JSON
// bytes.
func Marshal(v *tyjson.Value, d *tyjson.Descriptor) ([]byte, error) {
	var buf bytes.Buffer
	if err := Dump(&buf, v, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes against the descriptor.
func Unmarshal(data []byte, d *tyjson.Descriptor) (*tyjson.Value, error) {
	blob, err := tyjson.ParseInterchange(data)
	if err != nil {
		return nil, err
	}
	return tyjson.Decode(blob, d)
}
