// Package tyjson implements a type-directed JSON interchange engine.
//
// Given a closed algebra of type descriptors, tyjson provides four
// capabilities:
//   - Classify whether a descriptor is well-formed (Typecheckable,
//     Keyable, Encodable)
//   - Check whether a runtime value conforms to a descriptor (Conforms)
//   - Encode a conforming value into a minimal interchange form (Encode)
//   - Decode an interchange value back into a conforming runtime value,
//     restoring what the wire format alone cannot carry (Decode)
//
// # Descriptor Algebra
//
// Primitives: null, bool, int, float, str
// Numbers:    decimal (arbitrary precision)
// Choices:    enum, literal, union (ordered; first match wins on decode)
// Sequences:  list, set, frozenset, deque, tuple (fixed or variadic)
// Mappings:   dict, ordereddict (keys must be keyable)
// Aggregates: product (named fields with optional defaults)
//
// # Interchange Form
//
// An interchange value uses only nil, bool, int64, float64, string,
// decimal.Decimal, []any, and *Object (an insertion-ordered string-keyed
// object). ParseInterchange and MarshalInterchange convert between
// interchange values and JSON text; number literals parse to decimals so
// precision survives until Decode applies its cast policy.
//
// # Example
//
//	point := tyjson.ProductType("Point",
//		tyjson.Field("x", tyjson.IntType()),
//		tyjson.FieldDefault("y", tyjson.IntType(), tyjson.Int(0)),
//	)
//	blob, _ := tyjson.ParseInterchange([]byte(`{"x": 3}`))
//	v, _ := tyjson.Decode(blob, point) // Point{x=3 y=0}
//
// # Concurrency
//
// The engine is purely functional: descriptors are immutable after
// construction and every operation is safe to invoke concurrently on a
// shared descriptor.
package tyjson
