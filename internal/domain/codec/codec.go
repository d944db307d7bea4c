// Package codec converts between JSON values and the primitive types the Hue
// schema is built from. Decoding never fails loudly: a value of the wrong
// kind or outside the target range decodes to (zero, false).
package codec

import "math"

type Encoder[T any] func(T) Value

type Decoder[T any] func(Value) (T, bool)

// Codec pairs the two directions for a type.
type Codec[T any] struct {
	Encode Encoder[T]
	Decode Decoder[T]
}

var Bool = Codec[bool]{
	Encode: BoolValue,
	Decode: Value.AsBool,
}

var Uint8 = Codec[uint8]{
	Encode: func(n uint8) Value { return UintValue(uint64(n)) },
	Decode: func(v Value) (uint8, bool) {
		n, ok := v.AsUint()
		if !ok || n > math.MaxUint8 {
			return 0, false
		}
		return uint8(n), true
	},
}

var Uint16 = Codec[uint16]{
	Encode: func(n uint16) Value { return UintValue(uint64(n)) },
	Decode: func(v Value) (uint16, bool) {
		n, ok := v.AsUint()
		if !ok || n > math.MaxUint16 {
			return 0, false
		}
		return uint16(n), true
	},
}

var Float32 = Codec[float32]{
	Encode: Float32Value,
	Decode: Value.AsFloat32,
}

var String = Codec[string]{
	Encode: StringValue,
	Decode: Value.AsString,
}

// Pair is a fixed two-element tuple, written as a two-element JSON array.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf builds the codec for a Pair out of the codecs of its elements.
func PairOf[A, B any](a Codec[A], b Codec[B]) Codec[Pair[A, B]] {
	return Codec[Pair[A, B]]{
		Encode: func(p Pair[A, B]) Value {
			return ArrayValue(a.Encode(p.First), b.Encode(p.Second))
		},
		Decode: func(v Value) (Pair[A, B], bool) {
			items, ok := v.AsArray()
			if !ok || len(items) != 2 {
				return Pair[A, B]{}, false
			}
			first, ok := a.Decode(items[0])
			if !ok {
				return Pair[A, B]{}, false
			}
			second, ok := b.Decode(items[1])
			if !ok {
				return Pair[A, B]{}, false
			}
			return Pair[A, B]{First: first, Second: second}, true
		},
	}
}

// Lookup decodes an optional object member. A missing key or a member that
// does not decode both give nil.
func Lookup[T any](obj Object, key string, decode Decoder[T]) *T {
	raw, ok := obj[key]
	if !ok {
		return nil
	}
	v, ok := decode(raw)
	if !ok {
		return nil
	}
	return &v
}

// Require decodes a mandatory object member.
func Require[T any](obj Object, key string, decode Decoder[T]) (T, bool) {
	raw, ok := obj[key]
	if !ok {
		var zero T
		return zero, false
	}
	return decode(raw)
}

// Put encodes v into obj under key when v is set.
func Put[T any](obj Object, key string, v *T, encode Encoder[T]) {
	if v != nil {
		obj[key] = encode(*v)
	}
}
