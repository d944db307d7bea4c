package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind is the JSON kind of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindUint
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Object is a JSON object. Key order is not kept; objects are written with
// their keys sorted.
type Object map[string]Value

// Keys returns the object keys in lexicographic order.
func (o Object) Keys() []string {
	return slices.Sorted(maps.Keys(o))
}

// Value is a parsed JSON value. Integer literals keep their own kinds
// (KindUint for non-negative, KindInt for negative) so that they can be
// told apart from floating point literals.
type Value struct {
	kind Kind
	b    bool
	u    uint64
	i    int64
	f    float64
	bits int    // precision used when writing a float
	raw  string // number literal as parsed, empty when built in code
	s    string
	arr  []Value
	obj  Object
}

func Null() Value { return Value{} }

func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

func UintValue(u uint64) Value { return Value{kind: KindUint, u: u} }

func IntValue(i int64) Value {
	if i >= 0 {
		return UintValue(uint64(i))
	}
	return Value{kind: KindInt, i: i}
}

func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f, bits: 64} }

func Float32Value(f float32) Value { return Value{kind: KindFloat, f: float64(f), bits: 32} }

func StringValue(s string) Value { return Value{kind: KindString, s: s} }

func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: KindArray, arr: items}
}

func ObjectValue(o Object) Value {
	if o == nil {
		o = Object{}
	}
	return Value{kind: KindObject, obj: o}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsUint() (uint64, bool) {
	return v.u, v.kind == KindUint
}

func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindUint:
		if v.u <= math.MaxInt64 {
			return int64(v.u), true
		}
	}
	return 0, false
}

func (v Value) AsFloat() (float64, bool) {
	return v.f, v.kind == KindFloat
}

// AsFloat32 narrows a float value. Parsed literals are re-read at 32-bit
// precision so no double rounding happens.
func (v Value) AsFloat32() (float32, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	if v.raw != "" {
		if f, err := strconv.ParseFloat(v.raw, 32); err == nil {
			return float32(f), true
		}
	}
	return float32(v.f), true
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == KindArray
}

func (v Value) AsObject() (Object, bool) {
	return v.obj, v.kind == KindObject
}

// Parse reads a single JSON document.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("parse json: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("parse json: trailing data after document")
	}
	return fromAny(raw)
}

func fromAny(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return BoolValue(x), nil
	case json.Number:
		return numberValue(x)
	case string:
		return StringValue(x), nil
	case []any:
		items := make([]Value, 0, len(x))
		for _, item := range x {
			v, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return ArrayValue(items...), nil
	case map[string]any:
		obj := make(Object, len(x))
		for k, item := range x {
			v, err := fromAny(item)
			if err != nil {
				return Value{}, err
			}
			obj[k] = v
		}
		return ObjectValue(obj), nil
	}
	return Value{}, fmt.Errorf("parse json: unexpected %T", raw)
}

func numberValue(n json.Number) (Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if strings.HasPrefix(s, "-") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return Value{kind: KindInt, i: i}, nil
			}
		} else if u, err := strconv.ParseUint(s, 10, 64); err == nil {
			return UintValue(u), nil
		}
	}
	// Fractions, exponents and integers too wide for 64 bits.
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, fmt.Errorf("parse json: number %q: %w", s, err)
	}
	return Value{kind: KindFloat, f: f, bits: 64, raw: s}, nil
}

// MarshalJSON writes v as compact JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	v.write(&buf)
	return buf.Bytes(), nil
}

// String returns the compact JSON text of v.
func (v Value) String() string {
	data, _ := v.MarshalJSON()
	return string(data)
}

func (v Value) write(buf *bytes.Buffer) {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindUint:
		buf.WriteString(strconv.FormatUint(v.u, 10))
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		writeFloat(buf, v.f, v.bits)
	case KindString:
		writeString(buf, v.s)
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			item.write(buf)
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeString(buf, k)
			buf.WriteByte(':')
			v.obj[k].write(buf)
		}
		buf.WriteByte('}')
	}
}

// writeFloat always leaves a fraction or exponent in the output so the
// number reads back as a float.
func writeFloat(buf *bytes.Buffer, f float64, bits int) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("null")
		return
	}
	if bits != 32 {
		bits = 64
	}
	format := byte('f')
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	buf.WriteString(s)
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
}
