package model

import "hue-rest-client/internal/domain/codec"

// State is the modifiable and reported state of a light. Every field is
// optional; nil means the field is not set and is neither sent nor was it
// received.
//
// Reachable and ColorMode are reported by the bridge and are not needed
// when writing. TransitionTime is write-only on most bridge endpoints but
// is still read back when present.
type State struct {
	On             *bool
	Bri            *uint8
	Hue            *uint16
	Sat            *uint8
	XY             *XY
	CT             *uint16
	Alert          *Alert
	Effect         *Effect
	ColorMode      *ColorMode
	Reachable      *bool
	TransitionTime *uint16
}

// XY is a CIE 1931 chromaticity coordinate, each component in [0, 1].
type XY struct {
	X float32
	Y float32
}

var xyPair = codec.PairOf(codec.Float32, codec.Float32)

var XYCodec = codec.Codec[XY]{
	Encode: func(xy XY) codec.Value {
		return xyPair.Encode(codec.Pair[float32, float32]{First: xy.X, Second: xy.Y})
	},
	Decode: func(v codec.Value) (XY, bool) {
		p, ok := xyPair.Decode(v)
		return XY{X: p.First, Y: p.Second}, ok
	},
}

var StateCodec = codec.Codec[State]{
	Encode: State.Encode,
	Decode: DecodeState,
}

// Encode builds a JSON object holding only the set fields.
func (s State) Encode() codec.Value {
	obj := codec.Object{}
	codec.Put(obj, "on", s.On, codec.Bool.Encode)
	codec.Put(obj, "bri", s.Bri, codec.Uint8.Encode)
	codec.Put(obj, "hue", s.Hue, codec.Uint16.Encode)
	codec.Put(obj, "sat", s.Sat, codec.Uint8.Encode)
	codec.Put(obj, "xy", s.XY, XYCodec.Encode)
	codec.Put(obj, "ct", s.CT, codec.Uint16.Encode)
	codec.Put(obj, "alert", s.Alert, AlertCodec.Encode)
	codec.Put(obj, "effect", s.Effect, EffectCodec.Encode)
	codec.Put(obj, "colormode", s.ColorMode, ColorModeCodec.Encode)
	codec.Put(obj, "reachable", s.Reachable, codec.Bool.Encode)
	codec.Put(obj, "transitiontime", s.TransitionTime, codec.Uint16.Encode)
	return codec.ObjectValue(obj)
}

// DecodeState reads a state object. Members that are missing, of the wrong
// kind or out of range leave their field unset; only a non-object input
// fails.
func DecodeState(v codec.Value) (State, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return State{}, false
	}
	return State{
		On:             codec.Lookup(obj, "on", codec.Bool.Decode),
		Bri:            codec.Lookup(obj, "bri", codec.Uint8.Decode),
		Hue:            codec.Lookup(obj, "hue", codec.Uint16.Decode),
		Sat:            codec.Lookup(obj, "sat", codec.Uint8.Decode),
		XY:             codec.Lookup(obj, "xy", XYCodec.Decode),
		CT:             codec.Lookup(obj, "ct", codec.Uint16.Decode),
		Alert:          codec.Lookup(obj, "alert", AlertCodec.Decode),
		Effect:         codec.Lookup(obj, "effect", EffectCodec.Decode),
		ColorMode:      codec.Lookup(obj, "colormode", ColorModeCodec.Decode),
		Reachable:      codec.Lookup(obj, "reachable", codec.Bool.Decode),
		TransitionTime: codec.Lookup(obj, "transitiontime", codec.Uint16.Decode),
	}, true
}

// IsEmpty reports whether no field is set.
func (s State) IsEmpty() bool {
	obj, _ := s.Encode().AsObject()
	return len(obj) == 0
}

func (s State) MarshalJSON() ([]byte, error) {
	return s.Encode().MarshalJSON()
}

// UnmarshalJSON follows DecodeState: it only fails when data is not a JSON
// object.
func (s *State) UnmarshalJSON(data []byte) error {
	v, err := codec.Parse(data)
	if err != nil {
		return err
	}
	// null leaves the receiver untouched, as encoding/json does.
	if v.IsNull() {
		return nil
	}
	decoded, ok := DecodeState(v)
	if !ok {
		return &DecodeError{Type: "State", Kind: v.Kind()}
	}
	*s = decoded
	return nil
}

func Bool(v bool) *bool { return &v }

func Uint8(v uint8) *uint8 { return &v }

func Uint16(v uint16) *uint16 { return &v }

func NewXY(x, y float32) *XY { return &XY{X: x, Y: y} }

func AlertPtr(a Alert) *Alert { return &a }

func EffectPtr(e Effect) *Effect { return &e }

func ColorModePtr(m ColorMode) *ColorMode { return &m }
