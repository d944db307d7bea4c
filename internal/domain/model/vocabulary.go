package model

import (
	"fmt"

	"hue-rest-client/internal/domain/codec"
)

// ColorMode is the color representation a light is currently using.
type ColorMode int

const (
	ColorModeHueSat ColorMode = iota + 1
	ColorModeCieXY
	ColorModeColorTemperature
)

// Alert is the temporary alert effect of a light.
type Alert int

const (
	AlertNone Alert = iota + 1
	AlertSelect
	AlertLSelect
)

// Effect is the dynamic effect of a light.
type Effect int

const (
	EffectNone Effect = iota + 1
	EffectColorLoop
)

var (
	colorModes = newVocabulary(map[ColorMode]string{
		ColorModeHueSat:           "hs",
		ColorModeCieXY:            "xy",
		ColorModeColorTemperature: "ct",
	})
	alerts = newVocabulary(map[Alert]string{
		AlertNone:    "none",
		AlertSelect:  "select",
		AlertLSelect: "lselect",
	})
	effects = newVocabulary(map[Effect]string{
		EffectNone:      "none",
		EffectColorLoop: "colorloop",
	})
)

var (
	ColorModeCodec = colorModes.codec()
	AlertCodec     = alerts.codec()
	EffectCodec    = effects.codec()
)

func (m ColorMode) String() string { return colorModes.name(m, "ColorMode") }

func (a Alert) String() string { return alerts.name(a, "Alert") }

func (e Effect) String() string { return effects.name(e, "Effect") }

// ParseColorMode matches the wire token exactly.
func ParseColorMode(s string) (ColorMode, bool) { return colorModes.parse(s) }

func ParseAlert(s string) (Alert, bool) { return alerts.parse(s) }

func ParseEffect(s string) (Effect, bool) { return effects.parse(s) }

// vocabulary is a closed two-way table between variants and wire tokens.
type vocabulary[T ~int] struct {
	tokens   map[T]string
	variants map[string]T
}

func newVocabulary[T ~int](tokens map[T]string) vocabulary[T] {
	variants := make(map[string]T, len(tokens))
	for v, tok := range tokens {
		variants[tok] = v
	}
	return vocabulary[T]{tokens: tokens, variants: variants}
}

func (v vocabulary[T]) name(x T, typeName string) string {
	if tok, ok := v.tokens[x]; ok {
		return tok
	}
	return fmt.Sprintf("%s(%d)", typeName, x)
}

func (v vocabulary[T]) parse(s string) (T, bool) {
	x, ok := v.variants[s]
	return x, ok
}

// codec writes unknown variants as null, which no decoder accepts.
func (v vocabulary[T]) codec() codec.Codec[T] {
	return codec.Codec[T]{
		Encode: func(x T) codec.Value {
			tok, ok := v.tokens[x]
			if !ok {
				return codec.Null()
			}
			return codec.StringValue(tok)
		},
		Decode: func(raw codec.Value) (T, bool) {
			s, ok := raw.AsString()
			if !ok {
				var zero T
				return zero, false
			}
			return v.parse(s)
		},
	}
}
