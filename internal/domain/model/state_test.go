package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hue-rest-client/internal/domain/codec"
)

func TestEncodeState(t *testing.T) {
	state := State{}
	assert.Equal(t, `{}`, state.Encode().String())
	assert.True(t, state.IsEmpty())

	state.On = Bool(true)
	assert.Equal(t, `{"on":true}`, state.Encode().String())

	state.Bri = Uint8(100)
	assert.Equal(t, `{"bri":100,"on":true}`, state.Encode().String())

	state.Bri = nil
	state.On = Bool(false)
	assert.Equal(t, `{"on":false}`, state.Encode().String())
	assert.False(t, state.IsEmpty())
}

func TestEncodeState_ZeroIsNotUnset(t *testing.T) {
	state := State{Bri: Uint8(0), Hue: Uint16(0), On: Bool(false)}
	assert.Equal(t, `{"bri":0,"hue":0,"on":false}`, state.Encode().String())
}

func TestEncodeState_FieldGating(t *testing.T) {
	full := fullState()
	fields := []struct {
		key   string
		unset func(*State)
	}{
		{"on", func(s *State) { s.On = nil }},
		{"bri", func(s *State) { s.Bri = nil }},
		{"hue", func(s *State) { s.Hue = nil }},
		{"sat", func(s *State) { s.Sat = nil }},
		{"xy", func(s *State) { s.XY = nil }},
		{"ct", func(s *State) { s.CT = nil }},
		{"alert", func(s *State) { s.Alert = nil }},
		{"effect", func(s *State) { s.Effect = nil }},
		{"colormode", func(s *State) { s.ColorMode = nil }},
		{"reachable", func(s *State) { s.Reachable = nil }},
		{"transitiontime", func(s *State) { s.TransitionTime = nil }},
	}

	all := make([]string, 0, len(fields))
	for _, f := range fields {
		all = append(all, f.key)
	}
	obj, ok := full.Encode().AsObject()
	require.True(t, ok)
	assert.ElementsMatch(t, all, obj.Keys())

	for _, f := range fields {
		t.Run(f.key, func(t *testing.T) {
			s := fullState()
			f.unset(&s)
			obj, ok := s.Encode().AsObject()
			require.True(t, ok)
			assert.NotContains(t, obj.Keys(), f.key)
			assert.Len(t, obj, len(fields)-1)
		})
	}
}

func TestEncodeState_AllFields(t *testing.T) {
	assert.Equal(t,
		`{"alert":"lselect","bri":254,"colormode":"xy","ct":366,"effect":"colorloop","hue":46920,`+
			`"on":true,"reachable":true,"sat":200,"transitiontime":4,"xy":[0.3227,0.329]}`,
		fullState().Encode().String())
}

func TestStateRoundTrip(t *testing.T) {
	for _, s := range []State{{}, fullState(), {On: Bool(false), CT: Uint16(153)}, {XY: NewXY(0, 1)}} {
		v, err := codec.Parse([]byte(s.Encode().String()))
		require.NoError(t, err)
		got, ok := DecodeState(v)
		require.True(t, ok)
		assert.Equal(t, s, got)
	}
}

func TestDecodeState_BridgeSample(t *testing.T) {
	v := mustParse(t, `{
		"on": true,
		"bri": 144,
		"hue": 13088,
		"sat": 212,
		"xy": [0.5128, 0.4147],
		"ct": 467,
		"alert": "none",
		"effect": "none",
		"colormode": "xy",
		"reachable": true
	}`)

	s, ok := DecodeState(v)
	require.True(t, ok)
	assert.Equal(t, Bool(true), s.On)
	assert.Equal(t, Uint8(144), s.Bri)
	assert.Equal(t, Uint16(13088), s.Hue)
	assert.Equal(t, Uint8(212), s.Sat, "sat is read from its own key")
	assert.Equal(t, NewXY(0.5128, 0.4147), s.XY)
	assert.Equal(t, Uint16(467), s.CT)
	assert.Equal(t, AlertPtr(AlertNone), s.Alert)
	assert.Equal(t, EffectPtr(EffectNone), s.Effect)
	assert.Equal(t, ColorModePtr(ColorModeCieXY), s.ColorMode)
	assert.Equal(t, Bool(true), s.Reachable)
	assert.Nil(t, s.TransitionTime)
}

func TestDecodeState_MissingKeysAreUnset(t *testing.T) {
	s, ok := DecodeState(mustParse(t, `{}`))
	require.True(t, ok)
	assert.Equal(t, State{}, s)
}

func TestDecodeState_BadFieldsAreUnset(t *testing.T) {
	s, ok := DecodeState(mustParse(t, `{
		"on": "yes",
		"bri": 300,
		"hue": 70000,
		"sat": -1,
		"xy": [0.1],
		"ct": 2.5,
		"alert": "blink",
		"effect": "ColorLoop",
		"colormode": null,
		"reachable": 1,
		"transitiontime": 10
	}`))
	require.True(t, ok)
	assert.Equal(t, State{TransitionTime: Uint16(10)}, s)
}

func TestDecodeState_UnknownKeysIgnored(t *testing.T) {
	plain, ok := DecodeState(mustParse(t, `{"on":true,"bri":10}`))
	require.True(t, ok)

	extra, ok := DecodeState(mustParse(t, `{"on":true,"bri":10,"mode":"homeautomation","scene":"abc","bri_inc":5}`))
	require.True(t, ok)
	assert.Equal(t, plain, extra)
}

func TestDecodeState_NotAnObject(t *testing.T) {
	for _, text := range []string{`[]`, `null`, `"on"`, `1`, `true`} {
		_, ok := DecodeState(mustParse(t, text))
		assert.False(t, ok, text)
	}
}

func TestState_JSONInterfaces(t *testing.T) {
	data, err := json.Marshal(struct {
		State State `json:"state"`
	}{State: State{On: Bool(true), Bri: Uint8(100)}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":{"bri":100,"on":true}}`, string(data))

	var s State
	require.NoError(t, json.Unmarshal([]byte(`{"ct":300,"unknown":1}`), &s))
	assert.Equal(t, State{CT: Uint16(300)}, s)

	var de *DecodeError
	err = json.Unmarshal([]byte(`[1,2]`), &s)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "State", de.Type)
}

func TestState_UnmarshalNull(t *testing.T) {
	s := State{On: Bool(true)}
	require.NoError(t, json.Unmarshal([]byte(`null`), &s))
	assert.Equal(t, State{On: Bool(true)}, s)

	var wrapped struct {
		State *State `json:"state"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"state":null}`), &wrapped))
	assert.Nil(t, wrapped.State)
}

func fullState() State {
	return State{
		On:             Bool(true),
		Bri:            Uint8(254),
		Hue:            Uint16(46920),
		Sat:            Uint8(200),
		XY:             NewXY(0.3227, 0.329),
		CT:             Uint16(366),
		Alert:          AlertPtr(AlertLSelect),
		Effect:         EffectPtr(EffectColorLoop),
		ColorMode:      ColorModePtr(ColorModeCieXY),
		Reachable:      Bool(true),
		TransitionTime: Uint16(4),
	}
}

func mustParse(t *testing.T, text string) codec.Value {
	t.Helper()
	v, err := codec.Parse([]byte(text))
	require.NoError(t, err)
	return v
}
