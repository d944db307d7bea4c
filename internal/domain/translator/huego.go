// Package translator converts between the sparse light model and the types
// of github.com/amimof/huego.
package translator

import (
	"github.com/amimof/huego"

	"hue-rest-client/internal/domain/codec"
	"hue-rest-client/internal/domain/model"
)

// StateToHuego fills a huego.State from the fields that are set. huego has
// no notion of an unset field, so anything missing stays at its zero value.
func StateToHuego(s model.State) *huego.State {
	out := &huego.State{}
	if s.On != nil {
		out.On = *s.On
	}
	if s.Bri != nil {
		out.Bri = *s.Bri
	}
	if s.Hue != nil {
		out.Hue = *s.Hue
	}
	if s.Sat != nil {
		out.Sat = *s.Sat
	}
	if s.XY != nil {
		out.Xy = []float32{s.XY.X, s.XY.Y}
	}
	if s.CT != nil {
		out.Ct = *s.CT
	}
	if s.Alert != nil {
		out.Alert = token(*s.Alert, model.AlertCodec)
	}
	if s.Effect != nil {
		out.Effect = token(*s.Effect, model.EffectCodec)
	}
	if s.ColorMode != nil {
		out.ColorMode = token(*s.ColorMode, model.ColorModeCodec)
	}
	if s.Reachable != nil {
		out.Reachable = *s.Reachable
	}
	if s.TransitionTime != nil {
		out.TransitionTime = *s.TransitionTime
	}
	return out
}

// StateFromHuego is the reverse of StateToHuego. Booleans and numbers are
// always set since huego cannot tell zero from missing. Xy is set only with
// exactly two coordinates, and string fields only when they hold a known
// token.
func StateFromHuego(h *huego.State) model.State {
	if h == nil {
		return model.State{}
	}
	s := model.State{
		On:             model.Bool(h.On),
		Bri:            model.Uint8(h.Bri),
		Hue:            model.Uint16(h.Hue),
		Sat:            model.Uint8(h.Sat),
		CT:             model.Uint16(h.Ct),
		Reachable:      model.Bool(h.Reachable),
		TransitionTime: model.Uint16(h.TransitionTime),
	}
	if len(h.Xy) == 2 {
		s.XY = model.NewXY(h.Xy[0], h.Xy[1])
	}
	if a, ok := model.ParseAlert(h.Alert); ok {
		s.Alert = model.AlertPtr(a)
	}
	if e, ok := model.ParseEffect(h.Effect); ok {
		s.Effect = model.EffectPtr(e)
	}
	if m, ok := model.ParseColorMode(h.ColorMode); ok {
		s.ColorMode = model.ColorModePtr(m)
	}
	return s
}

func AttributesFromHuego(l *huego.Light) model.Attributes {
	if l == nil {
		return model.Attributes{}
	}
	return model.Attributes{
		State:     StateFromHuego(l.State),
		Type:      l.Type,
		Name:      l.Name,
		ModelID:   l.ModelID,
		SWVersion: l.SwVersion,
	}
}

// token returns the wire token of a known variant and "" otherwise.
func token[T any](v T, c codec.Codec[T]) string {
	s, _ := c.Encode(v).AsString()
	return s
}
