package model

import (
	"fmt"

	"hue-rest-client/internal/domain/codec"
)

// PointSymbol is reserved by the bridge and carries no data.
type PointSymbol struct{}

// Attributes describes one light as returned by GET /lights/{id}. It is
// only ever received, never sent.
type Attributes struct {
	State       State
	Type        string
	Name        string
	ModelID     string
	SWVersion   string
	PointSymbol PointSymbol
}

// DecodeAttributes needs every one of state, type, name, modelid and
// swversion; pointsymbol is not read.
func DecodeAttributes(v codec.Value) (Attributes, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return Attributes{}, false
	}

	var a Attributes
	if a.State, ok = codec.Require(obj, "state", DecodeState); !ok {
		return Attributes{}, false
	}
	if a.Type, ok = codec.Require(obj, "type", codec.String.Decode); !ok {
		return Attributes{}, false
	}
	if a.Name, ok = codec.Require(obj, "name", codec.String.Decode); !ok {
		return Attributes{}, false
	}
	if a.ModelID, ok = codec.Require(obj, "modelid", codec.String.Decode); !ok {
		return Attributes{}, false
	}
	if a.SWVersion, ok = codec.Require(obj, "swversion", codec.String.Decode); !ok {
		return Attributes{}, false
	}
	return a, true
}

func (a *Attributes) UnmarshalJSON(data []byte) error {
	v, err := codec.Parse(data)
	if err != nil {
		return err
	}
	// null leaves the receiver untouched, as encoding/json does.
	if v.IsNull() {
		return nil
	}
	decoded, ok := DecodeAttributes(v)
	if !ok {
		return &DecodeError{Type: "Attributes", Kind: v.Kind()}
	}
	*a = decoded
	return nil
}

// DecodeError is returned by the json.Unmarshaler implementations when the
// document does not have the expected shape.
type DecodeError struct {
	Type string
	Kind codec.Kind
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: unexpected json %s", e.Type, e.Kind)
}
