package model

import "hue-rest-client/internal/domain/codec"

// LightEntry pairs a light id with its attributes.
type LightEntry struct {
	ID         string
	Attributes Attributes
}

// DecodeLights reads the id-keyed object returned by GET /lights. Entries
// come back sorted by id. One undecodable light fails the whole list.
func DecodeLights(v codec.Value) ([]LightEntry, bool) {
	obj, ok := v.AsObject()
	if !ok {
		return nil, false
	}
	lights := make([]LightEntry, 0, len(obj))
	for _, id := range obj.Keys() {
		attrs, ok := DecodeAttributes(obj[id])
		if !ok {
			return nil, false
		}
		lights = append(lights, LightEntry{ID: id, Attributes: attrs})
	}
	return lights, true
}

// RenameBody is the request body for PUT /lights/{id}.
func RenameBody(name string) codec.Value {
	return codec.ObjectValue(codec.Object{"name": codec.StringValue(name)})
}
