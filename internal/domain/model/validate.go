package model

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// stateSchema is the range table of the light state resource.
const stateSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"properties": {
		"on": {"type": "boolean"},
		"bri": {"type": "integer", "minimum": 0, "maximum": 255},
		"hue": {"type": "integer", "minimum": 0, "maximum": 65535},
		"sat": {"type": "integer", "minimum": 0, "maximum": 255},
		"xy": {
			"type": "array",
			"minItems": 2,
			"maxItems": 2,
			"items": {"type": "number", "minimum": 0, "maximum": 1}
		},
		"ct": {"type": "integer", "minimum": 153, "maximum": 500},
		"alert": {"enum": ["none", "select", "lselect"]},
		"effect": {"enum": ["none", "colorloop"]},
		"colormode": {"enum": ["hs", "xy", "ct"]},
		"reachable": {"type": "boolean"},
		"transitiontime": {"type": "integer", "minimum": 0, "maximum": 65535}
	}
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func stateValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(stateSchema)))
		if err != nil {
			compileErr = fmt.Errorf("failed to unmarshal schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("state.json", doc); err != nil {
			compileErr = fmt.Errorf("failed to add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("state.json")
	})
	return compiledSchema, compileErr
}

// ValidateState checks the set fields of s against the ranges the bridge
// accepts, for example ct within 153..500 and xy components within 0..1.
func ValidateState(s State) error {
	schema, err := stateValidator()
	if err != nil {
		return err
	}
	data, _ := s.MarshalJSON()
	payload, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return schema.Validate(payload)
}
