package model

import (
	"strings"

	"hue-rest-client/internal/domain/codec"
)

// Status is the result envelope the bridge returns for mutations. On
// success Value echoes what was written as "path=value"; on failure it is
// the bridge's error description, and Type and Address carry the error
// code and resource path when the bridge sent them.
type Status struct {
	Success bool
	Value   string
	Type    int
	Address string
}

// DecodeStatus accepts a single {"success":…} or {"error":…} object, or a
// list of them, in which case only the first entry is read.
func DecodeStatus(v codec.Value) (Status, bool) {
	if items, ok := v.AsArray(); ok {
		if len(items) == 0 {
			return Status{}, false
		}
		v = items[0]
	}

	obj, ok := v.AsObject()
	if !ok {
		return Status{}, false
	}
	if body, ok := obj["success"]; ok {
		return Status{Success: true, Value: describe(body)}, true
	}
	if body, ok := obj["error"]; ok {
		return decodeError(body), true
	}
	return Status{}, false
}

func decodeError(body codec.Value) Status {
	st := Status{Value: body.String()}
	obj, ok := body.AsObject()
	if !ok {
		return st
	}
	if desc, ok := codec.Require(obj, "description", codec.String.Decode); ok {
		st.Value = desc
	}
	if code, ok := codec.Require(obj, "type", codec.Uint16.Decode); ok {
		st.Type = int(code)
	}
	if addr, ok := codec.Require(obj, "address", codec.String.Decode); ok {
		st.Address = addr
	}
	return st
}

// describe renders {"/a":true,"/b":"x"} as "/a=true,/b=x".
func describe(body codec.Value) string {
	obj, ok := body.AsObject()
	if !ok {
		return plain(body)
	}
	parts := make([]string, 0, len(obj))
	for _, k := range obj.Keys() {
		parts = append(parts, k+"="+plain(obj[k]))
	}
	return strings.Join(parts, ",")
}

func plain(v codec.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}
	return v.String()
}
