package ports

import (
	"context"

	"hue-rest-client/internal/domain/model"
)

// Lights is the light management surface of a bridge. A false second
// result means the call failed, whatever the cause.
type Lights interface {
	// GET /lights
	GetAll(ctx context.Context) ([]model.LightEntry, bool)

	// GET /lights/{id}
	GetAttributes(ctx context.Context, id string) (model.Attributes, bool)

	// PUT /lights/{id}/state
	SetState(ctx context.Context, id string, state model.State) (model.Status, bool)

	// PUT /lights/{id}
	Rename(ctx context.Context, id, name string) (model.Status, bool)
}
