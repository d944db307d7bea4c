package bridge

import (
	"context"
	"net/url"

	"hue-rest-client/internal/domain/model"
	"hue-rest-client/internal/ports"
)

var _ ports.Lights = (*Client)(nil)

func lightPath(id string) string {
	return "/lights/" + url.PathEscape(id)
}

func (c *Client) GetAll(ctx context.Context) ([]model.LightEntry, bool) {
	return Get(ctx, c, "/lights", model.DecodeLights)
}

func (c *Client) GetAttributes(ctx context.Context, id string) (model.Attributes, bool) {
	return Get(ctx, c, lightPath(id), model.DecodeAttributes)
}

func (c *Client) SetState(ctx context.Context, id string, state model.State) (model.Status, bool) {
	if c.validateState {
		if err := model.ValidateState(state); err != nil {
			logFailure(c.activeLogger().With().Str("light", id).Logger(), fail(StageValidate, err))
			return model.Status{}, false
		}
	}
	return Put(ctx, c, lightPath(id)+"/state", state.Encode(), model.DecodeStatus)
}

func (c *Client) Rename(ctx context.Context, id, name string) (model.Status, bool) {
	return Put(ctx, c, lightPath(id), model.RenameBody(name), model.DecodeStatus)
}
