package client

import (
	"context"
	"maps"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.SettingsClient = (*SettingsClient)(nil)

// SettingsClient implements bsh.SettingsClient.
type SettingsClient struct {
	pipeline bsh.Pipeline
}

// NewSettingsClient creates a new settings client.
func NewSettingsClient(pipeline bsh.Pipeline) *SettingsClient {
	return &SettingsClient{pipeline: pipeline}
}

// Load implements bsh.SettingsClient.Load.
func (c *SettingsClient) Load(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(constants.SettingsBase, "settings.load", nil, opts))
}

// Update implements bsh.SettingsClient.Update. The settings document name is
// always sent as BshEngine, whatever the payload says.
func (c *SettingsClient) Update(ctx context.Context, payload map[string]any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	body := make(map[string]any, len(payload)+1)
	maps.Copy(body, payload)
	body["name"] = constants.SettingsName

	return c.pipeline.Put(ctx, newRequest(constants.SettingsBase, "settings.update", body, opts))
}
