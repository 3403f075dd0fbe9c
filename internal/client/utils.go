package client

import (
	"context"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.UtilsClient = (*UtilsClient)(nil)

// UtilsClient implements bsh.UtilsClient.
type UtilsClient struct {
	pipeline bsh.Pipeline
}

// NewUtilsClient creates a new utils client.
func NewUtilsClient(pipeline bsh.Pipeline) *UtilsClient {
	return &UtilsClient{pipeline: pipeline}
}

// TriggerPlugins implements bsh.UtilsClient.TriggerPlugins.
func (c *UtilsClient) TriggerPlugins(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(constants.UtilsBase+"/triggers/plugins", "utils.triggerPlugins", nil, opts))
}

// TriggerActions implements bsh.UtilsClient.TriggerActions.
func (c *UtilsClient) TriggerActions(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(constants.UtilsBase+"/triggers/actions", "utils.triggerActions", nil, opts))
}
