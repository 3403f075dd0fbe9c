package client

import (
	"context"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.CachingClient = (*CachingClient)(nil)

// CachingClient implements bsh.CachingClient.
type CachingClient struct {
	pipeline bsh.Pipeline
}

// NewCachingClient creates a new caching client.
func NewCachingClient(pipeline bsh.Pipeline) *CachingClient {
	return &CachingClient{pipeline: pipeline}
}

// FindByID implements bsh.CachingClient.FindByID.
func (c *CachingClient) FindByID(ctx context.Context, id string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return c.pipeline.Get(ctx, newRequest(joinID(constants.CachingBase, id), "caching.findById", nil, opts))
}

// Search implements bsh.CachingClient.Search.
func (c *CachingClient) Search(ctx context.Context, search *bsh.Search, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(constants.CachingBase+"/search", "caching.search", searchBody(search), opts))
}

// Names implements bsh.CachingClient.Names.
func (c *CachingClient) Names(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(constants.CachingBase+"/names", "caching.names", nil, opts))
}

// ClearByID implements bsh.CachingClient.ClearByID.
func (c *CachingClient) ClearByID(ctx context.Context, id string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return c.pipeline.Delete(ctx, newRequest(joinID(constants.CachingBase, id), "caching.clearById", nil, opts))
}

// ClearAll implements bsh.CachingClient.ClearAll.
func (c *CachingClient) ClearAll(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Delete(ctx, newRequest(constants.CachingBase+"/all", "caching.clearAll", nil, opts))
}
