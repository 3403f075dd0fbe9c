package client

import (
	"context"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.APIKeysClient = (*APIKeysClient)(nil)

// APIKeysClient implements bsh.APIKeysClient.
type APIKeysClient struct {
	pipeline bsh.Pipeline
}

// NewAPIKeysClient creates a new API keys client.
func NewAPIKeysClient(pipeline bsh.Pipeline) *APIKeysClient {
	return &APIKeysClient{pipeline: pipeline}
}

// Create implements bsh.APIKeysClient.Create.
func (c *APIKeysClient) Create(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(constants.APIKeysBase, "api-key.create", payload, opts))
}

// Details implements bsh.APIKeysClient.Details.
func (c *APIKeysClient) Details(ctx context.Context, id int, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(joinIntID(constants.APIKeysBase, id), "api-key.details", nil, opts))
}

// Revoke implements bsh.APIKeysClient.Revoke.
func (c *APIKeysClient) Revoke(ctx context.Context, id int, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Delete(ctx, newRequest(joinIntID(constants.APIKeysBase, id)+"/revoke", "api-key.revoke", nil, opts))
}

// GetByID implements bsh.APIKeysClient.GetByID.
func (c *APIKeysClient) GetByID(ctx context.Context, id string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return c.pipeline.Get(ctx, newRequest(joinID(constants.APIKeysBase, id), "api-key.getById", nil, opts))
}

// Search implements bsh.APIKeysClient.Search.
func (c *APIKeysClient) Search(ctx context.Context, search *bsh.Search, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(constants.APIKeysBase+"/search", "api-key.search", searchBody(search), opts))
}

// List implements bsh.APIKeysClient.List.
func (c *APIKeysClient) List(ctx context.Context, query map[string]string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(withQuery(constants.APIKeysBase, query), "api-key.list", nil, opts))
}

// DeleteByID implements bsh.APIKeysClient.DeleteByID.
func (c *APIKeysClient) DeleteByID(ctx context.Context, id string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return c.pipeline.Delete(ctx, newRequest(joinID(constants.APIKeysBase, id), "api-key.deleteById", nil, opts))
}

// Count implements bsh.APIKeysClient.Count.
func (c *APIKeysClient) Count(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(constants.APIKeysBase+"/count", "api-key.count", nil, opts))
}

// CountFiltered implements bsh.APIKeysClient.CountFiltered.
func (c *APIKeysClient) CountFiltered(ctx context.Context, search *bsh.Search, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(constants.APIKeysBase+"/count", "api-key.countFiltered", searchBody(search), opts))
}
