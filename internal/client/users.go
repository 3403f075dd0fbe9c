package client

import (
	"context"
	"io"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.UsersClient = (*UsersClient)(nil)

// UsersClient implements bsh.UsersClient.
type UsersClient struct {
	pipeline bsh.Pipeline
}

// NewUsersClient creates a new users client.
func NewUsersClient(pipeline bsh.Pipeline) *UsersClient {
	return &UsersClient{pipeline: pipeline}
}

// Me implements bsh.UsersClient.Me.
func (c *UsersClient) Me(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(constants.UsersBase+"/me", "user.me", nil, opts))
}

// Init implements bsh.UsersClient.Init.
func (c *UsersClient) Init(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(constants.UsersBase+"/init", "user.init", payload, opts))
}

// UpdateProfile implements bsh.UsersClient.UpdateProfile.
func (c *UsersClient) UpdateProfile(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Put(ctx, newRequest(constants.UsersBase+"/profile", "user.updateProfile", payload, opts))
}

// UpdatePicture implements bsh.UsersClient.UpdatePicture.
func (c *UsersClient) UpdatePicture(ctx context.Context, filename string, content io.Reader, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	if content == nil {
		return nil, bsh.ErrUploadRequired
	}

	form := &bsh.Form{
		Files: []bsh.FormFile{{Field: "picture", Filename: filename, Content: content}},
	}

	return c.pipeline.Post(ctx, newFormRequest(constants.UsersBase+"/picture", "user.updatePicture", form, opts))
}

// UpdatePassword implements bsh.UsersClient.UpdatePassword.
func (c *UsersClient) UpdatePassword(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Put(ctx, newRequest(constants.UsersBase+"/password", "user.updatePassword", payload, opts))
}

// GetByID implements bsh.UsersClient.GetByID.
func (c *UsersClient) GetByID(ctx context.Context, id string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return c.pipeline.Get(ctx, newRequest(joinID(constants.UsersBase, id), "user.getById", nil, opts))
}

// Search implements bsh.UsersClient.Search.
func (c *UsersClient) Search(ctx context.Context, search *bsh.Search, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(constants.UsersBase+"/search", "user.search", searchBody(search), opts))
}

// List implements bsh.UsersClient.List.
func (c *UsersClient) List(ctx context.Context, query map[string]string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(withQuery(constants.UsersBase, query), "user.list", nil, opts))
}

// Update implements bsh.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Put(ctx, newRequest(constants.UsersBase, "user.update", payload, opts))
}

// DeleteByID implements bsh.UsersClient.DeleteByID.
func (c *UsersClient) DeleteByID(ctx context.Context, id string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return c.pipeline.Delete(ctx, newRequest(joinID(constants.UsersBase, id), "user.deleteById", nil, opts))
}

// Count implements bsh.UsersClient.Count.
func (c *UsersClient) Count(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(constants.UsersBase+"/count", "user.count", nil, opts))
}

// CountFiltered implements bsh.UsersClient.CountFiltered.
func (c *UsersClient) CountFiltered(ctx context.Context, search *bsh.Search, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(constants.UsersBase+"/count", "user.countFiltered", searchBody(search), opts))
}
