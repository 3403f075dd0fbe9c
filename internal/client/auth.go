package client

import (
	"context"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.AuthClient = (*AuthClient)(nil)

// AuthClient implements bsh.AuthClient. Its routes never carry credentials.
type AuthClient struct {
	pipeline bsh.Pipeline
}

// NewAuthClient creates a new auth client.
func NewAuthClient(pipeline bsh.Pipeline) *AuthClient {
	return &AuthClient{pipeline: pipeline}
}

// Login implements bsh.AuthClient.Login.
func (c *AuthClient) Login(ctx context.Context, params *bsh.LoginParams, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	if params == nil {
		params = &bsh.LoginParams{}
	}

	return c.post(ctx, "/login", "auth.login", params, opts)
}

// Register implements bsh.AuthClient.Register.
func (c *AuthClient) Register(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.post(ctx, "/register", "auth.register", payload, opts)
}

// RefreshToken implements bsh.AuthClient.RefreshToken.
func (c *AuthClient) RefreshToken(ctx context.Context, params *bsh.RefreshParams, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	if params == nil {
		params = &bsh.RefreshParams{}
	}

	return c.post(ctx, "/refresh", "auth.refreshToken", params, opts)
}

// ForgetPassword implements bsh.AuthClient.ForgetPassword.
func (c *AuthClient) ForgetPassword(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.post(ctx, "/forget-password", "auth.forgetPassword", payload, opts)
}

// ResetPassword implements bsh.AuthClient.ResetPassword.
func (c *AuthClient) ResetPassword(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.post(ctx, "/reset-password", "auth.resetPassword", payload, opts)
}

// ActivateAccount implements bsh.AuthClient.ActivateAccount.
func (c *AuthClient) ActivateAccount(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.post(ctx, "/activate-account", "auth.activateAccount", payload, opts)
}

func (c *AuthClient) post(ctx context.Context, route, operation string, payload any, opts []bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(constants.AuthBase+route, operation, payload, opts))
}
