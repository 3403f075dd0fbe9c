package client

import (
	"context"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.MailingClient = (*MailingClient)(nil)

// MailingClient implements bsh.MailingClient.
type MailingClient struct {
	pipeline bsh.Pipeline
}

// NewMailingClient creates a new mailing client.
func NewMailingClient(pipeline bsh.Pipeline) *MailingClient {
	return &MailingClient{pipeline: pipeline}
}

// Send implements bsh.MailingClient.Send.
func (c *MailingClient) Send(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(constants.MailingBase+"/send", "mailing.send", payload, opts))
}
