package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.ImagesClient = (*ImagesClient)(nil)

// ImagesClient implements bsh.ImagesClient.
type ImagesClient struct {
	pipeline bsh.Pipeline
}

// NewImagesClient creates a new images client.
func NewImagesClient(pipeline bsh.Pipeline) *ImagesClient {
	return &ImagesClient{pipeline: pipeline}
}

// Upload implements bsh.ImagesClient.Upload.
func (c *ImagesClient) Upload(ctx context.Context, upload *bsh.Upload, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	if upload == nil || upload.Content == nil {
		return nil, bsh.ErrUploadRequired
	}

	fields := map[string]string{}

	if upload.Namespace != "" {
		fields["namespace"] = upload.Namespace
	}

	if upload.AssetID != "" {
		fields["assetId"] = upload.AssetID
	}

	if upload.Options != nil {
		options, err := json.Marshal(upload.Options)
		if err != nil {
			return nil, fmt.Errorf("encoding image options: %w", err)
		}

		fields["options"] = string(options)
	}

	form := &bsh.Form{
		Fields: fields,
		Files:  []bsh.FormFile{{Field: "file", Filename: upload.Filename, Content: upload.Content}},
	}

	return c.pipeline.Post(ctx, newFormRequest(constants.ImagesBase+"/upload", "image.upload", form, opts))
}
