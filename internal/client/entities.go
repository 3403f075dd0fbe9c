package client

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

var _ bsh.EntityClient = (*EntityClient)(nil)

// EntityClient implements bsh.EntityClient for one named entity.
type EntityClient struct {
	pipeline bsh.Pipeline
	name     string
	base     string
	now      func() time.Time
}

// NewEntityClient creates a client for the entity called name.
func NewEntityClient(pipeline bsh.Pipeline, name string) (*EntityClient, error) {
	if name == "" {
		return nil, bsh.ErrEntityNameRequired
	}

	return &EntityClient{
		pipeline: pipeline,
		name:     name,
		base:     constants.EntitiesBase + "/" + url.PathEscape(name),
		now:      time.Now,
	}, nil
}

// NewCoreEntities creates clients for the engine's built-in entities.
func NewCoreEntities(pipeline bsh.Pipeline) *bsh.CoreEntities {
	entity := func(name string) bsh.EntityClient {
		// Names are non-empty constants.
		c, _ := NewEntityClient(pipeline, name)

		return c
	}

	return &bsh.CoreEntities{
		Entities:         entity(bsh.EntityBshEntities),
		Schemas:          entity(bsh.EntityBshSchemas),
		Types:            entity(bsh.EntityBshTypes),
		Users:            entity(bsh.EntityBshUsers),
		Policies:         entity(bsh.EntityBshPolicies),
		Roles:            entity(bsh.EntityBshRoles),
		Files:            entity(bsh.EntityBshFiles),
		Configurations:   entity(bsh.EntityBshConfigurations),
		Emails:           entity(bsh.EntityBshEmails),
		EmailTemplates:   entity(bsh.EntityBshEmailTemplates),
		EventLogs:        entity(bsh.EntityBshEventLogs),
		Triggers:         entity(bsh.EntityBshTriggers),
		TriggerInstances: entity(bsh.EntityBshTriggerInstances),
	}
}

// Name implements bsh.EntityClient.Name.
func (c *EntityClient) Name() string {
	return c.name
}

func (c *EntityClient) operation(op string) string {
	return "entities." + c.name + "." + op
}

// FindByID implements bsh.EntityClient.FindByID.
func (c *EntityClient) FindByID(ctx context.Context, id string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return c.pipeline.Get(ctx, newRequest(joinID(c.base, id), c.operation("findById"), nil, opts))
}

// Create implements bsh.EntityClient.Create.
func (c *EntityClient) Create(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(c.base, c.operation("create"), payload, opts))
}

// CreateMany implements bsh.EntityClient.CreateMany.
func (c *EntityClient) CreateMany(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(c.base+"/batch", c.operation("createMany"), payload, opts))
}

// Update implements bsh.EntityClient.Update.
func (c *EntityClient) Update(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Put(ctx, newRequest(c.base, c.operation("update"), payload, opts))
}

// UpdateMany implements bsh.EntityClient.UpdateMany.
func (c *EntityClient) UpdateMany(ctx context.Context, payload any, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Put(ctx, newRequest(c.base+"/batch", c.operation("updateMany"), payload, opts))
}

// Search implements bsh.EntityClient.Search.
func (c *EntityClient) Search(ctx context.Context, search *bsh.Search, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(c.base+"/search", c.operation("search"), searchBody(search), opts))
}

// Delete implements bsh.EntityClient.Delete. It removes every record the
// search matches.
func (c *EntityClient) Delete(ctx context.Context, search *bsh.Search, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(c.base+"/delete", c.operation("delete"), searchBody(search), opts))
}

// DeleteByID implements bsh.EntityClient.DeleteByID.
func (c *EntityClient) DeleteByID(ctx context.Context, id string, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	err := requireID(id)
	if err != nil {
		return nil, err
	}

	return c.pipeline.Delete(ctx, newRequest(joinID(c.base, id), c.operation("deleteById"), nil, opts))
}

// Columns implements bsh.EntityClient.Columns.
func (c *EntityClient) Columns(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(c.base+"/columns", c.operation("columns"), nil, opts))
}

// Count implements bsh.EntityClient.Count.
func (c *EntityClient) Count(ctx context.Context, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Get(ctx, newRequest(c.base+"/count", c.operation("count"), nil, opts))
}

// CountFiltered implements bsh.EntityClient.CountFiltered.
func (c *EntityClient) CountFiltered(ctx context.Context, search *bsh.Search, opts ...bsh.CallOption) (*bsh.Envelope, error) {
	return c.pipeline.Post(ctx, newRequest(c.base+"/count", c.operation("countBySearch"), searchBody(search), opts))
}

// Export implements bsh.EntityClient.Export. The search travels as the body
// of the download request.
func (c *EntityClient) Export(ctx context.Context, search *bsh.Search, export *bsh.ExportOptions, opts ...bsh.CallOption) ([]byte, error) {
	format := bsh.ExportCSV
	filename := ""
	method := ""

	if export != nil {
		if export.Format != "" {
			format = export.Format
		}

		filename = export.Filename
		method = export.Method
	}

	if filename == "" {
		filename = c.exportFilename(format)
	}

	query := url.Values{}
	query.Set("format", string(format))
	query.Set("filename", filename)

	req := newRequest(c.base+"/export?"+query.Encode(), c.operation("export"), searchBody(search), opts)
	req.Method = method

	data, err := c.pipeline.Download(ctx, req)
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (c *EntityClient) exportFilename(format bsh.ExportFormat) string {
	return fmt.Sprintf("%s_export_%s.%s", c.name, c.now().Format(constants.ExportDateLayout), format.Extension())
}
