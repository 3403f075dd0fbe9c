package bsh

import (
	"context"
	"io"
)

// Pipeline sends requests to the engine. JSON verbs return an envelope,
// Download returns raw bytes. A (nil, nil) result means a callback consumed
// the outcome.
type Pipeline interface {
	Get(ctx context.Context, req *Request) (*Envelope, error)
	Post(ctx context.Context, req *Request) (*Envelope, error)
	Put(ctx context.Context, req *Request) (*Envelope, error)
	Delete(ctx context.Context, req *Request) (*Envelope, error)
	Patch(ctx context.Context, req *Request) (*Envelope, error)
	Download(ctx context.Context, req *Request) ([]byte, error)
}

// EntityClient works with the records of one entity.
type EntityClient interface {
	Name() string
	FindByID(ctx context.Context, id string, opts ...CallOption) (*Envelope, error)
	Create(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	CreateMany(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	Update(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	UpdateMany(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	Search(ctx context.Context, search *Search, opts ...CallOption) (*Envelope, error)
	Delete(ctx context.Context, search *Search, opts ...CallOption) (*Envelope, error)
	DeleteByID(ctx context.Context, id string, opts ...CallOption) (*Envelope, error)
	Columns(ctx context.Context, opts ...CallOption) (*Envelope, error)
	Count(ctx context.Context, opts ...CallOption) (*Envelope, error)
	CountFiltered(ctx context.Context, search *Search, opts ...CallOption) (*Envelope, error)
	Export(ctx context.Context, search *Search, export *ExportOptions, opts ...CallOption) ([]byte, error)
}

// CoreEntities groups the clients for the engine's built-in entities.
type CoreEntities struct {
	Entities         EntityClient
	Schemas          EntityClient
	Types            EntityClient
	Users            EntityClient
	Policies         EntityClient
	Roles            EntityClient
	Files            EntityClient
	Configurations   EntityClient
	Emails           EntityClient
	EmailTemplates   EntityClient
	EventLogs        EntityClient
	Triggers         EntityClient
	TriggerInstances EntityClient
}

// AuthClient covers account authentication.
type AuthClient interface {
	Login(ctx context.Context, params *LoginParams, opts ...CallOption) (*Envelope, error)
	Register(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	RefreshToken(ctx context.Context, params *RefreshParams, opts ...CallOption) (*Envelope, error)
	ForgetPassword(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	ResetPassword(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	ActivateAccount(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
}

// UsersClient covers the current user and user administration.
type UsersClient interface {
	Me(ctx context.Context, opts ...CallOption) (*Envelope, error)
	Init(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	UpdateProfile(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	UpdatePicture(ctx context.Context, filename string, content io.Reader, opts ...CallOption) (*Envelope, error)
	UpdatePassword(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	GetByID(ctx context.Context, id string, opts ...CallOption) (*Envelope, error)
	Search(ctx context.Context, search *Search, opts ...CallOption) (*Envelope, error)
	List(ctx context.Context, query map[string]string, opts ...CallOption) (*Envelope, error)
	Update(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	DeleteByID(ctx context.Context, id string, opts ...CallOption) (*Envelope, error)
	Count(ctx context.Context, opts ...CallOption) (*Envelope, error)
	CountFiltered(ctx context.Context, search *Search, opts ...CallOption) (*Envelope, error)
}

// SettingsClient reads and writes the engine settings document.
type SettingsClient interface {
	Load(ctx context.Context, opts ...CallOption) (*Envelope, error)
	Update(ctx context.Context, payload map[string]any, opts ...CallOption) (*Envelope, error)
}

// ImagesClient uploads images.
type ImagesClient interface {
	Upload(ctx context.Context, upload *Upload, opts ...CallOption) (*Envelope, error)
}

// MailingClient sends mail through the engine.
type MailingClient interface {
	Send(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
}

// APIKeysClient manages engine API keys.
type APIKeysClient interface {
	Create(ctx context.Context, payload any, opts ...CallOption) (*Envelope, error)
	Details(ctx context.Context, id int, opts ...CallOption) (*Envelope, error)
	Revoke(ctx context.Context, id int, opts ...CallOption) (*Envelope, error)
	GetByID(ctx context.Context, id string, opts ...CallOption) (*Envelope, error)
	Search(ctx context.Context, search *Search, opts ...CallOption) (*Envelope, error)
	List(ctx context.Context, query map[string]string, opts ...CallOption) (*Envelope, error)
	DeleteByID(ctx context.Context, id string, opts ...CallOption) (*Envelope, error)
	Count(ctx context.Context, opts ...CallOption) (*Envelope, error)
	CountFiltered(ctx context.Context, search *Search, opts ...CallOption) (*Envelope, error)
}

// CachingClient manages the engine's server-side caches.
type CachingClient interface {
	FindByID(ctx context.Context, id string, opts ...CallOption) (*Envelope, error)
	Search(ctx context.Context, search *Search, opts ...CallOption) (*Envelope, error)
	Names(ctx context.Context, opts ...CallOption) (*Envelope, error)
	ClearByID(ctx context.Context, id string, opts ...CallOption) (*Envelope, error)
	ClearAll(ctx context.Context, opts ...CallOption) (*Envelope, error)
}

// UtilsClient lists trigger plugins and actions.
type UtilsClient interface {
	TriggerPlugins(ctx context.Context, opts ...CallOption) (*Envelope, error)
	TriggerActions(ctx context.Context, opts ...CallOption) (*Envelope, error)
}
