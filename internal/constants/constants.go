package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExtendedHTTPTimeout is used for exports and uploads.
	ExtendedHTTPTimeout = 2 * time.Minute
)

// Retry limits. The engine does not retry unless asked to.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 0

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Headers and content types.
const (
	HeaderAuthorization = "Authorization"
	HeaderAPIKey        = "X-BSH-APIKEY"
	HeaderContentType   = "Content-Type"
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"
	HeaderRequestID     = "X-Request-Id"

	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	BearerPrefix = "Bearer "
)

// Client identity.
const (
	// DefaultUserAgent is sent when the caller does not override it.
	DefaultUserAgent = "bshengine-client-go/1.0"

	// TracerName is the instrumentation scope for spans.
	TracerName = "github.com/fivetwenty-io/bshengine-client"

	// MetricsNamespace prefixes every Prometheus series.
	MetricsNamespace = "bsh_client"

	// DefaultEventsSubject is the NATS subject prefix for call events.
	DefaultEventsSubject = "bsh.client.calls"
)

// Engine routes.
const (
	// AuthRoutePrefix marks paths that never carry credentials.
	AuthRoutePrefix = "/api/auth/"

	EntitiesBase = "/api/entities"
	AuthBase     = "/api/auth"
	UsersBase    = "/api/users"
	SettingsBase = "/api/settings"
	ImagesBase   = "/api/images"
	MailingBase  = "/api/mailing"
	APIKeysBase  = "/api/api-keys"
	CachingBase  = "/api/caching"
	UtilsBase    = "/api/utils"

	// SettingsName is merged into every settings update.
	SettingsName = "BshEngine"
)

// StatusOK is the status of an envelope synthesized from a non-envelope body.
const StatusOK = "ok"

// ExportDateLayout is used in default export file names.
const ExportDateLayout = "2006-01-02"

// UI and display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// StringTruncationLimit is how many characters of a secret stay visible.
	StringTruncationLimit = 4
)

// Output format constants.
const (
	// FormatTable for tabular output.
	FormatTable = "table"

	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"
)
