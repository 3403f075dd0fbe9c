package bsh

import "io"

// Core entity names.
const (
	EntityBshEntities         = "BshEntities"
	EntityBshSchemas          = "BshSchemas"
	EntityBshTypes            = "BshTypes"
	EntityBshUsers            = "BshUsers"
	EntityBshPolicies         = "BshPolicies"
	EntityBshRoles            = "BshRoles"
	EntityBshFiles            = "BshFiles"
	EntityBshConfigurations   = "BshConfigurations"
	EntityBshEmails           = "BshEmails"
	EntityBshEmailTemplates   = "BshEmailTemplates"
	EntityBshEventLogs        = "BshEventLogs"
	EntityBshTriggers         = "BshTriggers"
	EntityBshTriggerInstances = "BshTriggerInstances"
)

// LoginParams is the body of auth.login.
type LoginParams struct {
	Email    string `json:"email"    yaml:"email"`
	Password string `json:"password" yaml:"password"`
}

// AuthTokens is the data element returned by auth.login and auth.refreshToken.
type AuthTokens struct {
	Access  string `json:"access"            yaml:"access"`
	Refresh string `json:"refresh,omitempty" yaml:"refresh,omitempty"`
}

// RefreshParams is the body of auth.refreshToken.
type RefreshParams struct {
	Refresh string `json:"refresh" yaml:"refresh"`
}

// ExportFormat selects the file type produced by an entity export.
type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "excel"
	ExportJSON  ExportFormat = "json"
)

// Extension returns the file extension for the format.
func (f ExportFormat) Extension() string {
	if f == ExportExcel {
		return "xlsx"
	}

	return string(f)
}

// ExportOptions controls an entity export. Empty fields use defaults:
// csv, and a file name derived from the entity and today's date.
type ExportOptions struct {
	Format   ExportFormat
	Filename string
	// Method overrides the download verb, which defaults to GET.
	Method string
}

// Upload is an image upload.
type Upload struct {
	Filename  string
	Content   io.Reader
	Namespace string
	AssetID   string
	Options   map[string]any
}
