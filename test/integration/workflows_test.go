//go:build integration

package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRunner(t *testing.T) *CommandRunner {
	t.Helper()

	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)
	require.NoError(t, runner.SetupHost())
	require.NoError(t, runner.Authenticate())

	return runner
}

// TestWorkflow_ConfigRoundTrip checks that stored settings are shown masked.
func TestWorkflow_ConfigRoundTrip(t *testing.T) {
	runner := setupRunner(t)

	stdout, stderr, err := runner.Run("config", "show", "--output", "json")
	require.NoError(t, err, "Failed to show config: %s", stderr)

	config := DecodeJSONOutput(t, stdout)
	assert.Equal(t, runner.config.Host, config["host"])

	if runner.config.APIKey != "" && runner.config.Email == "" {
		assert.NotEqual(t, runner.config.APIKey, config["api_key"])
	}
}

// TestWorkflow_ReadEntity walks the read-only entity commands.
func TestWorkflow_ReadEntity(t *testing.T) {
	runner := setupRunner(t)
	entity := runner.config.Entity

	// 1. Columns
	stdout, stderr, err := runner.Run("entities", "columns", entity, "--output", "json")
	require.NoError(t, err, "Failed to list columns: %s", stderr)
	assert.NotEmpty(t, DecodeJSONOutput(t, stdout)["data"])

	// 2. Count
	stdout, stderr, err = runner.Run("entities", "count", entity, "--output", "json")
	require.NoError(t, err, "Failed to count: %s", stderr)
	assert.InDelta(t, 200, DecodeJSONOutput(t, stdout)["code"], 0)

	// 3. Paged search in YAML
	stdout, stderr, err = runner.Run("entities", "search", entity, "--page", "1", "--size", "5", "--output", "yaml")
	require.NoError(t, err, "Failed to search: %s", stderr)
	AssertYAMLOutput(t, stdout)

	// 4. Table output
	_, stderr, err = runner.Run("entities", "search", entity, "--size", "5")
	require.NoError(t, err, "Failed to render table: %s", stderr)

	// 5. Missing record
	_, _, err = runner.Run("entities", "get", entity, GenerateTestName("missing"))
	require.Error(t, err)
}

// TestWorkflow_Export downloads an export to a local file.
func TestWorkflow_Export(t *testing.T) {
	runner := setupRunner(t)

	out := filepath.Join(t.TempDir(), "export.csv")

	_, stderr, err := runner.Run("entities", "export", runner.config.Entity, "--format", "csv", "--out", out)
	require.NoError(t, err, "Failed to export: %s", stderr)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

// TestWorkflow_CurrentUserAndCaches covers the account and cache commands.
func TestWorkflow_CurrentUserAndCaches(t *testing.T) {
	runner := setupRunner(t)

	stdout, stderr, err := runner.Run("users", "me", "--output", "json")
	require.NoError(t, err, "Failed to get current user: %s", stderr)
	assert.NotEmpty(t, DecodeJSONOutput(t, stdout)["data"])

	_, stderr, err = runner.Run("caching", "names")
	require.NoError(t, err, "Failed to list caches: %s", stderr)

	_, stderr, err = runner.Run("settings", "show", "--output", "yaml")
	require.NoError(t, err, "Failed to show settings: %s", stderr)
}

// TestWorkflow_Logout clears stored credentials.
func TestWorkflow_Logout(t *testing.T) {
	runner := setupRunner(t)

	_, stderr, err := runner.Run("logout")
	require.NoError(t, err, "Failed to log out: %s", stderr)

	if runner.config.Email != "" {
		_, _, err = runner.Run("users", "me")
		require.Error(t, err)
	}
}
