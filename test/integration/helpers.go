//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	Host     string
	APIKey   string
	Email    string
	Password string
	Entity   string
	BshPath  string
	Verbose  bool
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	entity := os.Getenv("BSH_IT_ENTITY")
	if entity == "" {
		entity = "BshRoles"
	}

	return &TestConfig{
		Host:     os.Getenv("BSH_IT_HOST"),
		APIKey:   os.Getenv("BSH_IT_API_KEY"),
		Email:    os.Getenv("BSH_IT_EMAIL"),
		Password: os.Getenv("BSH_IT_PASSWORD"),
		Entity:   entity,
		BshPath:  getBshPath(),
		Verbose:  os.Getenv("BSH_IT_VERBOSE") == "true",
	}
}

// getBshPath determines the path to the bsh binary.
func getBshPath() string {
	if path := os.Getenv("BSH_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../bsh",
		"./bsh",
		"../bsh",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "bsh"
}

// SkipIfMissingConfig skips the test unless an engine and a binary are available.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.Host == "" {
		t.Skip("BSH_IT_HOST not set, skipping integration test")
	}

	if config.APIKey == "" && config.Email == "" {
		t.Skip("neither BSH_IT_API_KEY nor BSH_IT_EMAIL set, skipping integration test")
	}

	if _, err := exec.LookPath(config.BshPath); err != nil {
		t.Skipf("bsh binary not found at %s, skipping integration test", config.BshPath)
	}
}

// CommandRunner runs bsh commands against an isolated config file.
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a runner whose config lives in a temp directory.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a bsh command and returns its output.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a bsh command with stdin input.
func (runner *CommandRunner) RunWithInput(input string, args ...string) (stdout, stderr string, err error) {
	full := append([]string{"--config", runner.configFile}, args...)

	// #nosec G204 -- the binary path comes from the test environment
	cmd := exec.Command(runner.config.BshPath, full...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BshPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// SetupHost stores the engine host in the runner's config file.
func (runner *CommandRunner) SetupHost() error {
	_, stderr, err := runner.Run("config", "set", "host", runner.config.Host)
	if err != nil {
		return fmt.Errorf("failed to set host: %s", stderr)
	}

	return nil
}

// Authenticate logs in with a password when one is configured, and stores
// the API key otherwise.
func (runner *CommandRunner) Authenticate() error {
	if runner.config.Email != "" && runner.config.Password != "" {
		_, stderr, err := runner.Run("login",
			"--email", runner.config.Email,
			"--password", runner.config.Password)
		if err != nil {
			return fmt.Errorf("failed to log in: %s", stderr)
		}

		return nil
	}

	_, stderr, err := runner.Run("config", "set", "api_key", runner.config.APIKey)
	if err != nil {
		return fmt.Errorf("failed to store API key: %s", stderr)
	}

	return nil
}

// GenerateTestName creates a unique test record name.
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CleanupRecord attempts to delete a test record.
func (runner *CommandRunner) CleanupRecord(entity, id string) {
	stdout, stderr, err := runner.Run("entities", "delete", entity, id)
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", entity, id, stdout, stderr)
	}
}

// DecodeJSONOutput parses JSON command output into an envelope map.
func DecodeJSONOutput(t *testing.T, output string) map[string]any {
	t.Helper()

	var decoded map[string]any

	require.NoError(t, json.Unmarshal([]byte(output), &decoded), "output is not JSON: %s", output)

	return decoded
}

// AssertYAMLOutput verifies command output is valid YAML.
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	var decoded map[string]any

	require.NoError(t, yaml.Unmarshal([]byte(output), &decoded), "output is not YAML: %s", output)
}
