package commands_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/bshengine-client/cmd/bsh/commands"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func TestCommandGroups(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		cmd         *cobra.Command
		use         string
		subcommands []string
	}{
		{"config", commands.NewConfigCommand(), "config", []string{"show", "set"}},
		{"entities", commands.NewEntitiesCommand(), "entities", []string{"get", "create", "update", "delete", "search", "count", "columns", "export"}},
		{"users", commands.NewUsersCommand(), "users", []string{"me"}},
		{"settings", commands.NewSettingsCommand(), "settings", []string{"show"}},
		{"api-keys", commands.NewAPIKeysCommand(), "api-keys", []string{"list"}},
		{"caching", commands.NewCachingCommand(), "caching", []string{"names", "clear"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.use, tt.cmd.Use)

			for _, name := range tt.subcommands {
				assert.NotNil(t, findSubcommand(tt.cmd, name), "missing subcommand %s", name)
			}
		})
	}
}

func TestLoginCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("email"))
	assert.NotNil(t, cmd.Flags().Lookup("password"))
	assert.Equal(t, "e", cmd.Flags().Lookup("email").Shorthand)

	logout := commands.NewLogoutCommand()
	assert.Equal(t, "logout", logout.Use)
	assert.NotNil(t, logout.RunE)
}

func TestEntitiesCommandArgs(t *testing.T) {
	t.Parallel()

	entities := commands.NewEntitiesCommand()
	assert.Contains(t, entities.Aliases, "e")

	get := findSubcommand(entities, "get")
	require.NotNil(t, get)
	require.Error(t, get.Args(get, []string{"Orders"}))
	require.NoError(t, get.Args(get, []string{"Orders", "1"}))

	export := findSubcommand(entities, "export")
	require.NotNil(t, export)
	assert.Equal(t, "csv", export.Flags().Lookup("format").DefValue)
	assert.NotNil(t, export.Flags().Lookup("out"))
	assert.NotNil(t, export.Flags().Lookup("data"))

	create := findSubcommand(entities, "create")
	require.NotNil(t, create)
	assert.Equal(t, "create ENTITY", create.Use)
	assert.NotNil(t, create.Flags().Lookup("data"))

	del := findSubcommand(entities, "delete")
	require.NotNil(t, del)
	require.Error(t, del.Args(del, []string{"Orders"}))

	search := findSubcommand(entities, "search")
	require.NotNil(t, search)
	assert.NotNil(t, search.Flags().Lookup("page"))
	assert.NotNil(t, search.Flags().Lookup("file"))
}

func TestCachingClearArgs(t *testing.T) {
	t.Parallel()

	clearCmd := findSubcommand(commands.NewCachingCommand(), "clear")
	require.NotNil(t, clearCmd)
	require.NoError(t, clearCmd.Args(clearCmd, nil))
	require.NoError(t, clearCmd.Args(clearCmd, []string{"users"}))
	require.Error(t, clearCmd.Args(clearCmd, []string{"a", "b"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewVersionCommand("1.2.3", "abc", "2026-01-01")
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
