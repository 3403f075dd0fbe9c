package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
)

// Config represents the CLI configuration.
type Config struct {
	Host         string `json:"host,omitempty"          yaml:"host,omitempty"`
	APIKey       string `json:"api_key,omitempty"       yaml:"api_key,omitempty"`
	Token        string `json:"token,omitempty"         yaml:"token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	Email        string `json:"email,omitempty"         yaml:"email,omitempty"`
	Output       string `json:"output,omitempty"        yaml:"output,omitempty"`
}

// configKeys maps the keys accepted by 'config set' to their setters.
var configKeys = map[string]func(*Config, string) error{
	"host":          func(c *Config, v string) error { c.Host = v; return nil },
	"api_key":       func(c *Config, v string) error { c.APIKey = v; return nil },
	"token":         func(c *Config, v string) error { c.Token = v; return nil },
	"refresh_token": func(c *Config, v string) error { c.RefreshToken = v; return nil },
	"email":         func(c *Config, v string) error { c.Email = v; return nil },
	"output": func(c *Config, v string) error {
		err := validateOutputFormat(v)
		if err != nil {
			return err
		}

		c.Output = v

		return nil
	},
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the BSH CLI configuration",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := maskedConfig(loadConfig())

			switch viper.GetString("output") {
			case constants.FormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")

				return encoder.Encode(config)
			case constants.FormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)

				return encoder.Encode(config)
			default:
				return displayConfigTable(config)
			}
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of: host, api_key, token, refresh_token, email, output",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			if value == "" {
				return fmt.Errorf("%w: %s", constants.ErrConfigValueNeeded, key)
			}

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}

func setConfigValue(config *Config, key, value string) error {
	setter, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("%w: %s", constants.ErrConfigKeyUnknown, key)
	}

	return setter(config, value)
}

func loadConfig() *Config {
	return &Config{
		Host:         viper.GetString("host"),
		APIKey:       viper.GetString("api_key"),
		Token:        viper.GetString("token"),
		RefreshToken: viper.GetString("refresh_token"),
		Email:        viper.GetString("email"),
		Output:       viper.GetString("output"),
	}
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".bsh", "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep the in-memory view in step with the file.
	viper.Set("host", config.Host)
	viper.Set("api_key", config.APIKey)
	viper.Set("token", config.Token)
	viper.Set("refresh_token", config.RefreshToken)
	viper.Set("email", config.Email)

	return nil
}

func maskedConfig(config *Config) *Config {
	masked := *config
	masked.APIKey = maskSecret(config.APIKey)
	masked.Token = maskSecret(config.Token)
	masked.RefreshToken = maskSecret(config.RefreshToken)

	return &masked
}

func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}

	if len(secret) <= constants.StringTruncationLimit {
		return constants.MaskedSecret
	}

	return secret[:constants.StringTruncationLimit] + constants.MaskedSecret
}

func displayConfigTable(config *Config) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append([]string{"Host", valueOrNA(config.Host)})
	_ = table.Append([]string{"API Key", valueOrNA(config.APIKey)})
	_ = table.Append([]string{"Token", valueOrNA(config.Token)})
	_ = table.Append([]string{"Refresh Token", valueOrNA(config.RefreshToken)})
	_ = table.Append([]string{"Email", valueOrNA(config.Email)})
	_ = table.Append([]string{"Output", valueOrNA(config.Output)})

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func valueOrNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}
