package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewUsersCommand creates the users command group.
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Work with users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "me",
		Short: "Show the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := newEngine(true)
			if err != nil {
				return err
			}
			defer cleanup()

			env, err := engine.Users().Me(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get current user: %w", err)
			}

			return outputEnvelope(env)
		},
	})

	return cmd
}

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Work with engine settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the engine settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := newEngine(true)
			if err != nil {
				return err
			}
			defer cleanup()

			env, err := engine.Settings().Load(context.Background())
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			return outputEnvelope(env)
		},
	})

	return cmd
}
