package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

// NewCachingCommand creates the caching command group.
func NewCachingCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "caching",
		Short: "Manage server-side caches",
	}

	cmd.AddCommand(newCachingNamesCommand())
	cmd.AddCommand(newCachingClearCommand())

	return cmd
}

func newCachingNamesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List cache names",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := newEngine(true)
			if err != nil {
				return err
			}
			defer cleanup()

			env, err := engine.Caching().Names(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list caches: %w", err)
			}

			return outputEnvelope(env)
		},
	}
}

func newCachingClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [NAME]",
		Short: "Clear one cache, or all caches when no name is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := newEngine(true)
			if err != nil {
				return err
			}
			defer cleanup()

			var env *bsh.Envelope

			if len(args) == 1 {
				env, err = engine.Caching().ClearByID(context.Background(), args[0])
			} else {
				env, err = engine.Caching().ClearAll(context.Background())
			}

			if err != nil {
				return fmt.Errorf("failed to clear cache: %w", err)
			}

			return outputEnvelope(env)
		},
	}
}
