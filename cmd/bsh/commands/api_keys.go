package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewAPIKeysCommand creates the api-keys command group.
func NewAPIKeysCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "api-keys",
		Aliases: []string{"apikeys"},
		Short:   "Manage API keys",
	}

	cmd.AddCommand(newAPIKeysListCommand())

	return cmd
}

func newAPIKeysListCommand() *cobra.Command {
	var (
		page int
		size int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List API keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := newEngine(true)
			if err != nil {
				return err
			}
			defer cleanup()

			query := map[string]string{}

			if page > 0 {
				query["page"] = strconv.Itoa(page)
			}

			if size > 0 {
				query["size"] = strconv.Itoa(size)
			}

			env, err := engine.APIKeys().List(context.Background(), query)
			if err != nil {
				return fmt.Errorf("failed to list API keys: %w", err)
			}

			return outputEnvelope(env)
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&size, "size", 0, "page size")

	return cmd
}
