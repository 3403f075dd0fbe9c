package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

// NewEntitiesCommand creates the entities command group.
func NewEntitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entities",
		Aliases: []string{"entity", "e"},
		Short:   "Work with entity records",
		Long:    "Read, write, search, count and export the records of an entity",
	}

	cmd.AddCommand(newEntitiesGetCommand())
	cmd.AddCommand(newEntitiesSearchCommand())
	cmd.AddCommand(newEntitiesWriteCommand("create", "Create a record"))
	cmd.AddCommand(newEntitiesWriteCommand("update", "Update a record"))
	cmd.AddCommand(newEntitiesDeleteCommand())
	cmd.AddCommand(newEntitiesCountCommand())
	cmd.AddCommand(newEntitiesColumnsCommand())
	cmd.AddCommand(newEntitiesExportCommand())

	return cmd
}

func newEntitiesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ENTITY ID",
		Short: "Get a record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEntity(args[0], func(ctx context.Context, entity bsh.EntityClient) error {
				env, err := entity.FindByID(ctx, args[1])
				if err != nil {
					return fmt.Errorf("failed to get %s %s: %w", args[0], args[1], err)
				}

				return outputEnvelope(env)
			})
		},
	}
}

// newEntitiesWriteCommand builds create and update, which differ only in
// the client method they call.
func newEntitiesWriteCommand(use, short string) *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   use + " ENTITY",
		Short: short,
		Long:  short + " from a JSON object or array given by --data or --file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(data, file)
			if err != nil {
				return err
			}

			return withEntity(args[0], func(ctx context.Context, entity bsh.EntityClient) error {
				write := entity.Create
				if use == "update" {
					write = entity.Update
				}

				env, err := write(ctx, payload)
				if err != nil {
					return fmt.Errorf("failed to %s %s: %w", use, args[0], err)
				}

				return outputEnvelope(env)
			})
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "record as JSON")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to a JSON record")

	return cmd
}

func newEntitiesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ENTITY ID",
		Short: "Delete a record by id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEntity(args[0], func(ctx context.Context, entity bsh.EntityClient) error {
				env, err := entity.DeleteByID(ctx, args[1])
				if err != nil {
					return fmt.Errorf("failed to delete %s %s: %w", args[0], args[1], err)
				}

				return outputEnvelope(env)
			})
		},
	}
}

func newEntitiesSearchCommand() *cobra.Command {
	var (
		data string
		file string
		page int
		size int
	)

	cmd := &cobra.Command{
		Use:   "search ENTITY",
		Short: "Search records",
		Long:  "Search records with a JSON search document given by --data or --file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			search, err := readSearch(data, file, page, size)
			if err != nil {
				return err
			}

			return withEntity(args[0], func(ctx context.Context, entity bsh.EntityClient) error {
				env, err := entity.Search(ctx, search)
				if err != nil {
					return fmt.Errorf("failed to search %s: %w", args[0], err)
				}

				return outputEnvelope(env)
			})
		},
	}

	addSearchFlags(cmd, &data, &file)
	cmd.Flags().IntVar(&page, "page", 0, "page number")
	cmd.Flags().IntVar(&size, "size", 0, "page size")

	return cmd
}

func newEntitiesCountCommand() *cobra.Command {
	var (
		data string
		file string
	)

	cmd := &cobra.Command{
		Use:   "count ENTITY",
		Short: "Count records",
		Long:  "Count all records, or the records matching --data/--file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filtered := data != "" || file != ""

			var search *bsh.Search

			if filtered {
				var err error

				search, err = readSearch(data, file, 0, 0)
				if err != nil {
					return err
				}
			}

			return withEntity(args[0], func(ctx context.Context, entity bsh.EntityClient) error {
				var (
					env *bsh.Envelope
					err error
				)

				if filtered {
					env, err = entity.CountFiltered(ctx, search)
				} else {
					env, err = entity.Count(ctx)
				}

				if err != nil {
					return fmt.Errorf("failed to count %s: %w", args[0], err)
				}

				return outputEnvelope(env)
			})
		},
	}

	addSearchFlags(cmd, &data, &file)

	return cmd
}

func newEntitiesColumnsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "columns ENTITY",
		Short: "List entity columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEntity(args[0], func(ctx context.Context, entity bsh.EntityClient) error {
				env, err := entity.Columns(ctx)
				if err != nil {
					return fmt.Errorf("failed to get columns of %s: %w", args[0], err)
				}

				return outputEnvelope(env)
			})
		},
	}
}

func newEntitiesExportCommand() *cobra.Command {
	var (
		data     string
		file     string
		format   string
		filename string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "export ENTITY",
		Short: "Export records to a file",
		Long:  "Export records as csv, excel or json. The file is written to --out, or to the export file name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var search *bsh.Search

			if data != "" || file != "" {
				var err error

				search, err = readSearch(data, file, 0, 0)
				if err != nil {
					return err
				}
			}

			export := &bsh.ExportOptions{Format: bsh.ExportFormat(format), Filename: filename}

			return withEntity(args[0], func(ctx context.Context, entity bsh.EntityClient) error {
				content, err := entity.Export(ctx, search, export)
				if err != nil {
					return fmt.Errorf("failed to export %s: %w", args[0], err)
				}

				target := out
				if target == "" {
					target = filename
				}

				if target == "" {
					target = fmt.Sprintf("%s.%s", args[0], export.Format.Extension())
				}

				err = os.WriteFile(target, content, constants.ConfigFilePerm)
				if err != nil {
					return fmt.Errorf("failed to write export: %w", err)
				}

				_, _ = fmt.Fprintf(os.Stdout, "Exported %d bytes to %s\n", len(content), target)

				return nil
			})
		},
	}

	addSearchFlags(cmd, &data, &file)
	cmd.Flags().StringVar(&format, "format", string(bsh.ExportCSV), "export format (csv, excel, json)")
	cmd.Flags().StringVar(&filename, "filename", "", "file name requested from the engine")
	cmd.Flags().StringVar(&out, "out", "", "local output path")

	return cmd
}

func addSearchFlags(cmd *cobra.Command, data, file *string) {
	cmd.Flags().StringVarP(data, "data", "d", "", "search document as JSON")
	cmd.Flags().StringVarP(file, "file", "f", "", "path to a JSON search document")
}

func withEntity(name string, fn func(ctx context.Context, entity bsh.EntityClient) error) error {
	engine, cleanup, err := newEngine(true)
	if err != nil {
		return err
	}
	defer cleanup()

	entity, err := engine.Entity(name)
	if err != nil {
		return err
	}

	return fn(context.Background(), entity)
}

// readPayload decodes a JSON document from data or the file at path.
func readPayload(data, path string) (any, error) {
	raw := []byte(data)

	if path != "" {
		// #nosec G304 -- the path is supplied by the user running the CLI
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read payload file: %w", err)
		}

		raw = content
	}

	if len(raw) == 0 {
		return nil, constants.ErrPayloadRequired
	}

	var payload any

	err := json.Unmarshal(raw, &payload)
	if err != nil {
		return nil, fmt.Errorf("failed to parse payload: %w", err)
	}

	return payload, nil
}

// readSearch decodes a search document from data or the file at path.
// Page and size override its pagination when positive.
func readSearch(data, path string, page, size int) (*bsh.Search, error) {
	raw := []byte(data)

	if path != "" {
		// #nosec G304 -- the path is supplied by the user running the CLI
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read search file: %w", err)
		}

		raw = content
	}

	search := bsh.NewSearch()

	if len(raw) > 0 {
		err := json.Unmarshal(raw, search)
		if err != nil {
			return nil, fmt.Errorf("failed to parse search document: %w", err)
		}
	}

	if page > 0 || size > 0 {
		search.Page(page, size)
	}

	return search, nil
}
