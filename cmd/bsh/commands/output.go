package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

func validateOutputFormat(format string) error {
	switch format {
	case constants.FormatTable, constants.FormatJSON, constants.FormatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %s (use table, json or yaml)", constants.ErrInvalidOutputFormat, format)
	}
}

func outputEnvelope(env *bsh.Envelope) error {
	return renderEnvelope(os.Stdout, viper.GetString("output"), env)
}

// renderEnvelope writes env in the requested format. Table output shows the
// data list only.
func renderEnvelope(w io.Writer, format string, env *bsh.Envelope) error {
	if env == nil {
		return nil
	}

	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(env.ToMap())
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)

		return encoder.Encode(env.ToMap())
	default:
		return renderDataTable(w, env.Data)
	}
}

func renderDataTable(w io.Writer, data []any) error {
	table := tablewriter.NewWriter(w)

	columns := dataColumns(data)
	if len(columns) == 0 {
		table.Header("Value")

		for _, item := range data {
			_ = table.Append([]string{formatCell(item)})
		}
	} else {
		header := make([]any, len(columns))
		for i, column := range columns {
			header[i] = column
		}

		table.Header(header...)

		for _, item := range data {
			row := make([]string, len(columns))

			if record, ok := item.(map[string]any); ok {
				for i, column := range columns {
					row[i] = formatCell(record[column])
				}
			}

			_ = table.Append(row)
		}
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// dataColumns returns the sorted union of keys when every element is an
// object, and nil otherwise.
func dataColumns(data []any) []string {
	seen := map[string]struct{}{}

	for _, item := range data {
		record, ok := item.(map[string]any)
		if !ok {
			return nil
		}

		for key := range record {
			seen[key] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}

	slices.Sort(columns)

	return columns
}

func formatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(encoded)
	default:
		return fmt.Sprint(v)
	}
}
