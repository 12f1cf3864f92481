package commands

import (
	"encoding/json"

	"retail-bi/internal/filter"

	"github.com/spf13/cobra"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Print the selectable values of every filter",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"dimensions":    data.Options(),
			"granularities": filter.Granularities,
		})
	},
}
