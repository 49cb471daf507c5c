package workout

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List workouts",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		workouts, status, err := app.Workouts.GetAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("list workouts: %w", err)
		}
		printListStatus(status)

		if listFormat == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(workouts)
		}

		if len(workouts) == 0 {
			fmt.Println("No workouts yet. Create one with: fitlog workout create --name <name>")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tName\tDescription\t\n")
		for _, wk := range workouts {
			fmt.Fprintf(w, "%s\t%s%s\t%s\t\n", wk.ID, wk.Name, pendingMark(wk.Pending), truncate(wk.Description, 50))
		}
		w.Flush()
		return nil
	},
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
}
