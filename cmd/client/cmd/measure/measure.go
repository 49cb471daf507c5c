// Package measure provides the weight and bodyfat command trees. Both kinds
// share the same shape, so the commands are built once and mounted twice.
package measure

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/cmd/client/cmd/types"
	"fitlog/internal/app/client"
)

var (
	// WeightCmd tracks body weight in kilograms.
	WeightCmd = newMeasureCmd("weight", "Track body weight", "kg",
		func(app *client.App) *client.MeasurementService { return app.Weight })

	// BodyFatCmd tracks body fat in percent.
	BodyFatCmd = newMeasureCmd("bodyfat", "Track body fat percentage", "%",
		func(app *client.App) *client.MeasurementService { return app.BodyFat })
)

func newMeasureCmd(use, short, unit string, pick func(*client.App) *client.MeasurementService) *cobra.Command {
	parent := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  short + `. One reading per day: logging a second value for the same date replaces the first.`,
	}
	parent.AddCommand(newLogCmd(unit, pick))
	parent.AddCommand(newListCmd(unit, pick))
	parent.AddCommand(newDeleteCmd(pick))
	return parent
}

func newLogCmd(unit string, pick func(*client.App) *client.MeasurementService) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "log <value>",
		Short: "Record a reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd)
			if err != nil {
				return err
			}

			value, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q", args[0])
			}

			created, err := pick(app).Create(cmd.Context(), client.MeasurementEntry{
				Date:  date,
				Value: value,
			})
			if err != nil {
				return fmt.Errorf("log reading: %w", err)
			}

			fmt.Printf("Logged %.1f%s on %s%s\n", created.Value, unit, created.Date, pendingMark(created.Pending))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "reading date, YYYY-MM-DD (default today)")
	return cmd
}

func newListCmd(unit string, pick func(*client.App) *client.MeasurementService) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List readings by date",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFromContext(cmd)
			if err != nil {
				return err
			}

			entries, status, err := pick(app).GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("list readings: %w", err)
			}
			if status.FromCache {
				color.Yellow(status.Warning)
			}

			if format == "json" {
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(entries)
			}

			if len(entries) == 0 {
				fmt.Println("No readings yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "ID\tDate\tValue\t\n")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%.1f%s%s\t\n", e.ID, e.Date, e.Value, unit, pendingMark(e.Pending))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format (table, json)")
	return cmd
}

func newDeleteCmd(pick func(*client.App) *client.MeasurementService) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := appFromContext(cmd)
			if err != nil {
				return err
			}

			if err := pick(app).Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete reading: %w", err)
			}

			fmt.Printf("Deleted reading %s\n", args[0])
			return nil
		},
	}
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}

func pendingMark(pending bool) string {
	if pending {
		return " (pending sync)"
	}
	return ""
}
