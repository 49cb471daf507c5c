package exercise

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listWorkoutID string
	listFormat    string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exercises of a workout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		exercises, status, err := app.Exercises.GetAll(cmd.Context(), listWorkoutID)
		if err != nil {
			return fmt.Errorf("list exercises: %w", err)
		}
		printListStatus(status)

		if listFormat == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(exercises)
		}

		if len(exercises) == 0 {
			fmt.Println("No exercises in this workout.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tName\tSets\tReps\tWeight\tRest\tMuscle\t\n")
		for _, e := range exercises {
			fmt.Fprintf(w, "%s\t%s%s\t%d\t%d\t%.1f\t%ds\t%s\t\n",
				e.ID, e.Name, pendingMark(e.Pending), e.Sets, e.Reps, e.Weight, e.RestSeconds, e.MuscleGroup)
		}
		w.Flush()
		return nil
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listWorkoutID, "workout", "w", "", "workout id")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
	_ = ListCmd.MarkFlagRequired("workout")
}
