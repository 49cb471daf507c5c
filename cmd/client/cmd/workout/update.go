package workout

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	updateName        string
	updateDescription string
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		workouts, status, err := app.Workouts.GetAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("load workouts: %w", err)
		}
		printListStatus(status)

		for _, wk := range workouts {
			if wk.ID != args[0] {
				continue
			}
			if cmd.Flags().Changed("name") {
				wk.Name = updateName
			}
			if cmd.Flags().Changed("description") {
				wk.Description = updateDescription
			}

			updated, err := app.Workouts.Update(cmd.Context(), wk)
			if err != nil {
				return fmt.Errorf("update workout: %w", err)
			}
			fmt.Printf("Updated workout %s%s\n", updated.ID, pendingMark(updated.Pending))
			return nil
		}

		return fmt.Errorf("workout %s not found", args[0])
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateName, "name", "n", "", "new workout name")
	UpdateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new workout description")
}
