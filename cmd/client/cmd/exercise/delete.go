package exercise

import (
	"fmt"

	"github.com/spf13/cobra"
)

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		if err := app.Exercises.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}

		fmt.Printf("Deleted exercise %s\n", args[0])
		return nil
	},
}
