package workout

import (
	"fmt"

	"github.com/spf13/cobra"

	"fitlog/internal/app/client"
)

var (
	createName        string
	createDescription string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a workout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		created, err := app.Workouts.Create(cmd.Context(), client.Workout{
			Name:        createName,
			Description: createDescription,
		})
		if err != nil {
			return fmt.Errorf("create workout: %w", err)
		}

		fmt.Printf("Created workout %s%s\n", created.ID, pendingMark(created.Pending))
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createName, "name", "n", "", "workout name")
	CreateCmd.Flags().StringVarP(&createDescription, "description", "d", "", "workout description")
	_ = CreateCmd.MarkFlagRequired("name")
}
