package exercise

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/cmd/client/cmd/types"
	"fitlog/internal/app/client"
)

// ExerciseCmd is the parent command for exercise operations.
var ExerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage exercises",
	Long:  `Create, list and delete exercises inside a workout.`,
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}

func printListStatus(status client.ListStatus) {
	if status.FromCache {
		color.Yellow(status.Warning)
	}
}

func pendingMark(pending bool) string {
	if pending {
		return " (pending sync)"
	}
	return ""
}
