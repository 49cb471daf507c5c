package workout

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/cmd/client/cmd/types"
	"fitlog/internal/app/client"
)

// WorkoutCmd is the parent command for workout operations.
var WorkoutCmd = &cobra.Command{
	Use:   "workout",
	Short: "Manage workouts",
	Long:  `Create, list, update and delete workouts. Works offline: changes made without a connection are queued and synced later.`,
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
