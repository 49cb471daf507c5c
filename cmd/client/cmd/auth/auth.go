package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"fitlog/cmd/client/cmd/types"
	"fitlog/internal/app/client"
)

// AuthCmd is the parent command for token management.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API token",
	Long:  `Store or remove the API token used to authenticate against the FitLog server.`,
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
