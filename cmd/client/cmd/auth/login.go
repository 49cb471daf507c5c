package auth

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var tokenFlag string

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store an API token",
	Long: `Save an API token issued by the FitLog server. The token is kept in the
config directory and attached to every request as a bearer credential.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		token := strings.TrimSpace(tokenFlag)
		if token == "" {
			fmt.Print("API token: ")
			raw, err := term.ReadPassword(int(os.Stdin.Fd()))
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}
			fmt.Println()
			token = strings.TrimSpace(string(raw))
		}
		if token == "" {
			return fmt.Errorf("empty token")
		}

		if err := app.SaveToken(token); err != nil {
			return fmt.Errorf("save token: %w", err)
		}

		// Best-effort check that the server accepts us. A failure is not
		// fatal: the token may be for a server that is currently down.
		if err := app.HealthCheck(cmd.Context()); err != nil {
			color.Yellow("token saved, but the server is unreachable: %v", err)
			return nil
		}

		color.Green("token saved")
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&tokenFlag, "token", "t", "", "API token (prompted if omitted)")
}
