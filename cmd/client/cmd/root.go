// cmd/client/cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"fitlog/cmd/client/cmd/types"
	"fitlog/internal/app/client"
	"fitlog/internal/app/client/config"
	"fitlog/internal/utils/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
	offline   bool
)

var rootCmd = &cobra.Command{
	Use:   "fitlog",
	Short: "FitLog - offline-first workout and measurement tracker",
	Long: `FitLog is a client for tracking workouts, exercises and body
measurements. All data is cached locally, so every command works without a
network connection: writes made offline are queued and replayed against the
server on the next sync.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	viper.AutomaticEnv()

	cfg = config.MustLoad()

	// Command line flags override the environment.
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if offline {
		cfg.Offline = true
	}

	log = logger.New(cfg.Env)

	var err error
	app, err = client.NewApp(cfg, log)
	if err != nil {
		return fmt.Errorf("client init: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	cobra.OnInitialize()

	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "FitLog server URL")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "skip all network calls, work from the local cache only")

	// Subcommands are attached in init() of init.go.
}
