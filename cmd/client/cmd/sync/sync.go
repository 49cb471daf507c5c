package sync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/cmd/client/cmd/types"
	"fitlog/internal/app/client"
)

var (
	showStatus bool
	showDead   bool
	watch      bool
)

var SyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay queued offline changes",
	Long: `Push every change made while offline to the server, in the order it was
made. Entries that keep failing are moved to the dead letter list and can be
inspected with --dead.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("application not initialized")
		}

		if showStatus {
			return printStatus(cmd, app)
		}
		if showDead {
			return printDead(cmd, app)
		}
		if watch {
			return runWatch(cmd, app)
		}
		return runSync(cmd, app)
	},
}

// runWatch keeps the connectivity monitor and the periodic drain loop
// running until interrupted, so changes queued by other invocations are
// pushed as soon as the server is reachable.
func runWatch(cmd *cobra.Command, app *client.App) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for changes to sync. Press Ctrl+C to stop.")
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch: %w", err)
	}
	return nil
}

func runSync(cmd *cobra.Command, app *client.App) error {
	start := time.Now()
	result, err := app.SyncNow(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if result.Success == 0 && result.Failed == 0 && result.Abandoned == 0 {
		fmt.Println("Nothing to sync.")
		return nil
	}

	color.Green("sync finished in %v", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  replayed:  %d\n", result.Success)
	if result.Failed > 0 {
		color.Yellow("  failed:    %d (will retry on next sync)", result.Failed)
	}
	if result.Abandoned > 0 {
		color.Red("  abandoned: %d (see fitlog sync --dead)", result.Abandoned)
	}
	return nil
}

func printStatus(cmd *cobra.Command, app *client.App) error {
	status, err := app.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync status: %w", err)
	}

	if status.Online {
		color.Green("server: online")
	} else {
		color.Red("server: offline")
	}
	fmt.Printf("queued changes: %d\n", status.QueueLength)
	fmt.Printf("dead letters:   %d\n", status.DeadLength)
	if status.LastDrain != nil {
		fmt.Printf("last sync:      %s (%d replayed, %d failed, %d abandoned)\n",
			status.LastDrainAt.Format("2006-01-02 15:04:05"),
			status.LastDrain.Success, status.LastDrain.Failed, status.LastDrain.Abandoned)
	}
	return nil
}

func printDead(cmd *cobra.Command, app *client.App) error {
	dead, err := app.Queue().Dead(cmd.Context())
	if err != nil {
		return fmt.Errorf("dead letters: %w", err)
	}

	if len(dead) == 0 {
		fmt.Println("No dead letters.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tMethod\tURL\tType\tAbandoned\tLast error\t\n")
	for _, d := range dead {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
			d.ID, d.Method, d.URL, d.Type, d.AbandonedAt.Format("2006-01-02 15:04"), d.LastError)
	}
	w.Flush()
	return nil
}

func init() {
	SyncCmd.Flags().BoolVar(&showStatus, "status", false, "show queue and connectivity status")
	SyncCmd.Flags().BoolVar(&showDead, "dead", false, "list abandoned queue entries")
	SyncCmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and sync automatically on reconnect and on an interval")
}
