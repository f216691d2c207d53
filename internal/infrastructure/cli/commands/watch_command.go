package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/envsync/internal/app"
	"github.com/doeshing/envsync/internal/infrastructure/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(container *app.Container) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sync now, then again whenever the manifest changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, cmd, container, dir)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "C", "", "Start the manifest search from this directory (default: working directory)")
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, container *app.Container, dir string) error {
	if container.SyncService == nil {
		return errors.New(ErrSyncServiceUnavailable)
	}

	start, err := startDir(dir)
	if err != nil {
		return err
	}
	manifestPath, err := container.SyncService.Locator.Locate(start)
	if err != nil {
		return err
	}

	syncOnce(ctx, cmd, container, start)
	fmt.Fprintf(cmd.OutOrStdout(), MsgWatching+"\n", manifestPath)

	debounce := time.Duration(container.Config.Watch.DebounceMS) * time.Millisecond
	w := watch.New(manifestPath, debounce, container.Logger)
	return w.Run(ctx, func(ctx context.Context) {
		syncOnce(ctx, cmd, container, start)
	})
}
