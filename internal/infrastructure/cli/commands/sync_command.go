package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/doeshing/envsync/internal/app"
	"github.com/doeshing/envsync/internal/domain"
)

// SyncOptions are the flags shared by the root and sync commands.
type SyncOptions struct {
	Dir    string
	DryRun bool
}

// BindSyncFlags registers the sync flags on cmd.
func BindSyncFlags(cmd *cobra.Command, opts *SyncOptions) {
	cmd.Flags().StringVarP(&opts.Dir, "dir", "C", "", "Start the manifest search from this directory (default: working directory)")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Print the reconciled file to stdout instead of writing it")
}

// NewSyncCommand creates the sync command.
func NewSyncCommand(container *app.Container) *cobra.Command {
	var opts SyncOptions

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Regenerate the env file from the manifest schema",
		Long: `Regenerate the env file from the manifest schema.

envsync walks up from the working directory to the nearest manifest,
reads its schema and rewrites the env file beside it. Existing values are
kept when they match the declared type; everything else falls back to the
schema default. Keys not in the schema are dropped.

Schema example (package.json):
  "envModel": {
    "DEBUG": false,
    "PORT": 3000,
    "LOG_LEVEL": "info | debug | warn | error"
  }
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSync(cmd, container, opts)
		},
	}

	BindSyncFlags(cmd, &opts)
	return cmd
}

// RunSync executes one sync and prints the outcome.
func RunSync(cmd *cobra.Command, container *app.Container, opts SyncOptions) error {
	if container.SyncService == nil {
		return errors.New(ErrSyncServiceUnavailable)
	}

	dir, err := startDir(opts.Dir)
	if err != nil {
		return err
	}

	res, err := container.SyncService.Run(cmd.Context(), domain.SyncRequest{StartDir: dir, DryRun: opts.DryRun})
	if err != nil {
		return err
	}

	if opts.DryRun && !res.NoSchema {
		renderWarnings(cmd.ErrOrStderr(), res.Warnings)
		renderDryRun(cmd.OutOrStdout(), res)
		return nil
	}
	renderSyncResult(cmd.OutOrStdout(), container.Config, res)
	return nil
}

func renderDryRun(out io.Writer, res domain.SyncResult) {
	if res.Content == "" {
		return
	}
	fmt.Fprintln(out, res.Content)
}

func startDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", &domain.OpError{Op: "sync.workdir", Kind: domain.KindFileSystem, Err: err}
	}
	return wd, nil
}

// syncOnce is used by watch mode: failures are printed, not returned.
func syncOnce(ctx context.Context, cmd *cobra.Command, container *app.Container, dir string) {
	res, err := container.SyncService.Run(ctx, domain.SyncRequest{StartDir: dir})
	if err != nil {
		if ctx.Err() == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
		}
		return
	}
	renderSyncResult(cmd.OutOrStdout(), container.Config, res)
}
