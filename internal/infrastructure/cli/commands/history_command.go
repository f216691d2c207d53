package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/envsync/internal/app"
)

// NewHistoryCommand creates the history command with its subcommands.
func NewHistoryCommand(container *app.Container) *cobra.Command {
	var limit int

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recent sync runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listHistoryEntries(cmd.Context(), cmd.OutOrStdout(), container, limit)
		},
	}
	historyCmd.Flags().IntVar(&limit, "limit", DefaultHistoryLimit, "Max entries to show (0 for all)")

	historyCmd.AddCommand(newHistoryClearCommand(container))
	return historyCmd
}

// newHistoryClearCommand creates the 'history clear' subcommand
func newHistoryClearCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if container.HistoryStore == nil {
				return errors.New(ErrHistoryStoreUnavailable)
			}
			if err := container.HistoryStore.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), MsgHistoryCleared)
			return nil
		},
	}
}

// listHistoryEntries prints recent runs, newest first
func listHistoryEntries(ctx context.Context, out io.Writer, container *app.Container, limit int) error {
	store := container.HistoryStore
	if store == nil {
		return errors.New(ErrHistoryStoreUnavailable)
	}

	records, err := store.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to retrieve history records: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, MsgNoHistory)
		return nil
	}

	r := newRenderer(out)
	for _, rec := range records {
		fmt.Fprintf(out, "%s | %s | %d keys | %d warnings | %s\n",
			rec.Timestamp.Local().Format(TimestampFormat),
			r.muted.Render(shortID(rec.ID)),
			rec.Keys,
			rec.Warnings,
			rec.EnvPath)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
