package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/envsync/internal/app"
	"github.com/doeshing/envsync/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command. The returned container must be
// closed by the caller once the command has run.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, *app.Container, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, nil, err
	}
	return newRootCmd(container), container, nil
}

func newRootCmd(container *app.Container) *cobra.Command {
	var syncOpts commands.SyncOptions

	root := &cobra.Command{
		Use:   "envsync",
		Short: "envsync - keep .env in step with the manifest schema",
		Long: `envsync regenerates a project's .env from the envModel schema in its
package.json. Running it without a subcommand is the same as 'envsync sync'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunSync(cmd, container, syncOpts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	commands.BindSyncFlags(root, &syncOpts)

	root.AddCommand(commands.NewSyncCommand(container))
	root.AddCommand(commands.NewWatchCommand(container))
	root.AddCommand(commands.NewHistoryCommand(container))
	root.AddCommand(commands.NewDoctorCommand(container))
	root.AddCommand(commands.NewConfigCommand(container))
	root.AddCommand(commands.NewVersionCommand())
	return root
}
