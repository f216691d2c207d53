package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doeshing/envsync/internal/version"
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show envsync build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.Current()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return nil
			}
			renderVersion(cmd.OutOrStdout(), info)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version string")
	return cmd
}

func renderVersion(out io.Writer, info version.Info) {
	r := newRenderer(out)
	rows := [][2]string{
		{"version", info.Version},
		{"commit", orUnknown(info.Commit)},
		{"built", orUnknown(info.BuildDate)},
		{"go", info.GoVersion},
	}
	fmt.Fprintln(out, "envsync")
	for _, row := range rows {
		fmt.Fprintf(out, "  %s %s\n", r.muted.Render(fmt.Sprintf("%-8s", row[0]+":")), row[1])
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
