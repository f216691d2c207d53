package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/envsync/internal/domain"
)

// renderer styles console output; colours are dropped automatically when
// the writer is not a terminal.
type renderer struct {
	warnHeader lipgloss.Style
	warning    lipgloss.Style
	success    lipgloss.Style
	muted      lipgloss.Style
}

func newRenderer(out io.Writer) renderer {
	r := lipgloss.NewRenderer(out)
	return renderer{
		warnHeader: r.NewStyle().TabWidth(lipgloss.NoTabConversion).Bold(true).Foreground(lipgloss.Color("11")),
		warning:    r.NewStyle().TabWidth(lipgloss.NoTabConversion).Foreground(lipgloss.Color("3")),
		success:    r.NewStyle().TabWidth(lipgloss.NoTabConversion).Foreground(lipgloss.Color("2")),
		muted:      r.NewStyle().TabWidth(lipgloss.NoTabConversion).Faint(true),
	}
}

// renderWarnings prints the warnings block: a blank line, the header, one
// line per warning and a trailing blank line.
func renderWarnings(out io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	r := newRenderer(out)
	fmt.Fprintln(out)
	fmt.Fprintln(out, r.warnHeader.Render(MsgWarningsHeader))
	for _, w := range warnings {
		fmt.Fprintln(out, r.warning.Render(w))
	}
	fmt.Fprintln(out)
}

// renderSyncResult prints the outcome of a non-dry run.
func renderSyncResult(out io.Writer, cfg domain.Config, res domain.SyncResult) {
	if res.NoSchema {
		fmt.Fprintf(out, MsgNoSchema+"\n", cfg.SchemaField, cfg.ManifestName)
		return
	}
	renderWarnings(out, res.Warnings)
	if res.Written {
		r := newRenderer(out)
		fmt.Fprintln(out, r.success.Render(fmt.Sprintf(MsgGenerated, cfg.EnvFile, res.EnvPath)))
	}
}

// renderHealthReport prints one line per doctor check.
func renderHealthReport(out io.Writer, report domain.HealthReport) {
	r := newRenderer(out)
	for _, check := range report.Checks {
		label := "[" + strings.ToUpper(string(check.Status)) + "]"
		switch check.Status {
		case domain.HealthOK:
			label = r.success.Render(label)
		case domain.HealthWarn:
			label = r.warning.Render(label)
		default:
			label = r.warnHeader.Render(label)
		}
		fmt.Fprintf(out, "%s %s - %s\n", label, check.Name, check.Details)
	}
}
