package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"paladin/internal/audit"
	"paladin/internal/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newAuditCmd() *cobra.Command {
	var (
		file    string
		limit   int
		outcome string
		since   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent commands from the audit file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				cfg, err := config.Load(cfgFile)
				if err != nil {
					return err
				}
				file = cfg.AuditFile
			}
			if file == "" {
				return fmt.Errorf("no audit file configured (set audit_file or pass --file)")
			}

			filter := audit.QueryFilter{Outcome: audit.Outcome(outcome), Limit: limit}
			if since > 0 {
				filter.Since = time.Now().Add(-since)
			}

			entries, err := audit.Query(file, filter)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No matching entries.")
				return nil
			}
			fmt.Fprintln(out, renderAuditTable(out, entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "audit file (default: audit_file from the config)")
	cmd.Flags().IntVar(&limit, "limit", 20, "max entries to show")
	cmd.Flags().StringVar(&outcome, "outcome", "", "only show this outcome (ok, denied, timeout, failed)")
	cmd.Flags().DurationVar(&since, "since", 0, "only show entries newer than this")
	return cmd
}

// renderAuditTable lays entries out in borderless columns. Colors follow
// the capabilities of w, so piped output is plain text.
func renderAuditTable(w io.Writer, entries []*audit.Entry) string {
	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).PaddingRight(2)
	cell := r.NewStyle().PaddingRight(2)
	last := r.NewStyle()
	denied := r.NewStyle().Foreground(lipgloss.Color("9")).PaddingRight(2)

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers("TIME", "OUTCOME", "DURATION", "COMMAND").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow && col < 3:
				return header
			case row == table.HeaderRow:
				return last.Bold(true)
			case col == 3:
				return last
			case col == 1 && row >= 0 && row < len(entries) && entries[row].Outcome != audit.OutcomeOK:
				return denied
			default:
				return cell
			}
		})

	for _, e := range entries {
		t.Row(
			e.Timestamp.Local().Format(time.DateTime),
			string(e.Outcome),
			e.Duration.Round(time.Millisecond).String(),
			strings.ReplaceAll(e.Command, "\n", " "),
		)
	}
	return t.Render()
}
