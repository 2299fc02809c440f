package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cseg/ppenv/internal/bootstrap"
	"github.com/cseg/ppenv/internal/ui"
)

func newReportCmd() *cobra.Command {
	var (
		root     string
		stateDir string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the step results of the last create run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !filepath.IsAbs(stateDir) {
				stateDir = filepath.Join(root, stateDir)
			}

			last, err := bootstrap.NewStateStore(stateDir).ReadLastRun()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if last == nil {
				fmt.Fprintln(out, "no recorded runs")
				return nil
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(last)
			}

			fmt.Fprint(out, ui.KeyValues("",
				ui.KV("status", string(last.Status)),
				ui.KV("machine", last.Machine),
				ui.KV("environment", last.EnvDir),
				ui.KV("started", last.StartedAt.Format(time.RFC3339)),
				ui.KV("ended", last.EndedAt.Format(time.RFC3339)),
			))
			for _, w := range last.Warnings {
				fmt.Fprintln(out, ui.WarnMsg("%s", w))
			}

			rows := make([][]string, 0, len(last.Steps))
			for _, s := range last.Steps {
				rows = append(rows, []string{
					s.Step,
					string(s.Status),
					firstLine(s.Note),
					s.Duration.Round(time.Millisecond).String(),
				})
			}
			fmt.Fprintln(out, ui.Table([]string{"STEP", "STATUS", "NOTE", "DURATION"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "post-processing tree containing the Makefile")
	cmd.Flags().StringVar(&stateDir, "state-dir", filepath.Join(".ppenv", "run"), "run state directory (relative to root unless absolute)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw run summary as JSON")

	return cmd
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
