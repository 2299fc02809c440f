package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cseg/ppenv/internal/machines"
	"github.com/cseg/ppenv/internal/ui"
)

func newMachinesCmd() *cobra.Command {
	var (
		machineDir string
		root       string
	)

	cmd := &cobra.Command{
		Use:   "machines",
		Short: "List machines with module scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if machineDir == "" {
				machineDir = filepath.Join(root, "machines")
			}

			list, err := machines.List(machineDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintf(out, "no machine module scripts in %s\n", machineDir)
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, m := range list {
				rows = append(rows, []string{m.Name, m.Description, m.Script})
			}
			fmt.Fprintln(out, ui.Table([]string{"NAME", "DESCRIPTION", "SCRIPT"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&machineDir, "machine-dir", "", "directory holding <machine>_modules.sh scripts (default <root>/machines)")
	cmd.Flags().StringVar(&root, "root", ".", "post-processing tree containing the Makefile")

	return cmd
}
