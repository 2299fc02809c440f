package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cseg/ppenv/cmd/ppenv/internal/clierr"
	"github.com/cseg/ppenv/internal/buildsys"
	"github.com/cseg/ppenv/internal/envctx"
	"github.com/cseg/ppenv/internal/ui"
)

func newCleanCmd() *cobra.Command {
	var (
		root    string
		envOnly bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Tear down the environment via the Makefile clobber targets",
		Long: `Clean invokes "make clobber" to remove the environment and all installed
tools, or "make clobber-env" with --env-only to remove the environment
alone. It is never run as part of create.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "clobber"
			if envOnly {
				target = "clobber-env"
			}

			env := envctx.New()
			m := &buildsys.Make{Dir: root, Env: env, Out: cmd.OutOrStdout()}
			if err := m.Target(cmd.Context(), target); err != nil {
				return clierr.Wrap(1, "clean failed", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMsg("make %s completed", target))
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "post-processing tree containing the Makefile")
	cmd.Flags().BoolVar(&envOnly, "env-only", false, "remove only the environment, keep installed sources")

	return cmd
}
