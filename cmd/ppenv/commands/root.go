// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cseg/ppenv/cmd/ppenv/internal/clierr"
	"github.com/cseg/ppenv/internal/logging"
	"github.com/cseg/ppenv/internal/ui"
)

const prog = "ppenv"

// NewRootCmd constructs the ppenv root Cobra command.
func NewRootCmd() *cobra.Command {
	version := os.Getenv("PPENV_VERSION")
	if version == "" {
		version = "0.0.0-dev"
	}

	var (
		logLevel string
		plain    bool
	)

	cmd := &cobra.Command{
		Use:           prog,
		Short:         "ppenv - CESM post-processing environment bootstrapper",
		Long: `ppenv builds the isolated cesm-env2 python environment for a CESM
post-processing tree: it loads machine-specific modules, materializes the
environment through the Makefile, installs the tool suite into it, and
verifies the installation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ui.Configure(plain)
			return logging.Configure(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.LevelInfo, "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&plain, "plain", false, "disable styled output")

	// Flag errors (unknown flags included) carry the offending token and
	// the single-line status shape used everywhere else.
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return clierr.Newf(1, "ERROR:%s: %v", prog, err)
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of ppenv",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ppenv version %s\n", version)
		},
	})

	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newMachinesCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newReportCmd())

	return cmd
}
