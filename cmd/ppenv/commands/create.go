package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cseg/ppenv/cmd/ppenv/internal/clierr"
	"github.com/cseg/ppenv/internal/bootstrap"
	"github.com/cseg/ppenv/internal/buildsys"
	"github.com/cseg/ppenv/internal/envctx"
	"github.com/cseg/ppenv/internal/ui"
)

func newCreateCmd() *cobra.Command {
	var (
		machineName string
		machineDir  string
		root        string
		smokeTool   string
		stateDir    string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the isolated environment and install the tool suite",
		Long: `Create loads the machine module script, builds the cesm-env2 environment
via "make env", activates it, installs the post-processing tools via
"make all", smoke-checks the installation, and deactivates.

The run ends with a single STATUS:info line. An existing environment is
never rebuilt; remove it with "ppenv clean" first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if machineName == "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return clierr.Newf(1, "ERROR:%s: A valid, supported machine name must be provided.", prog)
			}

			var warnings []string
			if machineDir == "" {
				machineDir = filepath.Join(root, "machines")
				w := fmt.Sprintf("no machine directory given; defaulting to %s", machineDir)
				warnings = append(warnings, w)
				fmt.Fprintln(out, ui.WarnMsg("%s", w))
			}
			if !filepath.IsAbs(stateDir) {
				stateDir = filepath.Join(root, stateDir)
			}

			env := envctx.New()
			deps := &bootstrap.Deps{
				Prog:       prog,
				Root:       root,
				Machine:    machineName,
				MachineDir: machineDir,
				SmokeTool:  smokeTool,
				Env:        env,
				Make:       &buildsys.Make{Dir: root, Env: env, Out: out},
				Out:        out,
				Warnings:   warnings,
			}
			store := bootstrap.NewStateStore(stateDir)

			res := bootstrap.New(deps, store).Run(cmd.Context())

			if asJSON {
				if last, err := store.ReadLastRun(); err == nil && last != nil {
					enc := json.NewEncoder(out)
					enc.SetIndent("", "  ")
					_ = enc.Encode(last)
				}
			}

			if res.Status != bootstrap.StatusSuccess {
				return clierr.New(1, res.Line())
			}
			fmt.Fprintln(out, res.Line())
			return nil
		},
	}

	cmd.Flags().StringVar(&machineName, "machine", "", "machine whose module script prepares the host (required)")
	cmd.Flags().StringVar(&machineDir, "machine-dir", "", "directory holding <machine>_modules.sh scripts (default <root>/machines)")
	cmd.Flags().StringVar(&root, "root", ".", "post-processing tree containing the Makefile")
	cmd.Flags().StringVar(&smokeTool, "smoke-tool", bootstrap.DefaultSmokeTool, "installed tool probed after installation")
	cmd.Flags().StringVar(&stateDir, "state-dir", filepath.Join(".ppenv", "run"), "run state directory (relative to root unless absolute)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "also print the run summary as JSON")

	return cmd
}
