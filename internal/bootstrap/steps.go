package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cseg/ppenv/internal/envctx"
	"github.com/cseg/ppenv/internal/machines"
	"github.com/cseg/ppenv/internal/smoke"
)

const activateOverlay = "activate"

func pass(name, note string) StepResult {
	return StepResult{Step: name, Status: StatusSuccess, Note: note}
}

func fail(name string, kind Kind, note string) StepResult {
	return StepResult{Step: name, Status: StatusError, Kind: kind, Note: note}
}

// resolveModules locates <machine_dir>/<machine>_modules.sh and verifies
// it is executable.
type resolveModules struct{}

func (resolveModules) Name() string { return "resolve-modules" }

func (resolveModules) Run(ctx context.Context, d *Deps) StepResult {
	script, err := machines.Resolve(d.MachineDir, d.Machine)
	if err != nil {
		return fail("resolve-modules", KindModuleScript, err.Error())
	}
	d.moduleScript = script
	return pass("resolve-modules", script)
}

// loadModules sources the machine module script and pushes its
// environment changes so every later step sees them.
type loadModules struct{}

func (loadModules) Name() string { return "load-modules" }

func (loadModules) Run(ctx context.Context, d *Deps) StepResult {
	o, err := envctx.Source(ctx, d.Env, d.moduleScript)
	if err != nil {
		return fail("load-modules", KindExternalTool, err.Error())
	}
	o.Name = "modules:" + d.Machine
	d.Env.Push(o)
	return pass("load-modules", fmt.Sprintf("loaded %s (%d variables)", d.moduleScript, len(o.Vars)))
}

// guardEnvironment refuses to provision over an existing environment.
// Existence only is checked; contents are the build system's business.
type guardEnvironment struct{}

func (guardEnvironment) Name() string { return "guard-environment" }

func (guardEnvironment) Run(ctx context.Context, d *Deps) StepResult {
	envDir := d.EnvDir()
	if _, err := os.Stat(envDir); err == nil {
		note := fmt.Sprintf(
			"the environment already exists in %s\n"+
				"To rebuild it, remove it first:\n"+
				"  make clobber      removes the environment and all installed tools\n"+
				"  make clobber-env  removes only the environment\n"+
				"then run create again.", envDir)
		return fail("guard-environment", KindEnvExists, note)
	}
	return pass("guard-environment", "")
}

// buildEnv materializes the environment via the build system's "env"
// target. The target is idempotent by contract; no re-check afterward.
type buildEnv struct{}

func (buildEnv) Name() string { return "build-env" }

func (buildEnv) Run(ctx context.Context, d *Deps) StepResult {
	if err := d.Make.Target(ctx, "env"); err != nil {
		return fail("build-env", KindExternalTool, err.Error())
	}
	return pass("build-env", "")
}

// activate prepends the environment's bin directory to the search path
// for the remainder of the run.
type activate struct{}

func (activate) Name() string { return activateOverlay }

func (activate) Run(ctx context.Context, d *Deps) StepResult {
	binDir := filepath.Join(d.EnvDir(), "bin")
	entry := filepath.Join(binDir, activateOverlay)
	if _, err := os.Stat(entry); err != nil {
		return fail(activateOverlay, KindExternalTool,
			fmt.Sprintf("%s missing; the env target did not produce an environment", entry))
	}
	d.Env.Push(envctx.Overlay{
		Name: activateOverlay,
		Vars: map[string]string{"VIRTUAL_ENV": d.EnvDir()},
		Path: []string{binDir},
	})
	return pass(activateOverlay, binDir)
}

// installTools installs the post-processing suite via the "all" target.
type installTools struct{}

func (installTools) Name() string { return "install-tools" }

func (installTools) Run(ctx context.Context, d *Deps) StepResult {
	if err := d.Make.Target(ctx, "all"); err != nil {
		return fail("install-tools", KindExternalTool, err.Error())
	}
	return pass("install-tools", "")
}

// smokeCheck confirms the installed tool resolves through the activated
// path and reports itself.
type smokeCheck struct{}

func (smokeCheck) Name() string { return "smoke-check" }

func (smokeCheck) Run(ctx context.Context, d *Deps) StepResult {
	report, err := smoke.Check(ctx, d.Env, d.SmokeTool)
	if err != nil {
		return fail("smoke-check", KindExternalTool, err.Error())
	}
	d.smokeReport = report
	return pass("smoke-check", report)
}

// deactivate restores the pre-activation search path.
type deactivate struct{}

func (deactivate) Name() string { return "deactivate" }

func (deactivate) Run(ctx context.Context, d *Deps) StepResult {
	o, ok := d.Env.Pop()
	if !ok || o.Name != activateOverlay {
		return StepResult{
			Step:   "deactivate",
			Status: StatusWarning,
			Note:   "activation overlay was not on top of the environment stack",
		}
	}
	return pass("deactivate", "restored prior search path")
}
