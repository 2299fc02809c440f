package bootstrap

import (
	"context"
	"io"
	"path/filepath"

	"github.com/cseg/ppenv/internal/buildsys"
	"github.com/cseg/ppenv/internal/envctx"
)

const (
	// DefaultEnvDirName is the on-disk name of the isolated environment,
	// created under the post-processing root by the build system.
	DefaultEnvDirName = "cesm-env2"

	// DefaultSmokeTool is the installed tool probed after installation.
	DefaultSmokeTool = "cesm_tseries_generator.py"
)

// Deps carries everything the steps need: the invocation options, the
// environment context, and the external collaborators.
type Deps struct {
	Prog       string
	Root       string
	Machine    string
	MachineDir string
	EnvDirName string
	SmokeTool  string
	Env        *envctx.Context
	Make       buildsys.Invoker
	Out        io.Writer
	Warnings   []string

	// Populated as steps run.
	moduleScript string
	smokeReport  string
}

// EnvDir returns the environment's on-disk location.
func (d *Deps) EnvDir() string {
	return filepath.Join(d.Root, d.EnvDirName)
}

// Step is one unit of the bootstrap sequence.
type Step interface {
	// Name returns the step identifier (e.g. "build-env").
	Name() string

	// Run executes the step.
	Run(ctx context.Context, deps *Deps) StepResult
}
