// Package bootstrap drives the creation of the isolated post-processing
// environment: load machine modules, build the environment, activate it,
// install the tool suite, smoke-check it, and deactivate. Steps run in
// strict order and the first failure ends the run; nothing is retried
// and a partially built environment is left for the operator to clobber.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/cseg/ppenv/internal/ui"
)

// Bootstrapper runs the bootstrap sequence and records per-step results.
type Bootstrapper struct {
	steps []Step
	store *StateStore
	deps  *Deps
}

// New creates a bootstrapper with the canonical step order.
func New(deps *Deps, store *StateStore) *Bootstrapper {
	if deps.EnvDirName == "" {
		deps.EnvDirName = DefaultEnvDirName
	}
	if deps.SmokeTool == "" {
		deps.SmokeTool = DefaultSmokeTool
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}
	return &Bootstrapper{
		steps: []Step{
			resolveModules{},
			loadModules{},
			guardEnvironment{},
			buildEnv{},
			activate{},
			installTools{},
			smokeCheck{},
			deactivate{},
		},
		store: store,
		deps:  deps,
	}
}

// Run executes the sequence and returns the final result. Exactly one
// result is produced per run, success or not.
func (b *Bootstrapper) Run(ctx context.Context) Result {
	last := LastRun{
		Status:    StatusUndef,
		Machine:   b.deps.Machine,
		EnvDir:    b.deps.EnvDir(),
		StartedAt: time.Now(),
		Warnings:  b.deps.Warnings,
	}

	res := Result{Status: StatusUndef}
	for i, step := range b.steps {
		fmt.Fprintln(b.deps.Out, ui.InfoMsg("[%d/%d] %s", i+1, len(b.steps), step.Name()))

		start := time.Now()
		sr := step.Run(ctx, b.deps)
		sr.Duration = time.Since(start)

		if b.store != nil {
			if err := b.store.WriteStepResult(sr); err != nil {
				slog.Warn("could not record step result", "step", sr.Step, "err", err)
			}
		}
		last.Steps = append(last.Steps, sr)

		switch sr.Status {
		case StatusError:
			fmt.Fprintln(b.deps.Out, ui.ErrorMsg("%s failed", sr.Step))
			last.Status = StatusError
			last.Failed = sr.Step
			res = Result{Status: StatusError, Info: b.deps.Prog + ": " + sr.Note}
		case StatusWarning:
			fmt.Fprintln(b.deps.Out, ui.WarnMsg("%s: %s", sr.Step, sr.Note))
		default:
			if sr.Note != "" {
				fmt.Fprintln(b.deps.Out, ui.SuccessMsg("%s: %s", sr.Step, sr.Note))
			} else {
				fmt.Fprintln(b.deps.Out, ui.SuccessMsg("%s", sr.Step))
			}
		}
		if res.Status == StatusError {
			break
		}
	}

	if res.Status != StatusError {
		last.Status = StatusSuccess
		res = Result{Status: StatusSuccess, Info: b.successInfo()}
	}

	last.EndedAt = time.Now()
	if b.store != nil {
		if err := b.store.WriteLastRun(last); err != nil {
			slog.Warn("could not record run summary", "err", err)
		}
	}
	return res
}

func (b *Bootstrapper) successInfo() string {
	d := b.deps
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s - the %s python environment was installed successfully in %s.\n", d.Prog, d.EnvDirName, d.Root)
	if d.smokeReport != "" {
		fmt.Fprintf(&sb, "%s reports: %s\n", d.SmokeTool, firstLine(d.smokeReport))
	}
	fmt.Fprintf(&sb, "The time-series generator and diagnostics tools will run against this environment.\n")
	fmt.Fprintf(&sb, "Activate it by hand with \"source %s\" when running them directly.",
		filepath.Join(d.EnvDirName, "bin", "activate"))
	return sb.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
