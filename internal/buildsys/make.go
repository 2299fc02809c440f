// Package buildsys invokes targets of the external post-processing
// Makefile. The build tool owns idempotency of its targets; this package
// only reports whether an invocation terminated cleanly.
package buildsys

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/cseg/ppenv/internal/envctx"
)

// Invoker runs named build-system targets.
type Invoker interface {
	Target(ctx context.Context, name string) error
}

// ToolError reports an external tool that terminated unsuccessfully.
type ToolError struct {
	Tool     string
	ExitCode int
	Output   string
}

func (e *ToolError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("%s failed (exit %d)", e.Tool, e.ExitCode)
	}
	return fmt.Sprintf("%s failed (exit %d)\n%s", e.Tool, e.ExitCode, e.Output)
}

// Make runs targets of the Makefile in Dir with the environment rendered
// from Env. Output is streamed to Out and kept for error reporting.
type Make struct {
	Dir  string
	Env  *envctx.Context
	Out  io.Writer
	Prog string // defaults to "make"
}

var _ Invoker = (*Make)(nil)

func (m *Make) Target(ctx context.Context, name string) error {
	prog := m.Prog
	if prog == "" {
		prog = "make"
	}

	cmd := exec.CommandContext(ctx, prog, name)
	cmd.Dir = m.Dir
	if m.Env != nil {
		cmd.Env = m.Env.Environ()
	}

	var buf bytes.Buffer
	out := io.Writer(&buf)
	if m.Out != nil {
		out = io.MultiWriter(m.Out, &buf)
	}
	cmd.Stdout = out
	cmd.Stderr = out

	slog.Debug("invoking build target", "prog", prog, "target", name, "dir", m.Dir)
	if err := cmd.Run(); err != nil {
		code := 1
		if exitErr, ok := err.(*exec.ExitError); ok {
			code = exitErr.ExitCode()
		}
		return &ToolError{
			Tool:     prog + " " + name,
			ExitCode: code,
			Output:   strings.TrimSpace(buf.String()),
		}
	}
	return nil
}
