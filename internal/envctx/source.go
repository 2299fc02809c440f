package envctx

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Source runs a shell script through /bin/sh in a child process, captures
// the environment it leaves behind, and returns the delta against the
// context's effective environment as an overlay. The context itself is
// not modified; push the overlay to adopt the changes.
func Source(ctx context.Context, c *Context, script string) (Overlay, error) {
	// The script path is passed as a positional parameter so it needs
	// no quoting. Script output is suppressed; only env survives.
	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", `. "$1" >/dev/null 2>&1 && env`, "sh", script)
	cmd.Env = c.Environ()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return Overlay{}, fmt.Errorf("sourcing %s: %s", script, msg)
	}

	before := c.merged()
	o := Overlay{Name: "source:" + script, Vars: map[string]string{}}
	for _, line := range strings.Split(string(out), "\n") {
		k, v, ok := strings.Cut(line, "=")
		if !ok || k == "" {
			// Continuation of a multi-line value; the first line
			// already captured the variable.
			continue
		}
		if before[k] != v {
			o.Vars[k] = v
		}
	}
	slog.Debug("sourced script", "script", script, "changed", len(o.Vars))
	return o, nil
}
