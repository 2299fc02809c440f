// Package smoke verifies that a tool installed into the environment is
// reachable through the activated search path and reports itself.
package smoke

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cseg/ppenv/internal/envctx"
)

// Check resolves tool through env's PATH, invokes it with --version, and
// requires the output to mention the tool's own name. It returns the
// trimmed output on success.
func Check(ctx context.Context, env *envctx.Context, tool string) (string, error) {
	path, err := env.LookPath(tool)
	if err != nil {
		return "", fmt.Errorf("smoke check: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Env = env.Environ()
	out, err := cmd.CombinedOutput()
	text := strings.TrimSpace(string(out))
	if err != nil {
		if text != "" {
			return "", fmt.Errorf("smoke check: %s: %s", tool, text)
		}
		return "", fmt.Errorf("smoke check: %s: %w", tool, err)
	}

	base := strings.TrimSuffix(filepath.Base(tool), filepath.Ext(tool))
	if !strings.Contains(strings.ToLower(text), strings.ToLower(base)) {
		return "", fmt.Errorf("smoke check: %s did not report itself (got %q)", tool, text)
	}
	return text, nil
}
