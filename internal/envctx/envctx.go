// Package envctx models the process environment as a base set of
// variables plus an ordered stack of overlays. External tools are run
// with the rendered environment instead of mutating the process's own
// state, so module loading, activation, and deactivation stay explicit
// and reversible.
package envctx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Overlay is one reversible layer of environment changes: full-value
// variable overrides plus entries prepended to PATH.
type Overlay struct {
	Name string
	Vars map[string]string
	Path []string
}

// Context is the base environment with zero or more overlays applied on
// top, most recently pushed last.
type Context struct {
	base     map[string]string
	overlays []Overlay
}

// New captures the current process environment as the base.
func New() *Context {
	return FromEnviron(os.Environ())
}

// FromEnviron builds a context from "KEY=value" pairs.
func FromEnviron(environ []string) *Context {
	base := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		base[k] = v
	}
	return &Context{base: base}
}

// Push applies an overlay on top of the context.
func (c *Context) Push(o Overlay) {
	c.overlays = append(c.overlays, o)
}

// Pop removes and returns the most recently pushed overlay.
func (c *Context) Pop() (Overlay, bool) {
	if len(c.overlays) == 0 {
		return Overlay{}, false
	}
	o := c.overlays[len(c.overlays)-1]
	c.overlays = c.overlays[:len(c.overlays)-1]
	return o, true
}

// Depth returns the number of overlays currently applied.
func (c *Context) Depth() int {
	return len(c.overlays)
}

// Get returns the effective value of a variable.
func (c *Context) Get(key string) string {
	return c.merged()[key]
}

// Environ renders the effective environment as "KEY=value" pairs,
// suitable for exec.Cmd.Env. PATH prepends from later overlays win.
func (c *Context) Environ() []string {
	m := c.merged()
	out := make([]string, 0, len(m))
	for k, v := range m {
		out = append(out, k+"="+v)
	}
	return out
}

// LookPath resolves an executable by name against the effective PATH.
func (c *Context) LookPath(name string) (string, error) {
	if strings.Contains(name, string(os.PathSeparator)) {
		if err := checkExecutable(name); err != nil {
			return "", err
		}
		return name, nil
	}
	for _, dir := range filepath.SplitList(c.Get("PATH")) {
		if dir == "" {
			continue
		}
		cand := filepath.Join(dir, name)
		if err := checkExecutable(cand); err == nil {
			return cand, nil
		}
	}
	return "", fmt.Errorf("%s: executable not found in path", name)
}

func (c *Context) merged() map[string]string {
	m := make(map[string]string, len(c.base))
	for k, v := range c.base {
		m[k] = v
	}
	var prepends []string
	for _, o := range c.overlays {
		for k, v := range o.Vars {
			m[k] = v
		}
		// Later overlays end up in front.
		prepends = append(append([]string{}, o.Path...), prepends...)
	}
	if len(prepends) > 0 {
		path := strings.Join(prepends, string(os.PathListSeparator))
		if rest := m["PATH"]; rest != "" {
			path += string(os.PathListSeparator) + rest
		}
		m["PATH"] = path
	}
	return m
}

func checkExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() || info.Mode()&0o111 == 0 {
		return fmt.Errorf("%s is not executable", path)
	}
	return nil
}
