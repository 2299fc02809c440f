// Package machines locates the per-machine module scripts that prepare a
// host for building the post-processing environment. A machine named
// "cheyenne" is backed by "cheyenne_modules.sh" in the machine directory;
// an optional machines.yaml manifest adds descriptions.
package machines

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	scriptSuffix = "_modules.sh"
	manifestName = "machines.yaml"
)

// Machine is one supported machine: its name, module script, and an
// optional manifest description.
type Machine struct {
	Name        string
	Script      string
	Description string
}

type manifest struct {
	Machines map[string]struct {
		Description string `yaml:"description"`
	} `yaml:"machines"`
}

// Resolve returns the module script path for a machine, verifying that
// it exists and is executable.
func Resolve(dir, name string) (string, error) {
	script := filepath.Join(dir, name+scriptSuffix)
	info, err := os.Stat(script)
	if err != nil {
		return "", fmt.Errorf("%s does not exist", script)
	}
	if info.IsDir() || info.Mode()&0o111 == 0 {
		return "", fmt.Errorf("%s is not executable", script)
	}
	return script, nil
}

// List returns the machines whose module scripts live in dir, sorted by
// name, with descriptions from the manifest when present.
func List(dir string) ([]Machine, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading machine directory: %w", err)
	}

	descs, err := loadManifest(dir)
	if err != nil {
		return nil, err
	}

	var out []Machine
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), scriptSuffix) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), scriptSuffix)
		out = append(out, Machine{
			Name:        name,
			Script:      filepath.Join(dir, e.Name()),
			Description: descs[name],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func loadManifest(dir string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestName))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifestName, err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestName, err)
	}

	descs := make(map[string]string, len(m.Machines))
	for name, entry := range m.Machines {
		descs[name] = entry.Description
	}
	return descs, nil
}
