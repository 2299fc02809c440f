package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachinesList(t *testing.T) {
	root := newTree(t)
	manifest := "machines:\n  cheyenne:\n    description: NCAR Cheyenne\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, "machines", "machines.yaml"), []byte(manifest), 0o644))

	out, _, err := execute(t, "machines", "--root", root)

	require.NoError(t, err)
	assert.Contains(t, out, "cheyenne")
	assert.Contains(t, out, "NCAR Cheyenne")
	assert.Contains(t, out, "cheyenne_modules.sh")
}

func TestMachinesEmptyDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "machines"), 0o755))

	out, _, err := execute(t, "machines", "--root", root)

	require.NoError(t, err)
	assert.Contains(t, out, "no machine module scripts")
}

func TestMachinesMissingDir(t *testing.T) {
	_, _, err := execute(t, "machines", "--machine-dir", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
