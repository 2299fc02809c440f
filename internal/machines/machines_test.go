package machines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), mode))
	return path
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "cheyenne_modules.sh", 0o755)

	got, err := Resolve(dir, "cheyenne")
	require.NoError(t, err)
	assert.Equal(t, script, got)
}

func TestResolveMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := Resolve(dir, "yellowstone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), filepath.Join(dir, "yellowstone_modules.sh"))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestResolveNotExecutable(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "edison_modules.sh", 0o644)

	_, err := Resolve(dir, "edison")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not executable")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "cheyenne_modules.sh", 0o755)
	writeScript(t, dir, "edison_modules.sh", 0o755)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README"), nil, 0o644))

	manifest := "machines:\n  cheyenne:\n    description: NCAR Cheyenne\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "machines.yaml"), []byte(manifest), 0o644))

	got, err := List(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "cheyenne", got[0].Name)
	assert.Equal(t, "NCAR Cheyenne", got[0].Description)
	assert.Equal(t, "edison", got[1].Name)
	assert.Empty(t, got[1].Description)
}

func TestListMissingDir(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}
