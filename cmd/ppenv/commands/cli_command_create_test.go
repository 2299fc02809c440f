package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cseg/ppenv/cmd/ppenv/internal/clierr"
)

// stubMake installs a fake make on PATH that simulates the Makefile
// targets and logs every invocation to $MAKE_LOG.
func stubMake(t *testing.T) string {
	t.Helper()
	bin := t.TempDir()
	script := `#!/bin/sh
echo "make $1" >> "$MAKE_LOG"
case "$1" in
  env)
    mkdir -p cesm-env2/bin
    : > cesm-env2/bin/activate
    ;;
  all)
    printf '#!/bin/sh\necho "tscheck 0.9"\n' > cesm-env2/bin/tscheck
    chmod +x cesm-env2/bin/tscheck
    ;;
  clobber|clobber-env)
    rm -rf cesm-env2
    ;;
esac
`
	require.NoError(t, os.WriteFile(filepath.Join(bin, "make"), []byte(script), 0o755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))

	logPath := filepath.Join(bin, "make.log")
	t.Setenv("MAKE_LOG", logPath)
	return logPath
}

// newTree builds a post-processing root with a cheyenne module script.
func newTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	machineDir := filepath.Join(root, "machines")
	require.NoError(t, os.MkdirAll(machineDir, 0o755))
	script := "#!/bin/sh\nexport NCAR_HOST=cheyenne\n"
	require.NoError(t, os.WriteFile(filepath.Join(machineDir, "cheyenne_modules.sh"), []byte(script), 0o755))
	return root
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCreateMissingMachine(t *testing.T) {
	_, errOut, err := execute(t, "create")

	require.Error(t, err)
	assert.Equal(t, "ERROR:ppenv: A valid, supported machine name must be provided.", err.Error())
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
	assert.Contains(t, errOut, "Usage:")
}

func TestCreateUnknownFlag(t *testing.T) {
	_, _, err := execute(t, "create", "--bogus")

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "ERROR:ppenv: "), err.Error())
	assert.Contains(t, err.Error(), "--bogus")
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
}

func TestCreateHelpRunsNothing(t *testing.T) {
	logPath := stubMake(t)

	out, _, err := execute(t, "create", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	_, statErr := os.Stat(logPath)
	assert.True(t, os.IsNotExist(statErr), "help must not invoke the build system")
}

func TestCreateMissingModuleScript(t *testing.T) {
	logPath := stubMake(t)
	root := newTree(t)

	_, _, err := execute(t, "create", "--root", root, "--machine", "yellowstone")

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "ERROR:ppenv: "), err.Error())
	assert.Contains(t, err.Error(), "yellowstone_modules.sh")
	assert.Contains(t, err.Error(), "does not exist")
	assert.Equal(t, 1, clierr.ExitCodeOf(err))
	_, statErr := os.Stat(logPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreateEnvironmentExists(t *testing.T) {
	logPath := stubMake(t)
	root := newTree(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cesm-env2"), 0o755))

	_, _, err := execute(t, "create", "--root", root, "--machine", "cheyenne")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.Contains(t, err.Error(), "make clobber")
	assert.Equal(t, 1, clierr.ExitCodeOf(err))

	// guard fires before any build-system invocation
	_, statErr := os.Stat(logPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCreateSuccess(t *testing.T) {
	logPath := stubMake(t)
	root := newTree(t)

	out, _, err := execute(t, "create",
		"--root", root,
		"--machine", "cheyenne",
		"--machine-dir", filepath.Join(root, "machines"),
		"--smoke-tool", "tscheck")

	require.NoError(t, err)
	assert.Contains(t, out, "SUCCESS:ppenv - ")
	assert.Contains(t, out, "installed successfully")

	// env before all
	log, readErr := os.ReadFile(logPath)
	require.NoError(t, readErr)
	assert.Equal(t, "make env\nmake all\n", string(log))

	// the environment marker persists
	_, statErr := os.Stat(filepath.Join(root, "cesm-env2"))
	require.NoError(t, statErr)

	// run state was recorded
	_, statErr = os.Stat(filepath.Join(root, ".ppenv", "run", "last-run.json"))
	require.NoError(t, statErr)
}

func TestCreateDefaultedMachineDirWarns(t *testing.T) {
	stubMake(t)
	root := newTree(t)

	out, _, err := execute(t, "create",
		"--root", root,
		"--machine", "cheyenne",
		"--smoke-tool", "tscheck")

	// advisory only; the run still succeeds
	require.NoError(t, err)
	assert.Contains(t, out, "defaulting to "+filepath.Join(root, "machines"))
	assert.Contains(t, out, "SUCCESS:ppenv - ")
}

func TestCreateJSONSummary(t *testing.T) {
	stubMake(t)
	root := newTree(t)

	out, _, err := execute(t, "create",
		"--root", root,
		"--machine", "cheyenne",
		"--smoke-tool", "tscheck",
		"--json")

	require.NoError(t, err)
	assert.Contains(t, out, `"status": "SUCCESS"`)
	assert.Contains(t, out, `"machine": "cheyenne"`)
}
