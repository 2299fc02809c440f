package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessagesContainText(t *testing.T) {
	Configure(true)

	assert.Contains(t, SuccessMsg("done %s", "now"), "done now")
	assert.Contains(t, WarnMsg("careful"), "careful")
	assert.Contains(t, ErrorMsg("broken"), "broken")
	assert.Contains(t, InfoMsg("note"), "note")
}

func TestKeyValuesAligned(t *testing.T) {
	Configure(true)

	out := KeyValues("  ", KV("machine", "cheyenne"), KV("env", "/srv/pp/cesm-env2"))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "machine:")
	assert.Contains(t, lines[1], "env:")
}

func TestTable(t *testing.T) {
	Configure(true)

	out := Table([]string{"NAME", "SCRIPT"}, [][]string{{"cheyenne", "cheyenne_modules.sh"}})
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "cheyenne_modules.sh")
}
