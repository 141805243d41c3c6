package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"hillside-go/errcode"
	"hillside-go/types"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	root.SilenceErrors, root.SilenceUsage = true, true
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootShowsHelp(t *testing.T) {
	out, _, err := execute(t, "")
	assert.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "kbsim")
}

func TestRootRejectsUnknownFlags(t *testing.T) {
	_, _, err := execute(t, "", "--unknown-flag")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown flag")
}

func TestRunScriptFromStdin(t *testing.T) {
	out, _, err := execute(t, "press R 1 2\nwait 6\nexpect L\n", "run")
	require.NoError(t, err)
	assert.Contains(t, out, "00 00 0f 00 00 00 00 00")
	assert.Contains(t, out, "6 ticks")
}

func TestRunScriptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.kbs")
	require.NoError(t, os.WriteFile(path, []byte("press L 3 3\nwait 6\npress L 0 1\nwait 8\n"), 0o644))
	out, _, err := execute(t, "", "run", path, "--settle", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "custom bootloader press")
	assert.Contains(t, out, "16 ticks")
}

func TestRunReportsFailedExpectation(t *testing.T) {
	_, errOut, err := execute(t, "expect A\n", "run")
	require.Error(t, err)
	assert.Contains(t, errOut, "script failed")
}

func TestRunBadHostSide(t *testing.T) {
	_, errOut, err := execute(t, "", "run", "--host", "middle")
	require.Error(t, err)
	assert.Contains(t, errOut, "bad options")
}

func TestKeymapPrintsOneLayer(t *testing.T) {
	out, _, err := execute(t, "", "keymap", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "layer 5")
	assert.NotContains(t, out, "layer 4")
	assert.Contains(t, out, "bootloader")
	assert.Contains(t, out, "LCtrl+C")

	_, _, err = execute(t, "", "keymap", "12")
	assert.Error(t, err)
}

func TestConfigOverlayRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hold_timeout: 150\nhold_tap_policy: permissive_hold\ntick_period: 2ms\n"), 0o644))

	out, _, err := execute(t, "", "config", "--config", path)
	require.NoError(t, err)

	var got types.KeyboardConfig
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 150, got.HoldTimeout)
	assert.Equal(t, types.PolicyPermissiveHold, got.HoldTapPolicy)
	assert.Equal(t, types.DefaultKeyboardConfig().Rows, got.Rows)
	assert.Equal(t, "2ms", got.TickPeriod.String())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, errcode.NotConfigured, errcode.Of(err))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows: [1\n"), 0o644))
	_, err = loadConfig(path)
	assert.Equal(t, errcode.InvalidParams, errcode.Of(err))
}

func TestBadConfigShowsParserError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows: [1\n"), 0o644))

	_, errOut, err := execute(t, "", "config", "--config", path)
	require.Error(t, err)
	assert.Contains(t, errOut, "kbsim.config: invalid_params: yaml:")
}
