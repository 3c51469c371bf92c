package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/config"
)

func TestConfigCommands(t *testing.T) {
	home := t.TempDir()

	out, _, err := execute(t, home, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in defaults apply")

	var shown struct {
		Initialized bool `json:"initialized"`
		Path        string
	}
	executeJSON(t, home, &shown, "config", "show")
	assert.False(t, shown.Initialized)
	assert.Equal(t, filepath.Join(home, config.ConfigFile), shown.Path)

	out, _, err = execute(t, home, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	assert.FileExists(t, filepath.Join(home, config.ConfigFile))

	_, _, err = execute(t, home, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, _, err = execute(t, home, "config", "init", "--force")
	require.NoError(t, err)

	out, _, err = execute(t, home, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "maxUnknowns: 4")
	assert.Contains(t, out, "resultLimit: 50")

	out, _, err = execute(t, home, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
}

func TestConfigDefaultsApplyToCommands(t *testing.T) {
	home := t.TempDir()
	cfg := "defaults:\n  spaces: 6\n  depths: \"1,2,3,4,5,6\"\n  macs: 2\ncalculator:\n  maxUnknowns: 1\n  enforceRules: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, config.ConfigFile), []byte(cfg), 0o644))

	var analysis calculator.Analysis
	executeJSON(t, home, &analysis, "calc", "16")
	assert.Equal(t, 6, analysis.Spec.Spaces)
	assert.Equal(t, 6, analysis.Spec.MaxDepth())
	assert.True(t, analysis.RulesEnforced)
	assert.Equal(t, []int{1, 2}, analysis.ViolatingPositions)
	assert.Contains(t, analysis.MatchError, "limit is 1")

	executeJSON(t, home, &analysis, "calc", "16", "--enforce-rules=false")
	assert.False(t, analysis.RulesEnforced)
}

func TestConfigCommands_InvalidFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(home, config.ConfigFile), []byte("defaults:\n  depths: 12\n"), 0o644))

	_, _, err := execute(t, home, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")

	_, _, err = execute(t, home, "calc", "12")
	assert.Error(t, err, "commands refuse to run on a broken configuration")
}

func TestVersionCommand(t *testing.T) {
	home := t.TempDir()

	var info map[string]string
	executeJSON(t, home, &info, "version")
	assert.Equal(t, Version, info["version"])
	assert.NotEmpty(t, info["goVersion"])

	out, _, err := execute(t, home, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "keybit version dev")
}
