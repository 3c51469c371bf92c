package commands

import (
	"bytes"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/aki/keybit/internal/cli/ui"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// resetFlags restores every flag of the command tree to its default, since
// cobra keeps parsed values between Execute calls
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs keybit with home as its home directory and returns what it
// wrote to stdout and stderr
func execute(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	restore := ui.SetOutput(&out, &errOut)
	defer restore()
	defer func() {
		require.NoError(t, ui.SetGlobalFormatter(ui.FormatPretty))
	}()

	rootCmd.SetArgs(append([]string{"--home", home, "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// executeJSON runs keybit with JSON output and decodes stdout into v
func executeJSON(t *testing.T, home string, v interface{}, args ...string) {
	t.Helper()
	out, _, err := execute(t, home, append([]string{"--format", "json"}, args...)...)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}
