// Package commands implements the keybit command-line interface.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/keybit/internal/cli/ui"
)

var (
	flagFormat string
	flagHome   string
)

var rootCmd = &cobra.Command{
	Use:   "keybit",
	Short: "Bitting calculator for decoding and progressing keys",
	Long: `keybit helps decode a key from partial information. Enter the depths you
know, mark unknown positions with ? and wildcards with X, half readings
with A, B or T, and keybit lists every code the keyway's MACS allows, the order to cut the
known depths in, and tips for the keyway.

Open sessions are kept in the keybit home (--home, $KEYBIT_HOME or
~/.keybit) until they are closed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		format, err := ui.ParseFormat(flagFormat)
		if err != nil {
			return err
		}
		return ui.SetGlobalFormatter(format)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "pretty", "Output format (pretty, json)")
	rootCmd.PersistentFlags().StringVar(&flagHome, "home", "", "keybit home directory (default $KEYBIT_HOME or ~/.keybit)")
	RegisterLoggerFlags(rootCmd)

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(sessionCmd)
	rootCmd.AddCommand(keywayCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(mcpCmd)
}

// Execute runs the root command and reports errors through the formatter
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		_ = ui.GlobalFormatter.OutputError(err)
	}
	return err
}
