package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/keybit/internal/cli/ui"
)

var keywayCmd = &cobra.Command{
	Use:     "keyway",
	Aliases: []string{"kw"},
	Short:   "Browse the keyway table",
}

var keywayListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List known keyways",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		rules := e.table.Rules()
		return ui.GlobalFormatter.Render(rules, func() { ui.PrintKeywayList(rules) })
	},
}

var keywayShowCmd = &cobra.Command{
	Use:   "show <keyway>",
	Short: "Show the spec, tips and rules of a keyway",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		rule, err := e.table.Resolve(args[0])
		if err != nil {
			return err
		}
		return ui.GlobalFormatter.Render(rule, func() { ui.PrintKeyway(rule) })
	},
}

func init() {
	keywayCmd.AddCommand(keywayListCmd)
	keywayCmd.AddCommand(keywayShowCmd)
}
