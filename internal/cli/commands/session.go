package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aki/keybit/internal/cli/ui"
	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/keyway"
	"github.com/aki/keybit/internal/core/workbench"
)

var sessionCmd = &cobra.Command{
	Use:     "session",
	Aliases: []string{"s"},
	Short:   "Work on a key across several invocations",
	Long: `Open a calculator session and fill in positions as you read them.

Sessions stay on the workbench until closed. Refer to a session by its
short handle (1, 2, ...), its full ID or a unique ID prefix.`,
}

var (
	openSpec    specFlags
	openEnforce bool

	reopenSpec specFlags

	matchSearch searchFlags
)

var sessionOpenCmd = &cobra.Command{
	Use:   "open [code]",
	Short: "Open a new session",
	Example: `  keybit session open --keyway HU66
  keybit session open 12?? --spaces 6 --depths 5 --macs 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSessionOpen,
}

var sessionSetCmd = &cobra.Command{
	Use:   "set <session> <position> [value]",
	Short: "Set one position (1-based); no value clears it",
	Example: `  keybit session set 1 3 4
  keybit session set 1 5 B
  keybit session set 1 2`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSessionSet,
}

var sessionParseCmd = &cobra.Command{
	Use:   "parse <session> <code>",
	Short: "Replace every position from a typed code",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editSession(cmd, args[0], func(_ *env, s *calculator.Session) error {
			s.ParseFullCode(args[1])
			return nil
		})
	},
}

var sessionResetCmd = &cobra.Command{
	Use:   "reset <session>",
	Short: "Clear every position",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editSession(cmd, args[0], func(_ *env, s *calculator.Session) error {
			s.Reset()
			return nil
		})
	},
}

var sessionReopenCmd = &cobra.Command{
	Use:   "reopen <session>",
	Short: "Change the spec of a session",
	Long: `Change the spec of a session. Switching to another keyway clears the
positions; otherwise they are re-read under the new spec.`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionReopen,
}

var sessionShowCmd = &cobra.Command{
	Use:   "show <session>",
	Short: "Show a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionShow,
}

var sessionMatchCmd = &cobra.Command{
	Use:   "match <session>",
	Short: "List the codes that fit the positions read so far",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionMatch,
}

var sessionOrderCmd = &cobra.Command{
	Use:   "order <session>",
	Short: "Show the shallow-to-deep cutting order",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionOrder,
}

var sessionCloseCmd = &cobra.Command{
	Use:     "close <session>",
	Aliases: []string{"rm"},
	Short:   "Close a session",
	Args:    cobra.ExactArgs(1),
	RunE:    runSessionClose,
}

var sessionListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List open sessions",
	Args:    cobra.NoArgs,
	RunE:    runSessionList,
}

func init() {
	openSpec.register(sessionOpenCmd)
	sessionOpenCmd.Flags().BoolVar(&openEnforce, "enforce-rules", false, "Drop candidates that break the keyway's fixed positions or same-depth cap")

	reopenSpec.register(sessionReopenCmd)
	matchSearch.register(sessionMatchCmd)

	sessionCmd.AddCommand(sessionOpenCmd)
	sessionCmd.AddCommand(sessionSetCmd)
	sessionCmd.AddCommand(sessionParseCmd)
	sessionCmd.AddCommand(sessionResetCmd)
	sessionCmd.AddCommand(sessionReopenCmd)
	sessionCmd.AddCommand(sessionShowCmd)
	sessionCmd.AddCommand(sessionMatchCmd)
	sessionCmd.AddCommand(sessionOrderCmd)
	sessionCmd.AddCommand(sessionCloseCmd)
	sessionCmd.AddCommand(sessionListCmd)
}

// sessionOutput is the JSON shape of a session report
type sessionOutput struct {
	Handle string `json:"handle"`
	calculator.Analysis
}

func outputSession(handle string, s *calculator.Session, analysis calculator.Analysis) error {
	return ui.GlobalFormatter.Render(sessionOutput{Handle: handle, Analysis: analysis}, func() {
		printAnalysis(handle, s, analysis)
	})
}

func runSessionOpen(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	spec, err := openSpec.resolve(cmd, e, keyway.Spec{})
	if err != nil {
		return err
	}

	s := calculator.New(spec, e.sessionOptions(boolFlag(cmd, "enforce-rules"))...)
	if len(args) == 1 {
		s.ParseFullCode(args[0])
	}

	handle, err := e.store.Save(cmd.Context(), s.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	analysis, err := s.Analyze(cmd.Context(), false)
	if err != nil {
		return err
	}
	if !ui.GlobalFormatter.IsJSON() {
		ui.Success("Opened session %s", handle)
		ui.OutputLine("")
	}
	return outputSession(handle, s, analysis)
}

func runSessionSet(cmd *cobra.Command, args []string) error {
	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid position %q: expected a number from 1", args[1])
	}
	value := ""
	if len(args) == 3 {
		value = args[2]
	}
	return editSession(cmd, args[0], func(_ *env, s *calculator.Session) error {
		return s.SetPosition(position-1, value)
	})
}

func runSessionReopen(cmd *cobra.Command, args []string) error {
	if !reopenSpec.changed(cmd) {
		return fmt.Errorf("nothing to change: give at least one of --keyway, --series, --spaces, --depths, --macs, --lishi")
	}
	return editSession(cmd, args[0], func(e *env, s *calculator.Session) error {
		base := s.Spec()
		if cmd.Flags().Changed("keyway") {
			base = keyway.Spec{}
		}
		spec, err := reopenSpec.resolve(cmd, e, base)
		if err != nil {
			return err
		}
		s.Reopen(spec)
		return nil
	})
}

// editSession applies edit to a stored session and shows the result
func editSession(cmd *cobra.Command, ref string, edit func(e *env, s *calculator.Session) error) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	var s *calculator.Session
	entry, err := e.store.Update(cmd.Context(), ref, func(snap *calculator.Snapshot) error {
		s = calculator.Restore(snap, e.restoreOptions(nil)...)
		if err := edit(e, s); err != nil {
			return err
		}
		*snap = *s.Snapshot()
		return nil
	})
	if err != nil {
		return err
	}

	analysis, err := s.Analyze(cmd.Context(), false)
	if err != nil {
		return err
	}
	return outputSession(entry.Handle, s, analysis)
}

// loadSession restores a stored session
func loadSession(cmd *cobra.Command, e *env, ref string, enforce *bool, extra ...calculator.Option) (string, *calculator.Session, error) {
	entry, err := e.store.Load(cmd.Context(), ref)
	if err != nil {
		return "", nil, err
	}
	opts := append(e.restoreOptions(enforce), extra...)
	return entry.Handle, calculator.Restore(entry.Snapshot, opts...), nil
}

func runSessionShow(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	handle, s, err := loadSession(cmd, e, args[0], nil)
	if err != nil {
		return err
	}
	analysis, err := s.Analyze(cmd.Context(), false)
	if err != nil {
		return err
	}
	return outputSession(handle, s, analysis)
}

func runSessionMatch(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	handle, s, err := loadSession(cmd, e, args[0], boolFlag(cmd, "enforce-rules"),
		matchSearch.options(cmd, nil)...)
	if err != nil {
		return err
	}

	analysis, err := s.Analyze(cmd.Context(), true)
	if err != nil {
		return err
	}
	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(sessionOutput{Handle: handle, Analysis: analysis})
	}
	if analysis.MatchError != "" {
		return fmt.Errorf("session %s: %s", handle, analysis.MatchError)
	}
	ui.OutputLine("%s %s  %s", ui.KeyIcon, ui.BoldStyle.Render(handle), ui.RenderPositions(s.Values(), s.Violations()))
	ui.PrintMatches(*analysis.Matches)
	return nil
}

func runSessionOrder(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	_, s, err := loadSession(cmd, e, args[0], nil)
	if err != nil {
		return err
	}

	steps := s.CuttingOrder()
	return ui.GlobalFormatter.Render(steps, func() { ui.PrintCuttingOrder(steps) })
}

func runSessionClose(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	entry, err := e.store.Load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := e.store.Delete(cmd.Context(), entry.Snapshot.ID); err != nil {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]string{
			"handle": entry.Handle,
			"id":     entry.Snapshot.ID,
			"status": "closed",
		})
	}
	ui.Success("Closed session %s", entry.Handle)
	return nil
}

func runSessionList(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	if _, err := e.store.Reconcile(cmd.Context()); err != nil {
		e.log.Warn("failed to reconcile session handles", "error", err)
	}
	entries, err := e.store.List(cmd.Context())
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		if entries == nil {
			entries = []*workbench.Entry{}
		}
		return ui.GlobalFormatter.Output(entries)
	}
	ui.PrintSessionList(entries)
	return nil
}
