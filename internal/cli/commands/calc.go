package commands

import (
	"github.com/spf13/cobra"

	"github.com/aki/keybit/internal/cli/ui"
	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/keyway"
)

var (
	calcSpec    specFlags
	calcSearch  searchFlags
	calcNoMatch bool
)

var calcCmd = &cobra.Command{
	Use:   "calc [code]",
	Short: "Analyse a partial code in one shot",
	Long: `Analyse a partial code without opening a session.

Each character is one position: 1-9 for a known depth, ? for an unknown,
X for a wildcard, A, B or T for a half reading. Any other character, such
as _ or a space, marks a position not read yet. Digits deeper than the
keyway allows are clamped.`,
	Example: `  keybit calc 13?2 --keyway HU66
  keybit calc "2 4?1" --spaces 6 --depths 1,2,3,4,5 --macs 3
  keybit calc 1A?33 -k HU100 --enforce-rules --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalc,
}

func init() {
	calcSpec.register(calcCmd)
	calcSearch.register(calcCmd)
	calcCmd.Flags().BoolVar(&calcNoMatch, "no-match", false, "Skip the matching-code search")
}

func runCalc(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	spec, err := calcSpec.resolve(cmd, e, keyway.Spec{})
	if err != nil {
		return err
	}

	s := calculator.New(spec, calcSearch.options(cmd, e.sessionOptions(boolFlag(cmd, "enforce-rules")))...)
	if len(args) == 1 {
		s.ParseFullCode(args[0])
	}

	analysis, err := s.Analyze(cmd.Context(), !calcNoMatch)
	if err != nil {
		return err
	}

	return ui.GlobalFormatter.Render(analysis, func() { printAnalysis("", s, analysis) })
}

// printAnalysis shows a session followed by its search result and cutting order
func printAnalysis(handle string, s *calculator.Session, analysis calculator.Analysis) {
	ui.PrintSession(handle, s)
	if analysis.MatchError != "" {
		ui.OutputLine("")
		ui.Info("%s", analysis.MatchError)
	}
	if analysis.Matches != nil {
		ui.PrintMatches(*analysis.Matches)
	}
	if len(analysis.CuttingOrder) > 0 {
		ui.PrintCuttingOrder(analysis.CuttingOrder)
	}
}

// searchFlags tune the matching-code search
type searchFlags struct {
	enforceRules bool
	limit        int
	maxUnknowns  int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.enforceRules, "enforce-rules", false, "Drop candidates that break the keyway's fixed positions or same-depth cap")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Maximum number of matching codes to list")
	cmd.Flags().IntVar(&f.maxUnknowns, "max-unknowns", 0, "Largest number of unread positions to search (0 for no limit)")
}

// options appends the flags given on the command line to base
func (f *searchFlags) options(cmd *cobra.Command, base []calculator.Option) []calculator.Option {
	opts := base
	if cmd.Flags().Changed("limit") {
		opts = append(opts, calculator.WithResultLimit(f.limit))
	}
	if cmd.Flags().Changed("max-unknowns") {
		opts = append(opts, calculator.WithMaxUnknowns(f.maxUnknowns))
	}
	return opts
}
