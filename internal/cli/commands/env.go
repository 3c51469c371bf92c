package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aki/keybit/internal/cli/ui"
	"github.com/aki/keybit/internal/core/calculator"
	"github.com/aki/keybit/internal/core/config"
	"github.com/aki/keybit/internal/core/keyway"
	"github.com/aki/keybit/internal/core/logger"
	"github.com/aki/keybit/internal/core/workbench"
)

// env bundles what most commands need: the configuration, the keyway table,
// a logger and the workbench store
type env struct {
	manager *config.Manager
	cfg     *config.Config
	table   *keyway.Table
	log     logger.Logger
	store   *workbench.FileStore
}

// loadEnv resolves the keybit home and loads everything rooted there
func loadEnv() (*env, error) {
	home, err := config.ResolveHome(flagHome)
	if err != nil {
		return nil, err
	}

	manager := config.NewManager(home)
	cfg, err := manager.Load()
	if err != nil {
		return nil, err
	}

	log, err := CreateLogger(cfg)
	if err != nil {
		return nil, err
	}

	table, err := manager.Table(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load keyway catalog: %w", err)
	}

	return &env{
		manager: manager,
		cfg:     cfg,
		table:   table,
		log:     log,
		store: workbench.NewFileStore(home,
			workbench.WithLogger(log.With("component", "workbench"))),
	}, nil
}

// sessionOptions turns the configuration into calculator options for a new
// session. enforce overrides the configured rule enforcement when non-nil.
func (e *env) sessionOptions(enforce *bool) []calculator.Option {
	enforceRules := e.cfg.Calculator.EnforceRules
	if enforce != nil {
		enforceRules = *enforce
	}
	return append(e.restoreOptions(nil), calculator.WithRuleEnforcement(enforceRules))
}

// restoreOptions is sessionOptions for a stored session, which keeps its own
// rule enforcement unless enforce is non-nil
func (e *env) restoreOptions(enforce *bool) []calculator.Option {
	c := e.cfg.Calculator
	opts := []calculator.Option{
		calculator.WithMaxUnknowns(c.Unknowns()),
		calculator.WithResultLimit(c.ResultLimit),
		calculator.WithCombinationCeiling(c.CombinationCeiling),
		calculator.WithTable(e.table),
		calculator.WithLogger(e.log.With("component", "calculator")),
	}
	if enforce != nil {
		opts = append(opts, calculator.WithRuleEnforcement(*enforce))
	}
	return opts
}

// warn reports a non-fatal problem without corrupting JSON output
func (e *env) warn(format string, args ...interface{}) {
	if ui.GlobalFormatter.IsJSON() {
		e.log.Warn(fmt.Sprintf(format, args...))
		return
	}
	ui.Warning(format, args...)
}

// boolFlag returns a pointer to the flag's value if it was set on the command line
func boolFlag(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return nil
	}
	return &v
}
