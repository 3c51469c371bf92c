package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aki/keybit/internal/cli/ui"
	"github.com/aki/keybit/internal/core/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the keybit configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration file",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing configuration file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
}

func configManager() (*config.Manager, error) {
	home, err := config.ResolveHome(flagHome)
	if err != nil {
		return nil, err
	}
	return config.NewManager(home), nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	manager, err := configManager()
	if err != nil {
		return err
	}
	cfg, err := manager.Load()
	if err != nil {
		return err
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]interface{}{
			"home":        manager.Home(),
			"path":        manager.ConfigPath(),
			"initialized": manager.IsInitialized(),
			"config":      cfg,
		})
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	ui.PrintField("Home", manager.Home())
	if manager.IsInitialized() {
		ui.PrintField("File", manager.ConfigPath())
	} else {
		ui.PrintField("File", "none (built-in defaults)")
	}
	ui.OutputLine("")
	return ui.GlobalFormatter.Output(string(data))
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	manager, err := configManager()
	if err != nil {
		return err
	}
	if manager.IsInitialized() && !configForce {
		return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", manager.ConfigPath())
	}
	if err := manager.Save(config.DefaultConfig()); err != nil {
		return err
	}

	return ui.GlobalFormatter.Render(map[string]string{"path": manager.ConfigPath()}, func() {
		ui.Success("Wrote %s", manager.ConfigPath())
	})
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	manager, err := configManager()
	if err != nil {
		return err
	}
	if !manager.IsInitialized() {
		ui.Info("No configuration file at %s; built-in defaults apply", manager.ConfigPath())
		return nil
	}
	cfg, err := manager.Load()
	if err != nil {
		return err
	}
	if _, err := manager.Table(cfg); err != nil {
		return fmt.Errorf("keyway catalog: %w", err)
	}

	if ui.GlobalFormatter.IsJSON() {
		return ui.GlobalFormatter.Output(map[string]interface{}{
			"path":  manager.ConfigPath(),
			"valid": true,
		})
	}
	ui.Success("Configuration is valid")
	return nil
}
