package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdomarsaleem1/calendar-analytics/config"
)

// Config command flags.
var (
	configOutputFmt string
)

// ConfigCommandDeps holds the dependencies for the config command.
type ConfigCommandDeps struct {
	Config     *config.CLIConfig
	LoadConfig func() (*config.CLIConfig, error)
}

// DefaultConfigDeps returns the default dependencies for production use.
func DefaultConfigDeps() *ConfigCommandDeps {
	return &ConfigCommandDeps{
		LoadConfig: config.LoadConfig,
	}
}

// NewConfigCommand creates the config command with its subcommands.
func NewConfigCommand(deps *ConfigCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultConfigDeps()
	}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and manage configuration",
		Long: `Inspect and manage configuration.

Settings are resolved in order: built-in defaults, the config file,
then CALAN_* environment variables.

Examples:
  calan config show
  calan config show -o yaml
  calan config init
  calan config path`,
	}

	cmd.AddCommand(newConfigShowCommand(deps))
	cmd.AddCommand(newConfigInitCommand(deps))
	cmd.AddCommand(newConfigPathCommand())

	cmd.PersistentFlags().StringVarP(&configOutputFmt, "out", "o", "", "Console output format: text, json, yaml")

	return cmd
}

func newConfigShowCommand(deps *ConfigCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := deps.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			deps.Config = cfg
			return outputConfig(cfg)
		},
	}
}

func newConfigInitCommand(deps *ConfigCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}
			cfg, err := deps.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			deps.Config = cfg
			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			fmt.Printf("Config written to %s\n", path)
			return nil
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

// outputConfig outputs the effective configuration.
func outputConfig(cfg *config.CLIConfig) error {
	switch resolveOutputFormat(configOutputFmt, cfg) {
	case config.OutputFormatJSON:
		return outputJSON(cfg)
	case config.OutputFormatYAML:
		return outputYAML(cfg)
	default:
		fmt.Printf("  Company Name:   %s\n", orUnset(cfg.CompanyName))
		fmt.Printf("  Company Domain: %s\n", orUnset(cfg.CompanyDomain))
		fmt.Printf("  Hourly Rate:    %.2f\n", cfg.HourlyRate)
		fmt.Printf("  Work Day:       %02d:00 - %02d:00\n", cfg.WorkDayStart, cfg.WorkDayEnd)
		fmt.Printf("  Output Format:  %s\n", cfg.OutputFormat)
		fmt.Printf("  Report Format:  %s\n", cfg.ReportFormat)
		fmt.Printf("  Debug:          %t\n", cfg.Debug)
		return nil
	}
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
