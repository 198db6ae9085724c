// Package config provides CLI configuration management for the calan command-line tool.
// It supports loading configuration from YAML files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// IsValid returns true if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// Default configuration values.
const (
	DefaultHourlyRate   = 75.0
	DefaultWorkDayStart = 9
	DefaultWorkDayEnd   = 18
	DefaultOutputFormat = OutputFormatText
	DefaultReportFormat = "markdown"
	DefaultConfigDir    = ".calan"
	DefaultConfigFile   = "config.yaml"
)

// reportFormats lists the accepted values for report_format.
var reportFormats = []string{"text", "markdown", "html", "json"}

// CLIConfig holds the CLI configuration.
type CLIConfig struct {
	// CompanyName is used in generated reports and sample data.
	CompanyName string `yaml:"company_name,omitempty" json:"company_name,omitempty"`

	// CompanyDomain identifies internal attendees. When empty the
	// domain is inferred from the loaded directory data.
	CompanyDomain string `yaml:"company_domain,omitempty" json:"company_domain,omitempty"`

	// HourlyRate is the assumed fully-loaded cost per attendee hour,
	// used for meeting cost estimates.
	HourlyRate float64 `yaml:"hourly_rate" json:"hourly_rate"`

	// WorkDayStart and WorkDayEnd bound the working day (24h clock).
	// Meetings outside these hours count as early-morning or
	// late-evening load.
	WorkDayStart int `yaml:"work_day_start" json:"work_day_start"`
	WorkDayEnd   int `yaml:"work_day_end" json:"work_day_end"`

	// OutputFormat is the default format for command output (text, json, yaml).
	OutputFormat OutputFormat `yaml:"output_format" json:"output_format"`

	// ReportFormat is the default format for saved analysis reports
	// (text, markdown, html, json).
	ReportFormat string `yaml:"report_format" json:"report_format"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug,omitempty" json:"debug,omitempty"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		HourlyRate:   DefaultHourlyRate,
		WorkDayStart: DefaultWorkDayStart,
		WorkDayEnd:   DefaultWorkDayEnd,
		OutputFormat: DefaultOutputFormat,
		ReportFormat: DefaultReportFormat,
		Debug:        false,
	}
}

// ConfigDir returns the configuration directory path.
// Uses CALAN_CONFIG_DIR env var if set, otherwise ~/.calan
func ConfigDir() (string, error) {
	if dir := os.Getenv("CALAN_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads configuration with the following precedence:
// 1. Default values
// 2. Config file (~/.calan/config.yaml)
// 3. Environment variables (CALAN_*)
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	// Load from config file if it exists
	configPath, err := ConfigPath()
	if err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a YAML file.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Config file is optional
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Pointer fields so an absent key is distinguishable from a zero value
	// (work_day_start: 0 is a legal setting).
	var fileCfg struct {
		CompanyName   string       `yaml:"company_name"`
		CompanyDomain string       `yaml:"company_domain"`
		HourlyRate    *float64     `yaml:"hourly_rate"`
		WorkDayStart  *int         `yaml:"work_day_start"`
		WorkDayEnd    *int         `yaml:"work_day_end"`
		OutputFormat  OutputFormat `yaml:"output_format"`
		ReportFormat  string       `yaml:"report_format"`
		Debug         *bool        `yaml:"debug"`
	}

	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.CompanyName != "" {
		cfg.CompanyName = fileCfg.CompanyName
	}
	if fileCfg.CompanyDomain != "" {
		cfg.CompanyDomain = strings.ToLower(fileCfg.CompanyDomain)
	}
	if fileCfg.HourlyRate != nil {
		cfg.HourlyRate = *fileCfg.HourlyRate
	}
	if fileCfg.WorkDayStart != nil {
		cfg.WorkDayStart = *fileCfg.WorkDayStart
	}
	if fileCfg.WorkDayEnd != nil {
		cfg.WorkDayEnd = *fileCfg.WorkDayEnd
	}
	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	if fileCfg.ReportFormat != "" {
		cfg.ReportFormat = strings.ToLower(fileCfg.ReportFormat)
	}
	if fileCfg.Debug != nil {
		cfg.Debug = *fileCfg.Debug
	}

	return nil
}

// loadFromEnv overrides config with environment variables.
// Invalid numeric values are ignored, keeping the previous value.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("CALAN_COMPANY_NAME"); v != "" {
		cfg.CompanyName = v
	}
	if v := os.Getenv("CALAN_COMPANY_DOMAIN"); v != "" {
		cfg.CompanyDomain = strings.ToLower(v)
	}
	if v := os.Getenv("CALAN_HOURLY_RATE"); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.HourlyRate = rate
		}
	}
	if v := os.Getenv("CALAN_WORK_DAY_START"); v != "" {
		if hour, err := strconv.Atoi(v); err == nil {
			cfg.WorkDayStart = hour
		}
	}
	if v := os.Getenv("CALAN_WORK_DAY_END"); v != "" {
		if hour, err := strconv.Atoi(v); err == nil {
			cfg.WorkDayEnd = hour
		}
	}
	if v := os.Getenv("CALAN_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}
	if v := os.Getenv("CALAN_REPORT_FORMAT"); v != "" {
		cfg.ReportFormat = strings.ToLower(v)
	}
	if v := os.Getenv("CALAN_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}
}

// Validate checks if the configuration is valid.
func (c *CLIConfig) Validate() error {
	if c.HourlyRate <= 0 {
		return fmt.Errorf("hourly_rate must be positive")
	}
	if c.WorkDayStart < 0 || c.WorkDayStart > 23 {
		return fmt.Errorf("work_day_start must be between 0 and 23")
	}
	if c.WorkDayEnd < 1 || c.WorkDayEnd > 24 {
		return fmt.Errorf("work_day_end must be between 1 and 24")
	}
	if c.WorkDayStart >= c.WorkDayEnd {
		return fmt.Errorf("work_day_start must be before work_day_end")
	}
	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output_format: %s (must be text, json, or yaml)", c.OutputFormat)
	}
	valid := false
	for _, f := range reportFormats {
		if c.ReportFormat == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid report_format: %s (must be one of %s)", c.ReportFormat, strings.Join(reportFormats, ", "))
	}
	return nil
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *CLIConfig) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return nil
}

// ExpandPath expands ~ in paths to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}
