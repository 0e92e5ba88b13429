// Package config provides Viper-based configuration loading for the society simulator.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SimulationConfig holds the settings handed to the society at construction.
type SimulationConfig struct {
	// AgentsFile is the path to the agent profile table.
	AgentsFile string `mapstructure:"agents_file"`
	// AreasFile is the path to the area table with its raw distance matrix.
	AreasFile string `mapstructure:"areas_file"`
	// StartDay, StartHour and StartMinute place the clock origin.
	StartDay    int `mapstructure:"start_day"`
	StartHour   int `mapstructure:"start_hour"`
	StartMinute int `mapstructure:"start_minute"`
	// Ticks is the default number of ticks the CLI advances.
	Ticks int `mapstructure:"ticks"`
	// TickInterval paces ticks in real time. Zero runs ticks back to back.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// HistoryWindow is how many recent log lines go into an agent's persona context.
	HistoryWindow int `mapstructure:"history_window"`
	// HistoryCapacity bounds each agent's log ring buffer.
	HistoryCapacity int `mapstructure:"history_capacity"`
	// MaxConcurrency bounds concurrent per-agent decision tasks. Zero is unbounded.
	MaxConcurrency int `mapstructure:"max_concurrency"`
	// Narrative is the initial global narrative.
	Narrative string `mapstructure:"narrative"`
	// Satiation lets Eat reset hunger and waking from Sleep reset sleepiness.
	// Off, the needs only grow until an override fires.
	Satiation bool `mapstructure:"satiation"`
}

// OracleConfig selects and configures the reasoning oracle backend.
type OracleConfig struct {
	// Provider is one of "anthropic", "gemini", or "script".
	Provider string `mapstructure:"provider"`
	// Model is the remote model name; ignored by the script provider.
	Model string `mapstructure:"model"`
	// APIKey authenticates remote providers.
	APIKey string `mapstructure:"api_key"`
	// MaxTokens caps each remote completion.
	MaxTokens int `mapstructure:"max_tokens"`
	// Script is the Lua file used by the script provider.
	Script string `mapstructure:"script"`
	// InstructionLimit caps Lua opcodes per script call.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a file path, or "stderr"/"stdout". Tick reports own stdout.
	Output string `mapstructure:"output"`
}

// Config is the top-level application configuration.
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation"`
	Oracle     OracleConfig     `mapstructure:"oracle"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateOracle(c.Oracle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if s.AgentsFile == "" {
		errs = append(errs, "simulation.agents_file must not be empty")
	}
	if s.AreasFile == "" {
		errs = append(errs, "simulation.areas_file must not be empty")
	}
	if s.StartDay < 0 {
		errs = append(errs, fmt.Sprintf("simulation.start_day must be >= 0, got %d", s.StartDay))
	}
	if s.StartHour < 0 || s.StartHour >= 24 {
		errs = append(errs, fmt.Sprintf("simulation.start_hour must be 0-23, got %d", s.StartHour))
	}
	if s.StartMinute < 0 || s.StartMinute >= 60 {
		errs = append(errs, fmt.Sprintf("simulation.start_minute must be 0-59, got %d", s.StartMinute))
	}
	if s.Ticks < 0 {
		errs = append(errs, fmt.Sprintf("simulation.ticks must be >= 0, got %d", s.Ticks))
	}
	if s.TickInterval < 0 {
		errs = append(errs, "simulation.tick_interval must not be negative")
	}
	if s.HistoryWindow < 1 {
		errs = append(errs, fmt.Sprintf("simulation.history_window must be >= 1, got %d", s.HistoryWindow))
	}
	if s.HistoryCapacity < s.HistoryWindow {
		errs = append(errs, fmt.Sprintf("simulation.history_capacity must be >= history_window (%d), got %d", s.HistoryWindow, s.HistoryCapacity))
	}
	if s.MaxConcurrency < 0 {
		errs = append(errs, fmt.Sprintf("simulation.max_concurrency must be >= 0, got %d", s.MaxConcurrency))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateOracle(o OracleConfig) error {
	var errs []string
	switch o.Provider {
	case "anthropic", "gemini":
		if o.Model == "" {
			errs = append(errs, fmt.Sprintf("oracle.model must not be empty for provider %q", o.Provider))
		}
		if o.APIKey == "" {
			errs = append(errs, fmt.Sprintf("oracle.api_key must not be empty for provider %q", o.Provider))
		}
		if o.MaxTokens < 1 {
			errs = append(errs, fmt.Sprintf("oracle.max_tokens must be >= 1, got %d", o.MaxTokens))
		}
	case "script":
		if o.Script == "" {
			errs = append(errs, "oracle.script must not be empty for provider \"script\"")
		}
		if o.InstructionLimit < 0 {
			errs = append(errs, fmt.Sprintf("oracle.instruction_limit must be >= 0, got %d", o.InstructionLimit))
		}
	default:
		return fmt.Errorf("oracle.provider must be one of [anthropic, gemini, script], got %q", o.Provider)
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SOCIETY_ prefix
	v.SetEnvPrefix("SOCIETY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance carrying only the default settings.
//
// Postcondition: Returns a non-nil Viper with every key defaulted.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.agents_file", "content/agents.yaml")
	v.SetDefault("simulation.areas_file", "content/areas.yaml")
	v.SetDefault("simulation.start_day", 0)
	v.SetDefault("simulation.start_hour", 7)
	v.SetDefault("simulation.start_minute", 0)
	v.SetDefault("simulation.ticks", 144)
	v.SetDefault("simulation.tick_interval", "0s")
	v.SetDefault("simulation.history_window", 10)
	v.SetDefault("simulation.history_capacity", 256)
	v.SetDefault("simulation.max_concurrency", 0)
	v.SetDefault("simulation.narrative", "")
	v.SetDefault("simulation.satiation", false)

	v.SetDefault("oracle.provider", "script")
	v.SetDefault("oracle.model", "")
	v.SetDefault("oracle.api_key", "")
	v.SetDefault("oracle.max_tokens", 1024)
	v.SetDefault("oracle.script", "content/oracle/townsfolk.lua")
	v.SetDefault("oracle.instruction_limit", 100_000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stderr")
}
