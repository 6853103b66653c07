package config

import "github.com/spf13/pflag"

var (
	flagConfig    = pflag.String("config", "", "path to a YAML config file")
	flagTemplates = pflag.String("templates_dir", "", "directory with template overrides")
	flagLogLevel  = pflag.String("log_level", "", "log level (debug, info, warn, error)")
	flagLogFile   = pflag.String("log_file", "", "also write logs to this file")
)

// ConfigPath returns the explicit config path if provided via --config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies command-line overrides to the config.
func applyFlags(cfg *Config) {
	if *flagTemplates != "" {
		cfg.Templates.Dir = *flagTemplates
	}
	if *flagLogLevel != "" {
		cfg.Logging.Level = *flagLogLevel
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
