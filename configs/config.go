// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"os"
)

// Global exposes the process configuration.
var Global Config

// Config holds the defermsg configuration.
type Config struct {
	Build buildInfo `yaml:"-"`

	I18N struct {
		// Domain is the base translation domain messages resolve
		// through. Per-severity log messages use derived domains,
		// "<domain>-log-<level>".
		Domain string `env:"DEFERMSG_DOMAIN,overwrite" yaml:"domain"`

		// Locale pins the default locale, for example "de_DE". Empty
		// means detect it from the process environment (LANGUAGE,
		// LC_ALL, LC_MESSAGES, LANG).
		Locale string `env:"DEFERMSG_LOCALE,overwrite" yaml:"locale"`

		// LocaleDir is the directory searched for gettext catalogs,
		// laid out as <dir>/<locale>/LC_MESSAGES/<domain>.po. Empty
		// means only per-domain <DOMAIN>_LOCALEDIR overrides apply.
		LocaleDir string `env:"DEFERMSG_LOCALEDIR,overwrite" yaml:"localeDir"`

		// Lazy defers message text synthesis to first use, so catalogs
		// loaded after a call site still apply to its messages.
		Lazy bool `env:"DEFERMSG_LAZY,overwrite" yaml:"lazy"`

		// Strict mode for missing translations.
		//
		// When enabled, missing msgids are logged (deduplicated per
		// locale, domain and msgid) and visibly wrapped using markers.
		StrictMissingKeys bool `env:"DEFERMSG_STRICT_MISSING_KEYS" yaml:"strictMissingKeys"`
	} `yaml:"i18n"`

	Log struct {
		Level   string   `env:"DEFERMSG_LOG_LEVEL,overwrite" yaml:"logLevel"`
		Outputs []string `env:"DEFERMSG_LOG_OUTPUTS,overwrite" yaml:"logOutputs"`
		Format  string   `env:"DEFERMSG_LOG_FORMAT,overwrite" yaml:"logFormat"`
	} `yaml:"log"`
}

// LoadConfig loads the configuration from various sources.
func (cfg *Config) LoadConfig() error {
	parsedConfigFlagValue := parseCommandLineArgs()

	// Check if the -config flag was explicitly set by the user.
	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	var configFilePath string

	// Determine the config file path with the correct precedence:
	// 1. Command-line flag (-config)
	// 2. Environment variable (DEFERMSG_CONFIGFILE)
	// 3. Default path with fallback check
	if configFlagUserSet {
		// Command-line flag has the highest precedence.
		configFilePath = parsedConfigFlagValue
	} else if envVar := os.Getenv("DEFERMSG_CONFIGFILE"); envVar != "" {
		// Environment variable is next.
		configFilePath = envVar
	} else {
		// If neither flag nor env var was provided, use the default value
		// from the flag ("./config.yaml").
		configFilePath = parsedConfigFlagValue
		// Then, perform a fallback check for "./config.yml".
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./config.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupLogging()

	cfg.print()

	return nil
}
