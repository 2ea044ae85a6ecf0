package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// validation errors.
var (
	errEmptyDomain      = errors.New("i18n domain must not be empty")
	errInvalidLocale    = errors.New("i18n locale is not a valid language tag")
	errInvalidLogLevel  = errors.New("log level must be one of: debug, info, warn, error")
	errInvalidLogFormat = errors.New("log format must be one of: console, json")
)

func (cfg *Config) validate() error {
	if cfg.I18N.Domain == "" {
		return errEmptyDomain
	}

	if cfg.I18N.Locale != "" {
		tag := strings.ReplaceAll(cfg.I18N.Locale, "_", "-")
		if _, err := language.Parse(tag); err != nil {
			return fmt.Errorf("%w: %q", errInvalidLocale, cfg.I18N.Locale)
		}
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w, got %q", errInvalidLogLevel, cfg.Log.Level)
	}

	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w, got %q", errInvalidLogFormat, cfg.Log.Format)
	}

	return nil
}
