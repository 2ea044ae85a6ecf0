// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

// SetDefaults populates the configuration with default values.
func (cfg *Config) SetDefaults() {
	// "messages" is the gettext default domain.
	cfg.I18N.Domain = "messages"
	cfg.I18N.Locale = ""
	cfg.I18N.LocaleDir = ""
	cfg.I18N.Lazy = false
	cfg.I18N.StrictMissingKeys = false

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"
}
