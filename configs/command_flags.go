// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import "flag"

const defaultConfigFile = "./config.yaml"

// parseCommandLineArgs parses flags and returns the value of the
// "config" flag. The flag is registered at most once, so programs that
// load the configuration repeatedly stay safe.
func parseCommandLineArgs() string {
	var configFilePath string

	if flag.Lookup("config") == nil {
		flag.StringVar(&configFilePath, "config", defaultConfigFile,
			"Path to a defermsg configuration file in YAML format.")
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	return configFilePath
}
