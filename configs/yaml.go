// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

// readYAML layers the configuration file at configFilePath over cfg. A
// missing file is not an error: the file is one optional layer of the
// load precedence.
func (cfg *Config) readYAML(configFilePath string) error {
	if configFilePath == "" {
		return nil
	}

	data, err := os.ReadFile(configFilePath) // #nosec G304 -- Only loading a config file
	if errors.Is(err, fs.ErrNotExist) {
		log.Info().
			Str("path", configFilePath).
			Msg("No YAML configuration file found, skipping")

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", configFilePath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML from %s: %w", configFilePath, err)
	}

	log.Info().
		Str("path", configFilePath).
		Msg("Successfully loaded configuration")

	return nil
}
