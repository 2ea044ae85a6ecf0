// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const logFilePermissions = 0o666

// setupLogging applies the log section of the configuration to the
// global zerolog logger.
func (cfg *Config) setupLogging() {
	switch cfg.Log.Level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
	}

	writers := []io.Writer{}

	if len(cfg.Log.Outputs) == 0 {
		writers = append(writers, ConsoleWriter(os.Stderr))
	} else {
		for _, output := range cfg.Log.Outputs {
			var w io.Writer

			switch output {
			case "/dev/stdout":
				w = cfg.consoleOrJSON(os.Stdout)
			case "/dev/stderr":
				w = cfg.consoleOrJSON(os.Stderr)
			default:
				file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec:G302,G304
				if err != nil {
					// If opening the file fails, we simply don't add it to the writers.
					// The loop will continue to the next output.
					fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", output, err)

					continue
				}

				w = cfg.consoleOrJSON(file)
			}

			writers = append(writers, w)
		}
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(writers...))
}

func (cfg *Config) consoleOrJSON(f *os.File) io.Writer {
	if cfg.Log.Format == "json" {
		return f
	}

	return ConsoleWriter(f)
}

// isTerminal returns true if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

// ConsoleWriter returns a writer for zerolog that has NoColor:isTerminal(f).
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isTerminal(f)

	return zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}
}
