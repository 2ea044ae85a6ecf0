// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"runtime/debug"
	"strings"
)

// BuildVersion is the latest tagged release of defermsg.
const BuildVersion string = "v0.4.2"

const shortRevisionLen = 8

type buildInfo struct {
	VcsRevision string
	VcsTime     string
	VcsModified bool
}

// Revision returns a short "date-commit" identifier for log output, with
// a "+dirty" suffix for builds from a modified tree.
func (b *buildInfo) Revision() string {
	if len(b.VcsRevision) < shortRevisionLen {
		return "unknown"
	}

	date, _, _ := strings.Cut(b.VcsTime, "T")

	s := date + "-" + b.VcsRevision[:shortRevisionLen]
	if b.VcsModified {
		s += "+dirty"
	}

	return s
}

func (b *buildInfo) load() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, kv := range info.Settings {
		switch kv.Key {
		case "vcs.revision":
			b.VcsRevision = kv.Value
		case "vcs.time":
			b.VcsTime = kv.Value
		case "vcs.modified":
			b.VcsModified = kv.Value == "true"
		}
	}
}
