// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

//go:build test

/*
This file is included only when built with '-tags test'.
It provides a reset hook for unit tests. It is not part of production builds.
*/

package defermsg

import "sync"

// ResetForTests clears global state so tests can exercise Setup and the
// default factory's first-use path multiple times.
//
// Usage:
//
//	go test -tags test ./...
//
// Concurrency: only call from tests before spinning up any goroutines
// that use this package.
func ResetForTests() {
	// Clear missing translation dedupe state.
	missingKeyOnce = sync.Map{}

	// Drop the installed default factory; the next Default call
	// rebuilds one.
	defaultMu.Lock()
	defaultFactory = nil
	defaultMu.Unlock()
}
