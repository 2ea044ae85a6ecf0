// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import "errors"

var (
	// ErrConcatNotSupported is returned by [Message.Concat]: joining a
	// message with other text would produce a string that can no longer
	// be re-translated.
	ErrConcatNotSupported = errors.New("defermsg: message does not support concatenation")

	// ErrASCIINotSupported is returned by [Message.ASCII]: translated
	// text is not restricted to ASCII, so the coercion is refused for
	// every message.
	ErrASCIINotSupported = errors.New("defermsg: message does not support ASCII coercion")

	// ErrMissingKey is returned when a %(name)s placeholder references a
	// key the supplied parameters do not contain.
	ErrMissingKey = errors.New("defermsg: missing substitution key")

	// ErrParamCount is returned when positional parameters and %s-style
	// placeholders do not line up, or when a placeholder form does not
	// match the parameter form.
	ErrParamCount = errors.New("defermsg: substitution parameters do not match placeholders")
)
