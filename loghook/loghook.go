// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package loghook emits translatable messages through zerolog.

An [Emitter] wraps a zerolog.Logger and renders [defermsg.Message]
values at emission time, translated to a locale fixed when the emitter
is built. Operator logs usually stay in one language even when
user-facing rendering varies per request, so the locale is an emitter
property, not a call property:

	emit := loghook.New(log.Logger, loghook.WithLocale("de_DE"))
	emit.Error(f.Error("Unable to reach %(host)s").MustFormat(...))
*/
package loghook

import (
	"github.com/rs/zerolog"

	"codeberg.org/defermsg/defermsg"
)

// Emitter writes translated messages to a zerolog logger.
type Emitter struct {
	log    zerolog.Logger
	locale string
}

// Option configures New.
type Option func(*Emitter)

// WithLocale fixes the locale messages are translated to before
// emission. Empty means the default locale.
func WithLocale(locale string) Option {
	return func(e *Emitter) {
		e.locale = locale
	}
}

// New returns an Emitter writing to logger.
func New(logger zerolog.Logger, opts ...Option) *Emitter {
	e := &Emitter{log: logger}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Info translates m and logs it at info level.
func (e *Emitter) Info(m *defermsg.Message) {
	e.Emit(zerolog.InfoLevel, m)
}

// Warning translates m and logs it at warn level.
func (e *Emitter) Warning(m *defermsg.Message) {
	e.Emit(zerolog.WarnLevel, m)
}

// Error translates m and logs it at error level.
func (e *Emitter) Error(m *defermsg.Message) {
	e.Emit(zerolog.ErrorLevel, m)
}

// Critical translates m and logs it at fatal level. Unlike
// zerolog's own Fatal helper this does not exit the process.
func (e *Emitter) Critical(m *defermsg.Message) {
	e.Emit(zerolog.FatalLevel, m)
}

// Emit translates m for the emitter's locale and logs it at level,
// tagging the event with the message's domain. A message that fails to
// render is logged untranslated, with the failure noted, so the log
// line is never lost.
func (e *Emitter) Emit(level zerolog.Level, m *defermsg.Message) {
	if m == nil {
		return
	}

	text, err := m.Translate(e.locale)
	if err != nil {
		e.log.WithLevel(level).
			Str("domain", m.Domain()).
			Str("render_error", err.Error()).
			Msg(m.String())

		return
	}

	e.log.WithLevel(level).
		Str("domain", m.Domain()).
		Msg(text)
}

// Value translates any value for the emitter's locale, for attaching
// payloads carrying messages to log events. Values that fail to render
// are returned unchanged.
func (e *Emitter) Value(value any) any {
	out, err := defermsg.Translate(value, e.locale)
	if err != nil {
		return value
	}

	return out
}
