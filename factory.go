// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import (
	"codeberg.org/defermsg/defermsg/catalog"
)

// DefaultDomain is the translation domain used when none is configured,
// matching the gettext convention.
const DefaultDomain = "messages"

// Level names a log severity with its own translation domain.
type Level string

const (
	LevelInfo     Level = "info"
	LevelWarning  Level = "warning"
	LevelError    Level = "error"
	LevelCritical Level = "critical"
)

// LogDomain returns the translation domain holding level-severity log
// messages for domain, "<domain>-log-<level>". Separate per-severity
// catalogs let translators ship the operator-facing severities first.
func LogDomain(domain string, level Level) string {
	return domain + "-log-" + string(level)
}

// Factory builds Messages bound to one translation domain, one
// resolver, and one construction mode. The mode is fixed when the
// factory is built: eager factories materialize text at construction,
// lazy ones defer it to first use. There is no process-wide toggle, so
// two factories with different modes can coexist.
type Factory struct {
	domain string
	lazy   bool
	res    *catalog.Resolver
}

// FactoryOption configures NewFactory.
type FactoryOption func(*Factory)

// WithLazy selects deferred text synthesis: messages resolve their
// msgid on first use instead of at construction, so translations loaded
// after the call site still apply.
func WithLazy(lazy bool) FactoryOption {
	return func(f *Factory) {
		f.lazy = lazy
	}
}

// WithResolver routes the factory's lookups through res.
func WithResolver(res *catalog.Resolver) FactoryOption {
	return func(f *Factory) {
		f.res = res
	}
}

// NewFactory returns a Factory for domain, or for [DefaultDomain] when
// domain is empty. Without [WithResolver] the factory resolves through
// a gettext source driven purely by the <DOMAIN>_LOCALEDIR environment
// override, so messages render as their msgids until catalogs are
// pointed at.
func NewFactory(domain string, opts ...FactoryOption) *Factory {
	if domain == "" {
		domain = DefaultDomain
	}

	f := &Factory{domain: domain}

	for _, opt := range opts {
		opt(f)
	}

	if f.res == nil {
		f.res = catalog.NewResolver(catalog.WithSources(catalog.NewGettextSource("")))
	}

	return f
}

// Domain returns the factory's base translation domain.
func (f *Factory) Domain() string {
	return f.domain
}

// Lazy reports whether the factory defers text synthesis.
func (f *Factory) Lazy() bool {
	return f.lazy
}

// Resolver returns the resolver the factory's messages translate
// through. It is never nil.
func (f *Factory) Resolver() *catalog.Resolver {
	return f.res
}

// M returns a deferred [Message] for msgid. Options apply before the
// text is synthesized, so [WithDomain] affects the construction-time
// lookup too. An empty msgid is a programmer error and panics.
func (f *Factory) M(msgid string, opts ...MessageOption) *Message {
	if msgid == "" {
		panic("defermsg: empty msgid")
	}

	m := &Message{
		msgid:  msgid,
		domain: f.domain,
		lazy:   f.lazy,
		res:    f.res,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.text == "" && !m.lazy {
		m.text = m.lookup("")
	}

	return m
}

// T translates msgid to the default locale immediately and returns the
// plain text. It is the throwaway counterpart of [Factory.M] for text
// that is rendered exactly once. An empty msgid panics.
func (f *Factory) T(msgid string) string {
	if msgid == "" {
		panic("defermsg: empty msgid")
	}

	m := &Message{msgid: msgid, domain: f.domain, res: f.res}

	return m.lookup("")
}

// Info returns a deferred message bound to the factory's info log
// domain.
func (f *Factory) Info(msgid string) *Message {
	return f.leveled(LevelInfo, msgid)
}

// Warning returns a deferred message bound to the factory's warning log
// domain.
func (f *Factory) Warning(msgid string) *Message {
	return f.leveled(LevelWarning, msgid)
}

// Error returns a deferred message bound to the factory's error log
// domain.
func (f *Factory) Error(msgid string) *Message {
	return f.leveled(LevelError, msgid)
}

// Critical returns a deferred message bound to the factory's critical
// log domain.
func (f *Factory) Critical(msgid string) *Message {
	return f.leveled(LevelCritical, msgid)
}

func (f *Factory) leveled(level Level, msgid string) *Message {
	return f.M(msgid, WithDomain(LogDomain(f.domain, level)))
}
