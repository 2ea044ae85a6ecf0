// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import (
	"github.com/rs/zerolog"

	"codeberg.org/defermsg/defermsg/catalog"
)

// Message is an immutable translatable value. It remembers the msgid it
// was built from, its translation domain, and a snapshot of
// substitution parameters, so the same value can be rendered in any
// locale long after the call site has moved on.
//
// Messages are built by [NewMessage], the package-level constructors,
// or a [Factory]. The zero value is not usable. All methods are safe
// for concurrent use; none of them mutate the receiver.
type Message struct {
	msgid  string
	domain string
	text   string
	lazy   bool
	params *params
	res    *catalog.Resolver
}

// MessageOption adjusts a message at construction time, before its text
// is synthesized.
type MessageOption func(*Message)

// WithDomain overrides the translation domain the message resolves
// through.
func WithDomain(domain string) MessageOption {
	return func(m *Message) {
		m.domain = domain
	}
}

// WithText fixes the message's rendered text instead of synthesizing it
// from the msgid. Used when the default rendering and the lookup key
// must differ.
func WithText(text string) MessageOption {
	return func(m *Message) {
		m.text = text
	}
}

// NewMessage returns a deferred message for msgid built by the default
// factory. It panics on an empty msgid.
func NewMessage(msgid string, opts ...MessageOption) *Message {
	return Default().M(msgid, opts...)
}

// Msgid returns the source message id the message was built from.
func (m *Message) Msgid() string {
	return m.msgid
}

// Domain returns the translation domain the message resolves through.
func (m *Message) Domain() string {
	return m.domain
}

// String returns the message's materialized text. A lazily constructed
// message resolves its msgid against the default locale on every call,
// so the rendering follows the resolver's current state; an eagerly
// constructed one returns the text fixed at construction.
func (m *Message) String() string {
	if m.text != "" {
		return m.text
	}

	if m.msgid == "" {
		return ""
	}

	return m.lookup("")
}

// Equal reports whether m and other render to the same text. Equality
// follows the materialized text, exactly like comparing the plain
// strings the messages stand in for.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}

	return m.String() == other.String()
}

// Translate renders the message in locale, or in the default locale
// when locale is empty. Substitution restarts from the msgid's
// translation, never from previously rendered text, and every captured
// parameter is translated for the same locale first. The message itself
// is never changed.
func (m *Message) Translate(locale string) (string, error) {
	base := m.lookup(locale)

	if m.params == nil {
		return base, nil
	}

	translated, err := m.params.translated(locale)
	if err != nil {
		return "", err
	}

	return renderPattern(base, translated)
}

// Format is the %-substitution operator. It returns a new message with
// the same msgid and domain, the parameters replaced by a sanitized
// snapshot of other, and the text recomputed from the default-locale
// translation of the msgid.
//
// A string-keyed map is trimmed to the keys the msgid references,
// merged over any named parameters captured earlier; a referenced key
// missing from the merge is an [ErrMissingKey]. A slice supplies
// positional parameters one directive at a time. Anything else,
// including nil, is a single positional parameter.
func (m *Message) Format(other any) (*Message, error) {
	snapshot, err := m.sanitizeFormatArg(other)
	if err != nil {
		return nil, err
	}

	text, err := renderPattern(m.lookup(""), snapshot)
	if err != nil {
		return nil, err
	}

	return &Message{
		msgid:  m.msgid,
		domain: m.domain,
		text:   text,
		lazy:   m.lazy,
		params: snapshot,
		res:    m.res,
	}, nil
}

// MustFormat is [Message.Format] for call sites whose msgid and
// parameters are literals, where a substitution error is a programmer
// error. It panics instead of returning one.
func (m *Message) MustFormat(other any) *Message {
	formatted, err := m.Format(other)
	if err != nil {
		panic(err)
	}

	return formatted
}

// Concat always fails with [ErrConcatNotSupported]: joining a message
// with other text would fix the result in one locale and silently lose
// translatability. Build a msgid containing a placeholder and Format
// the extra text in instead.
func (m *Message) Concat(other any) (string, error) {
	return "", ErrConcatNotSupported
}

// ASCII always fails with [ErrASCIINotSupported]: translations are not
// restricted to ASCII, so the coercion is refused even for messages
// whose current text happens to be plain.
func (m *Message) ASCII() ([]byte, error) {
	return nil, ErrASCIINotSupported
}

// MarshalZerologObject attaches the message to a log event as a
// structured object carrying its msgid, domain, and current rendering.
func (m *Message) MarshalZerologObject(e *zerolog.Event) {
	e.Str("msgid", m.msgid).Str("domain", m.domain).Str("text", m.String())
}

// lookup resolves the msgid's translation for locale through the
// message's resolver, falling back to the msgid itself. In strict mode
// the fallback is logged once per locale and wrapped in visible
// markers.
func (m *Message) lookup(locale string) string {
	text, found := m.resolver().Lookup(m.domain, locale, m.msgid)

	if !found && strictMissingKeys() {
		resolved := locale
		if resolved == "" {
			resolved = m.resolver().DefaultLocale()
		}

		logMissingOnce(resolved, m.domain, m.msgid)

		return "⟦" + text + "⟧"
	}

	return text
}

func (m *Message) resolver() *catalog.Resolver {
	if m.res != nil {
		return m.res
	}

	return Default().Resolver()
}
