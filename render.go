// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

var _ templ.Component = (*Message)(nil)

// Render writes the message translated for the locale carried by ctx,
// or for the default locale when ctx carries none. The signature
// satisfies templ.Component, so a Message can be placed directly in
// templ templates and renders in the request's negotiated locale.
func (m *Message) Render(ctx context.Context, w io.Writer) error {
	text, err := m.Translate(LocaleFrom(ctx))
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, text)

	return err
}

// Component returns msgid as a component rendering its context-locale
// translation, built from the default factory.
func Component(msgid string) templ.Component {
	return M(msgid)
}
