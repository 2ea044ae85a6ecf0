// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package defermsg

import "context"

type contextKeyType struct{}

var localeContextKey = contextKeyType{}

// WithLocale returns a copy of ctx carrying locale for later rendering,
// typically set once per request after locale negotiation.
func WithLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey, locale)
}

// LocaleFrom returns the locale stored in ctx, or the empty string when
// none is stored. An empty result means "use the default locale" to
// every rendering function in this package.
func LocaleFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	locale, _ := ctx.Value(localeContextKey).(string)

	return locale
}
