// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package catalog resolves translation catalogs for (domain, locale) pairs.

A [Catalog] maps message ids to localized text for exactly one domain and
locale. Catalogs are produced by a [Source]; sources are consulted in
registration order and the first catalog found wins. A [Resolver] caches
resolved catalogs and enumerated locale lists for its lifetime and never
fails a lookup: when no catalog or no translation exists, the message id
itself is the result.

Locale codes use the gettext convention with underscores ("pt_BR",
"zh_Hant_HK"). BCP 47 forms with hyphens are accepted everywhere and
normalised internally.
*/
package catalog

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the logger used by package catalog.
var Logger zerolog.Logger = log.With().Str("sys", "catalog").Logger()

// Catalog is a resolved msgid -> localized text mapping for one
// (domain, locale) pair.
type Catalog interface {
	// Lookup returns the localized text for msgid and reports whether a
	// non-empty translation exists.
	Lookup(msgid string) (string, bool)
}

// Source provides catalogs. Open returns the catalog for the given domain
// and locale, or reports false when none exists. Open must be safe for
// concurrent use; the locale argument is always in normalised gettext form.
type Source interface {
	Open(domain, locale string) (Catalog, bool)
}

// Prober is an optional capability of a Source: a cheap existence check
// that avoids loading and parsing the catalog. Sources that do not
// implement Prober are probed through Open.
type Prober interface {
	Probe(domain, locale string) bool
}
