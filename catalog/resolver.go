// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import "sync"

// key identifies a resolved catalog.
type key struct {
	domain string
	locale string
}

// Resolver resolves and caches catalogs for (domain, locale) pairs.
//
// A Resolver is configured once through [NewResolver] options and is safe
// for concurrent use afterwards. Caches are populate-once: a resolved
// catalog or an enumerated locale list is kept for the lifetime of the
// Resolver. Losing a population race only discards one redundant
// computation.
type Resolver struct {
	sources       []Source
	defaultLocale string
	identifiers   []string

	mu        sync.RWMutex
	catalogs  map[key]Catalog
	languages map[string][]string
	matchers  map[string]localeMatcher
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSources appends catalog sources. Sources are consulted in the order
// given; the first catalog found for a (domain, locale) pair wins.
func WithSources(sources ...Source) Option {
	return func(r *Resolver) {
		r.sources = append(r.sources, sources...)
	}
}

// WithDefaultLocale fixes the locale used when a lookup passes an empty
// one. Without this option the host environment decides, falling back to
// BaseLocale.
func WithDefaultLocale(locale string) Option {
	return func(r *Resolver) {
		r.defaultLocale = Normalize(locale)
	}
}

// WithLocaleIdentifiers overrides the locale identifiers considered by
// [Resolver.AvailableLocales]. Without this option the identifiers come
// from the x/text locale data.
func WithLocaleIdentifiers(identifiers []string) Option {
	return func(r *Resolver) {
		r.identifiers = append([]string(nil), identifiers...)
	}
}

// NewResolver returns a Resolver configured by opts.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		catalogs:  make(map[key]Catalog),
		languages: make(map[string][]string),
		matchers:  make(map[string]localeMatcher),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// DefaultLocale returns the locale used for lookups that do not name one:
// the configured default when set, otherwise the host environment's
// locale per [HostLocale].
func (r *Resolver) DefaultLocale() string {
	if r.defaultLocale != "" {
		return r.defaultLocale
	}

	return HostLocale()
}

// Catalog returns the resolved catalog for domain and locale, consulting
// sources on first use and the cache afterwards. An empty locale selects
// [Resolver.DefaultLocale]. The lookup expands the locale progressively
// ("pt_BR", then "pt").
//
// Only found catalogs are cached. A miss consults the sources again next
// time, so catalogs installed after a message was constructed still
// become visible to it.
func (r *Resolver) Catalog(domain, locale string) (Catalog, bool) {
	if locale == "" {
		locale = r.DefaultLocale()
	} else {
		locale = Normalize(locale)
	}

	k := key{domain: domain, locale: locale}

	r.mu.RLock()
	c, hit := r.catalogs[k]
	r.mu.RUnlock()

	if hit {
		return c, true
	}

	c = r.load(domain, locale)
	if c == nil {
		return nil, false
	}

	r.mu.Lock()
	if prev, hit := r.catalogs[k]; hit {
		c = prev
	} else {
		r.catalogs[k] = c
	}
	r.mu.Unlock()

	return c, true
}

// load consults the sources for domain and locale. Candidate locales are
// tried outermost so that an exact match in any source beats a base-locale
// match: "pt_BR" from the second source wins over "pt" from the first.
func (r *Resolver) load(domain, locale string) Catalog {
	for _, cand := range candidates(locale) {
		for _, src := range r.sources {
			if c, ok := src.Open(domain, cand); ok {
				Logger.Debug().
					Str("domain", domain).
					Str("locale", cand).
					Msg("Resolved catalog")

				return c
			}
		}
	}

	return nil
}

// Lookup resolves msgid for domain and locale. When no catalog or no
// translation exists, msgid itself is returned and found is false; Lookup
// never fails.
func (r *Resolver) Lookup(domain, locale, msgid string) (text string, found bool) {
	c, ok := r.Catalog(domain, locale)
	if !ok {
		return msgid, false
	}

	if text, ok := c.Lookup(msgid); ok {
		return text, true
	}

	return msgid, false
}

// Translator returns a translation function for domain and locale. The
// function maps a msgid to its localized text, falling back to the msgid
// unchanged; it is never nil. An empty locale selects the default locale.
func (r *Resolver) Translator(domain, locale string) func(msgid string) string {
	c, ok := r.Catalog(domain, locale)
	if !ok {
		return func(msgid string) string { return msgid }
	}

	return func(msgid string) string {
		if text, ok := c.Lookup(msgid); ok {
			return text
		}

		return msgid
	}
}
