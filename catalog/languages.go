// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"maps"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// aliasLocales maps locale codes to regional codes that the locale data
// does not list on its own even though they are perfectly legitimate.
// When the key is available for a domain and the alias is not, the alias
// is appended to the enumerated list.
var aliasLocales = map[string]string{
	"zh":         "zh_CN",
	"zh_Hant_HK": "zh_HK",
	"zh_Hant":    "zh_TW",
	"fil":        "tl_PH",
}

// probeConcurrency bounds concurrent catalog probes during enumeration.
const probeConcurrency = 8

// AvailableLocales returns the ordered list of locales for which domain
// has an available catalog. The list always starts with BaseLocale; the
// remaining entries preserve the iteration order of the locale
// identifiers, followed by any alias compensation.
//
// The result is cached per domain for the lifetime of the Resolver. The
// returned slice is a copy and safe for callers to retain or modify.
func (r *Resolver) AvailableLocales(domain string) []string {
	r.mu.RLock()
	cached, ok := r.languages[domain]
	r.mu.RUnlock()

	if ok {
		return slices.Clone(cached)
	}

	list := r.enumerate(domain)

	r.mu.Lock()
	if prev, ok := r.languages[domain]; ok {
		list = prev
	} else {
		r.languages[domain] = list
	}
	r.mu.Unlock()

	return slices.Clone(list)
}

// localeMatcher pairs a language matcher with the locale codes its tags
// were built from, so a match maps back to an enumerated entry by index.
// Matching through the index sidesteps the extension tags ("-u-rg-")
// that language.Matcher weaves into returned tags.
type localeMatcher struct {
	matcher language.Matcher
	locales []string
}

// MatchLocale returns the best available locale for domain given the
// caller's preferences, which may be BCP 47 tags, gettext codes, or
// Accept-Language header values. Matching runs over the locales reported
// by [Resolver.AvailableLocales]; with no usable preference the base
// locale wins.
func (r *Resolver) MatchLocale(domain string, preferred ...string) string {
	m := r.matcher(domain)

	_, index := language.MatchStrings(m.matcher, preferred...)

	return m.locales[index]
}

// matcher returns the cached language matcher for domain, building it
// from the enumerated locales on first use.
func (r *Resolver) matcher(domain string) localeMatcher {
	r.mu.RLock()
	m, ok := r.matchers[domain]
	r.mu.RUnlock()

	if ok {
		return m
	}

	available := r.AvailableLocales(domain)

	tags := make([]language.Tag, 0, len(available))
	locales := make([]string, 0, len(available))

	for _, loc := range available {
		t, err := language.Parse(strings.ReplaceAll(loc, "_", "-"))
		if err != nil {
			continue
		}

		tags = append(tags, t)
		locales = append(locales, loc)
	}

	// BaseLocale always parses, so the matcher never ends up empty.
	m = localeMatcher{matcher: language.NewMatcher(tags), locales: locales}

	r.mu.Lock()
	if prev, ok := r.matchers[domain]; ok {
		m = prev
	} else {
		r.matchers[domain] = m
	}
	r.mu.Unlock()

	return m
}

// enumerate probes every known locale identifier for domain.
func (r *Resolver) enumerate(domain string) []string {
	ids := r.identifiers
	if ids == nil {
		ids = knownLocaleIdentifiers()
	}

	found := make([]bool, len(ids))

	var g errgroup.Group

	g.SetLimit(probeConcurrency)

	for i, id := range ids {
		g.Go(func() error {
			found[i] = r.probe(domain, id)

			return nil
		})
	}

	// Probes report through the found slice and never error.
	_ = g.Wait()

	list := []string{BaseLocale}

	for i, id := range ids {
		if found[i] {
			list = append(list, id)
		}
	}

	// Aliases apply in sorted key order so the list is deterministic.
	for _, loc := range slices.Sorted(maps.Keys(aliasLocales)) {
		alias := aliasLocales[loc]
		if slices.Contains(list, loc) && !slices.Contains(list, alias) {
			list = append(list, alias)
		}
	}

	return list
}

// probe reports whether any source can provide a catalog for domain and
// locale. It bypasses the resolver cache: enumeration must not fill the
// cache with hundreds of negative entries.
func (r *Resolver) probe(domain, locale string) bool {
	for _, cand := range candidates(Normalize(locale)) {
		for _, src := range r.sources {
			if p, ok := src.(Prober); ok {
				if p.Probe(domain, cand) {
					return true
				}

				continue
			}

			if _, ok := src.Open(domain, cand); ok {
				return true
			}
		}
	}

	return false
}

// knownLocaleIdentifiers returns the locale identifiers known to the
// x/text locale data, in gettext form. The display-name coverage carries
// the full tag inventory; language.Supported lists base languages only
// and serves as the fallback when the coverage list is empty.
func knownLocaleIdentifiers() []string {
	tags := display.Supported.Tags()
	if len(tags) == 0 {
		for _, b := range language.Supported.BaseLanguages() {
			tags = append(tags, language.Make(b.String()))
		}
	}

	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, strings.ReplaceAll(t.String(), "-", "_"))
	}

	return ids
}
