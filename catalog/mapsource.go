// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"maps"
	"sync"
)

// MapCatalog is an in-memory msgid -> text mapping usable as a Catalog.
// An empty text marks an entry as untranslated, matching gettext
// semantics for empty msgstr values.
type MapCatalog map[string]string

// Lookup implements the Catalog interface.
func (c MapCatalog) Lookup(msgid string) (string, bool) {
	text, ok := c[msgid]
	if !ok || text == "" {
		return "", false
	}

	return text, true
}

// MapSource is an in-memory Source for programs that build their catalogs
// programmatically, and for tests.
type MapSource struct {
	mu       sync.RWMutex
	catalogs map[string]map[string]MapCatalog // domain -> locale -> catalog
}

// NewMapSource returns an empty MapSource.
func NewMapSource() *MapSource {
	return &MapSource{catalogs: make(map[string]map[string]MapCatalog)}
}

// Add registers messages for domain and locale, replacing any previous
// registration for the pair. The messages map is copied. Add returns the
// source so registrations can be chained.
func (s *MapSource) Add(domain, locale string, messages map[string]string) *MapSource {
	s.mu.Lock()
	defer s.mu.Unlock()

	byLocale, ok := s.catalogs[domain]
	if !ok {
		byLocale = make(map[string]MapCatalog)
		s.catalogs[domain] = byLocale
	}

	byLocale[Normalize(locale)] = MapCatalog(maps.Clone(messages))

	return s
}

// Open implements the Source interface.
func (s *MapSource) Open(domain, locale string) (Catalog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.catalogs[domain][Normalize(locale)]
	if !ok || len(c) == 0 {
		return nil, false
	}

	return c, true
}

// Probe implements the Prober interface.
func (s *MapSource) Probe(domain, locale string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.catalogs[domain][Normalize(locale)]

	return ok && len(c) > 0
}
