// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/tidwall/gjson"
)

// JSONSource loads catalogs stored as flat JSON objects laid out as
//
//	<dir>/<locale>/<domain>.json
//
// Each file maps msgids to their localized text; non-string values are
// ignored.
type JSONSource struct {
	fsys fs.FS // nil means read from the OS filesystem
	dir  string
}

// NewJSONSource returns a source reading catalogs under dir on the OS
// filesystem.
func NewJSONSource(dir string) *JSONSource {
	return &JSONSource{dir: dir}
}

// NewJSONFS returns a source reading catalogs from fsys, rooted at dir
// within it. Pass "." to read from the root of fsys.
func NewJSONFS(fsys fs.FS, dir string) *JSONSource {
	return &JSONSource{fsys: fsys, dir: dir}
}

// Open loads and parses the catalog for domain and locale.
func (s *JSONSource) Open(domain, locale string) (Catalog, bool) {
	p, ok := s.find(domain, locale)
	if !ok {
		return nil, false
	}

	data, err := s.read(p)
	if err != nil {
		Logger.Warn().Err(err).Str("path", p).Msg("Failed to read JSON catalog")

		return nil, false
	}

	if !gjson.ValidBytes(data) {
		Logger.Warn().Str("path", p).Msg("Invalid JSON catalog")

		return nil, false
	}

	entries := make(MapCatalog)

	gjson.ParseBytes(data).ForEach(func(k, v gjson.Result) bool {
		if v.Type == gjson.String {
			entries[k.String()] = v.String()
		}

		return true
	})

	if len(entries) == 0 {
		return nil, false
	}

	return entries, true
}

// Probe reports whether a catalog file exists for domain and locale.
func (s *JSONSource) Probe(domain, locale string) bool {
	_, ok := s.find(domain, locale)

	return ok
}

func (s *JSONSource) find(domain, locale string) (string, bool) {
	if s.fsys != nil {
		p := path.Join(s.dir, locale, domain+".json")
		if fi, err := fs.Stat(s.fsys, p); err == nil && !fi.IsDir() {
			return p, true
		}

		return "", false
	}

	if s.dir == "" {
		return "", false
	}

	p := filepath.Join(s.dir, locale, domain+".json")
	if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
		return p, true
	}

	return "", false
}

func (s *JSONSource) read(p string) ([]byte, error) {
	if s.fsys != nil {
		return fs.ReadFile(s.fsys, p)
	}

	return os.ReadFile(p) // #nosec G304 -- path is derived from source configuration
}
