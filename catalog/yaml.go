// Copyright 2024 - 2025, the defermsg contributors
// SPDX-License-Identifier: AGPL-3.0-only

package catalog

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// yamlExtensions lists recognised YAML file suffixes in precedence order.
var yamlExtensions = []string{".yaml", ".yml"}

// YAMLSource loads catalogs stored as flat YAML mappings laid out as
//
//	<dir>/<locale>/<domain>.yaml
//
// with .yml accepted alongside .yaml. Each file maps msgids to their
// localized text.
type YAMLSource struct {
	fsys fs.FS // nil means read from the OS filesystem
	dir  string
}

// NewYAMLSource returns a source reading catalogs under dir on the OS
// filesystem.
func NewYAMLSource(dir string) *YAMLSource {
	return &YAMLSource{dir: dir}
}

// NewYAMLFS returns a source reading catalogs from fsys, rooted at dir
// within it. Pass "." to read from the root of fsys.
func NewYAMLFS(fsys fs.FS, dir string) *YAMLSource {
	return &YAMLSource{fsys: fsys, dir: dir}
}

// Open loads and parses the catalog for domain and locale.
func (s *YAMLSource) Open(domain, locale string) (Catalog, bool) {
	p, ok := s.find(domain, locale)
	if !ok {
		return nil, false
	}

	data, err := s.read(p)
	if err != nil {
		Logger.Warn().Err(err).Str("path", p).Msg("Failed to read YAML catalog")

		return nil, false
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		Logger.Warn().Err(err).Str("path", p).Msg("Failed to parse YAML catalog")

		return nil, false
	}

	if len(entries) == 0 {
		return nil, false
	}

	return MapCatalog(entries), true
}

// Probe reports whether a catalog file exists for domain and locale.
func (s *YAMLSource) Probe(domain, locale string) bool {
	_, ok := s.find(domain, locale)

	return ok
}

func (s *YAMLSource) find(domain, locale string) (string, bool) {
	for _, ext := range yamlExtensions {
		if s.fsys != nil {
			p := path.Join(s.dir, locale, domain+ext)
			if fi, err := fs.Stat(s.fsys, p); err == nil && !fi.IsDir() {
				return p, true
			}

			continue
		}

		if s.dir == "" {
			return "", false
		}

		p := filepath.Join(s.dir, locale, domain+ext)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}

	return "", false
}

func (s *YAMLSource) read(p string) ([]byte, error) {
	if s.fsys != nil {
		return fs.ReadFile(s.fsys, p)
	}

	return os.ReadFile(p) // #nosec G304 -- path is derived from source configuration
}
